// Package manager maintains per-image editing state for interactive use.
//
// Each open image is a document with four pieces of state:
//
//   - original: the image as loaded, never mutated
//   - base: all committed edits, prior to any in-progress rotation
//   - rotation angle: the rotation currently applied on top of base
//   - rendered: the displayed composite, rotate(base, angle)
//
// Rotations are always computed from base, never from the previous rendered
// image, so repeated angle changes neither drift the content nor accumulate
// interpolation loss. Committing any non-rotation edit folds it into base
// and resets the angle to zero; this is what keeps a resize from "reverting"
// when the user rotates afterwards.
//
// Every edit routes through transform.Apply, so an interactive session and
// a CLI batch run with the same configuration produce byte-identical pixels.
//
// A Store is safe to share between goroutines, but edits to a single
// document are not internally serialized; a caller editing one image from
// several goroutines must provide its own ordering.
package manager

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/imagestudio/imagestudio/internal/imgio"
	"github.com/imagestudio/imagestudio/internal/transform"
)

// ID identifies an open document within a Store.
type ID int

// ErrUnknownImage is returned for operations on a closed or never-opened id.
var ErrUnknownImage = errors.New("manager: unknown image id")

type document struct {
	original *image.NRGBA
	base     *image.NRGBA
	angle    float64
	rendered *image.NRGBA
}

// Store owns all open documents.
type Store struct {
	mu     sync.Mutex
	limits imgio.Limits
	nextID ID
	docs   map[ID]*document
}

// NewStore creates an empty document store. The limits bound every image
// loaded through it; a zero value applies imgio.DefaultLimits.
func NewStore(limits imgio.Limits) *Store {
	return &Store{
		limits: limits,
		nextID: 1,
		docs:   make(map[ID]*document),
	}
}

// Open loads the image at path and registers it as a new document with
// original == base == rendered and a rotation angle of zero.
func (s *Store) Open(path string) (ID, error) {
	img, _, err := imgio.Load(path, s.limits)
	if err != nil {
		return 0, err
	}
	return s.OpenImage(img), nil
}

// OpenImage registers an in-memory image (e.g. a newly drawn canvas) as a
// new document. The image is copied; the caller's buffer is not retained.
func (s *Store) OpenImage(img image.Image) ID {
	initial := imaging.Clone(img)

	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.docs[id] = &document{
		original: initial,
		base:     initial,
		rendered: initial,
	}
	return id
}

// ApplyEdit applies cfg to the document.
//
// A rotation-only configuration re-renders from the stored base image and
// records the new angle; the base is untouched. Any other configuration is
// committed: the non-rotation parameters are folded into a new base, the
// rotation angle resets to zero, and the rendered image becomes the new
// base. A failed edit leaves the document exactly as it was.
func (s *Store) ApplyEdit(id ID, cfg transform.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownImage, id)
	}

	if cfg.MaxPixels == 0 {
		cfg.MaxPixels = s.limits.MaxPixels
	}

	if cfg.RotationOnly() {
		d.rendered = transform.Rotate(d.base, cfg.Rotate, true)
		d.angle = cfg.Rotate
		return nil
	}

	base, err := transform.Apply(d.base, cfg.WithoutRotation())
	if err != nil {
		return err
	}
	d.base = base
	d.angle = 0
	d.rendered = base
	return nil
}

// Rendered returns the current display image. The returned image is owned
// by the store and must be treated as read-only.
func (s *Store) Rendered(id ID) (*image.NRGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownImage, id)
	}
	return d.rendered, nil
}

// Original returns the as-loaded image, which never changes over the
// document's lifetime.
func (s *Store) Original(id ID) (*image.NRGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownImage, id)
	}
	return d.original, nil
}

// Rotation returns the rotation angle currently applied on top of the base
// image.
func (s *Store) Rotation(id ID) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownImage, id)
	}
	return d.angle, nil
}

// BaseBounds reports the dimensions of the committed base image, which is
// what a subsequent rotation will be computed from.
func (s *Store) BaseBounds(id ID) (image.Rectangle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return image.Rectangle{}, fmt.Errorf("%w: %d", ErrUnknownImage, id)
	}
	return d.base.Bounds(), nil
}

// Save writes the rendered image to path via the shared encode path.
func (s *Store) Save(id ID, path string, opts imgio.SaveOptions) error {
	rendered, err := s.Rendered(id)
	if err != nil {
		return err
	}
	return imgio.Save(rendered, path, opts)
}

// Close releases all image state held for the document. Closing an unknown
// id is a no-op.
func (s *Store) Close(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
}

// Len reports the number of open documents.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}
