// Package animation extracts frames from animated images and applies the
// transformation core to every frame uniformly.
//
// Frames are materialized eagerly: an Animation holds the fully decoded,
// fully transformed frame list plus a single inter-frame delay. Playback
// (advancing an index on a timer) is a GUI concern and lives elsewhere.
package animation

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"

	"github.com/imagestudio/imagestudio/internal/imgio"
	"github.com/imagestudio/imagestudio/internal/transform"
)

// Animation is an ordered, finite frame sequence with a scalar inter-frame
// delay. After Load every frame has identical dimensions.
type Animation struct {
	Frames []*image.NRGBA
	// DelayMS is the inter-frame delay in milliseconds.
	DelayMS int
	// LoopCount follows the GIF convention: 0 loops forever.
	LoopCount int
}

// Options controls Load. Config is applied independently to every frame in
// the canonical order; DelayOverrideMS, when positive, replaces the source's
// native delay.
type Options struct {
	Config          transform.Config
	Limits          imgio.Limits
	DelayOverrideMS int
}

// Load decodes every frame of the animated GIF at path, applies the
// configured transformations to each frame, and captures the inter-frame
// delay.
//
// A missing file yields a *imgio.NotFoundError; a file that is not an
// animated GIF, or has zero frames, yields a *imgio.DecodeError.
func Load(path string, opts Options) (*Animation, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &imgio.NotFoundError{Path: path, Err: err}
		}
		return nil, &imgio.DecodeError{Source: path, Err: err}
	}
	defer f.Close()
	return LoadReader(f, path, opts)
}

// LoadReader is Load for an arbitrary reader; source names the input in
// errors.
func LoadReader(r io.Reader, source string, opts Options) (*Animation, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, &imgio.DecodeError{Source: source, Err: err}
	}
	if len(g.Image) == 0 {
		return nil, &imgio.DecodeError{Source: source, Err: fmt.Errorf("animation has no frames")}
	}
	if err := opts.Limits.CheckFrames(len(g.Image)); err != nil {
		return nil, err
	}
	if err := opts.Limits.CheckPixels(g.Config.Width, g.Config.Height); err != nil {
		return nil, err
	}

	anim := &Animation{
		Frames:    make([]*image.NRGBA, 0, len(g.Image)),
		LoopCount: g.LoopCount,
	}

	// GIF frames are often partial patches over the previous frame, so
	// coalesce each one onto a running canvas before transforming it.
	// Disposal modes other than "none" are treated as draw-over, which is
	// correct for the overwhelming majority of real-world files.
	canvas := image.NewNRGBA(image.Rect(0, 0, g.Config.Width, g.Config.Height))
	for _, frame := range g.Image {
		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		snapshot := image.NewNRGBA(canvas.Bounds())
		copy(snapshot.Pix, canvas.Pix)

		transformed, err := transform.Apply(snapshot, opts.Config)
		if err != nil {
			return nil, err
		}
		anim.Frames = append(anim.Frames, transformed)
	}

	anim.DelayMS = opts.DelayOverrideMS
	if anim.DelayMS <= 0 {
		// GIF stores delays in hundredths of a second.
		anim.DelayMS = g.Delay[0] * 10
		if anim.DelayMS <= 0 {
			anim.DelayMS = 100
		}
	}
	return anim, nil
}

// Save re-encodes the animation as an animated GIF at path, preserving the
// delay and loop count. GIF alpha is one bit: fully transparent pixels stay
// transparent, partial transparency becomes opaque.
func (a *Animation) Save(path string) error {
	var buf bytes.Buffer
	if err := a.Encode(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &imgio.EncodeError{Format: imgio.GIF, Err: err}
	}
	return nil
}

// Encode writes the animation as an animated GIF.
func (a *Animation) Encode(w io.Writer) error {
	if len(a.Frames) == 0 {
		return &imgio.EncodeError{Format: imgio.GIF, Err: fmt.Errorf("animation has no frames")}
	}

	g := &gif.GIF{
		LoopCount: a.LoopCount,
		Config: image.Config{
			Width:  a.Frames[0].Bounds().Dx(),
			Height: a.Frames[0].Bounds().Dy(),
		},
	}

	delay := a.DelayMS / 10
	if delay < 1 {
		delay = 1
	}

	for _, frame := range a.Frames {
		pm := image.NewPaletted(frame.Bounds(), framePalette)
		draw.FloydSteinberg.Draw(pm, frame.Bounds(), frame, frame.Bounds().Min)
		g.Image = append(g.Image, pm)
		g.Delay = append(g.Delay, delay)
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}

	if err := gif.EncodeAll(w, g); err != nil {
		return &imgio.EncodeError{Format: imgio.GIF, Err: err}
	}
	return nil
}

// framePalette is Plan9 with the final entry replaced by full transparency,
// so keyed-out backgrounds survive the re-encode as GIF transparency.
var framePalette = buildFramePalette()

func buildFramePalette() color.Palette {
	p := make(color.Palette, len(palette.Plan9))
	copy(p, palette.Plan9)
	p[len(p)-1] = color.NRGBA{}
	return p
}
