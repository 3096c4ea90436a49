package imgio

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	ico "github.com/biessek/golang-ico"
	chaiwebp "github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Limits bounds the size of decoded images and animations. The zero value
// means "use DefaultLimits"; set a field to -1 to disable that check.
type Limits struct {
	MaxPixels int // maximum width*height per image
	MaxFrames int // maximum frame count per animation
}

// DefaultLimits is applied when a caller passes a zero Limits value.
var DefaultLimits = Limits{
	MaxPixels: 64_000_000,
	MaxFrames: 512,
}

func (l Limits) orDefaults() Limits {
	if l.MaxPixels == 0 {
		l.MaxPixels = DefaultLimits.MaxPixels
	}
	if l.MaxFrames == 0 {
		l.MaxFrames = DefaultLimits.MaxFrames
	}
	return l
}

// CheckPixels returns a *ResourceLimitError if width*height exceeds the
// pixel budget.
func (l Limits) CheckPixels(width, height int) error {
	l = l.orDefaults()
	if l.MaxPixels < 0 {
		return nil
	}
	if px := width * height; px > l.MaxPixels {
		return &ResourceLimitError{Pixels: px, MaxPixels: l.MaxPixels}
	}
	return nil
}

// CheckFrames returns a *ResourceLimitError if an animation has more than
// MaxFrames frames.
func (l Limits) CheckFrames(frames int) error {
	l = l.orDefaults()
	if l.MaxFrames < 0 {
		return nil
	}
	if frames > l.MaxFrames {
		return &ResourceLimitError{Frames: frames, MaxFrames: l.MaxFrames}
	}
	return nil
}

// Load reads and decodes the image at path.
//
// The format is sniffed from the file's magic bytes, not its extension.
// A missing file yields a *NotFoundError, undecodable bytes a *DecodeError,
// and an image over the pixel budget a *ResourceLimitError.
func Load(path string, limits Limits) (image.Image, Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", &NotFoundError{Path: path, Err: err}
		}
		return nil, "", &DecodeError{Source: path, Err: err}
	}
	return decodeBytes(data, path, limits)
}

// LoadBytes decodes an image from an in-memory byte slice.
func LoadBytes(data []byte, limits Limits) (image.Image, Format, error) {
	return decodeBytes(data, "bytes", limits)
}

func decodeBytes(data []byte, source string, limits Limits) (image.Image, Format, error) {
	format := SniffFormat(data)
	if format == "" {
		return nil, "", &DecodeError{Source: source, Err: fmt.Errorf("unrecognized image data")}
	}

	// Read the header before decoding pixel data so oversized images are
	// rejected without allocating their buffers. ICO has no config decoder,
	// so it is checked after the fact.
	if format != ICO {
		cfg, err := decodeConfig(bytes.NewReader(data), format)
		if err != nil {
			return nil, "", &DecodeError{Source: source, Err: err}
		}
		if err := limits.CheckPixels(cfg.Width, cfg.Height); err != nil {
			return nil, "", err
		}
	}

	img, err := decodeFormat(bytes.NewReader(data), format)
	if err != nil {
		return nil, "", &DecodeError{Source: source, Err: err}
	}
	if format == ICO {
		b := img.Bounds()
		if err := limits.CheckPixels(b.Dx(), b.Dy()); err != nil {
			return nil, "", err
		}
	}
	return img, format, nil
}

func decodeConfig(r io.Reader, format Format) (image.Config, error) {
	switch format {
	case PNG:
		return png.DecodeConfig(r)
	case JPEG:
		return jpeg.DecodeConfig(r)
	case GIF:
		return gif.DecodeConfig(r)
	case BMP:
		return bmp.DecodeConfig(r)
	case TIFF:
		return tiff.DecodeConfig(r)
	case WebP:
		return webp.DecodeConfig(r)
	}
	return image.Config{}, fmt.Errorf("no config decoder for %s", format)
}

func decodeFormat(r io.Reader, format Format) (image.Image, error) {
	switch format {
	case PNG:
		return png.Decode(r)
	case JPEG:
		return jpeg.Decode(r)
	case GIF:
		return gif.Decode(r)
	case BMP:
		return bmp.Decode(r)
	case TIFF:
		return tiff.Decode(r)
	case WebP:
		return webp.Decode(r)
	case ICO:
		return ico.Decode(r)
	}
	return nil, fmt.Errorf("no decoder for %s", format)
}

// SaveOptions controls Save. Format overrides extension inference; Quality
// (1-100) applies to lossy formats only, defaulting to 95.
type SaveOptions struct {
	Format  Format
	Quality int
}

// Save encodes img and writes it to path. The format is inferred from the
// extension unless opts.Format is set.
//
// Images with transparency saved to a format without alpha support (JPEG,
// BMP) are flattened onto a white background; this policy is part of the
// encode path itself, so every caller gets identical bytes. GIF carries
// one-bit alpha: fully transparent pixels stay transparent, partial
// transparency becomes opaque.
func Save(img image.Image, path string, opts SaveOptions) error {
	format := opts.Format
	if format == "" {
		var err error
		if format, err = FormatFromPath(path); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img, format, opts.Quality); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &EncodeError{Format: format, Err: err}
	}
	return nil
}

// Encode writes img to w in the given format. quality 0 means the default
// (95); values outside 1-100 are rejected for lossy formats.
func Encode(w io.Writer, img image.Image, format Format, quality int) error {
	if format.Lossy() {
		if quality == 0 {
			quality = 95
		}
		if quality < 1 || quality > 100 {
			return &EncodeError{Format: format, Err: fmt.Errorf("quality %d out of range 1-100", quality)}
		}
	}
	if !format.SupportsAlpha() {
		img = flatten(img)
	}

	var err error
	switch format {
	case PNG:
		err = png.Encode(w, img)
	case JPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case BMP:
		err = bmp.Encode(w, img)
	case GIF:
		err = gif.Encode(w, gifReady(img), &gif.Options{NumColors: 256})
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case WebP:
		// Quality 100 selects lossless WebP; anything lower is lossy VP8.
		err = chaiwebp.Encode(w, img, &chaiwebp.Options{
			Lossless: quality == 100,
			Quality:  float32(quality),
		})
	case ICO:
		err = ico.Encode(w, img)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return &EncodeError{Format: format, Err: err}
	}
	return nil
}

// EncodeBase64 encodes img in the given format and returns the result as a
// standard base64 string. The round trip through DecodeBase64 is
// pixel-identical for lossless formats.
func EncodeBase64(img image.Image, format Format, quality int) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, quality); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeBase64 decodes a base64 string produced by EncodeBase64 (or any
// base64-encoded image file) back into an image, sniffing the format from
// the decoded bytes.
func DecodeBase64(s string, limits Limits) (image.Image, Format, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, "", &DecodeError{Source: "base64", Err: err}
	}
	return decodeBytes(data, "base64", limits)
}

// gifPalette is Plan9 with the final entry replaced by full transparency,
// matching the palette the animation encoder uses.
var gifPalette = func() color.Palette {
	p := make(color.Palette, len(palette.Plan9))
	copy(p, palette.Plan9)
	p[len(p)-1] = color.NRGBA{}
	return p
}()

// gifReady quantizes an image with transparency onto a palette that carries
// a transparent entry. gif.Encode's default palette has none, which would
// turn transparent pixels into opaque black. Opaque images pass through and
// let the encoder pick its own palette.
func gifReady(img image.Image) image.Image {
	if op, ok := img.(interface{ Opaque() bool }); ok && op.Opaque() {
		return img
	}
	pm := image.NewPaletted(img.Bounds(), gifPalette)
	draw.FloydSteinberg.Draw(pm, img.Bounds(), img, img.Bounds().Min)
	return pm
}

// flatten composites img over an opaque white background. Images that are
// already fully opaque are returned as-is.
func flatten(img image.Image) image.Image {
	if op, ok := img.(interface{ Opaque() bool }); ok && op.Opaque() {
		return img
	}
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.NRGBA{255, 255, 255, 255})
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// Info describes an image file without holding its pixel data.
type Info struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Format        Format `json:"format"`
	HasAlpha      bool   `json:"has_alpha"`
	Frames        int    `json:"frames"`
	FileSizeBytes int64  `json:"file_size_bytes"`
}

// Stat reads just enough of the file at path to report its dimensions,
// format, alpha support, frame count, and size on disk.
func Stat(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, &DecodeError{Source: path, Err: err}
	}

	format := SniffFormat(data)
	if format == "" {
		return nil, &DecodeError{Source: path, Err: fmt.Errorf("unrecognized image data")}
	}

	info := &Info{Format: format, Frames: 1, FileSizeBytes: int64(len(data))}

	if format == ICO {
		img, err := ico.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, &DecodeError{Source: path, Err: err}
		}
		b := img.Bounds()
		info.Width, info.Height = b.Dx(), b.Dy()
		info.HasAlpha = true
		return info, nil
	}

	cfg, err := decodeConfig(bytes.NewReader(data), format)
	if err != nil {
		return nil, &DecodeError{Source: path, Err: err}
	}
	info.Width, info.Height = cfg.Width, cfg.Height
	info.HasAlpha = modelHasAlpha(cfg.ColorModel)

	if format == GIF {
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, &DecodeError{Source: path, Err: err}
		}
		info.Frames = len(g.Image)
	}
	return info, nil
}

func modelHasAlpha(m color.Model) bool {
	switch m {
	case color.RGBAModel, color.NRGBAModel, color.RGBA64Model, color.NRGBA64Model:
		return true
	case color.YCbCrModel, color.GrayModel, color.Gray16Model, color.CMYKModel:
		return false
	}
	// Indexed images may carry transparent palette entries.
	if p, ok := m.(color.Palette); ok {
		for _, c := range p {
			if _, _, _, a := c.RGBA(); a < 0xFFFF {
				return true
			}
		}
	}
	return false
}
