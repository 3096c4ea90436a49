package alpha

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Match specifies a target color and a tolerance for transparency
// operations. Tolerance is a Euclidean RGB distance in 8-bit channel units;
// 0 admits exact matches only.
type Match struct {
	Color     color.NRGBA
	Tolerance float64
}

// hit reports whether an opaque pixel's color is within tolerance of the
// target.
func (m Match) hit(r, g, b uint8) bool {
	if m.Tolerance == 0 {
		return r == m.Color.R && g == m.Color.G && b == m.Color.B
	}
	target := colorful.Color{
		R: float64(m.Color.R) / 255,
		G: float64(m.Color.G) / 255,
		B: float64(m.Color.B) / 255,
	}
	c := colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}
	return target.DistanceRgb(c)*255 <= m.Tolerance
}

// Stats reports what a transparency operation did.
type Stats struct {
	// NewlyTransparent counts fully opaque pixels keyed out by this call.
	NewlyTransparent int `json:"newly_transparent"`
	// AlreadyTransparent counts pixels left untouched because they were
	// partially or fully transparent before the call.
	AlreadyTransparent int `json:"already_transparent"`
	// Total is the pixel count of the image.
	Total int `json:"total"`
}

// MakeColorTransparent sets alpha to 0 on every fully opaque pixel whose
// color matches m, and returns the new image plus statistics.
//
// Pixels that are already partially or fully transparent keep their exact
// alpha value even if their color matches. Matching zero pixels is a
// successful no-op, not an error. Images without an alpha channel gain one.
func MakeColorTransparent(img image.Image, m Match) (*image.NRGBA, Stats) {
	return keyOut(img, m)
}

// RemoveBackground keys out a background color with the same matching and
// preservation semantics as MakeColorTransparent. It exists as a separate
// entry point for the background-removal flow, where the color typically
// comes from DetectBackgroundCandidates rather than a user pick.
func RemoveBackground(img image.Image, m Match) (*image.NRGBA, Stats) {
	return keyOut(img, m)
}

func keyOut(img image.Image, m Match) (*image.NRGBA, Stats) {
	out := imaging.Clone(img)
	var stats Stats
	stats.Total = len(out.Pix) / 4

	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i+3] != 255 {
			stats.AlreadyTransparent++
			continue
		}
		if m.hit(out.Pix[i], out.Pix[i+1], out.Pix[i+2]) {
			out.Pix[i+3] = 0
			stats.NewlyTransparent++
		}
	}
	return out, stats
}
