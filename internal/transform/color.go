package transform

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
)

// Grayscale converts img to grayscale using luminance weighting. The alpha
// channel is preserved unchanged.
func Grayscale(img image.Image) *image.NRGBA {
	return imaging.Grayscale(img)
}

// Contrast adjusts contrast by factor: 1.0 is identity, 0.0 collapses the
// image to flat gray, values above 1.0 amplify. The factor is not clamped.
func Contrast(img image.Image, factor float64) *image.NRGBA {
	if factor == 1.0 {
		return imaging.Clone(img)
	}
	return withSourceAlpha(img, imaging.Clone(adjust.Contrast(img, factor-1)))
}

// Saturation adjusts color saturation by factor: 1.0 is identity, 0.0 fully
// desaturates, values above 1.0 amplify. The factor is not clamped.
func Saturation(img image.Image, factor float64) *image.NRGBA {
	if factor == 1.0 {
		return imaging.Clone(img)
	}
	return withSourceAlpha(img, imaging.Clone(adjust.Saturation(img, factor-1)))
}

// Brightness scales every channel by factor: 1.0 is identity, 0.0 yields
// black, values above 1.0 brighten. The factor is not clamped.
func Brightness(img image.Image, factor float64) *image.NRGBA {
	if factor == 1.0 {
		return imaging.Clone(img)
	}
	return withSourceAlpha(img, imaging.Clone(adjust.Brightness(img, factor-1)))
}

// Tint blends c into the image's color channels using intensity as the
// linear interpolation weight (0.0 = no change, 1.0 = fully replaced).
// Alpha values are untouched, so a transparent pixel's color may change but
// it stays transparent. Intensity is clamped to [0, 1].
func Tint(img image.Image, c HexColor, intensity float64) *image.NRGBA {
	if intensity < 0 {
		intensity = 0
	} else if intensity > 1 {
		intensity = 1
	}
	out := imaging.Clone(img)
	if intensity == 0 {
		return out
	}

	tr, tg, tb := float64(c.R), float64(c.G), float64(c.B)
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i+0] = lerp8(out.Pix[i+0], tr, intensity)
		out.Pix[i+1] = lerp8(out.Pix[i+1], tg, intensity)
		out.Pix[i+2] = lerp8(out.Pix[i+2], tb, intensity)
	}
	return out
}

func lerp8(from uint8, to, t float64) uint8 {
	v := float64(from) + (to-float64(from))*t
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// withSourceAlpha copies the alpha channel of src onto dst, enforcing the
// alpha-preservation contract across operations whose underlying kernels
// would otherwise touch it. Both images must have identical bounds.
func withSourceAlpha(src image.Image, dst *image.NRGBA) *image.NRGBA {
	nsrc := imaging.Clone(src)
	if len(nsrc.Pix) != len(dst.Pix) {
		return dst
	}
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = nsrc.Pix[i]
	}
	return dst
}
