package transform

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// Blur applies a Gaussian blur with the given radius. A radius <= 0 is a
// no-op. The alpha channel is restored from the source after convolution so
// transparency boundaries do not bleed.
func Blur(img image.Image, radius float64) *image.NRGBA {
	if radius <= 0 {
		return imaging.Clone(img)
	}
	return withSourceAlpha(img, imaging.Clone(blur.Gaussian(img, radius)))
}

// Sharpen applies an unsharp mask whose amount is factor. A factor <= 0 is
// a no-op. The alpha channel is restored from the source after convolution.
func Sharpen(img image.Image, factor float64) *image.NRGBA {
	if factor <= 0 {
		return imaging.Clone(img)
	}
	return withSourceAlpha(img, imaging.Clone(effect.UnsharpMask(img, 1.0, factor)))
}
