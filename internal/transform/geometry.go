package transform

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Resize scales img to width x height.
//
// With preserveAspect the image is fit inside the width x height box: the
// longer dimension lands exactly on its target and the other is scaled
// proportionally, flooring to whole pixels (a 200x100 image resized to
// (50,50) becomes 50x25). Without it both dimensions are set exactly,
// distorting the aspect ratio if needed.
func Resize(img image.Image, width, height int, preserveAspect bool, resample Resample) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, &ConfigurationError{Param: "size", Reason: fmt.Sprintf("dimensions %dx%d must be positive", width, height)}
	}

	if preserveAspect {
		b := img.Bounds()
		scale := math.Min(float64(width)/float64(b.Dx()), float64(height)/float64(b.Dy()))
		width = int(math.Floor(float64(b.Dx()) * scale))
		height = int(math.Floor(float64(b.Dy()) * scale))
		if width < 1 {
			width = 1
		}
		if height < 1 {
			height = 1
		}
	}

	return imaging.Resize(img, width, height, resample.filter()), nil
}

// Rotate rotates img counter-clockwise by degrees around its center.
//
// With expand the canvas grows to fit the rotated content and newly exposed
// area is fully transparent; without it the output keeps the input size and
// the corners are clipped. Multiples of 90 degrees take a lossless fast path
// with no interpolation.
//
// Callers performing interactive rotation must always rotate a stored base
// image, never the previous rotated result, or repeated interpolation will
// drift the content.
func Rotate(img image.Image, degrees float64, expand bool) *image.NRGBA {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}

	var rotated *image.NRGBA
	switch d {
	case 0:
		return imaging.Clone(img)
	case 90:
		rotated = imaging.Rotate90(img)
	case 180:
		rotated = imaging.Rotate180(img)
	case 270:
		rotated = imaging.Rotate270(img)
	default:
		rotated = imaging.Rotate(img, d, color.NRGBA{})
	}
	if expand {
		return rotated
	}
	b := img.Bounds()
	if rotated.Bounds().Dx() == b.Dx() && rotated.Bounds().Dy() == b.Dy() {
		return rotated
	}
	// Clip-rotation: keep the input canvas size, center the rotated content
	// on a transparent canvas and let anything outside it fall away.
	canvas := imaging.New(b.Dx(), b.Dy(), color.NRGBA{})
	return imaging.PasteCenter(canvas, rotated)
}

// rotatedBounds returns the canvas size a rotation with expansion would
// produce, without performing it. Apply uses this for the pixel budget check.
func rotatedBounds(width, height int, degrees float64) (int, int) {
	rad := degrees * math.Pi / 180
	sin, cos := math.Abs(math.Sin(rad)), math.Abs(math.Cos(rad))
	w := int(math.Ceil(float64(width)*cos + float64(height)*sin))
	h := int(math.Ceil(float64(width)*sin + float64(height)*cos))
	return w, h
}

// CropToSquare crops the longer dimension symmetrically around the center,
// producing a square image. An odd remainder loses its extra pixel from the
// trailing edge.
func CropToSquare(img image.Image) *image.NRGBA {
	b := img.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	return imaging.Crop(img, image.Rect(x0, y0, x0+side, y0+side))
}
