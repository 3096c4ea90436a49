package transform

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/imagestudio/imagestudio/internal/alpha"
	"github.com/imagestudio/imagestudio/internal/imgio"
)

// Apply runs the transformations requested by cfg in the canonical order
// (see the package documentation) and returns the result. Steps whose
// parameter is absent or at its identity value are skipped; an identity
// configuration returns a plain copy.
//
// Apply is the single multi-parameter entry point: both the CLI batch
// processor and the image manager call it, which is what guarantees they
// produce byte-identical output for the same configuration.
func Apply(img image.Image, cfg Config) (*image.NRGBA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := imaging.Clone(img)

	if cfg.hasResize() {
		if err := checkBudget(cfg.MaxPixels, cfg.Width, cfg.Height); err != nil {
			return nil, err
		}
		var err error
		out, err = Resize(out, cfg.Width, cfg.Height, cfg.PreserveAspect, cfg.Resample)
		if err != nil {
			return nil, err
		}
	}

	if cfg.Rotate != 0 {
		b := out.Bounds()
		w, h := rotatedBounds(b.Dx(), b.Dy(), cfg.Rotate)
		if err := checkBudget(cfg.MaxPixels, w, h); err != nil {
			return nil, err
		}
		out = Rotate(out, cfg.Rotate, true)
	}

	if cfg.Grayscale {
		out = Grayscale(out)
	}
	if cfg.Contrast != nil {
		out = Contrast(out, *cfg.Contrast)
	}
	if cfg.Saturation != nil {
		out = Saturation(out, *cfg.Saturation)
	}
	if cfg.Brightness != nil {
		out = Brightness(out, *cfg.Brightness)
	}
	if cfg.Tint != nil {
		out = Tint(out, cfg.Tint.Color, cfg.Tint.Intensity)
	}
	if cfg.BlurRadius > 0 {
		out = Blur(out, cfg.BlurRadius)
	}
	if cfg.SharpenFactor > 0 {
		out = Sharpen(out, cfg.SharpenFactor)
	}
	if cfg.Transparency != nil {
		out, _ = alpha.MakeColorTransparent(out, alpha.Match{
			Color:     cfg.Transparency.Color.NRGBA(),
			Tolerance: cfg.Transparency.Tolerance,
		})
	}

	return out, nil
}

// checkBudget enforces the intermediate pixel budget: 0 means
// imgio.DefaultLimits, negative disables.
func checkBudget(maxPixels, width, height int) error {
	if maxPixels == 0 {
		maxPixels = imgio.DefaultLimits.MaxPixels
	}
	if maxPixels < 0 {
		return nil
	}
	if px := width * height; px > maxPixels {
		return &imgio.ResourceLimitError{Pixels: px, MaxPixels: maxPixels}
	}
	return nil
}
