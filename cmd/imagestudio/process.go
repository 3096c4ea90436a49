package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/imagestudio/imagestudio/internal/alpha"
	"github.com/imagestudio/imagestudio/internal/animation"
	"github.com/imagestudio/imagestudio/internal/imgio"
	"github.com/imagestudio/imagestudio/internal/transform"
)

// processFlags mirrors the shared configuration surface as CLI flags.
type processFlags struct {
	width          int
	height         int
	preserveAspect bool
	resample       string
	rotate         float64
	grayscale      bool
	tintColor      string
	tintIntensity  float64
	contrast       float64
	saturation     float64
	brightness     float64
	blurRadius     float64
	sharpenFactor  float64
	transColor     string
	transTolerance float64
	autoBackground bool
	format         string
	quality        int
	preset         string
	maxPixels      int
	delayMS        int
}

func (f *processFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVar(&f.width, "width", 0, "target width in pixels")
	fl.IntVar(&f.height, "height", 0, "target height in pixels")
	fl.BoolVar(&f.preserveAspect, "preserve-aspect", false, "fit inside width x height keeping the aspect ratio")
	fl.StringVar(&f.resample, "resample", "high", "resampling filter: high, bilinear, nearest")
	fl.Float64Var(&f.rotate, "rotate", 0, "counter-clockwise rotation in degrees")
	fl.BoolVar(&f.grayscale, "grayscale", false, "convert to grayscale")
	fl.StringVar(&f.tintColor, "tint-color", "", "tint color as #RRGGBB")
	fl.Float64Var(&f.tintIntensity, "tint-intensity", 0, "tint blend weight, 0.0-1.0")
	fl.Float64Var(&f.contrast, "contrast", 1, "contrast factor, 1.0 = unchanged (unclamped)")
	fl.Float64Var(&f.saturation, "saturation", 1, "saturation factor, 1.0 = unchanged (unclamped)")
	fl.Float64Var(&f.brightness, "brightness", 1, "brightness factor, 1.0 = unchanged (unclamped)")
	fl.Float64Var(&f.blurRadius, "blur", 0, "Gaussian blur radius")
	fl.Float64Var(&f.sharpenFactor, "sharpen", 0, "unsharp mask amount")
	fl.StringVar(&f.transColor, "transparent-color", "", "color to key out as #RRGGBB")
	fl.Float64Var(&f.transTolerance, "transparent-tolerance", 0, "color match tolerance (Euclidean RGB distance, 0-100)")
	fl.BoolVar(&f.autoBackground, "auto-background", false, "detect the background color from the corners and key it out")
	fl.StringVar(&f.format, "format", "", "output format override (png, jpeg, bmp, gif, tiff, webp, ico)")
	fl.IntVar(&f.quality, "quality", 0, "quality 1-100 for lossy formats (default 95)")
	fl.StringVar(&f.preset, "preset", "", "YAML preset file; explicit flags override its values")
	fl.IntVar(&f.maxPixels, "max-pixels", 0, "pixel budget for decoded and intermediate images (0 = default, -1 = unlimited)")
	fl.IntVar(&f.delayMS, "delay", 0, "animated GIF frame delay override in milliseconds")
}

// config merges the preset file (if any) with the flags the user actually
// set, explicit flags winning.
func (f *processFlags) config(cmd *cobra.Command) (transform.Config, error) {
	var cfg transform.Config
	if f.preset != "" {
		var err error
		if cfg, err = loadPreset(f.preset); err != nil {
			return transform.Config{}, err
		}
	}

	fl := cmd.Flags()
	if fl.Changed("width") {
		cfg.Width = f.width
	}
	if fl.Changed("height") {
		cfg.Height = f.height
	}
	if fl.Changed("preserve-aspect") {
		cfg.PreserveAspect = f.preserveAspect
	}
	if fl.Changed("resample") {
		r, err := transform.ParseResample(f.resample)
		if err != nil {
			return transform.Config{}, err
		}
		cfg.Resample = r
	}
	if fl.Changed("rotate") {
		cfg.Rotate = f.rotate
	}
	if fl.Changed("grayscale") {
		cfg.Grayscale = f.grayscale
	}
	if fl.Changed("contrast") {
		v := f.contrast
		cfg.Contrast = &v
	}
	if fl.Changed("saturation") {
		v := f.saturation
		cfg.Saturation = &v
	}
	if fl.Changed("brightness") {
		v := f.brightness
		cfg.Brightness = &v
	}
	if f.tintColor != "" {
		c, err := transform.ParseHexColor(f.tintColor)
		if err != nil {
			return transform.Config{}, err
		}
		cfg.Tint = &transform.TintSpec{Color: c, Intensity: f.tintIntensity}
	}
	if fl.Changed("blur") {
		cfg.BlurRadius = f.blurRadius
	}
	if fl.Changed("sharpen") {
		cfg.SharpenFactor = f.sharpenFactor
	}
	if f.transColor != "" {
		c, err := transform.ParseHexColor(f.transColor)
		if err != nil {
			return transform.Config{}, err
		}
		cfg.Transparency = &transform.Transparency{Color: c, Tolerance: f.transTolerance}
	}
	cfg.MaxPixels = f.maxPixels
	return cfg, nil
}

func (f *processFlags) limits() imgio.Limits {
	return imgio.Limits{MaxPixels: f.maxPixels}
}

func (f *processFlags) saveOptions() (imgio.SaveOptions, error) {
	opts := imgio.SaveOptions{Quality: f.quality}
	if f.format != "" {
		format, err := imgio.ParseFormat(f.format)
		if err != nil {
			return imgio.SaveOptions{}, err
		}
		opts.Format = format
	}
	return opts, nil
}

func newProcessCmd() *cobra.Command {
	f := &processFlags{}
	cmd := &cobra.Command{
		Use:   "process INPUT OUTPUT",
		Short: "Transform a single image or animated GIF",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.config(cmd)
			if err != nil {
				return err
			}
			return processFile(args[0], args[1], f, cfg)
		},
	}
	f.register(cmd)
	return cmd
}

// processFile transforms one input file. Multi-frame GIFs written back to
// GIF go through the animation path so every frame is transformed
// uniformly; everything else is a single-image run.
func processFile(in, out string, f *processFlags, cfg transform.Config) error {
	info, err := imgio.Stat(in)
	if err != nil {
		return err
	}

	saveOpts, err := f.saveOptions()
	if err != nil {
		return err
	}

	outFormat := saveOpts.Format
	if outFormat == "" {
		if outFormat, err = imgio.FormatFromPath(out); err != nil {
			return err
		}
	}

	if info.Format == imgio.GIF && info.Frames > 1 && outFormat == imgio.GIF {
		anim, err := animation.Load(in, animation.Options{
			Config:          cfg,
			Limits:          f.limits(),
			DelayOverrideMS: f.delayMS,
		})
		if err != nil {
			return err
		}
		return anim.Save(out)
	}

	img, _, err := imgio.Load(in, f.limits())
	if err != nil {
		return err
	}

	result, err := transform.Apply(img, cfg)
	if err != nil {
		return err
	}

	if f.autoBackground {
		candidates := alpha.DetectBackgroundCandidates(result)
		if len(candidates) > 0 {
			result, _ = alpha.RemoveBackground(result, alpha.Match{
				Color:     candidates[0].Color,
				Tolerance: f.transTolerance,
			})
		}
	}

	return imgio.Save(result, out, saveOpts)
}

func newBatchCmd() *cobra.Command {
	f := &processFlags{}
	cmd := &cobra.Command{
		Use:   "batch SRCDIR DSTDIR",
		Short: "Transform every supported image in a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.config(cmd)
			if err != nil {
				return err
			}
			return processDir(args[0], args[1], f, cfg)
		},
	}
	f.register(cmd)
	return cmd
}

func processDir(srcDir, dstDir string, f *processFlags, cfg transform.Config) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		if os.IsNotExist(err) {
			return &imgio.NotFoundError{Path: srcDir, Err: err}
		}
		return err
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := imgio.FormatFromPath(entry.Name()); err != nil {
			continue // not an image, skip silently
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		return fmt.Errorf("no supported images in %s", srcDir)
	}

	for _, name := range names {
		out := filepath.Join(dstDir, name)
		if f.format != "" {
			format, err := imgio.ParseFormat(f.format)
			if err != nil {
				return err
			}
			ext := "." + string(format)
			if format == imgio.JPEG {
				ext = ".jpg"
			}
			out = filepath.Join(dstDir, trimExt(name)+ext)
		}
		if err := processFile(filepath.Join(srcDir, name), out, f, cfg); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
