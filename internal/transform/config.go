package transform

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"gopkg.in/yaml.v3"
)

// Resample selects the resampling filter used by geometric operations.
// The zero value is ResampleHigh so an unset Config gets the high-quality
// filter.
type Resample int

const (
	// ResampleHigh is Lanczos resampling, the anti-aliasing default.
	ResampleHigh Resample = iota
	// ResampleNearest is nearest-neighbor, fastest and blockiest.
	ResampleNearest
	// ResampleBilinear is linear interpolation.
	ResampleBilinear
)

func (r Resample) filter() imaging.ResampleFilter {
	switch r {
	case ResampleNearest:
		return imaging.NearestNeighbor
	case ResampleBilinear:
		return imaging.Linear
	default:
		return imaging.Lanczos
	}
}

func (r Resample) String() string {
	switch r {
	case ResampleNearest:
		return "nearest"
	case ResampleBilinear:
		return "bilinear"
	default:
		return "high"
	}
}

// ParseResample converts a filter name ("high", "nearest", "bilinear") to a
// Resample value.
func ParseResample(name string) (Resample, error) {
	switch strings.ToLower(name) {
	case "", "high", "lanczos":
		return ResampleHigh, nil
	case "nearest":
		return ResampleNearest, nil
	case "bilinear", "linear":
		return ResampleBilinear, nil
	default:
		return 0, &ConfigurationError{Param: "resample", Reason: fmt.Sprintf("unknown filter %q", name)}
	}
}

// UnmarshalYAML accepts the same names as ParseResample.
func (r *Resample) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseResample(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// MarshalYAML emits the filter name.
func (r Resample) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// HexColor is an RGB triple parsed from "#RRGGBB" notation.
type HexColor struct {
	R uint8
	G uint8
	B uint8
}

// ParseHexColor parses "#RRGGBB" or "RRGGBB" (case-insensitive).
func ParseHexColor(s string) (HexColor, error) {
	t := strings.TrimPrefix(s, "#")
	if len(t) != 6 {
		return HexColor{}, &ConfigurationError{Param: "color", Reason: fmt.Sprintf("%q is not #RRGGBB", s)}
	}
	var c HexColor
	if _, err := fmt.Sscanf(strings.ToUpper(t), "%02X%02X%02X", &c.R, &c.G, &c.B); err != nil {
		return HexColor{}, &ConfigurationError{Param: "color", Reason: fmt.Sprintf("%q is not #RRGGBB", s)}
	}
	return c, nil
}

// String returns the color in "#RRGGBB" form.
func (c HexColor) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// NRGBA returns the color as a fully opaque color.NRGBA.
func (c HexColor) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// UnmarshalYAML parses a "#RRGGBB" scalar.
func (c *HexColor) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseHexColor(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// MarshalYAML emits "#RRGGBB".
func (c HexColor) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// TintSpec blends Color into the image with the given Intensity
// (0.0 = no change, 1.0 = fully replaced).
type TintSpec struct {
	Color     HexColor `yaml:"color"`
	Intensity float64  `yaml:"intensity"`
}

// Transparency keys out pixels matching Color within Tolerance
// (Euclidean RGB distance in 8-bit channel units; 0 = exact match).
type Transparency struct {
	Color     HexColor `yaml:"color"`
	Tolerance float64  `yaml:"tolerance"`
}

// Config is the full transformation configuration shared by the CLI and the
// image manager. Every field is optional; the zero value of each field is
// the identity for that axis.
//
// Factor fields (Contrast, Saturation, Brightness) are pointers because 0.0
// is a meaningful value for them (flat gray / desaturated / black); nil
// means "leave unchanged".
type Config struct {
	// Width and Height select the resize target; 0 for both skips the
	// resize step.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// PreserveAspect fits the image inside Width x Height keeping the
	// aspect ratio, flooring fractional dimensions.
	PreserveAspect bool `yaml:"preserve_aspect"`
	// Resample selects the resampling filter for resize and clip-rotation.
	Resample Resample `yaml:"resample"`

	// Rotate is the counter-clockwise rotation in degrees; 0 skips.
	Rotate float64 `yaml:"rotate"`

	Grayscale bool `yaml:"grayscale"`

	Contrast   *float64 `yaml:"contrast"`
	Saturation *float64 `yaml:"saturation"`
	Brightness *float64 `yaml:"brightness"`

	Tint *TintSpec `yaml:"tint"`

	// BlurRadius <= 0 skips the blur step.
	BlurRadius float64 `yaml:"blur_radius"`
	// SharpenFactor <= 0 skips the sharpen step.
	SharpenFactor float64 `yaml:"sharpen_factor"`

	Transparency *Transparency `yaml:"transparency"`

	// MaxPixels bounds intermediate image growth (rotation expansion,
	// upscaling); 0 applies imgio.DefaultLimits, -1 disables the check.
	// Not part of the user-facing configuration surface.
	MaxPixels int `yaml:"-"`
}

// Validate eagerly checks the parameters that have hard ranges. Factor
// parameters are documented as unclamped and pass through untouched.
func (c Config) Validate() error {
	if c.Width < 0 {
		return &ConfigurationError{Param: "width", Reason: fmt.Sprintf("negative size %d", c.Width)}
	}
	if c.Height < 0 {
		return &ConfigurationError{Param: "height", Reason: fmt.Sprintf("negative size %d", c.Height)}
	}
	if (c.Width > 0) != (c.Height > 0) {
		return &ConfigurationError{Param: "size", Reason: "width and height must be set together"}
	}
	if c.Transparency != nil && c.Transparency.Tolerance < 0 {
		return &ConfigurationError{Param: "transparency.tolerance", Reason: "must be >= 0"}
	}
	return nil
}

func (c Config) hasResize() bool {
	return c.Width > 0 && c.Height > 0
}

// IsIdentity reports whether applying the configuration would change
// nothing.
func (c Config) IsIdentity() bool {
	return !c.hasResize() && c.Rotate == 0 && !c.Grayscale &&
		c.Contrast == nil && c.Saturation == nil && c.Brightness == nil &&
		c.Tint == nil && c.BlurRadius <= 0 && c.SharpenFactor <= 0 &&
		c.Transparency == nil
}

// RotationOnly reports whether the configuration requests a rotation and
// nothing else. The image manager uses this to route rotations through the
// stored base image instead of committing a new base.
func (c Config) RotationOnly() bool {
	return c.Rotate != 0 && c.WithoutRotation().IsIdentity()
}

// WithoutRotation returns a copy of the configuration with the rotation
// cleared.
func (c Config) WithoutRotation() Config {
	c.Rotate = 0
	return c
}
