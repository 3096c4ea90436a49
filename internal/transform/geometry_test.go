package transform

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// createSolidImage builds a fully opaque single-color NRGBA image.
func createSolidImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestResize_Exact(t *testing.T) {
	img := createSolidImage(200, 100, color.NRGBA{10, 20, 30, 255})

	out, err := Resize(img, 50, 50, false, ResampleHigh)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if out.Bounds().Dx() != 50 || out.Bounds().Dy() != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestResize_PreserveAspect(t *testing.T) {
	tests := []struct {
		name             string
		srcW, srcH       int
		reqW, reqH       int
		wantW, wantH     int
	}{
		{"landscape 2:1 into square", 200, 100, 50, 50, 50, 25},
		{"portrait 1:2 into square", 100, 200, 50, 50, 25, 50},
		{"square into rectangle", 100, 100, 80, 40, 40, 40},
		{"upscale", 10, 20, 100, 100, 50, 100},
		{"non-integer scale floors", 100, 30, 50, 50, 50, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createSolidImage(tt.srcW, tt.srcH, color.NRGBA{255, 0, 0, 255})
			out, err := Resize(img, tt.reqW, tt.reqH, true, ResampleHigh)
			if err != nil {
				t.Fatalf("Resize failed: %v", err)
			}
			if out.Bounds().Dx() != tt.wantW || out.Bounds().Dy() != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d",
					out.Bounds().Dx(), out.Bounds().Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResize_InvalidSize(t *testing.T) {
	img := createSolidImage(10, 10, color.NRGBA{0, 0, 0, 255})
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, 10}, {10, -5}} {
		_, err := Resize(img, size[0], size[1], false, ResampleHigh)
		var ce *ConfigurationError
		if !errors.As(err, &ce) {
			t.Errorf("size %v: want *ConfigurationError, got %v", size, err)
		}
	}
}

func TestRotate_RightAngles(t *testing.T) {
	img := createSolidImage(30, 20, color.NRGBA{0, 255, 0, 255})

	tests := []struct {
		degrees      float64
		wantW, wantH int
	}{
		{0, 30, 20},
		{90, 20, 30},
		{180, 30, 20},
		{270, 20, 30},
		{-90, 20, 30},
		{450, 20, 30},
	}

	for _, tt := range tests {
		out := Rotate(img, tt.degrees, true)
		if out.Bounds().Dx() != tt.wantW || out.Bounds().Dy() != tt.wantH {
			t.Errorf("rotate %.0f: got %dx%d, want %dx%d",
				tt.degrees, out.Bounds().Dx(), out.Bounds().Dy(), tt.wantW, tt.wantH)
		}
	}
}

func TestRotate_RightAngleIsLossless(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 255, 0, 255})
	img.SetNRGBA(0, 1, color.NRGBA{0, 0, 255, 255})
	img.SetNRGBA(1, 1, color.NRGBA{255, 255, 255, 255})

	// Counter-clockwise 90: the top-right pixel moves to the top-left.
	out := Rotate(img, 90, true)
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("top-left after CCW 90: got %v, want green", got)
	}
	if got := out.NRGBAAt(0, 1); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("bottom-left after CCW 90: got %v, want red", got)
	}
}

func TestRotate_ExpandGrowsCanvasWithTransparentFill(t *testing.T) {
	img := createSolidImage(40, 40, color.NRGBA{200, 100, 50, 255})

	out := Rotate(img, 45, true)
	if out.Bounds().Dx() <= 40 || out.Bounds().Dy() <= 40 {
		t.Errorf("expanded canvas: got %dx%d, want larger than 40x40",
			out.Bounds().Dx(), out.Bounds().Dy())
	}
	// The corners of the expanded canvas are newly exposed area.
	if got := out.NRGBAAt(0, 0).A; got != 0 {
		t.Errorf("corner alpha: got %d, want 0 (transparent fill)", got)
	}
}

func TestRotate_NoExpandKeepsCanvas(t *testing.T) {
	img := createSolidImage(40, 40, color.NRGBA{200, 100, 50, 255})

	out := Rotate(img, 45, false)
	if out.Bounds().Dx() != 40 || out.Bounds().Dy() != 40 {
		t.Errorf("clipped canvas: got %dx%d, want 40x40", out.Bounds().Dx(), out.Bounds().Dy())
	}
	// Center survives, corners are clipped away (transparent).
	if got := out.NRGBAAt(20, 20).A; got != 255 {
		t.Errorf("center alpha: got %d, want 255", got)
	}
	if got := out.NRGBAAt(0, 0).A; got != 0 {
		t.Errorf("corner alpha: got %d, want 0 after clipping", got)
	}
}

func TestRotate_ZeroIsCopy(t *testing.T) {
	img := createSolidImage(10, 10, color.NRGBA{1, 2, 3, 255})
	out := Rotate(img, 0, true)

	for i := range out.Pix {
		if out.Pix[i] != img.Pix[i] {
			t.Fatal("rotate by 0 should be pixel-identical")
		}
	}
	// And it must be a copy, not the same buffer.
	out.Pix[0] = 99
	if img.Pix[0] == 99 {
		t.Error("rotate by 0 returned the input buffer")
	}
}

func TestCropToSquare(t *testing.T) {
	tests := []struct {
		name         string
		srcW, srcH   int
		wantSide     int
	}{
		{"landscape", 200, 100, 100},
		{"portrait", 100, 200, 100},
		{"already square", 50, 50, 50},
		{"odd remainder", 5, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createSolidImage(tt.srcW, tt.srcH, color.NRGBA{77, 77, 77, 255})
			out := CropToSquare(img)
			if out.Bounds().Dx() != tt.wantSide || out.Bounds().Dy() != tt.wantSide {
				t.Errorf("dimensions: got %dx%d, want %dx%d",
					out.Bounds().Dx(), out.Bounds().Dy(), tt.wantSide, tt.wantSide)
			}
		})
	}
}

func TestCropToSquare_TruncatesTrailingEdge(t *testing.T) {
	// 5x4 image: a symmetric crop of width 4 leaves offsets (0,0); the odd
	// extra column comes off the trailing (right) edge.
	img := image.NewNRGBA(image.Rect(0, 0, 5, 4))
	for x := 0; x < 5; x++ {
		for y := 0; y < 4; y++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 50), 0, 0, 255})
		}
	}

	out := CropToSquare(img)
	if got := out.NRGBAAt(0, 0).R; got != 0 {
		t.Errorf("leading column: got R=%d, want 0 (column 0 kept)", got)
	}
	if got := out.NRGBAAt(3, 0).R; got != 150 {
		t.Errorf("last column: got R=%d, want 150 (column 4 truncated)", got)
	}
}
