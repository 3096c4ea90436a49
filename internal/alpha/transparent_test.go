package alpha

import (
	"image"
	"image/color"
	"testing"
)

// createFlagImage builds an image with a centered red square on a white
// background.
func createFlagImage(size, square int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	off := (size - square) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.NRGBA{255, 255, 255, 255}
			if x >= off && x < off+square && y >= off && y < off+square {
				c = color.NRGBA{255, 0, 0, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestMakeColorTransparent_ExactMatch(t *testing.T) {
	img := createFlagImage(100, 40)
	white := color.NRGBA{255, 255, 255, 255}

	out, stats := MakeColorTransparent(img, Match{Color: white})

	wantWhite := 100*100 - 40*40
	if stats.NewlyTransparent != wantWhite {
		t.Errorf("newly transparent: got %d, want %d", stats.NewlyTransparent, wantWhite)
	}
	if stats.AlreadyTransparent != 0 {
		t.Errorf("already transparent: got %d, want 0", stats.AlreadyTransparent)
	}
	if stats.Total != 100*100 {
		t.Errorf("total: got %d, want 10000", stats.Total)
	}

	// White pixels are now transparent, red pixels untouched.
	if c := out.NRGBAAt(0, 0); c.A != 0 {
		t.Errorf("corner pixel alpha: got %d, want 0", c.A)
	}
	if c := out.NRGBAAt(50, 50); c != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("center pixel: got %v, want opaque red", c)
	}
}

func TestMakeColorTransparent_PreservesExistingAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	img.SetNRGBA(0, 0, color.NRGBA{0, 128, 0, 255}) // opaque match
	img.SetNRGBA(1, 0, color.NRGBA{0, 128, 0, 128}) // semi-transparent match
	img.SetNRGBA(2, 0, color.NRGBA{0, 128, 0, 0})   // fully transparent match
	img.SetNRGBA(3, 0, color.NRGBA{9, 9, 9, 255})   // opaque non-match

	out, stats := MakeColorTransparent(img, Match{Color: color.NRGBA{0, 128, 0, 255}})

	if got := out.NRGBAAt(0, 0).A; got != 0 {
		t.Errorf("opaque match alpha: got %d, want 0", got)
	}
	if got := out.NRGBAAt(1, 0).A; got != 128 {
		t.Errorf("semi-transparent pixel alpha changed: got %d, want 128", got)
	}
	if got := out.NRGBAAt(2, 0).A; got != 0 {
		t.Errorf("fully transparent pixel alpha: got %d, want 0", got)
	}
	if got := out.NRGBAAt(3, 0).A; got != 255 {
		t.Errorf("non-matching pixel alpha: got %d, want 255", got)
	}

	if stats.NewlyTransparent != 1 {
		t.Errorf("newly transparent: got %d, want 1", stats.NewlyTransparent)
	}
	if stats.AlreadyTransparent != 2 {
		t.Errorf("already transparent: got %d, want 2", stats.AlreadyTransparent)
	}
}

func TestMakeColorTransparent_Tolerance(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{200, 200, 200, 255})
	img.SetNRGBA(1, 0, color.NRGBA{205, 200, 200, 255}) // distance 5
	img.SetNRGBA(2, 0, color.NRGBA{240, 200, 200, 255}) // distance 40

	target := color.NRGBA{200, 200, 200, 255}

	tests := []struct {
		name      string
		tolerance float64
		want      [3]uint8 // expected alpha per pixel
	}{
		{"exact only", 0, [3]uint8{0, 255, 255}},
		{"tolerance 10", 10, [3]uint8{0, 0, 255}},
		{"tolerance 50", 50, [3]uint8{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := MakeColorTransparent(img, Match{Color: target, Tolerance: tt.tolerance})
			for x := 0; x < 3; x++ {
				if got := out.NRGBAAt(x, 0).A; got != tt.want[x] {
					t.Errorf("pixel %d alpha: got %d, want %d", x, got, tt.want[x])
				}
			}
		})
	}
}

func TestMakeColorTransparent_NoMatchIsNoop(t *testing.T) {
	img := createFlagImage(10, 4)

	out, stats := MakeColorTransparent(img, Match{Color: color.NRGBA{1, 2, 3, 255}})

	if stats.NewlyTransparent != 0 {
		t.Errorf("newly transparent: got %d, want 0", stats.NewlyTransparent)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if out.NRGBAAt(x, y).A != 255 {
				t.Fatalf("pixel (%d,%d) alpha changed on a no-match call", x, y)
			}
		}
	}
}

func TestMakeColorTransparent_AddsAlphaChannel(t *testing.T) {
	// YCbCr-free stand-in for an image without alpha: image.Gray.
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(0, 0, color.Gray{255})
	img.SetGray(1, 0, color.Gray{0})

	out, stats := MakeColorTransparent(img, Match{Color: color.NRGBA{255, 255, 255, 255}})

	if got := out.NRGBAAt(0, 0).A; got != 0 {
		t.Errorf("white pixel alpha: got %d, want 0", got)
	}
	if got := out.NRGBAAt(1, 0).A; got != 255 {
		t.Errorf("black pixel alpha: got %d, want 255", got)
	}
	if stats.AlreadyTransparent != 0 {
		t.Errorf("already transparent: got %d, want 0", stats.AlreadyTransparent)
	}
}

func TestRemoveBackground_SameSemantics(t *testing.T) {
	img := createFlagImage(50, 20)
	m := Match{Color: color.NRGBA{255, 255, 255, 255}, Tolerance: 10}

	a, statsA := MakeColorTransparent(img, m)
	b, statsB := RemoveBackground(img, m)

	if statsA != statsB {
		t.Errorf("stats diverge: %+v vs %+v", statsA, statsB)
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatal("RemoveBackground output differs from MakeColorTransparent")
		}
	}
}
