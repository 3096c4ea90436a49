package imgio

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"photo.png", PNG},
		{"photo.PNG", PNG},
		{"photo.jpg", JPEG},
		{"photo.jpeg", JPEG},
		{"photo.bmp", BMP},
		{"anim.gif", GIF},
		{"scan.tif", TIFF},
		{"scan.tiff", TIFF},
		{"photo.webp", WebP},
		{"favicon.ico", ICO},
		{"/some/dir/photo.Jpg", JPEG},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if err != nil {
				t.Fatalf("FormatFromPath(%q) failed: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestFormatFromPath_Unknown(t *testing.T) {
	for _, path := range []string{"file.txt", "file", "file.svg"} {
		if _, err := FormatFromPath(path); err == nil {
			t.Errorf("FormatFromPath(%q) should fail", path)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"png", PNG},
		{"jpg", JPEG},
		{"JPEG", JPEG},
		{".webp", WebP},
		{"tif", TIFF},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.name)
		if err != nil {
			t.Fatalf("ParseFormat(%q) failed: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}

	if _, err := ParseFormat("svg"); err == nil {
		t.Error("ParseFormat(svg) should fail")
	}
}

func TestSniffFormat(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 60), uint8(y * 60), 0, 255})
		}
	}

	var pngBuf, jpegBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	if err := jpeg.Encode(&jpegBuf, img, nil); err != nil {
		t.Fatalf("jpeg encode: %v", err)
	}

	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"png", pngBuf.Bytes(), PNG},
		{"jpeg", jpegBuf.Bytes(), JPEG},
		{"gif", []byte("GIF89a\x00\x00"), GIF},
		{"bmp", []byte("BM\x00\x00\x00\x00"), BMP},
		{"tiff little-endian", []byte{'I', 'I', 0x2A, 0x00}, TIFF},
		{"tiff big-endian", []byte{'M', 'M', 0x00, 0x2A}, TIFF},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBP"), WebP},
		{"ico", []byte{0x00, 0x00, 0x01, 0x00}, ICO},
		{"garbage", []byte("not an image at all"), ""},
		{"short", []byte{0x89}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SniffFormat(tt.data); got != tt.want {
				t.Errorf("SniffFormat = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatPredicates(t *testing.T) {
	if !JPEG.Lossy() || !WebP.Lossy() {
		t.Error("JPEG and WebP should be lossy")
	}
	if PNG.Lossy() || GIF.Lossy() {
		t.Error("PNG and GIF should be lossless")
	}
	if JPEG.SupportsAlpha() || BMP.SupportsAlpha() {
		t.Error("JPEG and BMP should not support alpha")
	}
	if !PNG.SupportsAlpha() || !WebP.SupportsAlpha() {
		t.Error("PNG and WebP should support alpha")
	}
	if got := ICO.MimeType(); got != "image/x-icon" {
		t.Errorf("ICO mime type: got %s", got)
	}
	if got := PNG.MimeType(); got != "image/png" {
		t.Errorf("PNG mime type: got %s", got)
	}
}
