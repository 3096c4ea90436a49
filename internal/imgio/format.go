package imgio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a raster file format.
type Format string

// Supported formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
	GIF  Format = "gif"
	TIFF Format = "tiff"
	WebP Format = "webp"
	ICO  Format = "ico"
)

// FormatFromPath infers the format from a file extension.
//
// Recognized extensions: .png, .jpg, .jpeg, .bmp, .gif, .tif, .tiff, .webp,
// .ico (case-insensitive). Unknown extensions yield an *EncodeError.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".bmp":
		return BMP, nil
	case ".gif":
		return GIF, nil
	case ".tif", ".tiff":
		return TIFF, nil
	case ".webp":
		return WebP, nil
	case ".ico":
		return ICO, nil
	default:
		return "", &EncodeError{Err: fmt.Errorf("unrecognized extension %q", filepath.Ext(path))}
	}
}

// ParseFormat converts a user-supplied format name ("png", "jpg", ...) to a
// Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "gif":
		return GIF, nil
	case "tif", "tiff":
		return TIFF, nil
	case "webp":
		return WebP, nil
	case "ico":
		return ICO, nil
	default:
		return "", &EncodeError{Err: fmt.Errorf("unknown format %q", name)}
	}
}

// Lossy reports whether encoding in this format discards pixel data.
func (f Format) Lossy() bool {
	return f == JPEG || f == WebP
}

// SupportsAlpha reports whether the format can store an alpha channel.
// GIF alpha is 1-bit (fully transparent or fully opaque).
func (f Format) SupportsAlpha() bool {
	switch f {
	case PNG, GIF, TIFF, WebP, ICO:
		return true
	}
	return false
}

// MimeType returns the IANA media type for the format.
func (f Format) MimeType() string {
	if f == ICO {
		return "image/x-icon"
	}
	return "image/" + string(f)
}

var (
	pngSignature  = [...]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	riffSignature = [...]byte{'R', 'I', 'F', 'F'}
	webpSignature = [...]byte{'W', 'E', 'B', 'P'}
)

// SniffFormat identifies the format of raw image bytes by magic number.
// It returns "" when the bytes match no supported format.
func SniffFormat(data []byte) Format {
	if len(data) < 4 {
		return ""
	}

	// JPEG: FF D8 FF
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return JPEG
	}

	// PNG: 89 50 4E 47 0D 0A 1A 0A
	if hasPrefix(data, pngSignature[:]) {
		return PNG
	}

	// GIF87a or GIF89a
	if len(data) >= 6 && data[0] == 'G' && data[1] == 'I' && data[2] == 'F' &&
		data[3] == '8' && (data[4] == '7' || data[4] == '9') && data[5] == 'a' {
		return GIF
	}

	// WebP: RIFF....WEBP
	if len(data) >= 12 && hasPrefix(data, riffSignature[:]) &&
		data[8] == webpSignature[0] && data[9] == webpSignature[1] &&
		data[10] == webpSignature[2] && data[11] == webpSignature[3] {
		return WebP
	}

	// BMP: "BM"
	if data[0] == 'B' && data[1] == 'M' {
		return BMP
	}

	// TIFF: little-endian "II*\0" or big-endian "MM\0*"
	if (data[0] == 'I' && data[1] == 'I' && data[2] == 0x2A && data[3] == 0x00) ||
		(data[0] == 'M' && data[1] == 'M' && data[2] == 0x00 && data[3] == 0x2A) {
		return TIFF
	}

	// ICO: reserved 0, type 1
	if data[0] == 0x00 && data[1] == 0x00 && data[2] == 0x01 && data[3] == 0x00 {
		return ICO
	}

	return ""
}

func hasPrefix(buf, prefix []byte) bool {
	if len(buf) < len(prefix) {
		return false
	}
	for i, b := range prefix {
		if buf[i] != b {
			return false
		}
	}
	return true
}
