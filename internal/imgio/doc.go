// Package imgio loads, saves, and base64-encodes raster images.
//
// It is the only package in the module that touches the filesystem or an
// encoder. Everything above it (the transformation core, the transparency
// engine, the image manager) works on in-memory image.Image values produced
// here.
//
// # Supported Formats
//
// PNG, JPEG, BMP, GIF, TIFF, WebP, and ICO. The output format is inferred
// from the file extension unless overridden via SaveOptions. When loading
// from a byte slice, the format is sniffed from magic bytes.
//
// # Quality
//
// The Quality option (1-100) applies only to lossy formats (JPEG and WebP)
// and is ignored for lossless formats. The default is 95.
//
// # Alpha Flattening
//
// Formats without an alpha channel (JPEG, BMP) cannot represent transparent
// pixels. Save and Encode flatten such images onto an opaque white background
// rather than failing. The same policy applies everywhere an encode happens,
// so a CLI export and a GUI export of the same image are byte-identical.
//
// # Resource Limits
//
// Decoding reads the image header first and rejects images whose pixel count
// exceeds Limits.MaxPixels with a *ResourceLimitError, before the pixel data
// is allocated.
//
// # Error Handling
//
// Failures are reported through the typed errors in errors.go:
// *NotFoundError, *DecodeError, *EncodeError, and *ResourceLimitError.
// Callers classify them with errors.As.
package imgio
