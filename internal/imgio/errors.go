package imgio

import "fmt"

// NotFoundError reports that an input path does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("image not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// DecodeError reports that bytes could not be parsed as a supported image
// or animation format.
type DecodeError struct {
	Source string // path, or "bytes"/"base64" for in-memory input
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports that an image could not be written: the format cannot
// represent the image, an option is invalid, or the destination is not
// writable.
type EncodeError struct {
	Format Format
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("failed to encode %s: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("failed to encode image: %v", e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// ResourceLimitError reports that an image or animation exceeds a configured
// budget. Pixels/Frames hold the measured values, Max the allowed ones.
type ResourceLimitError struct {
	Pixels    int
	MaxPixels int
	Frames    int
	MaxFrames int
}

func (e *ResourceLimitError) Error() string {
	if e.MaxFrames > 0 && e.Frames > e.MaxFrames {
		return fmt.Sprintf("animation has %d frames, limit is %d", e.Frames, e.MaxFrames)
	}
	return fmt.Sprintf("image has %d pixels, limit is %d", e.Pixels, e.MaxPixels)
}
