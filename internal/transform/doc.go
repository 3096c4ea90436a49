// Package transform implements the unified image transformation core.
//
// Every editing surface in the application (the batch CLI and the interactive
// image manager) routes through this package, so a given Config applied to a
// given input produces byte-identical output regardless of the entry point.
//
// # Purity
//
// All functions take an image.Image plus scalar parameters and return a new
// *image.NRGBA. Inputs are never mutated, no function does I/O, and there is
// no shared state between calls.
//
// # Canonical Order
//
// Apply runs the requested transformations in one fixed order:
//
//	resize -> rotate -> grayscale -> contrast -> saturation -> brightness
//	       -> tint -> blur -> sharpen -> transparency
//
// Steps whose parameter is absent or at its identity value are skipped.
// Callers combining multiple parameters must use Apply rather than chaining
// the individual functions in an ad-hoc order.
//
// # Alpha Preservation
//
// Color and filter operations preserve the existing alpha channel
// pixel-for-pixel, including partial transparency. Blur and Sharpen restore
// the source alpha after convolution for this reason. Only the transparency
// step (package alpha) ever writes alpha values.
//
// # Clamping
//
// Contrast, saturation, and brightness factors are deliberately not clamped;
// out-of-range values amplify the effect and are the caller's responsibility.
// Tint intensity is clamped to [0, 1] because values outside that range have
// no meaningful interpolation.
package transform
