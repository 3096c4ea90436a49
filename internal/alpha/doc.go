// Package alpha implements transparency and background-removal operations.
//
// The operations here are the only code in the module that writes alpha
// values. Their central invariant: a pixel that is already partially or
// fully transparent is never modified, regardless of its color. Only fully
// opaque pixels whose color matches the target are keyed out. This is what
// distinguishes the implementation from a naive "replace matching color"
// pass, which would destroy existing soft edges and previous keying work.
//
// # Color Distance
//
// Tolerance matching uses Euclidean distance in RGB space, expressed in
// 8-bit channel units: distance = sqrt(dR² + dG² + dB²), so the useful range
// is 0 (exact equality) to about 441 (black vs white). A tolerance of 0
// requires exact RGB equality. The same metric is used by
// MakeColorTransparent, RemoveBackground, and the CLI, so a tolerance value
// behaves identically everywhere.
package alpha
