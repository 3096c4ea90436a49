package alpha

import (
	"image"
	"image/color"
	"sort"
)

// Candidate is a background-color suggestion: a quantized color, how many
// corner pixels carried it, and which corners it was sampled from.
type Candidate struct {
	Color   color.NRGBA `json:"color"`
	Count   int         `json:"count"`
	Corners []string    `json:"corners"`
}

// maxCandidates bounds the suggestion list returned to callers.
const maxCandidates = 5

// DetectBackgroundCandidates samples the four corner regions of img,
// clusters similar colors, and returns candidate background colors ranked
// by how many corner pixels they cover (most frequent first, at most five).
//
// Each corner region is 10% of the corresponding dimension (at least one
// pixel). Colors are clustered by quantizing each channel to 16-unit
// buckets, so near-identical backgrounds with slight gradients still group
// into one candidate. Fully transparent pixels are skipped; they are
// already background.
func DetectBackgroundCandidates(img image.Image) []Candidate {
	b := img.Bounds()
	cw := b.Dx() / 10
	if cw < 1 {
		cw = 1
	}
	ch := b.Dy() / 10
	if ch < 1 {
		ch = 1
	}

	corners := []struct {
		name string
		rect image.Rectangle
	}{
		{"top-left", image.Rect(b.Min.X, b.Min.Y, b.Min.X+cw, b.Min.Y+ch)},
		{"top-right", image.Rect(b.Max.X-cw, b.Min.Y, b.Max.X, b.Min.Y+ch)},
		{"bottom-left", image.Rect(b.Min.X, b.Max.Y-ch, b.Min.X+cw, b.Max.Y)},
		{"bottom-right", image.Rect(b.Max.X-cw, b.Max.Y-ch, b.Max.X, b.Max.Y)},
	}

	type cluster struct {
		count   int
		corners map[string]bool
	}
	clusters := make(map[color.NRGBA]*cluster)

	for _, corner := range corners {
		for y := corner.rect.Min.Y; y < corner.rect.Max.Y; y++ {
			for x := corner.rect.Min.X; x < corner.rect.Max.X; x++ {
				r, g, bl, a := img.At(x, y).RGBA()
				if a == 0 {
					continue
				}
				// Quantize to 16-unit buckets to group similar colors.
				key := color.NRGBA{
					R: uint8(r>>8) / 16 * 16,
					G: uint8(g>>8) / 16 * 16,
					B: uint8(bl>>8) / 16 * 16,
					A: 255,
				}
				cl := clusters[key]
				if cl == nil {
					cl = &cluster{corners: make(map[string]bool)}
					clusters[key] = cl
				}
				cl.count++
				cl.corners[corner.name] = true
			}
		}
	}

	candidates := make([]Candidate, 0, len(clusters))
	for key, cl := range clusters {
		names := make([]string, 0, len(cl.corners))
		for _, corner := range corners {
			if cl.corners[corner.name] {
				names = append(names, corner.name)
			}
		}
		candidates = append(candidates, Candidate{Color: key, Count: cl.count, Corners: names})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Count != candidates[j].Count {
			return candidates[i].Count > candidates[j].Count
		}
		// Deterministic order for equal counts.
		a, b := candidates[i].Color, candidates[j].Color
		if a.R != b.R {
			return a.R < b.R
		}
		if a.G != b.G {
			return a.G < b.G
		}
		return a.B < b.B
	})

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates
}
