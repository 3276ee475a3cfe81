package connectivity

import (
	"github.com/terracanopy/connectivity-cli/internal/raster"
)

// Mask is a binary forest/non-forest grid derived from a land-cover raster.
type Mask struct {
	Width  int
	Height int
	Bits   []bool
}

// At reports whether (col, row) is forest.
func (m *Mask) At(col, row int) bool {
	return m.Bits[row*m.Width+col]
}

// CountForest returns the number of forest pixels.
func (m *Mask) CountForest() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// ExtractMask maps a categorical raster to a forest mask: a pixel is forest
// iff its code is a member of forestCodes. An empty code set yields an
// all-false mask.
func ExtractMask(r *raster.Raster, forestCodes []int) *Mask {
	set := make(map[int]struct{}, len(forestCodes))
	for _, c := range forestCodes {
		set[c] = struct{}{}
	}

	bits := make([]bool, len(r.Codes))
	for i, code := range r.Codes {
		_, ok := set[code]
		bits[i] = ok
	}
	return &Mask{Width: r.Width, Height: r.Height, Bits: bits}
}
