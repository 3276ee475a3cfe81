package connectivity

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Patch describes one 8-connected forest patch.
type Patch struct {
	ID     int     `json:"id"`
	Pixels int     `json:"pixels"`
	AreaHa float64 `json:"area_ha"`
}

// PatchSummary aggregates per-patch areas for a landscape.
type PatchSummary struct {
	Count         int     `json:"count"`
	Patches       []Patch `json:"patches"`
	MeanAreaHa    float64 `json:"mean_area_ha"`
	MedianAreaHa  float64 `json:"median_area_ha"`
	LargestAreaHa float64 `json:"largest_area_ha"`
}

// eightNeighbors lists the 8-connectivity offsets.
var eightNeighbors = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// LabelPatches assigns a positive label to every forest pixel such that
// pixels sharing a label form one maximal 8-connected patch. Non-forest
// pixels get label 0. Returns the label grid and the patch count.
func LabelPatches(m *Mask) ([]int32, int) {
	w, h := m.Width, m.Height
	labels := make([]int32, w*h)
	next := int32(0)

	var stack [][2]int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if !m.Bits[i] || labels[i] != 0 {
				continue
			}
			next++
			labels[i] = next
			stack = append(stack[:0], [2]int{x, y})
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for _, n := range eightNeighbors {
					nx, ny := p[0]+n[0], p[1]+n[1]
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					j := ny*w + nx
					if m.Bits[j] && labels[j] == 0 {
						labels[j] = next
						stack = append(stack, [2]int{nx, ny})
					}
				}
			}
		}
	}
	return labels, int(next)
}

// AnalyzePatches labels the forest patches of a mask and summarizes their
// size distribution in hectares.
func AnalyzePatches(m *Mask, resolution float64) (PatchSummary, error) {
	if resolution <= 0 {
		return PatchSummary{}, &ConfigurationError{Reason: "resolution must be positive"}
	}

	labels, count := LabelPatches(m)
	if count == 0 {
		return PatchSummary{Patches: []Patch{}}, nil
	}

	pixelAreaHa := resolution * resolution / 10000
	counts := make([]int, count+1)
	for _, l := range labels {
		if l > 0 {
			counts[l]++
		}
	}

	patches := make([]Patch, 0, count)
	areas := make([]float64, 0, count)
	for id := 1; id <= count; id++ {
		area := float64(counts[id]) * pixelAreaHa
		patches = append(patches, Patch{ID: id, Pixels: counts[id], AreaHa: area})
		areas = append(areas, area)
	}

	sorted := append([]float64(nil), areas...)
	sort.Float64s(sorted)

	return PatchSummary{
		Count:         count,
		Patches:       patches,
		MeanAreaHa:    stat.Mean(areas, nil),
		MedianAreaHa:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		LargestAreaHa: sorted[len(sorted)-1],
	}, nil
}
