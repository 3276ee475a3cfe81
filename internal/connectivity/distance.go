package connectivity

import (
	"math"
)

// unreachable is the squared-distance sentinel for pixels with no source in
// sight. It is far above any realistic squared pixel distance while staying
// finite, which keeps the parabola-envelope arithmetic well defined.
const unreachable = 1e20

// DistanceGrid holds, per pixel, the exact Euclidean distance in ground
// units to the nearest non-forest pixel. Non-forest pixels carry 0. Forest
// pixels on a tile with no non-forest pixels at all carry +Inf.
type DistanceGrid struct {
	Width  int
	Height int
	Meters []float64
}

// At returns the distance at (col, row).
func (d *DistanceGrid) At(col, row int) float64 {
	return d.Meters[row*d.Width+col]
}

// ComputeDistance runs an exact two-pass squared Euclidean distance
// transform (Felzenszwalb-Huttenlocher) over the mask, treating every
// non-forest pixel as a source at distance zero, then scales pixel distances
// by resolution to ground units. Cells outside the grid are not sources:
// forest touching the tile edge is treated as interior, so only actual
// non-forest cells seed the transform.
func ComputeDistance(m *Mask, resolution float64) (*DistanceGrid, error) {
	if resolution <= 0 {
		return nil, &ConfigurationError{Reason: "resolution must be positive"}
	}

	w, h := m.Width, m.Height
	sq := make([]float64, w*h)
	for i, forest := range m.Bits {
		if forest {
			sq[i] = unreachable
		}
	}

	n := w
	if h > n {
		n = h
	}
	f := make([]float64, n)
	d := make([]float64, n)
	v := make([]int, n)
	z := make([]float64, n+1)

	// Column pass: 1D transform down each column.
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			f[y] = sq[y*w+x]
		}
		dt1d(f[:h], d[:h], v[:h], z[:h+1])
		for y := 0; y < h; y++ {
			sq[y*w+x] = d[y]
		}
	}

	// Row pass: 1D transform across each row of column results.
	for y := 0; y < h; y++ {
		copy(f[:w], sq[y*w:(y+1)*w])
		dt1d(f[:w], d[:w], v[:w], z[:w+1])
		copy(sq[y*w:(y+1)*w], d[:w])
	}

	meters := make([]float64, w*h)
	for i, s := range sq {
		if s >= unreachable {
			meters[i] = math.Inf(1)
			continue
		}
		meters[i] = math.Sqrt(s) * resolution
	}
	return &DistanceGrid{Width: w, Height: h, Meters: meters}, nil
}

// dt1d computes the 1D squared distance transform of f into d using the
// lower envelope of parabolas. v and z are scratch buffers of len(f) and
// len(f)+1 respectively.
func dt1d(f, d []float64, v []int, z []float64) {
	n := len(f)
	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)

	for q := 1; q < n; q++ {
		s := intersect(f, q, v[k])
		for s <= z[k] {
			k--
			s = intersect(f, q, v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = math.Inf(1)
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
	}
}

// intersect returns the horizontal position where the parabola rooted at q
// overtakes the one rooted at p.
func intersect(f []float64, q, p int) float64 {
	return ((f[q] + float64(q*q)) - (f[p] + float64(p*p))) / float64(2*(q-p))
}
