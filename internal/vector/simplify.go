package vector

import (
	"math"

	"github.com/twpayne/go-geom"
)

// simplifyPolygon reduces vertex counts ring by ring with Douglas-Peucker.
// A ring whose simplification would self-intersect or collapse keeps its
// original coordinates, and a polygon whose simplified rings cross each
// other keeps all of them, so the result never degrades below a valid
// polygon.
func simplifyPolygon(p *geom.Polygon, tolerance float64) *geom.Polygon {
	rings := make([][]geom.Coord, p.NumLinearRings())
	for i := range rings {
		rings[i] = simplifyRing(p.LinearRing(i).Coords(), tolerance)
	}
	if ringsCross(rings) {
		return p
	}

	out := geom.NewPolygon(geom.XY).SetSRID(p.SRID())
	for _, ring := range rings {
		// Push cannot fail for XY coords of a well-formed ring.
		_ = out.Push(geom.NewLinearRing(geom.XY).MustSetCoords(ring))
	}
	return out
}

// ringsCross reports whether any two distinct closed rings have crossing
// segments. Simplifying the exterior and a hole independently can pull the
// exterior through the hole even when each ring stays simple on its own.
func ringsCross(rings [][]geom.Coord) bool {
	for a := 0; a < len(rings); a++ {
		for b := a + 1; b < len(rings); b++ {
			for i := 0; i+1 < len(rings[a]); i++ {
				for j := 0; j+1 < len(rings[b]); j++ {
					if segmentsCross(rings[a][i], rings[a][i+1], rings[b][j], rings[b][j+1]) {
						return true
					}
				}
			}
		}
	}
	return false
}

// simplifyRing runs Douglas-Peucker over a closed ring (first == last).
// The closure point is pinned; a degenerate anchor segment falls back to
// point distance, which keeps the farthest vertex and lets the recursion
// split the ring properly.
func simplifyRing(ring []geom.Coord, tolerance float64) []geom.Coord {
	// A closed triangle has 4 coordinates; nothing below 5 can shrink.
	if tolerance <= 0 || len(ring) <= 5 {
		return ring
	}

	keep := make([]bool, len(ring))
	keep[0] = true
	keep[len(ring)-1] = true
	dpMark(ring, 0, len(ring)-1, tolerance, keep)

	out := make([]geom.Coord, 0, len(ring))
	for i, k := range keep {
		if k {
			out = append(out, ring[i])
		}
	}

	if len(out) < 4 || signedArea(out[:len(out)-1]) == 0 || ringSelfIntersects(out) {
		return ring
	}
	return out
}

// dpMark marks the vertices to keep between first and last.
func dpMark(pts []geom.Coord, first, last int, tolerance float64, keep []bool) {
	if last <= first+1 {
		return
	}
	maxDist := -1.0
	idx := -1
	for i := first + 1; i < last; i++ {
		if d := segmentDistance(pts[i], pts[first], pts[last]); d > maxDist {
			maxDist = d
			idx = i
		}
	}
	if maxDist > tolerance {
		keep[idx] = true
		dpMark(pts, first, idx, tolerance, keep)
		dpMark(pts, idx, last, tolerance, keep)
	}
}

// segmentDistance returns the distance from p to segment ab.
func segmentDistance(p, a, b geom.Coord) float64 {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(p[0]-a[0], p[1]-a[1])
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(p[0]-(a[0]+t*dx), p[1]-(a[1]+t*dy))
}

// ringSelfIntersects reports whether any two non-adjacent segments of a
// closed ring cross.
func ringSelfIntersects(ring []geom.Coord) bool {
	n := len(ring) - 1 // segment count, ring is closed
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			// Skip the wrap adjacency between the last and first segment.
			if i == 0 && j == n-1 {
				continue
			}
			if segmentsCross(ring[i], ring[i+1], ring[j], ring[j+1]) {
				return true
			}
		}
	}
	return false
}

// segmentsCross reports whether segments pq and rs properly intersect or
// overlap collinearly.
func segmentsCross(p, q, r, s geom.Coord) bool {
	d1 := orient(r, s, p)
	d2 := orient(r, s, q)
	d3 := orient(p, q, r)
	d4 := orient(p, q, s)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(r, s, p) {
		return true
	}
	if d2 == 0 && onSegment(r, s, q) {
		return true
	}
	if d3 == 0 && onSegment(p, q, r) {
		return true
	}
	if d4 == 0 && onSegment(p, q, s) {
		return true
	}
	return false
}

func orient(a, b, c geom.Coord) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func onSegment(a, b, p geom.Coord) bool {
	return math.Min(a[0], b[0]) <= p[0] && p[0] <= math.Max(a[0], b[0]) &&
		math.Min(a[1], b[1]) <= p[1] && p[1] <= math.Max(a[1], b[1])
}
