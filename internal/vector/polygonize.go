package vector

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/terracanopy/connectivity-cli/internal/connectivity"
	"github.com/terracanopy/connectivity-cli/internal/raster"
)

// boundaryEdge is one directed unit segment of a region boundary in pixel
// vertex coordinates. Edges are emitted so that the region interior lies on
// a consistent side, which makes chained edges close into rings.
type boundaryEdge struct {
	fx, fy int
	tx, ty int
	used   bool
}

// Polygonize extracts every maximal 8-connected region of same-class pixels
// from the classified raster, excluding NonForest, and returns one polygon
// per region with its boundary traced along pixel edges and mapped through
// the affine transform. A raster with no forest pixels yields an empty,
// non-nil slice.
func Polygonize(c *connectivity.Classified, transform raster.Affine, crs string) ([]Feature, error) {
	w, h := c.Width, c.Height
	labels, classes := labelRegions(c)
	srid := parseSRID(crs)

	// Collect boundary edges per region.
	edges := make([][]boundaryEdge, len(classes))
	labelAt := func(x, y int) int32 {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return labels[y*w+x]
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			l := labels[y*w+x]
			if l == 0 {
				continue
			}
			i := l - 1
			if labelAt(x, y-1) != l {
				edges[i] = append(edges[i], boundaryEdge{fx: x, fy: y, tx: x + 1, ty: y})
			}
			if labelAt(x+1, y) != l {
				edges[i] = append(edges[i], boundaryEdge{fx: x + 1, fy: y, tx: x + 1, ty: y + 1})
			}
			if labelAt(x, y+1) != l {
				edges[i] = append(edges[i], boundaryEdge{fx: x + 1, fy: y + 1, tx: x, ty: y + 1})
			}
			if labelAt(x-1, y) != l {
				edges[i] = append(edges[i], boundaryEdge{fx: x, fy: y + 1, tx: x, ty: y})
			}
		}
	}

	features := make([]Feature, 0, len(classes))
	for i, cl := range classes {
		rings := traceRings(edges[i], w)
		poly, err := assemblePolygon(rings, transform, srid)
		if err != nil {
			return nil, err
		}
		features = append(features, Feature{
			Geometry:  poly,
			Class:     cl,
			ClassName: cl.String(),
			AreaHa:    planarArea(poly) / 10000,
		})
	}
	return features, nil
}

// labelRegions assigns labels to maximal 8-connected same-class regions.
// NonForest pixels stay 0. Returns the label grid and the class of each
// label, indexed by label-1.
func labelRegions(c *connectivity.Classified) ([]int32, []connectivity.Class) {
	w, h := c.Width, c.Height
	labels := make([]int32, w*h)
	var classes []connectivity.Class

	var stack [][2]int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if c.Classes[i] == connectivity.ClassNonForest || labels[i] != 0 {
				continue
			}
			cl := c.Classes[i]
			classes = append(classes, cl)
			l := int32(len(classes))
			labels[i] = l
			stack = append(stack[:0], [2]int{x, y})
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := p[0]+dx, p[1]+dy
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						j := ny*w + nx
						if labels[j] == 0 && c.Classes[j] == cl {
							labels[j] = l
							stack = append(stack, [2]int{nx, ny})
						}
					}
				}
			}
		}
	}
	return labels, classes
}

// traceRings chains the directed boundary edges of one region into closed
// rings of pixel-vertex coordinates. At a pinch vertex, where two diagonal
// pixels of the region meet others at a corner, the walk continues into the
// diagonal pixel so the region stays a single ring.
func traceRings(edges []boundaryEdge, width int) [][][2]int {
	stride := width + 1
	starts := make(map[int][]int, len(edges))
	for i, e := range edges {
		k := e.fy*stride + e.fx
		starts[k] = append(starts[k], i)
	}

	var rings [][][2]int
	for i := range edges {
		if edges[i].used {
			continue
		}
		startKey := edges[i].fy*stride + edges[i].fx
		ring := [][2]int{{edges[i].fx, edges[i].fy}}
		edges[i].used = true
		cur := i

		for {
			endKey := edges[cur].ty*stride + edges[cur].tx
			if endKey == startKey {
				break
			}
			next := pickNext(edges, starts[endKey], cur)
			if next < 0 {
				break
			}
			ring = append(ring, [2]int{edges[next].fx, edges[next].fy})
			edges[next].used = true
			cur = next
		}
		rings = append(rings, compressRing(ring))
	}
	return rings
}

// pickNext selects the outgoing edge continuing the walk from the end of
// cur. With multiple candidates the sharpest clockwise turn wins, which
// carries the boundary through pinch corners instead of splitting the
// region into separate rings.
func pickNext(edges []boundaryEdge, candidates []int, cur int) int {
	dx := edges[cur].tx - edges[cur].fx
	dy := edges[cur].ty - edges[cur].fy

	best := -1
	bestCross := 0
	for _, c := range candidates {
		if edges[c].used {
			continue
		}
		ex := edges[c].tx - edges[c].fx
		ey := edges[c].ty - edges[c].fy
		cross := dx*ey - dy*ex
		if best < 0 || cross < bestCross {
			best = c
			bestCross = cross
		}
	}
	return best
}

// compressRing removes collinear intermediate vertices, including across
// the ring wrap.
func compressRing(ring [][2]int) [][2]int {
	n := len(ring)
	if n < 3 {
		return ring
	}
	out := make([][2]int, 0, n)
	for i := 0; i < n; i++ {
		prev := ring[(i-1+n)%n]
		next := ring[(i+1)%n]
		v1x, v1y := ring[i][0]-prev[0], ring[i][1]-prev[1]
		v2x, v2y := next[0]-ring[i][0], next[1]-ring[i][1]
		if v1x*v2y-v1y*v2x != 0 {
			out = append(out, ring[i])
		}
	}
	if len(out) < 3 {
		return ring
	}
	return out
}

// assemblePolygon builds a go-geom polygon from pixel-vertex rings: the
// ring with the largest signed area becomes the exterior, the rest holes.
// Vertices are mapped to ground coordinates through the affine transform.
func assemblePolygon(rings [][][2]int, transform raster.Affine, srid int) (*geom.Polygon, error) {
	outer := 0
	best := 0.0
	for i, r := range rings {
		coords := make([]geom.Coord, len(r))
		for j, p := range r {
			coords[j] = geom.Coord{float64(p[0]), float64(p[1])}
		}
		if a := signedArea(coords); a > best {
			best = a
			outer = i
		}
	}

	poly := geom.NewPolygon(geom.XY).SetSRID(srid)
	order := make([]int, 0, len(rings))
	order = append(order, outer)
	for i := range rings {
		if i != outer {
			order = append(order, i)
		}
	}
	for _, i := range order {
		r := rings[i]
		flat := make([]float64, 0, (len(r)+1)*2)
		for _, p := range r {
			x, y := transform.PixelToGround(float64(p[0]), float64(p[1]))
			flat = append(flat, x, y)
		}
		// Close the ring.
		x, y := transform.PixelToGround(float64(r[0][0]), float64(r[0][1]))
		flat = append(flat, x, y)

		if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
			return nil, eris.Wrap(err, "vector: push ring")
		}
	}
	return poly, nil
}

// parseSRID extracts the numeric id from identifiers like "EPSG:32643".
// Unknown formats map to SRID 0.
func parseSRID(crs string) int {
	idx := strings.LastIndexByte(crs, ':')
	if idx < 0 {
		return 0
	}
	srid, err := strconv.Atoi(crs[idx+1:])
	if err != nil {
		return 0
	}
	return srid
}
