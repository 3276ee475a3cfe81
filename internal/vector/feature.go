// Package vector converts classified connectivity rasters into vector
// polygons and handles dissolve, simplification, and export.
package vector

import (
	"math"

	"github.com/twpayne/go-geom"

	"github.com/terracanopy/connectivity-cli/internal/connectivity"
)

// Feature is a single-part polygon with its connectivity class and planar
// area in hectares.
type Feature struct {
	Geometry  *geom.Polygon
	Class     connectivity.Class
	ClassName string
	AreaHa    float64
}

// signedArea computes the shoelace area of a ring. The ring may be open or
// closed; the wrap segment is always included.
func signedArea(ring []geom.Coord) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += ring[i][0]*ring[j][1] - ring[j][0]*ring[i][1]
	}
	return sum / 2
}

// planarArea returns the planar area of a polygon in squared ground units:
// the outer ring minus interior holes, independent of ring orientation.
func planarArea(p *geom.Polygon) float64 {
	if p.NumLinearRings() == 0 {
		return 0
	}
	area := math.Abs(signedArea(p.LinearRing(0).Coords()))
	for i := 1; i < p.NumLinearRings(); i++ {
		area -= math.Abs(signedArea(p.LinearRing(i).Coords()))
	}
	return area
}
