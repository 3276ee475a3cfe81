package vector

import (
	"sort"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/terracanopy/connectivity-cli/internal/connectivity"
)

// Merge dissolves all polygons of identical class into one multi-part
// geometry per class, explodes the result back into single-part features
// with per-part areas, and simplifies each part's boundary under tolerance.
// Polygonize emits maximal regions, so same-class parts are disjoint and
// the dissolved geometry is their multi-part collection. tolerance 0 leaves
// geometries untouched. An empty input yields an empty, non-nil slice.
func Merge(features []Feature, tolerance float64) ([]Feature, error) {
	if tolerance < 0 {
		return nil, &connectivity.ConfigurationError{Reason: "simplify tolerance must be non-negative"}
	}

	out := make([]Feature, 0, len(features))
	if len(features) == 0 {
		return out, nil
	}

	dissolved := make(map[connectivity.Class]*geom.MultiPolygon)
	for _, f := range features {
		mp, ok := dissolved[f.Class]
		if !ok {
			mp = geom.NewMultiPolygon(geom.XY).SetSRID(f.Geometry.SRID())
			dissolved[f.Class] = mp
		}
		if err := mp.Push(f.Geometry); err != nil {
			return nil, eris.Wrap(err, "vector: dissolve")
		}
	}

	classes := make([]connectivity.Class, 0, len(dissolved))
	for cl := range dissolved {
		classes = append(classes, cl)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })

	for _, cl := range classes {
		mp := dissolved[cl]
		for i := 0; i < mp.NumPolygons(); i++ {
			part := mp.Polygon(i)
			if tolerance > 0 {
				part = simplifyPolygon(part, tolerance)
			}
			out = append(out, Feature{
				Geometry:  part,
				Class:     cl,
				ClassName: cl.String(),
				AreaHa:    planarArea(part) / 10000,
			})
		}
	}
	return out, nil
}
