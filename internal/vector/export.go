package vector

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Export writes features to path in the requested format, "geojson" or
// "shp". The per-feature schema is {geometry, class, class_name, area_ha}.
func Export(features []Feature, path, format string) error {
	switch strings.ToLower(format) {
	case "geojson":
		return exportGeoJSON(features, path)
	case "shp":
		return exportShapefile(features, path)
	default:
		return eris.Errorf("vector: unsupported format %q (want geojson or shp)", format)
	}
}

func exportGeoJSON(features []Feature, path string) error {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(features))}
	for _, f := range features {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: rewind(f.Geometry),
			Properties: map[string]interface{}{
				"class":      int(f.Class),
				"class_name": f.ClassName,
				"area_ha":    f.AreaHa,
			},
		})
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return eris.Wrap(err, "vector: marshal geojson")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "vector: write %s", path)
	}
	return nil
}

// rewind copies a polygon into RFC 7946 ring orientation: exterior
// counterclockwise, holes clockwise. Tracing in pixel space plus the
// negative y-scale of north-up transforms leaves exteriors clockwise in
// ground coordinates, which GeoJSON consumers reject.
func rewind(p *geom.Polygon) *geom.Polygon {
	out := geom.NewPolygon(geom.XY).SetSRID(p.SRID())
	for i := 0; i < p.NumLinearRings(); i++ {
		coords := p.LinearRing(i).Coords()
		wantCCW := i == 0
		if (signedArea(coords) > 0) != wantCCW {
			for a, b := 0, len(coords)-1; a < b; a, b = a+1, b-1 {
				coords[a], coords[b] = coords[b], coords[a]
			}
		}
		// Push cannot fail for XY coords of a well-formed ring.
		_ = out.Push(geom.NewLinearRing(geom.XY).MustSetCoords(coords))
	}
	return out
}

func exportShapefile(features []Feature, path string) error {
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return eris.Wrapf(err, "vector: create shapefile %s", path)
	}

	fields := []shp.Field{
		shp.NumberField("CLASS", 10),
		shp.StringField("CLASSNAME", 16),
		shp.FloatField("AREA_HA", 19, 6),
	}
	if err := w.SetFields(fields); err != nil {
		w.Close()
		return eris.Wrap(err, "vector: set shapefile fields")
	}

	for i, f := range features {
		parts := make([][]shp.Point, 0, f.Geometry.NumLinearRings())
		for r := 0; r < f.Geometry.NumLinearRings(); r++ {
			coords := f.Geometry.LinearRing(r).Coords()
			pts := make([]shp.Point, 0, len(coords))
			for _, c := range coords {
				pts = append(pts, shp.Point{X: c[0], Y: c[1]})
			}
			parts = append(parts, pts)
		}

		poly := (*shp.Polygon)(shp.NewPolyLine(parts))
		w.Write(poly)

		if err := w.WriteAttribute(i, 0, int(f.Class)); err != nil {
			w.Close()
			return eris.Wrap(err, "vector: write class attribute")
		}
		if err := w.WriteAttribute(i, 1, f.ClassName); err != nil {
			w.Close()
			return eris.Wrap(err, "vector: write class_name attribute")
		}
		if err := w.WriteAttribute(i, 2, f.AreaHa); err != nil {
			w.Close()
			return eris.Wrap(err, "vector: write area_ha attribute")
		}
	}
	w.Close()

	// go-shp names the attribute table <base>dbf, without the extension
	// dot, so GIS tools cannot associate it. Move it to <base>.dbf.
	base := strings.TrimSuffix(path, filepath.Ext(path))
	if _, err := os.Stat(base + "dbf"); err == nil {
		if err := os.Rename(base+"dbf", base+".dbf"); err != nil {
			return eris.Wrap(err, "vector: rename dbf sidecar")
		}
	}
	return nil
}
