package vector

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terracanopy/connectivity-cli/internal/raster"
)

func testFeatures(t *testing.T) []Feature {
	t.Helper()
	c := classGrid(2, 2, []uint8{
		2, 2,
		3, 3,
	})
	features, err := Polygonize(c, raster.FromOrigin(0, 20, 10, 10), "EPSG:32643")
	require.NoError(t, err)
	return features
}

func TestExport_GeoJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "connectivity.geojson")
	require.NoError(t, Export(testFeatures(t), path, "geojson"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Type       string `json:"type"`
			Geometry   struct {
				Type string `json:"type"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &fc))

	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 2)

	names := map[string]bool{}
	for _, f := range fc.Features {
		assert.Equal(t, "Feature", f.Type)
		assert.Equal(t, "Polygon", f.Geometry.Type)
		assert.Contains(t, f.Properties, "class")
		assert.Contains(t, f.Properties, "area_ha")
		names[f.Properties["class_name"].(string)] = true
	}
	assert.True(t, names["Edge"])
	assert.True(t, names["Core"])
}

func TestExport_Shapefile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "connectivity.shp")
	require.NoError(t, Export(testFeatures(t), path, "shp"))

	for _, ext := range []string{".shp", ".shx", ".dbf"} {
		info, err := os.Stat(filepath.Join(dir, "connectivity"+ext))
		require.NoError(t, err, ext)
		assert.Positive(t, info.Size(), ext)
	}

	// The attribute table must land at the dotted sidecar name only.
	_, err := os.Stat(filepath.Join(dir, "connectivitydbf"))
	assert.True(t, os.IsNotExist(err))
}

func TestExport_GeoJSONRingWinding(t *testing.T) {
	t.Parallel()

	c := classGrid(3, 3, []uint8{
		3, 3, 3,
		3, 0, 3,
		3, 3, 3,
	})
	features, err := Polygonize(c, raster.FromOrigin(0, 30, 10, 10), "EPSG:32643")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "donut.geojson")
	require.NoError(t, Export(features, path, "geojson"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var fc struct {
		Features []struct {
			Geometry struct {
				Coordinates [][][2]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &fc))
	require.Len(t, fc.Features, 1)

	rings := fc.Features[0].Geometry.Coordinates
	require.Len(t, rings, 2)
	assert.Positive(t, shoelace(rings[0]))
	assert.Negative(t, shoelace(rings[1]))
}

func shoelace(ring [][2]float64) float64 {
	sum := 0.0
	for i := 0; i+1 < len(ring); i++ {
		sum += ring[i][0]*ring[i+1][1] - ring[i+1][0]*ring[i][1]
	}
	return sum / 2
}

func TestExport_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	err := Export(nil, filepath.Join(t.TempDir(), "out.kml"), "kml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
