package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/terracanopy/connectivity-cli/internal/connectivity"
)

func testReport() Report {
	return Report{
		Meta: Meta{
			Timestamp:  "2026-08-30T12:00:00Z",
			Location:   "Jharkhand/Ranchi/Kanke",
			Resolution: 30,
			CRS:        "EPSG:32644",
		},
		Statistics: connectivity.Stats{
			CoreAreaHa:         120.5,
			EdgeAreaHa:         40.2,
			FragmentedAreaHa:   10.1,
			TotalForestHa:      170.8,
			FragmentationIndex: 0.295,
		},
		Patches: connectivity.PatchSummary{Count: 3, MeanAreaHa: 56.9, LargestAreaHa: 150},
		Parameters: Parameters{
			CoreThreshold: 300,
			EdgeThreshold: 100,
		},
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.json")
	want := testReport()
	require.NoError(t, Write(want, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}

func TestWrite_FieldNames(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, Write(testReport(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"meta", "statistics", "patches", "parameters"} {
		assert.Contains(t, raw, key)
	}

	var stats map[string]float64
	require.NoError(t, json.Unmarshal(raw["statistics"], &stats))
	assert.InDelta(t, 170.8, stats["total_forest_ha"], 1e-9)
	assert.InDelta(t, 0.295, stats["fragmentation_index"], 1e-9)
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "statistics.xlsx")
	require.NoError(t, WriteXLSX(testReport().Statistics, path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)

	sheet := f.Sheets[0]
	assert.Equal(t, "Statistics", sheet.Name)
	require.Len(t, sheet.Rows, 6)
	assert.Equal(t, "Metric", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "Core area (ha)", sheet.Rows[1].Cells[0].String())

	v, err := sheet.Rows[4].Cells[1].Float()
	require.NoError(t, err)
	assert.InDelta(t, 170.8, v, 1e-9)
}
