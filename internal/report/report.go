// Package report renders run reports: a JSON summary for downstream tools
// and an XLSX statistics sheet for analyst handoff.
package report

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/terracanopy/connectivity-cli/internal/connectivity"
)

// Meta describes the analyzed tile.
type Meta struct {
	Timestamp  string  `json:"timestamp"`
	Location   string  `json:"location"`
	Resolution float64 `json:"resolution"`
	CRS        string  `json:"crs"`
}

// Parameters records the classification thresholds used for the run.
type Parameters struct {
	CoreThreshold float64 `json:"core_threshold"`
	EdgeThreshold float64 `json:"edge_threshold"`
}

// Report is the JSON run summary.
type Report struct {
	Meta       Meta                      `json:"meta"`
	Statistics connectivity.Stats        `json:"statistics"`
	Patches    connectivity.PatchSummary `json:"patches"`
	LandCover  map[string]float64        `json:"land_cover_ha,omitempty"`
	Parameters Parameters                `json:"parameters"`
}

// Write serializes the report as indented JSON.
func Write(r Report, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return eris.Wrap(err, "report: marshal")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "report: write %s", path)
	}
	return nil
}
