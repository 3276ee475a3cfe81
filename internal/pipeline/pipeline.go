// Package pipeline ties the connectivity stages together: mask extraction,
// distance transform, classification, statistics, and vectorization. A run
// is a pure function of its inputs; concurrent runs on different rasters
// are safe.
package pipeline

import (
	"go.uber.org/zap"

	"github.com/terracanopy/connectivity-cli/internal/connectivity"
	"github.com/terracanopy/connectivity-cli/internal/raster"
	"github.com/terracanopy/connectivity-cli/internal/vector"
)

// Params configures one analysis run.
type Params struct {
	ForestCodes       []int
	Thresholds        connectivity.Thresholds
	SimplifyTolerance float64
}

// Result bundles everything a run produces.
type Result struct {
	Mask       *connectivity.Mask
	Distance   *connectivity.DistanceGrid
	Classified *connectivity.Classified
	Stats      connectivity.Stats
	Patches    connectivity.PatchSummary
	Features   []vector.Feature
}

// Run executes the full pipeline over one LULC raster.
func Run(r *raster.Raster, p Params) (*Result, error) {
	if err := p.Thresholds.Validate(); err != nil {
		return nil, err
	}
	if p.SimplifyTolerance < 0 {
		return nil, &connectivity.ConfigurationError{Reason: "simplify tolerance must be non-negative"}
	}

	mask := connectivity.ExtractMask(r, p.ForestCodes)
	zap.L().Debug("extracted forest mask",
		zap.Int("width", mask.Width),
		zap.Int("height", mask.Height),
		zap.Int("forest_pixels", mask.CountForest()),
	)

	dist, err := connectivity.ComputeDistance(mask, p.Thresholds.Resolution)
	if err != nil {
		return nil, err
	}

	classified, err := connectivity.Classify(dist, mask, p.Thresholds)
	if err != nil {
		return nil, err
	}

	stats, err := connectivity.Aggregate(classified, p.Thresholds.Resolution)
	if err != nil {
		return nil, err
	}

	patches, err := connectivity.AnalyzePatches(mask, p.Thresholds.Resolution)
	if err != nil {
		return nil, err
	}

	features, err := vector.Polygonize(classified, r.Transform, r.CRS)
	if err != nil {
		return nil, err
	}
	features, err = vector.Merge(features, p.SimplifyTolerance)
	if err != nil {
		return nil, err
	}

	zap.L().Info("analysis complete",
		zap.Float64("total_forest_ha", stats.TotalForestHa),
		zap.Float64("fragmentation_index", stats.FragmentationIndex),
		zap.Int("patches", patches.Count),
		zap.Int("features", len(features)),
	)

	return &Result{
		Mask:       mask,
		Distance:   dist,
		Classified: classified,
		Stats:      stats,
		Patches:    patches,
		Features:   features,
	}, nil
}
