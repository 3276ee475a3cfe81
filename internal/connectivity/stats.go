package connectivity

// Stats holds per-class areas in hectares and the fragmentation index.
// TotalForestHa is always the exact sum of the three class areas.
type Stats struct {
	CoreAreaHa         float64 `json:"core_area_ha"`
	EdgeAreaHa         float64 `json:"edge_area_ha"`
	FragmentedAreaHa   float64 `json:"fragmented_area_ha"`
	TotalForestHa      float64 `json:"total_forest_ha"`
	FragmentationIndex float64 `json:"fragmentation_index"`
}

// Aggregate converts per-class pixel counts to hectares and derives the
// fragmentation index 1 - core/total. An empty forest tile has index 0.0 by
// convention.
func Aggregate(c *Classified, resolution float64) (Stats, error) {
	if resolution <= 0 {
		return Stats{}, &ConfigurationError{Reason: "resolution must be positive"}
	}

	var coreN, edgeN, fragN int
	for _, cl := range c.Classes {
		switch cl {
		case ClassCore:
			coreN++
		case ClassEdge:
			edgeN++
		case ClassFragmented:
			fragN++
		}
	}

	pixelAreaHa := resolution * resolution / 10000

	s := Stats{
		CoreAreaHa:       float64(coreN) * pixelAreaHa,
		EdgeAreaHa:       float64(edgeN) * pixelAreaHa,
		FragmentedAreaHa: float64(fragN) * pixelAreaHa,
	}
	s.TotalForestHa = s.CoreAreaHa + s.EdgeAreaHa + s.FragmentedAreaHa
	if s.TotalForestHa > 0 {
		s.FragmentationIndex = 1 - s.CoreAreaHa/s.TotalForestHa
	}
	return s, nil
}
