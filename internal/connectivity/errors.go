package connectivity

import "fmt"

// ConfigurationError reports invalid analysis parameters (non-positive
// resolution, inverted thresholds). It is raised at configuration time;
// the per-pixel operations are total over well-formed inputs.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "connectivity: invalid configuration: " + e.Reason
}

// ShapeMismatchError reports grids of differing dimensions passed between
// pipeline stages.
type ShapeMismatchError struct {
	WantWidth, WantHeight int
	GotWidth, GotHeight   int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("connectivity: grid shape %dx%d, want %dx%d",
		e.GotWidth, e.GotHeight, e.WantWidth, e.WantHeight)
}
