package connectivity

import "fmt"

// Thresholds holds the classification parameters, all in ground units.
type Thresholds struct {
	Resolution float64
	EdgeMeters float64
	CoreMeters float64
}

// Validate checks the threshold invariants: positive resolution, positive
// thresholds, and EdgeMeters strictly below CoreMeters.
func (t Thresholds) Validate() error {
	if t.Resolution <= 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("resolution %v must be positive", t.Resolution)}
	}
	if t.EdgeMeters <= 0 || t.CoreMeters <= 0 {
		return &ConfigurationError{Reason: "thresholds must be positive"}
	}
	if t.EdgeMeters >= t.CoreMeters {
		return &ConfigurationError{Reason: fmt.Sprintf(
			"edge threshold %v must be below core threshold %v", t.EdgeMeters, t.CoreMeters)}
	}
	return nil
}

// Classified is a grid of per-pixel connectivity classes.
type Classified struct {
	Width   int
	Height  int
	Classes []Class
}

// At returns the class at (col, row).
func (c *Classified) At(col, row int) Class {
	return c.Classes[row*c.Width+col]
}

// Bytes returns the classes as a uint8 grid for single-band raster export.
func (c *Classified) Bytes() []uint8 {
	out := make([]uint8, len(c.Classes))
	for i, cl := range c.Classes {
		out[i] = uint8(cl)
	}
	return out
}

// Classify maps each pixel's distance and forest membership to a
// connectivity class using half-open distance bands:
//
//	non-forest            -> NonForest
//	dist <  EdgeMeters    -> Fragmented
//	dist <  CoreMeters    -> Edge
//	otherwise             -> Core
//
// A distance exactly equal to EdgeMeters classifies as Edge and one exactly
// equal to CoreMeters as Core. Threshold validity is a precondition checked
// by Thresholds.Validate; Classify only verifies grid shapes.
func Classify(d *DistanceGrid, m *Mask, t Thresholds) (*Classified, error) {
	if d.Width != m.Width || d.Height != m.Height {
		return nil, &ShapeMismatchError{
			WantWidth: m.Width, WantHeight: m.Height,
			GotWidth: d.Width, GotHeight: d.Height,
		}
	}

	classes := make([]Class, len(d.Meters))
	for i, dist := range d.Meters {
		switch {
		case !m.Bits[i]:
			classes[i] = ClassNonForest
		case dist < t.EdgeMeters:
			classes[i] = ClassFragmented
		case dist < t.CoreMeters:
			classes[i] = ClassEdge
		default:
			classes[i] = ClassCore
		}
	}
	return &Classified{Width: d.Width, Height: d.Height, Classes: classes}, nil
}
