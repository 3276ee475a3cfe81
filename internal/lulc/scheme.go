// Package lulc carries the land-use/land-cover classification scheme
// metadata: the mapping from integer category codes to human labels.
package lulc

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Scheme maps LULC category codes to labels.
type Scheme map[int]string

// DefaultScheme returns the CoRE Stack LULC classification scheme.
func DefaultScheme() Scheme {
	return Scheme{
		1: "Water",
		2: "Built-up",
		3: "Deciduous Forest",
		4: "Evergreen Forest",
		5: "Scrub/Degraded Forest",
		6: "Agriculture",
		7: "Barren Land",
	}
}

// LoadScheme reads a scheme override from a YAML file mapping codes to
// labels.
func LoadScheme(path string) (Scheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "lulc: read scheme %s", path)
	}
	var s Scheme
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, eris.Wrapf(err, "lulc: parse scheme %s", path)
	}
	if len(s) == 0 {
		return nil, eris.Errorf("lulc: scheme %s is empty", path)
	}
	return s, nil
}

// Label returns the label for a code, or "Unknown" for codes outside the
// scheme.
func (s Scheme) Label(code int) string {
	if label, ok := s[code]; ok {
		return label
	}
	return "Unknown"
}

// Breakdown tallies the area of every land-cover label in a code grid,
// in hectares at the given pixel resolution in meters.
func Breakdown(codes []int, s Scheme, resolution float64) map[string]float64 {
	pixelHa := resolution * resolution / 10000
	out := make(map[string]float64)
	for _, c := range codes {
		out[s.Label(c)] += pixelHa
	}
	return out
}
