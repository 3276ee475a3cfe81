// Package connectivity implements the forest structural connectivity core:
// forest mask extraction, exact Euclidean distance transform, threshold
// classification, area statistics, and patch analysis.
package connectivity

// Class is the ordinal connectivity tier of a pixel. The order is consistent
// with increasing distance from non-forest.
type Class uint8

const (
	ClassNonForest  Class = 0
	ClassFragmented Class = 1
	ClassEdge       Class = 2
	ClassCore       Class = 3
)

var classNames = map[Class]string{
	ClassNonForest:  "Non-forest",
	ClassFragmented: "Fragmented",
	ClassEdge:       "Edge",
	ClassCore:       "Core",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "Unknown"
}
