package connectivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholds_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		th      Thresholds
		wantErr bool
	}{
		{"valid", Thresholds{Resolution: 30, EdgeMeters: 100, CoreMeters: 300}, false},
		{"zero resolution", Thresholds{Resolution: 0, EdgeMeters: 100, CoreMeters: 300}, true},
		{"negative resolution", Thresholds{Resolution: -10, EdgeMeters: 100, CoreMeters: 300}, true},
		{"edge equals core", Thresholds{Resolution: 30, EdgeMeters: 300, CoreMeters: 300}, true},
		{"edge above core", Thresholds{Resolution: 30, EdgeMeters: 400, CoreMeters: 300}, true},
		{"zero edge", Thresholds{Resolution: 30, EdgeMeters: 0, CoreMeters: 300}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.th.Validate()
			if tt.wantErr {
				require.Error(t, err)
				var cfgErr *ConfigurationError
				assert.ErrorAs(t, err, &cfgErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClassify_Bands(t *testing.T) {
	t.Parallel()

	// Distances 0, 5, 15, 35 with edge=10, core=30.
	dist := &DistanceGrid{Width: 4, Height: 1, Meters: []float64{0, 5, 15, 35}}
	mask := maskFromBits(4, 1, []int{0, 1, 1, 1})
	th := Thresholds{Resolution: 10, EdgeMeters: 10, CoreMeters: 30}

	classified, err := Classify(dist, mask, th)
	require.NoError(t, err)

	want := []Class{ClassNonForest, ClassFragmented, ClassEdge, ClassCore}
	assert.Equal(t, want, classified.Classes)
}

func TestClassify_BoundaryExactness(t *testing.T) {
	t.Parallel()

	// A distance exactly at a threshold belongs to the upper band.
	dist := &DistanceGrid{Width: 2, Height: 1, Meters: []float64{10, 30}}
	mask := maskFromBits(2, 1, []int{1, 1})
	th := Thresholds{Resolution: 10, EdgeMeters: 10, CoreMeters: 30}

	classified, err := Classify(dist, mask, th)
	require.NoError(t, err)

	assert.Equal(t, ClassEdge, classified.At(0, 0))
	assert.Equal(t, ClassCore, classified.At(1, 0))
}

func TestClassify_NonForestPrecedence(t *testing.T) {
	t.Parallel()

	// Mask wins over any distance value.
	dist := &DistanceGrid{Width: 2, Height: 1, Meters: []float64{500, 500}}
	mask := maskFromBits(2, 1, []int{0, 1})
	th := Thresholds{Resolution: 10, EdgeMeters: 10, CoreMeters: 30}

	classified, err := Classify(dist, mask, th)
	require.NoError(t, err)

	assert.Equal(t, ClassNonForest, classified.At(0, 0))
	assert.Equal(t, ClassCore, classified.At(1, 0))
}

func TestClassify_Monotonicity(t *testing.T) {
	t.Parallel()

	// Non-decreasing distance never decreases the class for forest pixels.
	distances := []float64{0, 1, 5, 9.999, 10, 15, 29.999, 30, 100, 1e9}
	dist := &DistanceGrid{Width: len(distances), Height: 1, Meters: distances}
	bits := make([]int, len(distances))
	for i := range bits {
		bits[i] = 1
	}
	mask := maskFromBits(len(distances), 1, bits)
	th := Thresholds{Resolution: 10, EdgeMeters: 10, CoreMeters: 30}

	classified, err := Classify(dist, mask, th)
	require.NoError(t, err)

	for i := 1; i < len(distances); i++ {
		assert.GreaterOrEqual(t, classified.Classes[i], classified.Classes[i-1],
			"class order broken between distances %v and %v", distances[i-1], distances[i])
	}
}

func TestClassify_ShapeMismatch(t *testing.T) {
	t.Parallel()

	dist := &DistanceGrid{Width: 2, Height: 2, Meters: make([]float64, 4)}
	mask := maskFromBits(3, 2, make([]int, 6))
	th := Thresholds{Resolution: 10, EdgeMeters: 10, CoreMeters: 30}

	_, err := Classify(dist, mask, th)
	require.Error(t, err)

	var shapeErr *ShapeMismatchError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, 3, shapeErr.WantWidth)
	assert.Equal(t, 2, shapeErr.GotWidth)
}

func TestClass_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Non-forest", ClassNonForest.String())
	assert.Equal(t, "Fragmented", ClassFragmented.String())
	assert.Equal(t, "Edge", ClassEdge.String())
	assert.Equal(t, "Core", ClassCore.String())
	assert.Equal(t, "Unknown", Class(9).String())
}
