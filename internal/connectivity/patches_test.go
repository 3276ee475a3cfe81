package connectivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelPatches_DiagonalConnectivity(t *testing.T) {
	t.Parallel()

	// Two pixels touching only diagonally form one 8-connected patch.
	mask := maskFromBits(2, 2, []int{
		1, 0,
		0, 1,
	})

	labels, count := LabelPatches(mask)

	assert.Equal(t, 1, count)
	assert.Equal(t, labels[0], labels[3])
	assert.Zero(t, labels[1])
	assert.Zero(t, labels[2])
}

func TestLabelPatches_SeparatePatches(t *testing.T) {
	t.Parallel()

	mask := maskFromBits(5, 1, []int{1, 0, 1, 0, 1})

	_, count := LabelPatches(mask)
	assert.Equal(t, 3, count)
}

func TestAnalyzePatches(t *testing.T) {
	t.Parallel()

	// One 2x2 patch and one isolated pixel at 10m resolution.
	mask := maskFromBits(5, 2, []int{
		1, 1, 0, 0, 1,
		1, 1, 0, 0, 0,
	})

	summary, err := AnalyzePatches(mask, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Count)
	require.Len(t, summary.Patches, 2)
	assert.Equal(t, 0.04, summary.LargestAreaHa)
	assert.InDelta(t, 0.025, summary.MeanAreaHa, 1e-12)
}

func TestAnalyzePatches_Empty(t *testing.T) {
	t.Parallel()

	mask := maskFromBits(3, 3, make([]int, 9))

	summary, err := AnalyzePatches(mask, 30)
	require.NoError(t, err)

	assert.Zero(t, summary.Count)
	assert.Empty(t, summary.Patches)
	assert.Zero(t, summary.MeanAreaHa)
}

func TestAnalyzePatches_InvalidResolution(t *testing.T) {
	t.Parallel()

	mask := maskFromBits(1, 1, []int{1})
	_, err := AnalyzePatches(mask, 0)
	require.Error(t, err)
}
