package connectivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terracanopy/connectivity-cli/internal/raster"
)

func mustRaster(t *testing.T, width, height int, codes []int) *raster.Raster {
	t.Helper()
	r, err := raster.New(width, height, codes, raster.FromOrigin(0, 100, 10, 10), "EPSG:32643")
	require.NoError(t, err)
	return r
}

func TestExtractMask(t *testing.T) {
	t.Parallel()

	r := mustRaster(t, 3, 3, []int{
		1, 2, 3,
		4, 5, 0,
		3, 3, 1,
	})

	mask := ExtractMask(r, []int{3, 4})

	want := []bool{
		false, false, true,
		true, false, false,
		true, true, false,
	}
	assert.Equal(t, want, mask.Bits)
	assert.Equal(t, 4, mask.CountForest())
}

func TestExtractMask_EmptyCodeSet(t *testing.T) {
	t.Parallel()

	r := mustRaster(t, 2, 2, []int{3, 3, 3, 3})
	mask := ExtractMask(r, nil)

	assert.Equal(t, 0, mask.CountForest())
	for _, b := range mask.Bits {
		assert.False(t, b)
	}
}

func TestExtractMask_AllForest(t *testing.T) {
	t.Parallel()

	r := mustRaster(t, 2, 2, []int{4, 4, 4, 4})
	mask := ExtractMask(r, []int{3, 4})

	assert.Equal(t, 4, mask.CountForest())
}
