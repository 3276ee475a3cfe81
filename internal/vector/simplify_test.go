package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func closedRing(pts ...[2]float64) []geom.Coord {
	ring := make([]geom.Coord, 0, len(pts)+1)
	for _, p := range pts {
		ring = append(ring, geom.Coord{p[0], p[1]})
	}
	return append(ring, geom.Coord{pts[0][0], pts[0][1]})
}

func TestSimplifyRing_DropsCollinearVertices(t *testing.T) {
	t.Parallel()

	ring := closedRing(
		[2]float64{0, 0}, [2]float64{1, 0}, [2]float64{2, 0},
		[2]float64{2, 1}, [2]float64{2, 2}, [2]float64{1, 2},
		[2]float64{0, 2}, [2]float64{0, 1},
	)

	got := simplifyRing(ring, 0.5)
	assert.Equal(t, closedRing(
		[2]float64{0, 0}, [2]float64{2, 0}, [2]float64{2, 2}, [2]float64{0, 2},
	), got)
}

func TestSimplifyRing_KeepsSignificantVertices(t *testing.T) {
	t.Parallel()

	ring := closedRing(
		[2]float64{0, 0}, [2]float64{5, 0}, [2]float64{5, 5},
		[2]float64{2.5, 8}, [2]float64{0, 5},
	)

	got := simplifyRing(ring, 0.5)
	assert.Equal(t, ring, got)
}

func TestSimplifyRing_ZeroToleranceIsIdentity(t *testing.T) {
	t.Parallel()

	ring := closedRing(
		[2]float64{0, 0}, [2]float64{1, 0}, [2]float64{2, 0},
		[2]float64{2, 2}, [2]float64{0, 2},
	)
	assert.Equal(t, ring, simplifyRing(ring, 0))
}

func TestSimplifyRing_CollapseFallsBackToOriginal(t *testing.T) {
	t.Parallel()

	// A thin sliver whose vertices all sit within tolerance of the anchor
	// would reduce below a valid ring, so the original survives.
	ring := closedRing(
		[2]float64{0, 0}, [2]float64{1, 0.1}, [2]float64{2, 0},
		[2]float64{3, 0.1}, [2]float64{4, 0}, [2]float64{2, 0.2},
	)
	got := simplifyRing(ring, 10)
	assert.Equal(t, ring, got)
}

func TestSimplifyPolygon_HoleCrossingFallsBack(t *testing.T) {
	t.Parallel()

	// The outward bump at (5,11) is within tolerance of the top edge, so
	// the simplified exterior cuts straight across at y=10, through the
	// hole straddling that line. Each ring alone stays simple, so only the
	// ring-pair check can catch it.
	outer := closedRing(
		[2]float64{0, 0}, [2]float64{10, 0}, [2]float64{10, 10},
		[2]float64{5, 11}, [2]float64{0, 10},
	)
	hole := closedRing(
		[2]float64{4, 9.5}, [2]float64{6, 9.5}, [2]float64{5, 10.5},
	)

	p := geom.NewPolygon(geom.XY)
	require.NoError(t, p.Push(geom.NewLinearRing(geom.XY).MustSetCoords(outer)))
	require.NoError(t, p.Push(geom.NewLinearRing(geom.XY).MustSetCoords(hole)))

	got := simplifyPolygon(p, 2)
	assert.Equal(t, p.FlatCoords(), got.FlatCoords())
}

func TestSimplifyPolygon_KeepsDistantHole(t *testing.T) {
	t.Parallel()

	outer := closedRing(
		[2]float64{0, 0}, [2]float64{5, 0}, [2]float64{10, 0},
		[2]float64{10, 10}, [2]float64{5, 10}, [2]float64{0, 10},
	)
	hole := closedRing(
		[2]float64{4, 4}, [2]float64{6, 4}, [2]float64{5, 6},
	)

	p := geom.NewPolygon(geom.XY)
	require.NoError(t, p.Push(geom.NewLinearRing(geom.XY).MustSetCoords(outer)))
	require.NoError(t, p.Push(geom.NewLinearRing(geom.XY).MustSetCoords(hole)))

	got := simplifyPolygon(p, 0.5)
	require.Equal(t, 2, got.NumLinearRings())
	assert.Equal(t, 5, got.LinearRing(0).NumCoords())
	assert.Equal(t, 4, got.LinearRing(1).NumCoords())
}

func TestRingSelfIntersects(t *testing.T) {
	t.Parallel()

	square := closedRing(
		[2]float64{0, 0}, [2]float64{4, 0}, [2]float64{4, 4}, [2]float64{0, 4},
	)
	assert.False(t, ringSelfIntersects(square))

	bowtie := closedRing(
		[2]float64{0, 0}, [2]float64{4, 4}, [2]float64{4, 0}, [2]float64{0, 4},
	)
	assert.True(t, ringSelfIntersects(bowtie))
}

func TestSegmentDistance(t *testing.T) {
	t.Parallel()

	a := geom.Coord{0, 0}
	b := geom.Coord{10, 0}

	assert.InDelta(t, 3, segmentDistance(geom.Coord{5, 3}, a, b), 1e-9)
	assert.InDelta(t, 5, segmentDistance(geom.Coord{13, 4}, a, b), 1e-9)
	assert.InDelta(t, 2, segmentDistance(geom.Coord{2, 0}, a, a), 1e-9)
}
