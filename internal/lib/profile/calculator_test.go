package profile

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpup/terrain-profile/internal/lib/geo"
)

// Track north from the Plovdiv test point: three ~84m segments that climb
// 4m, drop 4m and climb 4m again.
var trackCoordinates = []Coordinate{
	{24.0482193, 42.0931683, 560},
	{24.0482193, 42.0939229, 564},
	{24.0482193, 42.0946775, 560},
	{24.0482193, 42.0954321, 564},
}

func trackPath() Path {
	return Path(trackCoordinates)
}

func trackMultiPath() MultiPath {
	return MultiPath{
		Path(trackCoordinates[:2]),
		Path(trackCoordinates[2:]),
	}
}

func assertTrackStatistics(t *testing.T, stats Statistics) {
	t.Helper()
	assert.InDelta(t, 252, stats.Length, 1)
	assert.InDelta(t, 252, stats.RealLength, 1)
	assert.InDelta(t, 8, stats.Ascend, 1)
	assert.InDelta(t, 4, stats.Descend, 1)
	assert.InDelta(t, 560, stats.MinElevation, 1)
	assert.InDelta(t, 564, stats.MaxElevation, 1)
}

func TestCalculator_FromMultiPath(t *testing.T) {
	profile, err := NewCalculator().Calculate(trackMultiPath())
	require.NoError(t, err)

	require.Len(t, profile.Vertices, 4)
	assertTrackStatistics(t, profile.Statistics)
}

func TestCalculator_FromPath(t *testing.T) {
	profile, err := NewCalculator().Calculate(trackPath())
	require.NoError(t, err)

	require.Len(t, profile.Vertices, 4)
	assertTrackStatistics(t, profile.Statistics)
}

func TestCalculator_ShapeEquivalence(t *testing.T) {
	calc := NewCalculator()

	fromPath, err := calc.Calculate(trackPath())
	require.NoError(t, err)
	fromSinglePart, err := calc.Calculate(MultiPath{trackPath()})
	require.NoError(t, err)
	fromList, err := calc.Calculate(CoordinateList(trackCoordinates))
	require.NoError(t, err)
	fromFeature, err := calc.Calculate(&Feature{Geometry: trackPath()})
	require.NoError(t, err)

	assert.Equal(t, fromPath, fromSinglePart)
	assert.Equal(t, fromPath, fromList)
	assert.Equal(t, fromPath, fromFeature)
}

func TestAggregate_CumulativeDistanceIsMonotonic(t *testing.T) {
	vertices, err := Normalize(trackMultiPath())
	require.NoError(t, err)

	annotated, stats, err := Aggregate(vertices)
	require.NoError(t, err)

	assert.Equal(t, 0.0, annotated[0].CumulativeDistance)
	for i := 1; i < len(annotated); i++ {
		assert.GreaterOrEqual(t, annotated[i].CumulativeDistance, annotated[i-1].CumulativeDistance)
	}
	assert.Equal(t, stats.Length, annotated[len(annotated)-1].CumulativeDistance)
	assert.GreaterOrEqual(t, stats.RealLength, stats.Length)
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	vertices, err := Normalize(trackPath())
	require.NoError(t, err)

	annotated, _, err := Aggregate(vertices)
	require.NoError(t, err)

	for _, v := range vertices {
		assert.Equal(t, 0.0, v.CumulativeDistance)
	}
	assert.Greater(t, annotated[3].CumulativeDistance, 0.0)
}

func TestAggregate_SingleVertex(t *testing.T) {
	annotated, stats, err := Aggregate([]Vertex{{Latitude: 42.09, Longitude: 24.04, Elevation: 612}})
	require.NoError(t, err)

	require.Len(t, annotated, 1)
	assert.Equal(t, 0.0, annotated[0].CumulativeDistance)
	assert.Equal(t, Statistics{MinElevation: 612, MaxElevation: 612}, stats)

	// Outside the seed band a lone vertex still bounds itself
	for _, elevation := range []float64{12000, -11000} {
		_, stats, err := Aggregate([]Vertex{{Latitude: 42.09, Longitude: 24.04, Elevation: elevation}})
		require.NoError(t, err)
		assert.Equal(t, elevation, stats.MinElevation)
		assert.Equal(t, elevation, stats.MaxElevation)
	}
}

func TestAggregate_Empty(t *testing.T) {
	_, _, err := Aggregate(nil)
	assert.ErrorIs(t, err, ErrMissingGeometry)
}

func TestAggregate_AscendDescendAreMagnitudes(t *testing.T) {
	downhill := Path{
		{24.0482193, 42.0931683, 900},
		{24.0482193, 42.0939229, 850},
		{24.0482193, 42.0946775, 870},
		{24.0482193, 42.0954321, 700},
	}

	profile, err := NewCalculator().Calculate(downhill)
	require.NoError(t, err)

	assert.InDelta(t, 20, profile.Statistics.Ascend, 1e-9)
	assert.InDelta(t, 220, profile.Statistics.Descend, 1e-9)
	assert.GreaterOrEqual(t, profile.Statistics.Ascend, 0.0)
	assert.GreaterOrEqual(t, profile.Statistics.Descend, 0.0)
	assert.Equal(t, 700.0, profile.Statistics.MinElevation)
	assert.Equal(t, 900.0, profile.Statistics.MaxElevation)
}

func TestAggregate_FlatSegmentCountsAsDescend(t *testing.T) {
	vertices := []Vertex{
		{Latitude: 0, Longitude: 0, Elevation: 10},
		{Latitude: 0, Longitude: 0.001, Elevation: 10},
	}

	_, stats, err := Aggregate(vertices)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.Ascend)
	assert.Equal(t, 0.0, stats.Descend)
	assert.InDelta(t, stats.Length, stats.RealLength, 1e-9)
}

func TestAggregate_ObliqueLength(t *testing.T) {
	// 3-4-5 triangle with a fixed planar distance
	flat := func(_, _ geo.Point) float64 { return 4 }
	vertices := []Vertex{{Elevation: 0}, {Elevation: 3}, {Elevation: 0}}

	annotated, stats, err := Aggregate(vertices, WithDistanceFunc(flat))
	require.NoError(t, err)

	assert.Equal(t, 8.0, stats.Length)
	assert.Equal(t, 10.0, stats.RealLength)
	assert.Equal(t, []float64{0, 4, 8}, []float64{
		annotated[0].CumulativeDistance,
		annotated[1].CumulativeDistance,
		annotated[2].CumulativeDistance,
	})
}

func TestAggregate_SentinelSeeds(t *testing.T) {
	deep := []Vertex{
		{Latitude: 0, Longitude: 0, Elevation: -11000},
		{Latitude: 0, Longitude: 0.001, Elevation: -10500},
	}

	_, stats, err := Aggregate(deep)
	require.NoError(t, err)

	assert.Equal(t, -11000.0, stats.MinElevation)
	// no vertex inside the seed band, so the max seed wins
	assert.Equal(t, MaxElevationSeed, stats.MaxElevation)
}

func TestAggregate_NaNPropagates(t *testing.T) {
	vertices := []Vertex{
		{Latitude: 42, Longitude: 24, Elevation: 500},
		{Latitude: 42.001, Longitude: 24, Elevation: math.NaN()},
	}

	_, stats, err := Aggregate(vertices)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(stats.RealLength))
	assert.True(t, math.IsNaN(stats.MinElevation))
}

func TestAggregate_PartGaps(t *testing.T) {
	vertices, err := Normalize(trackMultiPath())
	require.NoError(t, err)

	bridged, bridgedStats, err := Aggregate(vertices)
	require.NoError(t, err)

	skipped, skippedStats, err := Aggregate(vertices, WithPartGaps(true))
	require.NoError(t, err)

	// the gap segment from part 0 to part 1 is the middle ~84m descent
	assert.InDelta(t, 168, skippedStats.Length, 1)
	assert.InDelta(t, 8, skippedStats.Ascend, 1e-9)
	assert.Equal(t, 0.0, skippedStats.Descend)
	assert.Equal(t, bridgedStats.MinElevation, skippedStats.MinElevation)
	assert.Equal(t, bridgedStats.MaxElevation, skippedStats.MaxElevation)

	assert.Equal(t, skipped[1].CumulativeDistance, skipped[2].CumulativeDistance)
	assert.Greater(t, bridged[2].CumulativeDistance, bridged[1].CumulativeDistance)
	assert.Equal(t, skippedStats.Length, skipped[3].CumulativeDistance)
}

func TestAggregate_PartGapsIgnoredForSinglePart(t *testing.T) {
	calc := NewCalculator(WithPartGaps(true))

	profile, err := calc.Calculate(trackPath())
	require.NoError(t, err)
	assertTrackStatistics(t, profile.Statistics)
}

func TestCalculator_Errors(t *testing.T) {
	calc := NewCalculator()

	_, err := calc.Calculate(nil)
	assert.True(t, errors.Is(err, ErrMissingGeometry))

	_, err = calc.Calculate(Path{})
	assert.True(t, errors.Is(err, ErrMissingGeometry))

	_, err = calc.Calculate(Path{{24.04}})
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
}
