package services

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpup/terrain-profile/internal/cache"
	"github.com/dpup/terrain-profile/internal/lib/profile"
	"github.com/dpup/terrain-profile/internal/lib/tracks"
	"github.com/dpup/terrain-profile/internal/metrics"
)

const hill = `{
  "type": "MultiLineString",
  "coordinates": [
    [[24.0482193, 42.0931683, 560], [24.0482193, 42.0939229, 564]],
    [[24.0482193, 42.0946775, 560], [24.0482193, 42.0954321, 564]]
  ]
}`

func newTestService(partGaps bool) (*ProfileService, *metrics.Metrics) {
	m := metrics.New()
	store := cache.NewProfileStore(cache.NewCache(nil), time.Minute)
	return NewProfileService(store, partGaps, m, nil), m
}

func TestCompute(t *testing.T) {
	svc, m := newTestService(false)

	p, cached, err := svc.Compute(context.Background(), tracks.FormatGeoJSON, []byte(hill))
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, p.Vertices, 4)
	assert.InDelta(t, 252.005, p.Statistics.Length, 0.01)
	assert.InDelta(t, 8, p.Statistics.Ascend, 1e-9)
	assert.InDelta(t, 4, p.Statistics.Descend, 1e-9)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProfilesComputed.WithLabelValues("geojson", metrics.ResultOK)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.VerticesProcessed))
}

func TestCompute_CachesByContent(t *testing.T) {
	svc, m := newTestService(false)
	ctx := context.Background()

	first, cached, err := svc.Compute(ctx, tracks.FormatGeoJSON, []byte(hill))
	require.NoError(t, err)
	require.False(t, cached)

	// Reformatted whitespace hits the same entry
	second, cached, err := svc.Compute(ctx, tracks.FormatGeoJSON, []byte("  "+hill+"\n\n"))
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first.Statistics, second.Statistics)
	assert.Equal(t, first.Vertices, second.Vertices)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProfilesComputed.WithLabelValues("geojson", metrics.ResultCached)))
}

func TestCompute_PartGaps(t *testing.T) {
	svc, _ := newTestService(true)

	p, _, err := svc.Compute(context.Background(), tracks.FormatGeoJSON, []byte(hill))
	require.NoError(t, err)
	assert.InDelta(t, 168.003, p.Statistics.Length, 0.01)
	assert.InDelta(t, 0, p.Statistics.Descend, 1e-9)
}

func TestCompute_InvalidInput(t *testing.T) {
	svc, m := newTestService(false)
	ctx := context.Background()

	_, _, err := svc.Compute(ctx, tracks.FormatGeoJSON, []byte(`{"type": "Point", "coordinates": [1, 2]}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, profile.ErrInvalidGeometry)
	assert.True(t, IsInvalidInput(err))

	_, _, err = svc.Compute(ctx, tracks.FormatGPX, []byte(" "))
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))

	_, _, err = svc.Compute(ctx, tracks.FormatPolyline, []byte(""))
	assert.ErrorIs(t, err, profile.ErrMissingGeometry)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ProfilesComputed.WithLabelValues("geojson", metrics.ResultInvalidInput))+
		testutil.ToFloat64(m.ProfilesComputed.WithLabelValues("gpx", metrics.ResultInvalidInput)))
}

func TestCompute_CanceledContext(t *testing.T) {
	svc, _ := newTestService(false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := svc.Compute(ctx, tracks.FormatGeoJSON, []byte(hill))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsInvalidInput(err))
}

func TestCompute_WithoutStoreOrMetrics(t *testing.T) {
	svc := NewProfileService(nil, false, nil, nil)

	_, cached, err := svc.Compute(context.Background(), tracks.FormatGeoJSON, []byte(hill))
	require.NoError(t, err)
	assert.False(t, cached)

	_, cached, err = svc.Compute(context.Background(), tracks.FormatGeoJSON, []byte(hill))
	require.NoError(t, err)
	assert.False(t, cached)
}
