package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCmdable serves Get/Set/Del from a map. Any other command panics.
type memCmdable struct {
	redis.Cmdable
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newMem() *memCmdable {
	return &memCmdable{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	if m.failGet != nil {
		return redis.NewStringResult("", m.failGet)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memCmdable) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	m.data[key] = string(value.([]byte))
	m.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (m *memCmdable) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(m.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestSummaryCache_MissThenHit(t *testing.T) {
	ctx := context.Background()
	mem := newMem()
	cache := NewSummaryCache(mem, time.Minute)

	got, err := cache.Get(ctx, "summary:abc")
	require.NoError(t, err)
	assert.Nil(t, got)

	want := &models.Summary{
		OverallKPIs:    models.KPI{TotalRequests: 12, Trips: 9, FulfillmentRate: 75},
		RegionKPIs:     []models.GroupKPI{{Key: "North", TotalRequests: 12, Trips: 9}},
		TotalRows:      12,
		DistanceFilter: "1.0 to 9.5 km",
	}
	require.NoError(t, cache.Set(ctx, "summary:abc", want))
	assert.Equal(t, time.Minute, mem.ttls["insights:summary:abc"])

	got, err = cache.Get(ctx, "summary:abc")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSummaryCache_CorruptEntryIsMiss(t *testing.T) {
	mem := newMem()
	mem.data["insights:k"] = "{not json"
	cache := NewSummaryCache(mem, time.Minute)

	got, err := cache.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NotContains(t, mem.data, "insights:k")
}

func TestSummaryCache_BackendError(t *testing.T) {
	mem := newMem()
	mem.failGet = errors.New("connection refused")
	cache := NewSummaryCache(mem, time.Minute)

	_, err := cache.Get(context.Background(), "k")
	assert.ErrorContains(t, err, "connection refused")
}
