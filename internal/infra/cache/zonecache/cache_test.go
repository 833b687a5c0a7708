package zonecache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/domain"
)

type countingMetrics struct {
	hits, misses int
}

func (m *countingMetrics) ObserveZoneCache(hit bool) {
	if hit {
		m.hits++
		return
	}
	m.misses++
}

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis, *countingMetrics) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	m := &countingMetrics{}
	return New(client, time.Hour, m), mr, m
}

func TestKey(t *testing.T) {
	assert.Equal(t, "zone:drive:ME196AA:CT94AB", Key("ME19 6AA", "ct9 4ab"))
}

func TestCache_MissThenHit(t *testing.T) {
	cache, mr, m := newCache(t)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "ME19 6AA", "TN23 1AA")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "ME19 6AA", "TN23 1AA", domain.DriveTime{Minutes: 32, DistanceMiles: 21.5}))
	assert.Equal(t, time.Hour, mr.TTL("zone:drive:ME196AA:TN231AA"))

	dt, ok, err := cache.Get(ctx, "ME19 6AA", "TN23 1AA")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 32, dt.Minutes)
	assert.Equal(t, 21.5, dt.DistanceMiles)

	assert.Equal(t, 1, m.hits)
	assert.Equal(t, 1, m.misses)
}

func TestCache_Expires(t *testing.T) {
	cache, mr, _ := newCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "ME19 6AA", "TN23 1AA", domain.DriveTime{Minutes: 32}))
	mr.FastForward(2 * time.Hour)

	_, ok, err := cache.Get(ctx, "ME19 6AA", "TN23 1AA")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	cache, mr, _ := newCache(t)
	require.NoError(t, mr.Set("zone:drive:ME196AA:TN231AA", "not-json"))

	_, ok, err := cache.Get(context.Background(), "ME19 6AA", "TN23 1AA")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_ReadError(t *testing.T) {
	cache, mr, _ := newCache(t)
	mr.Close()

	_, _, err := cache.Get(context.Background(), "ME19 6AA", "TN23 1AA")
	assert.ErrorIs(t, err, ErrCacheRead)
}
