package build

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheLRU(t *testing.T) {
	t.Run("evicts least recently used", func(t *testing.T) {
		cache := NewCache(30, time.Hour)
		for i := 1; i <= 5; i++ {
			cache.Set(fmt.Sprintf("key%d", i), fmt.Sprintf("value%d", i))
		}

		cache.Set("key6", "value6")

		_, found := cache.Get("key1")
		assert.False(t, found)
		for i := 2; i <= 6; i++ {
			_, found := cache.Get(fmt.Sprintf("key%d", i))
			assert.True(t, found, "key%d", i)
		}
		assert.EqualValues(t, 1, cache.Stats().Evictions)
	})

	t.Run("access refreshes recency", func(t *testing.T) {
		cache := NewCache(24, time.Hour)
		for i := 1; i <= 4; i++ {
			cache.Set(fmt.Sprintf("key%d", i), fmt.Sprintf("value%d", i))
		}

		cache.Get("key1")
		cache.Set("key5", "value5")

		_, found := cache.Get("key1")
		assert.True(t, found)
		_, found = cache.Get("key2")
		assert.False(t, found)
	})

	t.Run("overwrite replaces size", func(t *testing.T) {
		cache := NewCache(100, time.Hour)
		cache.Set("k", "short")
		cache.Set("k", "a much longer value")

		v, found := cache.Get("k")
		require.True(t, found)
		assert.Equal(t, "a much longer value", v)
		assert.EqualValues(t, len("a much longer value"), cache.Stats().Size)
		assert.Equal(t, 1, cache.Stats().Entries)
	})

	t.Run("oversized value is skipped", func(t *testing.T) {
		cache := NewCache(4, time.Hour)
		cache.Set("k", "too large")

		_, found := cache.Get("k")
		assert.False(t, found)
	})
}

func TestCacheTTL(t *testing.T) {
	cache := NewCache(100, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set("k", "v")
	_, found := cache.Get("k")
	assert.True(t, found)

	now = now.Add(2 * time.Minute)
	_, found = cache.Get("k")
	assert.False(t, found)

	stats := cache.Stats()
	assert.Equal(t, 0, stats.Entries)
	assert.EqualValues(t, 0, stats.Size)
	assert.EqualValues(t, 1, stats.Hits)
	assert.EqualValues(t, 1, stats.Misses)
}

func TestCacheClear(t *testing.T) {
	cache := NewCache(100, time.Hour)
	cache.Set("a", "1")
	cache.Get("a")
	cache.Get("b")

	cache.Clear()

	assert.Equal(t, CacheStats{MaxSize: 100}, cache.Stats())
}

func TestCacheConcurrentAccess(t *testing.T) {
	cache := NewCache(1<<16, time.Hour)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("k%d", i%10)
				cache.Set(key, fmt.Sprintf("v%d-%d", w, i))
				cache.Get(key)
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 10, cache.Stats().Entries)
}

func TestKey(t *testing.T) {
	a, ok := Key("Grid", map[string]any{"gap": 1, "layout": "2x2"}, "tech")
	require.True(t, ok)
	b, _ := Key("Grid", map[string]any{"layout": "2x2", "gap": 1}, "tech")
	assert.Equal(t, a, b)

	c, _ := Key("Grid", map[string]any{"gap": 1, "layout": "2x2"}, "gaming")
	assert.NotEqual(t, a, c)

	d, _ := Key("Grid", nil, "tech")
	assert.NotEqual(t, a, d)

	_, ok = Key("Grid", map[string]any{"fn": func() {}}, "tech")
	assert.False(t, ok)
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	assert.Equal(t, 0.0, m.SuccessRate())
	assert.Equal(t, 0.0, m.CacheHitRate())

	m.Record(Result{Type: "A", Duration: 100 * time.Millisecond})
	m.Record(Result{Type: "B", Duration: 50 * time.Millisecond, CacheHit: true})
	m.Record(Result{Type: "C", Duration: 150 * time.Millisecond, Err: fmt.Errorf("boom")})
	m.Record(Result{Type: "D", Duration: 100 * time.Millisecond, CacheHit: true})

	snap := m.Snapshot()
	assert.EqualValues(t, 4, snap.TotalRenders)
	assert.EqualValues(t, 3, snap.SuccessfulRenders)
	assert.EqualValues(t, 1, snap.FailedRenders)
	assert.EqualValues(t, 2, snap.CacheHits)
	assert.Equal(t, 400*time.Millisecond, snap.TotalDuration)
	assert.Equal(t, 100*time.Millisecond, snap.AverageDuration)
	assert.Equal(t, 75.0, m.SuccessRate())
	assert.Equal(t, 50.0, m.CacheHitRate())

	m.Reset()
	assert.Equal(t, Snapshot{}, m.Snapshot())
}
