package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-chartkit/components/chart"
)

func TestChartCacheStoresEntry(t *testing.T) {
	cache := NewChartCache(time.Minute)
	calls := 0
	compose := func() (chart.OptionTree, error) {
		calls++
		return chart.OptionTree{"title": map[string]any{"text": "Revenue"}}, nil
	}

	val1, err := cache.GetOrCompose("key", compose)
	require.NoError(t, err)
	val2, err := cache.GetOrCompose("key", compose)
	require.NoError(t, err)

	assert.Equal(t, val1, val2)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.Len())
}

func TestChartCacheReturnsClones(t *testing.T) {
	cache := NewChartCache(time.Minute)
	compose := func() (chart.OptionTree, error) {
		return chart.OptionTree{"title": map[string]any{"text": "Revenue"}}, nil
	}
	first, err := cache.GetOrCompose("key", compose)
	require.NoError(t, err)
	first["title"].(map[string]any)["text"] = "mutated"

	second, err := cache.GetOrCompose("key", compose)
	require.NoError(t, err)
	assert.Equal(t, "Revenue", second["title"].(map[string]any)["text"])
}

func TestChartCacheExpires(t *testing.T) {
	cache := NewChartCache(time.Minute)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	calls := 0
	compose := func() (chart.OptionTree, error) {
		calls++
		return chart.OptionTree{}, nil
	}

	_, err := cache.GetOrCompose("key", compose)
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)
	_, err = cache.GetOrCompose("key", compose)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestChartCacheSkipsErrorsAndDisabledTTL(t *testing.T) {
	cache := NewChartCache(time.Minute)
	_, err := cache.GetOrCompose("key", func() (chart.OptionTree, error) {
		return nil, errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 0, cache.Len())

	disabled := NewChartCache(0)
	calls := 0
	for i := 0; i < 2; i++ {
		_, err := disabled.GetOrCompose("key", func() (chart.OptionTree, error) {
			calls++
			return chart.OptionTree{}, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}

func TestConfigHashStable(t *testing.T) {
	a := map[string]any{"title": "A", "series": []any{1, 2}}
	b := map[string]any{"series": []any{1, 2}, "title": "A"}
	assert.Equal(t, configHash(a), configHash(b))
	assert.NotEqual(t, configHash(a), configHash(map[string]any{"title": "B"}))
	assert.Equal(t, "empty", configHash(nil))
}
