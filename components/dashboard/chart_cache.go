package dashboard

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/goliatone/go-chartkit/components/chart"
)

// OptionCache memoizes composed option trees so repeated fetches skip the
// builder pipeline.
type OptionCache interface {
	GetOrCompose(key string, compose func() (chart.OptionTree, error)) (chart.OptionTree, error)
}

// ChartCache is an in-memory TTL cache for composed option trees. Callers
// receive clones, so cached entries are never mutated.
type ChartCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]cachedChart
}

type cachedChart struct {
	tree    chart.OptionTree
	expires time.Time
}

// NewChartCache builds a cache with the provided TTL. A non-positive TTL
// disables caching.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedChart),
	}
}

// GetOrCompose returns a cached entry or composes/stores a new one.
func (c *ChartCache) GetOrCompose(key string, compose func() (chart.OptionTree, error)) (chart.OptionTree, error) {
	if tree, ok := c.get(key); ok {
		return tree, nil
	}
	tree, err := compose()
	if err != nil {
		return nil, err
	}
	c.set(key, tree)
	return tree.Clone(), nil
}

// Invalidate drops every entry.
func (c *ChartCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]cachedChart)
	c.mu.Unlock()
}

// Len reports the number of live and expired entries held.
func (c *ChartCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *ChartCache) get(key string) (chart.OptionTree, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expires) {
		if ok {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
		return nil, false
	}
	return entry.tree.Clone(), true
}

func (c *ChartCache) set(key string, tree chart.OptionTree) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cachedChart{
		tree:    tree.Clone(),
		expires: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// configHash returns a deterministic hash for a panel configuration.
func configHash(cfg map[string]any) string {
	if len(cfg) == 0 {
		return "empty"
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
