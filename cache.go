package turkmorph

import (
	"strconv"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is the number of words an AnalysisCache keeps.
const DefaultCacheSize = 10000

// AnalysisCache memoizes analyses per word. Concurrent misses on the same
// word share one computation. Cached slices are shared and must not be
// modified by callers.
type AnalysisCache struct {
	mu    sync.Mutex // guards gen against Add
	gen   uint64
	lru   *lru.Cache[string, []WordAnalysis]
	group singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
}

// CacheStats reports cache usage.
type CacheStats struct {
	Size   int    `json:"size"`
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// NewAnalysisCache returns a cache holding at most size words.
func NewAnalysisCache(size int) (*AnalysisCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, []WordAnalysis](size)
	if err != nil {
		return nil, err
	}
	return &AnalysisCache{lru: c}, nil
}

// Get returns the cached analyses of key, calling compute on a miss.
// A result computed while the cache was invalidated is returned but not
// stored.
func (c *AnalysisCache) Get(key string, compute func() []WordAnalysis) []WordAnalysis {
	if v, ok := c.lru.Get(key); ok {
		c.hits.Add(1)
		return v
	}
	c.misses.Add(1)
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()
	v, _, _ := c.group.Do(strconv.FormatUint(gen, 10)+"|"+key, func() (any, error) {
		res := compute()
		c.mu.Lock()
		if c.gen == gen {
			c.lru.Add(key, res)
		}
		c.mu.Unlock()
		return res, nil
	})
	return v.([]WordAnalysis)
}

// Invalidate drops key.
func (c *AnalysisCache) Invalidate(key string) {
	c.lru.Remove(key)
}

// InvalidateAll drops every entry, including results still being computed.
func (c *AnalysisCache) InvalidateAll() {
	c.mu.Lock()
	c.gen++
	c.lru.Purge()
	c.mu.Unlock()
}

// Stats returns the current size and the hit and miss counters.
func (c *AnalysisCache) Stats() CacheStats {
	return CacheStats{
		Size:   c.lru.Len(),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}
