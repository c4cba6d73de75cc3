package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "berdoz_cache_hits_total",
		Help: "Cache hits per cache.",
	}, []string{"cache"})
	missesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "berdoz_cache_misses_total",
		Help: "Cache misses per cache.",
	}, []string{"cache"})
)

// LRUCache is a size bounded cache whose entries expire after a TTL.
type LRUCache[T any] struct {
	name string
	lru  *expirable.LRU[string, T]
}

var (
	_ Cache[int] = (*LRUCache[int])(nil)
	_ Sizer      = (*LRUCache[int])(nil)
)

// NewLRUCache creates a new LRU cache with TTL
func NewLRUCache[T any](name string, maxSize int, ttl time.Duration) *LRUCache[T] {
	return &LRUCache[T]{
		name: name,
		lru:  expirable.NewLRU[string, T](maxSize, nil, ttl),
	}
}

func (c *LRUCache[T]) Name() string { return c.name }

// Get retrieves a value from the cache
func (c *LRUCache[T]) Get(key string) (T, bool) {
	v, ok := c.lru.Get(key)
	if ok {
		hitsTotal.WithLabelValues(c.name).Inc()
	} else {
		missesTotal.WithLabelValues(c.name).Inc()
	}
	return v, ok
}

// Set stores a value in the cache
func (c *LRUCache[T]) Set(key string, data T) {
	c.lru.Add(key, data)
}

// Delete removes a key from the cache
func (c *LRUCache[T]) Delete(key string) {
	c.lru.Remove(key)
}

func (c *LRUCache[T]) Clear() {
	c.lru.Purge()
}

// Size returns the number of live entries
func (c *LRUCache[T]) Size() int {
	return len(c.lru.Keys())
}
