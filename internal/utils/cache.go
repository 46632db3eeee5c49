package utils

import (
	"regexp"
	"sync"
)

// DefaultPatternCacheSize bounds the number of compiled expressions a
// PatternCache built by NewPatternCache keeps.
const DefaultPatternCacheSize = 256

// PatternCache keeps compiled regular expressions keyed by their source so
// requests that repeat the same POS or forbidden patterns compile them once.
// When full, the least recently used expression is evicted.
type PatternCache struct {
	mu       sync.RWMutex
	items    map[string]CacheItem
	capacity int
	clock    uint64
	hits     int
	misses   int
}

type CacheItem struct {
	value    *regexp.Regexp
	lastUsed uint64
}

func NewPatternCache() *PatternCache {
	return NewPatternCacheWithCapacity(DefaultPatternCacheSize)
}

func NewPatternCacheWithCapacity(capacity int) *PatternCache {
	if capacity < 1 {
		capacity = 1
	}
	return &PatternCache{
		items:    make(map[string]CacheItem, capacity),
		capacity: capacity,
	}
}

func (c *PatternCache) Compile(expr string) (*regexp.Regexp, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clock++
	if item, exists := c.items[expr]; exists {
		c.hits += 1
		item.lastUsed = c.clock
		c.items[expr] = item
		return item.value, nil
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	c.misses += 1
	if len(c.items) >= c.capacity {
		c.evictOldest()
	}
	c.items[expr] = CacheItem{
		value:    re,
		lastUsed: c.clock,
	}
	return re, nil
}

// evictOldest drops the least recently used item. Callers hold the write lock.
func (c *PatternCache) evictOldest() {
	var oldestKey string
	var oldest uint64
	first := true

	for key, item := range c.items {
		if first || item.lastUsed < oldest {
			oldestKey, oldest = key, item.lastUsed
			first = false
		}
	}
	if !first {
		delete(c.items, oldestKey)
	}
}

// CompileAll compiles every expression in order and stops at the first
// invalid one.
func (c *PatternCache) CompileAll(exprs []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := c.Compile(expr)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

func (c *PatternCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

func (c *PatternCache) HitRate() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.hits+c.misses > 0 {
		return float64(c.hits) / float64(c.hits+c.misses)
	}
	return 0.0
}
