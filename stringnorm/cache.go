package stringnorm

import (
	"github.com/golang/groupcache/lru"
)

// Cached memoizes the results of a Normalizer in an LRU cache. Only
// successful results are cached. A Cached normalizer is not safe for
// concurrent use.
type Cached struct {
	Normalizer Normalizer

	cache        *lru.Cache
	hits, misses int64
}

// NewCached wraps norm with an LRU cache of up to size entries. A size <= 0
// returns norm unwrapped.
func NewCached(norm Normalizer, size int) Normalizer {
	if size <= 0 || norm == nil {
		return norm
	}
	return &Cached{Normalizer: norm, cache: lru.New(size)}
}

func (c *Cached) Normalize(text string) (string, error) {
	if v, ok := c.cache.Get(text); ok {
		c.hits++
		return v.(string), nil
	}
	c.misses++
	res, err := c.Normalizer.Normalize(text)
	if err != nil {
		return res, err
	}
	c.cache.Add(text, res)
	return res, nil
}

// Stats reports cache hits and misses so far.
func (c *Cached) Stats() (hits, misses int64) {
	return c.hits, c.misses
}
