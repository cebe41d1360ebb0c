package label

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize fits every distinct label of a regional feed.
const DefaultCacheSize = 4096

type cacheKey struct {
	kind  Kind
	route string
	raw   string
}

// CachedNormalizer memoizes a Normalizer. Feeds repeat the same headsign on
// hundreds of trips, so most calls are hits.
type CachedNormalizer struct {
	inner *Normalizer
	cache *lru.Cache[cacheKey, string]
}

// NewCachedNormalizer wraps n with an LRU cache of the given size.
func NewCachedNormalizer(n *Normalizer, size int) (*CachedNormalizer, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, string](size)
	if err != nil {
		return nil, err
	}
	return &CachedNormalizer{inner: n, cache: cache}, nil
}

func (c *CachedNormalizer) Normalize(raw string, kind Kind) string {
	return c.lookup(cacheKey{kind: kind, raw: raw}, func() string {
		return c.inner.Normalize(raw, kind)
	})
}

func (c *CachedNormalizer) NormalizeHeadsign(raw, routeShortName string) string {
	return c.lookup(cacheKey{kind: TripHeadsign, route: routeShortName, raw: raw}, func() string {
		return c.inner.NormalizeHeadsign(raw, routeShortName)
	})
}

// Len reports how many labels are cached.
func (c *CachedNormalizer) Len() int { return c.cache.Len() }

func (c *CachedNormalizer) lookup(key cacheKey, compute func() string) string {
	if v, ok := c.cache.Get(key); ok {
		return v
	}
	v := compute()
	c.cache.Add(key, v)
	return v
}
