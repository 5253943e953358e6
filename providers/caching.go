package providers

import (
	"net"

	lru "github.com/hashicorp/golang-lru"

	"github.com/jloeber/ipmapper/geo"
	"github.com/juju/errors"
)

type cachedLookup struct {
	coord geo.Coordinate
	err   error
}

type cachingProvider struct {
	GeoProvider

	cache *lru.Cache
}

// Lookup caches both points and misses: asking a database twice about
// unknown address gives the same answer.
func (c cachingProvider) Lookup(ip net.IP) (geo.Coordinate, error) {
	cacheKey := ip.String()

	if value, ok := c.cache.Get(cacheKey); ok {
		cached := value.(cachedLookup)
		return cached.coord, cached.err
	}

	coord, err := c.GeoProvider.Lookup(ip)

	switch errors.Cause(err) {
	case nil, ErrNoMatch, ErrNoLocation:
		c.cache.Add(cacheKey, cachedLookup{coord: coord, err: err})
	}

	return coord, err
}

func (c cachingProvider) Shutdown() {
	if vv, ok := c.GeoProvider.(OfflineProvider); ok {
		vv.Shutdown()
	}
	c.cache.Purge()
}

// NewCachingProvider wraps provider with LRU cache of the given size.
func NewCachingProvider(provider GeoProvider, itemsCount int) OfflineProvider {
	cache, err := lru.New(itemsCount)
	if err != nil {
		panic(err)
	}

	return cachingProvider{
		GeoProvider: provider,
		cache:       cache,
	}
}
