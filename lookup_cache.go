package versioned

import lru "github.com/hashicorp/golang-lru"

// LookupCache caches the results of ancestor walks. A version's view of a
// slot never changes once the version exists, so cached results never need
// invalidating.
type LookupCache interface {
	// Add remembers the result of a lookup.
	Add(key, value interface{})
	// Get retrieves a remembered lookup result.
	Get(key interface{}) (value interface{}, ok bool)
}

// NewLookupCache creates a new LRU-based lookup cache holding the given number
// of results. One cache can be shared by any number of collections.
func NewLookupCache(size int) LookupCache {
	cache, err := lru.NewARC(size)
	if err != nil {
		panic(err)
	}
	return cache
}

// sizeSlot is the slot under which a store's size table is cached.
type sizeSlot struct{}

type lookupKey struct {
	owner   interface{}
	version versionID
	slot    interface{}
}

type lookupResult[T any] struct {
	value T
	found bool
}

// cachedLookup fronts changeLog.lookup with the cache, if there is one. owner
// distinguishes stores sharing a cache.
func cachedLookup[T any](
	cache LookupCache,
	owner interface{},
	slot interface{},
	log *changeLog[T],
	chain *versionChain,
	v versionID,
) (T, bool) {
	if cache == nil || v == rootVersion {
		return log.lookup(chain, v)
	}
	key := lookupKey{owner, v, slot}
	if cached, ok := cache.Get(key); ok {
		r := cached.(lookupResult[T])
		return r.value, r.found
	}
	value, found := log.lookup(chain, v)
	cache.Add(key, lookupResult[T]{value, found})
	return value, found
}
