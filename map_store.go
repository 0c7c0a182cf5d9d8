package versioned

import "fmt"

// mapStore holds every version of a family of maps: one change log per key
// ever written, and a size table recording the count at versions that
// introduced a key.
type mapStore[K comparable, V any] struct {
	chain versionChain
	data  map[K]*changeLog[V]
	// keys lists every key ever written, in first-write order.
	keys    []K
	size    *changeLog[int]
	cache   LookupCache
	marshal func(interface{}) ([]byte, error)
	debug   bool
}

func newMapStore[K comparable, V any](opts *Options) *mapStore[K, V] {
	return &mapStore[K, V]{
		data:    map[K]*changeLog[V]{},
		size:    newChangeLog[int](),
		cache:   opts.cache(),
		marshal: opts.marshal(),
		debug:   opts.debug(),
	}
}

func (s *mapStore[K, V]) lookup(changes *changeLog[V], v versionID, key K) (V, bool) {
	if changes == nil {
		var zero V
		return zero, false
	}
	return cachedLookup(s.cache, s, key, changes, &s.chain, v)
}

func (s *mapStore[K, V]) get(v versionID, key K) (V, bool) {
	if s == nil {
		var zero V
		return zero, false
	}
	return s.lookup(s.data[key], v, key)
}

func (s *mapStore[K, V]) containsKey(v versionID, key K) bool {
	_, found := s.get(v, key)
	return found
}

func (s *mapStore[K, V]) sizeAt(v versionID) int {
	if s == nil {
		return 0
	}
	n, _ := cachedLookup(s.cache, s, sizeSlot{}, s.size, &s.chain, v)
	return n
}

// put records value for key in a new child of v. The size grows only if key
// was not present at v; a key first written on another branch still counts
// as new here.
func (s *mapStore[K, V]) put(v versionID, key K, value V) versionID {
	size := s.sizeAt(v)
	if size > len(s.keys) {
		panic(fmt.Sprintf("bug! size %d at version %d exceeds %d stored keys", size, v, len(s.keys)))
	}
	changes := s.data[key]
	if changes == nil {
		changes = newChangeLog[V]()
		s.data[key] = changes
		s.keys = append(s.keys, key)
	}
	_, present := s.lookup(changes, v, key)
	nv := s.chain.newVersion(v)
	if !present {
		s.size.record(nv, size+1)
	}
	changes.record(nv, value)
	if s.debug {
		fmt.Printf("map %p: version %d (parent %d) puts %v, size %d, %d versions\n",
			s, nv, v, key, s.sizeAt(nv), s.chain.count())
	}
	return nv
}

func (s *mapStore[K, V]) entries(v versionID) EntrySet[K, V] {
	return EntrySet[K, V]{store: s, version: v}
}
