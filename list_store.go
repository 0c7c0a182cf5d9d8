package versioned

import "fmt"

// listStore holds every version of a family of lists: one change log per
// index, and a size table recording the length at versions that appended.
type listStore[E any] struct {
	chain   versionChain
	data    []*changeLog[E]
	size    *changeLog[int]
	cache   LookupCache
	marshal func(interface{}) ([]byte, error)
	debug   bool
}

func newListStore[E any](opts *Options) *listStore[E] {
	return &listStore[E]{
		size:    newChangeLog[int](),
		cache:   opts.cache(),
		marshal: opts.marshal(),
		debug:   opts.debug(),
	}
}

func (s *listStore[E]) sizeAt(v versionID) int {
	if s == nil {
		return 0
	}
	n, _ := cachedLookup(s.cache, s, sizeSlot{}, s.size, &s.chain, v)
	return n
}

func (s *listStore[E]) get(v versionID, index int) (E, error) {
	var zero E
	if s == nil || index < 0 || index >= len(s.data) {
		return zero, fmt.Errorf("index %d: %w", index, ErrOutOfRange)
	}
	e, found := cachedLookup(s.cache, s, index, s.data[index], &s.chain, v)
	if !found {
		return zero, fmt.Errorf("index %d not visible at this version: %w", index, ErrOutOfRange)
	}
	return e, nil
}

// add appends e, returning the new version.
func (s *listStore[E]) add(v versionID, e E) versionID {
	nv, err := s.set(v, s.sizeAt(v), e)
	if err != nil {
		panic(fmt.Sprintf("bug! append failed: %v", err))
	}
	return nv
}

// set records e at index in a new child of v. An index equal to the current
// size appends.
func (s *listStore[E]) set(v versionID, index int, e E) (versionID, error) {
	size := s.sizeAt(v)
	if size > len(s.data) {
		panic(fmt.Sprintf("bug! size %d at version %d exceeds %d stored slots", size, v, len(s.data)))
	}
	if index < 0 || index > size {
		return v, fmt.Errorf("index %d of %d: %w", index, size, ErrOutOfRange)
	}
	nv := s.chain.newVersion(v)
	var changes *changeLog[E]
	if index < len(s.data) {
		changes = s.data[index]
	} else {
		changes = newChangeLog[E]()
		s.data = append(s.data, changes)
	}
	if index == size {
		s.size.record(nv, size+1)
	}
	changes.record(nv, e)
	if s.debug {
		fmt.Printf("list %p: version %d (parent %d) sets [%d], size %d, %d versions\n",
			s, nv, v, index, s.sizeAt(nv), s.chain.count())
	}
	return nv, nil
}

// iterator returns a cursor over the elements visible at v. The size is
// fixed when the cursor is created.
func (s *listStore[E]) iterator(v versionID) *ListIterator[E] {
	return &ListIterator[E]{
		store:   s,
		version: v,
		size:    s.sizeAt(v),
	}
}
