package versioned

import "fmt"

// ListIterator is a bidirectional cursor over the elements of one version of
// a list. Its range is fixed when it is created: iterating a builder while
// mutating it sees none of the mutations.
type ListIterator[E any] struct {
	store   *listStore[E]
	version versionID
	size    int
	// cursor is the index of the element Next would return.
	cursor int
}

// HasNext reports whether Next would return an element.
func (it *ListIterator[E]) HasNext() bool {
	return it.cursor < it.size
}

// HasPrevious reports whether Previous would return an element.
func (it *ListIterator[E]) HasPrevious() bool {
	return it.cursor > 0
}

// NextIndex is the index of the element Next would return, or the size if
// the iterator is at the end.
func (it *ListIterator[E]) NextIndex() int {
	return it.cursor
}

// PreviousIndex is the index of the element Previous would return, or -1.
func (it *ListIterator[E]) PreviousIndex() int {
	return it.cursor - 1
}

// Next returns the next element and advances. It returns ErrExhausted at the
// end.
func (it *ListIterator[E]) Next() (E, error) {
	if !it.HasNext() {
		var zero E
		return zero, fmt.Errorf("next at %d of %d: %w", it.cursor, it.size, ErrExhausted)
	}
	e, err := it.store.get(it.version, it.cursor)
	if err != nil {
		panic(fmt.Sprintf("bug! iterator element missing: %v", err))
	}
	it.cursor++
	return e, nil
}

// Previous returns the previous element and moves back. It returns
// ErrExhausted at the start.
func (it *ListIterator[E]) Previous() (E, error) {
	if !it.HasPrevious() {
		var zero E
		return zero, fmt.Errorf("previous at start: %w", ErrExhausted)
	}
	e, err := it.store.get(it.version, it.cursor-1)
	if err != nil {
		panic(fmt.Sprintf("bug! iterator element missing: %v", err))
	}
	it.cursor--
	return e, nil
}

// Set is not supported by list iterators.
func (it *ListIterator[E]) Set(E) error {
	return fmt.Errorf("iterator set: %w", ErrUnsupported)
}

// Add is not supported by list iterators.
func (it *ListIterator[E]) Add(E) error {
	return fmt.Errorf("iterator add: %w", ErrUnsupported)
}

// Remove is not supported by list iterators.
func (it *ListIterator[E]) Remove() error {
	return fmt.Errorf("iterator remove: %w", ErrUnsupported)
}

// Entry is a key and its value in a map.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// EntrySet is the lazily computed set of entries present in one version of a
// map. Each call to Iterator starts an independent pass.
type EntrySet[K comparable, V any] struct {
	store   *mapStore[K, V]
	version versionID
}

// Size returns the number of entries, without iterating.
func (es EntrySet[K, V]) Size() int {
	return es.store.sizeAt(es.version)
}

// Iterator starts a pass over the entries, in the order the keys were first
// written to the underlying store.
func (es EntrySet[K, V]) Iterator() *EntryIterator[K, V] {
	return &EntryIterator[K, V]{store: es.store, version: es.version}
}

// EntryIterator walks every key ever written to a map's store and yields
// those present at its version.
type EntryIterator[K comparable, V any] struct {
	store   *mapStore[K, V]
	version versionID
	pos     int
	next    *Entry[K, V]
}

func (it *EntryIterator[K, V]) advance() {
	if it.next != nil || it.store == nil || it.version == rootVersion {
		return
	}
	for it.pos < len(it.store.keys) {
		key := it.store.keys[it.pos]
		it.pos++
		if value, found := it.store.get(it.version, key); found {
			it.next = &Entry[K, V]{key, value}
			return
		}
	}
}

// HasNext reports whether Next would return an entry.
func (it *EntryIterator[K, V]) HasNext() bool {
	it.advance()
	return it.next != nil
}

// Next returns the next present entry. It returns ErrExhausted at the end.
func (it *EntryIterator[K, V]) Next() (Entry[K, V], error) {
	it.advance()
	if it.next == nil {
		return Entry[K, V]{}, fmt.Errorf("next entry: %w", ErrExhausted)
	}
	e := *it.next
	it.next = nil
	return e, nil
}

// Remove is not supported by entry iterators.
func (it *EntryIterator[K, V]) Remove() error {
	return fmt.Errorf("iterator remove: %w", ErrUnsupported)
}
