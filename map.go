package versioned

import (
	"fmt"
	"reflect"
)

// Map is an immutable map. Maps derived from each other, through a
// MapBuilder or Put, share one persistent store.
//
// Every mutating method of Map fails with ErrReadOnly. The zero Map is empty.
type Map[K comparable, V any] struct {
	view mapView[K, V]
}

// EmptyMap returns an empty map over a fresh store with default options.
func EmptyMap[K comparable, V any]() Map[K, V] {
	return NewMap[K, V](nil)
}

// NewMap returns an empty map over a fresh store configured by opts, which
// may be nil.
func NewMap[K comparable, V any](opts *Options) Map[K, V] {
	return Map[K, V]{view: newMapView(newMapStore[K, V](opts), true)}
}

// MapOf returns a new map holding the entries of m.
func MapOf[K comparable, V any](m map[K]V) Map[K, V] {
	b := EmptyMap[K, V]().Builder()
	for k, v := range m {
		if _, err := b.Put(k, v); err != nil {
			panic(fmt.Sprintf("bug! builder put: %v", err))
		}
	}
	return b.Build()
}

// Put returns a new map in which key has value. m is unchanged.
func Put[K comparable, V any](m Map[K, V], key K, value V) Map[K, V] {
	v := m.writableView()
	if _, err := v.Put(key, value); err != nil {
		panic(fmt.Sprintf("bug! transient put: %v", err))
	}
	v.writable = false
	return Map[K, V]{view: v}
}

func (m Map[K, V]) writableView() mapView[K, V] {
	if m.view.store == nil {
		return newMapView(newMapStore[K, V](nil), false)
	}
	return m.view.derive(false)
}

// Builder returns a mutable map starting with the contents of m.
func (m Map[K, V]) Builder() *MapBuilder[K, V] {
	return &MapBuilder[K, V]{view: m.writableView()}
}

// Size returns the number of entries.
func (m Map[K, V]) Size() int {
	return m.view.Size()
}

// IsEmpty reports whether the map has no entries.
func (m Map[K, V]) IsEmpty() bool {
	return m.view.Size() == 0
}

// Get returns the value for key, and whether the key is present. A present
// key may have a zero value.
func (m Map[K, V]) Get(key K) (V, bool) {
	return m.view.Get(key)
}

// ContainsKey reports whether key is present.
func (m Map[K, V]) ContainsKey(key K) bool {
	return m.view.ContainsKey(key)
}

// Entries returns the set of entries present in m.
func (m Map[K, V]) Entries() EntrySet[K, V] {
	return m.view.Entries()
}

// Iter invokes f for every entry, stopping at the first error.
func (m Map[K, V]) Iter(f func(K, V) error) error {
	return iterMap(m.view, f)
}

// ToMap copies the entries into a new Go map.
func (m Map[K, V]) ToMap() map[K]V {
	return mapToMap(m.view)
}

// Equal reports whether other has exactly the same keys, with values equal
// according to reflect.DeepEqual.
func (m Map[K, V]) Equal(other ReadableMap[K, V]) bool {
	return mapsEqual(m.view, other)
}

// Digest returns a content hash of the entries, independent of the order in
// which they were added.
func (m Map[K, V]) Digest() ([32]byte, error) {
	return mapDigest(m.view)
}

func (m Map[K, V]) String() string {
	return fmt.Sprintf("%v", m.ToMap())
}

// Put fails with ErrReadOnly; use the package-level Put or a Builder.
func (m *Map[K, V]) Put(key K, value V) (V, error) {
	return m.view.Put(key, value)
}

// Remove fails with ErrReadOnly.
func (m *Map[K, V]) Remove(key K) error {
	return m.view.Remove(key)
}

// Clear fails with ErrReadOnly.
func (m *Map[K, V]) Clear() error {
	return m.view.Clear()
}

// PutAll fails with ErrReadOnly.
func (m *Map[K, V]) PutAll(entries map[K]V) error {
	return m.view.PutAll(entries)
}

// MapBuilder is a mutable map. It does not support removing entries.
// Mutating a zero MapBuilder fails with ErrReadOnly.
type MapBuilder[K comparable, V any] struct {
	view mapView[K, V]
}

// Build returns an immutable map with the builder's current contents. The
// builder stays usable.
func (b *MapBuilder[K, V]) Build() Map[K, V] {
	return Map[K, V]{view: b.view.derive(true)}
}

// Size returns the number of entries.
func (b *MapBuilder[K, V]) Size() int {
	return b.view.Size()
}

// IsEmpty reports whether the builder has no entries.
func (b *MapBuilder[K, V]) IsEmpty() bool {
	return b.view.Size() == 0
}

// Get returns the value for key, and whether the key is present.
func (b *MapBuilder[K, V]) Get(key K) (V, bool) {
	return b.view.Get(key)
}

// ContainsKey reports whether key is present.
func (b *MapBuilder[K, V]) ContainsKey(key K) bool {
	return b.view.ContainsKey(key)
}

// Entries returns the set of entries currently present.
func (b *MapBuilder[K, V]) Entries() EntrySet[K, V] {
	return b.view.Entries()
}

// Iter invokes f for every entry, stopping at the first error.
func (b *MapBuilder[K, V]) Iter(f func(K, V) error) error {
	return iterMap(b.view, f)
}

// ToMap copies the entries into a new Go map.
func (b *MapBuilder[K, V]) ToMap() map[K]V {
	return mapToMap(b.view)
}

// Equal reports whether other has exactly the same entries.
func (b *MapBuilder[K, V]) Equal(other ReadableMap[K, V]) bool {
	return mapsEqual(b.view, other)
}

// Put sets the value for key and returns the previous value, if any.
func (b *MapBuilder[K, V]) Put(key K, value V) (V, error) {
	return b.view.Put(key, value)
}

// Remove fails with ErrUnsupported.
func (b *MapBuilder[K, V]) Remove(key K) error {
	return b.view.Remove(key)
}

// Clear fails with ErrUnsupported.
func (b *MapBuilder[K, V]) Clear() error {
	return b.view.Clear()
}

// PutAll fails with ErrUnsupported.
func (b *MapBuilder[K, V]) PutAll(entries map[K]V) error {
	return b.view.PutAll(entries)
}

func iterMap[K comparable, V any](v mapView[K, V], f func(K, V) error) error {
	it := v.Entries().Iterator()
	for it.HasNext() {
		e, err := it.Next()
		if err != nil {
			return err
		}
		if err = f(e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}

func mapToMap[K comparable, V any](v mapView[K, V]) map[K]V {
	out := make(map[K]V, v.Size())
	_ = iterMap(v, func(k K, val V) error {
		out[k] = val
		return nil
	})
	return out
}

func mapsEqual[K comparable, V any](v mapView[K, V], other ReadableMap[K, V]) bool {
	if other == nil || v.Size() != other.Size() {
		return false
	}
	it := v.Entries().Iterator()
	for it.HasNext() {
		e, err := it.Next()
		if err != nil {
			return false
		}
		ov, ok := other.Get(e.Key)
		if !ok || !reflect.DeepEqual(e.Value, ov) {
			return false
		}
	}
	return true
}
