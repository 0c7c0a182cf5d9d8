package versioned

import "fmt"

// ReadableSequence is the read side of a list.
type ReadableSequence[E any] interface {
	Size() int
	Get(index int) (E, error)
}

// WritableSequence is a list that can be appended to and overwritten in place.
type WritableSequence[E any] interface {
	ReadableSequence[E]
	Add(e E) error
	Set(index int, e E) (E, error)
}

// ReadableMap is the read side of a map.
type ReadableMap[K comparable, V any] interface {
	Size() int
	Get(key K) (V, bool)
	ContainsKey(key K) bool
}

// WritableMap is a map whose entries can be added and overwritten.
type WritableMap[K comparable, V any] interface {
	ReadableMap[K, V]
	Put(key K, value V) (V, error)
}

var (
	_ WritableSequence[int] = &listView[int]{}
	_ WritableMap[int, int] = &mapView[int, int]{}
	_ WritableSequence[int] = &SubList[int]{}
)

// listView is a cursor on one version of a list store. Writes move the
// cursor to the version they create. The zero view is read-only.
type listView[E any] struct {
	store    *listStore[E]
	version  versionID
	writable bool
}

func newListView[E any](store *listStore[E], readonly bool) listView[E] {
	return listView[E]{store: store, version: rootVersion, writable: !readonly}
}

// derive starts a new view at this view's version.
func (v listView[E]) derive(readonly bool) listView[E] {
	return listView[E]{store: v.store, version: v.version, writable: !readonly}
}

func (v listView[E]) Size() int {
	return v.store.sizeAt(v.version)
}

func (v listView[E]) Get(index int) (E, error) {
	return v.store.get(v.version, index)
}

func (v listView[E]) Iterator() *ListIterator[E] {
	return v.store.iterator(v.version)
}

func (v *listView[E]) checkWritable(op string) error {
	if !v.writable || v.store == nil {
		return fmt.Errorf("%s: %w", op, ErrReadOnly)
	}
	return nil
}

func (v *listView[E]) Add(e E) error {
	if err := v.checkWritable("add"); err != nil {
		return err
	}
	v.version = v.store.add(v.version, e)
	return nil
}

// Set overwrites an existing element, returning the one it replaced.
func (v *listView[E]) Set(index int, e E) (E, error) {
	var zero E
	if err := v.checkWritable("set"); err != nil {
		return zero, err
	}
	prev, err := v.store.get(v.version, index)
	if err != nil {
		return zero, fmt.Errorf("set: %w", err)
	}
	nv, err := v.store.set(v.version, index, e)
	if err != nil {
		return zero, fmt.Errorf("set: %w", err)
	}
	v.version = nv
	return prev, nil
}

func (v *listView[E]) Insert(index int, e E) error {
	if err := v.checkWritable("insert"); err != nil {
		return err
	}
	return fmt.Errorf("insert at %d: %w", index, ErrUnsupported)
}

func (v *listView[E]) Remove(index int) (E, error) {
	var zero E
	if err := v.checkWritable("remove"); err != nil {
		return zero, err
	}
	return zero, fmt.Errorf("remove at %d: %w", index, ErrUnsupported)
}

func (v *listView[E]) Clear() error {
	if err := v.checkWritable("clear"); err != nil {
		return err
	}
	return fmt.Errorf("clear: %w", ErrUnsupported)
}

func (v *listView[E]) subList(from, to int) (*SubList[E], error) {
	size := v.Size()
	if from < 0 || to > size {
		return nil, fmt.Errorf("sublist [%d,%d) of %d: %w", from, to, size, ErrOutOfRange)
	}
	if from > to {
		return nil, fmt.Errorf("sublist [%d,%d): %w", from, to, ErrInvalidRange)
	}
	return &SubList[E]{parent: v, from: from, to: to}, nil
}

// SubList is a window onto a range of a list. Reads and overwrites go
// through to the list it came from.
type SubList[E any] struct {
	parent   *listView[E]
	from, to int
}

// Size returns the length of the window.
func (s *SubList[E]) Size() int {
	return s.to - s.from
}

func (s *SubList[E]) check(index int) error {
	if index < 0 || index >= s.Size() {
		return fmt.Errorf("sublist index %d of %d: %w", index, s.Size(), ErrOutOfRange)
	}
	return nil
}

// Get returns the element at index within the window.
func (s *SubList[E]) Get(index int) (E, error) {
	if err := s.check(index); err != nil {
		var zero E
		return zero, err
	}
	return s.parent.Get(s.from + index)
}

// Set overwrites the element at index within the window. On a builder's
// window this advances the builder.
func (s *SubList[E]) Set(index int, e E) (E, error) {
	if err := s.parent.checkWritable("set"); err != nil {
		var zero E
		return zero, err
	}
	if err := s.check(index); err != nil {
		var zero E
		return zero, err
	}
	return s.parent.Set(s.from+index, e)
}

// Add is not supported by sub-lists, since it would insert mid-list.
func (s *SubList[E]) Add(E) error {
	if err := s.parent.checkWritable("add"); err != nil {
		return err
	}
	return fmt.Errorf("sublist add: %w", ErrUnsupported)
}

// mapView is a cursor on one version of a map store. The zero view is
// read-only.
type mapView[K comparable, V any] struct {
	store    *mapStore[K, V]
	version  versionID
	writable bool
}

func newMapView[K comparable, V any](store *mapStore[K, V], readonly bool) mapView[K, V] {
	return mapView[K, V]{store: store, version: rootVersion, writable: !readonly}
}

func (v mapView[K, V]) derive(readonly bool) mapView[K, V] {
	return mapView[K, V]{store: v.store, version: v.version, writable: !readonly}
}

func (v mapView[K, V]) Size() int {
	return v.store.sizeAt(v.version)
}

func (v mapView[K, V]) Get(key K) (V, bool) {
	return v.store.get(v.version, key)
}

func (v mapView[K, V]) ContainsKey(key K) bool {
	return v.store.containsKey(v.version, key)
}

func (v mapView[K, V]) Entries() EntrySet[K, V] {
	return v.store.entries(v.version)
}

func (v *mapView[K, V]) checkWritable(op string) error {
	if !v.writable || v.store == nil {
		return fmt.Errorf("%s: %w", op, ErrReadOnly)
	}
	return nil
}

// Put sets the value for key, returning the previous value, if any.
func (v *mapView[K, V]) Put(key K, value V) (V, error) {
	var zero V
	if err := v.checkWritable("put"); err != nil {
		return zero, err
	}
	prev, _ := v.store.get(v.version, key)
	v.version = v.store.put(v.version, key, value)
	return prev, nil
}

func (v *mapView[K, V]) Remove(key K) error {
	if err := v.checkWritable("remove"); err != nil {
		return err
	}
	return fmt.Errorf("remove %v: %w", key, ErrUnsupported)
}

func (v *mapView[K, V]) Clear() error {
	if err := v.checkWritable("clear"); err != nil {
		return err
	}
	return fmt.Errorf("clear: %w", ErrUnsupported)
}

func (v *mapView[K, V]) PutAll(map[K]V) error {
	if err := v.checkWritable("putAll"); err != nil {
		return err
	}
	return fmt.Errorf("putAll: %w", ErrUnsupported)
}
