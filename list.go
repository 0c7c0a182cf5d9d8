package versioned

import (
	"fmt"
	"reflect"
)

// List is an immutable list. Lists derived from each other, through a
// ListBuilder or Add, share one persistent store, so deriving a list does
// not copy the elements of the list it came from.
//
// Every mutating method of List fails with ErrReadOnly. The zero List is
// empty.
type List[E any] struct {
	view listView[E]
}

// EmptyList returns an empty list over a fresh store with default options.
func EmptyList[E any]() List[E] {
	return NewList[E](nil)
}

// NewList returns an empty list over a fresh store configured by opts, which
// may be nil.
func NewList[E any](opts *Options) List[E] {
	return List[E]{view: newListView(newListStore[E](opts), true)}
}

// ListOf returns a new list holding the given elements.
func ListOf[E any](elems ...E) List[E] {
	b := EmptyList[E]().Builder()
	for _, e := range elems {
		if err := b.Add(e); err != nil {
			panic(fmt.Sprintf("bug! builder add: %v", err))
		}
	}
	return b.Build()
}

// Add returns a new list with e appended to l. l is unchanged.
func Add[E any](l List[E], e E) List[E] {
	v := l.writableView()
	if err := v.Add(e); err != nil {
		panic(fmt.Sprintf("bug! transient add: %v", err))
	}
	v.writable = false
	return List[E]{view: v}
}

func (l List[E]) writableView() listView[E] {
	if l.view.store == nil {
		return newListView(newListStore[E](nil), false)
	}
	return l.view.derive(false)
}

// Builder returns a mutable list starting with the contents of l. Mutating
// the builder never affects l.
func (l List[E]) Builder() *ListBuilder[E] {
	return &ListBuilder[E]{view: l.writableView()}
}

// Size returns the number of elements.
func (l List[E]) Size() int {
	return l.view.Size()
}

// IsEmpty reports whether the list has no elements.
func (l List[E]) IsEmpty() bool {
	return l.view.Size() == 0
}

// Get returns the element at index, or ErrOutOfRange.
func (l List[E]) Get(index int) (E, error) {
	return l.view.Get(index)
}

// Iterator returns a cursor over the elements.
func (l List[E]) Iterator() *ListIterator[E] {
	return l.view.Iterator()
}

// Iter invokes f for every element in order, stopping at the first error.
func (l List[E]) Iter(f func(int, E) error) error {
	return iterList(l.view, f)
}

// ToSlice copies the elements into a new slice.
func (l List[E]) ToSlice() []E {
	return listToSlice(l.view)
}

// SubList returns a read-only window onto [from, to).
func (l List[E]) SubList(from, to int) (*SubList[E], error) {
	v := l.view
	return v.subList(from, to)
}

// Equal reports whether other holds equal elements in the same order.
// Elements are compared with reflect.DeepEqual.
func (l List[E]) Equal(other ReadableSequence[E]) bool {
	return sequencesEqual[E](l, other)
}

// Digest returns a content hash of the elements, in order. Lists with equal
// elements have equal digests, regardless of their histories.
func (l List[E]) Digest() ([32]byte, error) {
	return listDigest(l.view)
}

func (l List[E]) String() string {
	return fmt.Sprintf("%v", l.ToSlice())
}

// Add fails with ErrReadOnly; use the package-level Add or a Builder.
func (l *List[E]) Add(e E) error {
	return l.view.Add(e)
}

// Set fails with ErrReadOnly.
func (l *List[E]) Set(index int, e E) (E, error) {
	return l.view.Set(index, e)
}

// Insert fails with ErrReadOnly.
func (l *List[E]) Insert(index int, e E) error {
	return l.view.Insert(index, e)
}

// Remove fails with ErrReadOnly.
func (l *List[E]) Remove(index int) (E, error) {
	return l.view.Remove(index)
}

// Clear fails with ErrReadOnly.
func (l *List[E]) Clear() error {
	return l.view.Clear()
}

// ListBuilder is a mutable list. It only supports appending and overwriting
// elements in place. Builders are only made from a List, and building never
// invalidates the builder. Mutating a zero ListBuilder fails with
// ErrReadOnly.
type ListBuilder[E any] struct {
	view listView[E]
}

// Build returns an immutable list with the builder's current contents.
func (b *ListBuilder[E]) Build() List[E] {
	return List[E]{view: b.view.derive(true)}
}

// Size returns the number of elements.
func (b *ListBuilder[E]) Size() int {
	return b.view.Size()
}

// IsEmpty reports whether the builder has no elements.
func (b *ListBuilder[E]) IsEmpty() bool {
	return b.view.Size() == 0
}

// Get returns the element at index, or ErrOutOfRange.
func (b *ListBuilder[E]) Get(index int) (E, error) {
	return b.view.Get(index)
}

// Iterator returns a cursor over the current elements. Later mutations of
// the builder are not seen by it.
func (b *ListBuilder[E]) Iterator() *ListIterator[E] {
	return b.view.Iterator()
}

// Iter invokes f for every element in order, stopping at the first error.
func (b *ListBuilder[E]) Iter(f func(int, E) error) error {
	return iterList(b.view, f)
}

// ToSlice copies the elements into a new slice.
func (b *ListBuilder[E]) ToSlice() []E {
	return listToSlice(b.view)
}

// SubList returns a window onto [from, to) whose Set writes through to the
// builder.
func (b *ListBuilder[E]) SubList(from, to int) (*SubList[E], error) {
	return b.view.subList(from, to)
}

// Equal reports whether other holds equal elements in the same order.
func (b *ListBuilder[E]) Equal(other ReadableSequence[E]) bool {
	return sequencesEqual[E](b, other)
}

// Add appends e.
func (b *ListBuilder[E]) Add(e E) error {
	return b.view.Add(e)
}

// Set overwrites the element at index, which must already exist, and returns
// the element it replaced.
func (b *ListBuilder[E]) Set(index int, e E) (E, error) {
	return b.view.Set(index, e)
}

// Insert fails with ErrUnsupported.
func (b *ListBuilder[E]) Insert(index int, e E) error {
	return b.view.Insert(index, e)
}

// Remove fails with ErrUnsupported.
func (b *ListBuilder[E]) Remove(index int) (E, error) {
	return b.view.Remove(index)
}

// Clear fails with ErrUnsupported.
func (b *ListBuilder[E]) Clear() error {
	return b.view.Clear()
}

func iterList[E any](v listView[E], f func(int, E) error) error {
	it := v.Iterator()
	for it.HasNext() {
		i := it.NextIndex()
		e, err := it.Next()
		if err != nil {
			return err
		}
		if err = f(i, e); err != nil {
			return err
		}
	}
	return nil
}

func listToSlice[E any](v listView[E]) []E {
	out := make([]E, 0, v.Size())
	_ = iterList(v, func(_ int, e E) error {
		out = append(out, e)
		return nil
	})
	return out
}

func sequencesEqual[E any](a, b ReadableSequence[E]) bool {
	if b == nil {
		return false
	}
	n := a.Size()
	if n != b.Size() {
		return false
	}
	for i := 0; i < n; i++ {
		ea, err := a.Get(i)
		if err != nil {
			return false
		}
		eb, err := b.Get(i)
		if err != nil {
			return false
		}
		if !reflect.DeepEqual(ea, eb) {
			return false
		}
	}
	return true
}
