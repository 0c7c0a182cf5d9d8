package splitter

import (
	"fmt"

	"github.com/jrhy/versioned"
)

// ListSource is a DataSource over a persistent list. Sources made from its
// iterators share the list rather than copying what remains.
type ListSource[T any] struct {
	units       versioned.List[T]
	offset      int
	supplements Supplements[T]
}

var _ DataSource[int] = &ListSource[int]{}

// NewListSource returns a data source over units. supplements may be nil.
func NewListSource[T any](units versioned.List[T], supplements Supplements[T]) *ListSource[T] {
	if supplements == nil {
		supplements = MapSupplements[T]{}
	}
	return &ListSource[T]{units: units, supplements: supplements}
}

func (s *ListSource[T]) Supplements() Supplements[T] {
	return s.supplements
}

func (s *ListSource[T]) IsEmpty() bool {
	return s.offset >= s.units.Size()
}

// Remaining returns the number of units not yet consumed.
func (s *ListSource[T]) Remaining() int {
	return s.units.Size() - s.offset
}

func (s *ListSource[T]) Iterator() Iterator[T] {
	return &listSourceIterator[T]{source: s, next: s.offset}
}

type listSourceIterator[T any] struct {
	source *ListSource[T]
	next   int
}

func (it *listSourceIterator[T]) HasNext() bool {
	return it.next < it.source.units.Size()
}

func (it *listSourceIterator[T]) Next(last bool) (T, error) {
	if !it.HasNext() {
		var zero T
		return zero, fmt.Errorf("unit %d: %w", it.next, ErrNoSuchElement)
	}
	u, err := it.source.units.Get(it.next)
	if err != nil {
		var zero T
		return zero, err
	}
	it.next++
	return u, nil
}

func (it *listSourceIterator[T]) Iterable() DataSource[T] {
	return &ListSource[T]{
		units:       it.source.units,
		offset:      it.next,
		supplements: it.source.supplements,
	}
}

// MapSupplements are supplements held in a persistent map, keyed by id.
type MapSupplements[T any] struct {
	versioned.Map[string, T]
}

var _ Supplements[int] = MapSupplements[int]{}
