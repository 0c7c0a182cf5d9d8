// Package splitter defines how a content splitter consumes units: a forward
// only DataSource that may not know its total size, whose iterators can hand
// back a DataSource for whatever they have not consumed yet.
package splitter

import (
	"errors"
	"fmt"

	"github.com/jrhy/versioned"
)

// ErrNoSuchElement is returned by Iterator.Next when no units are left.
var ErrNoSuchElement = versioned.ErrExhausted

// Option configures how a split is performed. It is a marker; options are
// interpreted by splitter implementations.
type Option interface{}

// Supplements holds auxiliary units that belong with a data source, looked
// up by id. They are opaque to the data source.
type Supplements[T any] interface {
	Get(id string) (T, bool)
}

// DataSource provides split point units. The units are immutable. A data
// source may not know how many units it has, so callers should avoid asking
// for more than they need.
type DataSource[T any] interface {
	// Supplements returns the data source's supplements.
	Supplements() Supplements[T]
	// IsEmpty reports whether the data source has no more units. It can
	// be true while Supplements is not empty.
	IsEmpty() bool
	// Iterator returns an iterator starting at the first unit.
	Iterator() Iterator[T]
}

// Iterator reads units from a DataSource.
type Iterator[T any] interface {
	// HasNext reports whether the data source has more units.
	HasNext() bool
	// Next returns the next unit. last signals that the unit will be the
	// last one before a break; data sources may use it to produce a
	// different unit. It returns ErrNoSuchElement if no units are left.
	Next(last bool) (T, error)
	// Iterable returns a data source of the same kind as the one that
	// supplied this iterator, holding the units not yet returned. It does
	// not change the iterator.
	Iterable() DataSource[T]
}

// Result is the outcome of a split: the units before the split point, and a
// data source with the rest.
type Result[T any] interface {
	Head() []T
	Tail() DataSource[T]
}

// DefaultResult is a plain Result.
type DefaultResult[T any] struct {
	head []T
	tail DataSource[T]
}

// NewResult creates a result from a head and a tail.
func NewResult[T any](head []T, tail DataSource[T]) DefaultResult[T] {
	return DefaultResult[T]{head, tail}
}

func (r DefaultResult[T]) Head() []T {
	return r.head
}

func (r DefaultResult[T]) Tail() DataSource[T] {
	return r.tail
}

// SplitAt takes the first n units of source, marking the n-th as the last
// before a break. It returns fewer than n units only if source runs out.
func SplitAt[T any](source DataSource[T], n int) (Result[T], error) {
	if n < 0 {
		return nil, fmt.Errorf("split at %d: %w", n, versioned.ErrOutOfRange)
	}
	it := source.Iterator()
	head := make([]T, 0, n)
	for len(head) < n && it.HasNext() {
		u, err := it.Next(len(head) == n-1)
		if errors.Is(err, ErrNoSuchElement) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("next: %w", err)
		}
		head = append(head, u)
	}
	return NewResult(head, it.Iterable()), nil
}
