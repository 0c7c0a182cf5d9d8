package versioned

import "errors"

// Errors returned by collection operations. Wrapped errors carry the
// offending index or operation; test for them with errors.Is.
var (
	// ErrOutOfRange is returned when an index is outside the visible part of
	// a list.
	ErrOutOfRange = errors.New("out of range")

	// ErrInvalidRange is returned when a sub-list's start is after its end.
	ErrInvalidRange = errors.New("invalid range")

	// ErrReadOnly is returned by every mutating operation of an immutable
	// value.
	ErrReadOnly = errors.New("read-only")

	// ErrUnsupported is returned for removal, insertion other than at the
	// end of a list, and bulk map mutation.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrExhausted is returned when an iterator is advanced past its end.
	ErrExhausted = errors.New("no more elements")

	// ErrSnapshotNotFound is returned by the in-memory Persist for a name
	// it never stored.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
