/*
Package versioned provides persistent lists and maps: collections whose
past versions stay valid and readable after new versions are derived from
them, without copying.

Uses

- Exploring many candidate edits of a shared base collection, keeping only
the branches that turn out to be interesting

- Cheap snapshots of a collection that is still being built

- Handing out collections that callers cannot modify

Values and builders

A List or Map is an immutable value. Its Builder method returns a
ListBuilder or MapBuilder over the same underlying store, starting at the
same version; mutating the builder creates new versions without touching
the value it came from. Build freezes the builder's current version into a
new value, and the builder stays usable afterward.

	v1 := versioned.Add(versioned.EmptyList[string](), "a")
	b := v1.Builder()
	b.Add("b")
	b.Add("c")
	v2 := b.Build()
	// v1 still has one element, v2 has three.

For a single change, the package-level Add and Put derive a new value
directly.

Values compare structurally with Equal and hash structurally with Digest:
two values with the same contents are equal no matter how they were
derived.

How it works

All versions derived from one empty collection share a store. The store
keeps an append-only chain of versions, each knowing only its parent, and a
change log per list index or map key recording the value written at each
version. Reading a slot at some version walks from that version toward the
root and returns the value recorded at the nearest version that wrote the
slot. A size table is kept the same way. Reads are therefore linear in the
depth of the version chain; an optional LookupCache remembers walks.

Lists only support appending and overwriting existing elements; maps do
not support removal. Such operations fail with ErrUnsupported, and every
mutating method of an immutable value fails with ErrReadOnly.

Concurrency

There is no internal locking. Every value and builder derived from one
empty collection shares its store, and mutating any of them writes to that
store, so a store should be confined to one goroutine or guarded by the
caller. Values may be read from many goroutines while nothing mutates the
store.

Persistence

SaveList and SaveMap write the visible contents of a value to a Persist,
named by their content hash, and LoadList and LoadMap read them back into a
fresh store. Stores for files and S3 are in the persist directory.
*/
package versioned
