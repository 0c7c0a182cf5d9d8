package versioned

// changeLog records, for one slot (a list index, a map key, or a container's
// size), the value introduced at each version that wrote the slot.
type changeLog[T any] struct {
	entries map[versionID]T
	// first is the lowest version with an entry. Writes always create a new
	// version, so this is the first version ever recorded.
	first versionID
}

func newChangeLog[T any]() *changeLog[T] {
	return &changeLog[T]{entries: map[versionID]T{}}
}

func (l *changeLog[T]) isEmpty() bool {
	return len(l.entries) == 0
}

func (l *changeLog[T]) record(v versionID, value T) {
	if _, exists := l.entries[v]; exists {
		panic("bug! version already has an entry for this slot")
	}
	if len(l.entries) == 0 || v < l.first {
		l.first = v
	}
	l.entries[v] = value
}

// lookup walks from v toward the root and returns the value recorded at the
// nearest version that has one. Ancestors older than the first entry cannot
// have one, so the walk stops there.
func (l *changeLog[T]) lookup(chain *versionChain, v versionID) (T, bool) {
	var zero T
	if l == nil || len(l.entries) == 0 {
		return zero, false
	}
	for v != rootVersion && v >= l.first {
		if value, ok := l.entries[v]; ok {
			return value, true
		}
		v = chain.parent(v)
	}
	return zero, false
}
