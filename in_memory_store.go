package versioned

import (
	"context"
	"fmt"
	"sync"
)

// snapshotMap holds encoded snapshots by name. It owns its bytes: both
// Store and Load copy, so a caller reusing a buffer cannot change a saved
// snapshot.
type snapshotMap struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewInMemoryStore provides a Persist that keeps encoded snapshots in memory,
// usually for testing. Loading an unknown name fails with
// ErrSnapshotNotFound.
func NewInMemoryStore() Persist {
	return &snapshotMap{snapshots: map[string][]byte{}}
}

func (s *snapshotMap) Store(ctx context.Context, name string, encoded []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.snapshots[name] = append([]byte(nil), encoded...)
	s.mu.Unlock()
	return nil
}

func (s *snapshotMap) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	encoded, ok := s.snapshots[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("snapshot %s: %w", name, ErrSnapshotNotFound)
	}
	return append([]byte(nil), encoded...), nil
}
