package versioned

import (
	"context"
	"encoding/json"
	"fmt"
)

var defaultUnmarshal = json.Unmarshal

// Persist is the interface for loading and storing encoded snapshots. The
// given string identity corresponds to the content, which is never modified.
type Persist interface {
	// Store makes the given bytes accessible by the given name.
	Store(context.Context, string, []byte) error
	// Load retrieves the previously-stored bytes by the given name.
	Load(context.Context, string) ([]byte, error)
}

// RemoteConfig controls how snapshots are encoded and where they are kept.
type RemoteConfig struct {
	// StoreImmutablePartsWith is used to store and load encoded snapshots.
	StoreImmutablePartsWith Persist

	// Marshal function, defaults to JSON
	Marshal func(interface{}) ([]byte, error)

	// Unmarshal function, defaults to JSON
	Unmarshal func([]byte, interface{}) error

	// Options configures the store of loaded collections.
	Options *Options
}

func (c *RemoteConfig) persist() (Persist, error) {
	if c == nil || c.StoreImmutablePartsWith == nil {
		return nil, fmt.Errorf("no persistence mechanism set; set RemoteConfig.StoreImmutablePartsWith")
	}
	return c.StoreImmutablePartsWith, nil
}

func (c *RemoteConfig) marshal() func(interface{}) ([]byte, error) {
	if c.Marshal == nil {
		return defaultMarshal
	}
	return c.Marshal
}

func (c *RemoteConfig) unmarshal() func([]byte, interface{}) error {
	if c.Unmarshal == nil {
		return defaultUnmarshal
	}
	return c.Unmarshal
}

// Root identifies a saved snapshot of a collection. Only the visible content
// is saved, not the history that led to it.
type Root struct {
	Link string
	Size int
}

// SaveList stores the contents of l and returns the root to load it by.
func SaveList[E any](ctx context.Context, l List[E], config *RemoteConfig) (*Root, error) {
	p, err := config.persist()
	if err != nil {
		return nil, err
	}
	encoded, err := encodeList(l.ToSlice(), config.marshal())
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return store(ctx, p, encoded, l.Size())
}

// SaveMap stores the contents of m and returns the root to load it by.
func SaveMap[K comparable, V any](ctx context.Context, m Map[K, V], config *RemoteConfig) (*Root, error) {
	p, err := config.persist()
	if err != nil {
		return nil, err
	}
	encoded, err := encodeMap(mapEntries(m.view), config.marshal())
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return store(ctx, p, encoded, m.Size())
}

func store(ctx context.Context, p Persist, encoded []byte, size int) (*Root, error) {
	name := contentName(encoded)
	if err := p.Store(ctx, name, encoded); err != nil {
		return nil, fmt.Errorf("persist store: %w", err)
	}
	return &Root{Link: name, Size: size}, nil
}

// load retrieves a snapshot and verifies it against its name.
func (r *Root) load(ctx context.Context, p Persist) ([]byte, error) {
	encoded, err := p.Load(ctx, r.Link)
	if err != nil {
		return nil, fmt.Errorf("persist load %s: %w", r.Link, err)
	}
	if name := contentName(encoded); name != r.Link {
		return nil, fmt.Errorf("snapshot %s: content hashes to %s", r.Link, name)
	}
	return encoded, nil
}

// LoadList loads a list saved with SaveList into a new store.
func LoadList[E any](ctx context.Context, root *Root, config *RemoteConfig) (List[E], error) {
	p, err := config.persist()
	if err != nil {
		return List[E]{}, err
	}
	encoded, err := root.load(ctx, p)
	if err != nil {
		return List[E]{}, err
	}
	elems, err := decodeList[E](encoded, config.unmarshal())
	if err != nil {
		return List[E]{}, fmt.Errorf("decode %s: %w", root.Link, err)
	}
	if len(elems) != root.Size {
		return List[E]{}, fmt.Errorf("snapshot %s: has %d elements, root says %d", root.Link, len(elems), root.Size)
	}
	b := NewList[E](config.Options).Builder()
	for _, e := range elems {
		if err := b.Add(e); err != nil {
			return List[E]{}, err
		}
	}
	return b.Build(), nil
}

// LoadMap loads a map saved with SaveMap into a new store.
func LoadMap[K comparable, V any](ctx context.Context, root *Root, config *RemoteConfig) (Map[K, V], error) {
	p, err := config.persist()
	if err != nil {
		return Map[K, V]{}, err
	}
	encoded, err := root.load(ctx, p)
	if err != nil {
		return Map[K, V]{}, err
	}
	entries, err := decodeMap[K, V](encoded, config.unmarshal())
	if err != nil {
		return Map[K, V]{}, fmt.Errorf("decode %s: %w", root.Link, err)
	}
	b := NewMap[K, V](config.Options).Builder()
	for _, e := range entries {
		if _, err := b.Put(e.Key, e.Value); err != nil {
			return Map[K, V]{}, err
		}
	}
	if b.Size() != root.Size {
		return Map[K, V]{}, fmt.Errorf("snapshot %s: has %d entries, root says %d", root.Link, b.Size(), root.Size)
	}
	return b.Build(), nil
}
