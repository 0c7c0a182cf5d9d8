// Package file stores encoded collection snapshots as files.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Persist implements the versioned.Persist interface for storing and loading
// snapshots from files.
type Persist struct {
	basepath string
}

// Load loads the bytes persisted in the named file.
func (p Persist) Load(ctx context.Context, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(p.basepath, name))
}

// Store persists the given bytes in a file of the given name, if it
// doesn't exist already. Names are content hashes, so an existing file
// already holds the same bytes.
func (p Persist) Store(ctx context.Context, name string, bytes []byte) error {
	path := filepath.Join(p.basepath, name)
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		tmp := path + ".tmp"
		if err := os.WriteFile(tmp, bytes, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", tmp, err)
		}
		return os.Rename(tmp, path)
	}
	return err
}

// NewPersistForPath returns a Persist that loads and stores snapshots as
// files in the directory at the given path.
//
//	p := NewPersistForPath("/var/db/drafts")
//	root, err := versioned.SaveList(ctx, l, &versioned.RemoteConfig{StoreImmutablePartsWith: p})
func NewPersistForPath(path string) Persist {
	return Persist{path}
}
