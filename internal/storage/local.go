// Package storage writes uploaded files to a local uploads directory. Stored
// names carry a generated uuid prefix so concurrent uploads of identically
// named files can never clobber each other.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Dir() string { return l.dir }

// Save streams r into the uploads directory under a uuid-prefixed name and
// returns the stored name, its path, and the byte count written.
func (l *Local) Save(originalName string, r io.Reader) (storedName, path string, size int64, err error) {
	storedName = uuid.NewString() + "_" + filepath.Base(originalName)
	path = filepath.Join(l.dir, storedName)
	f, err := os.Create(path)
	if err != nil {
		return "", "", 0, fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	size, err = io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return "", "", 0, fmt.Errorf("write file: %w", err)
	}
	return storedName, path, size, nil
}

// Remove deletes a stored file; missing files are not an error.
func (l *Local) Remove(storedName string) error {
	err := os.Remove(filepath.Join(l.dir, filepath.Base(storedName)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
