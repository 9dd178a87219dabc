// Package filestore keeps each collection in <dir>/<name>.json on local disk.
package filestore

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Store is a DocumentStore backed by a directory of JSON files.
type Store struct {
	dir string
}

// New returns a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("filestore: data directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create data dir %s", dir)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Read returns the raw document or nil when the file does not exist.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}

// Write replaces the document atomically via a temp file and rename.
func (s *Store) Write(ctx context.Context, name string, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(doc); err != nil {
		_ = tmp.Close()
		return errors.WithStack(err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.Rename(tmp.Name(), s.path(name)))
}

// HealthPing verifies the data directory is still present.
func (s *Store) HealthPing(ctx context.Context) error {
	fi, err := os.Stat(s.dir)
	if err != nil {
		return errors.WithStack(err)
	}
	if !fi.IsDir() {
		return errors.Errorf("%s is not a directory", s.dir)
	}
	return nil
}

func (s *Store) Close() error { return nil }
