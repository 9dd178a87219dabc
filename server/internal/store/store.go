package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
)

// DocumentStore persists whole named collections as serialized JSON documents.
// Implementations live under internal/store/<driver>/ (filestore, redisstore, sqlite, postgres, memstore).
//
// Read returns (nil, nil) when the named document has never been written.
type DocumentStore interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, doc []byte) error
	Close() error
}

// Documents wraps a DocumentStore with one mutex per collection name so the
// read-modify-write cycle of a collection is serialized within the process.
type Documents struct {
	backend DocumentStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewDocuments wraps backend.
func NewDocuments(backend DocumentStore) *Documents {
	return &Documents{backend: backend, locks: make(map[string]*sync.Mutex)}
}

// Backend returns the wrapped DocumentStore.
func (d *Documents) Backend() DocumentStore { return d.backend }

func (d *Documents) lock(name string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.locks[name]
	if !ok {
		l = &sync.Mutex{}
		d.locks[name] = l
	}
	return l
}

// Collection is a typed view over one named document holding a JSON array of T.
type Collection[T any] struct {
	name string
	docs *Documents
}

// CollectionOf returns the typed collection stored under name.
func CollectionOf[T any](docs *Documents, name string) *Collection[T] {
	return &Collection[T]{name: name, docs: docs}
}

// Name returns the storage name of the collection.
func (c *Collection[T]) Name() string { return c.name }

// Load reads the full collection. A collection that was never written is empty.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, err := c.docs.backend.Read(ctx, c.name)
	if err != nil {
		return nil, errors.Wrapf(err, "read collection %s", c.name)
	}
	items := []T{}
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.Wrapf(err, "decode collection %s", c.name)
	}
	return items, nil
}

// Save replaces the full collection.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encode collection %s", c.name)
	}
	if err := c.docs.backend.Write(ctx, c.name, raw); err != nil {
		return errors.Wrapf(err, "write collection %s", c.name)
	}
	return nil
}

// Update loads the collection, applies fn and saves the result while holding
// the collection lock. If fn returns an error nothing is written.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	l := c.docs.lock(c.name)
	l.Lock()
	defer l.Unlock()

	items, err := c.Load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return c.Save(ctx, next)
}
