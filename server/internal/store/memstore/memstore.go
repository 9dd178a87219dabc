// Package memstore is an in-process DocumentStore used by tests and the memory driver.
package memstore

import (
	"context"
	"sync"
)

type Store struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func New() *Store {
	return &Store{docs: make(map[string][]byte)}
}

func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.docs[name]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), b...), nil
}

func (s *Store) Write(ctx context.Context, name string, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[name] = append([]byte(nil), doc...)
	return nil
}

func (s *Store) Close() error { return nil }
