package storetest

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/store"
)

// Run exercises a minimal compliance suite against a store.DocumentStore implementation.
// Implementations should provide a clean, isolated store and return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.DocumentStore) {
	t.Helper()

	s := makeStore(t)
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	// Unique document name so shared backends do not collide between runs
	name := "storetest-" + uuid.New().String()

	got, err := s.Read(ctx, name)
	if err != nil {
		t.Fatalf("Read missing: %v", err)
	}
	if got != nil {
		t.Fatalf("Read missing: expected nil document, got %q", got)
	}

	first := []byte(`[{"id":"A-1","value":1}]`)
	if err := s.Write(ctx, name, first); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err = s.Read(ctx, name)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	assertSameJSON(t, first, got)

	second := []byte(`[{"id":"A-1","value":2},{"id":"A-2","value":3}]`)
	if err := s.Write(ctx, name, second); err != nil {
		t.Fatalf("Overwrite: %v", err)
	}
	got, err = s.Read(ctx, name)
	if err != nil {
		t.Fatalf("Read after overwrite: %v", err)
	}
	assertSameJSON(t, second, got)

	// Collections are independent documents
	other := name + "-other"
	if got, err := s.Read(ctx, other); err != nil || got != nil {
		t.Fatalf("Read other: got=%q err=%v", got, err)
	}

	// Typed round trip through Collection
	type rec struct {
		ID string `json:"id"`
	}
	c := store.CollectionOf[rec](store.NewDocuments(s), other)
	if err := c.Update(ctx, func(items []rec) ([]rec, error) {
		return append(items, rec{ID: "B-1"}), nil
	}); err != nil {
		t.Fatalf("Collection.Update: %v", err)
	}
	items, err := c.Load(ctx)
	if err != nil || len(items) != 1 || items[0].ID != "B-1" {
		t.Fatalf("Collection.Load: items=%v err=%v", items, err)
	}
}
