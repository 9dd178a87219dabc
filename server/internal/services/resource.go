package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/model"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/store"
)

// Resource describes how one record type is named, stored and validated.
type Resource[T model.Record] struct {
	// Name is the singular display name used in messages, e.g. "Policy".
	Name string
	// Collection is the storage document name, e.g. "policies".
	Collection string
	// Prefix starts every generated id, e.g. "POL".
	Prefix string
	// Defaults assigns server-managed fields on create. Optional.
	Defaults func(rec T, now time.Time)
	// Validate rejects records that do not satisfy the resource rules.
	Validate func(rec T) error
	// NoUpdatedAt records never carry an updatedAt timestamp.
	NoUpdatedAt bool
}

// ResourceService implements list/get/create/update/delete over one collection.
type ResourceService[T model.Record] struct {
	res   Resource[T]
	coll  *store.Collection[T]
	audit *AuditService
	now   func() time.Time
}

// NewResourceService binds res to its collection in docs. audit may be nil.
func NewResourceService[T model.Record](docs *store.Documents, res Resource[T], audit *AuditService) *ResourceService[T] {
	return &ResourceService[T]{
		res:   res,
		coll:  store.CollectionOf[T](docs, res.Collection),
		audit: audit,
		now:   time.Now,
	}
}

// Name returns the singular display name of the resource.
func (s *ResourceService[T]) Name() string { return s.res.Name }

// Collection returns the storage name of the resource.
func (s *ResourceService[T]) Collection() string { return s.res.Collection }

func (s *ResourceService[T]) notFound(id string) error {
	return fmt.Errorf("%w: %s not found", model.ErrNotFound, s.res.Name)
}

func (s *ResourceService[T]) validate(rec T) error {
	if s.res.Validate == nil {
		return nil
	}
	if err := s.res.Validate(rec); err != nil {
		return fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	return nil
}

// List returns every record in storage order.
func (s *ResourceService[T]) List(ctx context.Context) ([]T, error) {
	return s.coll.Load(ctx)
}

// Filter returns the records for which keep returns true.
func (s *ResourceService[T]) Filter(ctx context.Context, keep func(T) bool) ([]T, error) {
	items, err := s.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

// Get returns the record with the given id or model.ErrNotFound.
func (s *ResourceService[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := s.coll.Load(ctx)
	if err != nil {
		return zero, err
	}
	if i := indexOf(items, id); i >= 0 {
		return items[i], nil
	}
	return zero, s.notFound(id)
}

// Create decodes fields into a new record and inserts it.
func (s *ResourceService[T]) Create(ctx context.Context, fields map[string]any) (T, error) {
	var zero T
	if fields == nil {
		return zero, fmt.Errorf("%w: request body must be a JSON object", model.ErrValidation)
	}
	rec, err := mergePatch(zero, fields)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	return s.Insert(ctx, rec)
}

// Insert applies defaults, validates and appends rec with a fresh id and timestamps.
func (s *ResourceService[T]) Insert(ctx context.Context, rec T) (T, error) {
	return s.InsertWith(ctx, func([]T) (T, error) { return rec, nil })
}

// InsertWith builds the new record from the current collection while holding
// its lock, for records whose fields depend on existing ones.
func (s *ResourceService[T]) InsertWith(ctx context.Context, build func(existing []T) (T, error)) (T, error) {
	var out T
	now := s.now()
	err := s.coll.Update(ctx, func(items []T) ([]T, error) {
		rec, err := build(items)
		if err != nil {
			return nil, err
		}
		if s.res.Defaults != nil {
			s.res.Defaults(rec, now)
		}
		if err := s.validate(rec); err != nil {
			return nil, err
		}
		meta := rec.Base()
		meta.ID = model.NewID(s.res.Prefix, now)
		meta.CreatedAt = model.Timestamp(now)
		meta.UpdatedAt = ""
		if !s.res.NoUpdatedAt {
			meta.UpdatedAt = meta.CreatedAt
		}
		out = rec
		return append(items, rec), nil
	})
	if err != nil {
		return out, err
	}
	s.audit.Record(ctx, s.res.Name, out.Base().ID, ActionCreate, nil)
	return out, nil
}

// Update merges patch onto the stored record and validates the result.
// id, createdAt and updatedAt in patch are ignored.
func (s *ResourceService[T]) Update(ctx context.Context, id string, patch map[string]any) (T, error) {
	var out T
	err := s.coll.Update(ctx, func(items []T) ([]T, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, s.notFound(id)
		}
		merged, err := mergePatch(items[i], patch)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrValidation, err)
		}
		if err := s.validate(merged); err != nil {
			return nil, err
		}
		prev := items[i].Base()
		meta := merged.Base()
		meta.ID = prev.ID
		meta.CreatedAt = prev.CreatedAt
		if !s.res.NoUpdatedAt {
			meta.UpdatedAt = model.Timestamp(s.now())
		}
		items[i] = merged
		out = merged
		return items, nil
	})
	if err != nil {
		return out, err
	}
	s.audit.Record(ctx, s.res.Name, id, ActionUpdate, patch)
	return out, nil
}

// Modify applies fn to the stored record in place and persists it, recording action in the audit trail.
// fn may return an error to abort without writing.
func (s *ResourceService[T]) Modify(ctx context.Context, id, action string, fn func(rec T, now time.Time) error) (T, error) {
	var out T
	now := s.now()
	err := s.coll.Update(ctx, func(items []T) ([]T, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, s.notFound(id)
		}
		if err := fn(items[i], now); err != nil {
			return nil, err
		}
		if !s.res.NoUpdatedAt {
			items[i].Base().UpdatedAt = model.Timestamp(now)
		}
		out = items[i]
		return items, nil
	})
	if err != nil {
		return out, err
	}
	s.audit.Record(ctx, s.res.Name, id, action, nil)
	return out, nil
}

// Delete removes the record with the given id.
func (s *ResourceService[T]) Delete(ctx context.Context, id string) error {
	err := s.coll.Update(ctx, func(items []T) ([]T, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, s.notFound(id)
		}
		return append(items[:i], items[i+1:]...), nil
	})
	if err != nil {
		return err
	}
	s.audit.Record(ctx, s.res.Name, id, ActionDelete, nil)
	return nil
}

func indexOf[T model.Record](items []T, id string) int {
	for i, it := range items {
		if it.Base().ID == id {
			return i
		}
	}
	return -1
}

var protectedFields = map[string]bool{"id": true, "createdAt": true, "updatedAt": true}

// mergePatch overlays patch onto cur at the JSON field level. A nil cur
// yields a freshly allocated record holding only the patch fields.
func mergePatch[T any](cur T, patch map[string]any) (T, error) {
	var out T
	raw, err := json.Marshal(cur)
	if err != nil {
		return out, err
	}
	fields := map[string]any{}
	if string(raw) != "null" {
		if err := json.Unmarshal(raw, &fields); err != nil {
			return out, err
		}
	}
	for k, v := range patch {
		if protectedFields[k] {
			continue
		}
		fields[k] = v
	}
	raw, err = json.Marshal(fields)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}
