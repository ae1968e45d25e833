package store

import (
	"context"
	"encoding/json"
	"fmt"

	"fittrack/internal/domain"
)

// Entity is satisfied by pointers to records embedding domain.Meta.
type Entity[T any] interface {
	*T
	Base() *domain.Meta
}

// Collection is a named array of identity-bearing records stored under a
// single key.
type Collection[T any, P Entity[T]] struct {
	store *Store
	key   string
}

// NewCollection binds a collection to key inside s.
func NewCollection[T any, P Entity[T]](s *Store, key string) *Collection[T, P] {
	return &Collection[T, P]{store: s, key: key}
}

// Key returns the unprefixed key of the collection.
func (c *Collection[T, P]) Key() string { return c.key }

// List returns every record, or an empty slice if the collection is absent.
func (c *Collection[T, P]) List(ctx context.Context) []T {
	var items []T
	if !c.store.Get(ctx, c.key, &items) || items == nil {
		return []T{}
	}
	return items
}

// Filter returns the records matching keep, in stored order.
func (c *Collection[T, P]) Filter(ctx context.Context, keep func(T) bool) []T {
	items := c.List(ctx)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Find returns the record with id.
func (c *Collection[T, P]) Find(ctx context.Context, id string) (T, bool) {
	for _, it := range c.List(ctx) {
		if P(&it).Base().ID == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Add assigns a fresh id and both timestamps, appends item and persists the
// collection. The stamped record is returned even when the write fails.
func (c *Collection[T, P]) Add(ctx context.Context, item T) (T, error) {
	items := c.List(ctx)
	now := c.store.now().UTC()
	m := P(&item).Base()
	m.ID = c.store.newID()
	m.CreatedAt = now
	m.UpdatedAt = now
	items = append(items, item)
	return item, c.save(ctx, items)
}

// Update applies fn to the record with id, refreshes updatedAt and persists.
// The id and createdAt of the record cannot be changed by fn. It reports
// false when no record has that id.
func (c *Collection[T, P]) Update(ctx context.Context, id string, fn func(*T)) (T, bool, error) {
	items := c.List(ctx)
	for i := range items {
		m := P(&items[i]).Base()
		if m.ID != id {
			continue
		}
		created := m.CreatedAt
		fn(&items[i])
		m = P(&items[i]).Base()
		m.ID = id
		m.CreatedAt = created
		m.UpdatedAt = c.store.now().UTC()
		return items[i], true, c.save(ctx, items)
	}
	var zero T
	return zero, false, nil
}

// Delete removes the record with id. It reports false when absent.
func (c *Collection[T, P]) Delete(ctx context.Context, id string) (bool, error) {
	items := c.List(ctx)
	for i := range items {
		if P(&items[i]).Base().ID == id {
			items = append(items[:i], items[i+1:]...)
			return true, c.save(ctx, items)
		}
	}
	return false, nil
}

func (c *Collection[T, P]) save(ctx context.Context, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return c.store.dropped(c.key, fmt.Errorf("encode: %w", err))
	}
	return c.store.writeValue(ctx, c.store.physical(c.key), data, false)
}
