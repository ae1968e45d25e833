// Package memory implements an in-memory storage substrate for development
// and testing. An optional capacity makes it behave like a size-limited
// browser-style store.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"fittrack/internal/store"
)

// DB implements an in-memory key-value substrate.
type DB struct {
	mu       sync.Mutex
	items    map[string]string
	capacity int
	failSet  func(key string) error
}

// New creates an unbounded in-memory substrate.
func New() *DB {
	return &DB{items: make(map[string]string)}
}

// NewWithCapacity creates a substrate that rejects writes once the sum of
// key and value lengths would exceed capacity bytes.
func NewWithCapacity(capacity int) *DB {
	db := New()
	db.capacity = capacity
	return db
}

// Ensure interface is met.
var _ store.Substrate = (*DB)(nil)

// FailWrites makes Set return the error produced by fn, or succeed when fn
// returns nil. Passing nil restores normal behaviour.
func (db *DB) FailWrites(fn func(key string) error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.failSet = fn
}

// Get returns the value under key.
func (db *DB) Get(ctx context.Context, key string) (string, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	v, ok := db.items[key]
	return v, ok, nil
}

// Set writes value under key.
func (db *DB) Set(ctx context.Context, key, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.failSet != nil {
		if err := db.failSet(key); err != nil {
			return err
		}
	}
	if db.capacity > 0 {
		used := 0
		for k, v := range db.items {
			if k != key {
				used += len(k) + len(v)
			}
		}
		if used+len(key)+len(value) > db.capacity {
			return store.ErrQuotaExceeded
		}
	}
	db.items[key] = value
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (db *DB) Remove(ctx context.Context, key string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.items, key)
	return nil
}

// Keys lists keys with the given prefix in sorted order.
func (db *DB) Keys(ctx context.Context, prefix string) ([]string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]string, 0, len(db.items))
	for k := range db.items {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}
