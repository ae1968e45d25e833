// Package store implements the persistent key-value store backing every
// collection in the application. All application keys live under one
// namespace prefix inside a Substrate; values are JSON documents.
//
// Writes are best-effort: a failed write is logged and returned, but callers
// that only care about availability may ignore the error. Reads never fail;
// a missing or malformed value reads as absent.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"fittrack/internal/observability"
)

// DefaultNamespace prefixes every key the store owns.
const DefaultNamespace = "fittrack_"

// DefaultCapacity is the assumed substrate capacity used for quota reports.
const DefaultCapacity int64 = 5 * 1024 * 1024

// ErrQuotaExceeded is returned by substrates that refuse a write for size.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Substrate is the synchronous key-value medium underneath the store.
type Substrate interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Store is one logical store for the process. It has no locking of its own
// beyond what the substrate provides: two writers on the same namespace can
// overwrite each other's last write.
type Store struct {
	sub      Substrate
	ns       string
	capacity int64
	logger   *log.Logger
	now      func() time.Time
	newID    func() string
}

// Option customises a Store.
type Option func(*Store)

// WithNamespace sets the key prefix.
func WithNamespace(ns string) Option {
	return func(s *Store) {
		if ns != "" {
			s.ns = ns
		}
	}
}

// WithCapacity sets the assumed capacity in bytes for CheckQuota.
func WithCapacity(n int64) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithLogger sets the logger for dropped writes and unreadable values.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for audit timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Store over sub.
func New(sub Substrate, opts ...Option) *Store {
	s := &Store{
		sub:      sub,
		ns:       DefaultNamespace,
		capacity: DefaultCapacity,
		logger:   log.Default(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Namespace returns the key prefix owned by this store.
func (s *Store) Namespace() string { return s.ns }

type envelope struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

func (s *Store) physical(key string) string { return s.ns + key }

// Set writes v under key wrapped as {data, timestamp}.
func (s *Store) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return s.dropped(key, fmt.Errorf("encode: %w", err))
	}
	return s.writeValue(ctx, s.physical(key), data, true)
}

// Get decodes the value under key into dst. It reports false when the key
// is absent or its content cannot be decoded.
func (s *Store) Get(ctx context.Context, key string, dst any) bool {
	data, ok := s.read(ctx, s.physical(key))
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.Printf("store: decode %s: %v", key, err)
		return false
	}
	return true
}

// Remove deletes one key.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.sub.Remove(ctx, s.physical(key)); err != nil {
		s.logger.Printf("store: remove %s: %v", key, err)
		return err
	}
	return nil
}

// Clear removes every key inside the namespace.
func (s *Store) Clear(ctx context.Context) error {
	keys, err := s.sub.Keys(ctx, s.ns)
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}
	for _, k := range keys {
		if err := s.sub.Remove(ctx, k); err != nil {
			return fmt.Errorf("remove %s: %w", k, err)
		}
	}
	return nil
}

// writeValue stores data under physicalKey, wrapped in an envelope when wrap
// is set. Collections are written bare.
func (s *Store) writeValue(ctx context.Context, physicalKey string, data json.RawMessage, wrap bool) error {
	raw := []byte(data)
	if wrap {
		var err error
		raw, err = json.Marshal(envelope{Data: data, Timestamp: s.now().UnixMilli()})
		if err != nil {
			return s.dropped(physicalKey, err)
		}
	}
	if err := s.sub.Set(ctx, physicalKey, string(raw)); err != nil {
		return s.dropped(physicalKey, err)
	}
	return nil
}

func (s *Store) dropped(key string, err error) error {
	observability.RecordStoreWriteFailure()
	s.logger.Printf("store: write %s dropped: %v", key, err)
	return fmt.Errorf("write %s: %w", key, err)
}

// read returns the unwrapped JSON value stored under a physical key.
func (s *Store) read(ctx context.Context, physicalKey string) (json.RawMessage, bool) {
	raw, ok, err := s.sub.Get(ctx, physicalKey)
	if err != nil {
		s.logger.Printf("store: read %s: %v", physicalKey, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	data, ok := unwrap([]byte(raw))
	if !ok {
		s.logger.Printf("store: malformed value under %s", physicalKey)
	}
	return data, ok
}

func unwrap(raw []byte) (json.RawMessage, bool) {
	if isArray(raw) {
		if !json.Valid(raw) {
			return nil, false
		}
		return raw, true
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}
	data, ok := env["data"]
	return data, ok
}

func isArray(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// StorageSize sums key and value lengths across the namespace.
func (s *Store) StorageSize(ctx context.Context) (int64, error) {
	keys, err := s.sub.Keys(ctx, s.ns)
	if err != nil {
		return 0, fmt.Errorf("list keys: %w", err)
	}
	var total int64
	for _, k := range keys {
		v, ok, err := s.sub.Get(ctx, k)
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", k, err)
		}
		if ok {
			total += int64(len(k) + len(v))
		}
	}
	observability.SetStoreBytesUsed(total)
	return total, nil
}

// Quota reports usage against the assumed capacity.
type Quota struct {
	Used       int64   `json:"used"`
	Available  int64   `json:"available"`
	Percentage float64 `json:"percentage"`
}

// CheckQuota reports storage usage. The substrate does not expose a real
// limit, so the configured capacity is assumed.
func (s *Store) CheckQuota(ctx context.Context) (Quota, error) {
	used, err := s.StorageSize(ctx)
	if err != nil {
		return Quota{}, err
	}
	avail := s.capacity - used
	if avail < 0 {
		avail = 0
	}
	return Quota{
		Used:       used,
		Available:  avail,
		Percentage: float64(used) / float64(s.capacity) * 100,
	}, nil
}

// Export returns one JSON object mapping every namespaced key to its
// unwrapped value.
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	keys, err := s.sub.Keys(ctx, s.ns)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	doc := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		if data, ok := s.read(ctx, k); ok {
			doc[k] = data
		}
	}
	return json.Marshal(doc)
}

// Import writes every key of an exported document. It returns false on a
// malformed document, on a key outside the namespace, or when any key fails
// to write. Keys written before a failure stay written.
func (s *Store) Import(ctx context.Context, doc []byte) bool {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(doc, &m); err != nil || m == nil {
		s.logger.Printf("store: import rejected: malformed document")
		return false
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		if !strings.HasPrefix(k, s.ns) {
			s.logger.Printf("store: import rejected: key %q outside namespace", k)
			return false
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ok := true
	for _, k := range keys {
		if err := s.writeValue(ctx, k, m[k], !isArray(m[k])); err != nil {
			ok = false
		}
	}
	return ok
}
