// Package redis implements the storage substrate on a Redis server.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	goredis "github.com/redis/go-redis/v9"

	"fittrack/internal/store"
)

// DB implements store.Substrate with Redis strings.
type DB struct {
	client *goredis.Client
}

var _ store.Substrate = (*DB)(nil)

// Options configure the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Open connects to Redis and pings it.
func Open(ctx context.Context, opts Options) (*DB, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &DB{client: client}, nil
}

// New wraps an existing client.
func New(client *goredis.Client) *DB {
	return &DB{client: client}
}

// Close closes the client.
func (d *DB) Close() error {
	return d.client.Close()
}

// Get returns the value under key.
func (d *DB) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := d.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set writes value under key without expiry.
func (d *DB) Set(ctx context.Context, key, value string) error {
	return d.client.Set(ctx, key, value, 0).Err()
}

// Remove deletes key.
func (d *DB) Remove(ctx context.Context, key string) error {
	return d.client.Del(ctx, key).Err()
}

// Keys scans for keys starting with prefix.
func (d *DB) Keys(ctx context.Context, prefix string) ([]string, error) {
	var out []string
	iter := d.client.Scan(ctx, 0, escapeGlob(prefix)+"*", 100).Iterator()
	for iter.Next(ctx) {
		out = append(out, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

func escapeGlob(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', ']', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
