// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package feasibility

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/tomtom215/footfall/internal/cache"
)

// Entry is one cached result.
type Entry struct {
	Key      string    `json:"key"`
	Result   Result    `json:"result"`
	StoredAt time.Time `json:"stored_at"`
}

// Store persists entries. Freshness is decided by the Cache, not the store;
// the ttl passed to Set only bounds how long the store has to keep an entry.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, entry Entry, ttl time.Duration) error
	Sweep(ctx context.Context) (int, error)
}

// MemoryStore keeps entries in a bounded in-process LRU.
type MemoryStore struct {
	lru *cache.LRU[Entry]
}

// NewMemoryStore returns a store holding at most capacity entries.
func NewMemoryStore(capacity int, opts ...cache.Option) *MemoryStore {
	if capacity <= 0 {
		capacity = cache.DefaultCapacity
	}
	return &MemoryStore{lru: cache.NewLRU[Entry](capacity, DefaultTTL, opts...)}
}

// Get returns the entry for key if the LRU still holds it.
func (m *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	e, ok := m.lru.Get(key)
	return e, ok, nil
}

// Set stores entry, replacing any previous one for its key.
func (m *MemoryStore) Set(_ context.Context, entry Entry, ttl time.Duration) error {
	m.lru.AddWithTTL(entry.Key, entry, ttl)
	return nil
}

// Sweep drops expired entries.
func (m *MemoryStore) Sweep(context.Context) (int, error) {
	return m.lru.CleanupExpired(), nil
}

// Len returns the number of held entries, expired ones included until swept.
func (m *MemoryStore) Len() int {
	return m.lru.Len()
}

// Stats exposes the LRU counters.
func (m *MemoryStore) Stats() cache.Stats {
	return m.lru.Stats()
}

// DefaultRedisPrefix namespaces feasibility keys.
const DefaultRedisPrefix = "footfall:feasibility:"

// RedisStore shares entries between instances through Redis. Expiry is left
// to the server.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisConfig configures OpenRedis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// OpenRedis connects to Redis and returns a store. It returns an error if the
// server does not answer a ping.
func OpenRedis(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return NewRedisStore(client, cfg.Prefix), nil
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Get reads and decodes the entry for key.
func (r *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	s, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("redis get: %w", err)
	}
	var e Entry
	if err := json.Unmarshal([]byte(s), &e); err != nil {
		return Entry{}, false, fmt.Errorf("decode entry: %w", err)
	}
	return e, true, nil
}

// Set writes entry with a server-side expiry of ttl.
func (r *RedisStore) Set(ctx context.Context, entry Entry, ttl time.Duration) error {
	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	if err := r.client.Set(ctx, r.prefix+entry.Key, b, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Sweep is a no-op: Redis expires keys itself.
func (r *RedisStore) Sweep(context.Context) (int, error) {
	return 0, nil
}

// Ping checks that the server answers.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
