// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package feasibility

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/footfall/internal/cache"
	"github.com/tomtom215/footfall/internal/geo"
	"github.com/tomtom215/footfall/internal/logging"
	"github.com/tomtom215/footfall/internal/metrics"
)

// DefaultTTL is how long a successful result stays fresh.
const DefaultTTL = 120 * time.Second

// Cache memoizes feasibility results per normalized (lat, lon, business)
// key. Only successful results are stored, at most one per key. Concurrent
// misses for the same key share one fetch.
type Cache struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group
	log   zerolog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithStore replaces the default in-memory store.
func WithStore(s Store) Option {
	return func(c *Cache) { c.store = s }
}

// WithTTL sets the default freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock injects the time source. The default memory store shares it.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCache returns a cache backed by a memory store of capacity entries
// unless WithStore is given.
func NewCache(capacity int, opts ...Option) *Cache {
	c := &Cache{
		ttl: DefaultTTL,
		now: time.Now,
		log: logging.WithComponent("feasibility-cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = NewMemoryStore(capacity, cache.WithClock(c.now))
	}
	return c
}

// TTL returns the default freshness window.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// GetOrFetch returns the cached result for the key if it is younger than the
// default TTL, otherwise calls fetch and stores a successful result.
func (c *Cache) GetOrFetch(ctx context.Context, lat, lon float64, business string, fetch Fetcher) (Result, error) {
	return c.GetOrFetchTTL(ctx, lat, lon, business, fetch, c.ttl)
}

// GetOrFetchTTL is GetOrFetch with an explicit TTL. Fetch errors and
// success=false results propagate and are not cached. Store errors are
// logged and treated as misses. A caller whose ctx ends while waiting gets
// ctx.Err(); the fetch itself runs detached from that cancellation and
// still populates the cache for the remaining waiters.
func (c *Cache) GetOrFetchTTL(ctx context.Context, lat, lon float64, business string, fetch Fetcher, ttl time.Duration) (Result, error) {
	if fetch == nil {
		return Result{}, ErrNilFetcher
	}
	if err := (geo.Point{Lat: lat, Lon: lon}).Validate(); err != nil {
		return Result{}, err
	}
	if ttl <= 0 {
		ttl = c.ttl
	}
	key := Key(lat, lon, business)

	entry, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Feasibility store read failed")
	}
	if ok && c.now().Sub(entry.StoredAt) < ttl {
		metrics.FeasibilityCacheHits.Inc()
		return entry.Result, nil
	}
	metrics.FeasibilityCacheMisses.Inc()

	// The shared fetch outlives any one caller; each caller still returns on
	// its own cancellation.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		res, err := fetch(fetchCtx)
		if err != nil {
			metrics.FeasibilityFetchErrors.Inc()
			return Result{}, err
		}
		if !res.Success {
			metrics.FeasibilityFetchErrors.Inc()
			return Result{}, upstreamError(res)
		}
		e := Entry{Key: key, Result: res, StoredAt: c.now()}
		if err := c.store.Set(fetchCtx, e, ttl); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("Feasibility store write failed")
		}
		c.updateEntries()
		return res, nil
	})

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case r := <-ch:
		if r.Shared {
			metrics.FeasibilityCacheCoalesced.Inc()
		}
		if r.Err != nil {
			return Result{}, r.Err
		}
		return r.Val.(Result), nil
	}
}

// Sweep removes expired entries from the store.
func (c *Cache) Sweep(ctx context.Context) (int, error) {
	n, err := c.store.Sweep(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		metrics.FeasibilityCacheSwept.Add(float64(n))
		c.log.Debug().Int("removed", n).Msg("Swept expired feasibility entries")
	}
	c.updateEntries()
	return n, nil
}

// Len returns the number of stored entries, or -1 if the store cannot tell.
func (c *Cache) Len() int {
	if l, ok := c.store.(interface{ Len() int }); ok {
		return l.Len()
	}
	return -1
}

func (c *Cache) updateEntries() {
	if n := c.Len(); n >= 0 {
		metrics.FeasibilityCacheEntries.Set(float64(n))
	}
}
