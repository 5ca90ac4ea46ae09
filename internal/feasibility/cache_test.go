// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package feasibility

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/footfall/internal/geo"
	"github.com/tomtom215/footfall/internal/metrics"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// countingFetcher returns a feasible result and counts its calls.
func countingFetcher(calls *atomic.Int32) Fetcher {
	return func(context.Context) (Result, error) {
		n := calls.Add(1)
		return Result{Success: true, Feasible: true, FoundCount: int(n)}, nil
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	a := Key(12.97164, 77.59460, "Cafe ")
	b := Key(12.97161, 77.59462, "cafe")
	if a != b {
		t.Errorf("Key mismatch: %q vs %q", a, b)
	}
	if a != "12.9716|77.5946|cafe" {
		t.Errorf("Key = %q", a)
	}
	if Key(12.97164, 77.59460, "bakery") == a {
		t.Error("different business must give a different key")
	}
	if Key(12.9718, 77.5946, "cafe") == a {
		t.Error("different latitude must give a different key")
	}

	neg, pos := Key(-0.00001, 77.5946, "cafe"), Key(0.00001, 77.5946, "cafe")
	if neg != pos {
		t.Errorf("points rounding to zero must share a key: %q vs %q", neg, pos)
	}
	if neg != "0.0000|77.5946|cafe" {
		t.Errorf("Key near zero = %q", neg)
	}
	if got := Key(0.00001, -0.00004, "cafe"); got != "0.0000|0.0000|cafe" {
		t.Errorf("Key near zero longitude = %q", got)
	}
}

func TestCache_HitWithinTTL(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := NewCache(0, WithClock(clock.Now))
	var calls atomic.Int32
	ctx := context.Background()

	first, err := c.GetOrFetch(ctx, 12.97164, 77.59460, "Cafe ", countingFetcher(&calls))
	if err != nil {
		t.Fatalf("GetOrFetch() error: %v", err)
	}
	clock.Advance(119 * time.Second)
	second, err := c.GetOrFetch(ctx, 12.97161, 77.59462, "cafe", countingFetcher(&calls))
	if err != nil {
		t.Fatalf("GetOrFetch() error: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("fetcher called %d times, want 1", calls.Load())
	}
	if first != second {
		t.Errorf("cached result = %+v, want %+v", second, first)
	}
}

func TestCache_RefetchAfterTTL(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := NewCache(0, WithClock(clock.Now))
	var calls atomic.Int32
	ctx := context.Background()

	if _, err := c.GetOrFetch(ctx, 12.9716, 77.5946, "cafe", countingFetcher(&calls)); err != nil {
		t.Fatalf("GetOrFetch() error: %v", err)
	}
	clock.Advance(DefaultTTL)
	res, err := c.GetOrFetch(ctx, 12.9716, 77.5946, "cafe", countingFetcher(&calls))
	if err != nil {
		t.Fatalf("GetOrFetch() error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("fetcher called %d times, want 2", calls.Load())
	}
	if res.FoundCount != 2 {
		t.Errorf("result = %+v, want the refreshed result", res)
	}

	// the refreshed entry is fresh again
	clock.Advance(time.Second)
	if _, err := c.GetOrFetch(ctx, 12.9716, 77.5946, "cafe", countingFetcher(&calls)); err != nil {
		t.Fatalf("GetOrFetch() error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("fetcher called %d times after refresh, want 2", calls.Load())
	}
}

func TestCache_ExplicitTTL(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := NewCache(0, WithClock(clock.Now), WithTTL(time.Hour))
	if c.TTL() != time.Hour {
		t.Errorf("TTL() = %v, want 1h", c.TTL())
	}
	var calls atomic.Int32
	ctx := context.Background()

	_, _ = c.GetOrFetchTTL(ctx, 1, 1, "cafe", countingFetcher(&calls), 10*time.Second)
	clock.Advance(11 * time.Second)
	_, _ = c.GetOrFetchTTL(ctx, 1, 1, "cafe", countingFetcher(&calls), 10*time.Second)
	if calls.Load() != 2 {
		t.Errorf("fetcher called %d times, want 2", calls.Load())
	}
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	c := NewCache(0)
	ctx := context.Background()
	boom := errors.New("connection refused")

	tests := []struct {
		name    string
		fetch   Fetcher
		wantErr error
	}{
		{"transport error", func(context.Context) (Result, error) { return Result{}, boom }, boom},
		{"success false", func(context.Context) (Result, error) {
			return Result{Success: false, Message: "server busy"}, nil
		}, ErrUpstreamFailure},
	}
	for _, tt := range tests {
		_, err := c.GetOrFetch(ctx, 2, 2, tt.name, tt.fetch)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: error = %v, want %v", tt.name, err, tt.wantErr)
		}

		var calls atomic.Int32
		if _, err := c.GetOrFetch(ctx, 2, 2, tt.name, countingFetcher(&calls)); err != nil {
			t.Fatalf("%s: retry error: %v", tt.name, err)
		}
		if calls.Load() != 1 {
			t.Errorf("%s: failure must not be cached", tt.name)
		}
	}
}

func TestCache_InvalidInput(t *testing.T) {
	t.Parallel()

	c := NewCache(0)
	if _, err := c.GetOrFetch(context.Background(), 1, 1, "cafe", nil); !errors.Is(err, ErrNilFetcher) {
		t.Errorf("nil fetcher error = %v, want ErrNilFetcher", err)
	}
	var calls atomic.Int32
	if _, err := c.GetOrFetch(context.Background(), 95, 1, "cafe", countingFetcher(&calls)); !errors.Is(err, geo.ErrInvalidCoordinate) {
		t.Errorf("invalid latitude error = %v, want ErrInvalidCoordinate", err)
	}
	if calls.Load() != 0 {
		t.Error("fetcher must not run for invalid input")
	}
}

func TestCache_CoalescesConcurrentMisses(t *testing.T) {
	t.Parallel()

	c := NewCache(0)
	release := make(chan struct{})
	var calls atomic.Int32
	fetch := func(context.Context) (Result, error) {
		calls.Add(1)
		<-release
		return Result{Success: true, Feasible: true}, nil
	}

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := c.GetOrFetch(context.Background(), 3, 3, "cafe", fetch)
			if err == nil && !res.Feasible {
				err = errors.New("unexpected result")
			}
			errs <- err
		}()
	}
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("GetOrFetch() error: %v", err)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("fetcher called %d times, want 1", calls.Load())
	}
}

func TestCache_FollowerSurvivesLeaderCancel(t *testing.T) {
	t.Parallel()

	c := NewCache(0)
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	fetch := func(ctx context.Context) (Result, error) {
		calls.Add(1)
		close(started)
		select {
		case <-release:
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
		return Result{Success: true, Feasible: true, Message: "ok"}, nil
	}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := c.GetOrFetch(leaderCtx, 4, 4, "cafe", fetch)
		leaderErr <- err
	}()
	<-started

	type outcome struct {
		res Result
		err error
	}
	follower := make(chan outcome, 1)
	go func() {
		res, err := c.GetOrFetch(context.Background(), 4, 4, "cafe", fetch)
		follower <- outcome{res, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	if err := <-leaderErr; !errors.Is(err, context.Canceled) {
		t.Errorf("leader error = %v, want context.Canceled", err)
	}

	close(release)
	got := <-follower
	if got.err != nil {
		t.Fatalf("follower error: %v", got.err)
	}
	if !got.res.Feasible || got.res.Message != "ok" {
		t.Errorf("follower result = %+v", got.res)
	}
	if calls.Load() != 1 {
		t.Errorf("fetcher called %d times, want 1", calls.Load())
	}

	// The detached fetch populated the cache.
	if _, err := c.GetOrFetch(context.Background(), 4, 4, "cafe", fetch); err != nil {
		t.Fatalf("cached GetOrFetch() error: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("fetcher called %d times after cache fill, want 1", calls.Load())
	}
}

func TestCache_LeaderCancelAloneStillCaches(t *testing.T) {
	t.Parallel()

	c := NewCache(0)
	release := make(chan struct{})
	done := make(chan struct{})
	var calls atomic.Int32
	fetch := func(ctx context.Context) (Result, error) {
		defer close(done)
		calls.Add(1)
		<-release
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		return Result{Success: true, Feasible: true}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := c.GetOrFetch(ctx, 5, 5, "bakery", fetch)
		errCh <- err
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("GetOrFetch() error = %v, want context.Canceled", err)
	}
	close(release)
	<-done

	deadline := time.Now().Add(2 * time.Second)
	for c.Len() != 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	if _, err := c.GetOrFetch(context.Background(), 5, 5, "bakery", fetch); err != nil {
		t.Fatalf("GetOrFetch() error: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("fetcher called %d times, want 1", calls.Load())
	}
}

func TestCache_Sweep(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := NewCache(0, WithClock(clock.Now))
	var calls atomic.Int32
	ctx := context.Background()

	for _, biz := range []string{"cafe", "bakery", "pharmacy"} {
		if _, err := c.GetOrFetch(ctx, 4, 4, biz, countingFetcher(&calls)); err != nil {
			t.Fatalf("GetOrFetch(%s) error: %v", biz, err)
		}
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}

	clock.Advance(DefaultTTL + time.Second)
	n, err := c.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep() error: %v", err)
	}
	if n != 3 || c.Len() != 0 {
		t.Errorf("Sweep() removed %d, Len() = %d; want 3 and 0", n, c.Len())
	}
}

func TestCache_Metrics(t *testing.T) {
	c := NewCache(0)
	var calls atomic.Int32
	ctx := context.Background()

	hits := testutil.ToFloat64(metrics.FeasibilityCacheHits)
	misses := testutil.ToFloat64(metrics.FeasibilityCacheMisses)

	_, _ = c.GetOrFetch(ctx, 5, 5, "metrics", countingFetcher(&calls))
	_, _ = c.GetOrFetch(ctx, 5, 5, "metrics", countingFetcher(&calls))

	if got := testutil.ToFloat64(metrics.FeasibilityCacheHits) - hits; got < 1 {
		t.Errorf("hits delta = %v, want at least 1", got)
	}
	if got := testutil.ToFloat64(metrics.FeasibilityCacheMisses) - misses; got < 1 {
		t.Errorf("misses delta = %v, want at least 1", got)
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (Entry, bool, error) {
	return Entry{}, false, errors.New("store down")
}

func (failingStore) Set(context.Context, Entry, time.Duration) error {
	return errors.New("store down")
}

func (failingStore) Sweep(context.Context) (int, error) { return 0, errors.New("store down") }

func TestCache_StoreFailuresDegradeToMiss(t *testing.T) {
	t.Parallel()

	c := NewCache(0, WithStore(failingStore{}))
	var calls atomic.Int32
	res, err := c.GetOrFetch(context.Background(), 6, 6, "cafe", countingFetcher(&calls))
	if err != nil || !res.Success {
		t.Fatalf("GetOrFetch() = %+v, %v; want the fetched result", res, err)
	}
	if c.Len() != -1 {
		t.Errorf("Len() = %d, want -1 for a store without a size", c.Len())
	}
	if _, err := c.Sweep(context.Background()); err == nil {
		t.Error("Sweep() must surface store errors")
	}
}
