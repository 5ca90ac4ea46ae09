// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

// Package testinfra provides container-backed infrastructure for
// integration tests. Everything here is behind the integration build tag:
//
//	go test -tags integration ./...
//
// # Redis Container
//
// RedisContainer backs the shared feasibility cache:
//
//	func TestSharedCache(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    redis, err := testinfra.NewRedisContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, redis)
//	    // feasibility.OpenRedis(ctx, feasibility.RedisConfig{Addr: redis.Addr})
//	}
//
// Tests are skipped when Docker is unavailable. The first run pulls the
// image; later runs use the local cache.
package testinfra
