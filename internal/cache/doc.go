// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

/*
Package cache provides a generic, thread-safe LRU cache with TTL expiry.

LRU backs two caches in footfall:
  - the in-memory feasibility store (120s TTL, bounded capacity)
  - the Overpass discovery cache (15m TTL, keyed by query hash)

# Expiry

An entry stored at time t with ttl d is live while now < t+d. Lookups drop
stale entries lazily; CleanupExpired sweeps them eagerly and is driven by
the supervised cache sweeper. The clock can be replaced with WithClock.

# Usage Example

	c := cache.NewLRU[Result](1000, 2*time.Minute)
	c.Add("12.9716|77.5946|cafe", result)

	if r, ok := c.Get("12.9716|77.5946|cafe"); ok {
	    // use r
	}

	removed := c.CleanupExpired()
*/
package cache
