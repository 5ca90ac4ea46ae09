// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package session

import (
	"sync"
	"time"

	"github.com/tomtom215/footfall/internal/cache"
)

// Registry defaults.
const (
	DefaultRegistryCapacity = 1024
	DefaultIdleTimeout      = 30 * time.Minute
)

// Registry maps client session IDs to sessions. Sessions idle longer than
// the idle timeout, or pushed out by capacity, are forgotten.
type Registry struct {
	mu       sync.Mutex
	sessions *cache.LRU[*Session]
}

// NewRegistry creates a registry. Non-positive arguments take the defaults.
func NewRegistry(capacity int, idle time.Duration, opts ...cache.Option) *Registry {
	if capacity <= 0 {
		capacity = DefaultRegistryCapacity
	}
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	return &Registry{sessions: cache.NewLRU[*Session](capacity, idle, opts...)}
}

// Get returns the session for id, creating it on first use. Every call
// restarts the idle timer. An empty id returns nil: the caller runs
// without staleness tracking.
func (r *Registry) Get(id string) *Session {
	if id == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions.Get(id)
	if !ok {
		s = New()
	}
	r.sessions.Add(id, s)
	return s
}

// Len returns the number of tracked sessions.
func (r *Registry) Len() int {
	return r.sessions.Len()
}

// Sweep forgets idle sessions and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions.CleanupExpired()
}
