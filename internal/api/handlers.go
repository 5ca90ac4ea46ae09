// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/footfall/internal/middleware"
	"github.com/tomtom215/footfall/internal/session"
)

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// Handler serves the siting endpoints over a session.Service.
type Handler struct {
	service   *session.Service
	sessions  *session.Registry
	checks    map[string]ReadinessCheck
	startTime time.Time
	version   string
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithReadinessCheck adds a named dependency check to /health/ready.
func WithReadinessCheck(name string, check ReadinessCheck) HandlerOption {
	return func(h *Handler) {
		h.checks[name] = check
	}
}

// WithVersion sets the version reported by /health.
func WithVersion(v string) HandlerOption {
	return func(h *Handler) {
		h.version = v
	}
}

// NewHandler creates a handler. A nil registry disables per-client staleness
// tracking.
func NewHandler(service *session.Service, sessions *session.Registry, opts ...HandlerOption) *Handler {
	h := &Handler{
		service:   service,
		sessions:  sessions,
		checks:    make(map[string]ReadinessCheck),
		startTime: time.Now(),
		version:   "dev",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// sessionFor returns the client session named by X-Session-ID, or nil.
func (h *Handler) sessionFor(r *http.Request) *session.Session {
	if h.sessions == nil {
		return nil
	}
	return h.sessions.Get(middleware.GetSessionID(r.Context()))
}
