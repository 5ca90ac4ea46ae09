// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

/*
Package middleware provides HTTP middleware for the Footfall API.

All middleware has the chi signature func(http.Handler) http.Handler and is
installed with Router.Use:

  - RequestID: propagates or generates X-Request-ID and a correlation ID,
    both stored in the context for structured logging
  - SessionID: copies X-Session-ID into the context so multi-step siting
    requests from one client share a session
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern

Usage:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.SessionID)

Handlers read the identifiers back with GetRequestID and GetSessionID.
*/
package middleware
