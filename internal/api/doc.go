// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

/*
Package api provides the HTTP REST API for Footfall.

Routes (chi):

	POST /api/v1/recommendations  ranked sites for a business type
	POST /api/v1/profiles         POIs around a location with crowd profiles
	POST /api/v1/feasibility      cached feasibility check
	POST /api/v1/analysis         crowd zones, allowed categories, revenue
	GET  /api/v1/business-types   business type picker
	GET  /api/v1/health[/live|/ready]
	GET  /metrics                 Prometheus

Every response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "VALIDATION_FAILED", "message": "..."}}

Error codes map the service error classes: VALIDATION_FAILED (400) for
invalid input, EXTERNAL_SERVICE_FAILED (502) for POI discovery, crowd
analysis or feasibility failures, CONFLICT (409) when a newer request from
the same X-Session-ID superseded this one, INTERNAL_ERROR (500) otherwise.

Clients that send X-Session-ID get last-request-wins semantics across
recommendation and analysis calls. Without the header every call is
independent.

Usage:

	handler := api.NewHandler(service, registry,
	    api.WithReadinessCheck("redis", store.Ping))
	mw := api.NewChiMiddlewareFromSecurity(cfg.Security.CORSOrigins,
	    cfg.Security.RateLimitReqs, cfg.Security.RateLimitWindow, cfg.Security.RateLimitDisabled)
	srv := &http.Server{Addr: cfg.Server.Address(), Handler: api.NewRouter(handler, mw, cfg.Server.Timeout).SetupChi()}
*/
package api
