// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)

Circuit Breaker Metrics (labels: name = overpass, analysis-api, feasibility-api):
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Labels: name, result (counter)
  - circuit_breaker_consecutive_failures (gauge)
  - circuit_breaker_state_transitions_total: Labels: name, from_state, to_state

Feasibility Cache Metrics:
  - feasibility_cache_hits_total, feasibility_cache_misses_total
  - feasibility_cache_coalesced_total: callers that joined an in-flight fetch
  - feasibility_cache_swept_total: expired entries removed by the sweeper
  - feasibility_cache_entries (gauge)
  - feasibility_fetch_errors_total

Discovery and Ranking Metrics:
  - overpass_queries_total: Labels: endpoint, result
  - overpass_query_duration_seconds (histogram)
  - poi_discovery_cache_hits_total
  - ranking_tier_selected_total: Labels: tier (direct, zone, relaxed, fallback)
  - stale_responses_discarded_total: Labels: operation

# Usage

	start := time.Now()
	// ... handle request
	metrics.RecordAPIRequest(r.Method, route, strconv.Itoa(status), time.Since(start))
*/
package metrics
