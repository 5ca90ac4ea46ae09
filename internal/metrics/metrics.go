// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for footfall. Covers:
// - API endpoint latency and throughput
// - Upstream circuit breakers
// - Feasibility cache efficiency
// - POI discovery and ranking behaviour

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Feasibility Cache Metrics
	FeasibilityCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feasibility_cache_hits_total",
			Help: "Feasibility lookups served from cache",
		},
	)

	FeasibilityCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feasibility_cache_misses_total",
			Help: "Feasibility lookups that invoked the fetcher",
		},
	)

	FeasibilityCacheCoalesced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feasibility_cache_coalesced_total",
			Help: "Feasibility lookups that shared an in-flight fetch",
		},
	)

	FeasibilityCacheSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feasibility_cache_swept_total",
			Help: "Expired feasibility entries removed by the sweeper",
		},
	)

	FeasibilityCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feasibility_cache_entries",
			Help: "Current number of stored feasibility entries",
		},
	)

	FeasibilityFetchErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feasibility_fetch_errors_total",
			Help: "Feasibility fetches that failed and were not cached",
		},
	)

	// POI Discovery Metrics
	OverpassQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "overpass_queries_total",
			Help: "Overpass queries by endpoint and result",
		},
		[]string{"endpoint", "result"}, // result: "success", "error"
	)

	OverpassQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "overpass_query_duration_seconds",
			Help:    "Duration of Overpass queries in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	DiscoveryCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poi_discovery_cache_hits_total",
			Help: "POI discoveries served from the query cache",
		},
	)

	// Ranking Metrics
	RankingTierSelected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_tier_selected_total",
			Help: "Ranking calls by the tier that produced the candidates",
		},
		[]string{"tier"}, // "direct", "zone", "relaxed", "fallback"
	)

	// Session Metrics
	StaleResponsesDiscarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stale_responses_discarded_total",
			Help: "Responses dropped because a newer analysis cycle started",
		},
		[]string{"operation"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements active request counter
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordOverpassQuery records one Overpass round trip.
func RecordOverpassQuery(endpoint string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	OverpassQueries.WithLabelValues(endpoint, result).Inc()
	OverpassQueryDuration.Observe(duration.Seconds())
}

// RecordRankingTier records which tier answered a ranking call.
func RecordRankingTier(tier string) {
	RankingTierSelected.WithLabelValues(tier).Inc()
}

// RecordStaleResponse records a discarded superseded response.
func RecordStaleResponse(operation string) {
	StaleResponsesDiscarded.WithLabelValues(operation).Inc()
}
