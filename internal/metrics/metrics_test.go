// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200"))

	RecordAPIRequest("POST", "/api/v1/recommendations", "200", 25*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200"))
	if after-before != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordOverpassQuery(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		result string
	}{
		{"success", nil, "success"},
		{"failure", errors.New("timeout"), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := OverpassQueries.WithLabelValues("https://overpass.test/api/interpreter", tt.result)
			before := testutil.ToFloat64(c)
			RecordOverpassQuery("https://overpass.test/api/interpreter", time.Second, tt.err)
			if got := testutil.ToFloat64(c) - before; got != 1 {
				t.Errorf("overpass_queries_total{result=%q} delta = %v, want 1", tt.result, got)
			}
		})
	}
}

func TestRecordRankingTier(t *testing.T) {
	for _, tier := range []string{"direct", "zone", "relaxed", "fallback"} {
		before := testutil.ToFloat64(RankingTierSelected.WithLabelValues(tier))
		RecordRankingTier(tier)
		if got := testutil.ToFloat64(RankingTierSelected.WithLabelValues(tier)) - before; got != 1 {
			t.Errorf("tier %q delta = %v, want 1", tier, got)
		}
	}
}

func TestRecordStaleResponse(t *testing.T) {
	before := testutil.ToFloat64(StaleResponsesDiscarded.WithLabelValues("recommend"))
	RecordStaleResponse("recommend")
	if got := testutil.ToFloat64(StaleResponsesDiscarded.WithLabelValues("recommend")) - before; got != 1 {
		t.Errorf("stale delta = %v, want 1", got)
	}
}

func TestConcurrentMetricUpdates(t *testing.T) {
	before := testutil.ToFloat64(FeasibilityCacheHits)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				FeasibilityCacheHits.Inc()
			}
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(FeasibilityCacheHits) - before; got != 1000 {
		t.Errorf("feasibility_cache_hits_total delta = %v, want 1000", got)
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordAPIRequest("GET", "/api/v1/health", "200", time.Millisecond)
	RecordRankingTier("direct")

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint() error: %v", err)
	}
	for _, p := range problems {
		t.Logf("lint: %s: %s", p.Metric, p.Text)
	}
}
