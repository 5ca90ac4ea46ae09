// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package analysis

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/footfall/internal/catalog"
	"github.com/tomtom215/footfall/internal/category"
	"github.com/tomtom215/footfall/internal/crowd"
	"github.com/tomtom215/footfall/internal/geo"
	"github.com/tomtom215/footfall/internal/poi"
)

var anchor = geo.Point{Lat: 12.9716, Lon: 77.5946}

func cafes(n int, dLat float64) []poi.PointOfInterest {
	out := make([]poi.PointOfInterest, n)
	for i := range out {
		out[i] = poi.PointOfInterest{Category: "cafe", Lat: anchor.Lat + dLat, Lon: anchor.Lon}
	}
	return out
}

func TestPredict(t *testing.T) {
	t.Parallel()

	c := catalog.Default()
	tests := []struct {
		dominant crowd.Band
		area     catalog.Area
		primary  category.Category
		alts     []Alternative
	}{
		{crowd.High, catalog.AreaCommercial, "restaurant", []Alternative{{"pharmacy", crowd.Medium}, {"hardware", crowd.Low}}},
		{crowd.Medium, catalog.AreaNone, "pharmacy", []Alternative{{"restaurant", crowd.High}, {"hardware", crowd.Low}}},
		{crowd.Low, catalog.AreaIndustrial, "warehouse", []Alternative{{"restaurant", crowd.High}, {"pharmacy", crowd.Medium}}},
	}
	for _, tt := range tests {
		p := Predict(c, tt.dominant, tt.area)
		if p.Primary != tt.primary {
			t.Errorf("Predict(%s, %q).Primary = %q, want %q", tt.dominant, tt.area, p.Primary, tt.primary)
		}
		if !reflect.DeepEqual(p.Alternatives, tt.alts) {
			t.Errorf("Predict(%s).Alternatives = %+v, want %+v", tt.dominant, p.Alternatives, tt.alts)
		}
		if p.Reasoning == "" || p.BestTimes == "" {
			t.Errorf("Predict(%s) missing reasoning or best times", tt.dominant)
		}
		if !reflect.DeepEqual(p.Choices, c.Allowed(tt.dominant)) {
			t.Errorf("Predict(%s).Choices = %v", tt.dominant, p.Choices)
		}
	}
}

func TestLocal_Analyze(t *testing.T) {
	t.Parallel()

	pois := append(cafes(15, 0.0009), cafes(6, -0.018)...)
	l := NewLocal(poi.Static(pois), nil, nil)

	res, err := l.Analyze(context.Background(), anchor)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if res.Dominant != crowd.High {
		t.Errorf("Dominant = %s, want high", res.Dominant)
	}
	if len(res.Zones.High) != 1 || len(res.Zones.Medium) != 1 {
		t.Errorf("zones = %+v", res.Zones)
	}
	if res.TotalPOIs != 21 || len(res.POIs) != 21 {
		t.Errorf("TotalPOIs = %d, POIs = %d; want 21", res.TotalPOIs, len(res.POIs))
	}
	if res.Prediction == nil || res.Prediction.Primary != "restaurant" || res.Prediction.Area != catalog.AreaCommercial {
		t.Errorf("Prediction = %+v, want restaurant in commercial area", res.Prediction)
	}
	if got := res.AllowedFor(""); !reflect.DeepEqual(got, catalog.Default().Allowed(crowd.High)) {
		t.Errorf("AllowedFor(dominant) = %v", got)
	}
}

type failingDiscoverer struct{ err error }

func (f failingDiscoverer) Discover(context.Context, geo.Point, float64) ([]poi.PointOfInterest, error) {
	return nil, f.err
}

func TestLocal_DiscoveryFailure(t *testing.T) {
	t.Parallel()

	l := NewLocal(failingDiscoverer{err: poi.ErrDiscoveryFailed}, nil, nil)
	_, err := l.Analyze(context.Background(), anchor)
	if !errors.Is(err, ErrAnalysisFailed) || !errors.Is(err, poi.ErrDiscoveryFailed) {
		t.Errorf("Analyze() error = %v, want ErrAnalysisFailed wrapping ErrDiscoveryFailed", err)
	}

	_, err = l.Analyze(context.Background(), geo.Point{Lat: 100})
	if !errors.Is(err, geo.ErrInvalidCoordinate) {
		t.Errorf("Analyze(invalid) error = %v, want ErrInvalidCoordinate", err)
	}
}

func TestResultAllowedForNil(t *testing.T) {
	t.Parallel()

	var r *Result
	if r.AllowedFor(crowd.High) != nil {
		t.Error("nil result must have no allow-list")
	}
	if (&Result{}).AllowedFor(crowd.High) != nil {
		t.Error("result without catalog must have no allow-list")
	}
}

const remoteBody = `{
  "success": true,
  "high_intensity": [],
  "medium_intensity": [{"latitude": 12.97, "longitude": 77.59, "count": 7, "sector": "0_1"}],
  "low_intensity": [{"latitude": 12.98, "longitude": 77.60, "count": 2, "sector": "2_2"}],
  "total_pois": 9,
  "business_prediction": {"primary": "pharmacy", "reasoning": "r", "alternatives": [], "best_times": "b", "choices": ["pharmacy"], "intensity": "medium"},
  "business_by_intensity": {"high": ["Restaurant"], "MEDIUM": ["cafe", "Book Store"], "low": ["hardware"], "weird": ["x"]}
}`

func TestRemote_Analyze(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		var req remoteRequest
		if err := json.Unmarshal(body, &req); err != nil || req.Latitude != anchor.Lat || req.Longitude != anchor.Lon {
			t.Errorf("request body = %s", body)
		}
		_, _ = io.WriteString(w, remoteBody)
	}))
	defer srv.Close()

	res, err := NewRemote(RemoteConfig{URL: srv.URL}).Analyze(context.Background(), anchor)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if res.Dominant != crowd.Medium {
		t.Errorf("Dominant = %s, want medium", res.Dominant)
	}
	if len(res.Zones.Medium) != 1 || res.Zones.Medium[0].POICount != 7 {
		t.Errorf("medium zones = %+v", res.Zones.Medium)
	}
	if res.TotalPOIs != 9 || res.Prediction == nil || res.Prediction.Primary != "pharmacy" {
		t.Errorf("result = %+v", res)
	}
	want := []category.Category{"cafe", "book_store"}
	if got := res.AllowedFor(crowd.Medium); !reflect.DeepEqual(got, want) {
		t.Errorf("AllowedFor(medium) = %v, want %v", got, want)
	}
	if len(res.Allowed) != 3 {
		t.Errorf("unknown band keys must be dropped, got %v", res.Allowed)
	}
}

func TestRemote_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"success false", http.StatusOK, `{"success": false, "error": "overpass down"}`},
		{"server error", http.StatusInternalServerError, `boom`},
		{"malformed", http.StatusOK, `{"success": tr`},
		{"invalid zone", http.StatusOK, `{"success": true, "high_intensity": [{"latitude": 120, "longitude": 0, "count": 20}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewRemote(RemoteConfig{URL: srv.URL}).Analyze(context.Background(), anchor)
			if !errors.Is(err, ErrAnalysisFailed) {
				t.Errorf("Analyze() error = %v, want ErrAnalysisFailed", err)
			}
			if tt.name == "success false" && !strings.Contains(err.Error(), "overpass down") {
				t.Errorf("error should carry the service message: %v", err)
			}
		})
	}
}
