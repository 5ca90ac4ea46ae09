// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/footfall/internal/api"
	"github.com/tomtom215/footfall/internal/crowd"
	"github.com/tomtom215/footfall/internal/rank"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{"0", "low", false},
		{"79", "low", false},
		{"80", "medium", false},
		{"320", "high", false},
		{"-1", "", true},
		{"many", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			t.Parallel()
			out, err := execute(t, "classify", "--", tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Errorf("classify %s: expected error, got %q", tt.arg, out)
				}
				return
			}
			if err != nil {
				t.Fatalf("classify %s: %v", tt.arg, err)
			}
			if strings.TrimSpace(out) != tt.want {
				t.Errorf("classify %s = %q, want %q", tt.arg, out, tt.want)
			}
		})
	}
}

func TestProfile(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "profile", "Fast Food")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	var p crowd.Profile
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if p.Baseline != 110 {
		t.Errorf("Baseline = %d, want the fast_food baseline 110", p.Baseline)
	}
	if p.Slots[0].Name != crowd.Morning {
		t.Errorf("first slot = %q, want morning", p.Slots[0].Name)
	}
}

const overpassFixture = `{"elements": [
  {"type": "node", "id": 1, "lat": 12.9720, "lon": 77.5950, "tags": {"amenity": "cafe", "name": "Brew One"}},
  {"type": "node", "id": 2, "lat": 12.9721, "lon": 77.5951, "tags": {"amenity": "cafe", "name": "Brew Two"}},
  {"type": "way", "id": 3, "center": {"lat": 12.9730, "lon": 77.5960}, "tags": {"shop": "supermarket"}}
]}`

func TestRank(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "overpass.json")
	if err := os.WriteFile(path, []byte(overpassFixture), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "rank", "--lat", "12.9716", "--lon", "77.5946", "--business", "cafe", "--intensity", "medium", "--pois", path)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	var res rank.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if res.TierName != "direct" {
		t.Errorf("tier = %q, want direct", res.TierName)
	}
	if len(res.Candidates) != 2 {
		t.Fatalf("candidates = %d, want the 2 cafes", len(res.Candidates))
	}
	for _, c := range res.Candidates {
		if c.SourceKind != rank.SourcePOI {
			t.Errorf("candidate %+v is not a POI match", c)
		}
	}
}

func TestRank_Errors(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "overpass.json")
	if err := os.WriteFile(path, []byte(overpassFixture), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"missing flags", []string{"rank", "--lat", "1"}},
		{"bad latitude", []string{"rank", "--lat", "95", "--lon", "0", "--business", "cafe", "--pois", path}},
		{"bad intensity", []string{"rank", "--lat", "1", "--lon", "1", "--business", "cafe", "--intensity", "extreme", "--pois", path}},
		{"missing file", []string{"rank", "--lat", "1", "--lon", "1", "--business", "cafe", "--pois", path + ".missing"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFeasibility(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/feasibility" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		api.WriteSuccess(w, r, map[string]any{"feasible": true})
	}))
	defer srv.Close()

	out, err := execute(t, "feasibility", "--lat", "12.5", "--lon", "77.25", "--business", "cafe", "--server", srv.URL+"/")
	if err != nil {
		t.Fatalf("feasibility: %v", err)
	}
	if !strings.Contains(out, `"feasible": true`) {
		t.Errorf("output = %q", out)
	}
	if got["business_type"] != "cafe" || got["latitude"] != 12.5 {
		t.Errorf("request body = %v", got)
	}
}

func TestFeasibility_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, r, http.StatusBadGateway, api.ErrCodeExternalServiceFail, "External service unavailable: feasibility")
	}))
	defer srv.Close()

	if _, err := execute(t, "feasibility", "--lat", "1", "--lon", "1", "--business", "cafe", "--server", srv.URL); err == nil {
		t.Error("expected error for a 502 response")
	}
}
