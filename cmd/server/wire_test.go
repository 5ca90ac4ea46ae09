// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/footfall/internal/config"
)

func TestBuildComponents_Local(t *testing.T) {
	cfg := config.Default()

	comps, err := buildComponents(context.Background(), cfg, "test")
	if err != nil {
		t.Fatalf("buildComponents() error = %v", err)
	}
	defer comps.Close()

	if comps.service == nil || comps.sessions == nil || comps.cache == nil {
		t.Fatalf("components not wired: %+v", comps)
	}
	if comps.cache.TTL() != cfg.Feasibility.TTL {
		t.Errorf("cache TTL = %v, want %v", comps.cache.TTL(), cfg.Feasibility.TTL)
	}

	rec := httptest.NewRecorder()
	comps.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("ready = %d, want 200 without external checks", rec.Code)
	}
}

func TestBuildComponents_RemoteModes(t *testing.T) {
	cfg := config.Default()
	cfg.Analysis.Mode = config.ModeRemote
	cfg.Analysis.URL = "http://127.0.0.1:1/analyze"
	cfg.Feasibility.Mode = config.ModeRemote
	cfg.Feasibility.URL = "http://127.0.0.1:1/check"

	comps, err := buildComponents(context.Background(), cfg, "test")
	if err != nil {
		t.Fatalf("buildComponents() error = %v", err)
	}
	comps.Close()
}

func TestBuildComponents_RedisUnreachable(t *testing.T) {
	cfg := config.Default()
	cfg.Feasibility.Backend = config.BackendRedis
	cfg.Feasibility.RedisAddr = "127.0.0.1:1"

	if _, err := buildComponents(context.Background(), cfg, "test"); err == nil {
		t.Fatal("buildComponents() must fail when Redis does not answer")
	}
}

func TestBuildComponents_InvalidRanking(t *testing.T) {
	cfg := config.Default()
	cfg.Ranking.ZoneRadiusMeters = -1

	if _, err := buildComponents(context.Background(), cfg, "test"); err == nil {
		t.Fatal("buildComponents() must reject an invalid ranking config")
	}
}
