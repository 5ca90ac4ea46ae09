// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/footfall/internal/analysis"
	"github.com/tomtom215/footfall/internal/api"
	"github.com/tomtom215/footfall/internal/config"
	"github.com/tomtom215/footfall/internal/feasibility"
	"github.com/tomtom215/footfall/internal/logging"
	"github.com/tomtom215/footfall/internal/poi"
	"github.com/tomtom215/footfall/internal/rank"
	"github.com/tomtom215/footfall/internal/session"
)

// redisConnectTimeout bounds the startup ping against Redis.
const redisConnectTimeout = 5 * time.Second

// components holds everything the supervisor tree runs.
type components struct {
	service  *session.Service
	sessions *session.Registry
	cache    *feasibility.Cache
	handler  http.Handler

	// closers run in reverse order on shutdown
	closers []func() error
}

func (c *components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			logging.Error().Err(err).Msg("Error closing component")
		}
	}
}

// buildComponents wires the siting service and its HTTP handler from cfg.
func buildComponents(ctx context.Context, cfg *config.Config, version string) (*components, error) {
	c := &components{}
	var checks []api.HandlerOption

	discoverer := poi.NewOverpassDiscoverer(poi.Config{
		Endpoints:         cfg.Overpass.Endpoints,
		Timeout:           cfg.Overpass.Timeout,
		MaxParallel:       cfg.Overpass.MaxParallel,
		CacheTTL:          cfg.Overpass.CacheTTL,
		CacheCapacity:     cfg.Overpass.CacheCapacity,
		RadiusMeters:      cfg.Overpass.RadiusMeters,
		RequestsPerSecond: cfg.Overpass.RequestsPerSecond,
		Burst:             cfg.Overpass.Burst,
		UserAgent:         cfg.Overpass.UserAgent,
	})

	var analyzer analysis.Analyzer
	if cfg.RemoteAnalysis() {
		analyzer = analysis.NewRemote(analysis.RemoteConfig{
			URL:     cfg.Analysis.URL,
			Timeout: cfg.Analysis.Timeout,
		})
		logging.Info().Str("url", cfg.Analysis.URL).Msg("Using remote crowd analysis")
	}

	var checker feasibility.Checker
	if cfg.RemoteFeasibility() {
		checker = feasibility.NewClient(feasibility.ClientConfig{
			URL:     cfg.Feasibility.URL,
			Timeout: cfg.Feasibility.Timeout,
		})
		logging.Info().Str("url", cfg.Feasibility.URL).Msg("Using remote feasibility checks")
	}

	var store feasibility.Store
	if cfg.Feasibility.Backend == config.BackendRedis {
		pingCtx, cancel := context.WithTimeout(ctx, redisConnectTimeout)
		redisStore, err := feasibility.OpenRedis(pingCtx, feasibility.RedisConfig{
			Addr:     cfg.Feasibility.RedisAddr,
			Password: cfg.Feasibility.RedisPassword,
			DB:       cfg.Feasibility.RedisDB,
			Prefix:   cfg.Feasibility.RedisPrefix,
		})
		cancel()
		if err != nil {
			return nil, fmt.Errorf("feasibility store: %w", err)
		}
		store = redisStore
		c.closers = append(c.closers, redisStore.Close)
		checks = append(checks, api.WithReadinessCheck("redis", redisStore.Ping))
		logging.Info().Str("addr", cfg.Feasibility.RedisAddr).Msg("Feasibility cache backed by Redis")
	} else {
		store = feasibility.NewMemoryStore(cfg.Feasibility.Capacity)
	}
	c.cache = feasibility.NewCache(cfg.Feasibility.Capacity,
		feasibility.WithStore(store),
		feasibility.WithTTL(cfg.Feasibility.TTL),
	)

	rankCfg := rank.DefaultConfig()
	rankCfg.MaxCandidates = cfg.Ranking.MaxCandidates
	rankCfg.ZoneCandidates = cfg.Ranking.ZoneCandidates
	rankCfg.FallbackCandidates = cfg.Ranking.FallbackCandidates
	rankCfg.ZoneRadiusMeters = cfg.Ranking.ZoneRadiusMeters
	ranker, err := rank.NewRanker(rankCfg, logging.Logger())
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("ranker: %w", err)
	}

	service, err := session.NewService(session.Deps{
		Discoverer:   discoverer,
		Analyzer:     analyzer,
		Ranker:       ranker,
		Cache:        c.cache,
		Checker:      checker,
		RadiusMeters: cfg.Overpass.RadiusMeters,
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("session service: %w", err)
	}
	c.service = service
	c.sessions = session.NewRegistry(cfg.Session.Capacity, cfg.Session.IdleTimeout)

	opts := append([]api.HandlerOption{api.WithVersion(version)}, checks...)
	handler := api.NewHandler(service, c.sessions, opts...)
	mw := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	c.handler = api.NewRouter(handler, mw, cfg.Server.Timeout).SetupChi()

	return c, nil
}
