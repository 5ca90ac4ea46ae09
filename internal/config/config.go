// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Configuration Categories:
//
//  1. Serving: Server, Security, Logging
//  2. Upstreams: Overpass (POI discovery), Analysis, Feasibility
//  3. Engine: Ranking, Session
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Logging     LoggingConfig     `koanf:"logging"`
	Security    SecurityConfig    `koanf:"security"`
	Overpass    OverpassConfig    `koanf:"overpass"`
	Analysis    AnalysisConfig    `koanf:"analysis"`
	Feasibility FeasibilityConfig `koanf:"feasibility"`
	Ranking     RankingConfig     `koanf:"ranking"`
	Session     SessionConfig     `koanf:"session"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"` // Per-request handler timeout
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // json or console
	Caller bool   `koanf:"caller"` // Include file:line in log events
}

// SecurityConfig holds CORS and inbound rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// OverpassConfig holds POI discovery settings
type OverpassConfig struct {
	// Endpoints are tried in order; the first success wins
	Endpoints   []string      `koanf:"endpoints"`
	Timeout     time.Duration `koanf:"timeout"`
	MaxParallel int           `koanf:"max_parallel"`

	// CacheTTL bounds how long a successful query result is reused
	CacheTTL      time.Duration `koanf:"cache_ttl"`
	CacheCapacity int           `koanf:"cache_capacity"`
	RadiusMeters  float64       `koanf:"radius_meters"`

	// Outbound politeness limit shared by all endpoints
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`
	UserAgent         string  `koanf:"user_agent"`
}

// Upstream modes
const (
	ModeLocal  = "local"
	ModeRemote = "remote"
)

// Feasibility cache backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// AnalysisConfig selects the crowd analysis source
type AnalysisConfig struct {
	Mode    string        `koanf:"mode"` // local or remote
	URL     string        `koanf:"url"`  // Required in remote mode
	Timeout time.Duration `koanf:"timeout"`
}

// FeasibilityConfig selects the feasibility checker and its cache
type FeasibilityConfig struct {
	Mode    string        `koanf:"mode"` // local or remote
	URL     string        `koanf:"url"`  // Required in remote mode
	Timeout time.Duration `koanf:"timeout"`

	// TTL is how long a successful result is served without refetching
	TTL           time.Duration `koanf:"ttl"`
	Capacity      int           `koanf:"capacity"`
	SweepInterval time.Duration `koanf:"sweep_interval"`

	// Backend is memory (per process) or redis (shared)
	Backend       string `koanf:"backend"`
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
	RedisPrefix   string `koanf:"redis_prefix"`
}

// RankingConfig holds the candidate limits of the ranker
type RankingConfig struct {
	MaxCandidates      int     `koanf:"max_candidates"`
	ZoneCandidates     int     `koanf:"zone_candidates"`
	FallbackCandidates int     `koanf:"fallback_candidates"`
	ZoneRadiusMeters   float64 `koanf:"zone_radius_meters"`
}

// SessionConfig bounds the per-client session registry
type SessionConfig struct {
	Capacity    int           `koanf:"capacity"`
	IdleTimeout time.Duration `koanf:"idle_timeout"`
}

// Address returns the listen address of the HTTP server.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// RemoteAnalysis reports whether zones come from an analysis service.
func (c *Config) RemoteAnalysis() bool {
	return c.Analysis.Mode == ModeRemote
}

// RemoteFeasibility reports whether feasibility is checked by a service.
func (c *Config) RemoteFeasibility() bool {
	return c.Feasibility.Mode == ModeRemote
}
