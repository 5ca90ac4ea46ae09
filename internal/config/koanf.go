// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/footfall/config.yaml",
	"/etc/footfall/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    8080,
			Host:    "0.0.0.0",
			Timeout: 60 * time.Second, // Overpass alone may take 30s per endpoint
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Overpass: OverpassConfig{
			Endpoints: []string{
				"https://overpass-api.de/api/interpreter",
				"https://lz4.overpass-api.de/api/interpreter",
				"https://z.overpass-api.de/api/interpreter",
				"https://overpass.openstreetmap.ru/api/interpreter",
			},
			Timeout:           30 * time.Second,
			MaxParallel:       2,
			CacheTTL:          15 * time.Minute,
			CacheCapacity:     256,
			RadiusMeters:      5000,
			RequestsPerSecond: 1,
			Burst:             2,
			UserAgent:         "footfall/1.0",
		},
		Analysis: AnalysisConfig{
			Mode:    ModeLocal,
			Timeout: 30 * time.Second,
		},
		Feasibility: FeasibilityConfig{
			Mode:          ModeLocal,
			Timeout:       30 * time.Second,
			TTL:           120 * time.Second,
			Capacity:      1024,
			SweepInterval: time.Minute,
			Backend:       BackendMemory,
			RedisAddr:     "localhost:6379",
			RedisPrefix:   "footfall:feasibility:",
		},
		Ranking: RankingConfig{
			MaxCandidates:      10,
			ZoneCandidates:     5,
			FallbackCandidates: 5,
			ZoneRadiusMeters:   900,
		},
		Session: SessionConfig{
			Capacity:    1024,
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// Default returns the built-in configuration without reading any source.
func Default() *Config {
	return defaultConfig()
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// The result is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// HTTP_PORT -> server.port, FEASIBILITY_TTL -> feasibility.ttl
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"overpass.endpoints",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Security mappings
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Overpass mappings
	"overpass_endpoints":           "overpass.endpoints",
	"overpass_timeout":             "overpass.timeout",
	"overpass_max_parallel":        "overpass.max_parallel",
	"overpass_cache_ttl":           "overpass.cache_ttl",
	"overpass_cache_capacity":      "overpass.cache_capacity",
	"overpass_radius_meters":       "overpass.radius_meters",
	"overpass_requests_per_second": "overpass.requests_per_second",
	"overpass_burst":               "overpass.burst",
	"overpass_user_agent":          "overpass.user_agent",

	// Analysis mappings
	"analysis_mode":    "analysis.mode",
	"analysis_url":     "analysis.url",
	"analysis_timeout": "analysis.timeout",

	// Feasibility mappings
	"feasibility_mode":           "feasibility.mode",
	"feasibility_url":            "feasibility.url",
	"feasibility_timeout":        "feasibility.timeout",
	"feasibility_ttl":            "feasibility.ttl",
	"feasibility_capacity":       "feasibility.capacity",
	"feasibility_sweep_interval": "feasibility.sweep_interval",
	"feasibility_backend":        "feasibility.backend",
	"redis_addr":                 "feasibility.redis_addr",
	"redis_password":             "feasibility.redis_password",
	"redis_db":                   "feasibility.redis_db",
	"redis_prefix":               "feasibility.redis_prefix",

	// Ranking mappings
	"ranking_max_candidates":      "ranking.max_candidates",
	"ranking_zone_candidates":     "ranking.zone_candidates",
	"ranking_fallback_candidates": "ranking.fallback_candidates",
	"ranking_zone_radius_meters":  "ranking.zone_radius_meters",

	// Session mappings
	"session_capacity":     "session.capacity",
	"session_idle_timeout": "session.idle_timeout",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - OVERPASS_ENDPOINTS -> overpass.endpoints
//   - REDIS_ADDR -> feasibility.redis_addr
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
