// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

/*
Package config provides centralized configuration management for Footfall.

Configuration is layered with Koanf v2: struct defaults, then an optional
YAML file (CONFIG_PATH, or config.yaml / /etc/footfall/config.yaml), then
environment variables. A .env file is loaded into the environment by the
binaries before Load runs.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8080)
  - HTTP_TIMEOUT: per-request handler timeout (default: 60s)

Logging:
  - LOG_LEVEL (default: info), LOG_FORMAT (json|console), LOG_CALLER

Security:
  - CORS_ORIGINS: comma-separated (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW (default: 100 per 1m)
  - DISABLE_RATE_LIMIT

POI discovery:
  - OVERPASS_ENDPOINTS: comma-separated, tried in order
  - OVERPASS_TIMEOUT, OVERPASS_MAX_PARALLEL, OVERPASS_CACHE_TTL
  - OVERPASS_RADIUS_METERS (default: 5000)
  - OVERPASS_REQUESTS_PER_SECOND, OVERPASS_BURST, OVERPASS_USER_AGENT

Crowd analysis:
  - ANALYSIS_MODE: local or remote (default: local)
  - ANALYSIS_URL, ANALYSIS_TIMEOUT: remote mode only

Feasibility:
  - FEASIBILITY_MODE: local or remote (default: local)
  - FEASIBILITY_URL, FEASIBILITY_TIMEOUT: remote mode only
  - FEASIBILITY_TTL (default: 120s), FEASIBILITY_CAPACITY, FEASIBILITY_SWEEP_INTERVAL
  - FEASIBILITY_BACKEND: memory or redis
  - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, REDIS_PREFIX

Ranking and sessions:
  - RANKING_MAX_CANDIDATES, RANKING_ZONE_CANDIDATES, RANKING_FALLBACK_CANDIDATES
  - RANKING_ZONE_RADIUS_METERS (default: 900)
  - SESSION_CAPACITY, SESSION_IDLE_TIMEOUT

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	srv := &http.Server{Addr: cfg.Server.Address()}

Validate reports the first invalid setting by its environment variable name.
*/
package config
