// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

/*
Package main is the entry point for the Footfall server.

Footfall recommends where to open a business near a chosen location. It
discovers nearby points of interest through Overpass, estimates hourly
crowd levels for each of them, groups busy clusters into zones and ranks
candidate sites for the requested business type. A feasibility check per
candidate is cached for a short window.

# Application Architecture

The server runs under Suture v4 process supervision:

	RootSupervisor ("footfall")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   ├── feasibility-sweeper (expired feasibility entries)
	│   └── session-sweeper (idle sessions)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Environment: optional .env file (godotenv)
 2. Configuration: Koanf v2 with environment variables and config files
 3. Logging: zerolog, bridged to slog for the supervisor
 4. POI discovery: Overpass with per-endpoint circuit breakers
 5. Crowd analysis and feasibility: in-process or remote
 6. Feasibility cache: memory or Redis backend
 7. Session service, registry and HTTP router

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests for up to 10 seconds, sweepers stop, and the Redis
connection (if any) is closed.

# Example Usage

	export FEASIBILITY_BACKEND=redis
	export REDIS_ADDR=localhost:6379
	export CORS_ORIGINS=https://maps.example.com
	./footfall
*/
package main
