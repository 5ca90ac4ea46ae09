// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

/*
Package logging provides centralized zerolog-based logging for footfall.

The global logger emits JSON by default and console output for development.
Every core package logs through a component logger:

	log := logging.WithComponent("discovery")
	log.Info().Int("pois", len(pois)).Msg("Discovery complete")

Request handlers and analysis cycles log through the context, which adds
request_id and correlation_id fields when present:

	logging.Ctx(ctx).Warn().Err(err).Msg("Stale analysis discarded")

# Configuration

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

Environment variables (through internal/config):
  - LOG_LEVEL: debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: true/false

FUZZ_MODE=1 raises the initial level to fatal.

# slog Bridge

NewSlogLogger exposes the zerolog backend as an *slog.Logger for libraries
that require one, namely the suture event hook in internal/supervisor.

Always terminate log chains with .Msg() or .Send(); an unterminated event
is never written.
*/
package logging
