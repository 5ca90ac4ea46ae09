// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package config

import (
	"fmt"
	"net/url"
	"time"
)

// Rate limiting bounds
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateRateLimits,
		c.validateOverpass,
		c.validateAnalysis,
		c.validateFeasibility,
		c.validateRanking,
		c.validateSession,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

// validateServer validates HTTP server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateRateLimits validates inbound rate limiting (skipped when disabled)
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateOverpass validates POI discovery configuration
func (c *Config) validateOverpass() error {
	o := c.Overpass
	if len(o.Endpoints) == 0 {
		return fmt.Errorf("OVERPASS_ENDPOINTS must list at least one endpoint")
	}
	for _, ep := range o.Endpoints {
		if err := validateHTTPURL(ep, "OVERPASS_ENDPOINTS"); err != nil {
			return err
		}
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("OVERPASS_TIMEOUT must be positive")
	}
	if o.MaxParallel < 1 {
		return fmt.Errorf("OVERPASS_MAX_PARALLEL must be at least 1")
	}
	if o.RadiusMeters <= 0 || o.RadiusMeters > 50000 {
		return fmt.Errorf("OVERPASS_RADIUS_METERS must be in (0, 50000]")
	}
	if o.RequestsPerSecond <= 0 {
		return fmt.Errorf("OVERPASS_REQUESTS_PER_SECOND must be positive")
	}
	if o.Burst < 1 {
		return fmt.Errorf("OVERPASS_BURST must be at least 1")
	}
	return nil
}

// validateAnalysis validates the crowd analysis source
func (c *Config) validateAnalysis() error {
	return validateUpstream(c.Analysis.Mode, c.Analysis.URL, c.Analysis.Timeout, "ANALYSIS")
}

// validateFeasibility validates the feasibility checker and cache
func (c *Config) validateFeasibility() error {
	f := c.Feasibility
	if err := validateUpstream(f.Mode, f.URL, f.Timeout, "FEASIBILITY"); err != nil {
		return err
	}
	if f.TTL <= 0 {
		return fmt.Errorf("FEASIBILITY_TTL must be positive")
	}
	if f.Capacity < 1 {
		return fmt.Errorf("FEASIBILITY_CAPACITY must be at least 1")
	}
	if f.SweepInterval <= 0 {
		return fmt.Errorf("FEASIBILITY_SWEEP_INTERVAL must be positive")
	}
	switch f.Backend {
	case BackendMemory:
	case BackendRedis:
		if f.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when FEASIBILITY_BACKEND=redis")
		}
		if f.RedisDB < 0 {
			return fmt.Errorf("REDIS_DB must not be negative")
		}
	default:
		return fmt.Errorf("FEASIBILITY_BACKEND must be one of: memory, redis")
	}
	return nil
}

// validateRanking validates the ranker limits
func (c *Config) validateRanking() error {
	r := c.Ranking
	if r.MaxCandidates < 1 || r.ZoneCandidates < 1 || r.FallbackCandidates < 1 {
		return fmt.Errorf("RANKING candidate limits must be at least 1")
	}
	if r.ZoneRadiusMeters <= 0 {
		return fmt.Errorf("RANKING_ZONE_RADIUS_METERS must be positive")
	}
	return nil
}

// validateSession validates the session registry bounds
func (c *Config) validateSession() error {
	if c.Session.Capacity < 1 {
		return fmt.Errorf("SESSION_CAPACITY must be at least 1")
	}
	if c.Session.IdleTimeout <= 0 {
		return fmt.Errorf("SESSION_IDLE_TIMEOUT must be positive")
	}
	return nil
}

// validateUpstream validates a local|remote collaborator. The env prefix
// names the variables in error messages.
func validateUpstream(mode, rawURL string, timeout time.Duration, prefix string) error {
	switch mode {
	case ModeLocal:
		return nil
	case ModeRemote:
		if rawURL == "" {
			return fmt.Errorf("%s_URL is required when %s_MODE=remote", prefix, prefix)
		}
		if err := validateHTTPURL(rawURL, prefix+"_URL"); err != nil {
			return err
		}
		if timeout <= 0 {
			return fmt.Errorf("%s_TIMEOUT must be positive", prefix)
		}
		return nil
	default:
		return fmt.Errorf("%s_MODE must be one of: local, remote", prefix)
	}
}

// validateHTTPURL validates that a URL is an absolute http or https URL.
// Paths are allowed since upstream endpoints are full URLs.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	return nil
}
