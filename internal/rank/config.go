// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package rank

import "fmt"

// Config contains the ranking limits.
type Config struct {
	// MaxCandidates caps direct POI matches.
	MaxCandidates int `json:"max_candidates"`

	// ZoneCandidates caps zone candidates.
	ZoneCandidates int `json:"zone_candidates"`

	// FallbackCandidates caps relaxed POI matches.
	FallbackCandidates int `json:"fallback_candidates"`

	// ZoneRadiusMeters is the radius around a zone in which matching
	// POIs are counted.
	ZoneRadiusMeters float64 `json:"zone_radius_meters"`

	// ZoneMatchWeight multiplies the matching POI count of a zone.
	ZoneMatchWeight float64 `json:"zone_match_weight"`

	// DistancePenalty is subtracted per metre of zone distance.
	DistancePenalty float64 `json:"distance_penalty"`
}

// DefaultConfig returns the production limits.
func DefaultConfig() *Config {
	return &Config{
		MaxCandidates:      10,
		ZoneCandidates:     5,
		FallbackCandidates: 5,
		ZoneRadiusMeters:   900,
		ZoneMatchWeight:    1000,
		DistancePenalty:    0.001,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.MaxCandidates < 1 {
		return fmt.Errorf("max_candidates must be at least 1, got %d", c.MaxCandidates)
	}
	if c.ZoneCandidates < 1 {
		return fmt.Errorf("zone_candidates must be at least 1, got %d", c.ZoneCandidates)
	}
	if c.FallbackCandidates < 1 {
		return fmt.Errorf("fallback_candidates must be at least 1, got %d", c.FallbackCandidates)
	}
	if c.ZoneRadiusMeters <= 0 {
		return fmt.Errorf("zone_radius_meters must be positive, got %v", c.ZoneRadiusMeters)
	}
	if c.ZoneMatchWeight < 0 || c.DistancePenalty < 0 {
		return fmt.Errorf("weights must be non-negative")
	}
	return nil
}
