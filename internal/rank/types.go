// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package rank

import (
	"errors"

	"github.com/tomtom215/footfall/internal/category"
	"github.com/tomtom215/footfall/internal/crowd"
	"github.com/tomtom215/footfall/internal/geo"
	"github.com/tomtom215/footfall/internal/poi"
	"github.com/tomtom215/footfall/internal/zone"
)

// ErrInvalidArgument reports an invalid anchor, business token or intensity.
var ErrInvalidArgument = errors.New("invalid argument")

// SourceKind tells where a candidate came from.
type SourceKind string

const (
	// SourcePOI is an existing point of interest.
	SourcePOI SourceKind = "poi"
	// SourceZone is the centre of an aggregated crowd zone.
	SourceZone SourceKind = "zone"
	// SourceFallback is the anchor itself.
	SourceFallback SourceKind = "fallback"
)

// Tier identifies which strategy produced a ranking.
type Tier int

const (
	// TierDirect matches business, allow-list and intensity.
	TierDirect Tier = iota + 1
	// TierZone scores zones of the requested band.
	TierZone
	// TierRelaxed matches business and allow-list with any intensity.
	TierRelaxed
	// TierFallback returns the anchor.
	TierFallback
)

// String returns the metric label of the tier.
func (t Tier) String() string {
	switch t {
	case TierDirect:
		return "direct"
	case TierZone:
		return "zone"
	case TierRelaxed:
		return "relaxed"
	case TierFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// FallbackLabel labels the anchor candidate.
const FallbackLabel = "no ranked match"

// Candidate is one recommended location.
type Candidate struct {
	Lat        float64    `json:"latitude"`
	Lon        float64    `json:"longitude"`
	SourceKind SourceKind `json:"source_kind"`

	// Score orders candidates within a tier, higher first. POI candidates
	// carry the negated distance to the anchor in metres.
	Score float64 `json:"score"`
	Label string  `json:"label"`

	// DistanceMeters is the great-circle distance from the anchor.
	DistanceMeters float64 `json:"distance_meters"`

	// Category is set for POI candidates.
	Category category.Category `json:"category,omitempty"`

	// Matches is the number of matching POIs near a zone candidate.
	Matches int `json:"matches,omitempty"`
}

// Point returns the candidate position.
func (c Candidate) Point() geo.Point {
	return geo.Point{Lat: c.Lat, Lon: c.Lon}
}

// Request is the input of one ranking call.
type Request struct {
	// Anchor is the point the user selected.
	Anchor geo.Point

	// Business is the raw business-type token, for example "Coffee Shop".
	Business string

	// Intensity is the target band. Empty means any band for POI matching
	// and the dominant band of Zones for zone ranking.
	Intensity crowd.Band

	// POIs are the points of interest discovered around the anchor.
	POIs []poi.PointOfInterest

	// Zones is the latest zone set for the anchor.
	Zones zone.Set

	// Allowed is the optional allow-list for the target band.
	Allowed []category.Category
}

// Result is the output of one ranking call.
type Result struct {
	Candidates []Candidate `json:"candidates"`
	Tier       Tier        `json:"-"`
	TierName   string      `json:"tier"`
}
