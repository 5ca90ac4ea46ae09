// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package api

import (
	"github.com/tomtom215/footfall/internal/crowd"
	"github.com/tomtom215/footfall/internal/geo"
)

// Request bodies for the POST endpoints, validated with
// go-playground/validator. Coordinates are pointers so that a missing
// field is distinguishable from the equator or the prime meridian.
//
// Custom tags registered by package validation:
//   - band: low, medium or high (case-insensitive)
//   - business: a non-empty business type after normalization

// LocationRequest is the body of POST /profiles.
type LocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// Point returns the validated coordinates.
func (l LocationRequest) Point() geo.Point {
	return geo.Point{Lat: *l.Latitude, Lon: *l.Longitude}
}

// RecommendationRequest is the body of POST /recommendations.
type RecommendationRequest struct {
	LocationRequest
	BusinessType   string `json:"business_type" validate:"required,business,max=64"`
	CrowdIntensity string `json:"crowd_intensity" validate:"omitempty,band"`
}

// Band returns the parsed intensity, "" when absent.
func (r RecommendationRequest) Band() crowd.Band {
	// validated by the band tag
	b, _ := crowd.ParseBand(r.CrowdIntensity)
	return b
}

// FeasibilityRequest is the body of POST /feasibility.
type FeasibilityRequest struct {
	LocationRequest
	BusinessType string `json:"business_type" validate:"required,business,max=64"`
}

// AnalysisRequest is the body of POST /analysis. Without a business type
// the revenue forecast is made for the predicted business.
type AnalysisRequest struct {
	LocationRequest
	BusinessType string `json:"business_type" validate:"omitempty,business,max=64"`
}
