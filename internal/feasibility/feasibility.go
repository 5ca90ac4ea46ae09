// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package feasibility

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/footfall/internal/crowd"
	"github.com/tomtom215/footfall/internal/geo"
)

var (
	// ErrUpstreamFailure marks a feasibility check that reported success=false
	// or could not be reached. Such results are never cached.
	ErrUpstreamFailure = errors.New("feasibility check failed")

	// ErrNilFetcher is returned by GetOrFetch when no fetcher was supplied.
	ErrNilFetcher = errors.New("feasibility: nil fetcher")
)

// Result is the outcome of one feasibility check. Success=false is a request
// or server failure, distinct from Feasible=false.
type Result struct {
	Success             bool       `json:"success"`
	Feasible            bool       `json:"feasible"`
	Message             string     `json:"message"`
	DominantIntensity   crowd.Band `json:"dominant_intensity,omitempty"`
	RecommendedBusiness string     `json:"recommended_business,omitempty"`
	FoundCount          int        `json:"found_count,omitempty"`
	Latitude            float64    `json:"latitude"`
	Longitude           float64    `json:"longitude"`
}

// Fetcher performs the expensive check on a cache miss.
type Fetcher func(ctx context.Context) (Result, error)

// Checker evaluates feasibility for a location and business type.
type Checker interface {
	Check(ctx context.Context, lat, lon float64, business string) (Result, error)
}

// Key builds the cache key: both coordinates rounded to 4 decimals and the
// business type lowercased and trimmed.
func Key(lat, lon float64, business string) string {
	return fmt.Sprintf("%.4f|%.4f|%s", geo.Round4(lat), geo.Round4(lon), strings.ToLower(strings.TrimSpace(business)))
}

// upstreamError converts a success=false result into an error.
func upstreamError(r Result) error {
	msg := r.Message
	if msg == "" {
		msg = "unknown error"
	}
	return fmt.Errorf("%w: %s", ErrUpstreamFailure, msg)
}
