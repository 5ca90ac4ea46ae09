// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package poi

import (
	"context"
	"errors"

	"github.com/tomtom215/footfall/internal/category"
	"github.com/tomtom215/footfall/internal/crowd"
	"github.com/tomtom215/footfall/internal/geo"
)

// ErrDiscoveryFailed wraps the last error after every endpoint failed.
var ErrDiscoveryFailed = errors.New("poi discovery failed")

// PointOfInterest is a tagged place discovered around an anchor. A slice of
// POIs is owned by one analysis cycle and treated as read-only once fetched;
// revenue.Annotate is the only writer, and it runs before the slice is shared.
type PointOfInterest struct {
	ID              int64             `json:"id,omitempty"`
	Category        category.Category `json:"category"`
	Name            string            `json:"name,omitempty"`
	Lat             float64           `json:"latitude"`
	Lon             float64           `json:"longitude"`
	RevenueEstimate *float64          `json:"revenue_estimate,omitempty"`
	Tags            map[string]string `json:"tags,omitempty"`
}

// Point returns the POI position.
func (p PointOfInterest) Point() geo.Point {
	return geo.Point{Lat: p.Lat, Lon: p.Lon}
}

// Profile derives the time-of-day crowd profile from the category.
func (p PointOfInterest) Profile() crowd.Profile {
	return crowd.BuildProfile(p.Category)
}

// Band classifies the POI's baseline footfall.
func (p PointOfInterest) Band() crowd.Band {
	return p.Profile().Band()
}

// Tag returns the raw value of tag key. POIs built without tags answer
// "amenity" with their category.
func (p PointOfInterest) Tag(key string) string {
	if p.Tags == nil {
		if key == "amenity" {
			return p.Category.String()
		}
		return ""
	}
	return p.Tags[key]
}

// Kind returns the first non-empty raw amenity, shop or tourism value.
func (p PointOfInterest) Kind() string {
	for _, key := range []string{"amenity", "shop", "tourism"} {
		if v := p.Tag(key); v != "" {
			return v
		}
	}
	return ""
}

// Discoverer finds POIs around a center. A non-positive radius selects the
// implementation default.
type Discoverer interface {
	Discover(ctx context.Context, center geo.Point, radiusMeters float64) ([]PointOfInterest, error)
}

// Static is a Discoverer over a fixed POI set, used by the CLI and tests.
// It returns the POIs within radius of center in their original order.
type Static []PointOfInterest

// Discover filters the set by distance.
func (s Static) Discover(_ context.Context, center geo.Point, radiusMeters float64) ([]PointOfInterest, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	out := make([]PointOfInterest, 0, len(s))
	for _, p := range s {
		if radiusMeters <= 0 || geo.Distance(center, p.Point()) <= radiusMeters {
			out = append(out, p)
		}
	}
	return out, nil
}

// Clone copies the slice so a cached result cannot be mutated through it.
func Clone(pois []PointOfInterest) []PointOfInterest {
	if pois == nil {
		return nil
	}
	out := make([]PointOfInterest, len(pois))
	copy(out, pois)
	for i := range out {
		if out[i].RevenueEstimate != nil {
			v := *out[i].RevenueEstimate
			out[i].RevenueEstimate = &v
		}
	}
	return out
}
