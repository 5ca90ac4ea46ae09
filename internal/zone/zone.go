// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

// Package zone models crowd zones: aggregated areas with a POI count,
// bucketed by intensity band. A Set is the output of one analysis and is
// replaced wholesale by the next one, never merged.
package zone

import (
	"github.com/tomtom215/footfall/internal/crowd"
	"github.com/tomtom215/footfall/internal/geo"
)

// CrowdZone is one aggregated area.
type CrowdZone struct {
	Lat      float64 `json:"latitude"`
	Lon      float64 `json:"longitude"`
	POICount int     `json:"count"`
	Sector   string  `json:"sector,omitempty"`
}

// Point returns the zone position.
func (z CrowdZone) Point() geo.Point {
	return geo.Point{Lat: z.Lat, Lon: z.Lon}
}

// Set holds the zones of one analysis by band. Zone order within a band is
// meaningful: ranking ties keep it.
type Set struct {
	High   []CrowdZone `json:"high"`
	Medium []CrowdZone `json:"medium"`
	Low    []CrowdZone `json:"low"`
}

// ByBand returns the zones of band b, or nil for an unknown band.
func (s Set) ByBand(b crowd.Band) []CrowdZone {
	switch b {
	case crowd.High:
		return s.High
	case crowd.Medium:
		return s.Medium
	case crowd.Low:
		return s.Low
	default:
		return nil
	}
}

// Add appends z to band b. Unknown bands are ignored.
func (s *Set) Add(b crowd.Band, z CrowdZone) {
	switch b {
	case crowd.High:
		s.High = append(s.High, z)
	case crowd.Medium:
		s.Medium = append(s.Medium, z)
	case crowd.Low:
		s.Low = append(s.Low, z)
	}
}

// Len returns the number of zones across all bands.
func (s Set) Len() int {
	return len(s.High) + len(s.Medium) + len(s.Low)
}

// Dominant is high if any high zone exists, else medium if any medium zone
// exists, else low.
func (s Set) Dominant() crowd.Band {
	switch {
	case len(s.High) > 0:
		return crowd.High
	case len(s.Medium) > 0:
		return crowd.Medium
	default:
		return crowd.Low
	}
}

// Validate rejects zones with invalid coordinates or negative counts.
func (s Set) Validate() error {
	for _, b := range crowd.Bands {
		for _, z := range s.ByBand(b) {
			if err := z.Point().Validate(); err != nil {
				return err
			}
			if z.POICount < 0 {
				return crowd.ErrNegativeCount
			}
		}
	}
	return nil
}
