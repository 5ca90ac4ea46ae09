// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package zone

import (
	"fmt"
	"sort"

	"github.com/tomtom215/footfall/internal/crowd"
	"github.com/tomtom215/footfall/internal/geo"
	"github.com/tomtom215/footfall/internal/poi"
)

// Aggregation defaults.
const (
	DefaultRadiusMeters = 5000.0
	HighSectorCount     = 15
	MediumSectorCount   = 5

	rings        = 3
	angleSectors = 3
)

// Aggregator buckets POIs into sector zones around an anchor: 3 distance
// rings of radius/3 each, crossed with 3 angular sectors of 120 degrees.
type Aggregator struct {
	RadiusMeters float64
}

// NewAggregator returns an aggregator for radiusMeters, default 5000.
func NewAggregator(radiusMeters float64) *Aggregator {
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}
	return &Aggregator{RadiusMeters: radiusMeters}
}

// SectorBand classifies a sector by its POI count: 15 or more is high,
// 5 or more medium, anything else low.
func SectorBand(count int) crowd.Band {
	switch {
	case count >= HighSectorCount:
		return crowd.High
	case count >= MediumSectorCount:
		return crowd.Medium
	default:
		return crowd.Low
	}
}

// Aggregate builds the zone set around anchor. POIs beyond the radius are
// ignored. Each sector becomes one zone placed at the centroid of its POIs;
// zones are emitted in sector-key order. When POIs exist but none falls
// inside the radius, a single high zone at the anchor carries the POI total.
func (a *Aggregator) Aggregate(anchor geo.Point, pois []poi.PointOfInterest) (Set, error) {
	if err := anchor.Validate(); err != nil {
		return Set{}, err
	}
	radius := a.RadiusMeters
	if radius <= 0 {
		radius = DefaultRadiusMeters
	}
	ringWidth := radius / rings

	sectors := make(map[string][]geo.Point)
	for _, p := range pois {
		pos := p.Point()
		if !pos.Valid() {
			continue
		}
		d := geo.Distance(anchor, pos)
		if d > radius {
			continue
		}
		ring := min(int(d/ringWidth), rings-1)
		sector := min(int(geo.PlanarAngle(anchor, pos)/(360.0/angleSectors)), angleSectors-1)
		key := fmt.Sprintf("%d_%d", ring, sector)
		sectors[key] = append(sectors[key], pos)
	}

	var set Set
	if len(sectors) == 0 {
		if len(pois) > 0 {
			set.Add(crowd.High, CrowdZone{Lat: anchor.Lat, Lon: anchor.Lon, POICount: len(pois), Sector: "center"})
		}
		return set, nil
	}

	keys := make([]string, 0, len(sectors))
	for k := range sectors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		points := sectors[k]
		c, _ := geo.Centroid(points)
		set.Add(SectorBand(len(points)), CrowdZone{
			Lat:      c.Lat,
			Lon:      c.Lon,
			POICount: len(points),
			Sector:   k,
		})
	}
	return set, nil
}
