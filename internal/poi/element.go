// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package poi

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/footfall/internal/category"
	"github.com/tomtom215/footfall/internal/geo"
)

// LatLon is a bare coordinate pair in Overpass notation.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Element is a raw Overpass-style record. Its position is either {lat, lon}
// or, for ways and relations queried with "out center", {center: {lat, lon}}.
type Element struct {
	Type   string            `json:"type,omitempty"`
	ID     int64             `json:"id,omitempty"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *LatLon           `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`

	// RevenueEstimate is accepted from callers that already annotated POIs.
	RevenueEstimate *float64 `json:"revenue_estimate,omitempty"`
}

// Position resolves the element coordinate, preferring direct lat/lon.
func (e Element) Position() (geo.Point, bool) {
	var p geo.Point
	switch {
	case e.Lat != nil && e.Lon != nil:
		p = geo.Point{Lat: *e.Lat, Lon: *e.Lon}
	case e.Center != nil:
		p = geo.Point{Lat: e.Center.Lat, Lon: e.Center.Lon}
	default:
		return geo.Point{}, false
	}
	return p, p.Valid()
}

// ToPOI converts the element. Elements without a category tag or a valid
// position are rejected.
func (e Element) ToPOI() (PointOfInterest, bool) {
	pos, ok := e.Position()
	if !ok {
		return PointOfInterest{}, false
	}
	c := category.FromTags(e.Tags)
	if c.Empty() {
		return PointOfInterest{}, false
	}
	return PointOfInterest{
		ID:              e.ID,
		Category:        c,
		Name:            e.Tags["name"],
		Lat:             pos.Lat,
		Lon:             pos.Lon,
		RevenueEstimate: e.RevenueEstimate,
		Tags:            e.Tags,
	}, true
}

// elementEnvelope is the Overpass response body shape.
type elementEnvelope struct {
	Elements []Element `json:"elements"`
}

// DecodeElements parses either a bare JSON array of elements or an Overpass
// response object {"elements": [...]} and converts every usable element.
// Unusable elements are skipped; the input order is preserved.
func DecodeElements(data []byte) ([]PointOfInterest, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("decode elements: empty input")
	}

	var elements []Element
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &elements); err != nil {
			return nil, fmt.Errorf("decode elements: %w", err)
		}
	} else {
		var env elementEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("decode elements: %w", err)
		}
		elements = env.Elements
	}

	out := make([]PointOfInterest, 0, len(elements))
	for _, e := range elements {
		if p, ok := e.ToPOI(); ok {
			out = append(out, p)
		}
	}
	return out, nil
}
