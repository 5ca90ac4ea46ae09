// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

// Package analysis produces crowd zones by band for an anchor, together
// with the per-band business catalog and a business prediction. Two
// implementations exist: Local aggregates discovered POIs in process, Remote
// calls an external analysis service over HTTP.
package analysis

import (
	"context"
	"errors"

	"github.com/tomtom215/footfall/internal/catalog"
	"github.com/tomtom215/footfall/internal/category"
	"github.com/tomtom215/footfall/internal/crowd"
	"github.com/tomtom215/footfall/internal/geo"
	"github.com/tomtom215/footfall/internal/poi"
	"github.com/tomtom215/footfall/internal/zone"
)

// ErrAnalysisFailed wraps transport and decoding failures of an analysis.
var ErrAnalysisFailed = errors.New("crowd analysis failed")

// Analyzer turns an anchor into a zone set.
type Analyzer interface {
	Analyze(ctx context.Context, anchor geo.Point) (*Result, error)
}

// Alternative is a business suited to another band.
type Alternative struct {
	Business  category.Category `json:"business"`
	Intensity crowd.Band        `json:"intensity"`
}

// Prediction is the recommended business for the dominant band.
type Prediction struct {
	Primary      category.Category   `json:"primary"`
	Reasoning    string              `json:"reasoning"`
	Alternatives []Alternative       `json:"alternatives"`
	BestTimes    string              `json:"best_times"`
	Choices      []category.Category `json:"choices"`
	Intensity    crowd.Band          `json:"intensity"`
	Area         catalog.Area        `json:"area,omitempty"`
}

// Result is one analysis of one anchor.
type Result struct {
	Anchor     geo.Point   `json:"anchor"`
	Zones      zone.Set    `json:"zones"`
	Dominant   crowd.Band  `json:"dominant_intensity"`
	TotalPOIs  int         `json:"total_pois"`
	Prediction *Prediction `json:"business_prediction,omitempty"`

	// Allowed is the band to categories map used as the ranking allow-list.
	Allowed map[crowd.Band][]category.Category `json:"business_by_intensity"`

	// POIs is set by Local only.
	POIs []poi.PointOfInterest `json:"-"`
}

// AllowedFor returns the allow-list for band, nil when none was supplied.
func (r *Result) AllowedFor(band crowd.Band) []category.Category {
	if r == nil || r.Allowed == nil {
		return nil
	}
	if band == "" {
		band = r.Dominant
	}
	return r.Allowed[band]
}

var reasoning = map[crowd.Band]string{
	crowd.High:   "High foot traffic in commercial area, ideal for food, retail and services.",
	crowd.Medium: "Moderate crowd in residential area, good for essentials like grocery or pharmacy.",
	crowd.Low:    "Low traffic in outskirts, suited for storage, warehouse or niche ventures.",
}

var bestTimes = map[crowd.Band]string{
	crowd.High:   "Peak hours 10am to 8pm. Morning (6 to 10am) has lower competition.",
	crowd.Medium: "Steady flow 9am to 7pm. Evening slightly busier.",
	crowd.Low:    "Flexible timing. Consider proximity to transport for visibility.",
}

// maxAlternatives caps Prediction.Alternatives.
const maxAlternatives = 2

// Predict builds the prediction for dominant in area. Alternatives are the
// defaults of the other bands, deduplicated against the primary.
func Predict(c *catalog.Catalog, dominant crowd.Band, area catalog.Area) *Prediction {
	primary := c.Predict(dominant, area)
	p := &Prediction{
		Primary:      primary,
		Reasoning:    reasoning[dominant],
		BestTimes:    bestTimes[dominant],
		Choices:      c.Allowed(dominant),
		Intensity:    dominant,
		Area:         area,
		Alternatives: []Alternative{},
	}
	for _, b := range crowd.Bands {
		if b == dominant || len(p.Alternatives) == maxAlternatives {
			continue
		}
		alt := c.Predict(b, catalog.AreaNone)
		if alt == primary || containsBusiness(p.Alternatives, alt) {
			continue
		}
		p.Alternatives = append(p.Alternatives, Alternative{Business: alt, Intensity: b})
	}
	return p
}

func containsBusiness(alts []Alternative, c category.Category) bool {
	for _, a := range alts {
		if a.Business == c {
			return true
		}
	}
	return false
}
