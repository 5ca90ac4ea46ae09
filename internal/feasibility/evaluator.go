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

	"github.com/tomtom215/footfall/internal/analysis"
	"github.com/tomtom215/footfall/internal/catalog"
	"github.com/tomtom215/footfall/internal/category"
	"github.com/tomtom215/footfall/internal/crowd"
	"github.com/tomtom215/footfall/internal/geo"
	"github.com/tomtom215/footfall/internal/poi"
	"github.com/tomtom215/footfall/internal/zone"
)

// localProofCount is how many similar businesses nearby prove feasibility.
const localProofCount = 2

// Evaluator checks feasibility in process from discovered POIs.
type Evaluator struct {
	discoverer poi.Discoverer
	analyzer   *analysis.Local
	catalog    *catalog.Catalog
	radius     float64
}

// NewEvaluator returns an evaluator over d. A nil catalog uses the default.
func NewEvaluator(d poi.Discoverer, c *catalog.Catalog) *Evaluator {
	if c == nil {
		c = catalog.Default()
	}
	agg := zone.NewAggregator(zone.DefaultRadiusMeters)
	return &Evaluator{
		discoverer: d,
		analyzer:   analysis.NewLocal(d, agg, c),
		catalog:    c,
		radius:     agg.RadiusMeters,
	}
}

// Check discovers POIs around the location and decides. A business is
// feasible when it is allowed for the dominant band, is the recommended
// business, has at least two similar businesses nearby, or is a shop,
// store or food business in a high band area. An empty business returns
// the recommendation and is always feasible.
func (e *Evaluator) Check(ctx context.Context, lat, lon float64, business string) (Result, error) {
	anchor := geo.Point{Lat: lat, Lon: lon}
	if err := anchor.Validate(); err != nil {
		return Result{}, err
	}
	pois, err := e.discoverer.Discover(ctx, anchor, e.radius)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
	}
	a, err := e.analyzer.FromPOIs(anchor, pois)
	if err != nil {
		return Result{}, err
	}
	return e.decide(anchor, business, a), nil
}

func (e *Evaluator) decide(anchor geo.Point, business string, a *analysis.Result) Result {
	dominant := a.Dominant
	recommended := e.catalog.Predict(dominant, catalog.InferArea(a.POIs))
	res := Result{
		Success:             true,
		DominantIntensity:   dominant,
		RecommendedBusiness: recommended.String(),
		Latitude:            anchor.Lat,
		Longitude:           anchor.Lon,
	}

	business = strings.TrimSpace(business)
	if business == "" {
		res.Feasible = true
		res.Message = fmt.Sprintf("Location analyzed. Dominant crowd intensity is %s. We recommend starting a %s here.", dominant, recommended.Label())
		return res
	}

	normalized := category.NormalizeBusiness(business)
	target := category.Canonical(normalized)
	found := countSimilar(a.POIs, normalized, target)
	res.FoundCount = found

	allowed := e.catalog.Allowed(dominant)
	inCatalog := containsCategory(allowed, normalized) || containsCategory(allowed, target)
	isRecommended := normalized == recommended || target == recommended
	hasProof := found >= localProofCount

	res.Feasible = inCatalog || isRecommended || hasProof
	if !res.Feasible && dominant == crowd.High && isRetail(normalized) {
		res.Feasible = true
	}

	switch {
	case res.Feasible && hasProof:
		res.Message = fmt.Sprintf("Feasible: We found %d similar businesses in the area, confirming this is a strong location for a %q.", found, business)
	case res.Feasible:
		res.Message = fmt.Sprintf("Feasible: A %q matches the %s crowd profile and development level of this area.", business, dominant)
	default:
		res.Message = fmt.Sprintf("Not feasible: The area currently has %s intensity and low indicators for %q. Consider a %s instead.", dominant, business, recommended.Label())
	}
	return res
}

// countSimilar counts POIs whose raw type contains the business or its
// canonical form, or whose name contains the business.
func countSimilar(pois []poi.PointOfInterest, normalized, target category.Category) int {
	n := 0
	for _, p := range pois {
		kind := strings.ToLower(p.Kind())
		name := strings.ToLower(p.Name)
		if strings.Contains(kind, normalized.String()) || strings.Contains(kind, target.String()) || strings.Contains(name, normalized.String()) {
			n++
		}
	}
	return n
}

func containsCategory(list []category.Category, c category.Category) bool {
	for _, x := range list {
		if x == c {
			return true
		}
	}
	return false
}

func isRetail(c category.Category) bool {
	s := c.String()
	return strings.Contains(s, "shop") || strings.Contains(s, "store") || strings.Contains(s, "food")
}
