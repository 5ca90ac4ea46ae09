// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/footfall/internal/catalog"
	"github.com/tomtom215/footfall/internal/geo"
	"github.com/tomtom215/footfall/internal/logging"
	"github.com/tomtom215/footfall/internal/poi"
	"github.com/tomtom215/footfall/internal/zone"
)

// Local analyzes an anchor in process from discovered POIs.
type Local struct {
	discoverer poi.Discoverer
	aggregator *zone.Aggregator
	catalog    *catalog.Catalog
	log        zerolog.Logger
}

// NewLocal returns a Local analyzer. A nil catalog uses catalog.Default.
func NewLocal(d poi.Discoverer, agg *zone.Aggregator, c *catalog.Catalog) *Local {
	if agg == nil {
		agg = zone.NewAggregator(zone.DefaultRadiusMeters)
	}
	if c == nil {
		c = catalog.Default()
	}
	return &Local{discoverer: d, aggregator: agg, catalog: c, log: logging.WithComponent("analysis")}
}

// Analyze discovers POIs within the aggregation radius and buckets them.
func (l *Local) Analyze(ctx context.Context, anchor geo.Point) (*Result, error) {
	if err := anchor.Validate(); err != nil {
		return nil, err
	}
	pois, err := l.discoverer.Discover(ctx, anchor, l.aggregator.RadiusMeters)
	if err != nil {
		if errors.Is(err, geo.ErrInvalidCoordinate) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	return l.FromPOIs(anchor, pois)
}

// FromPOIs analyzes an already discovered POI set.
func (l *Local) FromPOIs(anchor geo.Point, pois []poi.PointOfInterest) (*Result, error) {
	set, err := l.aggregator.Aggregate(anchor, pois)
	if err != nil {
		return nil, err
	}
	dominant := set.Dominant()
	area := catalog.InferArea(pois)

	l.log.Debug().
		Str("anchor", anchor.String()).
		Int("pois", len(pois)).
		Int("zones", set.Len()).
		Str("dominant", dominant.String()).
		Str("area", string(area)).
		Msg("Aggregated crowd zones")

	return &Result{
		Anchor:     anchor,
		Zones:      set,
		Dominant:   dominant,
		TotalPOIs:  len(pois),
		Prediction: Predict(l.catalog, dominant, area),
		Allowed:    l.catalog.ByBand(),
		POIs:       pois,
	}, nil
}
