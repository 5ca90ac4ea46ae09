// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package rank

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/footfall/internal/category"
	"github.com/tomtom215/footfall/internal/crowd"
	"github.com/tomtom215/footfall/internal/geo"
	"github.com/tomtom215/footfall/internal/logging"
	"github.com/tomtom215/footfall/internal/metrics"
	"github.com/tomtom215/footfall/internal/poi"
	"github.com/tomtom215/footfall/internal/zone"
)

// Ranker ranks candidate locations. It holds no per-call state and is safe
// for concurrent use.
type Ranker struct {
	config *Config
	logger zerolog.Logger
}

// NewRanker creates a ranker. A nil config uses DefaultConfig.
func NewRanker(cfg *Config, logger zerolog.Logger) (*Ranker, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Ranker{
		config: cfg,
		logger: logger.With().Str("component", "ranker").Logger(),
	}, nil
}

var defaultRanker = &Ranker{config: DefaultConfig(), logger: logging.WithComponent("ranker")}

// Rank ranks with the default configuration.
func Rank(anchor geo.Point, business string, intensity crowd.Band, pois []poi.PointOfInterest, zones zone.Set, allowed []category.Category) ([]Candidate, error) {
	res, err := defaultRanker.Rank(Request{
		Anchor:    anchor,
		Business:  business,
		Intensity: intensity,
		POIs:      pois,
		Zones:     zones,
		Allowed:   allowed,
	})
	if err != nil {
		return nil, err
	}
	return res.Candidates, nil
}

// Rank tries four strategies in order and returns the first non-empty one:
// direct POI matches, zone scoring, relaxed POI matches, then the anchor.
// A valid request never yields an empty result.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (r *Ranker) Rank(req Request) (*Result, error) {
	if err := req.Anchor.Validate(); err != nil {
		return nil, fmt.Errorf("%w: anchor: %w", ErrInvalidArgument, err)
	}
	business := category.NormalizeBusiness(req.Business)
	if business.Empty() {
		return nil, fmt.Errorf("%w: empty business type", ErrInvalidArgument)
	}
	if req.Intensity != "" && !req.Intensity.Valid() {
		return nil, fmt.Errorf("%w: unknown intensity %q", ErrInvalidArgument, req.Intensity)
	}

	matching := r.matching(req, business)

	tier := TierDirect
	candidates := r.direct(req, matching)
	if len(candidates) == 0 {
		tier = TierZone
		candidates = r.zones(req, matching)
	}
	if len(candidates) == 0 {
		tier = TierRelaxed
		candidates = r.relaxed(req, matching)
	}
	if len(candidates) == 0 {
		tier = TierFallback
		candidates = []Candidate{{
			Lat:        req.Anchor.Lat,
			Lon:        req.Anchor.Lon,
			SourceKind: SourceFallback,
			Label:      FallbackLabel,
		}}
	}

	metrics.RecordRankingTier(tier.String())
	r.logger.Debug().
		Str("business", business.String()).
		Str("intensity", req.Intensity.String()).
		Int("pois", len(req.POIs)).
		Int("zones", req.Zones.Len()).
		Str("tier", tier.String()).
		Int("candidates", len(candidates)).
		Msg("Ranked candidates")

	return &Result{Candidates: candidates, Tier: tier, TierName: tier.String()}, nil
}

// located is a matching POI with its distance to the anchor.
type located struct {
	poi      poi.PointOfInterest
	distance float64
}

// matching returns the POIs that match the business token and the
// allow-list, in input order, with their anchor distance.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (r *Ranker) matching(req Request, business category.Category) []located {
	out := make([]located, 0, len(req.POIs))
	for _, p := range req.POIs {
		pos := p.Point()
		if !pos.Valid() {
			continue
		}
		if !category.Matches(p.Category, business) && !category.NameMatches(p.Name, business) {
			continue
		}
		if !category.MatchesAny(p.Category, req.Allowed) {
			continue
		}
		out = append(out, located{poi: p, distance: geo.Distance(req.Anchor, pos)})
	}
	return out
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (r *Ranker) direct(req Request, matching []located) []Candidate {
	if req.Intensity == "" {
		return nearest(matching, r.config.MaxCandidates)
	}
	banded := make([]located, 0, len(matching))
	for _, m := range matching {
		if m.poi.Band() == req.Intensity {
			banded = append(banded, m)
		}
	}
	return nearest(banded, r.config.MaxCandidates)
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (r *Ranker) relaxed(_ Request, matching []located) []Candidate {
	return nearest(matching, r.config.FallbackCandidates)
}

// zones scores every zone of the target band by the matching POIs around
// it, its own POI count and its distance to the anchor.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (r *Ranker) zones(req Request, matching []located) []Candidate {
	band := req.Intensity
	if band == "" {
		band = req.Zones.Dominant()
	}
	zs := req.Zones.ByBand(band)
	if len(zs) == 0 {
		return nil
	}

	grid := geo.NewGrid[struct{}](r.config.ZoneRadiusMeters)
	for _, m := range matching {
		grid.Insert(m.poi.Point(), struct{}{})
	}

	out := make([]Candidate, 0, len(zs))
	for _, z := range zs {
		pos := z.Point()
		if !pos.Valid() {
			continue
		}
		n := grid.CountWithin(pos, r.config.ZoneRadiusMeters)
		d := geo.Distance(req.Anchor, pos)
		out = append(out, Candidate{
			Lat:            z.Lat,
			Lon:            z.Lon,
			SourceKind:     SourceZone,
			Score:          r.config.ZoneMatchWeight*float64(n) + float64(z.POICount) - r.config.DistancePenalty*d,
			Label:          fmt.Sprintf("%s crowd zone, %d POIs, %d matching nearby", band, z.POICount, n),
			DistanceMeters: d,
			Matches:        n,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > r.config.ZoneCandidates {
		out = out[:r.config.ZoneCandidates]
	}
	return out
}

// nearest sorts by distance, keeping input order on ties, and converts the
// first limit entries.
func nearest(ms []located, limit int) []Candidate {
	if len(ms) == 0 {
		return nil
	}
	sorted := append([]located(nil), ms...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].distance < sorted[j].distance })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]Candidate, len(sorted))
	for i, m := range sorted {
		label := m.poi.Name
		if label == "" {
			label = m.poi.Category.Label()
		}
		out[i] = Candidate{
			Lat:            m.poi.Lat,
			Lon:            m.poi.Lon,
			SourceKind:     SourcePOI,
			Score:          -m.distance,
			Label:          label,
			DistanceMeters: m.distance,
			Category:       m.poi.Category,
		}
	}
	return out
}
