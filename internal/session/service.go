// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/footfall/internal/analysis"
	"github.com/tomtom215/footfall/internal/catalog"
	"github.com/tomtom215/footfall/internal/category"
	"github.com/tomtom215/footfall/internal/crowd"
	"github.com/tomtom215/footfall/internal/feasibility"
	"github.com/tomtom215/footfall/internal/geo"
	"github.com/tomtom215/footfall/internal/logging"
	"github.com/tomtom215/footfall/internal/poi"
	"github.com/tomtom215/footfall/internal/rank"
	"github.com/tomtom215/footfall/internal/revenue"
)

// ErrNoDiscoverer is returned by NewService without a POI source.
var ErrNoDiscoverer = errors.New("session: discoverer is required")

// Deps are the collaborators of a Service. Only Discoverer is required.
type Deps struct {
	Discoverer poi.Discoverer

	// Analyzer defaults to an in-process analysis.Local over Discoverer.
	Analyzer analysis.Analyzer

	Ranker *rank.Ranker

	// Cache defaults to an in-memory feasibility cache.
	Cache *feasibility.Cache

	// Checker defaults to a feasibility.Evaluator over Discoverer.
	Checker feasibility.Checker

	Catalog *catalog.Catalog

	// RadiusMeters is the discovery radius; zero uses the discoverer default.
	RadiusMeters float64

	// Clock supplies the hour used by revenue forecasts.
	Clock func() time.Time
}

// Service runs full analysis cycles for an anchor. It is safe for
// concurrent use; per-user ordering is enforced through a Session.
type Service struct {
	discoverer poi.Discoverer
	analyzer   analysis.Analyzer
	local      *analysis.Local
	ranker     *rank.Ranker
	cache      *feasibility.Cache
	checker    feasibility.Checker
	catalog    *catalog.Catalog
	radius     float64
	now        func() time.Time
	log        zerolog.Logger
}

// NewService wires a Service, filling unset dependencies with defaults.
//
//nolint:gocritic // hugeParam: deps passed by value for immutability
func NewService(deps Deps) (*Service, error) {
	if deps.Discoverer == nil {
		return nil, ErrNoDiscoverer
	}
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}
	if deps.Ranker == nil {
		r, err := rank.NewRanker(nil, logging.Logger())
		if err != nil {
			return nil, err
		}
		deps.Ranker = r
	}
	if deps.Cache == nil {
		deps.Cache = feasibility.NewCache(0)
	}
	if deps.Checker == nil {
		deps.Checker = feasibility.NewEvaluator(deps.Discoverer, deps.Catalog)
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	s := &Service{
		discoverer: deps.Discoverer,
		analyzer:   deps.Analyzer,
		ranker:     deps.Ranker,
		cache:      deps.Cache,
		checker:    deps.Checker,
		catalog:    deps.Catalog,
		radius:     deps.RadiusMeters,
		now:        deps.Clock,
		log:        logging.WithComponent("session"),
	}
	if s.analyzer == nil {
		s.local = analysis.NewLocal(deps.Discoverer, nil, deps.Catalog)
		s.analyzer = s.local
	} else if l, ok := s.analyzer.(*analysis.Local); ok {
		s.local = l
	}
	return s, nil
}

// Catalog returns the business catalog.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// FeasibilityCache returns the cache fronting feasibility checks.
func (s *Service) FeasibilityCache() *feasibility.Cache {
	return s.cache
}

// Request asks for ranked locations near Anchor.
type Request struct {
	Anchor    geo.Point
	Business  string
	Intensity crowd.Band
}

// Recommendation is the outcome of one Recommend cycle.
type Recommendation struct {
	Generation uint64           `json:"generation"`
	Anchor     geo.Point        `json:"anchor"`
	Business   string           `json:"business_type"`
	Intensity  crowd.Band       `json:"crowd_intensity,omitempty"`
	Dominant   crowd.Band       `json:"dominant_intensity"`
	Tier       string           `json:"tier"`
	Candidates []rank.Candidate `json:"candidates"`
	TotalPOIs  int              `json:"total_pois"`
}

// Recommend discovers POIs, analyzes zones and ranks candidates. With a
// non-nil sess the result is applied only if no newer cycle began while
// this one ran; otherwise ErrStaleResponse is returned.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (s *Service) Recommend(ctx context.Context, sess *Session, req Request) (*Recommendation, error) {
	business := category.NormalizeBusiness(req.Business)
	if err := req.Anchor.Validate(); err != nil {
		return nil, fmt.Errorf("%w: anchor: %w", rank.ErrInvalidArgument, err)
	}
	if business.Empty() {
		return nil, fmt.Errorf("%w: empty business type", rank.ErrInvalidArgument)
	}
	if req.Intensity != "" && !req.Intensity.Valid() {
		return nil, fmt.Errorf("%w: unknown intensity %q", rank.ErrInvalidArgument, req.Intensity)
	}

	var ticket Ticket
	if sess != nil {
		ticket = sess.Begin(req.Anchor, business)
	}

	pois, result, err := s.discoverAndAnalyze(ctx, req.Anchor)
	if err != nil {
		return nil, err
	}

	ranked, err := s.ranker.Rank(rank.Request{
		Anchor:    req.Anchor,
		Business:  req.Business,
		Intensity: req.Intensity,
		POIs:      pois,
		Zones:     result.Zones,
		Allowed:   result.AllowedFor(req.Intensity),
	})
	if err != nil {
		return nil, err
	}

	rec := &Recommendation{
		Generation: ticket.Generation,
		Anchor:     req.Anchor,
		Business:   business.String(),
		Intensity:  req.Intensity,
		Dominant:   result.Dominant,
		Tier:       ranked.TierName,
		Candidates: ranked.Candidates,
		TotalPOIs:  len(pois),
	}

	if sess != nil {
		err := sess.Apply(ticket, "recommend", func(st *State) {
			st.Intensity = req.Intensity
			st.Dominant = result.Dominant
			st.POIs = pois
			st.Zones = result.Zones
			st.Allowed = result.Allowed
			st.Candidates = ranked.Candidates
		})
		if err != nil {
			s.log.Debug().Uint64("generation", ticket.Generation).Msg("Discarded superseded recommendation")
			return nil, err
		}
	}

	s.log.Info().
		Str("anchor", req.Anchor.String()).
		Str("business", business.String()).
		Str("tier", ranked.TierName).
		Int("candidates", len(ranked.Candidates)).
		Msg("Recommendation ready")
	return rec, nil
}

// ProfiledPOI is a POI with its derived crowd profile.
type ProfiledPOI struct {
	poi.PointOfInterest
	Profile crowd.Profile `json:"crowd_profile"`
	Band    crowd.Band    `json:"crowd_intensity"`
}

// Profile discovers the POIs around anchor and derives their profiles.
// Profiles are recomputed on every call.
func (s *Service) Profile(ctx context.Context, anchor geo.Point) ([]ProfiledPOI, error) {
	if err := anchor.Validate(); err != nil {
		return nil, err
	}
	pois, err := s.discoverer.Discover(ctx, anchor, s.radius)
	if err != nil {
		return nil, err
	}
	out := make([]ProfiledPOI, len(pois))
	for i, p := range pois {
		profile := p.Profile()
		out[i] = ProfiledPOI{PointOfInterest: p, Profile: profile, Band: profile.Band()}
	}
	return out, nil
}

// Feasibility checks business at a location through the cache, so repeated
// checks within the TTL reach the checker once.
func (s *Service) Feasibility(ctx context.Context, lat, lon float64, business string) (feasibility.Result, error) {
	return s.cache.GetOrFetch(ctx, lat, lon, business, feasibility.Fetch(s.checker, lat, lon, business))
}

// Analysis is a full area analysis with revenue estimates.
type Analysis struct {
	*analysis.Result
	Generation uint64                `json:"generation"`
	Business   string                `json:"business_type"`
	Revenue    revenue.Forecast      `json:"revenue"`
	Sites      []revenue.Site        `json:"recommended_sites"`
	POIs       []poi.PointOfInterest `json:"pois"`
}

// Analyze buckets the area around anchor and forecasts revenue for
// business. An empty business forecasts the predicted primary business.
func (s *Service) Analyze(ctx context.Context, sess *Session, anchor geo.Point, business string) (*Analysis, error) {
	if err := anchor.Validate(); err != nil {
		return nil, err
	}
	normalized := category.NormalizeBusiness(business)

	var ticket Ticket
	if sess != nil {
		ticket = sess.Begin(anchor, normalized)
	}

	pois, result, err := s.discoverAndAnalyze(ctx, anchor)
	if err != nil {
		return nil, err
	}

	target := normalized.String()
	if target == "" && result.Prediction != nil {
		target = result.Prediction.Primary.String()
	}

	hour := s.now().Hour()
	annotated := poi.Clone(pois)
	revenue.Annotate(annotated, hour)
	sites, err := revenue.Sites(anchor, annotated, revenue.MaxSites, hour)
	if err != nil {
		return nil, err
	}

	out := &Analysis{
		Result:     result,
		Generation: ticket.Generation,
		Business:   target,
		Revenue:    revenue.Estimate(annotated, target, hour),
		Sites:      sites,
		POIs:       annotated,
	}

	if sess != nil {
		err := sess.Apply(ticket, "analyze", func(st *State) {
			st.Dominant = result.Dominant
			st.POIs = annotated
			st.Zones = result.Zones
			st.Allowed = result.Allowed
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// discoverAndAnalyze fetches POIs and zones for one cycle. A local
// analyzer reuses the discovered POIs; a remote one runs concurrently.
func (s *Service) discoverAndAnalyze(ctx context.Context, anchor geo.Point) ([]poi.PointOfInterest, *analysis.Result, error) {
	if s.local != nil {
		pois, err := s.discoverer.Discover(ctx, anchor, s.radius)
		if err != nil {
			return nil, nil, err
		}
		result, err := s.local.FromPOIs(anchor, pois)
		if err != nil {
			return nil, nil, err
		}
		return pois, result, nil
	}

	var (
		pois   []poi.PointOfInterest
		result *analysis.Result
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pois, err = s.discoverer.Discover(gctx, anchor, s.radius)
		return err
	})
	g.Go(func() error {
		var err error
		result, err = s.analyzer.Analyze(gctx, anchor)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return pois, result, nil
}
