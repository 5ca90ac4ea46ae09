// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package poi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/serjvanilla/go-overpass"
	"golang.org/x/time/rate"

	"github.com/tomtom215/footfall/internal/cache"
	"github.com/tomtom215/footfall/internal/category"
	"github.com/tomtom215/footfall/internal/geo"
	"github.com/tomtom215/footfall/internal/logging"
	"github.com/tomtom215/footfall/internal/metrics"
	"github.com/tomtom215/footfall/internal/resilience"
)

// DefaultEndpoints are the public Overpass mirrors, tried in order.
var DefaultEndpoints = []string{
	"https://overpass-api.de/api/interpreter",
	"https://lz4.overpass-api.de/api/interpreter",
	"https://z.overpass-api.de/api/interpreter",
	"https://overpass.openstreetmap.ru/api/interpreter",
}

// Config configures an OverpassDiscoverer.
type Config struct {
	Endpoints         []string
	Timeout           time.Duration
	MaxParallel       int
	CacheTTL          time.Duration
	CacheCapacity     int
	RadiusMeters      float64
	RequestsPerSecond float64
	Burst             int
	UserAgent         string
	Breaker           resilience.Settings
}

// DefaultConfig returns production defaults: 30s timeout, 15m cache, 5 km
// radius, one request per second.
func DefaultConfig() Config {
	return Config{
		Endpoints:         append([]string(nil), DefaultEndpoints...),
		Timeout:           30 * time.Second,
		MaxParallel:       2,
		CacheTTL:          15 * time.Minute,
		CacheCapacity:     256,
		RadiusMeters:      5000,
		RequestsPerSecond: 1,
		Burst:             2,
		UserAgent:         "footfall/1.0",
	}
}

// OverpassDiscoverer discovers POIs through the Overpass API. Endpoints are
// tried in order and the first success wins. Successful results are cached
// by query hash; failures are never cached.
type OverpassDiscoverer struct {
	cfg       Config
	transport http.RoundTripper
	limiter   *rate.Limiter
	breakers  map[string]*resilience.Breaker[overpass.Result]
	cache     *cache.LRU[[]PointOfInterest]
	log       zerolog.Logger
}

// NewOverpassDiscoverer creates a discoverer. Zero config fields take the
// values of DefaultConfig.
func NewOverpassDiscoverer(cfg Config) *OverpassDiscoverer {
	def := DefaultConfig()
	if len(cfg.Endpoints) == 0 {
		cfg.Endpoints = def.Endpoints
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = def.MaxParallel
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = def.CacheTTL
	}
	if cfg.CacheCapacity <= 0 {
		cfg.CacheCapacity = def.CacheCapacity
	}
	if cfg.RadiusMeters <= 0 {
		cfg.RadiusMeters = def.RadiusMeters
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = def.RequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}

	breakers := make(map[string]*resilience.Breaker[overpass.Result], len(cfg.Endpoints))
	for _, ep := range cfg.Endpoints {
		breakers[ep] = resilience.NewBreaker[overpass.Result]("overpass:"+ep, cfg.Breaker)
	}

	return &OverpassDiscoverer{
		cfg:       cfg,
		transport: http.DefaultTransport,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		breakers:  breakers,
		cache:     cache.NewLRU[[]PointOfInterest](cfg.CacheCapacity, cfg.CacheTTL),
		log:       logging.WithComponent("discovery"),
	}
}

// BuildQuery renders the Overpass QL query for amenities, shops and tourism
// features around center.
func BuildQuery(center geo.Point, radiusMeters float64) string {
	around := fmt.Sprintf("(around:%.0f,%.6f,%.6f)", radiusMeters, center.Lat, center.Lon)
	return fmt.Sprintf(`[out:json][timeout:25];
(
  node["amenity"]%[1]s;
  way["amenity"]%[1]s;
  node["shop"]%[1]s;
  way["shop"]%[1]s;
  node["tourism"]%[1]s;
  way["tourism"]%[1]s;
);
out body;
>;
out skel qt;`, around)
}

// Discover returns the POIs around center sorted by element ID.
func (d *OverpassDiscoverer) Discover(ctx context.Context, center geo.Point, radiusMeters float64) ([]PointOfInterest, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if radiusMeters <= 0 {
		radiusMeters = d.cfg.RadiusMeters
	}

	query := BuildQuery(center, radiusMeters)
	key := queryKey(query)
	if cached, ok := d.cache.Get(key); ok {
		metrics.DiscoveryCacheHits.Inc()
		return Clone(cached), nil
	}

	var lastErr error
	for _, endpoint := range d.cfg.Endpoints {
		if err := d.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDiscoveryFailed, err)
		}

		result, err := d.query(ctx, endpoint, query)
		if err != nil {
			lastErr = err
			logging.Ctx(ctx).Warn().Err(err).Str("endpoint", endpoint).Msg("Overpass endpoint failed")
			if ctx.Err() != nil {
				break
			}
			continue
		}

		pois := convertResult(&result)
		d.cache.Add(key, pois)
		d.log.Debug().Str("endpoint", endpoint).Int("pois", len(pois)).Msg("Discovery complete")
		return Clone(pois), nil
	}

	if lastErr == nil {
		lastErr = errors.New("no endpoints configured")
	}
	return nil, fmt.Errorf("%w: %w", ErrDiscoveryFailed, lastErr)
}

func (d *OverpassDiscoverer) query(ctx context.Context, endpoint, query string) (overpass.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	// go-overpass has no context parameter, so the request context is bound
	// by the transport.
	httpClient := &http.Client{Transport: &contextTransport{ctx: ctx, base: d.transport, userAgent: d.cfg.UserAgent}}
	client := overpass.NewWithSettings(endpoint, d.cfg.MaxParallel, httpClient)

	start := time.Now()
	result, err := d.breakers[endpoint].Execute(func() (overpass.Result, error) {
		return client.Query(query)
	})
	metrics.RecordOverpassQuery(endpoint, time.Since(start), err)
	if err != nil {
		return overpass.Result{}, fmt.Errorf("overpass query %s: %w", endpoint, err)
	}
	return result, nil
}

// contextTransport attaches ctx and the User-Agent to every request.
type contextTransport struct {
	ctx       context.Context
	base      http.RoundTripper
	userAgent string
}

func (t *contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(t.ctx)
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}

// convertResult keeps tagged nodes and ways. A way is placed at the centroid
// of its member nodes.
func convertResult(result *overpass.Result) []PointOfInterest {
	pois := make([]PointOfInterest, 0, len(result.Nodes)+len(result.Ways))

	for _, node := range result.Nodes {
		p, ok := newPOI(node.ID, node.Tags, geo.Point{Lat: node.Lat, Lon: node.Lon})
		if ok {
			pois = append(pois, p)
		}
	}

	for _, way := range result.Ways {
		points := make([]geo.Point, 0, len(way.Nodes))
		for _, node := range way.Nodes {
			// unresolved member references stay at the zero position
			if node == nil || (node.Lat == 0 && node.Lon == 0) {
				continue
			}
			points = append(points, geo.Point{Lat: node.Lat, Lon: node.Lon})
		}
		center, ok := geo.Centroid(points)
		if !ok {
			continue
		}
		if p, ok := newPOI(way.ID, way.Tags, center); ok {
			pois = append(pois, p)
		}
	}

	sort.SliceStable(pois, func(i, j int) bool { return pois[i].ID < pois[j].ID })
	return pois
}

func newPOI(id int64, tags map[string]string, pos geo.Point) (PointOfInterest, bool) {
	c := category.FromTags(tags)
	if c.Empty() || !pos.Valid() {
		return PointOfInterest{}, false
	}
	return PointOfInterest{
		ID:       id,
		Category: c,
		Name:     tags["name"],
		Lat:      pos.Lat,
		Lon:      pos.Lon,
		Tags:     tags,
	}, true
}

func queryKey(query string) string {
	sum := sha256.Sum256([]byte(query))
	return hex.EncodeToString(sum[:])
}
