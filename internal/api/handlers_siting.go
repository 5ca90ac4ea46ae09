// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package api

import (
	"net/http"

	"github.com/tomtom215/footfall/internal/logging"
	"github.com/tomtom215/footfall/internal/session"
)

// Recommendations handles POST /api/v1/recommendations.
//
// Ranks candidate sites for a business type around the given location,
// falling back from direct POI matches to crowd zones to the anchor itself.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	rec, err := h.service.Recommend(r.Context(), h.sessionFor(r), session.Request{
		Anchor:    req.Point(),
		Business:  req.BusinessType,
		Intensity: req.Band(),
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	NewResponseWriter(w, r).SuccessWithMeta(rec, &APIMeta{Generation: rec.Generation})
}

// Profiles handles POST /api/v1/profiles.
//
// Returns the POIs around the location with their hourly crowd profiles.
func (h *Handler) Profiles(w http.ResponseWriter, r *http.Request) {
	var req LocationRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	pois, err := h.service.Profile(r.Context(), req.Point())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	NewResponseWriter(w, r).SuccessList(pois, len(pois))
}

// Feasibility handles POST /api/v1/feasibility.
//
// Identical checks within the cache TTL are answered without re-running
// the check.
func (h *Handler) Feasibility(w http.ResponseWriter, r *http.Request) {
	var req FeasibilityRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	p := req.Point()
	result, err := h.service.Feasibility(r.Context(), p.Lat, p.Lon, req.BusinessType)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("business", sanitizeLogValue(req.BusinessType)).
		Bool("feasible", result.Feasible).
		Msg("Feasibility checked")
	NewResponseWriter(w, r).Success(result)
}

// Analysis handles POST /api/v1/analysis.
//
// Returns crowd zones by band, the dominant band, the allowed categories
// per band and a revenue forecast.
func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	out, err := h.service.Analyze(r.Context(), h.sessionFor(r), req.Point(), req.BusinessType)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	NewResponseWriter(w, r).SuccessWithMeta(out, &APIMeta{Generation: out.Generation})
}

// BusinessTypes handles GET /api/v1/business-types.
func (h *Handler) BusinessTypes(w http.ResponseWriter, r *http.Request) {
	choices := h.service.Catalog().Choices()
	NewResponseWriter(w, r).SuccessList(choices, len(choices))
}
