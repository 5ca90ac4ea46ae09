// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/footfall/internal/analysis"
	"github.com/tomtom215/footfall/internal/crowd"
	"github.com/tomtom215/footfall/internal/feasibility"
	"github.com/tomtom215/footfall/internal/geo"
	"github.com/tomtom215/footfall/internal/logging"
	"github.com/tomtom215/footfall/internal/poi"
	"github.com/tomtom215/footfall/internal/rank"
	"github.com/tomtom215/footfall/internal/session"
)

// ErrEmptyBody is returned for a POST without a JSON body.
var ErrEmptyBody = errors.New("request body is required")

// upstreamName names the collaborator behind a transport error, or "" when
// err is not a transport error.
func upstreamName(err error) string {
	switch {
	case errors.Is(err, poi.ErrDiscoveryFailed):
		return "poi-discovery"
	case errors.Is(err, analysis.ErrAnalysisFailed):
		return "crowd-analysis"
	case errors.Is(err, feasibility.ErrUpstreamFailure):
		return "feasibility"
	default:
		return ""
	}
}

func isInvalidInput(err error) bool {
	return errors.Is(err, rank.ErrInvalidArgument) ||
		errors.Is(err, geo.ErrInvalidCoordinate) ||
		errors.Is(err, crowd.ErrNegativeCount) ||
		errors.Is(err, crowd.ErrUnknownBand)
}

// respondServiceError maps a service error onto the response envelope:
// invalid input is 400, upstream failures 502, superseded session cycles
// 409 and everything else 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)
	switch {
	case isInvalidInput(err):
		rw.ValidationError(err.Error(), nil)
	case errors.Is(err, session.ErrStaleResponse):
		rw.Conflict("A newer request from this session superseded this one")
	case upstreamName(err) != "":
		rw.ExternalServiceError(upstreamName(err), err)
	case errors.Is(err, context.DeadlineExceeded):
		rw.ExternalServiceError("timeout", err)
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful can be written.
		logging.Ctx(r.Context()).Debug().Msg("Request canceled by client")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", sanitizeLogValue(r.URL.Path)).Msg("Unhandled service error")
		rw.InternalError("An internal error occurred")
	}
}
