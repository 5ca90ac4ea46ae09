// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package analysis

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/footfall/internal/category"
	"github.com/tomtom215/footfall/internal/crowd"
	"github.com/tomtom215/footfall/internal/geo"
	"github.com/tomtom215/footfall/internal/resilience"
	"github.com/tomtom215/footfall/internal/zone"
)

// RemoteConfig configures a Remote analyzer.
type RemoteConfig struct {
	URL     string
	Timeout time.Duration
	Breaker resilience.Settings
}

// Remote calls an external crowd analysis service.
type Remote struct {
	url     string
	client  *http.Client
	breaker *resilience.Breaker[*Result]
}

// NewRemote returns a Remote analyzer. Timeout defaults to 30s.
func NewRemote(cfg RemoteConfig) *Remote {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Remote{
		url:     cfg.URL,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: resilience.NewBreaker[*Result]("analysis", cfg.Breaker),
	}
}

type remoteRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type remoteResponse struct {
	Success    bool                `json:"success"`
	Error      string              `json:"error,omitempty"`
	Message    string              `json:"message,omitempty"`
	High       []zone.CrowdZone    `json:"high_intensity"`
	Medium     []zone.CrowdZone    `json:"medium_intensity"`
	Low        []zone.CrowdZone    `json:"low_intensity"`
	TotalPOIs  int                 `json:"total_pois"`
	Prediction *Prediction         `json:"business_prediction"`
	ByBand     map[string][]string `json:"business_by_intensity"`
}

// Analyze posts the anchor and converts the response. A response with
// success=false, a non-200 status or malformed zones is ErrAnalysisFailed.
func (r *Remote) Analyze(ctx context.Context, anchor geo.Point) (*Result, error) {
	if err := anchor.Validate(); err != nil {
		return nil, err
	}
	res, err := r.breaker.Execute(func() (*Result, error) {
		var resp remoteResponse
		if err := resilience.PostJSON(ctx, r.client, r.url, remoteRequest{Latitude: anchor.Lat, Longitude: anchor.Lon}, &resp); err != nil {
			return nil, err
		}
		return resp.toResult(anchor)
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	return res, nil
}

func (resp *remoteResponse) toResult(anchor geo.Point) (*Result, error) {
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = resp.Message
		}
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("service reported failure: %s", msg)
	}

	set := zone.Set{High: resp.High, Medium: resp.Medium, Low: resp.Low}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("invalid zone in response: %w", err)
	}

	res := &Result{
		Anchor:     anchor,
		Zones:      set,
		Dominant:   set.Dominant(),
		TotalPOIs:  resp.TotalPOIs,
		Prediction: resp.Prediction,
	}
	if len(resp.ByBand) > 0 {
		res.Allowed = make(map[crowd.Band][]category.Category, len(resp.ByBand))
		for k, list := range resp.ByBand {
			b, err := crowd.ParseBand(k)
			if err != nil || b == "" {
				continue
			}
			res.Allowed[b] = category.ParseList(list)
		}
	}
	return res, nil
}
