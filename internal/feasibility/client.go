// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package feasibility

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/footfall/internal/geo"
	"github.com/tomtom215/footfall/internal/resilience"
)

// ClientConfig configures a Client.
type ClientConfig struct {
	URL     string
	Timeout time.Duration
	Breaker resilience.Settings
}

// Client calls a remote feasibility endpoint.
type Client struct {
	url     string
	client  *http.Client
	breaker *resilience.Breaker[Result]
}

// NewClient returns a client. Timeout defaults to 30s.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		url:     cfg.URL,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: resilience.NewBreaker[Result]("feasibility", cfg.Breaker),
	}
}

type checkRequest struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	BusinessType string  `json:"business_type"`
}

type checkResponse struct {
	Result
	Error string `json:"error,omitempty"`
}

// Check posts the request. Transport failures and success=false responses
// wrap ErrUpstreamFailure.
func (c *Client) Check(ctx context.Context, lat, lon float64, business string) (Result, error) {
	if err := (geo.Point{Lat: lat, Lon: lon}).Validate(); err != nil {
		return Result{}, err
	}
	res, err := c.breaker.Execute(func() (Result, error) {
		var resp checkResponse
		req := checkRequest{Latitude: lat, Longitude: lon, BusinessType: business}
		if err := resilience.PostJSON(ctx, c.client, c.url, req, &resp); err != nil {
			return Result{}, err
		}
		if !resp.Success {
			if resp.Message == "" {
				resp.Message = resp.Error
			}
			return Result{}, upstreamError(resp.Result)
		}
		return resp.Result, nil
	})
	if err != nil {
		if errors.Is(err, ErrUpstreamFailure) || errors.Is(err, context.Canceled) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
	}
	return res, nil
}

// Fetch adapts a Checker call to a Fetcher for GetOrFetch.
func Fetch(ch Checker, lat, lon float64, business string) Fetcher {
	return func(ctx context.Context) (Result, error) {
		return ch.Check(ctx, lat, lon, business)
	}
}
