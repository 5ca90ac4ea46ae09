// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/footfall/internal/logging"
)

const defaultSweepInterval = time.Minute

// Sweeper removes expired entries and reports how many it removed.
// *feasibility.Cache satisfies it directly.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// SweepFunc adapts a plain function, e.g. session.Registry.Sweep, to Sweeper.
type SweepFunc func(ctx context.Context) (int, error)

// Sweep calls f.
func (f SweepFunc) Sweep(ctx context.Context) (int, error) {
	return f(ctx)
}

// SweeperService runs a Sweeper on a fixed interval.
//
// A failed sweep is logged and retried on the next tick; the service only
// returns when its context is canceled, so a broken store never triggers
// supervisor backoff.
type SweeperService struct {
	name     string
	sweeper  Sweeper
	interval time.Duration
	logger   zerolog.Logger
}

// NewSweeperService creates a sweeper service. A non-positive interval
// selects one minute.
func NewSweeperService(name string, sweeper Sweeper, interval time.Duration) *SweeperService {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &SweeperService{
		name:     name,
		sweeper:  sweeper,
		interval: interval,
		logger:   logging.WithComponent(name),
	}
}

// Serve implements suture.Service.
func (s *SweeperService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *SweeperService) sweepOnce(ctx context.Context) {
	removed, err := s.sweeper.Sweep(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("sweep failed")
		return
	}
	if removed > 0 {
		s.logger.Debug().Int("removed", removed).Msg("expired entries swept")
	}
}

// String implements fmt.Stringer.
func (s *SweeperService) String() string {
	return s.name
}
