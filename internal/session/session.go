// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/footfall/internal/category"
	"github.com/tomtom215/footfall/internal/crowd"
	"github.com/tomtom215/footfall/internal/geo"
	"github.com/tomtom215/footfall/internal/metrics"
	"github.com/tomtom215/footfall/internal/poi"
	"github.com/tomtom215/footfall/internal/rank"
	"github.com/tomtom215/footfall/internal/zone"
)

// ErrStaleResponse is returned when a cycle finishes after a newer cycle
// of the same session has begun. Its result is discarded.
var ErrStaleResponse = errors.New("stale response")

// Ticket identifies one analysis cycle.
type Ticket struct {
	Generation uint64
	Anchor     geo.Point
	Business   category.Category
}

// State is the last applied cycle of a session. Zones and POIs are replaced
// wholesale by every applied cycle, never merged.
type State struct {
	Generation uint64                             `json:"generation"`
	Anchor     geo.Point                          `json:"anchor"`
	Business   category.Category                  `json:"business_type,omitempty"`
	Intensity  crowd.Band                         `json:"crowd_intensity,omitempty"`
	Dominant   crowd.Band                         `json:"dominant_intensity,omitempty"`
	POIs       []poi.PointOfInterest              `json:"-"`
	Zones      zone.Set                           `json:"zones"`
	Allowed    map[crowd.Band][]category.Category `json:"business_by_intensity,omitempty"`
	Candidates []rank.Candidate                   `json:"candidates,omitempty"`
	UpdatedAt  time.Time                          `json:"updated_at"`
}

// Session serializes analysis cycles for one user: last response wins.
// It is safe for concurrent use.
type Session struct {
	mu    sync.Mutex
	gen   uint64
	state State
	now   func() time.Time
}

// New creates an empty session.
func New() *Session {
	return &Session{now: time.Now}
}

// Begin starts a new cycle and supersedes every cycle begun before it.
func (s *Session) Begin(anchor geo.Point, business category.Category) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return Ticket{Generation: s.gen, Anchor: anchor, Business: business}
}

// Generation returns the generation of the newest cycle.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Current reports whether t is still the newest cycle.
func (s *Session) Current(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.Generation == s.gen
}

// Apply runs update against the session state if t is still current. A
// superseded ticket leaves the state untouched and returns ErrStaleResponse.
func (s *Session) Apply(t Ticket, operation string, update func(*State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Generation != s.gen {
		metrics.RecordStaleResponse(operation)
		return fmt.Errorf("%w: %s generation %d superseded by %d", ErrStaleResponse, operation, t.Generation, s.gen)
	}

	next := State{
		Generation: t.Generation,
		Anchor:     t.Anchor,
		Business:   t.Business,
		UpdatedAt:  s.now(),
	}
	if update != nil {
		update(&next)
	}
	s.state = next
	return nil
}

// Snapshot returns the last applied state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
