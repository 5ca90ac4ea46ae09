// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

// mockService counts its starts and can be told to fail a number of times
// before running until canceled.
type mockService struct {
	name       string
	failTimes  int32
	startCount atomic.Int32
	failCount  atomic.Int32
}

func newMockService(name string, failTimes int32) *mockService {
	return &mockService{name: name, failTimes: failTimes}
}

func (m *mockService) Serve(ctx context.Context) error {
	m.startCount.Add(1)
	if m.failCount.Add(1) <= m.failTimes {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockService) starts() int32 { return m.startCount.Load() }

func (m *mockService) String() string { return m.name }
