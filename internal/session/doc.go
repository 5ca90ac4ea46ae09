// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

/*
Package session runs analysis cycles and keeps their results ordered.

A Session carries a generation counter. Every cycle takes a Ticket with
Begin and publishes its result with Apply; a ticket older than the newest
one is rejected with ErrStaleResponse and the result is dropped, so the
last request always wins even when responses arrive out of order:

	t := sess.Begin(anchor, business)
	// ... discover, analyze, rank
	if err := sess.Apply(t, "recommend", func(st *session.State) { ... }); err != nil {
		return err // superseded
	}

Service composes discovery, zone analysis, ranking, the feasibility cache
and revenue estimates into the Recommend, Profile, Feasibility and Analyze
operations. Registry maps client session IDs to sessions for the HTTP API.
*/
package session
