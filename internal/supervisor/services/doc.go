// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

// Package services provides suture.Service wrappers for the long-running
// parts of the Footfall server: the HTTP listener and the periodic
// sweepers that expire feasibility results and idle client sessions.
package services
