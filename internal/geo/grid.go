// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package geo

import (
	"math"
	"sort"
)

// metersPerDegree is the length of one degree of latitude on the reference sphere.
const metersPerDegree = EarthRadiusMeters * math.Pi / 180

// Grid divides geographic space into square cells for fast radius queries.
// Instead of comparing a query point against every entry, only the cells
// overlapping the query circle are inspected and then filtered by exact
// haversine distance.
//
// Longitude spans are widened by 1/cos(lat) so that the searched cells
// always cover the query circle. Queries close to the poles or crossing the
// antimeridian fall back to a linear scan.
//
// A Grid is built and queried within a single ranking call and is not safe
// for concurrent mutation.
type Grid[T any] struct {
	cellDeg float64
	cells   map[cellKey][]gridEntry[T]
	all     []gridEntry[T]
}

type cellKey struct {
	X, Y int
}

type gridEntry[T any] struct {
	seq   int
	point Point
	value T
}

// NewGrid creates a grid with cells of roughly cellMeters on a side.
// Default: 1000 m.
func NewGrid[T any](cellMeters float64) *Grid[T] {
	if cellMeters <= 0 {
		cellMeters = 1000
	}
	return &Grid[T]{
		cellDeg: cellMeters / metersPerDegree,
		cells:   make(map[cellKey][]gridEntry[T]),
	}
}

func (g *Grid[T]) key(p Point) cellKey {
	return cellKey{
		X: int(math.Floor(p.Lon / g.cellDeg)),
		Y: int(math.Floor(p.Lat / g.cellDeg)),
	}
}

// Insert adds a value at p.
func (g *Grid[T]) Insert(p Point, v T) {
	e := gridEntry[T]{seq: len(g.all), point: p, value: v}
	k := g.key(p)
	g.cells[k] = append(g.cells[k], e)
	g.all = append(g.all, e)
}

// Len returns the number of inserted values.
func (g *Grid[T]) Len() int {
	return len(g.all)
}

// Within returns the values whose points lie within radiusMeters of center,
// in insertion order.
func (g *Grid[T]) Within(center Point, radiusMeters float64) []T {
	matches := g.within(center, radiusMeters)
	out := make([]T, len(matches))
	for i, e := range matches {
		out[i] = e.value
	}
	return out
}

// CountWithin returns the number of values within radiusMeters of center.
func (g *Grid[T]) CountWithin(center Point, radiusMeters float64) int {
	return len(g.within(center, radiusMeters))
}

func (g *Grid[T]) within(center Point, radiusMeters float64) []gridEntry[T] {
	if radiusMeters < 0 || len(g.all) == 0 {
		return nil
	}

	radiusDeg := radiusMeters / metersPerDegree
	maxLat := math.Min(90, math.Abs(center.Lat)+radiusDeg)
	cosLat := math.Cos(maxLat * math.Pi / 180)

	// near the poles the longitude span degenerates
	if cosLat < 0.01 {
		return g.scan(center, radiusMeters)
	}
	lonSpan := radiusDeg / cosLat
	if center.Lon-lonSpan < -180 || center.Lon+lonSpan > 180 {
		return g.scan(center, radiusMeters)
	}

	cx := int(math.Ceil(lonSpan/g.cellDeg)) + 1
	cy := int(math.Ceil(radiusDeg/g.cellDeg)) + 1
	c := g.key(center)

	var results []gridEntry[T]
	for dx := -cx; dx <= cx; dx++ {
		for dy := -cy; dy <= cy; dy++ {
			for _, e := range g.cells[cellKey{X: c.X + dx, Y: c.Y + dy}] {
				if Distance(center, e.point) <= radiusMeters {
					results = append(results, e)
				}
			}
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].seq < results[j].seq })
	return results
}

func (g *Grid[T]) scan(center Point, radiusMeters float64) []gridEntry[T] {
	var results []gridEntry[T]
	for _, e := range g.all {
		if Distance(center, e.point) <= radiusMeters {
			results = append(results, e)
		}
	}
	return results
}
