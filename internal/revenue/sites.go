// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package revenue

import (
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/footfall/internal/category"
	"github.com/tomtom215/footfall/internal/geo"
	"github.com/tomtom215/footfall/internal/poi"
)

// siteRadiusMeters is the neighbourhood considered around each site.
const siteRadiusMeters = 1700

// MaxSites caps Sites.
const MaxSites = 3

// siteOffsets are the probe positions around the anchor, in degrees.
var siteOffsets = [][2]float64{
	{0, 0}, {0.0080, 0.0045}, {-0.0080, -0.0040},
	{0.0065, -0.0060}, {-0.0060, 0.0065}, {0.0120, 0},
	{0, -0.0120}, {-0.0110, 0.0020},
}

// Factors describe the neighbourhood of a site, each on a 0..100 scale.
type Factors struct {
	FootfallPotential  float64 `json:"footfall_potential"`
	CompetitionDensity float64 `json:"competition_density"`
	SpendingPower      float64 `json:"spending_power"`
	AreaGrowth         float64 `json:"area_growth"`
	DemandSupplyGap    float64 `json:"demand_supply_gap"`
}

// LocationFactors scores a neighbourhood.
func LocationFactors(pois []poi.PointOfInterest) Factors {
	total := float64(max(1, len(pois)))
	spending := math.Min(100, CustomerMix(pois).QualityIndex()/2.5*100)

	competing, transport := 0, 0
	for _, p := range pois {
		if p.Tag("amenity") != "" || p.Tag("shop") != "" {
			competing++
		}
		switch {
		case p.Tag("public_transport") != "", p.Tag("railway") != "":
			transport++
		case p.Tag("highway") == "bus_stop", p.Tag("highway") == "primary":
			transport++
		}
	}
	competition := math.Min(100, float64(competing)/total*100)
	growth := math.Min(100, (float64(transport)+total*0.08)/total*100)
	footfall := math.Min(100, total*2.2)
	gap := math.Max(0, math.Min(100, footfall*0.75-competition*0.55+spending*0.25))

	return Factors{
		FootfallPotential:  round(footfall, 2),
		CompetitionDensity: round(competition, 2),
		SpendingPower:      round(spending, 2),
		AreaGrowth:         round(growth, 2),
		DemandSupplyGap:    round(gap, 2),
	}
}

// RecommendFor picks a business for a neighbourhood.
func RecommendFor(f Factors) category.Category {
	switch {
	case f.SpendingPower > 70 && f.CompetitionDensity < 55:
		return "restaurant"
	case f.DemandSupplyGap > 55 && f.FootfallPotential > 40:
		return "cafe"
	case f.CompetitionDensity > 70:
		return "pharmacy"
	default:
		return "supermarket"
	}
}

// Site is a probed location near the anchor.
type Site struct {
	Lat              float64  `json:"latitude"`
	Lon              float64  `json:"longitude"`
	Name             string   `json:"name"`
	BusinessType     string   `json:"business_type"`
	Score            float64  `json:"score"`
	EstimatedRevenue float64  `json:"estimated_revenue"`
	Factors          Factors  `json:"feasibility_factors"`
	Revenue          Forecast `json:"revenue_data"`
}

// Sites probes fixed offsets around anchor and returns the best topN
// (1..3) by score. Each site is judged on the POIs within 1.7 km of it.
func Sites(anchor geo.Point, pois []poi.PointOfInterest, topN, hour int) ([]Site, error) {
	if err := anchor.Validate(); err != nil {
		return nil, err
	}
	topN = max(1, min(MaxSites, topN))

	grid := geo.NewGrid[poi.PointOfInterest](siteRadiusMeters)
	for _, p := range pois {
		if p.Point().Valid() {
			grid.Insert(p.Point(), p)
		}
	}

	sites := make([]Site, 0, len(siteOffsets))
	for i, off := range siteOffsets {
		pos := geo.Point{Lat: anchor.Lat + off[0], Lon: anchor.Lon + off[1]}
		local := grid.Within(pos, siteRadiusMeters)

		f := LocationFactors(local)
		score := f.FootfallPotential*0.30 +
			(100-f.CompetitionDensity)*0.22 +
			f.SpendingPower*0.18 +
			f.AreaGrowth*0.15 +
			f.DemandSupplyGap*0.15
		score = math.Max(0, math.Min(100, score))

		business := RecommendFor(f)
		forecast := Estimate(local, business.String(), hour)
		sites = append(sites, Site{
			Lat:              round(pos.Lat, 6),
			Lon:              round(pos.Lon, 6),
			Name:             fmt.Sprintf("Site %d", i+1),
			BusinessType:     business.String(),
			Score:            round(score, 1),
			EstimatedRevenue: forecast.MonthlyRevenue,
			Factors:          f,
			Revenue:          forecast,
		})
	}

	sort.SliceStable(sites, func(i, j int) bool { return sites[i].Score > sites[j].Score })
	return sites[:topN], nil
}
