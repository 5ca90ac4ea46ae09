// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

// Package revenue estimates business revenue at a location from the
// surrounding POIs. Every function is deterministic: the hour of day is an
// argument and nothing reads the wall clock.
package revenue

import (
	"math"
	"strings"

	"github.com/tomtom215/footfall/internal/category"
	"github.com/tomtom215/footfall/internal/poi"
)

// Sensitivity is how strongly a business suffers from overcrowding.
type Sensitivity string

// Sensitivity levels.
const (
	SensitivityLow    Sensitivity = "low"
	SensitivityMedium Sensitivity = "medium"
	SensitivityHigh   Sensitivity = "high"
)

// Metrics are the economics of one business type.
type Metrics struct {
	AvgSpend       float64
	BaseConversion float64
	Label          string
	OptimalMin     float64
	OptimalMax     float64
	Sensitivity    Sensitivity
}

// DefaultBusiness is the key of the fallback metrics.
const DefaultBusiness = "default"

// Table holds the per-business metrics.
var Table = map[string]Metrics{
	"cafe":        {350, 0.18, "Hospitality", 20, 60, SensitivityHigh},
	"restaurant":  {1200, 0.10, "Dining", 40, 100, SensitivityMedium},
	"fast_food":   {500, 0.25, "Dining", 50, 150, SensitivityLow},
	"shop":        {2000, 0.08, "Retail", 10, 50, SensitivityMedium},
	"supermarket": {1800, 0.35, "Retail", 50, 200, SensitivityLow},
	"pharmacy":    {800, 0.40, "Healthcare", 10, 40, SensitivityHigh},
	"default":     {600, 0.05, "General Business", 10, 50, SensitivityMedium},
}

// Lookup returns the metrics for business, falling back to the default.
func Lookup(business string) Metrics {
	if m, ok := Table[category.Normalize(business).String()]; ok {
		return m
	}
	return Table[DefaultBusiness]
}

// Spending power per customer segment.
const (
	cqiStudent      = 0.6
	cqiProfessional = 1.8
	cqiFamily       = 1.3
	cqiTourist      = 2.5
)

// Daypart returns the traffic multiplier and name for an hour of day.
func Daypart(hour int) (float64, string) {
	hour = ((hour % 24) + 24) % 24
	switch {
	case hour >= 5 && hour < 10:
		return 0.78, "Morning"
	case hour >= 10 && hour < 14:
		return 1.22, "Lunch Spike"
	case hour >= 14 && hour < 17:
		return 0.95, "Afternoon"
	case hour >= 17 && hour < 22:
		return 1.35, "Evening Peak"
	default:
		return 0.58, "Night Drop"
	}
}

// Mix is the share of each customer segment around a location.
type Mix struct {
	Students      float64 `json:"students"`
	Professionals float64 `json:"professionals"`
	Families      float64 `json:"families"`
	Tourists      float64 `json:"tourists"`
}

// CustomerMix infers segment shares from POI tags, with a baseline share so
// sparse areas still produce a mix.
func CustomerMix(pois []poi.PointOfInterest) Mix {
	total := max(1, len(pois))
	var students, professionals, families, tourists int

	for _, p := range pois {
		amenity := strings.ToLower(p.Tag("amenity"))
		shop := strings.ToLower(p.Tag("shop"))
		tourism := strings.ToLower(p.Tag("tourism"))

		switch amenity {
		case "school", "college", "university":
			students += 2
		case "bank", "office", "restaurant", "cafe":
			professionals += 2
		case "park", "cinema", "hospital":
			families++
		}
		switch shop {
		case "supermarket", "mall", "clothes", "clothing", "department_store":
			families += 2
		}
		if tourism != "" {
			tourists += 3
		}
	}

	students += int(float64(total) * 0.10)
	professionals += int(float64(total) * 0.16)
	families += int(float64(total) * 0.14)
	tourists += int(float64(total) * 0.08)

	sum := float64(max(1, students+professionals+families+tourists))
	return Mix{
		Students:      float64(students) / sum,
		Professionals: float64(professionals) / sum,
		Families:      float64(families) / sum,
		Tourists:      float64(tourists) / sum,
	}
}

// QualityIndex weights the mix by segment spending power.
func (m Mix) QualityIndex() float64 {
	return m.Students*cqiStudent + m.Professionals*cqiProfessional + m.Families*cqiFamily + m.Tourists*cqiTourist
}

// CompetitionDensity is the share of POIs of the same kind as business.
// An empty business counts as 0.2, no POIs as 0.
func CompetitionDensity(pois []poi.PointOfInterest, business string) float64 {
	if len(pois) == 0 {
		return 0
	}
	needle := category.Normalize(business).String()
	if needle == "" {
		return 0.2
	}
	same := 0
	for _, p := range pois {
		kind := category.Normalize(p.Kind()).String()
		if kind != "" && (kind == needle || strings.Contains(kind, needle) || strings.Contains(needle, kind)) {
			same++
		}
	}
	return math.Min(1, float64(same)/float64(len(pois)))
}

// OverloadPenalty is the revenue multiplier once footfall exceeds the
// optimal maximum: linear in the excess, floored at 0.4.
func OverloadPenalty(footfall, optimalMax float64, s Sensitivity) float64 {
	if footfall <= optimalMax {
		return 1
	}
	excess := (footfall - optimalMax) / optimalMax
	factor := 0.2
	if s == SensitivityHigh {
		factor = 0.5
	}
	return math.Max(0.4, 1-excess*factor)
}

// Health grades.
const (
	HealthStrong   = "Strong"
	HealthModerate = "Moderate"
	HealthWeak     = "Weak"
)

// Forecast is the revenue estimate for one business at one location.
type Forecast struct {
	Business           string   `json:"business_type"`
	Daypart            string   `json:"daypart"`
	Footfall           float64  `json:"footfall"`
	ConversionRate     float64  `json:"conversion_rate"`
	CustomerQuality    float64  `json:"customer_quality"`
	DynamicAvgSpend    float64  `json:"dynamic_avg_spend"`
	EffectiveCustomers float64  `json:"effective_customers"`
	DailyRevenue       float64  `json:"daily_revenue"`
	MonthlyRevenue     float64  `json:"estimated_monthly_revenue"`
	PeakHourRevenue    float64  `json:"peak_hour_revenue"`
	OverloadRisk       int      `json:"overload_risk"`
	PotentialScore     int      `json:"potential_score"`
	Health             string   `json:"business_health"`
	Recommendations    []string `json:"recommendations"`
}

// Estimate forecasts revenue for business at a location surrounded by pois
// during hour.
func Estimate(pois []poi.PointOfInterest, business string, hour int) Forecast {
	return newLocation(pois).estimate(business, hour)
}

// location caches the inputs shared by every business at one place.
type location struct {
	pois    []poi.PointOfInterest
	quality float64
}

func newLocation(pois []poi.PointOfInterest) *location {
	return &location{pois: pois, quality: CustomerMix(pois).QualityIndex()}
}

func (c *location) estimate(business string, hour int) Forecast {
	key := category.Normalize(business).String()
	if key == "" {
		key = DefaultBusiness
	}
	m := Lookup(key)
	timeMult, daypart := Daypart(hour)
	n := float64(len(c.pois))

	popularity := math.Min(1.5, n/60)
	footfall := math.Max(10, (22+n*2.8)*(1+popularity*0.35)*timeMult)

	competition := CompetitionDensity(c.pois, key)
	rating := 0.9 + math.Min(0.3, popularity*0.2)

	overload := OverloadPenalty(footfall, m.OptimalMax, m.Sensitivity)
	overloadRatio := math.Max(0, (footfall-m.OptimalMax)/math.Max(1, m.OptimalMax))
	waiting := math.Min(0.35, overloadRatio*0.25)

	conversion := m.BaseConversion * (1 - competition*0.45) * rating * overload * (1 - waiting)
	conversion = math.Max(0.02, math.Min(0.60, conversion))

	spend := m.AvgSpend * (0.88 + 0.24*c.quality)
	customers := footfall * conversion * c.quality
	daily := customers * spend

	peakMult := 1.35
	if daypart == "Evening Peak" {
		peakMult = 1.15
	}

	potential := math.Min(100, footfall)*0.24 +
		(1-competition)*100*0.22 +
		math.Min(2.5, c.quality)/2.5*100*0.20 +
		(1-math.Min(1, waiting*2))*100*0.18 +
		math.Min(1, rating)*100*0.16
	score := int(math.Max(0, math.Min(100, math.RoundToEven(potential))))
	risk := int(math.Min(100, overloadRatio*100))

	health := HealthWeak
	switch {
	case score >= 78 && risk < 60:
		health = HealthStrong
	case score >= 55:
		health = HealthModerate
	}

	f := Forecast{
		Business:           key,
		Daypart:            daypart,
		Footfall:           round(footfall, 2),
		ConversionRate:     round(conversion, 4),
		CustomerQuality:    round(c.quality, 3),
		DynamicAvgSpend:    round(spend, 2),
		EffectiveCustomers: round(customers, 2),
		DailyRevenue:       round(daily, 2),
		MonthlyRevenue:     round(daily*30, 2),
		PeakHourRevenue:    round(daily/12*peakMult, 2),
		OverloadRisk:       risk,
		PotentialScore:     score,
		Health:             health,
	}
	f.Recommendations = recommendations(f)
	return f
}

func recommendations(f Forecast) []string {
	recs := make([]string, 0, 3)
	switch {
	case f.OverloadRisk >= 70:
		recs = append(recs, "High overload risk detected: add queue automation and split peak-hour staffing.")
	case f.OverloadRisk >= 40:
		recs = append(recs, "Moderate overload risk: introduce time-slot discounts to flatten spikes.")
	default:
		recs = append(recs, "Low overload risk: scale marketing during lunch and evening to capture unused capacity.")
	}

	if f.ConversionRate < 0.08 {
		recs = append(recs, "Conversion is weak: improve storefront visibility and local ad targeting.")
	} else {
		recs = append(recs, "Conversion is healthy: prioritize upsell bundles to lift average spend.")
	}

	switch {
	case f.CustomerQuality < 1.1:
		recs = append(recs, "Customer quality is budget-sensitive: offer value packs and loyalty rewards.")
	case f.CustomerQuality > 1.6:
		recs = append(recs, "High-spend audience detected: premium positioning can materially increase revenue.")
	}
	return recs
}

// Annotate sets RevenueEstimate on every POI to the monthly revenue of its
// own kind of business at this location. It writes into pois in place and
// must run before the slice is shared.
func Annotate(pois []poi.PointOfInterest, hour int) {
	c := newLocation(pois)
	byKind := make(map[string]float64)
	for i := range pois {
		kind := category.Normalize(pois[i].Kind()).String()
		v, ok := byKind[kind]
		if !ok {
			v = c.estimate(kind, hour).MonthlyRevenue
			byKind[kind] = v
		}
		pois[i].RevenueEstimate = &v
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
