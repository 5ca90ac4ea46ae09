// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package crowd

import (
	"math"

	"github.com/tomtom215/footfall/internal/category"
)

// DefaultBaseline is the footfall of a category with no specific estimate.
const DefaultBaseline = 90

// baselineRule assigns a footfall estimate to a set of categories.
type baselineRule struct {
	categories []category.Category
	footfall   int
}

// baselineRules are evaluated in order; the first rule containing the
// category wins.
var baselineRules = []baselineRule{
	{categories: []category.Category{"restaurant", "cafe", "fast_food"}, footfall: 110},
	{categories: []category.Category{"mall", "attraction"}, footfall: 140},
	{categories: []category.Category{"school", "college", "university"}, footfall: 120},
	{categories: []category.Category{"park"}, footfall: 70},
}

// EstimateBaseline returns the baseline footfall for a category. Only the
// literal category is matched; aliases such as "coffee_shop" get the default.
func EstimateBaseline(c category.Category) int {
	for _, rule := range baselineRules {
		for _, rc := range rule.categories {
			if rc == c {
				return rule.footfall
			}
		}
	}
	return DefaultBaseline
}

// SlotName identifies a time-of-day slot.
type SlotName string

// Time-of-day slots in chronological order.
const (
	Morning SlotName = "morning"
	Midday  SlotName = "midday"
	Evening SlotName = "evening"
	Night   SlotName = "night"
)

// slotMultipliers holds the fixed multiplier of every slot, in slot order.
var slotMultipliers = [...]struct {
	name       SlotName
	multiplier float64
}{
	{Morning, 0.55},
	{Midday, 0.85},
	{Evening, 1.10},
	{Night, 0.65},
}

// Slot is one time-of-day entry of a crowd profile.
type Slot struct {
	Name        SlotName `json:"name"`
	Multiplier  float64  `json:"multiplier"`
	PeopleCount int      `json:"people_count"`
	Band        Band     `json:"band"`
}

// Profile is the derived crowd estimate of a POI across the day. It is
// recomputed on every request and never cached.
type Profile struct {
	Baseline int      `json:"baseline"`
	Slots    [4]Slot  `json:"slots"`
	BestTime SlotName `json:"best_time"`
}

// BuildProfile derives the four-slot profile of a category. It is a pure
// function of c.
func BuildProfile(c category.Category) Profile {
	p := Profile{Baseline: EstimateBaseline(c)}

	for i, sm := range slotMultipliers {
		count := int(math.Round(float64(p.Baseline) * sm.multiplier))
		p.Slots[i] = Slot{
			Name:        sm.name,
			Multiplier:  sm.multiplier,
			PeopleCount: count,
			Band:        classify(count),
		}
	}

	// first quiet slot, else the first slot of the day
	p.BestTime = p.Slots[0].Name
	for _, s := range p.Slots {
		if s.Band == Low {
			p.BestTime = s.Name
			break
		}
	}
	return p
}

// Footfall is the liveliness number used to band a POI for ranking: the
// baseline estimate itself.
func (p Profile) Footfall() int {
	return p.Baseline
}

// Band classifies the profile's footfall.
func (p Profile) Band() Band {
	return classify(p.Footfall())
}
