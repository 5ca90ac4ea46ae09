// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

// Package catalog holds the business catalog: which categories suit each
// crowd band, and which business to recommend for a band in a given kind of
// area.
package catalog

import (
	"sort"
	"strings"
	"unicode"

	"github.com/tomtom215/footfall/internal/category"
	"github.com/tomtom215/footfall/internal/crowd"
	"github.com/tomtom215/footfall/internal/poi"
)

// Area is the kind of neighbourhood inferred from POI composition.
type Area string

// Areas known to the prediction table.
const (
	AreaNone        Area = ""
	AreaCommercial  Area = "commercial"
	AreaMarket      Area = "market"
	AreaCollege     Area = "college"
	AreaMall        Area = "mall"
	AreaOffice      Area = "office"
	AreaResidential Area = "residential"
	AreaCityCenter  Area = "city_center"
	AreaOutskirts   Area = "outskirts"
	AreaIndustrial  Area = "industrial"
	AreaVillage     Area = "village"
	AreaStorage     Area = "storage"
)

// prediction maps one area of a band to its recommended business. The first
// row of a band is its default.
type prediction struct {
	area     Area
	business category.Category
}

// Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	allowed     map[crowd.Band][]category.Category
	predictions map[crowd.Band][]prediction
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		allowed: map[crowd.Band][]category.Category{
			crowd.High:   {"restaurant", "cafe", "fast_food", "supermarket", "clothing_store", "mall"},
			crowd.Medium: {"cafe", "pharmacy", "bakery", "book_store", "supermarket"},
			crowd.Low:    {"convenience", "hardware", "warehouse", "car_repair"},
		},
		predictions: map[crowd.Band][]prediction{
			crowd.High: {
				{AreaCommercial, "restaurant"},
				{AreaMarket, "supermarket"},
				{AreaCollege, "cafe"},
				{AreaMall, "clothing_store"},
				{AreaOffice, "fast_food"},
			},
			crowd.Medium: {
				{AreaResidential, "pharmacy"},
				{AreaCommercial, "cafe"},
				{AreaCityCenter, "book_store"},
			},
			crowd.Low: {
				{AreaOutskirts, "hardware"},
				{AreaIndustrial, "warehouse"},
				{AreaVillage, "convenience"},
				{AreaStorage, "warehouse"},
			},
		},
	}
}

// Allowed returns the categories suited to band. An empty band means low.
// An unknown band returns every category.
func (c *Catalog) Allowed(band crowd.Band) []category.Category {
	if band == "" {
		band = crowd.Low
	}
	if list, ok := c.allowed[band]; ok {
		return append([]category.Category(nil), list...)
	}
	return c.All()
}

// ByBand returns a copy of the full band to categories mapping.
func (c *Catalog) ByBand() map[crowd.Band][]category.Category {
	out := make(map[crowd.Band][]category.Category, len(c.allowed))
	for b, list := range c.allowed {
		out[b] = append([]category.Category(nil), list...)
	}
	return out
}

// All returns every distinct category, sorted.
func (c *Catalog) All() []category.Category {
	seen := make(map[category.Category]struct{})
	var out []category.Category
	for _, list := range c.allowed {
		for _, cat := range list {
			if _, dup := seen[cat]; !dup {
				seen[cat] = struct{}{}
				out = append(out, cat)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Predict returns the business recommended for band in area. An unknown
// area falls back to the band's default row, an unknown band to low.
func (c *Catalog) Predict(band crowd.Band, area Area) category.Category {
	rows, ok := c.predictions[band]
	if !ok {
		rows = c.predictions[crowd.Low]
	}
	area = Area(strings.ToLower(strings.TrimSpace(string(area))))
	for _, row := range rows {
		if row.area == area {
			return row.business
		}
	}
	return rows[0].business
}

// Choice is one entry of the business-type picker.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Choices lists every category with a title-cased label.
func (c *Catalog) Choices() []Choice {
	all := c.All()
	out := make([]Choice, 0, len(all))
	for _, cat := range all {
		out = append(out, Choice{Value: cat.String(), Label: titleCase(cat.Label())})
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// InferArea guesses the area from raw amenity, shop and tourism tag values,
// checking in order: eateries, education, health, markets and malls, then
// worship and community places. AreaNone means no rule applied.
func InferArea(pois []poi.PointOfInterest) Area {
	counts := make(map[string]int)
	for _, p := range pois {
		if t := p.Kind(); t != "" {
			counts[t]++
		}
	}
	if len(counts) == 0 {
		return AreaNone
	}

	sum := func(keys ...string) int {
		n := 0
		for _, k := range keys {
			n += counts[k]
		}
		return n
	}

	switch {
	case sum("restaurant", "cafe", "fast_food") > 3:
		return AreaCommercial
	case sum("school", "college", "university") > 1:
		return AreaCollege
	case sum("hospital", "pharmacy") > 1:
		return AreaResidential
	case counts["market"] > 0:
		return AreaMarket
	case counts["mall"] > 0:
		return AreaMall
	case sum("place_of_worship", "community_centre") > 2:
		return AreaResidential
	default:
		return AreaNone
	}
}
