// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

// Package category normalizes free-text business types and POI tags into
// comparable category tokens.
//
// A Category is always lowercase with runs of whitespace collapsed to a
// single underscore. Synonyms are resolved through the Aliases table.
package category

import (
	"strings"
	"unicode"
)

// Category is a normalized business or POI category token.
type Category string

// Empty reports whether the token carries no value.
func (c Category) Empty() bool {
	return c == ""
}

// String returns the token.
func (c Category) String() string {
	return string(c)
}

// Label renders the token for humans: "book_store" -> "book store".
func (c Category) Label() string {
	return strings.ReplaceAll(string(c), "_", " ")
}

// businessSuffix is stripped from user supplied business types ("cafe business").
const businessSuffix = "_business"

// Normalize lowercases s, trims it and collapses internal whitespace to
// single underscores.
func Normalize(s string) Category {
	fields := strings.FieldsFunc(strings.ToLower(s), unicode.IsSpace)
	return Category(strings.Join(fields, "_"))
}

// NormalizeBusiness is Normalize plus removal of a trailing "_business".
func NormalizeBusiness(s string) Category {
	c := Normalize(s)
	if trimmed := strings.TrimSuffix(string(c), businessSuffix); trimmed != "" {
		return Category(trimmed)
	}
	return c
}

// Aliases maps common user phrasing onto catalog categories.
var Aliases = map[Category]Category{
	"grocery_shop":  "supermarket",
	"grocery":       "supermarket",
	"medical_store": "pharmacy",
	"chemist":       "pharmacy",
	"pub":           "restaurant",
	"bar":           "restaurant",
	"coffee_shop":   "cafe",
	"book_shop":     "book_store",
	"cloth_store":   "clothing_store",
	"garments":      "clothing_store",
}

// Canonical resolves c through the alias table. Unknown tokens map to themselves.
func Canonical(c Category) Category {
	if target, ok := Aliases[c]; ok {
		return target
	}
	return c
}

// Matches applies the category match rule: equality or substring in either
// direction, checked on both the raw and canonical forms of a and b.
// Empty tokens never match.
func Matches(a, b Category) bool {
	if a.Empty() || b.Empty() {
		return false
	}
	for _, x := range []Category{a, Canonical(a)} {
		for _, y := range []Category{b, Canonical(b)} {
			if substringEither(string(x), string(y)) {
				return true
			}
		}
	}
	return false
}

func substringEither(a, b string) bool {
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// MatchesAny reports whether c matches at least one of allowed.
// An empty allow-list means no restriction.
func MatchesAny(c Category, allowed []Category) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if Matches(c, a) {
			return true
		}
	}
	return false
}

// NameMatches reports whether the business token appears in a POI name as
// a whole-token run: "cafe" matches "Blue Cafe" but not "Cafeteria", and
// "coffee_shop" matches "The Coffee Shop".
func NameMatches(name string, business Category) bool {
	if business.Empty() {
		return false
	}
	nameTokens := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(nameTokens) == 0 {
		return false
	}
	for _, b := range []Category{business, Canonical(business)} {
		if containsRun(nameTokens, tokens(b)) {
			return true
		}
	}
	return false
}

func tokens(c Category) []string {
	if c.Empty() {
		return nil
	}
	return strings.Split(string(c), "_")
}

// containsRun reports whether needle occurs as a contiguous run in haystack.
func containsRun(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j := range needle {
			if haystack[i+j] != needle[j] {
				continue outer
			}
		}
		return true
	}
	return false
}

// tagPriority lists the OSM keys that carry a category, most specific first.
var tagPriority = []string{"amenity", "shop", "tourism", "leisure"}

// FromTags derives the category of an OSM element from its tags.
func FromTags(tags map[string]string) Category {
	for _, key := range tagPriority {
		if v := strings.TrimSpace(tags[key]); v != "" {
			return Normalize(v)
		}
	}
	return ""
}

// ParseList normalizes a list of strings, dropping empties and duplicates
// while preserving order.
func ParseList(values []string) []Category {
	out := make([]Category, 0, len(values))
	seen := make(map[Category]struct{}, len(values))
	for _, v := range values {
		c := Normalize(v)
		if c.Empty() {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
