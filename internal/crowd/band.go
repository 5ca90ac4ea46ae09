// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package crowd

import (
	"errors"
	"fmt"
	"strings"
)

// Band is a three-level crowd intensity.
type Band string

// Intensity bands, ordered from quietest to busiest.
const (
	Low    Band = "low"
	Medium Band = "medium"
	High   Band = "high"
)

// Bands lists every band from busiest to quietest, the order zone sets are
// reported in.
var Bands = []Band{High, Medium, Low}

// Classifier thresholds. Lower bounds are inclusive: 80 is medium, 160 is high.
const (
	MediumThreshold = 80
	HighThreshold   = 160
)

var (
	// ErrNegativeCount is returned when classifying a negative people count.
	ErrNegativeCount = errors.New("people count must be non-negative")

	// ErrUnknownBand is returned when parsing a string that is not a band.
	ErrUnknownBand = errors.New("unknown crowd band")
)

// Classify maps a people count to its band.
func Classify(peopleCount int) (Band, error) {
	if peopleCount < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegativeCount, peopleCount)
	}
	return classify(peopleCount), nil
}

// classify assumes a non-negative count.
func classify(peopleCount int) Band {
	switch {
	case peopleCount < MediumThreshold:
		return Low
	case peopleCount < HighThreshold:
		return Medium
	default:
		return High
	}
}

// ParseBand parses a band name case-insensitively. The empty string parses
// to the empty Band, which callers treat as "infer".
func ParseBand(s string) (Band, error) {
	switch b := Band(strings.ToLower(strings.TrimSpace(s))); b {
	case "", Low, Medium, High:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBand, s)
	}
}

// Valid reports whether b is one of the three bands.
func (b Band) Valid() bool {
	return b == Low || b == Medium || b == High
}

// String returns the band name.
func (b Band) String() string {
	return string(b)
}
