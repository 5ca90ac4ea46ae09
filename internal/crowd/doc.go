// Footfall - Crowd-Aware Business Siting Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

/*
Package crowd estimates footfall for points of interest and classifies it
into intensity bands.

# Classification

Classify maps a people count onto three bands with inclusive lower bounds:

	count <  80        -> low
	80 <= count < 160  -> medium
	count >= 160       -> high

Negative counts are rejected with ErrNegativeCount.

# Profiles

EstimateBaseline looks up a baseline footfall by category, first match wins:

	restaurant, cafe, fast_food    110
	mall, attraction               140
	school, college, university    120
	park                            70
	anything else                   90

BuildProfile multiplies the baseline by four fixed time-of-day factors
(morning 0.55, midday 0.85, evening 1.10, night 0.65), rounds each product
to the nearest integer and classifies it. The best time to visit is the
first slot classified low, or the morning slot when none is.

Both functions are pure: the same category always yields the same profile.

# Usage

	p := crowd.BuildProfile(category.Normalize("Cafe"))
	fmt.Println(p.Baseline, p.BestTime) // 110 morning

	band, err := crowd.Classify(p.Slots[2].PeopleCount)
*/
package crowd
