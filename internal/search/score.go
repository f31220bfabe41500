// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import "math"

// ScoreMatch returns the percentage of input keywords found in candidate,
// rounded to 2 decimals. The numerator counts distinct shared keywords; the
// denominator is len(input) including repeats, so ["a","a","b"] against
// ["a"] scores 33.33. An empty input scores 0.
func ScoreMatch(input, candidate []string) float64 {
	if len(input) == 0 {
		return 0
	}
	return roundPercentage(float64(sharedKeywords(input, candidate)) / float64(len(input)) * 100)
}

// sharedKeywords returns the size of the intersection of the distinct
// tokens in a and b.
func sharedKeywords(a, b []string) int {
	set := make(map[string]bool, len(b))
	for _, t := range b {
		set[t] = true
	}
	seen := make(map[string]bool, len(a))
	count := 0
	for _, t := range a {
		if seen[t] {
			continue
		}
		seen[t] = true
		if set[t] {
			count++
		}
	}
	return count
}

// roundPercentage rounds to 2 decimals, half away from zero.
func roundPercentage(p float64) float64 {
	return math.Round(p*100) / 100
}
