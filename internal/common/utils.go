package common

import (
	"math"
	"strings"
)

// HasAny returns true if s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// RoundC rounds to the nearest whole unit, away from zero on .5.
func RoundC(v float64) int {
	return int(math.Round(v))
}

// MPHFromMS converts metres per second to miles per hour.
func MPHFromMS(ms float64) float64 {
	return ms * 2.23694
}
