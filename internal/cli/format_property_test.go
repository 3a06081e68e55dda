// Package cli provides the command-line interface for the rating application.
package cli

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property 1: Gauge rendering is bounded and monotone
//
// For any score, the gauge has exactly the requested width, and a higher
// score never produces a shorter filled segment.
func TestProperty_GaugeBoundedAndMonotone(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Gauge has the requested width", prop.ForAll(
		func(score float64, width int) bool {
			gauge := FormatGauge(score, width)
			runes := []rune(gauge)
			if len(runes) != width {
				t.Logf("Expected width %d for score %f, got %d", width, score, len(runes))
				return false
			}
			for _, r := range runes {
				if r != '█' && r != '░' {
					return false
				}
			}
			return true
		},
		gen.Float64Range(-5, 15),
		gen.IntRange(1, 60),
	))

	properties.Property("Higher score never shrinks the filled segment", prop.ForAll(
		func(a, b float64) bool {
			lo, hi := a, b
			if lo > hi {
				lo, hi = hi, lo
			}
			return gaugeFill(FormatGauge(lo, 20)) <= gaugeFill(FormatGauge(hi, 20))
		},
		gen.Float64Range(1, 10),
		gen.Float64Range(1, 10),
	))

	properties.Property("Stars stays within five", prop.ForAll(
		func(score float64) bool {
			stars := FormatStars(score)
			filled := strings.Count(stars, "★")
			empty := strings.Count(stars, "☆")
			return filled >= 1 && filled+empty == 5
		},
		gen.Float64Range(-5, 15),
	))

	properties.TestingRun(t)
}

func gaugeFill(gauge string) int {
	return strings.Count(gauge, "█")
}

// Property 2: Truncation never exceeds the limit
func TestProperty_TruncateLength(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("TruncateString output never exceeds maxLen", prop.ForAll(
		func(s string, maxLen int) bool {
			return len(TruncateString(s, maxLen)) <= maxLen
		},
		gen.AlphaString(),
		gen.IntRange(1, 80),
	))

	properties.Property("Padding produces at least the requested length", prop.ForAll(
		func(s string, length int) bool {
			return len(PadRight(s, length)) >= length && len(PadLeft(s, length)) >= length
		},
		gen.AlphaString(),
		gen.IntRange(0, 40),
	))

	properties.TestingRun(t)
}

// TestFormatStarsExamples tests specific star renderings.
func TestFormatStarsExamples(t *testing.T) {
	testCases := []struct {
		score    float64
		expected string
	}{
		{1.0, "★☆☆☆☆"},
		{5.0, "★★★☆☆"},
		{9.0, "★★★★★"},
		{10.0, "★★★★★"},
		{-3.0, "★☆☆☆☆"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			result := FormatStars(tc.score)
			if result != tc.expected {
				t.Errorf("FormatStars(%f) = %s, want %s", tc.score, result, tc.expected)
			}
		})
	}
}
