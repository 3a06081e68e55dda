package rating

// Describe maps an overall score to one of nine fixed performance bands.
// Scores outside [1, 10] are clamped before lookup; the result is never
// empty.
func Describe(score float64) string {
	score = clamp(score, MinScore, MaxScore)
	switch {
	case score >= 9.0:
		return "Exceptional - Elite trading performance"
	case score >= 8.0:
		return "Excellent - Consistently strong results"
	case score >= 7.0:
		return "Very Good - Solid edge with minor gaps"
	case score >= 6.0:
		return "Good - Profitable with room to grow"
	case score >= 5.0:
		return "Average - Mixed results, needs focus"
	case score >= 4.0:
		return "Below Average - Leaks outweigh strengths"
	case score >= 3.0:
		return "Poor - Significant weaknesses to address"
	case score >= 2.0:
		return "Very Poor - Fundamental issues present"
	default:
		return "Critical - Complete review required"
	}
}
