package rating

import (
	"fmt"
	"math"

	"vrating/internal/models"
)

// scoreConsistency rates the stability of per-trade P&L using the
// coefficient of variation. Low variance around a positive mean scores
// high; a negative mean scores low regardless of stability.
func scoreConsistency(trades []models.Trade) (float64, []string) {
	if len(trades) == 0 {
		return NeutralScore, []string{"No trades to evaluate"}
	}

	mean := 0.0
	for _, t := range trades {
		mean += t.PnL
	}
	mean /= float64(len(trades))

	variance := 0.0
	for _, t := range trades {
		d := t.PnL - mean
		variance += d * d
	}
	variance /= float64(len(trades))
	stdDev := math.Sqrt(variance)

	var score float64
	cv := 0.0
	switch {
	case mean > 0:
		cv = stdDev / mean
		score = variationScore(cv)
	case mean < 0:
		// Stable losing is still losing.
		score = 2.5
		cv = stdDev / -mean
	default:
		score = 4.0
	}

	metrics := []string{
		fmt.Sprintf("Avg P&L per trade: %+.2f", mean),
		fmt.Sprintf("P&L std dev: %.2f (CV %.2f)", stdDev, cv),
	}
	return clamp(score, MinScore, MaxScore), metrics
}

func variationScore(cv float64) float64 {
	switch {
	case cv < 0.5:
		return 9.0
	case cv < 1.0:
		return 7.5
	case cv < 2.0:
		return 6.0
	case cv < 3.0:
		return 4.5
	default:
		return 3.0
	}
}
