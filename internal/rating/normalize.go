package rating

import (
	"math"

	"vrating/internal/models"
)

// Normalize is the single authoritative defaulting pass over raw trade
// records. It returns a cleaned copy in which every trade has a finite
// P&L, a non-negative finite quantity, finite prices, and an emotional
// state whose intensity lies in [1, 10]. A nil or empty input yields an
// empty slice; Normalize never returns an error.
func Normalize(trades []models.Trade) []models.Trade {
	if len(trades) == 0 {
		return []models.Trade{}
	}

	cleaned := make([]models.Trade, len(trades))
	for i, t := range trades {
		t.PnL = finiteOrZero(t.PnL)
		t.Quantity = finiteOrZero(t.Quantity)
		if t.Quantity < 0 {
			t.Quantity = 0
		}
		t.EntryPrice = finiteOrZero(t.EntryPrice)
		t.ExitPrice = finiteOrZero(t.ExitPrice)
		if t.Emotion != nil {
			e := *t.Emotion
			if e.Intensity < 1 {
				e.Intensity = 1
			}
			if e.Intensity > 10 {
				e.Intensity = 10
			}
			t.Emotion = &e
		}
		cleaned[i] = t
	}
	return cleaned
}

// finiteOrZero replaces NaN and infinities with zero.
func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
