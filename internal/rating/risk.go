package rating

import (
	"fmt"
	"math"
	"sort"
	"time"

	"vrating/internal/models"
)

// scoreRiskManagement rates the maximum drawdown of cumulative P&L over
// chronological trade order and the fraction of outsized losses. Lower
// metrics score higher; boundary values resolve to the worse band.
func scoreRiskManagement(trades []models.Trade) (float64, []string) {
	if len(trades) == 0 {
		return NeutralScore, []string{"No trades to evaluate"}
	}

	ordered := chronological(trades)

	var notional, absSum float64
	for _, t := range ordered {
		notional += t.Notional()
		absSum += math.Abs(t.PnL)
	}
	meanAbs := absSum / float64(len(ordered))

	// Equity starts at the entry notional baseline so the drawdown is a
	// percentage of capital deployed rather than of raw P&L.
	base := notional
	if base <= 0 {
		base = math.Max(absSum, 1)
	}

	equity := base
	peak := base
	maxDrawdown := 0.0
	for _, t := range ordered {
		equity += t.PnL
		if equity > peak {
			peak = equity
		}
		if peak > 0 {
			dd := (peak - equity) / peak * 100
			if dd > maxDrawdown {
				maxDrawdown = dd
			}
		}
	}

	largeLosses := 0
	losses := 0
	threshold := 2 * meanAbs
	for _, t := range ordered {
		if t.PnL < 0 {
			losses++
			if threshold > 0 && -t.PnL > threshold {
				largeLosses++
			}
		}
	}
	largeLossFrac := 0.0
	if losses > 0 {
		largeLossFrac = float64(largeLosses) / float64(len(ordered))
	}

	score := (drawdownScore(maxDrawdown) + largeLossScore(largeLossFrac)) / 2

	metrics := []string{
		fmt.Sprintf("Max drawdown: %.1f%%", maxDrawdown),
		fmt.Sprintf("Large losses: %d of %d trades (%.1f%%)", largeLosses, len(ordered), largeLossFrac*100),
	}
	return clamp(score, MinScore, MaxScore), metrics
}

// chronological returns a copy of trades sorted by exit time, falling
// back to trade date and then entry time for records missing timestamps.
func chronological(trades []models.Trade) []models.Trade {
	ordered := make([]models.Trade, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return tradeClock(ordered[i]).Before(tradeClock(ordered[j]))
	})
	return ordered
}

func tradeClock(t models.Trade) time.Time {
	if !t.ExitTime.IsZero() {
		return t.ExitTime
	}
	if !t.TradeDate.IsZero() {
		return t.TradeDate
	}
	return t.EntryTime
}

func drawdownScore(drawdownPct float64) float64 {
	switch {
	case drawdownPct < 5:
		return 9.0
	case drawdownPct < 10:
		return 7.5
	case drawdownPct < 20:
		return 6.0
	case drawdownPct < 30:
		return 4.5
	case drawdownPct < 50:
		return 3.0
	default:
		return 1.5
	}
}

func largeLossScore(fraction float64) float64 {
	switch {
	case fraction < 0.05:
		return 9.0
	case fraction < 0.15:
		return 7.5
	case fraction < 0.30:
		return 5.5
	case fraction < 0.50:
		return 3.5
	default:
		return 2.5
	}
}
