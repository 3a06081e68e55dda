package rating

import (
	"fmt"

	"vrating/internal/models"
)

// scoreProfitability rates aggregate net P&L relative to the entry
// notional baseline together with the win rate. Both ratios pass through
// banded curves; boundary values resolve to the lower band.
func scoreProfitability(trades []models.Trade) (float64, []string) {
	if len(trades) == 0 {
		return NeutralScore, []string{"No trades to evaluate"}
	}

	var netPnL, notional float64
	wins := 0
	for _, t := range trades {
		netPnL += t.PnL
		notional += t.Notional()
		if t.IsWin() {
			wins++
		}
	}

	winRate := float64(wins) / float64(len(trades))

	// Without any notional the P&L percentage is meaningless; fall back
	// to the sign of the net result.
	pnlPct := 0.0
	if notional > 0 {
		pnlPct = netPnL / notional * 100
	} else if netPnL > 0 {
		pnlPct = 1
	} else if netPnL < 0 {
		pnlPct = -1
	}

	score := (winRateScore(winRate) + pnlPctScore(pnlPct)) / 2

	metrics := []string{
		fmt.Sprintf("Win rate: %.1f%% (%d/%d)", winRate*100, wins, len(trades)),
		fmt.Sprintf("Net P&L: %+.2f (%.1f%% of notional)", netPnL, pnlPct),
	}
	return clamp(score, MinScore, MaxScore), metrics
}

func winRateScore(winRate float64) float64 {
	switch {
	case winRate > 0.70:
		return 9.5
	case winRate > 0.60:
		return 8.0
	case winRate > 0.50:
		return 6.5
	case winRate > 0.40:
		return 5.0
	case winRate > 0.30:
		return 3.0
	default:
		return 1.5
	}
}

func pnlPctScore(pnlPct float64) float64 {
	switch {
	case pnlPct > 50:
		return 9.5
	case pnlPct > 30:
		return 8.0
	case pnlPct > 10:
		return 6.5
	case pnlPct > 0:
		return 5.0
	case pnlPct > -10:
		return 3.0
	default:
		return 1.5
	}
}
