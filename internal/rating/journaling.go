package rating

import (
	"fmt"
	"strings"

	"vrating/internal/models"
)

// minNotesLength is the shortest note counted as descriptive.
const minNotesLength = 10

// scoreJournalingAdherence rates how consistently trades carry
// descriptive notes and a linked strategy. The two ratios pass through
// the same banded curve and are averaged.
func scoreJournalingAdherence(trades []models.Trade) (float64, []string) {
	if len(trades) == 0 {
		return NeutralScore, []string{"No trades to evaluate"}
	}

	noted := 0
	linked := 0
	for _, t := range trades {
		if len(strings.TrimSpace(t.Notes)) >= minNotesLength {
			noted++
		}
		if t.StrategyID != "" {
			linked++
		}
	}

	total := float64(len(trades))
	notesRatio := float64(noted) / total
	strategyRatio := float64(linked) / total
	score := (adherenceScore(notesRatio) + adherenceScore(strategyRatio)) / 2

	metrics := []string{
		fmt.Sprintf("Descriptive notes: %d of %d trades (%.1f%%)", noted, len(trades), notesRatio*100),
		fmt.Sprintf("Strategy linked: %d of %d trades (%.1f%%)", linked, len(trades), strategyRatio*100),
	}
	return clamp(score, MinScore, MaxScore), metrics
}

func adherenceScore(ratio float64) float64 {
	switch {
	case ratio > 0.90:
		return 9.5
	case ratio > 0.75:
		return 8.0
	case ratio > 0.50:
		return 6.5
	case ratio > 0.25:
		return 4.5
	case ratio > 0.10:
		return 3.0
	default:
		return 1.5
	}
}
