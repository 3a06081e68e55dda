package rating

import (
	"fmt"

	"vrating/internal/models"
)

// scoreEmotionalDiscipline rates the share of trades tagged with a
// disciplined emotional state among trades that carry any tag at all.
// Untagged trades are excluded from the ratio, not counted as negative.
func scoreEmotionalDiscipline(trades []models.Trade) (float64, []string) {
	if len(trades) == 0 {
		return NeutralScore, []string{"No trades to evaluate"}
	}

	tagged := 0
	positive := 0
	negative := 0
	for _, t := range trades {
		if t.Emotion == nil {
			continue
		}
		tagged++
		if t.Emotion.IsPositive() {
			positive++
		} else if t.Emotion.IsNegative() {
			negative++
		}
	}

	if tagged == 0 {
		return NeutralScore, []string{"No emotional tags recorded"}
	}

	ratio := float64(positive) / float64(tagged)
	score := disciplineScore(ratio)

	metrics := []string{
		fmt.Sprintf("Disciplined states: %d of %d tagged trades (%.1f%%)", positive, tagged, ratio*100),
		fmt.Sprintf("Negative states: %d (untagged excluded: %d)", negative, len(trades)-tagged),
	}
	return clamp(score, MinScore, MaxScore), metrics
}

func disciplineScore(ratio float64) float64 {
	switch {
	case ratio > 0.90:
		return 9.5
	case ratio > 0.75:
		return 8.0
	case ratio > 0.60:
		return 6.5
	case ratio > 0.45:
		return 5.0
	case ratio > 0.30:
		return 3.5
	default:
		return 2.0
	}
}
