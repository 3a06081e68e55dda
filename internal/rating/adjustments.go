package rating

import "vrating/internal/models"

// Scores holds the five category scores for adjustment rule evaluation.
type Scores struct {
	Profitability       float64
	RiskManagement      float64
	Consistency         float64
	EmotionalDiscipline float64
	JournalingAdherence float64
}

func (s *Scores) set(name Category, score float64) {
	switch name {
	case Profitability:
		s.Profitability = score
	case RiskManagement:
		s.RiskManagement = score
	case Consistency:
		s.Consistency = score
	case EmotionalDiscipline:
		s.EmotionalDiscipline = score
	case JournalingAdherence:
		s.JournalingAdherence = score
	}
}

// Min returns the lowest of the five category scores.
func (s Scores) Min() float64 {
	low := s.Profitability
	for _, v := range []float64{s.RiskManagement, s.Consistency, s.EmotionalDiscipline, s.JournalingAdherence} {
		if v < low {
			low = v
		}
	}
	return low
}

// AdjustmentRule is a pure predicate over the category scores and the
// normalized trade set that may emit one adjustment. Rules are evaluated
// in order and must be deterministic for a given snapshot.
type AdjustmentRule struct {
	Name  string
	Check func(scores Scores, trades []models.Trade) *Adjustment
}

// DefaultAdjustmentRules returns the standard bonus/penalty rules applied
// after weighted aggregation.
func DefaultAdjustmentRules() []AdjustmentRule {
	return []AdjustmentRule{
		{
			Name: "all-around-excellence",
			Check: func(s Scores, trades []models.Trade) *Adjustment {
				if s.Profitability >= 8 && s.RiskManagement >= 8 {
					return &Adjustment{
						Type:        AdjustmentBonus,
						Description: "Exceptional all-around performance",
						Value:       0.25,
					}
				}
				return nil
			},
		},
		{
			Name: "exceptional-consistency",
			Check: func(s Scores, trades []models.Trade) *Adjustment {
				if s.Consistency >= 9 && len(trades) >= 10 {
					return &Adjustment{
						Type:        AdjustmentBonus,
						Description: "Exceptional consistency over a meaningful sample",
						Value:       0.15,
					}
				}
				return nil
			},
		},
		{
			Name: "severe-category-failure",
			Check: func(s Scores, trades []models.Trade) *Adjustment {
				if s.Min() <= 2 && len(trades) >= 20 {
					return &Adjustment{
						Type:        AdjustmentPenalty,
						Description: "Severe single-category failure at high volume",
						Value:       -0.25,
					}
				}
				return nil
			},
		},
		{
			Name: "discipline-breakdown",
			Check: func(s Scores, trades []models.Trade) *Adjustment {
				if s.EmotionalDiscipline > 2 {
					return nil
				}
				tagged := 0
				for _, t := range trades {
					if t.Emotion != nil {
						tagged++
					}
				}
				if tagged >= 5 {
					return &Adjustment{
						Type:        AdjustmentPenalty,
						Description: "Severe emotional discipline breakdown",
						Value:       -0.20,
					}
				}
				return nil
			},
		},
	}
}

// applyRules evaluates the rule list in order and collects the emitted
// adjustments.
func applyRules(rules []AdjustmentRule, scores Scores, trades []models.Trade) []Adjustment {
	var adjustments []Adjustment
	for _, rule := range rules {
		if adj := rule.Check(scores, trades); adj != nil {
			adjustments = append(adjustments, *adj)
		}
	}
	return adjustments
}
