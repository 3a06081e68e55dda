// Package rating implements the VRating scoring engine: it converts a
// trader's historical trade records into a normalized 1.0-10.0 performance
// rating across five weighted categories, applies bonus/penalty
// adjustments, and maps the result to a descriptive performance band.
//
// The engine is a pure, deterministic transformation over in-memory data.
// It performs no I/O and never returns an error for malformed domain
// input: missing fields are defaulted by the normalizer and any internal
// panic is absorbed into a neutral result.
package rating

import (
	"math"
	"time"

	"vrating/internal/models"
)

// Category names the five scoring dimensions.
type Category string

const (
	Profitability       Category = "profitability"
	RiskManagement      Category = "riskManagement"
	Consistency         Category = "consistency"
	EmotionalDiscipline Category = "emotionalDiscipline"
	JournalingAdherence Category = "journalingAdherence"
)

// Categories lists the five dimensions in their fixed evaluation order.
var Categories = []Category{
	Profitability,
	RiskManagement,
	Consistency,
	EmotionalDiscipline,
	JournalingAdherence,
}

// Score bounds and the neutral score returned when there is nothing to
// rate. The neutral value is uniform across all five scorers.
const (
	MinScore     = 1.0
	MaxScore     = 10.0
	NeutralScore = 5.0
)

// Weights defines the fixed percentage weight of each category.
// The five weights sum to 100.
type Weights struct {
	Profitability       float64
	RiskManagement      float64
	Consistency         float64
	EmotionalDiscipline float64
	JournalingAdherence float64
}

// DefaultWeights returns the standard category weights.
func DefaultWeights() Weights {
	return Weights{
		Profitability:       30,
		RiskManagement:      25,
		Consistency:         20,
		EmotionalDiscipline: 15,
		JournalingAdherence: 10,
	}
}

// Total returns the sum of the five weights.
func (w Weights) Total() float64 {
	return w.Profitability + w.RiskManagement + w.Consistency +
		w.EmotionalDiscipline + w.JournalingAdherence
}

func (w Weights) weight(c Category) float64 {
	switch c {
	case Profitability:
		return w.Profitability
	case RiskManagement:
		return w.RiskManagement
	case Consistency:
		return w.Consistency
	case EmotionalDiscipline:
		return w.EmotionalDiscipline
	case JournalingAdherence:
		return w.JournalingAdherence
	}
	return 0
}

// CategoryScore is the outcome of one category scorer together with the
// weight it carries in the overall rating.
type CategoryScore struct {
	Name         Category `json:"name"`
	Score        float64  `json:"score"`
	Weight       float64  `json:"weight"`
	Contribution float64  `json:"contribution"`
	KeyMetrics   []string `json:"keyMetrics"`
}

// AdjustmentType classifies an adjustment as a bonus or a penalty.
type AdjustmentType string

const (
	AdjustmentBonus   AdjustmentType = "bonus"
	AdjustmentPenalty AdjustmentType = "penalty"
)

// Adjustment is a small signed correction applied after weighted
// aggregation for a cross-category pattern.
type Adjustment struct {
	Type        AdjustmentType `json:"type"`
	Description string         `json:"description"`
	Value       float64        `json:"value"`
}

// Result is the immutable output of a rating computation.
type Result struct {
	OverallScore float64         `json:"overallScore"`
	Categories   []CategoryScore `json:"categoryScores"`
	Adjustments  []Adjustment    `json:"adjustments"`
	CalculatedAt time.Time       `json:"calculatedAt"`
}

// Category returns the score entry for the named category.
func (r Result) Category(name Category) (CategoryScore, bool) {
	for _, cs := range r.Categories {
		if cs.Name == name {
			return cs, true
		}
	}
	return CategoryScore{}, false
}

// scorerFunc computes one category score plus its display metrics from a
// normalized trade set.
type scorerFunc func(trades []models.Trade) (float64, []string)

// Calculator computes VRatings with a fixed weight set and adjustment
// rule list. The zero value is not usable; use NewCalculator.
type Calculator struct {
	weights Weights
	rules   []AdjustmentRule
}

// NewCalculator creates a calculator with the default weights and
// adjustment rules.
func NewCalculator() *Calculator {
	return NewCalculatorWithWeights(DefaultWeights())
}

// NewCalculatorWithWeights creates a calculator with custom weights.
// Weights are normalized by their total during aggregation, so a weight
// set that does not sum to 100 still produces a score in [1, 10].
func NewCalculatorWithWeights(weights Weights) *Calculator {
	if weights.Total() <= 0 {
		weights = DefaultWeights()
	}
	return &Calculator{
		weights: weights,
		rules:   DefaultAdjustmentRules(),
	}
}

// Weights returns the calculator's weight set.
func (c *Calculator) Weights() Weights {
	return c.weights
}

// Calculate computes the VRating for a trade set. A nil or empty slice is
// valid input and yields the neutral rating. Calculate never panics:
// any internal failure degrades to the neutral result.
func (c *Calculator) Calculate(trades []models.Trade) (result Result) {
	defer func() {
		if recover() != nil {
			result = c.neutralResult()
		}
	}()

	normalized := Normalize(trades)

	scorers := []struct {
		name Category
		fn   scorerFunc
	}{
		{Profitability, scoreProfitability},
		{RiskManagement, scoreRiskManagement},
		{Consistency, scoreConsistency},
		{EmotionalDiscipline, scoreEmotionalDiscipline},
		{JournalingAdherence, scoreJournalingAdherence},
	}

	total := c.weights.Total()
	categories := make([]CategoryScore, 0, len(scorers))
	scores := Scores{}
	raw := 0.0
	for _, s := range scorers {
		score, metrics := s.fn(normalized)
		score = round2(clamp(score, MinScore, MaxScore))
		weight := c.weights.weight(s.name)
		contribution := score * weight / total
		raw += contribution
		categories = append(categories, CategoryScore{
			Name:         s.name,
			Score:        score,
			Weight:       weight,
			Contribution: round2(contribution),
			KeyMetrics:   metrics,
		})
		scores.set(s.name, score)
	}

	adjustments := applyRules(c.rules, scores, normalized)
	for _, adj := range adjustments {
		raw += adj.Value
	}

	return Result{
		OverallScore: round2(clamp(raw, MinScore, MaxScore)),
		Categories:   categories,
		Adjustments:  adjustments,
		CalculatedAt: time.Now().UTC(),
	}
}

// CalculateSingle computes the VRating for a single trade, for per-trade
// inline display.
func (c *Calculator) CalculateSingle(trade models.Trade) Result {
	return c.Calculate([]models.Trade{trade})
}

// neutralResult is the degraded-but-valid result used when a computation
// cannot proceed.
func (c *Calculator) neutralResult() Result {
	total := c.weights.Total()
	categories := make([]CategoryScore, 0, len(Categories))
	raw := 0.0
	for _, name := range Categories {
		weight := c.weights.weight(name)
		contribution := NeutralScore * weight / total
		raw += contribution
		categories = append(categories, CategoryScore{
			Name:         name,
			Score:        NeutralScore,
			Weight:       weight,
			Contribution: round2(contribution),
			KeyMetrics:   []string{"No trade data available"},
		})
	}
	return Result{
		OverallScore: round2(clamp(raw, MinScore, MaxScore)),
		Categories:   categories,
		Adjustments:  nil,
		CalculatedAt: time.Now().UTC(),
	}
}

// Calculate computes the VRating for a trade set using default weights
// and adjustment rules.
func Calculate(trades []models.Trade) Result {
	return NewCalculator().Calculate(trades)
}

// CalculateSingle computes the VRating for a single trade using default
// weights and adjustment rules.
func CalculateSingle(trade models.Trade) Result {
	return NewCalculator().CalculateSingle(trade)
}

// clamp restricts a value to the given range.
func clamp(value, minVal, maxVal float64) float64 {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}

// round2 rounds to two decimal places.
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
