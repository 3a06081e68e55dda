package rating

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"vrating/internal/models"
)

// Property 1: VRating scores stay within [1.0, 10.0]
//
// Property: For any trade set, including malformed records, the overall
// score and every category score must lie within [1.0, 10.0].

// buildTrades constructs a deterministic trade set from primitive
// generator outputs. wins out of count trades are profitable; every
// third trade carries an emotional tag and notes.
func buildTrades(count, wins int, winPnL, lossPnL, price float64) []models.Trade {
	if count <= 0 {
		return nil
	}
	if wins > count {
		wins = count
	}
	base := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	trades := make([]models.Trade, count)
	for i := range trades {
		pnl := -math.Abs(lossPnL)
		emotion := &models.EmotionalState{Primary: models.EmotionTilt, Intensity: 7}
		if i < wins {
			pnl = math.Abs(winPnL)
			emotion = &models.EmotionalState{Primary: models.EmotionDiscipline, Intensity: 5}
		}
		trade := models.Trade{
			ID:         fmt.Sprintf("T%03d", i),
			Symbol:     "AAPL",
			Market:     models.MarketStock,
			Side:       models.OrderSideBuy,
			Quantity:   10,
			EntryPrice: price,
			ExitPrice:  price + pnl/10,
			PnL:        pnl,
			TradeDate:  base.AddDate(0, 0, i),
			EntryTime:  base.AddDate(0, 0, i),
			ExitTime:   base.AddDate(0, 0, i).Add(2 * time.Hour),
		}
		if i%3 == 0 {
			trade.Emotion = emotion
			trade.Notes = "Planned breakout entry with confirmation"
			trade.StrategyID = "S1"
		}
		trades[i] = trade
	}
	return trades
}

func TestProperty_ScoresWithinBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Overall and category scores are within [1, 10]", prop.ForAll(
		func(count, wins int, winPnL, lossPnL, price float64) bool {
			trades := buildTrades(count, wins, winPnL, lossPnL, price)
			result := Calculate(trades)

			if result.OverallScore < MinScore || result.OverallScore > MaxScore {
				return false
			}
			if len(result.Categories) != len(Categories) {
				return false
			}
			for _, cs := range result.Categories {
				if cs.Score < MinScore || cs.Score > MaxScore {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 120),
		gen.IntRange(0, 120),
		gen.Float64Range(0, 5000),
		gen.Float64Range(0, 5000),
		gen.Float64Range(1, 2000),
	))

	properties.TestingRun(t)
}

// Property 2: Determinism and idempotence
//
// Property: Calculating the rating for the same trade set repeatedly
// yields identical scores on every call.
func TestProperty_Determinism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Repeated calculation is idempotent", prop.ForAll(
		func(count, wins int, winPnL, lossPnL float64) bool {
			trades := buildTrades(count, wins, winPnL, lossPnL, 150)

			first := Calculate(trades)
			for i := 0; i < 4; i++ {
				next := Calculate(trades)
				if math.Abs(next.OverallScore-first.OverallScore) > 0.001 {
					return false
				}
				for j, cs := range next.Categories {
					if math.Abs(cs.Score-first.Categories[j].Score) > 0.001 {
						return false
					}
				}
				if len(next.Adjustments) != len(first.Adjustments) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 80),
		gen.IntRange(0, 80),
		gen.Float64Range(0, 3000),
		gen.Float64Range(0, 3000),
	))

	properties.TestingRun(t)
}

// Property 3: Contribution reconstruction
//
// Property: The sum of category contributions plus the applied
// adjustments reconstructs the overall score before clamping and
// rounding.
func TestProperty_ContributionReconstruction(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Weighted contributions reconstruct the overall score", prop.ForAll(
		func(count, wins int, winPnL, lossPnL float64) bool {
			trades := buildTrades(count, wins, winPnL, lossPnL, 150)
			result := Calculate(trades)

			weights := DefaultWeights()
			if weights.Total() != 100 {
				return false
			}

			raw := 0.0
			for _, cs := range result.Categories {
				raw += cs.Score * cs.Weight / 100
			}
			for _, adj := range result.Adjustments {
				raw += adj.Value
			}
			expected := math.Round(clampForTest(raw)*100) / 100
			return math.Abs(expected-result.OverallScore) <= 0.011
		},
		gen.IntRange(0, 80),
		gen.IntRange(0, 80),
		gen.Float64Range(0, 3000),
		gen.Float64Range(0, 3000),
	))

	properties.TestingRun(t)
}

func clampForTest(v float64) float64 {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// Property 4: Profitability is monotone in win rate
//
// Property: Converting a losing trade into a winning trade of the same
// magnitude never decreases the profitability score.
func TestProperty_ProfitabilityMonotoneInWinRate(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Higher win rate never lowers profitability", prop.ForAll(
		func(count, wins int, magnitude float64) bool {
			if wins >= count {
				wins = count - 1
			}
			lower := buildTrades(count, wins, magnitude, magnitude, 150)
			higher := buildTrades(count, wins+1, magnitude, magnitude, 150)

			lowScore, _ := scoreProfitability(Normalize(lower))
			highScore, _ := scoreProfitability(Normalize(higher))
			return highScore >= lowScore
		},
		gen.IntRange(2, 100),
		gen.IntRange(0, 99),
		gen.Float64Range(1, 2000),
	))

	properties.TestingRun(t)
}

// Property 5: Risk score is monotone in drawdown
//
// Property: For the banded drawdown curve, a larger maximum drawdown
// never produces a higher sub-score.
func TestProperty_DrawdownMonotone(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Larger drawdown never scores higher", prop.ForAll(
		func(dd1, dd2 float64) bool {
			if dd1 > dd2 {
				dd1, dd2 = dd2, dd1
			}
			return drawdownScore(dd1) >= drawdownScore(dd2)
		},
		gen.Float64Range(0, 100),
		gen.Float64Range(0, 100),
	))

	properties.TestingRun(t)
}

// Property 6: Descriptor total order
//
// Property: Every score in [1, 10] maps to a non-empty label, and a
// higher score never maps to a lower band.
func TestProperty_DescriptorTotalOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Describe is total and monotone", prop.ForAll(
		func(score1, score2 float64) bool {
			d1 := Describe(score1)
			d2 := Describe(score2)
			if d1 == "" || d2 == "" {
				return false
			}
			if score1 > score2 {
				return bandRank(d1) >= bandRank(d2)
			}
			if score1 < score2 {
				return bandRank(d1) <= bandRank(d2)
			}
			return d1 == d2
		},
		gen.Float64Range(1, 10),
		gen.Float64Range(1, 10),
	))

	properties.TestingRun(t)
}

// bandRank returns a numeric rank for a band label (higher = better).
func bandRank(label string) int {
	bands := []string{
		"Critical - Complete review required",
		"Very Poor - Fundamental issues present",
		"Poor - Significant weaknesses to address",
		"Below Average - Leaks outweigh strengths",
		"Average - Mixed results, needs focus",
		"Good - Profitable with room to grow",
		"Very Good - Solid edge with minor gaps",
		"Excellent - Consistently strong results",
		"Exceptional - Elite trading performance",
	}
	for i, b := range bands {
		if b == label {
			return i
		}
	}
	return -1
}

// Property 7: Normalizer never leaves non-finite numerics behind
//
// Property: After Normalize, every trade has finite P&L, prices, and a
// non-negative quantity, regardless of input.
func TestProperty_NormalizeProducesFiniteFields(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	malformed := []float64{math.NaN(), math.Inf(1), math.Inf(-1), -42.5, 0, 1e18}

	properties.Property("Normalized trades have finite, valid numerics", prop.ForAll(
		func(pnlIdx, qtyIdx, priceIdx int) bool {
			trades := []models.Trade{{
				ID:         "T1",
				PnL:        malformed[pnlIdx%len(malformed)],
				Quantity:   malformed[qtyIdx%len(malformed)],
				EntryPrice: malformed[priceIdx%len(malformed)],
			}}
			cleaned := Normalize(trades)
			if len(cleaned) != 1 {
				return false
			}
			c := cleaned[0]
			if math.IsNaN(c.PnL) || math.IsInf(c.PnL, 0) {
				return false
			}
			if math.IsNaN(c.EntryPrice) || math.IsInf(c.EntryPrice, 0) {
				return false
			}
			return c.Quantity >= 0 && !math.IsNaN(c.Quantity) && !math.IsInf(c.Quantity, 0)
		},
		gen.IntRange(0, 5),
		gen.IntRange(0, 5),
		gen.IntRange(0, 5),
	))

	properties.TestingRun(t)
}

// Property 8: Custom weights still produce valid scores
//
// Property: Any non-degenerate weight set yields an overall score within
// [1, 10].
func TestProperty_CustomWeightsProduceValidScore(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("Custom weights keep the overall score in [1, 10]", prop.ForAll(
		func(count, wins int, wProfit, wRisk, wConsistency float64) bool {
			weights := Weights{
				Profitability:       math.Abs(wProfit),
				RiskManagement:      math.Abs(wRisk),
				Consistency:         math.Abs(wConsistency),
				EmotionalDiscipline: 10,
				JournalingAdherence: 10,
			}
			calc := NewCalculatorWithWeights(weights)
			result := calc.Calculate(buildTrades(count, wins, 500, 300, 150))
			return result.OverallScore >= MinScore && result.OverallScore <= MaxScore
		},
		gen.IntRange(0, 60),
		gen.IntRange(0, 60),
		gen.Float64Range(0, 50),
		gen.Float64Range(0, 50),
		gen.Float64Range(0, 50),
	))

	properties.TestingRun(t)
}
