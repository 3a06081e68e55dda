package rating

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vrating/internal/models"
)

// eliteTrades builds the calibration scenario: 20 trades with 14 wins of
// +1000 and 6 losses of -200, all tagged with disciplined emotions and
// fully journaled.
func eliteTrades() []models.Trade {
	base := time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)
	trades := make([]models.Trade, 0, 20)
	for i := 0; i < 20; i++ {
		pnl := 1000.0
		if i%4 == 3 || i == 18 {
			pnl = -200.0
		}
		trades = append(trades, models.Trade{
			ID:         "T" + string(rune('A'+i)),
			Symbol:     "SPY",
			Market:     models.MarketStock,
			Side:       models.OrderSideBuy,
			Quantity:   10,
			EntryPrice: 100,
			ExitPrice:  100 + pnl/10,
			PnL:        pnl,
			TradeDate:  base.AddDate(0, 0, i),
			EntryTime:  base.AddDate(0, 0, i),
			ExitTime:   base.AddDate(0, 0, i).Add(3 * time.Hour),
			Emotion:    &models.EmotionalState{Primary: models.EmotionDiscipline, Intensity: 6},
			Notes:      "Followed the plan, entered on confirmation and exited at target",
			StrategyID: "momentum-breakout",
		})
	}
	return trades
}

func TestCalculateEmptyInput(t *testing.T) {
	for name, trades := range map[string][]models.Trade{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			result := Calculate(trades)

			assert.InDelta(t, NeutralScore, result.OverallScore, 0.001)
			require.Len(t, result.Categories, 5)
			for _, cs := range result.Categories {
				assert.InDelta(t, NeutralScore, cs.Score, 0.001, "category %s", cs.Name)
				assert.NotEmpty(t, cs.KeyMetrics)
			}
			assert.Empty(t, result.Adjustments)
			assert.False(t, result.CalculatedAt.IsZero())
			assert.Equal(t, "Average - Mixed results, needs focus", Describe(result.OverallScore))
		})
	}
}

func TestCalculateEliteScenario(t *testing.T) {
	result := Calculate(eliteTrades())

	assert.GreaterOrEqual(t, result.OverallScore, 7.5,
		"elite calibration set must land in the top bands, got %.2f", result.OverallScore)
	assert.LessOrEqual(t, result.OverallScore, 10.0)

	prof, ok := result.Category(Profitability)
	require.True(t, ok)
	assert.GreaterOrEqual(t, prof.Score, 8.0)

	risk, ok := result.Category(RiskManagement)
	require.True(t, ok)
	assert.GreaterOrEqual(t, risk.Score, 8.0)

	// Excellent profitability plus excellent risk management triggers the
	// all-around bonus.
	require.NotEmpty(t, result.Adjustments)
	assert.Equal(t, AdjustmentBonus, result.Adjustments[0].Type)
	assert.Positive(t, result.Adjustments[0].Value)
}

func TestCalculatePoorScenario(t *testing.T) {
	base := time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)
	trades := make([]models.Trade, 0, 20)
	for i := 0; i < 20; i++ {
		pnl := -500.0
		if i%5 == 0 {
			pnl = 100.0
		}
		trades = append(trades, models.Trade{
			ID:         "L" + string(rune('A'+i)),
			Symbol:     "TSLA",
			Market:     models.MarketStock,
			Side:       models.OrderSideSell,
			Quantity:   5,
			EntryPrice: 200,
			ExitPrice:  200 - pnl/5,
			PnL:        pnl,
			TradeDate:  base.AddDate(0, 0, i),
			ExitTime:   base.AddDate(0, 0, i).Add(time.Hour),
			Emotion:    &models.EmotionalState{Primary: models.EmotionRevenge, Intensity: 9},
		})
	}

	result := Calculate(trades)

	assert.LessOrEqual(t, result.OverallScore, 4.5)
	assert.GreaterOrEqual(t, result.OverallScore, 1.0)

	discipline, ok := result.Category(EmotionalDiscipline)
	require.True(t, ok)
	assert.LessOrEqual(t, discipline.Score, 2.0)

	journaling, ok := result.Category(JournalingAdherence)
	require.True(t, ok)
	assert.LessOrEqual(t, journaling.Score, 2.0)
}

func TestCalculateMalformedInput(t *testing.T) {
	trades := []models.Trade{
		{ID: "M1", PnL: math.NaN(), Quantity: math.Inf(1)},
		{ID: "M2", PnL: math.Inf(-1), Quantity: -3, EntryPrice: math.NaN()},
		{ID: "M3"},
	}

	var result Result
	assert.NotPanics(t, func() { result = Calculate(trades) })

	assert.GreaterOrEqual(t, result.OverallScore, 1.0)
	assert.LessOrEqual(t, result.OverallScore, 10.0)
	for _, cs := range result.Categories {
		assert.GreaterOrEqual(t, cs.Score, 1.0)
		assert.LessOrEqual(t, cs.Score, 10.0)
	}
}

func TestCalculateSingle(t *testing.T) {
	trade := models.Trade{
		ID:         "S1",
		Symbol:     "BTCUSD",
		Market:     models.MarketCrypto,
		Side:       models.OrderSideBuy,
		Quantity:   0.5,
		EntryPrice: 40000,
		ExitPrice:  41000,
		PnL:        500,
		Emotion:    &models.EmotionalState{Primary: models.EmotionPatience, Intensity: 4},
		Notes:      "Held through the retest before adding",
		StrategyID: "swing",
	}

	result := CalculateSingle(trade)

	require.Len(t, result.Categories, 5)
	assert.GreaterOrEqual(t, result.OverallScore, 1.0)
	assert.LessOrEqual(t, result.OverallScore, 10.0)

	prof, ok := result.Category(Profitability)
	require.True(t, ok)
	assert.Greater(t, prof.Score, NeutralScore, "a clean winning trade scores above neutral")
}

func TestDefaultWeightsSumToHundred(t *testing.T) {
	assert.Equal(t, 100.0, DefaultWeights().Total())
}

func TestNormalizeDefaults(t *testing.T) {
	trades := []models.Trade{
		{ID: "N1", PnL: math.NaN(), Quantity: -1, Emotion: &models.EmotionalState{Primary: models.EmotionFear, Intensity: 99}},
	}

	cleaned := Normalize(trades)

	require.Len(t, cleaned, 1)
	assert.Zero(t, cleaned[0].PnL)
	assert.Zero(t, cleaned[0].Quantity)
	require.NotNil(t, cleaned[0].Emotion)
	assert.Equal(t, 10, cleaned[0].Emotion.Intensity)

	// Input must not be mutated.
	assert.Equal(t, 99, trades[0].Emotion.Intensity)
}

func TestDescribeBands(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{10.0, "Exceptional - Elite trading performance"},
		{9.5, "Exceptional - Elite trading performance"},
		{9.0, "Exceptional - Elite trading performance"},
		{8.99, "Excellent - Consistently strong results"},
		{8.0, "Excellent - Consistently strong results"},
		{7.5, "Very Good - Solid edge with minor gaps"},
		{6.0, "Good - Profitable with room to grow"},
		{5.0, "Average - Mixed results, needs focus"},
		{4.2, "Below Average - Leaks outweigh strengths"},
		{3.0, "Poor - Significant weaknesses to address"},
		{2.0, "Very Poor - Fundamental issues present"},
		{1.99, "Critical - Complete review required"},
		{1.0, "Critical - Complete review required"},
		// Out-of-range input is clamped before lookup.
		{-5.0, "Critical - Complete review required"},
		{42.0, "Exceptional - Elite trading performance"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Describe(tc.score), "score %.2f", tc.score)
	}
}

func TestEmotionalDisciplineExcludesUntagged(t *testing.T) {
	trades := []models.Trade{
		{ID: "E1", PnL: 100, Emotion: &models.EmotionalState{Primary: models.EmotionPatience, Intensity: 5}},
		{ID: "E2", PnL: 100, Emotion: &models.EmotionalState{Primary: models.EmotionCalm, Intensity: 5}},
		{ID: "E3", PnL: -50}, // untagged, must not count as negative
		{ID: "E4", PnL: -50},
	}

	score, _ := scoreEmotionalDiscipline(Normalize(trades))

	// 2 of 2 tagged trades are positive: top band despite untagged losses.
	assert.GreaterOrEqual(t, score, 9.0)
}

func TestCalculatePerformance(t *testing.T) {
	trades := buildTrades(100, 60, 800, 400, 150)

	start := time.Now()
	Calculate(trades)
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 100*time.Millisecond, "scoring 100 trades took %v", elapsed)
}
