package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"vrating/internal/models"
)

// Property 1: Trade round-trip consistency
//
// Property: For any valid trade record, saving it to the database and then
// retrieving it by ID should produce an equivalent trade record.
func TestProperty_TradeRoundTripConsistency(t *testing.T) {
	dbPath := "test_trades_property.db"
	defer os.Remove(dbPath)

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	symbols := []string{"AAPL", "MSFT", "BTCUSDT", "ETHUSDT", "EURUSD", "TSLA", "NVDA", "SPY"}
	markets := []models.Market{models.MarketStock, models.MarketCrypto, models.MarketForex, models.MarketFutures}
	emotions := []models.Emotion{models.EmotionPatience, models.EmotionDiscipline, models.EmotionFOMO, models.EmotionRevenge, models.EmotionCalm}

	properties.Property("Trade round-trip: save then fetch by ID produces equivalent data", prop.ForAll(
		func(symbolIdx, marketIdx, emotionIdx int, quantity, entryPrice, pnl float64, tagged bool, intensity int) bool {
			ctx := context.Background()

			trade := models.Trade{
				Symbol:     symbols[symbolIdx%len(symbols)],
				Market:     markets[marketIdx%len(markets)],
				Side:       models.OrderSideBuy,
				Quantity:   roundToDecimal(quantity, 4),
				EntryPrice: roundToDecimal(entryPrice, 2),
				ExitPrice:  roundToDecimal(entryPrice*1.02, 2),
				PnL:        roundToDecimal(pnl, 2),
				TradeDate:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
				EntryTime:  time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
				ExitTime:   time.Date(2025, 3, 10, 15, 45, 0, 0, time.UTC),
				Notes:      fmt.Sprintf("entry on pullback, pnl %.2f", pnl),
				StrategyID: "momentum-breakout",
			}
			if tagged {
				trade.Emotion = &models.EmotionalState{
					Primary:   emotions[emotionIdx%len(emotions)],
					Intensity: 1 + intensity%10,
				}
			}

			if err := store.SaveTrade(ctx, &trade); err != nil {
				t.Logf("Failed to save trade: %v", err)
				return false
			}
			if trade.ID == "" {
				t.Logf("SaveTrade did not assign an ID")
				return false
			}

			retrieved, err := store.GetTradeByID(ctx, trade.ID)
			if err != nil {
				t.Logf("Failed to get trade: %v", err)
				return false
			}

			if !tradesEqual(trade, *retrieved) {
				t.Logf("Trade mismatch: original=%+v, retrieved=%+v", trade, retrieved)
				return false
			}
			return true
		},
		gen.IntRange(0, len(symbols)-1),
		gen.IntRange(0, len(markets)-1),
		gen.IntRange(0, len(emotions)-1),
		gen.Float64Range(0.001, 10000.0),
		gen.Float64Range(0.5, 50000.0),
		gen.Float64Range(-5000.0, 5000.0),
		gen.Bool(),
		gen.IntRange(0, 9),
	))

	properties.Property("Symbol filter: retrieved trades all carry the requested symbol", prop.ForAll(
		func(count int, pnl float64) bool {
			ctx := context.Background()
			symbol := fmt.Sprintf("FLT_%d", time.Now().UnixNano()%100000)

			for i := 0; i < count; i++ {
				trade := models.Trade{
					Symbol:    symbol,
					Market:    models.MarketStock,
					Side:      models.OrderSideBuy,
					Quantity:  10,
					PnL:       roundToDecimal(pnl, 2),
					TradeDate: time.Date(2025, 4, 1+i, 0, 0, 0, 0, time.UTC),
				}
				if err := store.SaveTrade(ctx, &trade); err != nil {
					t.Logf("Failed to save trade: %v", err)
					return false
				}
			}

			trades, err := store.GetTrades(ctx, TradeFilter{Symbol: symbol})
			if err != nil {
				t.Logf("Failed to get trades: %v", err)
				return false
			}
			if len(trades) != count {
				t.Logf("Count mismatch: expected %d, got %d", count, len(trades))
				return false
			}
			for _, tr := range trades {
				if tr.Symbol != symbol {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 10),
		gen.Float64Range(-1000.0, 1000.0),
	))

	properties.TestingRun(t)
}

// Property 2: Journal round-trip consistency
//
// Property: Saving a journal entry and retrieving it by trade ID preserves
// content, tags, and mood.
func TestProperty_JournalRoundTripConsistency(t *testing.T) {
	dbPath := "test_journal_property.db"
	defer os.Remove(dbPath)

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	moods := []string{"focused", "anxious", "confident", "tired", "neutral"}

	properties.Property("Journal round-trip: save then fetch by trade ID produces equivalent data", prop.ForAll(
		func(moodIdx, tagCount int, content string) bool {
			ctx := context.Background()
			tradeID := fmt.Sprintf("trade_%d", time.Now().UnixNano())

			tags := make([]string, tagCount)
			for i := range tags {
				tags[i] = fmt.Sprintf("tag%d", i)
			}

			now := time.Date(2025, 5, 20, 18, 0, 0, 0, time.UTC)
			entry := models.JournalEntry{
				TradeID:   tradeID,
				Date:      now,
				Content:   content,
				Tags:      tags,
				Mood:      moods[moodIdx%len(moods)],
				CreatedAt: now,
				UpdatedAt: now,
			}

			if err := store.SaveJournalEntry(ctx, &entry); err != nil {
				t.Logf("Failed to save journal entry: %v", err)
				return false
			}

			entries, err := store.GetJournal(ctx, JournalFilter{TradeID: tradeID})
			if err != nil {
				t.Logf("Failed to get journal: %v", err)
				return false
			}
			if len(entries) != 1 {
				t.Logf("Expected 1 entry, got %d", len(entries))
				return false
			}

			got := entries[0]
			if got.Content != entry.Content || got.Mood != entry.Mood {
				return false
			}
			if len(got.Tags) != len(entry.Tags) {
				return false
			}
			for i := range got.Tags {
				if got.Tags[i] != entry.Tags[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, len(moods)-1),
		gen.IntRange(0, 5),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// roundToDecimal rounds a float to the given number of decimal places.
func roundToDecimal(val float64, places int) float64 {
	multiplier := 1.0
	for i := 0; i < places; i++ {
		multiplier *= 10
	}
	if val < 0 {
		return float64(int64(val*multiplier-0.5)) / multiplier
	}
	return float64(int64(val*multiplier+0.5)) / multiplier
}

// tradesEqual compares two trades for equality with floating point tolerance.
func tradesEqual(a, b models.Trade) bool {
	const tolerance = 0.0001

	if a.ID != b.ID || a.Symbol != b.Symbol || a.Market != b.Market || a.Side != b.Side {
		return false
	}
	if !floatEqual(a.Quantity, b.Quantity, tolerance) {
		return false
	}
	if !floatEqual(a.EntryPrice, b.EntryPrice, tolerance) {
		return false
	}
	if !floatEqual(a.ExitPrice, b.ExitPrice, tolerance) {
		return false
	}
	if !floatEqual(a.PnL, b.PnL, tolerance) {
		return false
	}
	if a.Notes != b.Notes || a.StrategyID != b.StrategyID {
		return false
	}
	if (a.Emotion == nil) != (b.Emotion == nil) {
		return false
	}
	if a.Emotion != nil {
		if a.Emotion.Primary != b.Emotion.Primary || a.Emotion.Intensity != b.Emotion.Intensity {
			return false
		}
	}
	return true
}

// floatEqual compares two floats with a tolerance.
func floatEqual(a, b, tolerance float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
