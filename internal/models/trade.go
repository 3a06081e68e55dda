package models

import "time"

// Trade represents a completed trade as recorded in the journal.
// Every field except ID may be absent on malformed input; the rating
// normalizer substitutes neutral defaults before scoring.
type Trade struct {
	ID         string          `json:"id"`
	Symbol     string          `json:"symbol"`
	Market     Market          `json:"market"`
	Side       OrderSide       `json:"side"`
	Quantity   float64         `json:"quantity"`
	EntryPrice float64         `json:"entryPrice"`
	ExitPrice  float64         `json:"exitPrice"`
	PnL        float64         `json:"pnl"`
	TradeDate  time.Time       `json:"tradeDate"`
	EntryTime  time.Time       `json:"entryTime"`
	ExitTime   time.Time       `json:"exitTime"`
	Emotion    *EmotionalState `json:"emotionalState,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	StrategyID string          `json:"strategyId,omitempty"`
}

// Notional returns the entry notional value of the trade.
func (t Trade) Notional() float64 {
	n := t.EntryPrice * t.Quantity
	if n < 0 {
		return -n
	}
	return n
}

// IsWin reports whether the trade closed with a positive P&L.
func (t Trade) IsWin() bool {
	return t.PnL > 0
}

// JournalEntry represents a free-form trading journal entry.
type JournalEntry struct {
	ID        string    `json:"id"`
	TradeID   string    `json:"tradeId,omitempty"`
	Date      time.Time `json:"date"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	Mood      string    `json:"mood,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
