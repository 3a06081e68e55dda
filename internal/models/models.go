// Package models provides domain models for the trading journal.
package models

// Market represents the market a trade was made in.
type Market string

const (
	MarketStock   Market = "STOCK"
	MarketCrypto  Market = "CRYPTO"
	MarketForex   Market = "FOREX"
	MarketFutures Market = "FUTURES"
)

// OrderSide represents the side of a trade.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// Emotion represents a self-reported emotional state tag.
type Emotion string

const (
	EmotionPatience   Emotion = "PATIENCE"
	EmotionDiscipline Emotion = "DISCIPLINE"
	EmotionConfident  Emotion = "CONFIDENT"
	EmotionCalm       Emotion = "CALM"
	EmotionFocused    Emotion = "FOCUSED"
	EmotionFOMO       Emotion = "FOMO"
	EmotionRevenge    Emotion = "REVENGE"
	EmotionTilt       Emotion = "TILT"
	EmotionOverrisk   Emotion = "OVERRISK"
	EmotionFear       Emotion = "FEAR"
	EmotionGreed      Emotion = "GREED"
	EmotionAnxious    Emotion = "ANXIOUS"
)

// PositiveEmotions lists the emotional states counted as disciplined.
var PositiveEmotions = map[Emotion]bool{
	EmotionPatience:   true,
	EmotionDiscipline: true,
	EmotionConfident:  true,
	EmotionCalm:       true,
	EmotionFocused:    true,
}

// NegativeEmotions lists the emotional states counted as undisciplined.
var NegativeEmotions = map[Emotion]bool{
	EmotionFOMO:     true,
	EmotionRevenge:  true,
	EmotionTilt:     true,
	EmotionOverrisk: true,
	EmotionFear:     true,
	EmotionGreed:    true,
	EmotionAnxious:  true,
}

// EmotionalState is a structured annotation of the trader's state of mind
// at the time of a trade. A nil *EmotionalState means no emotion was
// recorded for the trade.
type EmotionalState struct {
	Primary   Emotion `json:"primary"`
	Secondary Emotion `json:"secondary,omitempty"` // optional
	Intensity int     `json:"intensity"`           // 1-10
}

// IsPositive reports whether the primary emotion is a disciplined one.
func (e *EmotionalState) IsPositive() bool {
	return e != nil && PositiveEmotions[e.Primary]
}

// IsNegative reports whether the primary emotion is an undisciplined one.
func (e *EmotionalState) IsNegative() bool {
	return e != nil && NegativeEmotions[e.Primary]
}

// Strategy represents a named trading strategy with its rule list.
type Strategy struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Rules       []string `json:"rules,omitempty"`
}
