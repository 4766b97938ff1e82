package entity

// Sentiment is a three-way classification of news text.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Impact is the estimated market impact of a news event.
type Impact string

const (
	ImpactLow    Impact = "Low"
	ImpactMedium Impact = "Medium"
	ImpactHigh   Impact = "High"
)

// Rank returns the ordering of the impact level: Low < Medium < High.
func (i Impact) Rank() int {
	switch i {
	case ImpactHigh:
		return 2
	case ImpactMedium:
		return 1
	default:
		return 0
	}
}

// Action is the trading action recommended by the engine.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// PriceTargets holds an entry price and its derived exit levels. For a BUY,
// StopLoss < Entry < Target1 < Target2 < Target3; for a SELL the ordering is
// inverted.
type PriceTargets struct {
	Entry    float64 `json:"entry_price"`
	StopLoss float64 `json:"stop_loss"`
	Target1  float64 `json:"target1"`
	Target2  float64 `json:"target2"`
	Target3  float64 `json:"target3"`
}

// Signal is the engine's output unit: one actionable trading recommendation
// for a symbol, never mutated after assembly. Targets is nil when no price
// was available for the symbol.
type Signal struct {
	Symbol    string        `json:"symbol"`
	Sector    string        `json:"sector"`
	Headline  string        `json:"headline"`
	Sentiment Sentiment     `json:"sentiment"`
	Impact    Impact        `json:"impact"`
	Action    Action        `json:"action"`
	Reason    string        `json:"reason"`
	URL       string        `json:"url,omitempty"`
	Targets   *PriceTargets `json:"price_targets,omitempty"`
}
