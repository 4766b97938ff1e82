package dto

import "time"

// QuoteResponse is the market API payload for GET /stock/{symbol}. Technical
// indicator fields are pointers since the upstream omits them for thinly
// covered symbols.
type QuoteResponse struct {
	Symbol              string   `json:"symbol"`
	LastPrice           float64  `json:"last_price"`
	ChangePercent       float64  `json:"change_percent"`
	Open                float64  `json:"open"`
	High                float64  `json:"high"`
	Low                 float64  `json:"low"`
	Volume              int64    `json:"volume"`
	VolumeChangePercent *float64 `json:"volume_change_percent"`
	Sector              string   `json:"sector"`
	RSI                 *float64 `json:"rsi,omitempty"`
	MACD                *float64 `json:"macd,omitempty"`
	MACDSignal          *float64 `json:"macd_signal,omitempty"`
	EMA50               *float64 `json:"ema_50,omitempty"`
	EMA200              *float64 `json:"ema_200,omitempty"`
}

// MarketNewsResponse is the payload for GET /news/market.
type MarketNewsResponse struct {
	Data []MarketNewsItem `json:"data"`
}

// MarketNewsItem is one headline from the market news feed.
type MarketNewsItem struct {
	Headline    string    `json:"headline"`
	PublishedAt time.Time `json:"published_at"`
	Symbols     []string  `json:"symbols"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
}

// InstitutionalActivityResponse is the payload for GET /institutions/activity.
type InstitutionalActivityResponse struct {
	Data []InstitutionalActivityItem `json:"data"`
}

// InstitutionalActivityItem is one symbol's institutional flow for the day.
type InstitutionalActivityItem struct {
	Symbol       string `json:"symbol"`
	NetPosition  int64  `json:"net_position"`
	BuyQuantity  int64  `json:"buy_quantity"`
	SellQuantity int64  `json:"sell_quantity"`
}

// HistoricalResponse is the payload for GET /stock/{symbol}/historical.
type HistoricalResponse struct {
	Data []HistoricalBar `json:"data"`
}

// HistoricalBar is one daily OHLCV bar.
type HistoricalBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// IndicesResponse is the payload for GET /market/indices.
type IndicesResponse struct {
	Data []IndexQuote `json:"data"`
}

// IndexQuote is one market index snapshot.
type IndexQuote struct {
	Name          string  `json:"name"`
	Close         float64 `json:"close"`
	ChangePercent float64 `json:"change_percent"`
}

// SectorsResponse is the payload for GET /market/sectors.
type SectorsResponse struct {
	Data []SectorPerformance `json:"data"`
}

// SectorPerformance is one sector's daily performance.
type SectorPerformance struct {
	Name          string  `json:"name"`
	ChangePercent float64 `json:"change_percent"`
}

// MarketSentimentResponse is the payload for GET /market/sentiment.
type MarketSentimentResponse struct {
	OverallSentiment string `json:"overall_sentiment"`
	Outlook          string `json:"outlook"`
}

// MoversResponse is the payload for GET /market/top-gainers, top-losers and
// most-active.
type MoversResponse struct {
	Data []MoverEntry `json:"data"`
}

// MoverEntry is one stock in a movers list.
type MoverEntry struct {
	Symbol        string  `json:"symbol"`
	LastPrice     float64 `json:"last_price"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
}

// MarketBreadthResponse is the payload for GET /market/breadth.
type MarketBreadthResponse struct {
	Advancers int `json:"advancers"`
	Decliners int `json:"decliners"`
	Unchanged int `json:"unchanged"`
}

// MarketVolumeResponse is the payload for GET /market/volume.
type MarketVolumeResponse struct {
	TotalVolume   float64 `json:"total_volume"`
	AverageVolume float64 `json:"average_volume"`
}
