package dto

import (
	"time"

	"stock-alert-bot/internal/entity"
)

// MarketOutlook is the data backing the daily market outlook message. Every
// field is optional; the formatter skips sections whose data is missing.
type MarketOutlook struct {
	Date       time.Time
	Indices    []IndexQuote
	Sectors    []SectorPerformance
	Sentiment  *MarketSentimentResponse
	Activities []entity.InstitutionalActivity
}

// EODSummary is the data backing the end-of-day summary message.
type EODSummary struct {
	Date       time.Time
	Indices    []IndexQuote
	Gainers    []MoverEntry
	Losers     []MoverEntry
	Sectors    []SectorPerformance
	Activities []entity.InstitutionalActivity
	Breadth    *MarketBreadthResponse
	Volume     *MarketVolumeResponse
	Sentiment  *MarketSentimentResponse
}

// BotStatus is the data backing the /status reply.
type BotStatus struct {
	Now        time.Time
	MarketOpen bool
	Indices    []IndexQuote
	NextOpen   time.Time
}

// PerformanceStats is the counters backing the /performance reply, tracked
// since process start.
type PerformanceStats struct {
	Since           time.Time
	Cycles          int
	SignalsTotal    int
	AlertsDelivered int
	ByAction        map[entity.Action]int
	ByImpact        map[entity.Impact]int
}

// StockDetail is the data backing a /stocks SYMBOL reply.
type StockDetail struct {
	Quote      *QuoteResponse
	News       []entity.NewsItem
	Activities []entity.InstitutionalActivity
}
