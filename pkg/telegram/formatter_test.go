package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stock-alert-bot/internal/dto"
	"stock-alert-bot/internal/entity"
)

func TestFormatAlertBuy(t *testing.T) {
	signal := entity.Signal{
		Symbol:    "XYZ",
		Sector:    "Auto",
		Headline:  "XYZ announces merger",
		Sentiment: entity.SentimentPositive,
		Impact:    entity.ImpactHigh,
		Action:    entity.ActionBuy,
		Reason:    "Strong positive sentiment in news",
		URL:       "https://news.example.com/xyz",
		Targets: &entity.PriceTargets{
			Entry:    100,
			StopLoss: 98,
			Target1:  103,
			Target2:  105,
			Target3:  107,
		},
	}

	msg := FormatAlert(signal, time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC))

	assert.Contains(t, msg, "*XYZ* (Auto)")
	assert.Contains(t, msg, "🟢 BUY")
	assert.Contains(t, msg, "🔥 High")
	assert.Contains(t, msg, "😀 Positive")
	assert.Contains(t, msg, "*Entry:* ₹100.00")
	assert.Contains(t, msg, "T1: ₹103.00 (+3.0%)")
	assert.Contains(t, msg, "T3: ₹107.00 (+7.0%)")
	assert.Contains(t, msg, "*Stop Loss:* ₹98.00 (-2.0%)")
	assert.Contains(t, msg, "[Read More](https://news.example.com/xyz)")
}

func TestFormatAlertWithoutTargets(t *testing.T) {
	signal := entity.Signal{
		Symbol:    "ABC",
		Sector:    "N/A",
		Headline:  "ABC under investigation",
		Sentiment: entity.SentimentNegative,
		Impact:    entity.ImpactMedium,
		Action:    entity.ActionSell,
		Reason:    "Strong negative sentiment in news",
	}

	msg := FormatAlert(signal, time.Now())
	assert.Contains(t, msg, "🔴 SELL")
	assert.NotContains(t, msg, "*Entry:*")
	assert.NotContains(t, msg, "[Read More]")
}

func TestFormatEODSummaryVolumeCommentary(t *testing.T) {
	summary := dto.EODSummary{
		Date: time.Date(2026, 8, 31, 15, 45, 0, 0, time.UTC),
		Volume: &dto.MarketVolumeResponse{
			TotalVolume:   1.5e12,
			AverageVolume: 1.0e12,
		},
	}

	msg := FormatEODSummary(summary)
	assert.Contains(t, msg, "1.50x higher than average")

	summary.Volume.TotalVolume = 0.7e12
	msg = FormatEODSummary(summary)
	assert.Contains(t, msg, "0.70x lower than average")

	summary.Volume.TotalVolume = 1.0e12
	msg = FormatEODSummary(summary)
	assert.Contains(t, msg, "Near average")
}

func TestFormatWatchlist(t *testing.T) {
	empty := FormatWatchlist(nil)
	assert.Contains(t, empty, "watchlist is empty")
	assert.Contains(t, empty, "/watchlist add SYMBOL")

	filled := FormatWatchlist([]string{"RELIANCE", "TCS"})
	assert.Contains(t, filled, "• RELIANCE")
	assert.Contains(t, filled, "• TCS")
}

func TestFormatStatus(t *testing.T) {
	open := FormatStatus(dto.BotStatus{
		Now:        time.Date(2026, 8, 31, 11, 0, 0, 0, time.UTC),
		MarketOpen: true,
		Indices:    []dto.IndexQuote{{Name: "NIFTY 50", ChangePercent: 0.42}},
	})
	assert.Contains(t, open, "🟢 OPEN")
	assert.Contains(t, open, "NIFTY 50: +0.42%")
	assert.Contains(t, open, "Market is currently open")

	closed := FormatStatus(dto.BotStatus{
		Now:      time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC),
		NextOpen: time.Date(2026, 8, 31, 9, 15, 0, 0, time.UTC),
	})
	assert.Contains(t, closed, "🔴 CLOSED")
	assert.Contains(t, closed, "Monday 31-Aug-2026 at 09:15")
}
