package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-alert-bot/internal/dedup"
	"stock-alert-bot/internal/entity"
	"stock-alert-bot/pkg/logger"
	"stock-alert-bot/pkg/utils"
)

type stubScorer struct {
	scores map[string]float64
	err    error
}

func (s stubScorer) Compound(_ context.Context, text string) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.scores[text], nil
}

func newTestAssembler(t *testing.T, scorer PolarityScorer) *Assembler {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return NewAssembler(scorer, DefaultConfig(), dedup.NewMemoryStore(time.Minute), log)
}

func newsItem(headline string, symbols ...string) entity.NewsItem {
	return entity.NewsItem{
		Headline:    headline,
		PublishedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		Symbols:     symbols,
		URL:         "https://news.example.com/item",
	}
}

func TestAssembleNewsDrivenSignal(t *testing.T) {
	headline := "XYZ announces merger with rival"
	asm := newTestAssembler(t, stubScorer{scores: map[string]float64{headline: 0.6}})

	snap := Snapshot{
		News: []entity.NewsItem{newsItem(headline, "XYZ")},
		Quotes: map[string]entity.Quote{
			"XYZ": {Symbol: "XYZ", LastPrice: 100, Sector: "Auto", VolumeChangePercent: utils.ToPointer(60.0)},
		},
		Volatility: map[string]float64{"XYZ": 0.02},
	}

	signals := asm.Assemble(context.Background(), snap)
	require.Len(t, signals, 1)

	s := signals[0]
	assert.Equal(t, "XYZ", s.Symbol)
	assert.Equal(t, "Auto", s.Sector)
	assert.Equal(t, entity.SentimentPositive, s.Sentiment)
	assert.Equal(t, entity.ActionBuy, s.Action)
	assert.Equal(t, "Unusual volume (+60%) with positive sentiment", s.Reason)
	assert.Equal(t, entity.ImpactHigh, s.Impact)
	require.NotNil(t, s.Targets)
	assert.Equal(t, 100.0, s.Targets.Entry)
	assert.Equal(t, 98.0, s.Targets.StopLoss)
	assert.Equal(t, 103.0, s.Targets.Target1)
	assert.Equal(t, 105.0, s.Targets.Target2)
	assert.Equal(t, 107.0, s.Targets.Target3)
}

func TestAssembleSkipsAlreadySeenNews(t *testing.T) {
	headline := "XYZ wins major contract"
	asm := newTestAssembler(t, stubScorer{scores: map[string]float64{headline: 0.5}})

	snap := Snapshot{
		News: []entity.NewsItem{newsItem(headline, "XYZ")},
		Quotes: map[string]entity.Quote{
			"XYZ": {Symbol: "XYZ", LastPrice: 100},
		},
	}

	first := asm.Assemble(context.Background(), snap)
	require.Len(t, first, 1)

	second := asm.Assemble(context.Background(), snap)
	assert.Empty(t, second)
}

func TestAssembleDiscardsHold(t *testing.T) {
	headline := "XYZ publishes quarterly filing"
	asm := newTestAssembler(t, stubScorer{scores: map[string]float64{headline: 0.0}})

	snap := Snapshot{
		News: []entity.NewsItem{newsItem(headline, "XYZ")},
		Quotes: map[string]entity.Quote{
			"XYZ": {Symbol: "XYZ", LastPrice: 100},
		},
	}

	assert.Empty(t, asm.Assemble(context.Background(), snap))
}

func TestAssembleSkipsSymbolWithoutQuote(t *testing.T) {
	headline := "ABC posts record profit"
	asm := newTestAssembler(t, stubScorer{scores: map[string]float64{headline: 0.7}})

	snap := Snapshot{
		News:   []entity.NewsItem{newsItem(headline, "ABC", "XYZ")},
		Quotes: map[string]entity.Quote{"XYZ": {Symbol: "XYZ", LastPrice: 50}},
	}

	signals := asm.Assemble(context.Background(), snap)
	require.Len(t, signals, 1)
	assert.Equal(t, "XYZ", signals[0].Symbol)
}

func TestAssembleSynthesizesActivityOnlySignal(t *testing.T) {
	asm := newTestAssembler(t, stubScorer{})

	snap := Snapshot{
		Quotes: map[string]entity.Quote{
			"BUYER":  {Symbol: "BUYER", LastPrice: 200, Sector: "Banking"},
			"SELLER": {Symbol: "SELLER", LastPrice: 300},
		},
		Activities: []entity.InstitutionalActivity{
			{Symbol: "BUYER", NetPosition: 50000, BuyQuantity: 80000, SellQuantity: 30000},
			{Symbol: "SELLER", NetPosition: -20000, BuyQuantity: 10000, SellQuantity: 30000},
			{Symbol: "FLAT", NetPosition: 0},
		},
	}

	signals := asm.Assemble(context.Background(), snap)
	require.Len(t, signals, 2)

	buy := signals[0]
	assert.Equal(t, "BUYER", buy.Symbol)
	assert.Equal(t, entity.ActionBuy, buy.Action)
	assert.Equal(t, entity.SentimentPositive, buy.Sentiment)
	assert.Equal(t, entity.ImpactHigh, buy.Impact)
	assert.Equal(t, "Institutional buying activity detected", buy.Headline)
	assert.Equal(t, "Institutional buying of 80000 shares", buy.Reason)
	require.NotNil(t, buy.Targets)

	sell := signals[1]
	assert.Equal(t, "SELLER", sell.Symbol)
	assert.Equal(t, entity.ActionSell, sell.Action)
	assert.Equal(t, entity.SentimentNegative, sell.Sentiment)
	assert.Equal(t, "N/A", sell.Sector)
	assert.Equal(t, "Institutional selling of 30000 shares", sell.Reason)
}

func TestAssembleSuppressesActivityWhenNewsEmitted(t *testing.T) {
	headline := "XYZ growth accelerates"
	asm := newTestAssembler(t, stubScorer{scores: map[string]float64{headline: 0.6}})

	snap := Snapshot{
		News: []entity.NewsItem{newsItem(headline, "XYZ")},
		Quotes: map[string]entity.Quote{
			"XYZ": {Symbol: "XYZ", LastPrice: 100},
		},
		Activities: []entity.InstitutionalActivity{
			{Symbol: "XYZ", NetPosition: 1000, BuyQuantity: 1000},
		},
	}

	signals := asm.Assemble(context.Background(), snap)
	require.Len(t, signals, 1)
	assert.Equal(t, headline, signals[0].Headline)
	assert.Equal(t, "Institutional buying detected", signals[0].Reason)
}

func TestAssembleSortsByImpactDescending(t *testing.T) {
	lowHeadline := "AAA shares edge up on strong outlook"
	highHeadline := "BBB merger and acquisition confirmed"
	asm := newTestAssembler(t, stubScorer{scores: map[string]float64{
		lowHeadline:  0.3,
		highHeadline: 0.8,
	}})

	low := newsItem(lowHeadline, "AAA")
	high := newsItem(highHeadline, "BBB")
	high.PublishedAt = high.PublishedAt.Add(time.Minute)

	snap := Snapshot{
		News: []entity.NewsItem{low, high},
		Quotes: map[string]entity.Quote{
			"AAA": {Symbol: "AAA", LastPrice: 10},
			"BBB": {Symbol: "BBB", LastPrice: 20},
		},
	}

	signals := asm.Assemble(context.Background(), snap)
	require.Len(t, signals, 2)
	assert.Equal(t, "BBB", signals[0].Symbol)
	assert.Equal(t, "AAA", signals[1].Symbol)
	assert.GreaterOrEqual(t, signals[0].Impact.Rank(), signals[1].Impact.Rank())
}

func TestAssembleScorerFailureDegradesToNeutral(t *testing.T) {
	asm := newTestAssembler(t, stubScorer{err: errors.New("scorer down")})

	snap := Snapshot{
		News: []entity.NewsItem{newsItem("XYZ soars on record profit", "XYZ")},
		Quotes: map[string]entity.Quote{
			"XYZ": {Symbol: "XYZ", LastPrice: 100},
		},
		Activities: []entity.InstitutionalActivity{
			{Symbol: "XYZ", NetPosition: 5000, BuyQuantity: 5000},
		},
	}

	signals := asm.Assemble(context.Background(), snap)
	require.Len(t, signals, 1)
	assert.Equal(t, entity.SentimentNeutral, signals[0].Sentiment)
	assert.Equal(t, entity.ActionBuy, signals[0].Action)
	assert.Equal(t, "Institutional buying detected", signals[0].Reason)
}

func TestAssembleDefaultVolatilityWhenUnresolved(t *testing.T) {
	headline := "XYZ lands breakthrough deal"
	asm := newTestAssembler(t, stubScorer{scores: map[string]float64{headline: 0.6}})

	snap := Snapshot{
		News: []entity.NewsItem{newsItem(headline, "XYZ")},
		Quotes: map[string]entity.Quote{
			"XYZ": {Symbol: "XYZ", LastPrice: 100},
		},
	}

	signals := asm.Assemble(context.Background(), snap)
	require.Len(t, signals, 1)
	require.NotNil(t, signals[0].Targets)
	assert.Equal(t, 98.0, signals[0].Targets.StopLoss)
	assert.Equal(t, 103.0, signals[0].Targets.Target1)
}
