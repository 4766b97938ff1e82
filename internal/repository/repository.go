package repository

import (
	"context"

	"stock-alert-bot/internal/dto"
	"stock-alert-bot/internal/entity"
)

// MarketDataRepository provides quotes, news and market-wide data from the
// market data API.
type MarketDataRepository interface {
	GetQuote(ctx context.Context, symbol string) (*entity.Quote, error)
	GetMarketNews(ctx context.Context) ([]entity.NewsItem, error)
	GetInstitutionalActivity(ctx context.Context) ([]entity.InstitutionalActivity, error)
	GetHistoricalCloses(ctx context.Context, symbol string, days int) ([]float64, error)
	GetIndices(ctx context.Context) ([]dto.IndexQuote, error)
	GetSectorPerformance(ctx context.Context) ([]dto.SectorPerformance, error)
	GetMarketSentiment(ctx context.Context) (*dto.MarketSentimentResponse, error)
	GetTopGainers(ctx context.Context) ([]dto.MoverEntry, error)
	GetTopLosers(ctx context.Context) ([]dto.MoverEntry, error)
	GetMostActive(ctx context.Context) ([]dto.MoverEntry, error)
	GetMarketBreadth(ctx context.Context) (*dto.MarketBreadthResponse, error)
	GetMarketVolume(ctx context.Context) (*dto.MarketVolumeResponse, error)
	GetStockDetail(ctx context.Context, symbol string) (*dto.QuoteResponse, error)
}

// NewsRepository provides headlines from a supplementary news source.
type NewsRepository interface {
	GetNews(ctx context.Context, symbols []string) ([]entity.NewsItem, error)
}
