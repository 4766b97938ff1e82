package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stock-alert-bot/internal/config"
	"stock-alert-bot/internal/dto"
	"stock-alert-bot/internal/entity"
	"stock-alert-bot/pkg/logger"

	"golang.org/x/time/rate"
)

// marketAPIRepository is a MarketDataRepository backed by the market data
// REST API.
type marketAPIRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewMarketAPIRepository creates a new instance of marketAPIRepository.
func NewMarketAPIRepository(cfg *config.Config, log *logger.Logger) MarketDataRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.MarketAPI.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)
	return &marketAPIRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: requestLimiter,
	}
}

func (r *marketAPIRepository) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	detail, err := r.GetStockDetail(ctx, symbol)
	if err != nil {
		return nil, err
	}
	quote := quoteFromResponse(detail)
	if quote.Symbol == "" {
		quote.Symbol = symbol
	}
	return &quote, nil
}

func (r *marketAPIRepository) GetStockDetail(ctx context.Context, symbol string) (*dto.QuoteResponse, error) {
	body, err := r.sendRequest(ctx, fmt.Sprintf("/stock/%s", symbol))
	if err != nil {
		return nil, err
	}

	var detail dto.QuoteResponse
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote for %s: %w", symbol, err)
	}
	return &detail, nil
}

func (r *marketAPIRepository) GetMarketNews(ctx context.Context) ([]entity.NewsItem, error) {
	body, err := r.sendRequest(ctx, "/news/market")
	if err != nil {
		return nil, err
	}

	var response dto.MarketNewsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal market news: %w", err)
	}

	items := make([]entity.NewsItem, 0, len(response.Data))
	for _, n := range response.Data {
		if n.Headline == "" {
			continue
		}
		items = append(items, entity.NewsItem{
			Headline:    n.Headline,
			PublishedAt: n.PublishedAt,
			Symbols:     n.Symbols,
			URL:         n.URL,
			Source:      n.Source,
		})
	}
	return items, nil
}

func (r *marketAPIRepository) GetInstitutionalActivity(ctx context.Context) ([]entity.InstitutionalActivity, error) {
	body, err := r.sendRequest(ctx, "/institutions/activity")
	if err != nil {
		return nil, err
	}

	var response dto.InstitutionalActivityResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal institutional activity: %w", err)
	}

	activities := make([]entity.InstitutionalActivity, 0, len(response.Data))
	for _, a := range response.Data {
		activities = append(activities, entity.InstitutionalActivity{
			Symbol:       a.Symbol,
			NetPosition:  a.NetPosition,
			BuyQuantity:  a.BuyQuantity,
			SellQuantity: a.SellQuantity,
		})
	}
	return activities, nil
}

func (r *marketAPIRepository) GetHistoricalCloses(ctx context.Context, symbol string, days int) ([]float64, error) {
	path := fmt.Sprintf("/stock/%s/historical?interval=daily&period=%dd", symbol, days)
	body, err := r.sendRequest(ctx, path)
	if err != nil {
		return nil, err
	}

	var response dto.HistoricalResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal historical data for %s: %w", symbol, err)
	}

	closes := make([]float64, 0, len(response.Data))
	for _, bar := range response.Data {
		closes = append(closes, bar.Close)
	}
	return closes, nil
}

func (r *marketAPIRepository) GetIndices(ctx context.Context) ([]dto.IndexQuote, error) {
	body, err := r.sendRequest(ctx, "/market/indices")
	if err != nil {
		return nil, err
	}

	var response dto.IndicesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal indices: %w", err)
	}
	return response.Data, nil
}

func (r *marketAPIRepository) GetSectorPerformance(ctx context.Context) ([]dto.SectorPerformance, error) {
	body, err := r.sendRequest(ctx, "/market/sectors")
	if err != nil {
		return nil, err
	}

	var response dto.SectorsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sector performance: %w", err)
	}
	return response.Data, nil
}

func (r *marketAPIRepository) GetMarketSentiment(ctx context.Context) (*dto.MarketSentimentResponse, error) {
	body, err := r.sendRequest(ctx, "/market/sentiment")
	if err != nil {
		return nil, err
	}

	var response dto.MarketSentimentResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal market sentiment: %w", err)
	}
	return &response, nil
}

func (r *marketAPIRepository) GetTopGainers(ctx context.Context) ([]dto.MoverEntry, error) {
	return r.getMovers(ctx, "/market/top-gainers")
}

func (r *marketAPIRepository) GetTopLosers(ctx context.Context) ([]dto.MoverEntry, error) {
	return r.getMovers(ctx, "/market/top-losers")
}

func (r *marketAPIRepository) GetMostActive(ctx context.Context) ([]dto.MoverEntry, error) {
	return r.getMovers(ctx, "/market/most-active")
}

func (r *marketAPIRepository) getMovers(ctx context.Context, path string) ([]dto.MoverEntry, error) {
	body, err := r.sendRequest(ctx, path)
	if err != nil {
		return nil, err
	}

	var response dto.MoversResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal movers from %s: %w", path, err)
	}
	return response.Data, nil
}

func (r *marketAPIRepository) GetMarketBreadth(ctx context.Context) (*dto.MarketBreadthResponse, error) {
	body, err := r.sendRequest(ctx, "/market/breadth")
	if err != nil {
		return nil, err
	}

	var response dto.MarketBreadthResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal market breadth: %w", err)
	}
	return &response, nil
}

func (r *marketAPIRepository) GetMarketVolume(ctx context.Context) (*dto.MarketVolumeResponse, error) {
	body, err := r.sendRequest(ctx, "/market/volume")
	if err != nil {
		return nil, err
	}

	var response dto.MarketVolumeResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal market volume: %w", err)
	}
	return &response, nil
}

func (r *marketAPIRepository) sendRequest(ctx context.Context, path string) ([]byte, error) {
	url := r.cfg.MarketAPI.BaseURL + path

	if err := r.requestLimiter.Wait(ctx); err != nil {
		r.log.ErrorContext(ctx, "Failed to wait for request limit",
			logger.ErrorField(err), logger.StringField("url", url))
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.cfg.MarketAPI.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to send request to market API",
			logger.ErrorField(err), logger.StringField("url", url))
		return nil, fmt.Errorf("failed to send request to market API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "Received non-OK response from market API",
			logger.IntField("status_code", resp.StatusCode), logger.StringField("url", url))
		return nil, fmt.Errorf("received non-OK response from market API: %d - %s", resp.StatusCode, string(body))
	}

	return body, nil
}

func quoteFromResponse(detail *dto.QuoteResponse) entity.Quote {
	return entity.Quote{
		Symbol:              detail.Symbol,
		LastPrice:           detail.LastPrice,
		Sector:              detail.Sector,
		ChangePercent:       detail.ChangePercent,
		Open:                detail.Open,
		High:                detail.High,
		Low:                 detail.Low,
		Volume:              detail.Volume,
		VolumeChangePercent: detail.VolumeChangePercent,
	}
}
