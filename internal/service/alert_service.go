package service

import (
	"context"
	"time"

	"stock-alert-bot/internal/config"
	"stock-alert-bot/internal/engine"
	"stock-alert-bot/internal/entity"
	"stock-alert-bot/internal/repository"
	"stock-alert-bot/pkg/logger"
	"stock-alert-bot/pkg/markethours"
	"stock-alert-bot/pkg/telegram"

	"golang.org/x/time/rate"
)

const defaultHistoricalDays = 20

// AlertService runs the periodic evaluation cycle: gather market data, score
// it, and deliver the resulting alerts.
type AlertService interface {
	RunCycle(ctx context.Context)
}

type alertService struct {
	cfg             *config.Config
	log             *logger.Logger
	market          repository.MarketDataRepository
	rss             repository.NewsRepository
	assembler       *engine.Assembler
	notifier        telegram.Notifier
	hours           *markethours.Schedule
	stats           *StatsTracker
	deliveryLimiter *rate.Limiter
}

// NewAlertService creates a new alert service. rss may be nil when no RSS
// feeds are configured.
func NewAlertService(
	cfg *config.Config,
	log *logger.Logger,
	market repository.MarketDataRepository,
	rss repository.NewsRepository,
	assembler *engine.Assembler,
	notifier telegram.Notifier,
	hours *markethours.Schedule,
	stats *StatsTracker,
) AlertService {
	delay := cfg.Engine.DeliveryDelay
	if delay <= 0 {
		delay = time.Second
	}
	return &alertService{
		cfg:             cfg,
		log:             log,
		market:          market,
		rss:             rss,
		assembler:       assembler,
		notifier:        notifier,
		hours:           hours,
		stats:           stats,
		deliveryLimiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

// RunCycle executes one evaluation cycle. Outside market hours it is a no-op.
// Upstream failures degrade the cycle instead of aborting it: a missing feed
// just means fewer pairings this round.
func (s *alertService) RunCycle(ctx context.Context) {
	now := time.Now().In(s.hours.Location())
	if !s.hours.IsOpen(now) {
		s.log.DebugContext(ctx, "Market is closed, skipping evaluation cycle")
		return
	}

	s.log.Info("Checking for new stock alerts")

	snap := s.gatherSnapshot(ctx)
	signals := s.assembler.Assemble(ctx, snap)
	s.stats.RecordCycle(signals, now)

	if len(signals) == 0 {
		s.log.Info("No actionable signals this cycle")
		return
	}

	s.deliver(ctx, signals, now)
}

// gatherSnapshot performs all of the cycle's I/O up front so scoring runs on
// a fixed snapshot.
func (s *alertService) gatherSnapshot(ctx context.Context) engine.Snapshot {
	news, err := s.market.GetMarketNews(ctx)
	if err != nil {
		s.log.Error("Failed to fetch market news", logger.ErrorField(err))
	}

	activities, err := s.market.GetInstitutionalActivity(ctx)
	if err != nil {
		s.log.Error("Failed to fetch institutional activity", logger.ErrorField(err))
	}

	symbols := collectSymbols(news, activities)

	if s.rss != nil {
		rssNews, err := s.rss.GetNews(ctx, symbols)
		if err != nil {
			s.log.Error("Failed to fetch RSS news", logger.ErrorField(err))
		} else {
			news = append(news, rssNews...)
		}
	}

	quotes := make(map[string]entity.Quote, len(symbols))
	volatility := make(map[string]float64, len(symbols))
	for _, symbol := range symbols {
		quote, err := s.market.GetQuote(ctx, symbol)
		if err != nil {
			s.log.Warn("Failed to fetch quote",
				logger.ErrorField(err), logger.StringField("symbol", symbol))
			continue
		}
		quotes[symbol] = *quote

		if vol, ok := s.resolveVolatility(ctx, symbol); ok {
			volatility[symbol] = vol
		}
	}

	return engine.Snapshot{
		News:       news,
		Quotes:     quotes,
		Activities: activities,
		Volatility: volatility,
	}
}

// resolveVolatility estimates the symbol's volatility from recent closes. A
// missing or too-short history leaves the symbol unresolved so the assembler
// falls back to the default.
func (s *alertService) resolveVolatility(ctx context.Context, symbol string) (float64, bool) {
	days := s.cfg.Engine.HistoricalDays
	if days <= 0 {
		days = defaultHistoricalDays
	}

	closes, err := s.market.GetHistoricalCloses(ctx, symbol, days)
	if err != nil {
		s.log.Warn("Failed to fetch historical closes",
			logger.ErrorField(err), logger.StringField("symbol", symbol))
		return 0, false
	}

	vol, err := engine.EstimateVolatility(closes)
	if err != nil {
		s.log.DebugContext(ctx, "Not enough history to estimate volatility",
			logger.ErrorField(err), logger.StringField("symbol", symbol))
		return 0, false
	}
	return vol, true
}

// deliver sends each signal to the alert channel with the mandatory pacing
// delay between messages.
func (s *alertService) deliver(ctx context.Context, signals []entity.Signal, now time.Time) {
	for _, signal := range signals {
		if err := s.deliveryLimiter.Wait(ctx); err != nil {
			s.log.Error("Delivery pacing interrupted", logger.ErrorField(err))
			return
		}

		msg := telegram.FormatAlert(signal, now)
		if err := s.notifier.SendMessage(msg); err != nil {
			s.log.Error("Failed to send alert",
				logger.ErrorField(err), logger.StringField("symbol", signal.Symbol))
			continue
		}
		s.stats.RecordDelivery()
		s.log.Info("Alert sent",
			logger.StringField("symbol", signal.Symbol),
			logger.StringField("action", string(signal.Action)),
			logger.StringField("impact", string(signal.Impact)))
	}
}

// collectSymbols returns the distinct symbols referenced by the cycle's news
// and institutional activity, preserving first-seen order.
func collectSymbols(news []entity.NewsItem, activities []entity.InstitutionalActivity) []string {
	seen := make(map[string]bool)
	var symbols []string
	add := func(symbol string) {
		if symbol == "" || seen[symbol] {
			return
		}
		seen[symbol] = true
		symbols = append(symbols, symbol)
	}

	for _, n := range news {
		for _, symbol := range n.Symbols {
			add(symbol)
		}
	}
	for _, a := range activities {
		add(a.Symbol)
	}
	return symbols
}
