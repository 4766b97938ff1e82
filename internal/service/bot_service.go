package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stock-alert-bot/internal/dto"
	"stock-alert-bot/internal/repository"
	"stock-alert-bot/pkg/logger"
	"stock-alert-bot/pkg/markethours"
	"stock-alert-bot/pkg/telegram"
	"stock-alert-bot/pkg/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/patrickmn/go-cache"
)

const quoteCacheTTL = 30 * time.Second

// BotService handles Telegram command updates.
type BotService interface {
	Start(ctx context.Context)
}

type botService struct {
	log        *logger.Logger
	client     *telegram.Client
	market     repository.MarketDataRepository
	hours      *markethours.Schedule
	stats      *StatsTracker
	watchlist  *Watchlist
	quoteCache *cache.Cache
}

// NewBotService creates a new bot command service.
func NewBotService(log *logger.Logger, client *telegram.Client, market repository.MarketDataRepository, hours *markethours.Schedule, stats *StatsTracker, watchlist *Watchlist) BotService {
	return &botService{
		log:        log,
		client:     client,
		market:     market,
		hours:      hours,
		stats:      stats,
		watchlist:  watchlist,
		quoteCache: cache.New(quoteCacheTTL, time.Minute),
	}
}

// Start consumes command updates until the context is cancelled.
func (s *botService) Start(ctx context.Context) {
	updates := s.client.Updates()
	s.log.Info("Telegram command handler started")

	for {
		select {
		case <-ctx.Done():
			s.client.Stop()
			s.log.Info("Telegram command handler stopping")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			s.handleCommand(ctx, update.Message)
		}
	}
}

func (s *botService) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	command := msg.Command()
	args := strings.Fields(msg.CommandArguments())

	s.log.DebugContext(ctx, "Handling bot command",
		logger.StringField("command", command), logger.Field("chat_id", chatID))

	var reply string
	switch command {
	case "start":
		reply = telegram.WelcomeMessage
	case "help":
		reply = telegram.HelpMessage
	case "status":
		reply = s.statusReply(ctx)
	case "stocks":
		reply = s.stocksReply(ctx, args)
	case "watchlist":
		reply = s.watchlistReply(chatID, args)
	case "performance":
		reply = telegram.FormatPerformance(s.stats.Snapshot())
	default:
		reply = "Unknown command. Use /help to see available commands."
	}

	if err := s.client.SendMessageTo(chatID, reply); err != nil {
		s.log.Error("Failed to send command reply",
			logger.ErrorField(err), logger.StringField("command", command))
	}
}

func (s *botService) statusReply(ctx context.Context) string {
	now := time.Now().In(s.hours.Location())

	status := dto.BotStatus{
		Now:        now,
		MarketOpen: s.hours.IsOpen(now),
		NextOpen:   s.hours.NextOpen(now),
	}

	indices, err := s.market.GetIndices(ctx)
	if err != nil {
		s.log.Error("Failed to fetch indices for status", logger.ErrorField(err))
	} else {
		status.Indices = indices
	}

	return telegram.FormatStatus(status)
}

func (s *botService) stocksReply(ctx context.Context, args []string) string {
	if len(args) == 0 {
		movers, err := s.market.GetMostActive(ctx)
		if err != nil {
			s.log.Error("Failed to fetch most active stocks", logger.ErrorField(err))
			return "Error fetching stock data. Please try again later."
		}
		return telegram.FormatMostActive(movers)
	}

	symbol := strings.ToUpper(args[0])

	quote, err := s.cachedStockDetail(ctx, symbol)
	if err != nil {
		s.log.Error("Failed to fetch stock details",
			logger.ErrorField(err), logger.StringField("symbol", symbol))
		return fmt.Sprintf("No data found for symbol *%s*. Please check the symbol and try again.", symbol)
	}

	detail := dto.StockDetail{Quote: quote}

	if news, err := s.market.GetMarketNews(ctx); err == nil {
		for _, n := range news {
			if utils.ContainsString(n.Symbols, symbol) {
				detail.News = append(detail.News, n)
			}
		}
	}

	if activities, err := s.market.GetInstitutionalActivity(ctx); err == nil {
		for _, a := range activities {
			if strings.EqualFold(a.Symbol, symbol) {
				detail.Activities = append(detail.Activities, a)
			}
		}
	}

	return telegram.FormatStockDetail(detail)
}

// cachedStockDetail serves /stocks lookups through a short-lived cache so
// repeated queries do not burn the API quota.
func (s *botService) cachedStockDetail(ctx context.Context, symbol string) (*dto.QuoteResponse, error) {
	if cached, found := s.quoteCache.Get(symbol); found {
		return cached.(*dto.QuoteResponse), nil
	}

	quote, err := s.market.GetStockDetail(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if quote.Symbol == "" {
		quote.Symbol = symbol
	}
	s.quoteCache.Set(symbol, quote, cache.DefaultExpiration)
	return quote, nil
}

func (s *botService) watchlistReply(chatID int64, args []string) string {
	if len(args) == 0 {
		return telegram.FormatWatchlist(s.watchlist.Get(chatID))
	}

	action := strings.ToLower(args[0])
	switch {
	case action == "add" && len(args) > 1:
		symbol := strings.ToUpper(args[1])
		if s.watchlist.Add(chatID, symbol) {
			return fmt.Sprintf("Added %s to your watchlist.", symbol)
		}
		return fmt.Sprintf("%s is already on your watchlist.", symbol)
	case action == "remove" && len(args) > 1:
		symbol := strings.ToUpper(args[1])
		if s.watchlist.Remove(chatID, symbol) {
			return fmt.Sprintf("Removed %s from your watchlist.", symbol)
		}
		return fmt.Sprintf("%s is not on your watchlist.", symbol)
	default:
		return "Invalid watchlist command. Use /watchlist, /watchlist add SYMBOL, or /watchlist remove SYMBOL"
	}
}
