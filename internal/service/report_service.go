package service

import (
	"context"
	"sort"
	"time"

	"stock-alert-bot/internal/dto"
	"stock-alert-bot/internal/repository"
	"stock-alert-bot/pkg/logger"
	"stock-alert-bot/pkg/markethours"
	"stock-alert-bot/pkg/telegram"
)

// ReportService sends the scheduled market reports: the daily outlook before
// the open and the end-of-day summary after the close.
type ReportService interface {
	SendDailyOutlook(ctx context.Context)
	SendEndOfDaySummary(ctx context.Context)
}

type reportService struct {
	log      *logger.Logger
	market   repository.MarketDataRepository
	notifier telegram.Notifier
	hours    *markethours.Schedule
}

// NewReportService creates a new report service.
func NewReportService(log *logger.Logger, market repository.MarketDataRepository, notifier telegram.Notifier, hours *markethours.Schedule) ReportService {
	return &reportService{
		log:      log,
		market:   market,
		notifier: notifier,
		hours:    hours,
	}
}

// SendDailyOutlook gathers and sends the pre-open market outlook. On
// non-trading days it does nothing.
func (s *reportService) SendDailyOutlook(ctx context.Context) {
	now := time.Now().In(s.hours.Location())
	if !s.hours.IsTradingDay(now) {
		s.log.Info("Market closed today, no outlook will be sent")
		return
	}

	s.log.Info("Generating daily market outlook")

	outlook := dto.MarketOutlook{Date: now}

	if indices, err := s.market.GetIndices(ctx); err != nil {
		s.log.Error("Failed to get indices data", logger.ErrorField(err))
	} else {
		outlook.Indices = indices
	}

	if sectors, err := s.market.GetSectorPerformance(ctx); err != nil {
		s.log.Error("Failed to get sector data", logger.ErrorField(err))
	} else {
		outlook.Sectors = sortSectors(sectors)
	}

	if sentiment, err := s.market.GetMarketSentiment(ctx); err != nil {
		s.log.Error("Failed to get sentiment data", logger.ErrorField(err))
	} else {
		outlook.Sentiment = sentiment
	}

	if activities, err := s.market.GetInstitutionalActivity(ctx); err != nil {
		s.log.Error("Failed to get institutional activity", logger.ErrorField(err))
	} else {
		outlook.Activities = activities
	}

	if err := s.notifier.SendMessage(telegram.FormatOutlook(outlook)); err != nil {
		s.log.Error("Failed to send daily market outlook", logger.ErrorField(err))
		return
	}
	s.log.Info("Daily market outlook sent")
}

// SendEndOfDaySummary gathers and sends the post-close summary. On
// non-trading days it does nothing.
func (s *reportService) SendEndOfDaySummary(ctx context.Context) {
	now := time.Now().In(s.hours.Location())
	if !s.hours.IsTradingDay(now) {
		s.log.Info("Market was closed today, no summary will be sent")
		return
	}

	s.log.Info("Generating end-of-day market summary")

	summary := dto.EODSummary{Date: now}

	if indices, err := s.market.GetIndices(ctx); err != nil {
		s.log.Error("Failed to get indices data", logger.ErrorField(err))
	} else {
		summary.Indices = indices
	}

	if gainers, err := s.market.GetTopGainers(ctx); err != nil {
		s.log.Error("Failed to get top gainers", logger.ErrorField(err))
	} else {
		summary.Gainers = gainers
	}

	if losers, err := s.market.GetTopLosers(ctx); err != nil {
		s.log.Error("Failed to get top losers", logger.ErrorField(err))
	} else {
		summary.Losers = losers
	}

	if sectors, err := s.market.GetSectorPerformance(ctx); err != nil {
		s.log.Error("Failed to get sector data", logger.ErrorField(err))
	} else {
		summary.Sectors = sortSectors(sectors)
	}

	if activities, err := s.market.GetInstitutionalActivity(ctx); err != nil {
		s.log.Error("Failed to get institutional activity", logger.ErrorField(err))
	} else {
		summary.Activities = activities
	}

	if breadth, err := s.market.GetMarketBreadth(ctx); err != nil {
		s.log.Error("Failed to get market breadth", logger.ErrorField(err))
	} else {
		summary.Breadth = breadth
	}

	if volume, err := s.market.GetMarketVolume(ctx); err != nil {
		s.log.Error("Failed to get market volume", logger.ErrorField(err))
	} else {
		summary.Volume = volume
	}

	if sentiment, err := s.market.GetMarketSentiment(ctx); err != nil {
		s.log.Error("Failed to get sentiment data", logger.ErrorField(err))
	} else {
		summary.Sentiment = sentiment
	}

	if err := s.notifier.SendMessage(telegram.FormatEODSummary(summary)); err != nil {
		s.log.Error("Failed to send end-of-day summary", logger.ErrorField(err))
		return
	}
	s.log.Info("End-of-day summary sent")
}

// sortSectors orders sectors by performance, best first.
func sortSectors(sectors []dto.SectorPerformance) []dto.SectorPerformance {
	sorted := make([]dto.SectorPerformance, len(sectors))
	copy(sorted, sectors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ChangePercent > sorted[j].ChangePercent
	})
	return sorted
}
