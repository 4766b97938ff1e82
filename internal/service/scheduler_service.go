package service

import (
	"context"
	"fmt"
	"time"

	"stock-alert-bot/internal/config"
	"stock-alert-bot/pkg/logger"
	"stock-alert-bot/pkg/markethours"

	"github.com/robfig/cron/v3"
)

const (
	defaultScanInterval = 5 * time.Minute
	defaultOutlookCron  = "0 9 * * 1-5"
	defaultEODCron      = "45 15 * * 1-5"
)

// SchedulerService owns the cron that drives the evaluation cycle and the
// scheduled reports, all in the market's local time.
type SchedulerService interface {
	Start(ctx context.Context) error
}

type schedulerService struct {
	cfg     *config.Config
	log     *logger.Logger
	alerts  AlertService
	reports ReportService
	hours   *markethours.Schedule
}

// NewSchedulerService creates a new scheduler service.
func NewSchedulerService(cfg *config.Config, log *logger.Logger, alerts AlertService, reports ReportService, hours *markethours.Schedule) SchedulerService {
	return &schedulerService{
		cfg:     cfg,
		log:     log,
		alerts:  alerts,
		reports: reports,
		hours:   hours,
	}
}

// Start registers the schedules and blocks until the context is cancelled,
// then waits for any running job to finish.
func (s *schedulerService) Start(ctx context.Context) error {
	scanInterval := s.cfg.Scheduler.ScanInterval
	if scanInterval <= 0 {
		scanInterval = defaultScanInterval
	}
	outlookCron := s.cfg.Scheduler.OutlookCron
	if outlookCron == "" {
		outlookCron = defaultOutlookCron
	}
	eodCron := s.cfg.Scheduler.EODCron
	if eodCron == "" {
		eodCron = defaultEODCron
	}

	c := cron.New(cron.WithLocation(s.hours.Location()))

	if _, err := c.AddFunc(fmt.Sprintf("@every %s", scanInterval), func() {
		s.alerts.RunCycle(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule evaluation cycle: %w", err)
	}

	if _, err := c.AddFunc(outlookCron, func() {
		s.reports.SendDailyOutlook(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule daily outlook: %w", err)
	}

	if _, err := c.AddFunc(eodCron, func() {
		s.reports.SendEndOfDaySummary(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule end-of-day summary: %w", err)
	}

	c.Start()
	s.log.Info("Scheduler started",
		logger.StringField("scan_interval", scanInterval.String()),
		logger.StringField("outlook_cron", outlookCron),
		logger.StringField("eod_cron", eodCron))

	<-ctx.Done()
	s.log.Info("Scheduler stopping")
	<-c.Stop().Done()
	return nil
}
