package http

import (
	"net/http"
	"time"

	"stock-alert-bot/internal/config"
	"stock-alert-bot/internal/service"
	"stock-alert-bot/pkg/logger"
	"stock-alert-bot/pkg/markethours"

	"github.com/labstack/echo/v4"
)

// StatusHandler exposes the ops endpoints: health, service status and the
// latest cycle's signals.
type StatusHandler struct {
	cfg    *config.Config
	logger *logger.Logger
	stats  *service.StatsTracker
	hours  *markethours.Schedule
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(cfg *config.Config, logger *logger.Logger, stats *service.StatsTracker, hours *markethours.Schedule) *StatusHandler {
	return &StatusHandler{cfg: cfg, logger: logger, stats: stats, hours: hours}
}

// RegisterRoutes registers the ops routes.
func (h *StatusHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	apiV1 := e.Group("/api/v1")
	apiV1.GET("/status", h.Status)
	apiV1.GET("/signals", h.Signals)
}

// Health reports process liveness.
func (h *StatusHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Status reports the service's runtime state and counters.
func (h *StatusHandler) Status(c echo.Context) error {
	now := time.Now().In(h.hours.Location())
	stats := h.stats.Snapshot()

	resp := echo.Map{
		"app":              h.cfg.App.Name,
		"version":          h.cfg.App.Version,
		"time":             now,
		"market_open":      h.hours.IsOpen(now),
		"cycles":           stats.Cycles,
		"signals_total":    stats.SignalsTotal,
		"alerts_delivered": stats.AlertsDelivered,
	}
	if last := h.stats.LastCycleAt(); !last.IsZero() {
		resp["last_cycle_at"] = last
	}
	return c.JSON(http.StatusOK, resp)
}

// Signals returns the signals from the most recent evaluation cycle.
func (h *StatusHandler) Signals(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"data": h.stats.LatestSignals()})
}
