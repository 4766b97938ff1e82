package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-alert-bot/internal/config"
	"stock-alert-bot/internal/entity"
	"stock-alert-bot/internal/service"
	"stock-alert-bot/pkg/logger"
	"stock-alert-bot/pkg/markethours"
)

func newTestHandler(t *testing.T) (*StatusHandler, *service.StatsTracker) {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	hours, err := markethours.NewSchedule("09:15", "15:30", "Asia/Kolkata")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Name = "stock-alert-bot"
	cfg.App.Version = "1.0.0"

	stats := service.NewStatsTracker(time.Now())
	return NewStatusHandler(cfg, log, stats, hours), stats
}

func TestHealthEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)
	e := echo.New()
	handler.RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStatusEndpoint(t *testing.T) {
	handler, stats := newTestHandler(t)
	e := echo.New()
	handler.RegisterRoutes(e)

	stats.RecordCycle([]entity.Signal{{Symbol: "AAA", Action: entity.ActionBuy}}, time.Now())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "stock-alert-bot", body["app"])
	assert.Equal(t, float64(1), body["cycles"])
	assert.Equal(t, float64(1), body["signals_total"])
	assert.Contains(t, body, "market_open")
	assert.Contains(t, body, "last_cycle_at")
}

func TestSignalsEndpoint(t *testing.T) {
	handler, stats := newTestHandler(t)
	e := echo.New()
	handler.RegisterRoutes(e)

	stats.RecordCycle([]entity.Signal{
		{Symbol: "XYZ", Action: entity.ActionBuy, Impact: entity.ImpactHigh},
	}, time.Now())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/signals", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []entity.Signal `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "XYZ", body.Data[0].Symbol)
}
