package service

import (
	"sync"
	"time"

	"stock-alert-bot/internal/dto"
	"stock-alert-bot/internal/entity"
)

// StatsTracker accumulates evaluation counters and the latest signal batch.
// It is safe for concurrent use by the cycle service, the bot and the ops
// API.
type StatsTracker struct {
	mu              sync.RWMutex
	since           time.Time
	cycles          int
	signalsTotal    int
	alertsDelivered int
	byAction        map[entity.Action]int
	byImpact        map[entity.Impact]int
	latest          []entity.Signal
	lastCycleAt     time.Time
}

// NewStatsTracker creates a StatsTracker anchored at now.
func NewStatsTracker(now time.Time) *StatsTracker {
	return &StatsTracker{
		since:    now,
		byAction: make(map[entity.Action]int),
		byImpact: make(map[entity.Impact]int),
	}
}

// RecordCycle records one completed evaluation cycle and its signals.
func (t *StatsTracker) RecordCycle(signals []entity.Signal, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cycles++
	t.lastCycleAt = at
	t.signalsTotal += len(signals)
	for _, s := range signals {
		t.byAction[s.Action]++
		t.byImpact[s.Impact]++
	}
	t.latest = make([]entity.Signal, len(signals))
	copy(t.latest, signals)
}

// RecordDelivery records one alert successfully handed to Telegram.
func (t *StatsTracker) RecordDelivery() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.alertsDelivered++
}

// Snapshot returns the current counters.
func (t *StatsTracker) Snapshot() dto.PerformanceStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	byAction := make(map[entity.Action]int, len(t.byAction))
	for k, v := range t.byAction {
		byAction[k] = v
	}
	byImpact := make(map[entity.Impact]int, len(t.byImpact))
	for k, v := range t.byImpact {
		byImpact[k] = v
	}

	return dto.PerformanceStats{
		Since:           t.since,
		Cycles:          t.cycles,
		SignalsTotal:    t.signalsTotal,
		AlertsDelivered: t.alertsDelivered,
		ByAction:        byAction,
		ByImpact:        byImpact,
	}
}

// LatestSignals returns the signals from the most recent cycle.
func (t *StatsTracker) LatestSignals() []entity.Signal {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]entity.Signal, len(t.latest))
	copy(out, t.latest)
	return out
}

// LastCycleAt returns when the most recent cycle finished, zero if none ran.
func (t *StatsTracker) LastCycleAt() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastCycleAt
}
