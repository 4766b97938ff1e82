package engine

import (
	"math"
	"strings"

	"stock-alert-bot/internal/entity"
)

// VolumeBand awards points when the volume-change percent exceeds Threshold.
// Bands are evaluated highest-first and are mutually exclusive.
type VolumeBand struct {
	Threshold float64
	Points    float64
}

// ImpactConfig carries the tunable constants of the impact scorer so they can
// be swapped in tests or adjusted without code changes.
type ImpactConfig struct {
	HighImpactKeywords []string
	KeywordPoints      float64
	SentimentWeight    float64
	VolumeBands        []VolumeBand
	HighThreshold      float64
	MediumThreshold    float64
}

// DefaultImpactConfig returns the production scoring constants.
func DefaultImpactConfig() ImpactConfig {
	return ImpactConfig{
		HighImpactKeywords: []string{
			"merger", "acquisition", "takeover", "buyout", "bankrupt",
			"fraud", "scandal", "investigation", "lawsuit", "breakout",
			"breakthrough", "fda approval", "patent granted", "major contract",
			"quarterly results", "profit warning", "guidance raised", "dividend",
			"stock split", "massive", "huge", "significant", "crisis",
		},
		KeywordPoints:   2,
		SentimentWeight: 3,
		VolumeBands: []VolumeBand{
			{Threshold: 100, Points: 3},
			{Threshold: 50, Points: 2},
			{Threshold: 20, Points: 1},
		},
		HighThreshold:   4,
		MediumThreshold: 2,
	}
}

// ImpactScorer maps a headline, its compound sentiment score and an optional
// volume-change percent to an impact level.
type ImpactScorer struct {
	cfg      ImpactConfig
	keywords []string
}

// NewImpactScorer creates an ImpactScorer with the given constants.
func NewImpactScorer(cfg ImpactConfig) *ImpactScorer {
	keywords := make([]string, len(cfg.HighImpactKeywords))
	for i, kw := range cfg.HighImpactKeywords {
		keywords[i] = strings.ToLower(kw)
	}
	return &ImpactScorer{cfg: cfg, keywords: keywords}
}

// Score computes the impact level. Each high-impact keyword present in the
// headline adds KeywordPoints; the sentiment magnitude adds
// |compound|*SentimentWeight; the matching volume band, if any, adds its
// points. volumeChange is nil when the figure is unavailable.
func (s *ImpactScorer) Score(headline string, compound float64, volumeChange *float64) entity.Impact {
	lowered := strings.ToLower(headline)

	score := 0.0
	for _, kw := range s.keywords {
		if strings.Contains(lowered, kw) {
			score += s.cfg.KeywordPoints
		}
	}

	score += math.Abs(compound) * s.cfg.SentimentWeight

	if volumeChange != nil {
		for _, band := range s.cfg.VolumeBands {
			if *volumeChange > band.Threshold {
				score += band.Points
				break
			}
		}
	}

	switch {
	case score >= s.cfg.HighThreshold:
		return entity.ImpactHigh
	case score >= s.cfg.MediumThreshold:
		return entity.ImpactMedium
	default:
		return entity.ImpactLow
	}
}
