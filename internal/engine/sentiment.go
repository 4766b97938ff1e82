package engine

import (
	"context"

	"stock-alert-bot/internal/entity"

	"github.com/jonreiter/govader"
)

// Sentiment classification thresholds on the compound polarity score.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// PolarityScorer produces a compound polarity score in [-1, 1] for a piece of
// text. Implementations may be purely lexicon-based or backed by a remote
// model; callers treat a score of 0 as neutral.
type PolarityScorer interface {
	Compound(ctx context.Context, text string) (float64, error)
}

// ClassifySentiment maps a compound polarity score to a sentiment label.
// The boundary values 0.05 and -0.05 classify as Positive and Negative.
func ClassifySentiment(compound float64) entity.Sentiment {
	switch {
	case compound >= positiveThreshold:
		return entity.SentimentPositive
	case compound <= negativeThreshold:
		return entity.SentimentNegative
	default:
		return entity.SentimentNeutral
	}
}

// VaderScorer scores text with the VADER lexicon. It never fails and ignores
// the context; the analyzer is safe for concurrent use once constructed.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer creates a VADER-based polarity scorer.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the VADER compound score for text.
func (v *VaderScorer) Compound(_ context.Context, text string) (float64, error) {
	return v.analyzer.PolarityScores(text).Compound, nil
}
