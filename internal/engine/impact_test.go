package engine

import (
	"testing"

	"stock-alert-bot/internal/entity"
	"stock-alert-bot/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func TestImpactScorerKeywords(t *testing.T) {
	scorer := NewImpactScorer(DefaultImpactConfig())

	// Two keywords at 2 points each reach the High threshold on their own.
	impact := scorer.Score("Company announces major contract and merger", 0, nil)
	assert.Equal(t, entity.ImpactHigh, impact)

	// One keyword alone is Medium.
	impact = scorer.Score("Board declares dividend", 0, nil)
	assert.Equal(t, entity.ImpactMedium, impact)

	// Keyword matching is case-insensitive.
	impact = scorer.Score("MERGER talks continue, ACQUISITION likely", 0, nil)
	assert.Equal(t, entity.ImpactHigh, impact)

	// No keywords, neutral sentiment, no volume data.
	impact = scorer.Score("Company holds annual general meeting", 0, nil)
	assert.Equal(t, entity.ImpactLow, impact)
}

func TestImpactScorerVolumeBands(t *testing.T) {
	scorer := NewImpactScorer(DefaultImpactConfig())
	headline := "Shares trade actively"

	tests := []struct {
		name         string
		volumeChange *float64
		want         entity.Impact
	}{
		{"above 100 adds 3", utils.ToPointer(120.0), entity.ImpactMedium},
		{"above 50 adds 2", utils.ToPointer(60.0), entity.ImpactMedium},
		{"above 20 adds 1", utils.ToPointer(30.0), entity.ImpactLow},
		{"at or below 20 adds 0", utils.ToPointer(20.0), entity.ImpactLow},
		{"absent adds 0", nil, entity.ImpactLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scorer.Score(headline, 0, tt.volumeChange))
		})
	}
}

func TestImpactScorerSentimentMagnitude(t *testing.T) {
	scorer := NewImpactScorer(DefaultImpactConfig())
	headline := "Shares move on trading update"

	// |compound| * 3: 0.7 -> 2.1, Medium; -0.7 is equivalent.
	assert.Equal(t, entity.ImpactMedium, scorer.Score(headline, 0.7, nil))
	assert.Equal(t, entity.ImpactMedium, scorer.Score(headline, -0.7, nil))

	// 0.5 -> 1.5, still Low.
	assert.Equal(t, entity.ImpactLow, scorer.Score(headline, 0.5, nil))
}

func TestImpactScorerCombined(t *testing.T) {
	scorer := NewImpactScorer(DefaultImpactConfig())

	// Keyword (2) + volume band >100 (3) = 5 -> High.
	impact := scorer.Score("XYZ wins major contract", 0, utils.ToPointer(120.0))
	assert.Equal(t, entity.ImpactHigh, impact)
}

func TestImpactScorerInjectedConfig(t *testing.T) {
	cfg := ImpactConfig{
		HighImpactKeywords: []string{"moon"},
		KeywordPoints:      10,
		SentimentWeight:    0,
		HighThreshold:      10,
		MediumThreshold:    5,
	}
	scorer := NewImpactScorer(cfg)

	assert.Equal(t, entity.ImpactHigh, scorer.Score("to the moon", 0, nil))
	assert.Equal(t, entity.ImpactLow, scorer.Score("major contract won", 0, nil))
}
