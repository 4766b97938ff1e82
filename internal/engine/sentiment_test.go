package engine

import (
	"context"
	"testing"

	"stock-alert-bot/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySentiment(t *testing.T) {
	tests := []struct {
		name     string
		compound float64
		want     entity.Sentiment
	}{
		{"strong positive", 0.8, entity.SentimentPositive},
		{"positive boundary", 0.05, entity.SentimentPositive},
		{"just below positive boundary", 0.049, entity.SentimentNeutral},
		{"zero", 0, entity.SentimentNeutral},
		{"just above negative boundary", -0.049, entity.SentimentNeutral},
		{"negative boundary", -0.05, entity.SentimentNegative},
		{"strong negative", -0.9, entity.SentimentNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySentiment(tt.compound))
		})
	}
}

func TestVaderScorer(t *testing.T) {
	scorer := NewVaderScorer()
	ctx := context.Background()

	positive, err := scorer.Compound(ctx, "Company reports excellent growth and record profits")
	require.NoError(t, err)
	assert.Greater(t, positive, 0.0)

	negative, err := scorer.Compound(ctx, "Company hit by terrible fraud scandal and huge losses")
	require.NoError(t, err)
	assert.Less(t, negative, 0.0)

	assert.GreaterOrEqual(t, positive, -1.0)
	assert.LessOrEqual(t, positive, 1.0)
}
