package engine

import (
	"fmt"

	"stock-alert-bot/internal/entity"
)

// InstitutionalFlow is the sign of a symbol's institutional net position.
type InstitutionalFlow string

const (
	FlowNone    InstitutionalFlow = ""
	FlowBuying  InstitutionalFlow = "buying"
	FlowSelling InstitutionalFlow = "selling"
)

// FlowFromNetPosition derives the institutional flow from a net position.
func FlowFromNetPosition(net int64) InstitutionalFlow {
	switch {
	case net > 0:
		return FlowBuying
	case net < 0:
		return FlowSelling
	default:
		return FlowNone
	}
}

// DefaultVolumeSpikeThreshold is the volume-change percent above which a
// matching sentiment upgrades to an action on its own.
const DefaultVolumeSpikeThreshold = 50.0

// ActionResolver maps sentiment, volume change and institutional flow to a
// trading action. Rules are checked in a fixed order; the first match wins.
type ActionResolver struct {
	spikeThreshold float64
}

// NewActionResolver creates an ActionResolver. A zero threshold selects the
// default.
func NewActionResolver(spikeThreshold float64) *ActionResolver {
	if spikeThreshold == 0 {
		spikeThreshold = DefaultVolumeSpikeThreshold
	}
	return &ActionResolver{spikeThreshold: spikeThreshold}
}

// Resolve returns the action and a human-readable reason. Institutional flow
// outranks volume spikes, which outrank bare sentiment; anything else HOLDs.
func (r *ActionResolver) Resolve(sentiment entity.Sentiment, volumeChange *float64, flow InstitutionalFlow) (entity.Action, string) {
	switch flow {
	case FlowBuying:
		return entity.ActionBuy, "Institutional buying detected"
	case FlowSelling:
		return entity.ActionSell, "Institutional selling detected"
	}

	if volumeChange != nil && *volumeChange > r.spikeThreshold {
		switch sentiment {
		case entity.SentimentPositive:
			return entity.ActionBuy, fmt.Sprintf("Unusual volume (+%.0f%%) with positive sentiment", *volumeChange)
		case entity.SentimentNegative:
			return entity.ActionSell, fmt.Sprintf("Unusual volume (+%.0f%%) with negative sentiment", *volumeChange)
		}
	}

	switch sentiment {
	case entity.SentimentPositive:
		return entity.ActionBuy, "Strong positive sentiment in news"
	case entity.SentimentNegative:
		return entity.ActionSell, "Strong negative sentiment in news"
	}

	return entity.ActionHold, "No clear signal"
}
