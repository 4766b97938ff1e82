package engine

import (
	"fmt"
	"math"

	"stock-alert-bot/internal/entity"
)

// Target ladder multipliers applied to the volatility.
var targetMultipliers = [3]float64{1.5, 2.5, 3.5}

// CalculatePriceTargets derives entry, stop-loss and three scaled profit
// targets from the current price and volatility, all rounded to 2 decimals.
// Only BUY and SELL are valid actions; passing HOLD is a caller bug and is
// rejected. A zero volatility selects DefaultVolatility.
func CalculatePriceTargets(price float64, action entity.Action, volatility float64) (entity.PriceTargets, error) {
	if price <= 0 {
		return entity.PriceTargets{}, fmt.Errorf("price must be positive, got %v", price)
	}
	if volatility == 0 {
		volatility = DefaultVolatility
	}
	if volatility < 0 {
		return entity.PriceTargets{}, fmt.Errorf("volatility must be positive, got %v", volatility)
	}

	var direction float64
	switch action {
	case entity.ActionBuy:
		direction = 1
	case entity.ActionSell:
		direction = -1
	default:
		return entity.PriceTargets{}, fmt.Errorf("invalid action %q for price targets", action)
	}

	return entity.PriceTargets{
		Entry:    round2(price),
		StopLoss: round2(price * (1 - direction*volatility)),
		Target1:  round2(price * (1 + direction*volatility*targetMultipliers[0])),
		Target2:  round2(price * (1 + direction*volatility*targetMultipliers[1])),
		Target3:  round2(price * (1 + direction*volatility*targetMultipliers[2])),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
