package engine

import (
	"errors"
	"fmt"
	"math"
)

const (
	// VolatilityFloor is the minimum volatility returned by the estimator.
	VolatilityFloor = 0.015
	// DefaultVolatility is the policy fallback when no closing-price data is
	// available. Substituting it is the caller's decision, not the
	// estimator's: an insufficient series is a contract error here.
	DefaultVolatility = 0.02
)

// ErrInsufficientCloses is returned when fewer than two closing prices are
// supplied.
var ErrInsufficientCloses = errors.New("volatility estimate requires at least 2 closing prices")

// EstimateVolatility computes the population standard deviation of
// day-over-day simple returns of the closes series (oldest first), floored at
// VolatilityFloor.
func EstimateVolatility(closes []float64) (float64, error) {
	if len(closes) < 2 {
		return 0, ErrInsufficientCloses
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] <= 0 || closes[i] <= 0 {
			return 0, fmt.Errorf("non-positive closing price at index %d", i)
		}
		returns = append(returns, closes[i]/closes[i-1]-1)
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns))

	return math.Max(math.Sqrt(variance), VolatilityFloor), nil
}
