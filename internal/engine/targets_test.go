package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-alert-bot/internal/entity"
)

func TestCalculatePriceTargetsBuy(t *testing.T) {
	targets, err := CalculatePriceTargets(100, entity.ActionBuy, 0.02)
	require.NoError(t, err)

	assert.Equal(t, 100.0, targets.Entry)
	assert.Equal(t, 98.0, targets.StopLoss)
	assert.Equal(t, 103.0, targets.Target1)
	assert.Equal(t, 105.0, targets.Target2)
	assert.Equal(t, 107.0, targets.Target3)
}

func TestCalculatePriceTargetsSell(t *testing.T) {
	targets, err := CalculatePriceTargets(100, entity.ActionSell, 0.02)
	require.NoError(t, err)

	assert.Equal(t, 100.0, targets.Entry)
	assert.Equal(t, 102.0, targets.StopLoss)
	assert.Equal(t, 97.0, targets.Target1)
	assert.Equal(t, 95.0, targets.Target2)
	assert.Equal(t, 93.0, targets.Target3)
}

func TestCalculatePriceTargetsOrdering(t *testing.T) {
	buy, err := CalculatePriceTargets(2543.75, entity.ActionBuy, 0.031)
	require.NoError(t, err)
	assert.Less(t, buy.StopLoss, buy.Entry)
	assert.Less(t, buy.Entry, buy.Target1)
	assert.Less(t, buy.Target1, buy.Target2)
	assert.Less(t, buy.Target2, buy.Target3)

	sell, err := CalculatePriceTargets(2543.75, entity.ActionSell, 0.031)
	require.NoError(t, err)
	assert.Greater(t, sell.StopLoss, sell.Entry)
	assert.Greater(t, sell.Entry, sell.Target1)
	assert.Greater(t, sell.Target1, sell.Target2)
	assert.Greater(t, sell.Target2, sell.Target3)
}

func TestCalculatePriceTargetsZeroVolatilityDefaults(t *testing.T) {
	targets, err := CalculatePriceTargets(100, entity.ActionBuy, 0)
	require.NoError(t, err)
	assert.Equal(t, 98.0, targets.StopLoss)
	assert.Equal(t, 103.0, targets.Target1)
}

func TestCalculatePriceTargetsRounding(t *testing.T) {
	targets, err := CalculatePriceTargets(99.999, entity.ActionBuy, 0.02)
	require.NoError(t, err)
	assert.Equal(t, 100.0, targets.Entry)
	assert.Equal(t, 98.0, targets.StopLoss)
}

func TestCalculatePriceTargetsErrors(t *testing.T) {
	_, err := CalculatePriceTargets(0, entity.ActionBuy, 0.02)
	assert.Error(t, err)

	_, err = CalculatePriceTargets(-5, entity.ActionSell, 0.02)
	assert.Error(t, err)

	_, err = CalculatePriceTargets(100, entity.ActionBuy, -0.01)
	assert.Error(t, err)

	_, err = CalculatePriceTargets(100, entity.ActionHold, 0.02)
	assert.Error(t, err)
}
