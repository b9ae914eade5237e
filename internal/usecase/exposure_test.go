package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"marketbrief/internal/domain"
)

func TestPortfolioWeightsLadder(t *testing.T) {
	symbols := []string{"A", "B", "C", "D", "E", "F", "G"}
	weights := PortfolioWeights(symbols)

	assert.Equal(t, 0.15, weights["A"])
	assert.InDelta(t, 0.13, weights["B"], 1e-9)
	assert.InDelta(t, 0.11, weights["C"], 1e-9)
	assert.InDelta(t, 0.09, weights["D"], 1e-9)
	assert.InDelta(t, 0.07, weights["E"], 1e-9)
	assert.Equal(t, 0.05, weights["F"])
	assert.Equal(t, 0.05, weights["G"], "weights floor at 5%")
}

func TestComputeExposure(t *testing.T) {
	symbols := []string{"TSM", "005930.KS"}
	weights := PortfolioWeights(symbols)
	history := map[string]domain.Series{
		"TSM": {Symbol: "TSM", Bars: []domain.Bar{{Close: 100}, {Close: 112.34}}},
	}

	positions := ComputeExposure(symbols, weights, 1_000_000, history)

	assert.Len(t, positions, 2)

	tsm := positions[0]
	assert.Equal(t, "TSM", tsm.Symbol)
	assert.Equal(t, 0.15, tsm.Weight)
	assert.InDelta(t, 150_000.0, tsm.Value, 1e-6)
	assert.True(t, tsm.PriceKnown)
	assert.Equal(t, 112.34, tsm.Price)

	samsung := positions[1]
	assert.Equal(t, "005930.KS", samsung.Symbol)
	assert.False(t, samsung.PriceKnown, "missing series must not fabricate a price")
	assert.Zero(t, samsung.Price)
	assert.InDelta(t, 130_000.0, samsung.Value, 1e-6)
}

func TestComputeExposureEmptySeries(t *testing.T) {
	positions := ComputeExposure(
		[]string{"TSM"},
		map[string]float64{"TSM": 0.15},
		1_000_000,
		map[string]domain.Series{"TSM": {Symbol: "TSM"}},
	)
	assert.False(t, positions[0].PriceKnown, "empty series must not fabricate a price")
}
