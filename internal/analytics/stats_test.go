package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/portfolio-analytics/internal/models"
)

func TestComputeSeriesStats(t *testing.T) {
	stats := ComputeSeriesStats(monthlySeries())
	require.Len(t, stats, 3)

	portfolio := stats[models.SeriesPortfolio]
	assert.Equal(t, 12, portfolio.Observations)
	assert.True(t, portfolio.MeanMonthlyReturn.IsPositive())
	assert.True(t, portfolio.Volatility.IsPositive())
	// Portfolio value never falls
	requireDecimal(t, "0", portfolio.MaxDrawdown)

	// Gold dips from 62000 to 61800 in February
	requireDecimal(t, "0.32", stats[models.SeriesGold].MaxDrawdown)
}

func TestComputeSeriesStats_ShortSeries(t *testing.T) {
	stats := ComputeSeriesStats(monthlySeries()[:1])
	s := stats[models.SeriesPortfolio]
	assert.Equal(t, 1, s.Observations)
	requireDecimal(t, "0", s.MeanMonthlyReturn)
	requireDecimal(t, "0", s.Volatility)

	stats = ComputeSeriesStats(monthlySeries()[:2])
	s = stats[models.SeriesNifty50]
	// 21000 -> 21300
	requireDecimal(t, "1.43", s.MeanMonthlyReturn)
	requireDecimal(t, "0", s.Volatility)

	assert.Len(t, ComputeSeriesStats(nil), 3)
}

func TestMaxDrawdown(t *testing.T) {
	assert.InDelta(t, 50.0, maxDrawdown([]float64{100, 120, 60, 130, 100}), 1e-9)
	assert.InDelta(t, 0.0, maxDrawdown([]float64{1, 2, 3}), 1e-9)
}

func TestStepReturns_ZeroBase(t *testing.T) {
	assert.Equal(t, []float64{0, 50}, stepReturns([]float64{0, 10, 15}))
}
