package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/portfolio-analytics/internal/models"
)

func TestTopPerformers(t *testing.T) {
	set, err := TopPerformers(sampleHoldings())
	require.NoError(t, err)

	assert.Equal(t, "INFY", set.Best.Symbol)
	assert.Equal(t, models.MetricBestPerformer, set.Best.Metric)
	assert.Equal(t, "ASIANPAINT", set.Worst.Symbol)
	assert.Equal(t, "INFY", set.Highest.Symbol)
	requireDecimal(t, "201075", set.Highest.Value)
	assert.Equal(t, "SMALLCO", set.Lowest.Symbol)
	requireDecimal(t, "950", set.Lowest.Value)
}

func TestTopPerformers_Empty(t *testing.T) {
	set, err := TopPerformers(nil)
	assert.Nil(t, set)
	assert.ErrorIs(t, err, ErrNoHoldings)
}

func TestTopPerformers_TiesBrokenBySymbol(t *testing.T) {
	set, err := TopPerformers([]models.Holding{
		holding("ZED", 10, "100", "110", "X", "Large"),
		holding("ABC", 20, "50", "55", "X", "Large"),
		holding("MID", 10, "100", "90", "X", "Large"),
		holding("AAA", 10, "100", "90", "X", "Large"),
	})
	require.NoError(t, err)

	// ZED and ABC both gain 10%
	assert.Equal(t, "ABC", set.Best.Symbol)
	// MID and AAA both lose 10%
	assert.Equal(t, "AAA", set.Worst.Symbol)
	// ZED and ABC are both worth 1100
	assert.Equal(t, "ABC", set.Highest.Symbol)
	assert.Equal(t, "AAA", set.Lowest.Symbol)
}

func TestTopPerformers_SingleHolding(t *testing.T) {
	set, err := TopPerformers([]models.Holding{
		holding("ONLY", 1, "10", "12", "X", "Large"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ONLY", set.Best.Symbol)
	assert.Equal(t, "ONLY", set.Worst.Symbol)
}

func TestTopPerformerSet_ByMetric(t *testing.T) {
	set, err := TopPerformers(sampleHoldings())
	require.NoError(t, err)

	p, ok := set.ByMetric(models.MetricLowestValue)
	assert.True(t, ok)
	assert.Equal(t, "SMALLCO", p.Symbol)

	_, ok = set.ByMetric("Most Dividends")
	assert.False(t, ok)
}

func TestRankHoldings(t *testing.T) {
	gainers, losers := RankHoldings(sampleHoldings(), 2)

	require.Len(t, gainers, 2)
	assert.Equal(t, "INFY", gainers[0].Symbol)
	assert.Equal(t, "RELIANCE", gainers[1].Symbol)

	require.Len(t, losers, 2)
	assert.Equal(t, "ASIANPAINT", losers[0].Symbol)
	assert.Equal(t, "SMALLCO", losers[1].Symbol)
	requireDecimal(t, "-5", losers[1].Value)
}

func TestRankHoldings_NoLimit(t *testing.T) {
	gainers, losers := RankHoldings(sampleHoldings(), 0)
	assert.Len(t, gainers, 5)
	assert.Len(t, losers, 5)
	assert.Equal(t, gainers[0].Symbol, losers[4].Symbol)
}

func TestRankHoldings_Empty(t *testing.T) {
	gainers, losers := RankHoldings(nil, 5)
	assert.Empty(t, gainers)
	assert.Empty(t, losers)
}
