package analytics

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/portfolio-analytics/internal/models"
)

func sumBuckets(buckets []models.AllocationBucket) (value, percentage decimal.Decimal) {
	value, percentage = decimal.Zero, decimal.Zero
	for _, b := range buckets {
		value = value.Add(b.Value)
		percentage = percentage.Add(b.Percentage)
	}
	return value, percentage
}

func totalValue(holdings []models.Holding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(h.MarketValue())
	}
	return total
}

func TestComputeAllocation_BySector(t *testing.T) {
	buckets := ComputeAllocation(sampleHoldings(), BySector)

	require.Len(t, buckets, 4)
	// Technology = 201075 + 72840
	assert.Equal(t, "Technology", buckets[0].Name)
	requireDecimal(t, "273915", buckets[0].Value)
	assert.Equal(t, "Energy", buckets[1].Name)
	assert.Equal(t, "Consumer Discretionary", buckets[2].Name)
	assert.Equal(t, "Healthcare", buckets[3].Name)
	requireDecimal(t, "950", buckets[3].Value)
}

func TestComputeAllocation_ByMarketCap(t *testing.T) {
	buckets := ComputeAllocation(sampleHoldings(), ByMarketCap)

	require.Len(t, buckets, 3)
	assert.Equal(t, "Large", buckets[0].Name)
	assert.Equal(t, "Mid", buckets[1].Name)
	assert.Equal(t, "Small", buckets[2].Name)
}

func TestComputeAllocation_SumsMatchTotal(t *testing.T) {
	holdings := sampleHoldings()
	tolerance := dec("0.01")

	for _, dim := range []Dimension{BySector, ByMarketCap} {
		buckets := ComputeAllocation(holdings, dim)
		value, percentage := sumBuckets(buckets)

		assert.True(t, value.Sub(totalValue(holdings)).Abs().LessThanOrEqual(tolerance),
			"%s: bucket values sum to %s", dim, value)
		assert.True(t, percentage.Sub(hundred).Abs().LessThanOrEqual(tolerance),
			"%s: bucket percentages sum to %s", dim, percentage)
	}
}

func TestComputeAllocation_SingleSector(t *testing.T) {
	buckets := ComputeAllocation([]models.Holding{
		holding("A", 10, "5", "6", "Banking", "Large"),
		holding("B", 3, "7", "8", "Banking", "Mid"),
	}, BySector)

	require.Len(t, buckets, 1)
	assert.Equal(t, "Banking", buckets[0].Name)
	requireDecimal(t, "84", buckets[0].Value)
	requireDecimal(t, "100.00", buckets[0].Percentage)
}

func TestComputeAllocation_ZeroTotal(t *testing.T) {
	buckets := ComputeAllocation([]models.Holding{
		holding("A", 0, "5", "6", "Banking", "Large"),
		holding("B", 10, "7", "0", "Energy", "Large"),
	}, BySector)

	require.Len(t, buckets, 2)
	for _, b := range buckets {
		requireDecimal(t, "0", b.Percentage, b.Name)
	}
}

func TestComputeAllocation_TiesKeepFirstSeenOrder(t *testing.T) {
	buckets := ComputeAllocation([]models.Holding{
		holding("Z", 1, "1", "100", "Zeta", "Large"),
		holding("A", 1, "1", "100", "Alpha", "Large"),
		holding("M", 1, "1", "300", "Mu", "Large"),
	}, BySector)

	require.Len(t, buckets, 3)
	assert.Equal(t, "Mu", buckets[0].Name)
	assert.Equal(t, "Zeta", buckets[1].Name)
	assert.Equal(t, "Alpha", buckets[2].Name)
}

func TestComputeAllocation_Empty(t *testing.T) {
	buckets := ComputeAllocation(nil, BySector)
	assert.NotNil(t, buckets)
	assert.Empty(t, buckets)
}

func TestComputeAllocation_PercentagesSumToHundred(t *testing.T) {
	for n := 1; n <= 12; n++ {
		equal := make([]models.Holding, 0, n)
		ramp := make([]models.Holding, 0, n)
		for i := 0; i < n; i++ {
			sector := fmt.Sprintf("Sector%02d", i)
			equal = append(equal, holding(fmt.Sprintf("EQ%d", i), 10, "1", "7", sector, "Large"))
			ramp = append(ramp, holding(fmt.Sprintf("RM%d", i), int64(i+1), "1", "3.33", sector, "Large"))
		}

		for name, holdings := range map[string][]models.Holding{"equal": equal, "ramp": ramp} {
			buckets := ComputeAllocation(holdings, BySector)
			require.Len(t, buckets, n)

			total := totalValue(holdings)
			_, percentage := sumBuckets(buckets)
			requireDecimal(t, "100", percentage, "%s n=%d", name, n)

			for _, b := range buckets {
				exact := percentOf(b.Value, total)
				assert.True(t, b.Percentage.Sub(exact).Abs().LessThan(dec("0.01")),
					"%s n=%d: %s is %s, exact %s", name, n, b.Name, b.Percentage, exact)
				assert.True(t, b.Percentage.Equal(Round(b.Percentage)), b.Percentage.String())
			}
		}
	}
}

func TestComputeAllocation_SixEqualSectors(t *testing.T) {
	holdings := make([]models.Holding, 0, 6)
	for i := 0; i < 6; i++ {
		holdings = append(holdings, holding(fmt.Sprintf("S%d", i), 1, "1", "50", fmt.Sprintf("Sector%d", i), "Large"))
	}

	buckets := ComputeAllocation(holdings, BySector)
	require.Len(t, buckets, 6)
	// 100/6 = 16.666...: four buckets take the extra hundredth, in first-seen order
	for i, want := range []string{"16.67", "16.67", "16.67", "16.67", "16.66", "16.66"} {
		requireDecimal(t, want, buckets[i].Percentage, buckets[i].Name)
	}
}

func TestApportion(t *testing.T) {
	got := apportion([]decimal.Decimal{dec("50.004"), dec("49.996")})
	requireDecimal(t, "50.00", got[0])
	requireDecimal(t, "50.00", got[1])

	got = apportion([]decimal.Decimal{dec("33.335"), dec("33.335"), dec("33.33")})
	requireDecimal(t, "33.34", got[0])
	requireDecimal(t, "33.33", got[1])
	requireDecimal(t, "33.33", got[2])

	assert.Empty(t, apportion(nil))
}
