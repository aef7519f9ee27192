package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/portfolio-analytics/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	require.Truef(t, dec(expected).Equal(actual), "expected %s, got %s %v", expected, actual.String(), msgAndArgs)
}

func holding(symbol string, qty int64, avg, current, sector, marketCap string) models.Holding {
	return models.Holding{
		Symbol:       symbol,
		Name:         symbol + " Ltd",
		Quantity:     qty,
		AvgPrice:     dec(avg),
		CurrentPrice: dec(current),
		Sector:       sector,
		MarketCap:    marketCap,
	}
}

// sampleHoldings is a small mixed portfolio used across tests
func sampleHoldings() []models.Holding {
	return []models.Holding{
		holding("RELIANCE", 50, "2450", "2680.5", "Energy", "Large"),
		holding("INFY", 100, "1800", "2010.75", "Technology", "Large"),
		holding("ASIANPAINT", 40, "3100", "2890.75", "Consumer Discretionary", "Large"),
		holding("WIPRO", 150, "450", "485.6", "Technology", "Mid"),
		holding("SMALLCO", 10, "100", "95", "Healthcare", "Small"),
	}
}

func point(date string, pv, nifty, gold, pr, nr, gr string) models.PerformancePoint {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.PerformancePoint{
		Date:            d,
		PortfolioValue:  dec(pv),
		Nifty50:         dec(nifty),
		Gold:            dec(gold),
		PortfolioReturn: dec(pr),
		Nifty50Return:   dec(nr),
		GoldReturn:      dec(gr),
	}
}

// monthlySeries mirrors a year of monthly observations
func monthlySeries() []models.PerformancePoint {
	return []models.PerformancePoint{
		point("2024-01-01", "1500000", "21000", "62000", "0", "0", "0"),
		point("2024-02-01", "1520000", "21300", "61800", "1.33", "1.43", "-0.32"),
		point("2024-03-01", "1540000", "22100", "64500", "2.67", "5.24", "4.03"),
		point("2024-04-01", "1580000", "22800", "66200", "5.33", "8.57", "6.77"),
		point("2024-05-01", "1620000", "23200", "68000", "8.0", "10.48", "9.68"),
		point("2024-06-01", "1650000", "23500", "68500", "10.0", "11.90", "10.48"),
		point("2024-07-01", "1680000", "24100", "69800", "12.0", "14.76", "12.58"),
		point("2024-08-01", "1720000", "24800", "70200", "14.67", "18.10", "13.23"),
		point("2024-09-01", "1750000", "25200", "71500", "16.67", "20.0", "15.32"),
		point("2024-10-01", "1780000", "25600", "72800", "18.67", "21.90", "17.42"),
		point("2024-11-01", "1820000", "26100", "74000", "21.33", "24.29", "19.35"),
		point("2024-12-01", "1850000", "26500", "75200", "23.33", "26.19", "21.29"),
	}
}
