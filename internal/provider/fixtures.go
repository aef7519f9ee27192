package provider

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// Fixtures serves the built-in sample portfolio
type Fixtures struct{}

// NewFixtures creates the built-in provider
func NewFixtures() *Fixtures {
	return &Fixtures{}
}

// Name implements Provider
func (f *Fixtures) Name() string {
	return "fixtures"
}

// Load implements Provider. Every call returns a fresh copy.
func (f *Fixtures) Load(ctx context.Context) (*Dataset, error) {
	return FixtureDataset(), nil
}

// FixtureDataset returns the sample portfolio: fifteen NSE equities and a
// year of monthly performance against the Nifty 50 and gold.
func FixtureDataset() *Dataset {
	return &Dataset{
		Holdings:      fixtureHoldings(),
		Performance:   fixturePerformance(),
		Summary:       fixtureSummary(),
		TopPerformers: fixtureTopPerformers(),
	}
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixtureHolding(symbol, name string, qty int64, avg, current, sector, marketCap string) models.Holding {
	return models.Holding{
		Symbol:       symbol,
		Name:         name,
		Quantity:     qty,
		AvgPrice:     d(avg),
		CurrentPrice: d(current),
		Sector:       sector,
		MarketCap:    marketCap,
		Exchange:     "NSE",
	}
}

func fixtureHoldings() []models.Holding {
	return []models.Holding{
		fixtureHolding("RELIANCE", "Reliance Industries Ltd", 50, "2450", "2680.5", "Energy", "Large"),
		fixtureHolding("INFY", "Infosys Limited", 100, "1800", "2010.75", "Technology", "Large"),
		fixtureHolding("TCS", "Tata Consultancy Services", 75, "3200", "3450.25", "Technology", "Large"),
		fixtureHolding("HDFCBANK", "HDFC Bank Limited", 80, "1650", "1580.3", "Banking", "Large"),
		fixtureHolding("ICICIBANK", "ICICI Bank Limited", 60, "1100", "1235.8", "Banking", "Large"),
		fixtureHolding("BHARTIARTL", "Bharti Airtel Limited", 120, "850", "920.45", "Telecommunications", "Large"),
		fixtureHolding("ITC", "ITC Limited", 200, "420", "465.2", "Consumer Goods", "Large"),
		fixtureHolding("BAJFINANCE", "Bajaj Finance Limited", 25, "6800", "7150.6", "Financial Services", "Large"),
		fixtureHolding("ASIANPAINT", "Asian Paints Limited", 40, "3100", "2890.75", "Consumer Discretionary", "Large"),
		fixtureHolding("MARUTI", "Maruti Suzuki India Ltd", 30, "9500", "10250.3", "Automotive", "Large"),
		fixtureHolding("WIPRO", "Wipro Limited", 150, "450", "485.6", "Technology", "Large"),
		fixtureHolding("TATAMOTORS", "Tata Motors Limited", 100, "650", "720.85", "Automotive", "Large"),
		fixtureHolding("TECHM", "Tech Mahindra Limited", 80, "1200", "1145.25", "Technology", "Large"),
		fixtureHolding("AXISBANK", "Axis Bank Limited", 90, "980", "1055.4", "Banking", "Large"),
		fixtureHolding("SUNPHARMA", "Sun Pharmaceutical Industries", 60, "1150", "1245.3", "Healthcare", "Large"),
	}
}

func fixturePoint(date, portfolio, nifty, gold, portfolioRet, niftyRet, goldRet string) models.PerformancePoint {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		panic(err)
	}
	return models.PerformancePoint{
		Date:            t,
		PortfolioValue:  d(portfolio),
		Nifty50:         d(nifty),
		Gold:            d(gold),
		PortfolioReturn: d(portfolioRet),
		Nifty50Return:   d(niftyRet),
		GoldReturn:      d(goldRet),
	}
}

func fixturePerformance() []models.PerformancePoint {
	return []models.PerformancePoint{
		fixturePoint("2024-01-01", "1500000", "21000", "62000", "0.0", "0.0", "0.0"),
		fixturePoint("2024-02-01", "1520000", "21300", "61800", "1.33", "1.43", "-0.32"),
		fixturePoint("2024-03-01", "1540000", "22100", "64500", "2.67", "5.24", "4.03"),
		fixturePoint("2024-04-01", "1580000", "22800", "66200", "5.33", "8.57", "6.77"),
		fixturePoint("2024-05-01", "1620000", "23200", "68000", "8.0", "10.48", "9.68"),
		fixturePoint("2024-06-01", "1650000", "23500", "68500", "10.0", "11.90", "10.48"),
		fixturePoint("2024-07-01", "1680000", "24100", "69800", "12.0", "14.76", "12.58"),
		fixturePoint("2024-08-01", "1720000", "24800", "70200", "14.67", "18.10", "13.23"),
		fixturePoint("2024-09-01", "1750000", "25200", "71500", "16.67", "20.0", "15.32"),
		fixturePoint("2024-10-01", "1780000", "25600", "72800", "18.67", "21.90", "17.42"),
		fixturePoint("2024-11-01", "1820000", "26100", "74000", "21.33", "24.29", "19.35"),
		fixturePoint("2024-12-01", "1850000", "26500", "75200", "23.33", "26.19", "21.29"),
	}
}

// fixtureSummary carries the totals as originally published with the sample
// data. They do not match the holdings above and are reported as
// divergences at startup.
func fixtureSummary() *models.SummaryFacts {
	return &models.SummaryFacts{
		TotalValue:           d("1935097.75"),
		TotalInvested:        d("1740000.0"),
		TotalGainLoss:        d("195097.75"),
		TotalGainLossPercent: d("11.21"),
		NumberOfHoldings:     15,
		DiversificationScore: d("8.2"),
		RiskLevel:            "Moderate",
	}
}

func fixtureTopPerformers() []models.TopPerformerFact {
	return []models.TopPerformerFact{
		{Metric: models.MetricBestPerformer, Symbol: "ICICIBANK", Name: "ICICI Bank Limited", Performance: d("12.34")},
		{Metric: models.MetricWorstPerformer, Symbol: "ASIANPAINT", Name: "Asian Paints Limited", Performance: d("-6.75")},
		{Metric: models.MetricHighestValue, Symbol: "MARUTI", Name: "Maruti Suzuki India Ltd", Performance: d("307509.0")},
		{Metric: models.MetricLowestValue, Symbol: "SUNPHARMA", Name: "Sun Pharmaceutical Industries", Performance: d("74718.0")},
	}
}
