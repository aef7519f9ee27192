package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Series identifies one of the tracked value series
type Series string

const (
	SeriesPortfolio Series = "portfolio"
	SeriesNifty50   Series = "nifty50"
	SeriesGold      Series = "gold"
)

// AllSeries lists the tracked series in presentation order
var AllSeries = []Series{SeriesPortfolio, SeriesNifty50, SeriesGold}

// PerformancePoint is a single dated observation of every series together
// with each series' cumulative return (percent) relative to the first point.
type PerformancePoint struct {
	Date            time.Time       `json:"date"`
	PortfolioValue  decimal.Decimal `json:"portfolio_value"`
	Nifty50         decimal.Decimal `json:"nifty_50"`
	Gold            decimal.Decimal `json:"gold"`
	PortfolioReturn decimal.Decimal `json:"portfolio_return"`
	Nifty50Return   decimal.Decimal `json:"nifty_50_return"`
	GoldReturn      decimal.Decimal `json:"gold_return"`
}

// Value returns the observed value of the given series
func (p PerformancePoint) Value(s Series) decimal.Decimal {
	switch s {
	case SeriesNifty50:
		return p.Nifty50
	case SeriesGold:
		return p.Gold
	default:
		return p.PortfolioValue
	}
}

// Return returns the cumulative return of the given series
func (p PerformancePoint) Return(s Series) decimal.Decimal {
	switch s {
	case SeriesNifty50:
		return p.Nifty50Return
	case SeriesGold:
		return p.GoldReturn
	default:
		return p.PortfolioReturn
	}
}

// PeriodReturns holds lookback returns for one series
type PeriodReturns struct {
	OneMonth    decimal.Decimal `json:"1month"`
	ThreeMonths decimal.Decimal `json:"3months"`
	OneYear     decimal.Decimal `json:"1year"`
}

// SeriesStats summarises the month-over-month behaviour of one series
type SeriesStats struct {
	MeanMonthlyReturn decimal.Decimal `json:"mean_monthly_return"`
	Volatility        decimal.Decimal `json:"volatility"`
	MaxDrawdown       decimal.Decimal `json:"max_drawdown"`
	Observations      int             `json:"observations"`
}
