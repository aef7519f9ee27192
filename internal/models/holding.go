package models

import "github.com/shopspring/decimal"

// Holding represents a single position in one security
type Holding struct {
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Quantity     int64           `json:"quantity"`
	AvgPrice     decimal.Decimal `json:"avg_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Sector       string          `json:"sector"`
	MarketCap    string          `json:"market_cap"`
	Exchange     string          `json:"exchange,omitempty"`
}

// MarketValue returns quantity x current price at full precision
func (h Holding) MarketValue() decimal.Decimal {
	return h.CurrentPrice.Mul(decimal.NewFromInt(h.Quantity))
}

// CostBasis returns quantity x average acquisition price at full precision
func (h Holding) CostBasis() decimal.Decimal {
	return h.AvgPrice.Mul(decimal.NewFromInt(h.Quantity))
}

// HoldingMetrics is a holding enriched with its derived valuation figures.
// Value, GainLoss and GainLossPercent are rounded to two decimal places.
type HoldingMetrics struct {
	Holding
	Value           decimal.Decimal `json:"value"`
	GainLoss        decimal.Decimal `json:"gain_loss"`
	GainLossPercent decimal.Decimal `json:"gain_loss_percent"`
}

// AllocationBucket is one categorical slice of portfolio value
type AllocationBucket struct {
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"`
}
