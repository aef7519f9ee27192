package models

import "github.com/shopspring/decimal"

// Labels used for top-performer facts and computed performers
const (
	MetricBestPerformer  = "Best Performer"
	MetricWorstPerformer = "Worst Performer"
	MetricHighestValue   = "Highest Value"
	MetricLowestValue    = "Lowest Value"
)

// SummaryFacts are portfolio-level facts supplied by the data provider.
// Only DiversificationScore and RiskLevel are reported as-is; the totals are
// kept for reconciliation against computed figures.
type SummaryFacts struct {
	TotalValue           decimal.Decimal `json:"total_portfolio"`
	TotalInvested        decimal.Decimal `json:"total_invested"`
	TotalGainLoss        decimal.Decimal `json:"total_gain_loss"`
	TotalGainLossPercent decimal.Decimal `json:"total_gain_loss_percent"`
	NumberOfHoldings     int             `json:"number_of_holdings"`
	DiversificationScore decimal.Decimal `json:"diversification"`
	RiskLevel            string          `json:"risk_level"`
}

// TopPerformerFact is a provider-supplied claim about a notable holding
type TopPerformerFact struct {
	Metric      string          `json:"metric"`
	Symbol      string          `json:"symbol"`
	Name        string          `json:"company_name"`
	Performance decimal.Decimal `json:"performance"`
}

// Performer references a holding selected by some metric
type Performer struct {
	Metric string          `json:"metric"`
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Value  decimal.Decimal `json:"value"`
}

// PortfolioSummary holds portfolio-wide totals. TopGainer and TopLoser are
// nil when the portfolio has no holdings.
type PortfolioSummary struct {
	TotalValue           decimal.Decimal `json:"total_value"`
	TotalInvested        decimal.Decimal `json:"total_invested"`
	TotalGainLoss        decimal.Decimal `json:"total_gain_loss"`
	TotalGainLossPercent decimal.Decimal `json:"total_gain_loss_percent"`
	HoldingCount         int             `json:"holding_count"`
	DiversificationScore decimal.Decimal `json:"diversification_score"`
	RiskLevel            string          `json:"risk_level"`
	TopGainer            *Performer      `json:"top_gainer,omitempty"`
	TopLoser             *Performer      `json:"top_loser,omitempty"`
	TotalDividends       decimal.Decimal `json:"total_dividends"`
}
