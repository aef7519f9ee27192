package analytics

import (
	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// ComputePortfolioSummary totals value, invested capital and gain/loss over
// all holdings. Totals are accumulated at full precision and rounded once.
// Diversification score and risk level come from facts when present.
//
// With no holdings every total is zero and TopGainer/TopLoser are nil.
func ComputePortfolioSummary(holdings []models.Holding, facts *models.SummaryFacts) models.PortfolioSummary {
	totalValue := decimal.Zero
	totalInvested := decimal.Zero
	for _, h := range holdings {
		totalValue = totalValue.Add(h.MarketValue())
		totalInvested = totalInvested.Add(h.CostBasis())
	}
	totalGainLoss := totalValue.Sub(totalInvested)

	summary := models.PortfolioSummary{
		TotalValue:           Round(totalValue),
		TotalInvested:        Round(totalInvested),
		TotalGainLoss:        Round(totalGainLoss),
		TotalGainLossPercent: Round(percentOf(totalGainLoss, totalInvested)),
		HoldingCount:         len(holdings),
		DiversificationScore: decimal.Zero,
		TotalDividends:       decimal.Zero,
	}

	if facts != nil {
		summary.DiversificationScore = Round(facts.DiversificationScore)
		summary.RiskLevel = facts.RiskLevel
	}

	if top, err := TopPerformers(holdings); err == nil {
		summary.TopGainer = &top.Best
		summary.TopLoser = &top.Worst
	}

	return summary
}
