package analytics

import "github.com/trogers1052/portfolio-analytics/internal/models"

// ComputeHoldingMetrics enriches each holding with its value, gain/loss and
// gain/loss percent. Output order matches input order. Derived figures are
// computed from quantity and prices only, so re-running it over the embedded
// Holding of a previous result yields identical figures.
func ComputeHoldingMetrics(holdings []models.Holding) []models.HoldingMetrics {
	enriched := make([]models.HoldingMetrics, 0, len(holdings))
	for _, h := range holdings {
		enriched = append(enriched, holdingMetrics(h))
	}
	return enriched
}

func holdingMetrics(h models.Holding) models.HoldingMetrics {
	value := h.MarketValue()
	invested := h.CostBasis()
	gainLoss := value.Sub(invested)

	return models.HoldingMetrics{
		Holding:         h,
		Value:           Round(value),
		GainLoss:        Round(gainLoss),
		GainLossPercent: Round(percentOf(gainLoss, invested)),
	}
}
