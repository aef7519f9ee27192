package provider

import (
	"fmt"

	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// validateHoldings checks required fields and symbol uniqueness. An empty
// holdings slice is a valid, empty portfolio.
func validateHoldings(holdings []models.Holding) error {
	seen := make(map[string]struct{}, len(holdings))
	for i, h := range holdings {
		switch {
		case h.Symbol == "":
			return fmt.Errorf("%w: holding %d has no symbol", ErrMalformedInput, i)
		case h.Name == "":
			return fmt.Errorf("%w: holding %s has no name", ErrMalformedInput, h.Symbol)
		case h.Sector == "":
			return fmt.Errorf("%w: holding %s has no sector", ErrMalformedInput, h.Symbol)
		case h.MarketCap == "":
			return fmt.Errorf("%w: holding %s has no market cap", ErrMalformedInput, h.Symbol)
		case h.Quantity < 0:
			return fmt.Errorf("%w: holding %s has negative quantity %d", ErrMalformedInput, h.Symbol, h.Quantity)
		case h.AvgPrice.IsNegative():
			return fmt.Errorf("%w: holding %s has negative average price %s", ErrMalformedInput, h.Symbol, h.AvgPrice)
		case h.CurrentPrice.IsNegative():
			return fmt.Errorf("%w: holding %s has negative current price %s", ErrMalformedInput, h.Symbol, h.CurrentPrice)
		}
		if _, dup := seen[h.Symbol]; dup {
			return fmt.Errorf("%w: duplicate holding symbol %s", ErrMalformedInput, h.Symbol)
		}
		seen[h.Symbol] = struct{}{}
	}
	return nil
}

// validatePerformance requires at least one point, every point dated, and
// dates strictly increasing.
func validatePerformance(points []models.PerformancePoint) error {
	if len(points) == 0 {
		return fmt.Errorf("%w: no performance history", ErrDataUnavailable)
	}
	for i, p := range points {
		if p.Date.IsZero() {
			return fmt.Errorf("%w: performance point %d has no date", ErrMalformedInput, i)
		}
		if i > 0 && !p.Date.After(points[i-1].Date) {
			return fmt.Errorf("%w: performance point %s is not after %s", ErrMalformedInput,
				p.Date.Format(DateLayout), points[i-1].Date.Format(DateLayout))
		}
	}
	return nil
}

func validateSummary(facts *models.SummaryFacts) error {
	if facts == nil {
		return fmt.Errorf("%w: no summary facts", ErrDataUnavailable)
	}
	if facts.RiskLevel == "" {
		return fmt.Errorf("%w: summary facts have no risk level", ErrMalformedInput)
	}
	return nil
}

func validateTopPerformers(facts []models.TopPerformerFact) error {
	for i, f := range facts {
		if f.Metric == "" || f.Symbol == "" {
			return fmt.Errorf("%w: top performer fact %d is missing metric or symbol", ErrMalformedInput, i)
		}
	}
	return nil
}
