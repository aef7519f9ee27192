package analytics

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-analytics/internal/models"
)

const noData = "no data"

// Divergence records a provider-supplied fact that disagrees with the value
// computed from holdings.
type Divergence struct {
	Metric   string
	Field    string
	Supplied string
	Computed string
}

func (d Divergence) String() string {
	return fmt.Sprintf("%s %s: supplied %s, computed %s", d.Metric, d.Field, d.Supplied, d.Computed)
}

// ReconcileTopPerformers compares supplied top-performer facts against the
// computed set. A nil set means there were no holdings to compute from.
func ReconcileTopPerformers(set *TopPerformerSet, facts []models.TopPerformerFact) []Divergence {
	var out []Divergence
	for _, f := range facts {
		if set == nil {
			out = append(out, Divergence{Metric: f.Metric, Field: "symbol", Supplied: f.Symbol, Computed: noData})
			continue
		}

		computed, ok := set.ByMetric(f.Metric)
		if !ok {
			out = append(out, Divergence{Metric: f.Metric, Field: "metric", Supplied: f.Metric, Computed: "unrecognised"})
			continue
		}
		if computed.Symbol != f.Symbol {
			out = append(out, Divergence{Metric: f.Metric, Field: "symbol", Supplied: f.Symbol, Computed: computed.Symbol})
			continue
		}
		if supplied := Round(f.Performance); !supplied.Equal(computed.Value) {
			out = append(out, Divergence{
				Metric:   f.Metric,
				Field:    "value",
				Supplied: supplied.StringFixed(Precision),
				Computed: computed.Value.StringFixed(Precision),
			})
		}
	}
	return out
}

// ReconcileSummary compares the provider's own portfolio totals against the
// computed summary.
func ReconcileSummary(summary models.PortfolioSummary, facts *models.SummaryFacts) []Divergence {
	if facts == nil {
		return nil
	}

	var out []Divergence
	check := func(field string, supplied, computed decimal.Decimal) {
		if s := Round(supplied); !s.Equal(computed) {
			out = append(out, Divergence{
				Metric:   "Summary",
				Field:    field,
				Supplied: s.StringFixed(Precision),
				Computed: computed.StringFixed(Precision),
			})
		}
	}

	check("totalValue", facts.TotalValue, summary.TotalValue)
	check("totalInvested", facts.TotalInvested, summary.TotalInvested)
	check("totalGainLoss", facts.TotalGainLoss, summary.TotalGainLoss)
	check("totalGainLossPercent", facts.TotalGainLossPercent, summary.TotalGainLossPercent)

	if facts.NumberOfHoldings != summary.HoldingCount {
		out = append(out, Divergence{
			Metric:   "Summary",
			Field:    "numberOfHoldings",
			Supplied: strconv.Itoa(facts.NumberOfHoldings),
			Computed: strconv.Itoa(summary.HoldingCount),
		})
	}
	return out
}
