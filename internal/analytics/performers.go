package analytics

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// ErrNoHoldings is returned when a selection over holdings is requested for
// an empty portfolio.
var ErrNoHoldings = errors.New("no holdings: top performers are undefined")

// TopPerformerSet holds the holdings selected by each performer metric
type TopPerformerSet struct {
	Best    models.Performer
	Worst   models.Performer
	Highest models.Performer
	Lowest  models.Performer
}

// ByMetric returns the performer for a metric label
func (s *TopPerformerSet) ByMetric(metric string) (models.Performer, bool) {
	switch metric {
	case models.MetricBestPerformer:
		return s.Best, true
	case models.MetricWorstPerformer:
		return s.Worst, true
	case models.MetricHighestValue:
		return s.Highest, true
	case models.MetricLowestValue:
		return s.Lowest, true
	}
	return models.Performer{}, false
}

type scoredHolding struct {
	holding models.Holding
	percent decimal.Decimal
	value   decimal.Decimal
}

func scoreHoldings(holdings []models.Holding) []scoredHolding {
	scored := make([]scoredHolding, 0, len(holdings))
	for _, h := range holdings {
		value := h.MarketValue()
		invested := h.CostBasis()
		scored = append(scored, scoredHolding{
			holding: h,
			percent: percentOf(value.Sub(invested), invested),
			value:   value,
		})
	}
	return scored
}

// TopPerformers selects the best and worst holdings by gain/loss percent and
// the highest and lowest by market value. Comparisons use full precision and
// ties go to the alphabetically first symbol.
func TopPerformers(holdings []models.Holding) (*TopPerformerSet, error) {
	if len(holdings) == 0 {
		return nil, ErrNoHoldings
	}

	scored := scoreHoldings(holdings)
	best, worst, highest, lowest := scored[0], scored[0], scored[0], scored[0]
	for _, s := range scored[1:] {
		if beats(s.percent, best.percent, s, best) {
			best = s
		}
		if beats(worst.percent, s.percent, s, worst) {
			worst = s
		}
		if beats(s.value, highest.value, s, highest) {
			highest = s
		}
		if beats(lowest.value, s.value, s, lowest) {
			lowest = s
		}
	}

	return &TopPerformerSet{
		Best:    performer(models.MetricBestPerformer, best, best.percent),
		Worst:   performer(models.MetricWorstPerformer, worst, worst.percent),
		Highest: performer(models.MetricHighestValue, highest, highest.value),
		Lowest:  performer(models.MetricLowestValue, lowest, lowest.value),
	}, nil
}

// beats reports whether candidate should replace current given that a > b
// means the candidate is preferred; equal scores fall back to symbol order.
func beats(a, b decimal.Decimal, candidate, current scoredHolding) bool {
	if a.Equal(b) {
		return candidate.holding.Symbol < current.holding.Symbol
	}
	return a.GreaterThan(b)
}

func performer(metric string, s scoredHolding, value decimal.Decimal) models.Performer {
	return models.Performer{
		Metric: metric,
		Symbol: s.holding.Symbol,
		Name:   s.holding.Name,
		Value:  Round(value),
	}
}

// RankHoldings returns holdings ordered by gain/loss percent: gainers from
// the highest percent down, losers from the lowest up. Ties are ordered by
// symbol. A positive limit truncates both lists.
func RankHoldings(holdings []models.Holding, limit int) (gainers, losers []models.Performer) {
	scored := scoreHoldings(holdings)

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].percent.Equal(scored[j].percent) {
			return scored[i].holding.Symbol < scored[j].holding.Symbol
		}
		return scored[i].percent.GreaterThan(scored[j].percent)
	})
	gainers = make([]models.Performer, 0, len(scored))
	for _, s := range scored {
		gainers = append(gainers, performer(models.MetricBestPerformer, s, s.percent))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].percent.Equal(scored[j].percent) {
			return scored[i].holding.Symbol < scored[j].holding.Symbol
		}
		return scored[i].percent.LessThan(scored[j].percent)
	})
	losers = make([]models.Performer, 0, len(scored))
	for _, s := range scored {
		losers = append(losers, performer(models.MetricWorstPerformer, s, s.percent))
	}

	if limit > 0 && limit < len(scored) {
		gainers = gainers[:limit]
		losers = losers[:limit]
	}
	return gainers, losers
}
