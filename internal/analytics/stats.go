package analytics

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-analytics/internal/models"
	"gonum.org/v1/gonum/stat"
)

// ComputeSeriesStats summarises each tracked series: the mean and sample
// standard deviation of its position-over-position returns (percent) and
// the maximum peak-to-trough drawdown of its values (percent). Like the
// period returns, consecutive points are treated as consecutive months.
func ComputeSeriesStats(points []models.PerformancePoint) map[models.Series]models.SeriesStats {
	out := make(map[models.Series]models.SeriesStats, len(models.AllSeries))
	for _, s := range models.AllSeries {
		values := make([]float64, 0, len(points))
		for _, p := range points {
			values = append(values, p.Value(s).InexactFloat64())
		}
		out[s] = seriesStats(values)
	}
	return out
}

func seriesStats(values []float64) models.SeriesStats {
	st := models.SeriesStats{
		MeanMonthlyReturn: decimal.Zero,
		Volatility:        decimal.Zero,
		MaxDrawdown:       decimal.Zero,
		Observations:      len(values),
	}
	if len(values) < 2 {
		return st
	}

	returns := stepReturns(values)
	st.MeanMonthlyReturn = fromFloat(stat.Mean(returns, nil))
	if len(returns) >= 2 {
		st.Volatility = fromFloat(stat.StdDev(returns, nil))
	}
	st.MaxDrawdown = fromFloat(maxDrawdown(values))
	return st
}

// stepReturns converts values to percentage changes between neighbours.
// A change from zero is reported as zero.
func stepReturns(values []float64) []float64 {
	returns := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] != 0 {
			returns[i-1] = (values[i] - values[i-1]) / values[i-1] * 100
		}
	}
	return returns
}

// maxDrawdown returns the largest fall from a running peak, as a positive
// percentage of that peak.
func maxDrawdown(values []float64) float64 {
	worst := 0.0
	peak := values[0]
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak * 100; dd > worst {
				worst = dd
			}
		}
	}
	return worst
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return Round(decimal.NewFromFloat(f))
}
