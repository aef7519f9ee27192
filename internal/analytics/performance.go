package analytics

import (
	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// Period returns look back a fixed number of positions in the series, not a
// calendar interval. The series is assumed to be monthly and gapless: one
// position back is treated as one month back and dates are never consulted.
// A series with missing months therefore reports returns over a longer span
// than the label suggests.
const (
	oneMonthLookback    = 1
	threeMonthsLookback = 3
)

// PerformanceResult is the rounded timeline plus per-series period returns
type PerformanceResult struct {
	Timeline []models.PerformancePoint
	Returns  map[models.Series]models.PeriodReturns
}

// ComputePerformanceSeries rounds every point and derives period returns for
// each tracked series from the cumulative returns at full precision.
func ComputePerformanceSeries(points []models.PerformancePoint) PerformanceResult {
	timeline := make([]models.PerformancePoint, 0, len(points))
	for _, p := range points {
		timeline = append(timeline, roundPoint(p))
	}

	returns := make(map[models.Series]models.PeriodReturns, len(models.AllSeries))
	for _, s := range models.AllSeries {
		returns[s] = periodReturns(points, s)
	}

	return PerformanceResult{Timeline: timeline, Returns: returns}
}

func periodReturns(points []models.PerformancePoint, s models.Series) models.PeriodReturns {
	r := models.PeriodReturns{
		OneMonth:    lookback(points, s, oneMonthLookback),
		ThreeMonths: lookback(points, s, threeMonthsLookback),
		OneYear:     decimal.Zero,
	}
	if n := len(points); n > 0 {
		// Cumulative since the first point
		r.OneYear = Round(points[n-1].Return(s))
	}
	return r
}

// lookback returns latest.return - points[n-1-offset].return, or zero when
// the series is too short to look that far back.
func lookback(points []models.PerformancePoint, s models.Series, offset int) decimal.Decimal {
	n := len(points)
	if n < offset+1 {
		return decimal.Zero
	}
	latest := points[n-1].Return(s)
	earlier := points[n-1-offset].Return(s)
	return Round(latest.Sub(earlier))
}

func roundPoint(p models.PerformancePoint) models.PerformancePoint {
	return models.PerformancePoint{
		Date:            p.Date,
		PortfolioValue:  Round(p.PortfolioValue),
		Nifty50:         Round(p.Nifty50),
		Gold:            Round(p.Gold),
		PortfolioReturn: Round(p.PortfolioReturn),
		Nifty50Return:   Round(p.Nifty50Return),
		GoldReturn:      Round(p.GoldReturn),
	}
}
