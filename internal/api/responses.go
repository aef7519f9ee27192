package api

import (
	"bytes"
	"encoding/json"

	"github.com/trogers1052/portfolio-analytics/internal/analytics"
	"github.com/trogers1052/portfolio-analytics/internal/models"
	"github.com/trogers1052/portfolio-analytics/internal/provider"
)

// Response shapes. Figures are rounded by the engine and emitted as JSON
// numbers.

// HoldingResponse is one row of GET /holdings
type HoldingResponse struct {
	Symbol          string  `json:"symbol"`
	Name            string  `json:"name"`
	Quantity        int64   `json:"quantity"`
	AvgPrice        float64 `json:"avgPrice"`
	CurrentPrice    float64 `json:"currentPrice"`
	Sector          string  `json:"sector"`
	MarketCap       string  `json:"marketCap"`
	Value           float64 `json:"value"`
	GainLoss        float64 `json:"gainLoss"`
	GainLossPercent float64 `json:"gainLossPercent"`
}

func newHoldingResponses(metrics []models.HoldingMetrics) []HoldingResponse {
	out := make([]HoldingResponse, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, HoldingResponse{
			Symbol:          m.Symbol,
			Name:            m.Name,
			Quantity:        m.Quantity,
			AvgPrice:        m.AvgPrice.InexactFloat64(),
			CurrentPrice:    m.CurrentPrice.InexactFloat64(),
			Sector:          m.Sector,
			MarketCap:       m.MarketCap,
			Value:           m.Value.InexactFloat64(),
			GainLoss:        m.GainLoss.InexactFloat64(),
			GainLossPercent: m.GainLossPercent.InexactFloat64(),
		})
	}
	return out
}

// BucketResponse is the value and share of one allocation bucket
type BucketResponse struct {
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// Allocation is a set of buckets keyed by name. It marshals as a JSON
// object whose keys keep the slice order, largest bucket first.
type Allocation []models.AllocationBucket

// MarshalJSON implements json.Marshaler
func (a Allocation) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, b := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(b.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(BucketResponse{
			Value:      b.Value.InexactFloat64(),
			Percentage: b.Percentage.InexactFloat64(),
		})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AllocationResponse is the body of GET /allocation
type AllocationResponse struct {
	BySector    Allocation `json:"bySector"`
	ByMarketCap Allocation `json:"byMarketCap"`
}

// TimelinePoint is one dated observation in GET /performance
type TimelinePoint struct {
	Date      string  `json:"date"`
	Portfolio float64 `json:"portfolio"`
	Nifty50   float64 `json:"nifty50"`
	Gold      float64 `json:"gold"`
}

// ReturnsResponse holds the lookback returns of one series
type ReturnsResponse struct {
	OneMonth    float64 `json:"1month"`
	ThreeMonths float64 `json:"3months"`
	OneYear     float64 `json:"1year"`
}

// PerformanceResponse is the body of GET /performance
type PerformanceResponse struct {
	Timeline []TimelinePoint           `json:"timeline"`
	Returns  map[string]ReturnsResponse `json:"returns"`
}

func newPerformanceResponse(res analytics.PerformanceResult) PerformanceResponse {
	timeline := make([]TimelinePoint, 0, len(res.Timeline))
	for _, p := range res.Timeline {
		timeline = append(timeline, TimelinePoint{
			Date:      p.Date.Format(provider.DateLayout),
			Portfolio: p.PortfolioValue.InexactFloat64(),
			Nifty50:   p.Nifty50.InexactFloat64(),
			Gold:      p.Gold.InexactFloat64(),
		})
	}

	returns := make(map[string]ReturnsResponse, len(res.Returns))
	for s, r := range res.Returns {
		returns[string(s)] = ReturnsResponse{
			OneMonth:    r.OneMonth.InexactFloat64(),
			ThreeMonths: r.ThreeMonths.InexactFloat64(),
			OneYear:     r.OneYear.InexactFloat64(),
		}
	}

	return PerformanceResponse{Timeline: timeline, Returns: returns}
}

// PerformerResponse identifies a holding selected by a metric
type PerformerResponse struct {
	Type   string  `json:"type"`
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
}

func newPerformerResponse(p models.Performer) PerformerResponse {
	return PerformerResponse{
		Type:   p.Metric,
		Symbol: p.Symbol,
		Name:   p.Name,
		Value:  p.Value.InexactFloat64(),
	}
}

func newPerformerResponses(ps []models.Performer) []PerformerResponse {
	out := make([]PerformerResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, newPerformerResponse(p))
	}
	return out
}

// Values of SummaryResponse.TopPerformersStatus
const (
	topPerformersOK     = "ok"
	topPerformersNoData = "no data"
)

// SummaryResponse is the body of GET /summary. TopGainer and TopLoser are
// null for an empty portfolio.
type SummaryResponse struct {
	TotalValue           float64            `json:"totalValue"`
	TotalInvested        float64            `json:"totalInvested"`
	TotalGainLoss        float64            `json:"totalGainLoss"`
	TotalGainLossPercent float64            `json:"totalGainLossPercent"`
	NumberOfHoldings     int                `json:"numberOfHoldings"`
	TopGainer            *PerformerResponse `json:"topGainer"`
	TopLoser             *PerformerResponse `json:"topLoser"`
	DiversificationScore float64            `json:"diversificationScore"`
	RiskLevel            string             `json:"riskLevel"`
	TotalDividends       float64            `json:"totalDividends"`
	TopPerformersStatus  string             `json:"topPerformersStatus"`
}

func newSummaryResponse(s models.PortfolioSummary) SummaryResponse {
	resp := SummaryResponse{
		TotalValue:           s.TotalValue.InexactFloat64(),
		TotalInvested:        s.TotalInvested.InexactFloat64(),
		TotalGainLoss:        s.TotalGainLoss.InexactFloat64(),
		TotalGainLossPercent: s.TotalGainLossPercent.InexactFloat64(),
		NumberOfHoldings:     s.HoldingCount,
		DiversificationScore: s.DiversificationScore.InexactFloat64(),
		RiskLevel:            s.RiskLevel,
		TotalDividends:       s.TotalDividends.InexactFloat64(),
		TopPerformersStatus:  topPerformersNoData,
	}
	if s.TopGainer != nil && s.TopLoser != nil {
		gainer := newPerformerResponse(*s.TopGainer)
		loser := newPerformerResponse(*s.TopLoser)
		resp.TopGainer = &gainer
		resp.TopLoser = &loser
		resp.TopPerformersStatus = topPerformersOK
	}
	return resp
}

// TopPerformersResponse is the body of GET /top-performers
type TopPerformersResponse struct {
	Gainers []PerformerResponse `json:"gainers"`
	Losers  []PerformerResponse `json:"losers"`
}

// SeriesStatsResponse summarises one series in GET /performance/stats
type SeriesStatsResponse struct {
	MeanMonthlyReturn float64 `json:"meanMonthlyReturn"`
	Volatility        float64 `json:"volatility"`
	MaxDrawdown       float64 `json:"maxDrawdown"`
	Observations      int     `json:"observations"`
}

func newStatsResponse(stats map[models.Series]models.SeriesStats) map[string]SeriesStatsResponse {
	out := make(map[string]SeriesStatsResponse, len(stats))
	for s, st := range stats {
		out[string(s)] = SeriesStatsResponse{
			MeanMonthlyReturn: st.MeanMonthlyReturn.InexactFloat64(),
			Volatility:        st.Volatility.InexactFloat64(),
			MaxDrawdown:       st.MaxDrawdown.InexactFloat64(),
			Observations:      st.Observations,
		}
	}
	return out
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}
