package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-analytics/internal/models"
)

// Dimension is the categorical field holdings are grouped by
type Dimension string

const (
	BySector    Dimension = "sector"
	ByMarketCap Dimension = "marketCap"
)

func (d Dimension) key(h models.Holding) string {
	if d == ByMarketCap {
		return h.MarketCap
	}
	return h.Sector
}

type allocationGroup struct {
	name  string
	value decimal.Decimal
}

// ComputeAllocation partitions portfolio value by the given dimension.
//
// Buckets are sorted by value, largest first; equal values keep the order in
// which their bucket was first seen. Percentages are apportioned to two
// places so that they sum to exactly 100 (see apportion). When the portfolio
// is worth nothing every percentage is zero.
func ComputeAllocation(holdings []models.Holding, dim Dimension) []models.AllocationBucket {
	index := make(map[string]int)
	groups := make([]allocationGroup, 0)
	total := decimal.Zero

	for _, h := range holdings {
		value := h.MarketValue()
		total = total.Add(value)

		key := dim.key(h)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, allocationGroup{name: key, value: decimal.Zero})
		}
		groups[i].value = groups[i].value.Add(value)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].value.GreaterThan(groups[j].value)
	})

	shares := make([]decimal.Decimal, 0, len(groups))
	for _, g := range groups {
		shares = append(shares, percentOf(g.value, total))
	}
	percentages := apportion(shares)

	buckets := make([]models.AllocationBucket, 0, len(groups))
	for i, g := range groups {
		buckets = append(buckets, models.AllocationBucket{
			Name:       g.name,
			Value:      Round(g.value),
			Percentage: percentages[i],
		})
	}
	return buckets
}

// apportion reduces full-precision percentages to two places with the
// largest remainder method: every share is rounded down, then the hundredths
// still missing from the exact total go one each to the shares that lost the
// most. Equal remainders favour the earlier share. Each result is within
// 0.01 of its exact share and the results sum to the rounded exact total.
func apportion(shares []decimal.Decimal) []decimal.Decimal {
	unit := decimal.New(1, -Precision)
	out := make([]decimal.Decimal, len(shares))
	exact := decimal.Zero
	floored := decimal.Zero

	for i, s := range shares {
		out[i] = s.RoundFloor(Precision)
		exact = exact.Add(s)
		floored = floored.Add(out[i])
	}

	missing := int(Round(exact).Sub(floored).Div(unit).IntPart())
	if missing <= 0 {
		return out
	}

	order := make([]int, len(shares))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra := shares[order[a]].Sub(out[order[a]])
		rb := shares[order[b]].Sub(out[order[b]])
		return ra.GreaterThan(rb)
	})

	for k := 0; k < missing && k < len(order); k++ {
		i := order[k]
		out[i] = out[i].Add(unit)
	}
	return out
}
