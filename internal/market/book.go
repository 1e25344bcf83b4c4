package market

import (
	"sort"

	"ev-market/internal/model"
)

// Book ordering follows the standard double-auction convention: demand
// ranked by descending price (highest willingness-to-pay first), supply
// by ascending price (cheapest first). At equal price a bounded bid is
// prioritized over an unbounded one so that a bid stating exactly how
// much it needs is not crowded out, and among bounded bids the larger
// quantity comes first.

func demandLess(a, b *model.Bid) bool {
	if a.PricePerKWh != b.PricePerKWh {
		return a.PricePerKWh > b.PricePerKWh
	}
	return tieLess(a, b)
}

func supplyLess(a, b *model.Bid) bool {
	if a.PricePerKWh != b.PricePerKWh {
		return a.PricePerKWh < b.PricePerKWh
	}
	return tieLess(a, b)
}

func tieLess(a, b *model.Bid) bool {
	if a.Unbounded != b.Unbounded {
		return !a.Unbounded
	}
	if a.Unbounded {
		return false
	}
	return a.AmountKWh > b.AmountKWh
}

func sortBooks(demand, supply []*model.Bid) {
	sort.SliceStable(demand, func(i, j int) bool { return demandLess(demand[i], demand[j]) })
	sort.SliceStable(supply, func(i, j int) bool { return supplyLess(supply[i], supply[j]) })
}
