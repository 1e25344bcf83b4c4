package market

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ev-market/internal/model"
)

func TestSortBooks_DemandDescendingSupplyAscending(t *testing.T) {
	demand := []*model.Bid{
		{PricePerKWh: 5, AmountKWh: 1},
		{PricePerKWh: 9, AmountKWh: 1},
		{PricePerKWh: 7, AmountKWh: 1},
	}
	supply := []*model.Bid{
		{PricePerKWh: 8, AmountKWh: 1, Supply: true},
		{PricePerKWh: 2, AmountKWh: 1, Supply: true},
		{PricePerKWh: 4, AmountKWh: 1, Supply: true},
	}

	sortBooks(demand, supply)

	assert.Equal(t, []float64{9, 7, 5}, bookPrices(demand))
	assert.Equal(t, []float64{2, 4, 8}, bookPrices(supply))
}

func TestSortBooks_TieBreaks(t *testing.T) {
	unbounded := &model.Bid{PricePerKWh: 5, Unbounded: true, Supply: true}
	small := &model.Bid{PricePerKWh: 5, AmountKWh: 2, Supply: true}
	large := &model.Bid{PricePerKWh: 5, AmountKWh: 6, Supply: true}

	supply := []*model.Bid{unbounded, small, large}
	sortBooks(nil, supply)

	// Bounded offers come before the unbounded one at the same price,
	// larger quantity first.
	assert.Equal(t, []*model.Bid{large, small, unbounded}, supply)
}

func bookPrices(book []*model.Bid) []float64 {
	prices := make([]float64, len(book))
	for i, b := range book {
		prices[i] = b.PricePerKWh
	}
	return prices
}
