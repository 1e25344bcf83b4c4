package participant

import (
	"errors"

	"ev-market/internal/model"
)

// TimeOfUseGrid is the backstop supplier: an unconstrained source
// offering unbounded quantity at a fixed time-of-use price each hour.
type TimeOfUseGrid struct {
	prices [model.HoursPerDay]float64
}

func NewTimeOfUseGrid(prices [model.HoursPerDay]float64) *TimeOfUseGrid {
	return &TimeOfUseGrid{prices: prices}
}

// ReferencePrice is the grid's standing offer for the hour. The auction
// uses it as the reference signal passed to every other participant.
func (g *TimeOfUseGrid) ReferencePrice(hour int) float64 {
	return g.prices[hour%model.HoursPerDay]
}

func (g *TimeOfUseGrid) MakeBid(hour int, _ float64) (*model.Bid, error) {
	return &model.Bid{
		PricePerKWh: g.prices[hour%model.HoursPerDay],
		Unbounded:   true,
		Supply:      true,
		Owner:       g,
	}, nil
}

func (g *TimeOfUseGrid) OnFill(int, float64, float64) {}

func (g *TimeOfUseGrid) Finalize(int, *float64) model.Stats {
	return model.Stats{}
}

// TariffFromSlice converts a 24-value price slice into the fixed-size
// schedule the grid holds, rejecting any other length.
func TariffFromSlice(prices []float64) ([model.HoursPerDay]float64, error) {
	var out [model.HoursPerDay]float64
	if len(prices) != model.HoursPerDay {
		return out, errors.New("tariff must contain exactly 24 hourly prices")
	}
	copy(out[:], prices)
	return out, nil
}
