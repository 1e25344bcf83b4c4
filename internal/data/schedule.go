package data

import "ev-market/internal/model"

// HomeScheduleFromPrices shapes a household consumption schedule after
// a price curve, scaled so the hourly mean equals meanKWh. Consumption
// tracking price reflects the usual correlation between demand peaks
// and tariff peaks.
func HomeScheduleFromPrices(prices [model.HoursPerDay]float64, meanKWh float64) [model.HoursPerDay]float64 {
	sum := 0.0
	for _, p := range prices {
		sum += p
	}
	var out [model.HoursPerDay]float64
	if sum == 0 {
		return out
	}
	mean := sum / float64(model.HoursPerDay)
	for i, p := range prices {
		out[i] = p * meanKWh / mean
	}
	return out
}
