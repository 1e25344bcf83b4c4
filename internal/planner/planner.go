// Package planner is the day-ahead scheduling boundary consumed by the
// optimization-based EV policy. A Planner turns the vehicle's state,
// reserve targets and a rolling price estimate into a planned net
// charge rate for every hour of the coming day.
package planner

import (
	"errors"

	"ev-market/internal/model"
)

// Request carries everything a solve needs. Schedules are fixed-size
// arrays passed by value; a planner cannot mutate caller state.
type Request struct {
	CurrentEnergyKWh float64

	// Operating energy bounds in kWh (capacity intersected with the
	// store's operating range).
	MinEnergyKWh float64
	MaxEnergyKWh float64

	ChargeRateMaxKW    float64
	DischargeRateMaxKW float64

	MDR           [model.HoursPerDay]float64
	Driving       [model.HoursPerDay]float64
	PriceEstimate [model.HoursPerDay]float64
}

// Plan is a planned net charge rate per hour: positive charges,
// negative discharges, zero idles. Driving hours are always zero.
type Plan [model.HoursPerDay]float64

// Planner solves the day-ahead schedule, minimizing total
// price-weighted cost subject to the reserve targets, energy bounds,
// rate limits and zero net charge during driving hours.
//
// An all-zero plan is a valid answer ("nothing profitable to do");
// failure to satisfy the constraints is ErrInfeasible. Any other error
// is a solver fault. Both are fatal for the day: the caller must stop
// rather than run on a stale or undefined plan.
type Planner interface {
	Plan(req Request) (Plan, error)
}

// ErrInfeasible reports that no schedule can satisfy the reserve
// targets within the energy bounds and rate limits.
var ErrInfeasible = errors.New("planner: reserve targets unreachable within energy and rate limits")
