package planner

import (
	"fmt"
	"math"

	"ev-market/internal/model"
)

// DPPlanner solves the day-ahead schedule by dynamic programming on a
// discretized energy grid. It stands in for an external LP solver
// behind the same contract: the objective is the total price-weighted
// cost of the planned transfers, the constraints are the reserve
// targets, the operating energy bounds, the rate limits, and zero net
// charge during driving hours.
type DPPlanner struct {
	// EnergySteps controls energy discretization between the operating
	// bounds. Higher = more accurate, slower.
	EnergySteps int

	// RateSteps controls action discretization per direction between
	// zero and the rate limit.
	RateSteps int
}

func NewDPPlanner(energySteps, rateSteps int) *DPPlanner {
	if energySteps <= 0 {
		energySteps = 200
	}
	if rateSteps <= 0 {
		rateSteps = 10
	}
	return &DPPlanner{EnergySteps: energySteps, RateSteps: rateSteps}
}

func (p *DPPlanner) Plan(req Request) (Plan, error) {
	var plan Plan

	if req.MaxEnergyKWh <= req.MinEnergyKWh {
		return plan, fmt.Errorf("planner: invalid energy bounds [%v, %v]", req.MinEnergyKWh, req.MaxEnergyKWh)
	}
	if req.ChargeRateMaxKW <= 0 || req.DischargeRateMaxKW <= 0 {
		return plan, fmt.Errorf("planner: rate limits must be > 0")
	}

	steps := p.EnergySteps
	if steps < 2 {
		steps = 2
	}
	nStates := steps + 1

	toIdx := func(e float64) int {
		if e <= req.MinEnergyKWh {
			return 0
		}
		if e >= req.MaxEnergyKWh {
			return steps
		}
		f := (e - req.MinEnergyKWh) / (req.MaxEnergyKWh - req.MinEnergyKWh)
		return int(math.Round(f * float64(steps)))
	}
	toEnergy := func(idx int) float64 {
		if idx <= 0 {
			return req.MinEnergyKWh
		}
		if idx >= steps {
			return req.MaxEnergyKWh
		}
		return req.MinEnergyKWh + float64(idx)/float64(steps)*(req.MaxEnergyKWh-req.MinEnergyKWh)
	}

	// Candidate rates per trading hour: [-dischargeMax, +chargeMax] in
	// RateSteps increments per direction, idle included.
	rates := make([]float64, 0, 2*p.RateSteps+1)
	for k := -p.RateSteps; k <= p.RateSteps; k++ {
		if k < 0 {
			rates = append(rates, float64(k)/float64(p.RateSteps)*req.DischargeRateMaxKW)
		} else {
			rates = append(rates, float64(k)/float64(p.RateSteps)*req.ChargeRateMaxKW)
		}
	}

	const inf = math.MaxFloat64

	// value[t][s] = minimal cost from hour t onward starting at state s.
	value := make([][]float64, model.HoursPerDay+1)
	choice := make([][]int, model.HoursPerDay)
	rateChosen := make([][]float64, model.HoursPerDay)
	for t := 0; t <= model.HoursPerDay; t++ {
		value[t] = make([]float64, nStates)
	}
	for t := 0; t < model.HoursPerDay; t++ {
		choice[t] = make([]int, nStates)
		rateChosen[t] = make([]float64, nStates)
		for s := range value[t] {
			value[t][s] = inf
			choice[t][s] = -1
		}
	}

	for t := model.HoursPerDay - 1; t >= 0; t-- {
		for s := 0; s < nStates; s++ {
			e := toEnergy(s)

			if req.Driving[t] != 0 {
				// Not plugged in: no trading, the drive drains energy.
				next := math.Max(e-req.Driving[t], req.MinEnergyKWh)
				if next < req.MDR[t] {
					continue
				}
				ns := toIdx(next)
				if value[t+1][ns] >= inf {
					continue
				}
				value[t][s] = value[t+1][ns]
				choice[t][s] = ns
				rateChosen[t][s] = 0
				continue
			}

			for _, rate := range rates {
				next := e + rate
				if next < req.MinEnergyKWh || next > req.MaxEnergyKWh {
					continue
				}
				if next < req.MDR[t] {
					continue
				}
				ns := toIdx(next)
				if value[t+1][ns] >= inf {
					continue
				}
				realized := toEnergy(ns) - e
				cost := realized * req.PriceEstimate[t]
				if v := cost + value[t+1][ns]; v < value[t][s] {
					value[t][s] = v
					choice[t][s] = ns
					rateChosen[t][s] = realized
				}
			}
		}
	}

	start := toIdx(req.CurrentEnergyKWh)
	if value[0][start] >= inf {
		return plan, ErrInfeasible
	}

	cur := start
	for t := 0; t < model.HoursPerDay; t++ {
		plan[t] = rateChosen[t][cur]
		cur = choice[t][cur]
	}
	return plan, nil
}
