package participant

import (
	"fmt"
	"math"

	"ev-market/internal/model"
	"ev-market/internal/planner"
)

// OptimizedEV delegates to a day-ahead planner once per simulated day
// and converts the planned net charge rate into hourly bids. In place
// of true forecasting it keeps a rolling per-hour-of-day price
// estimate, folding each realized clearing price into the estimate the
// next day's solve will see.
type OptimizedEV struct {
	ev
	planner  planner.Planner
	estimate [model.HoursPerDay]float64
	plan     planner.Plan

	lastAction    model.Action
	lastBidSupply bool
}

func NewOptimizedEV(spec model.StoreSpec, profile model.ReserveProfile, pl planner.Planner, priceEstimate [model.HoursPerDay]float64) (*OptimizedEV, error) {
	base, err := newEV(spec, profile)
	if err != nil {
		return nil, err
	}
	if pl == nil {
		return nil, fmt.Errorf("optimized ev: planner is required")
	}
	return &OptimizedEV{ev: base, planner: pl, estimate: priceEstimate}, nil
}

func (o *OptimizedEV) MakeBid(hour int, referencePrice float64) (*model.Bid, error) {
	if hour%model.HoursPerDay == 0 {
		if err := o.replan(); err != nil {
			// Fatal for the day: running on a stale plan is worse than
			// stopping, per the planner contract.
			return nil, fmt.Errorf("day-ahead plan: %w", err)
		}
	}

	spec := o.store.Spec()
	minCharge := o.profile.MinimumCharge(hour, o.store.CurrentEnergy())
	planned := o.plan[hour%model.HoursPerDay]

	switch {
	case planned > 0:
		// The plan wants to charge; pay up to the reference so the bid
		// always clears against the grid.
		o.lastAction = model.ActionVoluntaryCharge
		o.lastBidSupply = false
		return &model.Bid{
			PricePerKWh: referencePrice,
			AmountKWh:   math.Min(planned, math.Min(spec.ChargeRateMaxKW, o.store.LeftToCharge(nil))),
			Owner:       o,
		}, nil
	case minCharge > 0:
		// The plan is idle but the lookahead still demands a charge.
		o.lastAction = model.ActionRequiredCharge
		o.lastBidSupply = false
		return &model.Bid{
			PricePerKWh: referencePrice,
			AmountKWh:   math.Min(spec.ChargeRateMaxKW, minCharge),
			Owner:       o,
		}, nil
	case planned < 0:
		// Discharge at price 0: sell at whatever the market clears.
		o.lastAction = model.ActionDischarge
		o.lastBidSupply = true
		available := o.store.CurrentEnergy() - o.profile.MDRAt(hour+1)
		return &model.Bid{
			PricePerKWh: 0,
			AmountKWh:   math.Max(0, math.Min(-planned, available)),
			Supply:      true,
			Owner:       o,
		}, nil
	}

	o.lastAction = model.ActionNone
	return nil, nil
}

func (o *OptimizedEV) replan() error {
	spec := o.store.Spec()
	plan, err := o.planner.Plan(planner.Request{
		CurrentEnergyKWh:   o.store.CurrentEnergy(),
		MinEnergyKWh:       o.store.MinOperatingCapacity(nil),
		MaxEnergyKWh:       o.store.MaxOperatingCapacity(nil),
		ChargeRateMaxKW:    spec.ChargeRateMaxKW,
		DischargeRateMaxKW: spec.DischargeRateMaxKW,
		MDR:                o.profile.MDR,
		Driving:            o.profile.Driving,
		PriceEstimate:      o.estimate,
	})
	if err != nil {
		return err
	}
	o.plan = plan
	return nil
}

func (o *OptimizedEV) OnFill(_ int, _ float64, quantity float64) {
	if o.lastBidSupply {
		o.store.Transfer(model.Discharge, quantity, nil)
	} else {
		o.store.Transfer(model.Charge, quantity, nil)
	}
}

func (o *OptimizedEV) Finalize(hour int, clearingPrice *float64) model.Stats {
	h := hour % model.HoursPerDay
	oldEstimate := o.estimate[h]
	if clearingPrice != nil {
		// Running average of the previous estimate and the realized
		// price; this is the feedback the next solve uses.
		o.estimate[h] = (o.estimate[h] + *clearingPrice) / 2
	}
	o.applyDriving(hour)

	stats := o.baseStats(hour)
	stats["history"] = oldEstimate
	stats["schedule"] = o.plan[h]
	stats["last_action"] = o.lastAction
	return stats
}

// PriceEstimate exposes the rolling estimate for one hour of day.
func (o *OptimizedEV) PriceEstimate(hour int) float64 {
	return o.estimate[hour%model.HoursPerDay]
}
