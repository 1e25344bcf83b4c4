package participant

import (
	"math"

	"ev-market/internal/model"
)

// RuleBasedEV bids by a priority-ordered decision ladder evaluated
// against the reference price: driving beats everything, cheap power is
// bought opportunistically, reserve compliance overrides price
// sensitivity, and expensive hours are sold into.
type RuleBasedEV struct {
	ev
	maxChargePrice    float64
	minDischargePrice float64

	lastAction    model.Action
	lastBidSupply bool
}

func NewRuleBasedEV(spec model.StoreSpec, profile model.ReserveProfile, maxChargePrice, minDischargePrice float64) (*RuleBasedEV, error) {
	base, err := newEV(spec, profile)
	if err != nil {
		return nil, err
	}
	return &RuleBasedEV{
		ev:                base,
		maxChargePrice:    maxChargePrice,
		minDischargePrice: minDischargePrice,
	}, nil
}

func (r *RuleBasedEV) MakeBid(hour int, referencePrice float64) (*model.Bid, error) {
	if r.profile.DrivingAt(hour) != 0 {
		// Not plugged in, can't bid.
		r.lastAction = model.ActionDrive
		return nil, nil
	}

	spec := r.store.Spec()
	minCharge := r.profile.MinimumCharge(hour, r.store.CurrentEnergy())

	switch {
	case referencePrice < r.maxChargePrice:
		r.lastAction = model.ActionVoluntaryCharge
		r.lastBidSupply = false
		return &model.Bid{
			PricePerKWh: referencePrice,
			AmountKWh:   math.Min(spec.ChargeRateMaxKW, r.store.LeftToCharge(nil)),
			Owner:       r,
		}, nil
	case minCharge > 0:
		// Reserve compliance overrides price sensitivity.
		r.lastAction = model.ActionRequiredCharge
		r.lastBidSupply = false
		return &model.Bid{
			PricePerKWh: referencePrice,
			AmountKWh:   math.Min(spec.ChargeRateMaxKW, minCharge),
			Owner:       r,
		}, nil
	case referencePrice > r.minDischargePrice:
		// Price 0: accept whatever the market clears at.
		r.lastAction = model.ActionDischarge
		r.lastBidSupply = true
		available := r.store.CurrentEnergy() - r.profile.MDRAt(hour+1)
		return &model.Bid{
			PricePerKWh: 0,
			AmountKWh:   math.Max(0, math.Min(spec.DischargeRateMaxKW, available)),
			Supply:      true,
			Owner:       r,
		}, nil
	}

	r.lastAction = model.ActionNone
	return nil, nil
}

func (r *RuleBasedEV) OnFill(_ int, _ float64, quantity float64) {
	if r.lastBidSupply {
		r.store.Transfer(model.Discharge, quantity, nil)
	} else {
		r.store.Transfer(model.Charge, quantity, nil)
	}
}

func (r *RuleBasedEV) Finalize(hour int, _ *float64) model.Stats {
	r.applyDriving(hour)
	stats := r.baseStats(hour)
	stats["last_action"] = r.lastAction
	return stats
}

// LastAction reports the label recorded by the most recent MakeBid.
func (r *RuleBasedEV) LastAction() model.Action { return r.lastAction }
