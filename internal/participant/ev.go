// Package participant implements the bidders the auction drives each
// hour: the grid backstop, household loads, and the two electric
// vehicle policies, plus the recording wrapper used for observability.
package participant

import (
	"ev-market/internal/model"
)

// ev bundles what the two EV policies share: the physical store and the
// reserve/driving profile, kept immutable by value.
type ev struct {
	store   *model.EnergyStore
	profile model.ReserveProfile
}

func newEV(spec model.StoreSpec, profile model.ReserveProfile) (ev, error) {
	store, err := model.NewEnergyStore(spec)
	if err != nil {
		return ev{}, err
	}
	return ev{store: store, profile: profile}, nil
}

// Store exposes the physical model, mainly for tests and reporting.
func (e *ev) Store() *model.EnergyStore { return e.store }

// applyDriving discharges the hour's forced consumption through the
// transfer operation, never by direct assignment.
func (e *ev) applyDriving(hour int) {
	if d := e.profile.DrivingAt(hour); d != 0 {
		e.store.Transfer(model.Discharge, d, nil)
	}
}

func (e *ev) baseStats(hour int) model.Stats {
	return model.Stats{
		"current_energy":   e.store.CurrentEnergy(),
		"mdr":              e.profile.MDRAt(hour),
		"driving_schedule": e.profile.DrivingAt(hour),
		"meeting_next_mdr": e.profile.MeetsNext(hour, e.store.CurrentEnergy()),
	}
}
