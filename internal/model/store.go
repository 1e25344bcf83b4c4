package model

import (
	"errors"
	"math"
)

// Direction selects what a transfer does to the store.
type Direction string

const (
	Charge    Direction = "charge"
	Discharge Direction = "discharge"
)

// OperatingRange bounds normal operation as fractions of capacity.
type OperatingRange struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// StoreSpec defines the physical characteristics of an energy store.
// Units:
// - CapacityKWh: kWh
// - ChargeRateMaxKW / DischargeRateMaxKW: kW (per-hour energy limits)
// - OperatingRange: fractions 0..1 of capacity
type StoreSpec struct {
	CapacityKWh        float64
	ChargeRateMaxKW    float64
	DischargeRateMaxKW float64
	InitialEnergyKWh   float64
	OperatingRange     OperatingRange
}

func (s StoreSpec) Validate() error {
	if s.CapacityKWh <= 0 {
		return errors.New("CapacityKWh must be > 0")
	}
	if s.ChargeRateMaxKW <= 0 {
		return errors.New("ChargeRateMaxKW must be > 0")
	}
	if s.DischargeRateMaxKW <= 0 {
		return errors.New("DischargeRateMaxKW must be > 0")
	}
	r := s.OperatingRange
	if r.Min < 0 || r.Min > 1 || r.Max < 0 || r.Max > 1 || r.Min > r.Max {
		return errors.New("OperatingRange must satisfy 0<=Min<=Max<=1")
	}
	if s.InitialEnergyKWh < 0 {
		return errors.New("InitialEnergyKWh must be >= 0")
	}
	return nil
}

// EnergyStore tracks one participant's stored energy. The stored amount
// is only ever modified through Transfer.
type EnergyStore struct {
	spec   StoreSpec
	energy float64
}

func NewEnergyStore(spec StoreSpec) (*EnergyStore, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &EnergyStore{spec: spec, energy: spec.InitialEnergyKWh}, nil
}

func (s *EnergyStore) Spec() StoreSpec { return s.spec }

// CurrentEnergy returns the stored energy in kWh.
func (s *EnergyStore) CurrentEnergy() float64 { return s.energy }

// CurrentEnergyPercent returns the stored energy as a fraction of capacity.
func (s *EnergyStore) CurrentEnergyPercent() float64 {
	return s.energy / s.spec.CapacityKWh
}

// effectiveRange intersects the store's own operating range with an
// optional caller-supplied tighter range.
func (s *EnergyStore) effectiveRange(r *OperatingRange) OperatingRange {
	own := s.spec.OperatingRange
	if r == nil {
		return own
	}
	return OperatingRange{
		Min: math.Max(r.Min, own.Min),
		Max: math.Min(r.Max, own.Max),
	}
}

// MaxOperatingCapacity returns the upper energy bound in kWh for the
// effective range. Pass nil for the store's own range.
func (s *EnergyStore) MaxOperatingCapacity(r *OperatingRange) float64 {
	return s.spec.CapacityKWh * s.effectiveRange(r).Max
}

// MinOperatingCapacity returns the lower energy bound in kWh for the
// effective range.
func (s *EnergyStore) MinOperatingCapacity(r *OperatingRange) float64 {
	return s.spec.CapacityKWh * s.effectiveRange(r).Min
}

// LeftToCharge returns the headroom in kWh up to the effective maximum.
func (s *EnergyStore) LeftToCharge(r *OperatingRange) float64 {
	return math.Max(0, s.MaxOperatingCapacity(r)-s.energy)
}

// Transfer applies a rate- and capacity-bounded charge or discharge of
// amountKWh and returns the signed energy delta actually applied.
//
// Charging is clamped to the charge-rate limit, and the result never
// exceeds max(effective max capacity, current energy): a store already
// above its ceiling is left where it is, never forced down. Discharging
// mirrors this against the effective minimum. An unknown direction is a
// no-op returning zero.
func (s *EnergyStore) Transfer(dir Direction, amountKWh float64, r *OperatingRange) float64 {
	proposed := s.energy

	requested := math.Max(0, amountKWh)

	switch dir {
	case Charge:
		amount := math.Min(requested, s.spec.ChargeRateMaxKW)
		proposed += amount
		proposed = math.Min(proposed, math.Max(s.MaxOperatingCapacity(r), s.energy))
	case Discharge:
		amount := math.Min(requested, s.spec.DischargeRateMaxKW)
		proposed -= amount
		proposed = math.Max(proposed, math.Min(s.MinOperatingCapacity(r), s.energy))
	default:
		return 0
	}

	delta := proposed - s.energy
	s.energy = proposed
	return delta
}
