// Package config defines the on-disk scenario shape (YAML) and its
// validation. A scenario fully determines a simulation run.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ev-market/internal/data"
	"ev-market/internal/model"
)

// Scenario is the on-disk configuration shape.
type Scenario struct {
	Name string `yaml:"name" json:"name"`
	Days int    `yaml:"days" json:"days"`
	Seed int64  `yaml:"seed" json:"seed"`

	// Optional: load the tariff from a separate JSON file (e.g.
	// examples/tariffs/*.json). Inline Tariff overrides TariffFile.
	TariffFile string    `yaml:"tariff_file" json:"tariff_file,omitempty"`
	Tariff     []float64 `yaml:"tariff" json:"tariff,omitempty"`

	EV              EVConfig  `yaml:"ev" json:"ev"`
	MDR             []float64 `yaml:"mdr" json:"mdr"`
	DrivingSchedule []float64 `yaml:"driving_schedule" json:"driving_schedule"`

	Fleet      FleetConfig      `yaml:"fleet" json:"fleet"`
	RulePolicy RulePolicyConfig `yaml:"rule_policy" json:"rule_policy"`
	Home       HomeConfig       `yaml:"home" json:"home"`
	Planner    PlannerConfig    `yaml:"planner" json:"planner"`
}

type EVConfig struct {
	CapacityKWh        float64              `yaml:"capacity_kwh" json:"capacity_kwh"`
	ChargeRateMaxKW    float64              `yaml:"charge_rate_max_kw" json:"charge_rate_max_kw"`
	DischargeRateMaxKW float64              `yaml:"discharge_rate_max_kw" json:"discharge_rate_max_kw"`
	InitialEnergyKWh   float64              `yaml:"initial_energy_kwh" json:"initial_energy_kwh"`
	OperatingRange     model.OperatingRange `yaml:"operating_range" json:"operating_range"`
}

type FleetConfig struct {
	RuleBasedEVs int `yaml:"rule_based_evs" json:"rule_based_evs"`
	OptimizedEVs int `yaml:"optimized_evs" json:"optimized_evs"`
	Homes        int `yaml:"homes" json:"homes"`
}

// RulePolicyConfig holds the price thresholds of the rule-based policy.
// Zero values are derived from the tariff: the charge threshold halfway
// between the minimum and mean price, the discharge threshold halfway
// between the mean and maximum.
type RulePolicyConfig struct {
	MaxChargePrice    float64 `yaml:"max_charge_price" json:"max_charge_price"`
	MinDischargePrice float64 `yaml:"min_discharge_price" json:"min_discharge_price"`
}

type HomeConfig struct {
	MeanKWh    float64 `yaml:"mean_kwh" json:"mean_kwh"`
	Randomness float64 `yaml:"randomness" json:"randomness"`
}

type PlannerConfig struct {
	EnergySteps int `yaml:"energy_steps" json:"energy_steps"`
	RateSteps   int `yaml:"rate_steps" json:"rate_steps"`
}

// Load reads, merges and validates a scenario YAML.
func Load(path string) (*Scenario, error) {
	sc, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	sc.ApplyDefaults()
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// LoadUnchecked loads and merges a scenario without validating it.
// Useful for debugging partial configs.
func LoadUnchecked(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, err
	}
	if sc.TariffFile != "" && len(sc.Tariff) == 0 {
		tariffPath := sc.TariffFile
		if !filepath.IsAbs(tariffPath) {
			// Prefer paths relative to the scenario file, falling back
			// to the working directory.
			cand := filepath.Join(filepath.Dir(path), tariffPath)
			if _, err := os.Stat(cand); err == nil {
				tariffPath = cand
			}
		}
		t, err := data.LoadTariff(tariffPath)
		if err != nil {
			return nil, err
		}
		sc.Tariff = t.PricesPerKWh
		if sc.Name == "" {
			sc.Name = t.Name
		}
	}
	return &sc, nil
}

// ApplyDefaults fills unset fields that have sensible defaults.
func (s *Scenario) ApplyDefaults() {
	if s.Days == 0 {
		s.Days = 1
	}
	if s.Home.MeanKWh == 0 {
		s.Home.MeanKWh = 2.0
	}
}

func (s *Scenario) Validate() error {
	if s == nil {
		return errors.New("scenario is nil")
	}
	if s.Days <= 0 {
		return errors.New("days must be > 0")
	}
	if len(s.Tariff) != model.HoursPerDay {
		return fmt.Errorf("tariff must have %d hourly prices, got %d", model.HoursPerDay, len(s.Tariff))
	}
	if n := s.Fleet.RuleBasedEVs + s.Fleet.OptimizedEVs; n > 0 {
		if len(s.MDR) != model.HoursPerDay {
			return fmt.Errorf("mdr must have %d entries, got %d", model.HoursPerDay, len(s.MDR))
		}
		if len(s.DrivingSchedule) != model.HoursPerDay {
			return fmt.Errorf("driving_schedule must have %d entries, got %d", model.HoursPerDay, len(s.DrivingSchedule))
		}
		// Validate the EV spec by constructing a store.
		if _, err := model.NewEnergyStore(s.StoreSpec()); err != nil {
			return fmt.Errorf("ev config invalid: %w", err)
		}
	}
	if s.Fleet.RuleBasedEVs < 0 || s.Fleet.OptimizedEVs < 0 || s.Fleet.Homes < 0 {
		return errors.New("fleet counts must be >= 0")
	}
	if s.Home.Randomness < 0 || s.Home.Randomness > 1 {
		return errors.New("home.randomness must be in [0, 1]")
	}
	return nil
}

// StoreSpec converts the EV section into the physical model's spec.
func (s *Scenario) StoreSpec() model.StoreSpec {
	return model.StoreSpec{
		CapacityKWh:        s.EV.CapacityKWh,
		ChargeRateMaxKW:    s.EV.ChargeRateMaxKW,
		DischargeRateMaxKW: s.EV.DischargeRateMaxKW,
		InitialEnergyKWh:   s.EV.InitialEnergyKWh,
		OperatingRange:     s.EV.OperatingRange,
	}
}

// ReserveProfile converts the schedule sections into the immutable
// profile every EV gets a copy of.
func (s *Scenario) ReserveProfile() model.ReserveProfile {
	var p model.ReserveProfile
	copy(p.MDR[:], s.MDR)
	copy(p.Driving[:], s.DrivingSchedule)
	return p
}

// TariffPrices returns the fixed-size hourly price schedule.
func (s *Scenario) TariffPrices() [model.HoursPerDay]float64 {
	var out [model.HoursPerDay]float64
	copy(out[:], s.Tariff)
	return out
}
