// Package data loads the static inputs a scenario references: hourly
// tariffs and derived household load schedules.
package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ev-market/internal/model"
)

// Tariff is a named 24-hour price curve in $/kWh.
//
// Example file:
//
//	{
//	  "name": "weekday_winter",
//	  "source": "https://www.hydroone.com/rates-and-billing/rates-and-charges/electricity-pricing-and-costs",
//	  "prices_per_kwh": [7.6, 7.6, ...]
//	}
type Tariff struct {
	Name         string    `json:"name"`
	Source       string    `json:"source,omitempty"`
	PricesPerKWh []float64 `json:"prices_per_kwh"`
}

func (t *Tariff) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("tariff name is required")
	}
	if len(t.PricesPerKWh) != model.HoursPerDay {
		return fmt.Errorf("tariff %q must have %d hourly prices, got %d", t.Name, model.HoursPerDay, len(t.PricesPerKWh))
	}
	return nil
}

// Prices returns the fixed-size schedule the grid participant holds.
func (t *Tariff) Prices() [model.HoursPerDay]float64 {
	var out [model.HoursPerDay]float64
	copy(out[:], t.PricesPerKWh)
	return out
}

// Mean returns the average hourly price.
func (t *Tariff) Mean() float64 {
	sum := 0.0
	for _, p := range t.PricesPerKWh {
		sum += p
	}
	return sum / float64(len(t.PricesPerKWh))
}

// Bounds returns the minimum and maximum hourly prices.
func (t *Tariff) Bounds() (min, max float64) {
	min, max = t.PricesPerKWh[0], t.PricesPerKWh[0]
	for _, p := range t.PricesPerKWh[1:] {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	return min, max
}

// LoadTariff reads and validates a tariff JSON file.
func LoadTariff(path string) (*Tariff, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tariff file: %w", err)
	}
	var t Tariff
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("failed to parse tariff file: %w", err)
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTariffs loads every *.json tariff in a directory, skipping files
// that fail to parse.
func ListTariffs(dir string) ([]*Tariff, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tariff directory: %w", err)
	}
	var out []*Tariff
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		t, err := LoadTariff(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
