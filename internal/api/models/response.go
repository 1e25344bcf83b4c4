package models

import "ev-market/internal/sim"

// ErrorResponse is the error envelope for all API errors.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SimulateResponse represents the response from a simulation run.
type SimulateResponse struct {
	ID      string      `json:"id"`
	Status  string      `json:"status"`
	Summary RunSummary  `json:"summary"`
	Ledger  []LedgerRow `json:"ledger,omitempty"`
}

// RunSummary contains aggregated run results.
type RunSummary struct {
	Scenario           string  `json:"scenario"`
	Days               int     `json:"days"`
	Hours              int     `json:"hours"`
	TotalGridCost      float64 `json:"total_grid_cost"`
	TotalGridEnergyKWh float64 `json:"total_grid_energy_kwh"`
	MeanClearingPrice  float64 `json:"mean_clearing_price"`
	ReserveViolations  int     `json:"reserve_violations"`
}

// LedgerRow is one hour of simulation output.
type LedgerRow struct {
	Day  int `json:"day"`
	Hour int `json:"hour"`

	GridPrice     float64  `json:"grid_price"`
	ClearingPrice *float64 `json:"clearing_price"`

	SupplyBids int `json:"supply_bids"`
	DemandBids int `json:"demand_bids"`

	GridEnergyKWh float64 `json:"grid_energy_kwh"`
	GridCost      float64 `json:"grid_cost"`
	CumGridCost   float64 `json:"cum_grid_cost"`

	MeanRuleEVCost float64 `json:"mean_rbev_cost"`
	MeanOptEVCost  float64 `json:"mean_loev_cost"`
	MeanHomeCost   float64 `json:"mean_home_cost"`

	ReserveViolations int `json:"reserve_violations"`
}

// SummaryFromResult flattens a sim result into the API summary.
func SummaryFromResult(res *sim.Result) RunSummary {
	return RunSummary{
		Scenario:           res.Scenario,
		Days:               res.Days,
		Hours:              len(res.Ledger),
		TotalGridCost:      res.TotalGridCost,
		TotalGridEnergyKWh: res.TotalGridEnergyKWh,
		MeanClearingPrice:  res.MeanClearingPrice,
		ReserveViolations:  res.ReserveViolations,
	}
}

// LedgerFromResult converts the internal ledger to its JSON shape.
func LedgerFromResult(res *sim.Result) []LedgerRow {
	out := make([]LedgerRow, 0, len(res.Ledger))
	for _, r := range res.Ledger {
		row := LedgerRow{
			Day:               r.Day,
			Hour:              r.Hour,
			GridPrice:         r.GridPrice,
			SupplyBids:        r.SupplyBids,
			DemandBids:        r.DemandBids,
			GridEnergyKWh:     r.GridEnergyKWh,
			GridCost:          r.GridCost,
			CumGridCost:       r.CumGridCost,
			MeanRuleEVCost:    r.MeanRuleEVCost,
			MeanOptEVCost:     r.MeanOptEVCost,
			MeanHomeCost:      r.MeanHomeCost,
			ReserveViolations: r.ReserveViolations,
		}
		if r.Cleared {
			p := r.ClearingPrice
			row.ClearingPrice = &p
		}
		out = append(out, row)
	}
	return out
}
