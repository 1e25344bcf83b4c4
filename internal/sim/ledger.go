package sim

// LedgerRow is one hour of simulation output: the primary artifact for
// "what happened" in a run.
type LedgerRow struct {
	Day  int
	Hour int

	GridPrice     float64
	ClearingPrice float64
	Cleared       bool

	SupplyBids int
	DemandBids int

	GridEnergyKWh float64
	GridCost      float64
	CumGridCost   float64

	MeanRuleEVCost float64
	MeanOptEVCost  float64
	MeanHomeCost   float64

	ReserveViolations int
}

// Result aggregates a full run.
type Result struct {
	Scenario string
	Days     int
	Ledger   []LedgerRow

	TotalGridEnergyKWh float64
	TotalGridCost      float64
	MeanClearingPrice  float64
	ReserveViolations  int
}
