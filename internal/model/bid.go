package model

// FillHandler receives the outcome of a bid after an hour clears.
// It is the only channel through which clearing changes participant state.
type FillHandler interface {
	OnFill(hour int, price, quantity float64)
}

// Bid is an offer to trade energy for one hour.
//
// For a demand bid, PricePerKWh is the maximum the bidder will pay.
// For a supply bid, it is the minimum the bidder will accept.
// A bid with Unbounded set trades as much as the market clears;
// AmountKWh is ignored for such bids.
type Bid struct {
	PricePerKWh float64
	AmountKWh   float64
	Unbounded   bool
	Supply      bool
	Owner       FillHandler
}

// ClearingResult summarizes one cleared hour. Price is nil when both
// books were empty and no settlement price could be formed. The engine
// does not retain hourly history; callers accumulate results themselves.
type ClearingResult struct {
	Price          *float64 `json:"price"`
	ReferencePrice float64  `json:"reference_price"`
	SupplyBids     int      `json:"supply_bids"`
	DemandBids     int      `json:"demand_bids"`
}

// Stats carries arbitrary per-hour observability fields out of a
// participant's finalize step.
type Stats map[string]any
