package models

import "ev-market/internal/config"

// SimulateRequest represents the body of POST /api/v1/simulate.
type SimulateRequest struct {
	Scenario      config.Scenario `json:"scenario" binding:"required"`
	IncludeLedger bool            `json:"include_ledger"`
}
