package handlers

import (
	"net/http"
	"path/filepath"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ev-market/internal/api/models"
	"ev-market/internal/data"
	"ev-market/internal/sim"
)

// SimulateHandler runs scenarios and keeps finished runs in memory so
// ledgers can be fetched separately.
type SimulateHandler struct {
	engine    *sim.Engine
	tariffDir string

	mu   sync.RWMutex
	runs map[string]*sim.Result
}

func NewSimulateHandler(logger *zap.Logger, tariffDir string) *SimulateHandler {
	return &SimulateHandler{
		engine:    sim.New(logger),
		tariffDir: tariffDir,
		runs:      make(map[string]*sim.Result),
	}
}

// RunSimulation handles POST /api/v1/simulate.
func (h *SimulateHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	sc := req.Scenario
	if len(sc.Tariff) == 0 && sc.TariffFile != "" {
		path := sc.TariffFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(h.tariffDir, path)
		}
		t, err := data.LoadTariff(path)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{Code: "TARIFF_LOAD_ERROR", Message: err.Error()},
			})
			return
		}
		sc.Tariff = t.PricesPerKWh
	}
	sc.ApplyDefaults()
	if err := sc.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_SCENARIO", Message: err.Error()},
		})
		return
	}

	res, err := h.engine.Run(&sc)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "SIMULATION_FAILED", Message: err.Error()},
		})
		return
	}

	id := uuid.New().String()
	h.mu.Lock()
	h.runs[id] = res
	h.mu.Unlock()

	resp := models.SimulateResponse{
		ID:      id,
		Status:  "completed",
		Summary: models.SummaryFromResult(res),
	}
	if req.IncludeLedger {
		resp.Ledger = models.LedgerFromResult(res)
	}
	c.JSON(http.StatusOK, resp)
}

// GetLedger handles GET /api/v1/simulations/:id/ledger.
func (h *SimulateHandler) GetLedger(c *gin.Context) {
	id := c.Param("id")

	h.mu.RLock()
	res, ok := h.runs[id]
	h.mu.RUnlock()

	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "RUN_NOT_FOUND", Message: "no run with id " + id},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     id,
		"ledger": models.LedgerFromResult(res),
	})
}
