package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ev-market/internal/api/models"
	"ev-market/internal/data"
)

// TariffHandler serves the tariffs available on disk.
type TariffHandler struct {
	tariffDir string
}

func NewTariffHandler(tariffDir string) *TariffHandler {
	return &TariffHandler{tariffDir: tariffDir}
}

// ListTariffs handles GET /api/v1/tariffs.
func (h *TariffHandler) ListTariffs(c *gin.Context) {
	tariffs, err := data.ListTariffs(h.tariffDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "TARIFF_DIR_ERROR", Message: err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tariffs": tariffs})
}
