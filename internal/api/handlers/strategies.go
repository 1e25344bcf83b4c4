package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StrategyInfo describes one participant kind for API consumers.
type StrategyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListStrategies handles GET /api/v1/strategies.
func ListStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"strategies": []StrategyInfo{
			{
				Name:        "grid",
				Description: "Backstop supplier: unbounded quantity at the time-of-use tariff price.",
			},
			{
				Name:        "home",
				Description: "Inelastic household load bidding its scheduled consumption at the reference price.",
			},
			{
				Name:        "rule_based_ev",
				Description: "EV with a threshold policy: charge when cheap, charge when reserve demands, discharge when expensive.",
			},
			{
				Name:        "optimized_ev",
				Description: "EV bidding from a day-ahead plan minimizing price-weighted cost, with a rolling price estimate.",
			},
		},
	})
}
