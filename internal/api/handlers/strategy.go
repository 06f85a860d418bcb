package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pit-strategy/internal/api/models"
	"pit-strategy/internal/model"
	"pit-strategy/internal/strategy"
)

// StrategyHandler handles strategy-related requests
type StrategyHandler struct {
	table strategy.Table
}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler(table strategy.Table) *StrategyHandler {
	return &StrategyHandler{table: table}
}

var strategyDescriptions = map[model.StrategyID]struct{ description, pitStop string }{
	model.StrategySoft50: {
		"Start on softs with 50% of the required fuel.",
		"Refuel the other 50% and fit new softs; the longer of the two sets the stop time.",
	},
	model.StrategyMed50: {
		"Start on mediums with 50% of the required fuel.",
		"Refuel the other 50%, keep the mediums.",
	},
	model.StrategyMed99: {
		"Start on mediums with ~99% of the required fuel.",
		"Add a single litre, keep the mediums.",
	},
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	strategies := make([]models.StrategyInfo, 0, len(model.AllStrategies()))
	for _, id := range model.AllStrategies() {
		d := strategyDescriptions[id]
		strategies = append(strategies, models.StrategyInfo{
			ID:                   string(id),
			Description:          d.description,
			PitStop:              d.pitStop,
			DeteriorationPercent: h.table.Deterioration[id],
		})
	}
	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
