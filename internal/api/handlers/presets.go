package handlers

import (
	"net/http"

	"fiscal-score/internal/api/models"
	"fiscal-score/internal/dynamics"
	"fiscal-score/internal/model"

	"github.com/gin-gonic/gin"
)

// PresetHandler lists condition presets and sensitivity parameters
type PresetHandler struct{}

// NewPresetHandler creates a new preset handler
func NewPresetHandler() *PresetHandler {
	return &PresetHandler{}
}

// ListConditionPresets handles GET /api/v1/conditions/presets. Each preset
// is returned with the multipliers a dynamic model calibrated to it would
// use.
func (h *PresetHandler) ListConditionPresets(c *gin.Context) {
	names := model.ConditionPresetNames
	out := make([]models.ConditionPresetInfo, 0, len(names))
	for _, name := range names {
		cond, _ := model.ConditionPreset(name)
		sum := dynamics.New(cond).Summary()
		out = append(out, models.ConditionPresetInfo{
			Name:               name,
			OutputGap:          cond.OutputGap,
			AtZeroLowerBound:   cond.AtZeroLowerBound,
			DebtToGDP:          cond.DebtToGDP,
			UnemploymentRate:   cond.UnemploymentRate,
			SpendingMultiplier: sum.Spending,
			TaxMultiplier:      sum.Tax,
			TransferMultiplier: sum.Transfer,
			CrowdOutRate:       sum.CrowdOutRate,
		})
	}
	c.JSON(http.StatusOK, gin.H{"presets": out})
}
