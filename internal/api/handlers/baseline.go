package handlers

import (
	"net/http"

	"fiscal-score/internal/api/models"
	"fiscal-score/internal/baseline"
	"fiscal-score/internal/data"
	"fiscal-score/internal/model"
	"fiscal-score/internal/uncertainty"

	"github.com/gin-gonic/gin"
)

// BaselineHandler handles baseline projection requests
type BaselineHandler struct{}

// NewBaselineHandler creates a new baseline handler
func NewBaselineHandler() *BaselineHandler {
	return &BaselineHandler{}
}

// GetBaseline handles GET /api/v1/baseline
func (h *BaselineHandler) GetBaseline(c *gin.Context) {
	var req models.BaselineRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}
	if req.StartYear == 0 {
		req.StartYear = 2026
	}

	var src baseline.StatisticalSource
	if req.UseRealData {
		src = data.NewClient(req.APIKey, "")
	}
	gen := baseline.New(model.DefaultAssumptions(req.StartYear), src)
	proj, source := gen.Build(req.StartYear, req.UseRealData)

	resp := models.BaselineResponse{
		StartYear:  proj.StartYear,
		Source:     string(source),
		Years:      proj.NominalGDP.Years(),
		Revenues:   make(map[string][]float64, len(model.RevenueCategories)),
		Outlays:    make(map[string][]float64, len(model.OutlayCategories)),
		NominalGDP: proj.NominalGDP.Values,
		Deficit:    proj.Deficit().Values,
		Debt:       proj.Debt.Values,
		DebtToGDP:  proj.DebtToGDP().Values,
	}
	for cat, s := range proj.Revenues {
		resp.Revenues[string(cat)] = s.Values
	}
	for cat, s := range proj.Outlays {
		resp.Outlays[string(cat)] = s.Values
	}

	if req.Uncertainty {
		bands := uncertainty.NewCalculator().CalculateBaselineUncertainty(proj)
		resp.DeficitLow = bands.Deficit.Low.Values
		resp.DeficitHigh = bands.Deficit.High.Values
	}

	c.JSON(http.StatusOK, resp)
}
