package handlers

import (
	"net/http"

	"fiscal-score/internal/api/models"
	"fiscal-score/internal/scorer"
	"fiscal-score/internal/uncertainty"

	"github.com/gin-gonic/gin"
)

// UncertaintyHandler handles Monte Carlo and sensitivity requests
type UncertaintyHandler struct{}

// NewUncertaintyHandler creates a new uncertainty handler
func NewUncertaintyHandler() *UncertaintyHandler {
	return &UncertaintyHandler{}
}

// scoreCentral runs the embedded score request and returns the result, or
// writes the error response and returns nil.
func (h *UncertaintyHandler) scoreCentral(c *gin.Context, req models.ScoreRequest) *scorer.ScoringResult {
	cond, ok := toConditions(req.Conditions)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "UNKNOWN_PRESET",
				Message: "unknown condition preset: " + req.Conditions.Preset,
			},
		})
		return nil
	}

	s := newScorer(req.StartYear, req.UseRealData, req.APIKey, cond)
	p := toPolicy(req.Policy, s.Baseline.StartYear)
	if err := p.Validate(); err != nil {
		writeInvalidPolicy(c, err)
		return nil
	}

	res, err := s.ScorePolicy(p, scorer.Options{Dynamic: req.Options.Dynamic})
	if err != nil {
		writeScoreError(c, err)
		return nil
	}
	return res
}

// MonteCarlo handles POST /api/v1/uncertainty/montecarlo
func (h *UncertaintyHandler) MonteCarlo(c *gin.Context) {
	var req models.MonteCarloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	res := h.scoreCentral(c, req.Score)
	if res == nil {
		return
	}

	cfg := uncertainty.DefaultMonteCarloConfig()
	if req.Simulations > 0 {
		cfg.Simulations = req.Simulations
	}
	if req.Seed != 0 {
		cfg.Seed = req.Seed
	}
	if req.GDPShockStd > 0 {
		cfg.GDPShockStd = req.GDPShockStd
	}
	if req.PolicyShockStd > 0 {
		cfg.PolicyShockStd = req.PolicyShockStd
	}
	if req.BehavioralShockStd > 0 {
		cfg.BehavioralShockStd = req.BehavioralShockStd
	}

	mc, err := uncertainty.NewCalculator().MonteCarlo(res.FinalDeficit, cfg)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SIMULATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.MonteCarloResponse{
		Simulations: mc.Simulations,
		Years:       mc.Mean.Years(),
		Mean:        mc.Mean.Values,
		Median:      mc.Median.Values,
		Std:         mc.Std.Values,
		P10:         mc.P10.Values,
		P25:         mc.P25.Values,
		P75:         mc.P75.Values,
		P90:         mc.P90.Values,
		TotalMean:   mc.TotalMean,
		TotalMedian: mc.TotalMedian,
		TotalStd:    mc.TotalStd,
		TotalP10:    mc.TotalP10,
		TotalP90:    mc.TotalP90,
	})
}

// Sensitivity handles POST /api/v1/uncertainty/sensitivity
func (h *UncertaintyHandler) Sensitivity(c *gin.Context) {
	var req models.SensitivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	res := h.scoreCentral(c, req.Score)
	if res == nil {
		return
	}

	rangePct := req.RangePct
	if rangePct == 0 {
		rangePct = 0.25
	}

	sens, err := uncertainty.NewCalculator().Sensitivity(res.FinalDeficit, req.Parameter, req.CentralValue, rangePct)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SENSITIVITY_ERROR",
				Message: err.Error(),
				Details: map[string]interface{}{
					"parameters": uncertainty.SensitivityParameters(),
				},
			},
		})
		return
	}

	c.JSON(http.StatusOK, sens)
}
