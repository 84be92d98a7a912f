package handlers

import (
	"errors"
	"net/http"

	"fiscal-score/internal/api/models"
	"fiscal-score/internal/model"
	"fiscal-score/internal/scorer"

	"github.com/gin-gonic/gin"
)

// ScoreHandler handles policy and package scoring requests
type ScoreHandler struct{}

// NewScoreHandler creates a new score handler
func NewScoreHandler() *ScoreHandler {
	return &ScoreHandler{}
}

// ScorePolicy handles POST /api/v1/score
func (h *ScoreHandler) ScorePolicy(c *gin.Context) {
	var req models.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	cond, ok := toConditions(req.Conditions)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "UNKNOWN_PRESET",
				Message: "unknown condition preset: " + req.Conditions.Preset,
				Details: map[string]interface{}{
					"presets": model.ConditionPresetNames,
				},
			},
		})
		return
	}

	s := newScorer(req.StartYear, req.UseRealData, req.APIKey, cond)
	p := toPolicy(req.Policy, s.Baseline.StartYear)
	if err := p.Validate(); err != nil {
		writeInvalidPolicy(c, err)
		return
	}

	res, err := s.ScorePolicy(p, scorer.Options{
		Dynamic:     req.Options.Dynamic,
		Uncertainty: req.Options.Uncertainty,
	})
	if err != nil {
		writeScoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.buildResponse(s, res, req.Options))
}

// ScorePackage handles POST /api/v1/score/package
func (h *ScoreHandler) ScorePackage(c *gin.Context) {
	var req models.PackageScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	cond, ok := toConditions(req.Conditions)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "UNKNOWN_PRESET",
				Message: "unknown condition preset: " + req.Conditions.Preset,
			},
		})
		return
	}

	s := newScorer(req.StartYear, req.UseRealData, req.APIKey, cond)

	pkg := &model.Package{
		Name:              req.Name,
		InteractionFactor: req.InteractionFactor,
	}
	if pkg.Name == "" {
		pkg.Name = "package"
	}
	for _, pr := range req.Policies {
		p := toPolicy(pr, s.Baseline.StartYear)
		if err := p.Validate(); err != nil {
			writeInvalidPolicy(c, err)
			return
		}
		pkg.Policies = append(pkg.Policies, *p)
	}

	res, err := s.ScorePackage(pkg, scorer.Options{
		Dynamic:     req.Options.Dynamic,
		Uncertainty: req.Options.Uncertainty,
	})
	if err != nil {
		writeScoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.buildResponse(s, res, req.Options))
}

// CompareScores handles POST /api/v1/score/compare. The base and every
// variation are scored against the same baseline and conditions.
func (h *ScoreHandler) CompareScores(c *gin.Context) {
	var req models.CompareScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	cond, ok := toConditions(req.Conditions)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "UNKNOWN_PRESET",
				Message: "unknown condition preset: " + req.Conditions.Preset,
			},
		})
		return
	}

	s := newScorer(req.StartYear, req.UseRealData, req.APIKey, cond)
	opts := scorer.Options{
		Dynamic:     req.Options.Dynamic,
		Uncertainty: req.Options.Uncertainty,
	}

	resp := models.CompareScoreResponse{}

	basePolicy := toPolicy(req.Base, s.Baseline.StartYear)
	if err := basePolicy.Validate(); err != nil {
		writeInvalidPolicy(c, err)
		return
	}
	base, err := s.ScorePolicy(basePolicy, opts)
	if err != nil {
		writeScoreError(c, err)
		return
	}
	resp.Comparison = append(resp.Comparison, models.ComparisonResult{
		Name:    "base",
		Summary: toSummary(base, s.Source),
	})

	for _, v := range req.Variations {
		vp := toPolicy(v.Policy, s.Baseline.StartYear)
		if err := vp.Validate(); err != nil {
			writeInvalidPolicy(c, err)
			return
		}
		res, err := s.ScorePolicy(vp, opts)
		if err != nil {
			writeScoreError(c, err)
			return
		}
		resp.Comparison = append(resp.Comparison, models.ComparisonResult{
			Name:    v.Name,
			Summary: toSummary(res, s.Source),
		})
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ScoreHandler) buildResponse(s *scorer.Scorer, res *scorer.ScoringResult, opts models.ScoreOptions) models.ScoreResponse {
	resp := models.ScoreResponse{
		Status:  "completed",
		Summary: toSummary(res, s.Source),
	}
	if opts.IncludeLedger {
		resp.Ledger = toLedger(res)
	}
	if res.Dynamic != nil {
		dv := &models.DynamicView{
			GDPLevelChange:     res.Dynamic.GDPLevelChange.Values,
			GDPPercentChange:   res.Dynamic.GDPPercentChange.Values,
			EmploymentChange:   res.Dynamic.EmploymentChange.Values,
			InterestRateChange: res.Dynamic.InterestRateChange.Values,
			RevenueFeedback:    res.Dynamic.RevenueFeedback.Values,
		}
		if res.Policy != nil {
			lr := s.Econ.LongRunEffects(res.Policy, res.Dynamic, res.Baseline)
			dv.LongRunGDPLevel = lr.GDPLevelChange
			dv.LongRunGDPPercent = lr.GDPPercentChange
		}
		resp.Dynamic = dv
	}
	return resp
}

func writeInvalidPolicy(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_POLICY",
			Message: err.Error(),
		},
	})
}

// writeScoreError maps scoring failures onto HTTP statuses. Policy shape
// problems are client errors; anything else is a server error.
func writeScoreError(c *gin.Context, err error) {
	code := "SCORING_ERROR"
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrUnknownPolicyKind), errors.Is(err, model.ErrUnknownCategory):
		code = "INVALID_POLICY"
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrSeriesMismatch):
		code = "SERIES_MISMATCH"
	}
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}
