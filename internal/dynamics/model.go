// Package dynamics converts a policy and its static deficit path into
// macroeconomic feedback: GDP, employment, capital, interest rates, and the
// revenue those feed back into the budget.
package dynamics

import "fiscal-score/internal/model"

// Parameters are the multiplier calibration of the model. The zero value is
// not usable; start from DefaultParameters.
type Parameters struct {
	// Impact multipliers per dollar of stimulus, by policy kind.
	SpendingMultiplier float64
	TaxMultiplier      float64
	TransferMultiplier float64

	// Decay is the per-year geometric fade of earlier-year stimulus.
	Decay float64

	LaborSupplyElasticity float64
	CapitalElasticity     float64
	InvestmentElasticity  float64

	// CrowdOutRate is the share of cumulative deficit displacing private
	// investment each year.
	CrowdOutRate float64

	// RevenueFeedbackRate is the marginal take on induced GDP.
	RevenueFeedbackRate float64

	// InvestmentShareOfGDP converts capital-stock effects into investment
	// flows.
	InvestmentShareOfGDP float64
}

// DefaultParameters returns the base calibration before condition adjustment.
func DefaultParameters() Parameters {
	return Parameters{
		SpendingMultiplier:    1.0,
		TaxMultiplier:         0.5,
		TransferMultiplier:    0.8,
		Decay:                 0.7,
		LaborSupplyElasticity: 0.15,
		CapitalElasticity:     0.25,
		InvestmentElasticity:  0.5,
		CrowdOutRate:          0.03,
		RevenueFeedbackRate:   0.25,
		InvestmentShareOfGDP:  0.18,
	}
}

// Model evaluates dynamic effects under prevailing economic conditions. The
// adjusted parameter snapshot is recomputed whenever conditions change and
// passed by value into the evaluation path, so evaluation never mutates
// shared state.
type Model struct {
	base       Parameters
	conditions model.EconomicConditions
	adjusted   Parameters
}

// New builds a model from the default calibration and the given conditions.
func New(conditions model.EconomicConditions) *Model {
	return NewWithParameters(DefaultParameters(), conditions)
}

// NewWithParameters builds a model from an explicit base calibration.
func NewWithParameters(base Parameters, conditions model.EconomicConditions) *Model {
	m := &Model{base: base}
	m.UpdateConditions(conditions)
	return m
}

// Conditions returns the conditions the current calibration was derived from.
func (m *Model) Conditions() model.EconomicConditions { return m.conditions }

// Adjusted returns the condition-adjusted parameter snapshot by value.
func (m *Model) Adjusted() Parameters { return m.adjusted }

// UpdateConditions swaps in new conditions and recomputes every adjusted
// parameter. This is the model's only mutation path: conditions and derived
// parameters always change together.
func (m *Model) UpdateConditions(c model.EconomicConditions) {
	m.conditions = c
	m.adjusted = adjust(m.base, c)
}

// adjust derives the condition-adjusted calibration. Three independent
// scalar factors multiply into the demand multipliers; crowding out is
// adjusted separately (weaker at the ZLB, stronger above 100% debt/GDP).
func adjust(base Parameters, c model.EconomicConditions) Parameters {
	factor := outputGapFactor(c.OutputGap) * zlbFactor(c.AtZeroLowerBound) * debtFactor(c.DebtToGDP)

	adj := base
	adj.SpendingMultiplier *= factor
	adj.TaxMultiplier *= factor
	adj.TransferMultiplier *= factor

	crowd := base.CrowdOutRate
	if c.AtZeroLowerBound {
		crowd *= 0.3
	}
	if excess := c.DebtToGDP - 1.0; excess > 0 {
		crowd *= 1 + excess
	}
	adj.CrowdOutRate = crowd
	return adj
}

// outputGapFactor: deep slack raises multipliers to 1.5, mild slack scales
// linearly toward 1.3, overheating cuts them to 0.7.
func outputGapFactor(gap float64) float64 {
	switch {
	case gap < -0.02:
		return 1.5
	case gap < 0:
		return 1.0 + (-gap/0.02)*0.3
	case gap > 0.01:
		return 0.7
	default:
		return 1.0
	}
}

// zlbFactor: with no monetary offset available, fiscal impulses bind fully.
func zlbFactor(atZLB bool) float64 {
	if atZLB {
		return 1.5
	}
	return 1.0
}

// debtFactor dampens multipliers as debt/GDP rises above 60%, floored at 0.7.
func debtFactor(debtToGDP float64) float64 {
	f := 1.0 - (debtToGDP-0.6)*0.2
	if f < 0.7 {
		return 0.7
	}
	if f > 1.0 {
		return 1.0
	}
	return f
}

// MultiplierSummary reports the adjusted headline multipliers for the
// presets/summary API surface.
type MultiplierSummary struct {
	Spending     float64 `json:"spending"`
	Tax          float64 `json:"tax"`
	Transfer     float64 `json:"transfer"`
	CrowdOutRate float64 `json:"crowd_out_rate"`
}

func (m *Model) Summary() MultiplierSummary {
	return MultiplierSummary{
		Spending:     m.adjusted.SpendingMultiplier,
		Tax:          m.adjusted.TaxMultiplier,
		Transfer:     m.adjusted.TransferMultiplier,
		CrowdOutRate: m.adjusted.CrowdOutRate,
	}
}
