package uncertainty

import (
	"fmt"
	"sort"

	"fiscal-score/internal/model"
)

// sensitivityGridPoints is the sweep resolution across the +/- range.
const sensitivityGridPoints = 11

// effectFactors map a parameter's relative change to the relative change of
// the 10-year total, linearly. Signs follow the budget convention (positive
// total = deficit increase): faster growth lowers the deficit, higher rates
// raise it.
var effectFactors = map[string]float64{
	"gdp_growth":                   -0.5,
	"inflation":                    0.3,
	"interest_rate":                0.8,
	"unemployment":                 0.4,
	"elasticity_of_taxable_income": 0.6,
	"fiscal_multiplier":            -0.4,
}

// SensitivityParameters lists the sweepable parameter names, sorted.
func SensitivityParameters() []string {
	out := make([]string, 0, len(effectFactors))
	for name := range effectFactors {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SensitivityResult reports a one-parameter sweep.
type SensitivityResult struct {
	Parameter    string    `json:"parameter"`
	CentralValue float64   `json:"central_value"`
	CentralTotal float64   `json:"central_total"`
	Values       []float64 `json:"values"`
	Totals       []float64 `json:"totals"`
	// Elasticity is the relative change of the 10-year total per relative
	// change of the parameter.
	Elasticity float64 `json:"elasticity"`
}

// Sensitivity varies one named parameter over an 11-point grid spanning
// +/- rangePct around its central value and reports the resulting 10-year
// totals and elasticity.
func (c *Calculator) Sensitivity(central model.Series, parameter string, centralValue, rangePct float64) (*SensitivityResult, error) {
	factor, ok := effectFactors[parameter]
	if !ok {
		return nil, fmt.Errorf("unknown sensitivity parameter %q (known: %v)", parameter, SensitivityParameters())
	}
	if centralValue == 0 {
		return nil, fmt.Errorf("central value for %q must be nonzero", parameter)
	}
	if rangePct <= 0 {
		return nil, fmt.Errorf("range must be > 0")
	}

	total := central.Sum()
	res := &SensitivityResult{
		Parameter:    parameter,
		CentralValue: centralValue,
		CentralTotal: total,
		Values:       make([]float64, sensitivityGridPoints),
		Totals:       make([]float64, sensitivityGridPoints),
	}

	for k := 0; k < sensitivityGridPoints; k++ {
		// Grid from -rangePct to +rangePct inclusive.
		rel := -rangePct + 2*rangePct*float64(k)/float64(sensitivityGridPoints-1)
		res.Values[k] = centralValue * (1 + rel)
		res.Totals[k] = total * (1 + factor*rel)
	}

	// Elasticity from the grid endpoints; for a linear effect this equals
	// the effect factor exactly.
	if total != 0 {
		dTotal := (res.Totals[sensitivityGridPoints-1] - res.Totals[0]) / total
		dParam := (res.Values[sensitivityGridPoints-1] - res.Values[0]) / centralValue
		res.Elasticity = dTotal / dParam
	}
	return res, nil
}
