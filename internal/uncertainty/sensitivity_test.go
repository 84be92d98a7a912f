package uncertainty

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensitivity_ElasticityMatchesEffectFactor(t *testing.T) {
	central := flatSeries(10)

	for name, factor := range effectFactors {
		res, err := NewCalculator().Sensitivity(central, name, 1.0, 0.25)
		require.NoError(t, err, "parameter %s", name)
		assert.InDelta(t, factor, res.Elasticity, 1e-9, "parameter %s", name)
	}
}

func TestSensitivity_GridShape(t *testing.T) {
	central := flatSeries(10)
	res, err := NewCalculator().Sensitivity(central, "elasticity_of_taxable_income", 0.25, 0.20)
	require.NoError(t, err)

	require.Len(t, res.Values, 11)
	require.Len(t, res.Totals, 11)

	// Grid spans +/- 20% around the central value, sorted ascending, with
	// the central value at the midpoint.
	assert.InDelta(t, 0.25*0.8, res.Values[0], 1e-12)
	assert.InDelta(t, 0.25, res.Values[5], 1e-12)
	assert.InDelta(t, 0.25*1.2, res.Values[10], 1e-12)
	assert.True(t, sort.Float64sAreSorted(res.Values))

	// At the central value the total is unchanged.
	assert.InDelta(t, res.CentralTotal, res.Totals[5], 1e-9)
}

func TestSensitivity_SignOfEffect(t *testing.T) {
	central := flatSeries(10)

	// Faster growth shrinks the deficit effect.
	growth, err := NewCalculator().Sensitivity(central, "gdp_growth", 0.022, 0.25)
	require.NoError(t, err)
	assert.Less(t, growth.Totals[10], growth.Totals[0])

	// Higher rates raise it.
	rates, err := NewCalculator().Sensitivity(central, "interest_rate", 0.04, 0.25)
	require.NoError(t, err)
	assert.Greater(t, rates.Totals[10], rates.Totals[0])
}

func TestSensitivity_InvalidInputs(t *testing.T) {
	central := flatSeries(10)

	_, err := NewCalculator().Sensitivity(central, "lunar_phase", 1.0, 0.25)
	assert.Error(t, err)

	_, err = NewCalculator().Sensitivity(central, "gdp_growth", 0, 0.25)
	assert.Error(t, err)

	_, err = NewCalculator().Sensitivity(central, "gdp_growth", 1.0, 0)
	assert.Error(t, err)
}

func TestSensitivityParameters_SortedAndComplete(t *testing.T) {
	params := SensitivityParameters()
	assert.True(t, sort.StringsAreSorted(params))
	assert.Len(t, params, len(effectFactors))
	assert.Contains(t, params, "fiscal_multiplier")
}
