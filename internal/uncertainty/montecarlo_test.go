package uncertainty

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonteCarlo_ZeroVarianceCollapsesOntoCentral(t *testing.T) {
	central := flatSeries(7)
	cfg := MonteCarloConfig{Simulations: 50, Seed: 1}

	res, err := NewCalculator().MonteCarlo(central, cfg)
	require.NoError(t, err)

	for i := range central.Values {
		assert.InDelta(t, 7.0, res.Mean.Values[i], 1e-12)
		assert.InDelta(t, 7.0, res.Median.Values[i], 1e-12)
		assert.InDelta(t, 0.0, res.Std.Values[i], 1e-12)
		assert.InDelta(t, 7.0, res.P10.Values[i], 1e-12)
		assert.InDelta(t, 7.0, res.P90.Values[i], 1e-12)
	}
	assert.InDelta(t, 70.0, res.TotalMean, 1e-12)
	assert.InDelta(t, 0.0, res.TotalStd, 1e-12)
}

func TestMonteCarlo_DeterministicForSeed(t *testing.T) {
	central := flatSeries(7)
	cfg := DefaultMonteCarloConfig()
	cfg.Simulations = 200

	a, err := NewCalculator().MonteCarlo(central, cfg)
	require.NoError(t, err)
	b, err := NewCalculator().MonteCarlo(central, cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Mean.Values, b.Mean.Values)
	assert.Equal(t, a.TotalP90, b.TotalP90)

	cfg.Seed = 99
	c, err := NewCalculator().MonteCarlo(central, cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.Mean.Values, c.Mean.Values)
}

func TestMonteCarlo_QuantilesOrdered(t *testing.T) {
	central := flatSeries(7)
	cfg := DefaultMonteCarloConfig()
	cfg.Simulations = 500

	res, err := NewCalculator().MonteCarlo(central, cfg)
	require.NoError(t, err)

	for i := range central.Values {
		assert.LessOrEqual(t, res.P10.Values[i], res.P25.Values[i])
		assert.LessOrEqual(t, res.P25.Values[i], res.Median.Values[i])
		assert.LessOrEqual(t, res.Median.Values[i], res.P75.Values[i])
		assert.LessOrEqual(t, res.P75.Values[i], res.P90.Values[i])
		assert.Positive(t, res.Std.Values[i])
	}
	assert.Less(t, res.TotalP10, res.TotalP90)
}

func TestMonteCarlo_MeanNearCentral(t *testing.T) {
	central := flatSeries(100)
	cfg := DefaultMonteCarloConfig()
	cfg.Simulations = 5000

	res, err := NewCalculator().MonteCarlo(central, cfg)
	require.NoError(t, err)

	// Shocks are mean-zero; the simulated mean stays within a few percent
	// of the central path at this sample size.
	for i := range central.Values {
		assert.InDelta(t, 100.0, res.Mean.Values[i], 3.0, "year index %d", i)
	}
}

func TestMonteCarlo_InvalidConfig(t *testing.T) {
	_, err := NewCalculator().MonteCarlo(flatSeries(7), MonteCarloConfig{Simulations: 0})
	assert.Error(t, err)

	_, err = NewCalculator().MonteCarlo(flatSeries(7), MonteCarloConfig{Simulations: -1})
	assert.Error(t, err)

	empty := flatSeries(7)
	empty.Values = nil
	_, err = NewCalculator().MonteCarlo(empty, MonteCarloConfig{Simulations: 10})
	assert.Error(t, err)
}

func TestShockCorrelation_PositiveDefinite(t *testing.T) {
	var chol mat.Cholesky
	assert.True(t, chol.Factorize(shockCorrelation),
		"correlation matrix must stay positive definite")
}
