package uncertainty

import (
	"errors"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"fiscal-score/internal/model"
)

// shockCorrelation is the 4-variable economic-shock correlation matrix
// (order: GDP, inflation, unemployment, interest). It is a fixed calibration
// constant and must stay positive definite: the Cholesky factorization below
// is a contract on this matrix, not on caller input.
var shockCorrelation = mat.NewSymDense(4, []float64{
	1.00, 0.15, -0.35, 0.15,
	0.15, 1.00, -0.05, 0.35,
	-0.35, -0.05, 1.00, -0.10,
	0.15, 0.35, -0.10, 1.00,
})

// gdpShockWeight scales the shared GDP shock component into the path.
const gdpShockWeight = 0.5

// AR(1)-style smoothing weights: shocks carry 30% of their previous-year
// value forward, avoiding unrealistic year-to-year discontinuity.
const (
	shockPersistence = 0.3
	shockInnovation  = 0.7
)

// MonteCarloConfig controls a simulation run. Shock standard deviations are
// fractional (0.10 = 10% of the central estimate); zero variance collapses
// every path onto the central estimate.
type MonteCarloConfig struct {
	Simulations int
	Seed        uint64

	GDPShockStd        float64
	PolicyShockStd     float64
	BehavioralShockStd float64
}

// DefaultMonteCarloConfig runs 1000 paths with moderate shock calibration.
func DefaultMonteCarloConfig() MonteCarloConfig {
	return MonteCarloConfig{
		Simulations:        1000,
		Seed:               1,
		GDPShockStd:        0.10,
		PolicyShockStd:     0.15,
		BehavioralShockStd: 0.10,
	}
}

// MonteCarloResult summarizes the simulated path distribution per year and
// for the 10-year total.
type MonteCarloResult struct {
	Simulations int

	Mean   model.Series
	Median model.Series
	Std    model.Series
	P10    model.Series
	P25    model.Series
	P75    model.Series
	P90    model.Series

	TotalMean   float64
	TotalMedian float64
	TotalStd    float64
	TotalP10    float64
	TotalP90    float64
}

// MonteCarlo simulates N independent paths around a central deficit-effect
// series. Each path draws a correlated economic shock vector per year (the
// correlation matrix is Cholesky-factored once per call), adds independent
// policy and behavioral shocks, smooths the combined shock across years, and
// scales the central estimate by it.
func (c *Calculator) MonteCarlo(central model.Series, cfg MonteCarloConfig) (*MonteCarloResult, error) {
	if cfg.Simulations <= 0 {
		return nil, errors.New("simulations must be > 0")
	}
	n := central.Len()
	if n == 0 {
		return nil, errors.New("central series is empty")
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(shockCorrelation); !ok {
		// Only reachable if the constant matrix above is edited into a
		// non-positive-definite state.
		panic("uncertainty: shock correlation matrix is not positive definite")
	}
	var lower mat.TriDense
	chol.LTo(&lower)

	src := rand.NewSource(cfg.Seed)
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	// paths[i] collects the year-i value across simulations.
	paths := make([][]float64, n)
	for i := range paths {
		paths[i] = make([]float64, cfg.Simulations)
	}
	totals := make([]float64, cfg.Simulations)

	raw := mat.NewVecDense(4, nil)
	correlated := mat.NewVecDense(4, nil)

	for s := 0; s < cfg.Simulations; s++ {
		prev := 0.0
		total := 0.0
		for i := 0; i < n; i++ {
			for k := 0; k < 4; k++ {
				raw.SetVec(k, normal.Rand())
			}
			correlated.MulVec(&lower, raw)

			shock := gdpShockWeight*correlated.AtVec(0)*cfg.GDPShockStd +
				normal.Rand()*cfg.PolicyShockStd +
				normal.Rand()*cfg.BehavioralShockStd

			if i == 0 {
				prev = shock
			} else {
				prev = shockPersistence*prev + shockInnovation*shock
			}

			v := central.Values[i] * (1 + prev)
			paths[i][s] = v
			total += v
		}
		totals[s] = total
	}

	res := &MonteCarloResult{
		Simulations: cfg.Simulations,
		Mean:        model.NewSeries(central.StartYear, n),
		Median:      model.NewSeries(central.StartYear, n),
		Std:         model.NewSeries(central.StartYear, n),
		P10:         model.NewSeries(central.StartYear, n),
		P25:         model.NewSeries(central.StartYear, n),
		P75:         model.NewSeries(central.StartYear, n),
		P90:         model.NewSeries(central.StartYear, n),
	}

	for i := 0; i < n; i++ {
		vals := paths[i]
		sort.Float64s(vals)
		res.Mean.Values[i] = stat.Mean(vals, nil)
		res.Median.Values[i] = stat.Quantile(0.5, stat.Empirical, vals, nil)
		res.Std.Values[i] = stat.StdDev(vals, nil)
		res.P10.Values[i] = stat.Quantile(0.10, stat.Empirical, vals, nil)
		res.P25.Values[i] = stat.Quantile(0.25, stat.Empirical, vals, nil)
		res.P75.Values[i] = stat.Quantile(0.75, stat.Empirical, vals, nil)
		res.P90.Values[i] = stat.Quantile(0.90, stat.Empirical, vals, nil)
	}

	sort.Float64s(totals)
	res.TotalMean = stat.Mean(totals, nil)
	res.TotalMedian = stat.Quantile(0.5, stat.Empirical, totals, nil)
	res.TotalStd = stat.StdDev(totals, nil)
	res.TotalP10 = stat.Quantile(0.10, stat.Empirical, totals, nil)
	res.TotalP90 = stat.Quantile(0.90, stat.Empirical, totals, nil)

	return res, nil
}
