package model

// EconomicAssumptions holds the five forward-looking macro series the
// baseline generator compounds the projection with. Rates are fractions
// (0.02 = 2%), unemployment and participation are percent of the labor
// force / civilian population.
//
// Assumptions are supplied once at construction and never mutated.
type EconomicAssumptions struct {
	RealGDPGrowth      Series
	Inflation          Series
	UnemploymentRate   Series
	TenYearRate        Series
	LaborParticipation Series
}

// DefaultAssumptions returns the calibrated assumption set used when no
// explicit assumptions are supplied. The paths are flat-ish glides consistent
// with recent long-run projections: growth easing to 1.8%, inflation settling
// at 2.3%, the 10-year rate near 4%.
func DefaultAssumptions(startYear int) EconomicAssumptions {
	a := EconomicAssumptions{
		RealGDPGrowth:      NewSeries(startYear, DefaultHorizon),
		Inflation:          NewSeries(startYear, DefaultHorizon),
		UnemploymentRate:   NewSeries(startYear, DefaultHorizon),
		TenYearRate:        NewSeries(startYear, DefaultHorizon),
		LaborParticipation: NewSeries(startYear, DefaultHorizon),
	}
	for i := 0; i < DefaultHorizon; i++ {
		growth := 0.022 - 0.0005*float64(i)
		if growth < 0.018 {
			growth = 0.018
		}
		inflation := 0.025 - 0.0005*float64(i)
		if inflation < 0.023 {
			inflation = 0.023
		}
		a.RealGDPGrowth.Values[i] = growth
		a.Inflation.Values[i] = inflation
		a.UnemploymentRate.Values[i] = 4.2
		a.TenYearRate.Values[i] = 0.040
		a.LaborParticipation.Values[i] = 62.0
	}
	return a
}

// NominalGrowth returns real growth + inflation for year index i.
func (a EconomicAssumptions) NominalGrowth(i int) float64 {
	return a.RealGDPGrowth.Values[i] + a.Inflation.Values[i]
}
