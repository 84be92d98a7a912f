package model

// DynamicEffects is the macroeconomic feedback from a scored policy, aligned
// to the same years as the triggering result.
//
// Units: GDPLevelChange, CapitalStockChange, InvestmentChange and
// RevenueFeedback are $B; GDPPercentChange and InterestRateChange are
// percentage points; EmploymentChange is jobs; LaborForceChange is millions
// of people.
type DynamicEffects struct {
	GDPLevelChange     Series
	GDPPercentChange   Series
	EmploymentChange   Series
	LaborForceChange   Series
	CapitalStockChange Series
	InvestmentChange   Series
	InterestRateChange Series
	RevenueFeedback    Series
}

// NewDynamicEffects allocates zeroed effect series.
func NewDynamicEffects(startYear, horizon int) *DynamicEffects {
	return &DynamicEffects{
		GDPLevelChange:     NewSeries(startYear, horizon),
		GDPPercentChange:   NewSeries(startYear, horizon),
		EmploymentChange:   NewSeries(startYear, horizon),
		LaborForceChange:   NewSeries(startYear, horizon),
		CapitalStockChange: NewSeries(startYear, horizon),
		InvestmentChange:   NewSeries(startYear, horizon),
		InterestRateChange: NewSeries(startYear, horizon),
		RevenueFeedback:    NewSeries(startYear, horizon),
	}
}

// AddInto accumulates o's fields into d, field by field. Used for package
// scoring, which sums member effects directly: this double-counts shared
// macro feedback across members and is preserved as a documented
// simplification of the methodology rather than corrected.
func (d *DynamicEffects) AddInto(o *DynamicEffects) error {
	pairs := [][2]*Series{
		{&d.GDPLevelChange, &o.GDPLevelChange},
		{&d.GDPPercentChange, &o.GDPPercentChange},
		{&d.EmploymentChange, &o.EmploymentChange},
		{&d.LaborForceChange, &o.LaborForceChange},
		{&d.CapitalStockChange, &o.CapitalStockChange},
		{&d.InvestmentChange, &o.InvestmentChange},
		{&d.InterestRateChange, &o.InterestRateChange},
		{&d.RevenueFeedback, &o.RevenueFeedback},
	}
	for _, pr := range pairs {
		sum, err := pr[0].Add(*pr[1])
		if err != nil {
			return err
		}
		*pr[0] = sum
	}
	return nil
}
