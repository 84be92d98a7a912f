package model

import "math"

// SpendingProvisions holds the spending-variant fields of a Policy.
type SpendingProvisions struct {
	// AnnualAmountBillions is the first-year spending change, $B. Signed:
	// negative models a cut.
	AnnualAmountBillions float64
	// RealGrowthRate compounds the amount in later active years.
	RealGrowthRate float64
	// GDPMultiplier feeds the dynamic model (1.0 = each dollar raises GDP by
	// a dollar on impact, before decay and crowding out).
	GDPMultiplier float64
	// OneTime restricts the outlay to the first active year.
	OneTime bool
}

// SpendingInYear returns the outlay change ($B) for one fiscal year:
// 0 when inactive; for one-time spending, 0 after the first active year;
// otherwise amount compounded at the real growth rate, scaled by phase-in.
func (s *SpendingProvisions) SpendingInYear(p *Policy, year int) float64 {
	if !p.IsActive(year) {
		return 0
	}
	sinceStart := year - p.StartYear
	if s.OneTime && sinceStart > 0 {
		return 0
	}
	grown := s.AnnualAmountBillions * math.Pow(1+s.RealGrowthRate, float64(sinceStart))
	return grown * p.PhaseInFactor(year)
}
