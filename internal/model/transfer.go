package model

// avgBenefitPerBeneficiary is the annual allocation, in dollars, assumed for
// each newly eligible beneficiary when no explicit cost override is supplied.
const avgBenefitPerBeneficiary = 18_000

// TransferProvisions holds the transfer-variant fields of a Policy
// (Social Security / Medicare / Medicaid style benefit changes).
type TransferProvisions struct {
	// BenefitChangePercent scales the baseline cost of the affected program
	// (0.05 = a 5% across-the-board benefit increase).
	BenefitChangePercent float64
	// BenefitChangeBillions is an additive flat change, $B per year.
	BenefitChangeBillions float64
	// EligibilityAgeChange in years; negative expands eligibility. Only used
	// for description/feedback purposes; its cost shows up through
	// NewBeneficiariesMillions.
	EligibilityAgeChange float64
	// NewBeneficiariesMillions is the count of newly eligible people.
	NewBeneficiariesMillions float64
	// LaborForceEffect is the fractional change in labor-force participation
	// induced by the transfer (negative = people exit the labor force). Used
	// only by the dynamic model.
	LaborForceEffect float64
	// CostOverrideBillions, when non-nil, replaces the derived annual cost.
	CostOverrideBillions *float64
}

// CostInYear returns the outlay change ($B) for one fiscal year. The default
// derivation is baseline program cost x percent change, plus a per-head
// allocation for new beneficiaries, unless an explicit override is supplied.
func (t *TransferProvisions) CostInYear(p *Policy, year int, baseline *BaselineProjection) float64 {
	factor := p.PhaseInFactor(year)
	if factor == 0 {
		return 0
	}
	if t.CostOverrideBillions != nil {
		return *t.CostOverrideBillions * factor
	}

	cost := t.BenefitChangeBillions
	if t.BenefitChangePercent != 0 {
		cost += t.baselineCost(p, year, baseline) * t.BenefitChangePercent
	}
	if t.NewBeneficiariesMillions != 0 {
		cost += t.NewBeneficiariesMillions * 1e6 * avgBenefitPerBeneficiary / 1e9
	}
	return cost * factor
}

// baselineCost reads the affected program's baseline outlay. Validate
// guarantees a percent-based transfer carries an outlay category, so the
// missing-category arm is reachable only on unvalidated policies.
func (t *TransferProvisions) baselineCost(p *Policy, year int, baseline *BaselineProjection) float64 {
	s, ok := baseline.Outlays[p.Category]
	if !ok {
		return 0
	}
	return s.At(year)
}
