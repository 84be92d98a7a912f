package model

// DefaultETI is the elasticity of taxable income applied when a tax policy
// does not declare its own.
const DefaultETI = 0.25

// assumedEffectiveRate is the average effective rate used by the coarse
// revenue estimator when bracket-level data is unavailable.
const assumedEffectiveRate = 0.18

// TaxProvisions holds the tax-variant fields of a Policy.
//
// RateChange is signed and expressed as a fraction of income (-0.02 = a two
// percentage point cut). IncomeThreshold is the AGI floor above which the
// change applies; exactly 0 means the change applies to all income.
type TaxProvisions struct {
	RateChange      float64
	IncomeThreshold float64

	// CreditChangeBillions and DeductionChangeBillions are annual aggregate
	// changes. A credit reduces revenue dollar for dollar; a deduction
	// reduces it at the average marginal rate.
	CreditChangeBillions    float64
	DeductionChangeBillions float64

	// Precise-estimator inputs. When both are set (manually or from the
	// filers-above-threshold query) the bracket-aware formula is used;
	// otherwise the coarse share-of-baseline fallback applies.
	AffectedTaxpayersMillions float64
	AvgTaxableIncomeInBracket float64

	// ElasticityOfTaxableIncome defaults to DefaultETI when 0.
	ElasticityOfTaxableIncome float64
}

// ETI returns the declared elasticity or the default.
func (t *TaxProvisions) ETI() float64 {
	if t.ElasticityOfTaxableIncome != 0 {
		return t.ElasticityOfTaxableIncome
	}
	return DefaultETI
}

// hasBracketData reports whether the precise estimator can run.
func (t *TaxProvisions) hasBracketData() bool {
	return t.AffectedTaxpayersMillions > 0 && t.AvgTaxableIncomeInBracket > 0
}

// StaticRevenueChange estimates the revenue effect ($B) of the policy in one
// fiscal year, before any behavioral response. Positive = revenue gain.
func (t *TaxProvisions) StaticRevenueChange(p *Policy, year int, baseline *BaselineProjection) float64 {
	factor := p.PhaseInFactor(year)
	if factor == 0 {
		return 0
	}

	var rate float64
	if t.RateChange != 0 {
		if t.hasBracketData() {
			// Precise: rate x income above the threshold x affected filers.
			marginal := t.AvgTaxableIncomeInBracket - t.IncomeThreshold
			if t.IncomeThreshold == 0 {
				marginal = t.AvgTaxableIncomeInBracket
			}
			rate = t.RateChange * marginal * t.AffectedTaxpayersMillions * 1e6 / 1e9
		} else {
			// Coarse: scale the baseline take by the affected income share.
			baseRev := baseline.Revenues[CategoryIndividualIncomeTax].At(year)
			rate = baseRev * affectedShare(t.IncomeThreshold) * t.RateChange / assumedEffectiveRate
		}
	}

	// Credits and deductions reduce revenue; the deduction passes through at
	// an average marginal rate of 22%.
	rate -= t.CreditChangeBillions
	rate -= t.DeductionChangeBillions * 0.22

	return rate * factor
}

// BehavioralOffset returns the deficit-side behavioral response for a static
// revenue change: taxpayers shift reportable income against the rate change,
// clawing back half the elasticity-implied response.
func (t *TaxProvisions) BehavioralOffset(staticRevenue float64) float64 {
	return staticRevenue * t.ETI() * 0.5
}

// affectedShare is the empirical step function mapping an income threshold to
// the share of individual income-tax revenue above it.
func affectedShare(threshold float64) float64 {
	switch {
	case threshold <= 0:
		return 1.0
	case threshold >= 1_000_000:
		return 0.10
	case threshold >= 500_000:
		return 0.20
	case threshold >= 200_000:
		return 0.40
	case threshold >= 100_000:
		return 0.60
	default:
		return 0.80
	}
}
