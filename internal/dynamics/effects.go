package dynamics

import (
	"fmt"
	"math"

	"fiscal-score/internal/model"
)

// Rule-of-thumb conversion constants shared by every variant.
const (
	// jobsPerGDPPercent is an Okun's-law style mapping from a 1% GDP effect
	// to payroll jobs.
	jobsPerGDPPercent = 150_000

	// laborShareOfOutput weights labor-driven effects in long-run blends and
	// participation terms.
	laborShareOfOutput = 0.6

	// laborForceMillions sizes participation changes in people.
	laborForceMillions = 168.0

	// rateBpPerDeficitPoint is the interest-rate response, in percentage
	// points, per 1% of GDP of cumulative borrowing.
	rateBpPerDeficitPoint = 0.03
)

// Effects computes year-by-year macro feedback for a policy given its static
// plus behavioral deficit effect ($B, positive = deficit increase). The
// series must be aligned to the baseline. Dispatch is exhaustive over the
// closed policy kind set; an unknown kind is a typed error, never a silent
// zero.
func (m *Model) Effects(p *model.Policy, staticDeficit model.Series, baseline *model.BaselineProjection) (*model.DynamicEffects, error) {
	if !staticDeficit.Aligned(baseline.NominalGDP) {
		return nil, fmt.Errorf("%w: static effect (%d,%d) vs baseline (%d,%d)",
			model.ErrSeriesMismatch, staticDeficit.StartYear, staticDeficit.Len(),
			baseline.StartYear, baseline.Horizon())
	}

	adj := m.adjusted // snapshot by value; evaluation never mutates the model

	var eff *model.DynamicEffects
	var err error
	switch p.Kind {
	case model.KindTax:
		eff, err = m.taxEffects(p, staticDeficit, baseline, adj)
	case model.KindSpending:
		eff, err = m.spendingEffects(p, staticDeficit, baseline, adj)
	case model.KindTransfer:
		eff, err = m.transferEffects(p, staticDeficit, baseline, adj)
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownPolicyKind, p.Kind)
	}
	if err != nil {
		return nil, err
	}

	m.finish(eff, staticDeficit, baseline, adj)
	return eff, nil
}

// convolve applies the decaying-multiplier convolution: a dollar of stimulus
// in year j still echoes into GDP in year i >= j at weight decay^(i-j),
// scaled by the policy's phase-in in the receiving year.
func convolve(static model.Series, mult, decay float64, p *model.Policy) []float64 {
	n := static.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		factor := p.PhaseInFactor(static.Year(i))
		if factor == 0 {
			continue
		}
		sum := 0.0
		for j := 0; j <= i; j++ {
			sum += static.Values[j] * mult * math.Pow(decay, float64(i-j))
		}
		out[i] = sum * factor
	}
	return out
}

// cumulative returns the running sum of a series' values.
func cumulative(static model.Series) []float64 {
	out := make([]float64, static.Len())
	run := 0.0
	for i, v := range static.Values {
		run += v
		out[i] = run
	}
	return out
}

// taxEffects blends a demand-side convolution (only when the policy is a net
// tax cut) with a supply-side labor term, front-weighting demand and letting
// supply dominate later years. Corporate rate changes additionally build a
// capital-stock effect that feeds investment. Capital-gains rate changes
// would belong to the same capital channel, but the budget taxonomy folds
// them into individual income tax, so only the corporate category triggers
// it here.
func (m *Model) taxEffects(p *model.Policy, static model.Series, baseline *model.BaselineProjection, adj Parameters) (*model.DynamicEffects, error) {
	eff := model.NewDynamicEffects(static.StartYear, static.Len())
	tax := p.Tax

	// Demand-side stimulus only flows from a net cut: a net increase drains
	// demand through the same channel with opposite sign, which the deficit
	// series sign already carries, but no extra demand kick applies.
	var demand []float64
	if static.Sum() > 0 {
		demand = convolve(static, adj.TaxMultiplier, adj.Decay, p)
	} else {
		demand = make([]float64, static.Len())
	}

	isCapitalTax := p.Category == model.CategoryCorporateIncomeTax

	for i := 0; i < static.Len(); i++ {
		year := static.Year(i)
		factor := p.PhaseInFactor(year)

		supply := -tax.RateChange * adj.LaborSupplyElasticity * baseline.NominalGDP.Values[i] * factor

		wDemand := 1.0 - 0.1*float64(i)
		if wDemand < 0.2 {
			wDemand = 0.2
		}
		gdp := wDemand*demand[i] + (1-wDemand)*supply

		if isCapitalTax && factor > 0 {
			// After-tax return moves opposite the rate; the capital stock
			// builds toward its new level over roughly five years.
			capitalPct := -tax.RateChange * adj.CapitalElasticity * float64(i+1) / 5.0 * factor
			eff.CapitalStockChange.Values[i] = capitalPct * baseline.NominalGDP.Values[i]
			eff.InvestmentChange.Values[i] = capitalPct * adj.InvestmentShareOfGDP * baseline.NominalGDP.Values[i]
			gdp += eff.InvestmentChange.Values[i]
		}

		eff.GDPLevelChange.Values[i] = gdp
	}
	return eff, nil
}

// spendingEffects is the convolution directly, offset at 50% pass-through by
// crowding out on the cumulative borrowed stock.
func (m *Model) spendingEffects(p *model.Policy, static model.Series, baseline *model.BaselineProjection, adj Parameters) (*model.DynamicEffects, error) {
	eff := model.NewDynamicEffects(static.StartYear, static.Len())

	mult := adj.SpendingMultiplier
	if p.Spending.GDPMultiplier > 0 {
		// A policy-declared multiplier replaces the base but still carries
		// the condition adjustment.
		mult = p.Spending.GDPMultiplier * (adj.SpendingMultiplier / m.base.SpendingMultiplier)
	}

	conv := convolve(static, mult, adj.Decay, p)
	cum := cumulative(static)

	for i := range conv {
		crowdOut := cum[i] * adj.CrowdOutRate * adj.InvestmentElasticity * adj.InvestmentShareOfGDP
		eff.InvestmentChange.Values[i] = -crowdOut
		eff.GDPLevelChange.Values[i] = conv[i] - 0.5*crowdOut
	}
	return eff, nil
}

// transferEffects uses the transfer multiplier (transfers leak more to
// saving than direct purchases) plus a participation term when declared.
func (m *Model) transferEffects(p *model.Policy, static model.Series, baseline *model.BaselineProjection, adj Parameters) (*model.DynamicEffects, error) {
	eff := model.NewDynamicEffects(static.StartYear, static.Len())
	tr := p.Transfer

	conv := convolve(static, adj.TransferMultiplier, adj.Decay, p)
	for i := range conv {
		gdp := conv[i]
		if tr.LaborForceEffect != 0 {
			factor := p.PhaseInFactor(static.Year(i))
			eff.LaborForceChange.Values[i] = tr.LaborForceEffect * laborForceMillions * factor
			gdp += tr.LaborForceEffect * laborShareOfOutput * baseline.NominalGDP.Values[i] * factor
		}
		eff.GDPLevelChange.Values[i] = gdp
	}
	return eff, nil
}

// finish derives the shared downstream series every variant reports the same
// way: percent-of-GDP, employment, interest-rate pressure, revenue feedback.
func (m *Model) finish(eff *model.DynamicEffects, static model.Series, baseline *model.BaselineProjection, adj Parameters) {
	cum := cumulative(static)
	for i := range eff.GDPLevelChange.Values {
		gdp := baseline.NominalGDP.Values[i]
		pct := eff.GDPLevelChange.Values[i] / gdp * 100

		eff.GDPPercentChange.Values[i] = pct
		eff.EmploymentChange.Values[i] = pct * jobsPerGDPPercent
		eff.InterestRateChange.Values[i] = cum[i] / gdp * 100 * rateBpPerDeficitPoint
		eff.RevenueFeedback.Values[i] = eff.GDPLevelChange.Values[i] * adj.RevenueFeedbackRate
	}
}

// LongRun is the beyond-horizon extrapolation of a dynamic result.
type LongRun struct {
	GDPLevelChange   float64 `json:"gdp_level_change"`
	GDPPercentChange float64 `json:"gdp_percent_change"`
}

// LongRunEffects extrapolates past the scoring window. Tax policies settle
// to a labor/capital share-weighted blend of their final-year supply-side
// and capital effects; everything else halves its final-year GDP effect as a
// decay assumption.
func (m *Model) LongRunEffects(p *model.Policy, eff *model.DynamicEffects, baseline *model.BaselineProjection) LongRun {
	n := eff.GDPLevelChange.Len()
	if n == 0 {
		return LongRun{}
	}
	last := n - 1
	finalGDP := baseline.NominalGDP.Values[last]

	var level float64
	if p.Kind == model.KindTax {
		factor := p.PhaseInFactor(eff.GDPLevelChange.Year(last))
		supply := -p.Tax.RateChange * m.adjusted.LaborSupplyElasticity * finalGDP * factor
		capital := eff.CapitalStockChange.Values[last]
		level = laborShareOfOutput*supply + (1-laborShareOfOutput)*capital
	} else {
		level = eff.GDPLevelChange.Values[last] / 2
	}

	return LongRun{
		GDPLevelChange:   level,
		GDPPercentChange: level / finalGDP * 100,
	}
}
