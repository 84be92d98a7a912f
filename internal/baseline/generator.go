// Package baseline builds 10-year current-law budget projections, from real
// statistical inputs when available and from calibrated constants otherwise.
package baseline

import (
	"log/slog"

	"fiscal-score/internal/model"
)

// Source tags which input feed a projection was built from, so callers and
// tests can tell "real data used" from "fallback used" instead of relying on
// log side channels.
type Source string

const (
	SourceStatistical Source = "statistical"
	SourceCalibrated  Source = "calibrated"
)

// StatisticalSource is the slice of the external data collaborators the
// generator consumes: two scalars for the most recent available year. Either
// call may fail; the generator degrades to calibrated constants and never
// propagates the error.
type StatisticalSource interface {
	TotalIndividualIncomeTax(year int) (float64, error)
	NominalGDP(year int) (float64, error)
}

// Calibrated base-year levels ($B) and share ratios used when statistical
// data is unavailable. Levels approximate FY2024 actuals.
const (
	calibratedBaseGDP       = 28_500.0
	calibratedBaseIncomeTax = 2_500.0

	// Revenue shares: corporate and payroll scale with the individual
	// income-tax take; other receipts scale with GDP.
	corporateShareOfIncomeTax = 0.21
	payrollShareOfIncomeTax   = 0.68
	otherRevenueShareOfGDP    = 0.009

	// Outlay shares of GDP.
	socialSecurityShareOfGDP = 0.051
	medicareShareOfGDP       = 0.037
	medicaidShareOfGDP       = 0.022
	otherMandatoryShareOfGDP = 0.038
	defenseShareOfGDP        = 0.030
	nonDefenseShareOfGDP     = 0.033

	// Debt held by the public at the end of the base year.
	baseDebtShareOfGDP = 0.98

	// bracketCreepPremium is the extra nominal growth of individual receipts
	// from real income drifting into higher brackets, in fraction per year.
	bracketCreepPremium = 0.003

	// effectivePortfolioRateShare discounts the 10-year rate to the blended
	// rate on the outstanding debt stock, whose average maturity is shorter
	// than the benchmark.
	effectivePortfolioRateShare = 0.75
)

// Generator builds BaselineProjections for a start year.
type Generator struct {
	Assumptions model.EconomicAssumptions
	Source      StatisticalSource
	Logger      *slog.Logger
}

// New returns a generator with the given assumptions. src may be nil, in
// which case every build uses the calibrated constants.
func New(assumptions model.EconomicAssumptions, src StatisticalSource) *Generator {
	return &Generator{
		Assumptions: assumptions,
		Source:      src,
		Logger:      slog.Default(),
	}
}

// Build produces the current-law projection for startYear and reports which
// input feed it used. Real-data mode asks the statistical source for the
// prior year's individual income-tax total and nominal GDP; if either call
// fails for any reason the generator falls back to the calibrated base. The
// fallback never raises: data unavailability is an availability guarantee
// here, not an error.
func (g *Generator) Build(startYear int, useRealData bool) (*model.BaselineProjection, Source) {
	baseGDP := calibratedBaseGDP
	baseIncomeTax := calibratedBaseIncomeTax
	source := SourceCalibrated

	if useRealData && g.Source != nil {
		dataYear := startYear - 1
		gdp, gdpErr := g.Source.NominalGDP(dataYear)
		rev, revErr := g.Source.TotalIndividualIncomeTax(dataYear)
		if gdpErr == nil && revErr == nil && gdp > 0 && rev > 0 {
			baseGDP = gdp
			baseIncomeTax = rev
			source = SourceStatistical
		} else {
			g.Logger.Warn("statistical data unavailable, using calibrated baseline",
				"year", dataYear, "gdp_err", gdpErr, "revenue_err", revErr)
		}
	}

	return g.project(startYear, baseGDP, baseIncomeTax), source
}

// project compounds the base-year levels forward under the assumptions.
func (g *Generator) project(startYear int, baseGDP, baseIncomeTax float64) *model.BaselineProjection {
	a := g.Assumptions
	horizon := a.RealGDPGrowth.Len()
	b := model.NewBaselineProjection(startYear, horizon)

	// Base-year levels for each category from the share ratios.
	base := map[model.BudgetCategory]float64{
		model.CategoryIndividualIncomeTax:     baseIncomeTax,
		model.CategoryCorporateIncomeTax:      baseIncomeTax * corporateShareOfIncomeTax,
		model.CategoryPayrollTaxes:            baseIncomeTax * payrollShareOfIncomeTax,
		model.CategoryOtherRevenue:            baseGDP * otherRevenueShareOfGDP,
		model.CategorySocialSecurity:          baseGDP * socialSecurityShareOfGDP,
		model.CategoryMedicare:                baseGDP * medicareShareOfGDP,
		model.CategoryMedicaid:                baseGDP * medicaidShareOfGDP,
		model.CategoryOtherMandatory:          baseGDP * otherMandatoryShareOfGDP,
		model.CategoryDefenseDiscretionary:    baseGDP * defenseShareOfGDP,
		model.CategoryNonDefenseDiscretionary: baseGDP * nonDefenseShareOfGDP,
	}

	gdp := baseGDP
	real := baseGDP
	for i := 0; i < horizon; i++ {
		gdp *= 1 + a.NominalGrowth(i)
		real *= 1 + a.RealGDPGrowth.Values[i]
		b.NominalGDP.Values[i] = gdp
		b.RealGDP.Values[i] = real

		for cat, level := range base {
			level *= 1 + g.categoryGrowth(cat, i)
			base[cat] = level
			if cat == model.CategoryIndividualIncomeTax ||
				cat == model.CategoryCorporateIncomeTax ||
				cat == model.CategoryPayrollTaxes ||
				cat == model.CategoryOtherRevenue {
				b.Revenues[cat].Values[i] = level
			} else {
				b.Outlays[cat].Values[i] = level
			}
		}
	}

	g.accumulateDebtAndInterest(b, baseGDP*baseDebtShareOfGDP)
	return b
}

// categoryGrowth returns the nominal growth rate of a budget line in year
// index i. Health programs outrun GDP; defense grows below inflation under
// caps; individual receipts carry the bracket-creep premium.
func (g *Generator) categoryGrowth(cat model.BudgetCategory, i int) float64 {
	nominal := g.Assumptions.NominalGrowth(i)
	inflation := g.Assumptions.Inflation.Values[i]

	switch cat {
	case model.CategoryIndividualIncomeTax:
		return nominal + bracketCreepPremium
	case model.CategoryCorporateIncomeTax, model.CategoryPayrollTaxes:
		return nominal
	case model.CategoryOtherRevenue:
		return inflation
	case model.CategorySocialSecurity:
		return nominal + 0.005
	case model.CategoryMedicare:
		return nominal + 0.015
	case model.CategoryMedicaid:
		return nominal + 0.010
	case model.CategoryOtherMandatory:
		return inflation + 0.005
	case model.CategoryDefenseDiscretionary:
		return inflation - 0.005
	case model.CategoryNonDefenseDiscretionary:
		return inflation
	default:
		return nominal
	}
}

// accumulateDebtAndInterest fills in net interest and the debt path. Net
// interest for year t is the average of debt[t-1] and debt[t] times the
// effective rate, which makes debt[t] implicit in its own interest bill:
//
//	debt[t] = debt[t-1] + primary[t] + r*(debt[t-1]+debt[t])/2
//
// solved in closed form per year.
func (g *Generator) accumulateDebtAndInterest(b *model.BaselineProjection, baseDebt float64) {
	prev := baseDebt
	for i := 0; i < b.Horizon(); i++ {
		r := g.Assumptions.TenYearRate.Values[i] * effectivePortfolioRateShare

		primary := -b.TotalRevenues().Values[i]
		for _, cat := range model.OutlayCategories {
			if cat == model.CategoryNetInterest {
				continue
			}
			primary += b.Outlays[cat].Values[i]
		}

		debt := (prev + primary + r*prev/2) / (1 - r/2)
		interest := r * (prev + debt) / 2

		b.Outlays[model.CategoryNetInterest].Values[i] = interest
		b.Debt.Values[i] = debt
		prev = debt
	}
}

// AdjustForPolicy returns a "baseline + this policy" view without going
// through the full scorer: the named category shifted by delta, debt and
// interest left as re-accumulated by the projection itself.
func (g *Generator) AdjustForPolicy(b *model.BaselineProjection, category model.BudgetCategory, delta model.Series) (*model.BaselineProjection, error) {
	return b.ApplyPolicyChange(category, delta)
}
