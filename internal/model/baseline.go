package model

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory indicates a budget category name that is not part of the
// projection.
var ErrUnknownCategory = errors.New("unknown budget category")

// BudgetCategory names one revenue or outlay line of the projection.
type BudgetCategory string

const (
	CategoryIndividualIncomeTax BudgetCategory = "individual_income_tax"
	CategoryCorporateIncomeTax  BudgetCategory = "corporate_income_tax"
	CategoryPayrollTaxes        BudgetCategory = "payroll_taxes"
	CategoryOtherRevenue        BudgetCategory = "other_revenue"

	CategorySocialSecurity          BudgetCategory = "social_security"
	CategoryMedicare                BudgetCategory = "medicare"
	CategoryMedicaid                BudgetCategory = "medicaid"
	CategoryOtherMandatory          BudgetCategory = "other_mandatory"
	CategoryDefenseDiscretionary    BudgetCategory = "defense_discretionary"
	CategoryNonDefenseDiscretionary BudgetCategory = "nondefense_discretionary"
	CategoryNetInterest             BudgetCategory = "net_interest"
)

// RevenueCategories lists the revenue lines in display order.
var RevenueCategories = []BudgetCategory{
	CategoryIndividualIncomeTax,
	CategoryCorporateIncomeTax,
	CategoryPayrollTaxes,
	CategoryOtherRevenue,
}

// OutlayCategories lists the outlay lines in display order.
var OutlayCategories = []BudgetCategory{
	CategorySocialSecurity,
	CategoryMedicare,
	CategoryMedicaid,
	CategoryOtherMandatory,
	CategoryDefenseDiscretionary,
	CategoryNonDefenseDiscretionary,
	CategoryNetInterest,
}

// IsOutlayCategory reports whether c names one of the outlay lines.
func IsOutlayCategory(c BudgetCategory) bool {
	for _, o := range OutlayCategories {
		if o == c {
			return true
		}
	}
	return false
}

// BaselineProjection is a 10-year current-law budget and economic projection.
// All dollar series are in $B nominal. Constructed once by the baseline
// generator; treated as immutable afterwards. ApplyPolicyChange returns a
// shifted copy rather than mutating in place.
type BaselineProjection struct {
	StartYear int

	NominalGDP Series
	RealGDP    Series

	Revenues map[BudgetCategory]Series
	Outlays  map[BudgetCategory]Series

	// Debt is debt held by the public at end of each year, seeded by the
	// base-year level and accumulated from the deficit path.
	Debt Series
}

// NewBaselineProjection allocates an all-zero projection. Every category gets
// its own freshly allocated series; nothing is shared between instances.
func NewBaselineProjection(startYear, horizon int) *BaselineProjection {
	b := &BaselineProjection{
		StartYear:  startYear,
		NominalGDP: NewSeries(startYear, horizon),
		RealGDP:    NewSeries(startYear, horizon),
		Revenues:   make(map[BudgetCategory]Series, len(RevenueCategories)),
		Outlays:    make(map[BudgetCategory]Series, len(OutlayCategories)),
		Debt:       NewSeries(startYear, horizon),
	}
	for _, c := range RevenueCategories {
		b.Revenues[c] = NewSeries(startYear, horizon)
	}
	for _, c := range OutlayCategories {
		b.Outlays[c] = NewSeries(startYear, horizon)
	}
	return b
}

func (b *BaselineProjection) Horizon() int { return b.NominalGDP.Len() }

// Years returns the ordered fiscal years the projection covers.
func (b *BaselineProjection) Years() []int { return b.NominalGDP.Years() }

// TotalRevenues sums the four revenue categories per year.
func (b *BaselineProjection) TotalRevenues() Series {
	total := NewSeries(b.StartYear, b.Horizon())
	for _, c := range RevenueCategories {
		for i, v := range b.Revenues[c].Values {
			total.Values[i] += v
		}
	}
	return total
}

// TotalOutlays sums the seven outlay categories per year.
func (b *BaselineProjection) TotalOutlays() Series {
	total := NewSeries(b.StartYear, b.Horizon())
	for _, c := range OutlayCategories {
		for i, v := range b.Outlays[c].Values {
			total.Values[i] += v
		}
	}
	return total
}

// Deficit returns outlays minus revenues per year (positive = deficit).
func (b *BaselineProjection) Deficit() Series {
	rev := b.TotalRevenues()
	out := b.TotalOutlays()
	d := NewSeries(b.StartYear, b.Horizon())
	for i := range d.Values {
		d.Values[i] = out.Values[i] - rev.Values[i]
	}
	return d
}

// PrimaryDeficit is the deficit excluding net interest.
func (b *BaselineProjection) PrimaryDeficit() Series {
	d := b.Deficit()
	ni := b.Outlays[CategoryNetInterest]
	for i := range d.Values {
		d.Values[i] -= ni.Values[i]
	}
	return d
}

// DeficitToGDP returns the deficit as a fraction of nominal GDP per year.
func (b *BaselineProjection) DeficitToGDP() Series {
	d := b.Deficit()
	for i := range d.Values {
		d.Values[i] /= b.NominalGDP.Values[i]
	}
	return d
}

// DebtToGDP returns debt held by the public as a fraction of nominal GDP.
func (b *BaselineProjection) DebtToGDP() Series {
	d := b.Debt.Clone()
	for i := range d.Values {
		d.Values[i] /= b.NominalGDP.Values[i]
	}
	return d
}

// Clone returns a deep copy of the projection.
func (b *BaselineProjection) Clone() *BaselineProjection {
	out := &BaselineProjection{
		StartYear:  b.StartYear,
		NominalGDP: b.NominalGDP.Clone(),
		RealGDP:    b.RealGDP.Clone(),
		Revenues:   make(map[BudgetCategory]Series, len(b.Revenues)),
		Outlays:    make(map[BudgetCategory]Series, len(b.Outlays)),
		Debt:       b.Debt.Clone(),
	}
	for c, s := range b.Revenues {
		out.Revenues[c] = s.Clone()
	}
	for c, s := range b.Outlays {
		out.Outlays[c] = s.Clone()
	}
	return out
}

// ApplyPolicyChange returns a new projection with the named category shifted
// by delta per year. The receiver is never mutated. Debt is re-accumulated
// from the shifted deficit path so the debt identity keeps holding.
func (b *BaselineProjection) ApplyPolicyChange(category BudgetCategory, delta Series) (*BaselineProjection, error) {
	if !delta.Aligned(b.NominalGDP) {
		return nil, fmt.Errorf("%w: delta (%d,%d) vs projection (%d,%d)",
			ErrSeriesMismatch, delta.StartYear, delta.Len(), b.StartYear, b.Horizon())
	}

	out := b.Clone()
	switch {
	case isRevenueCategory(category):
		s := out.Revenues[category]
		for i, v := range delta.Values {
			s.Values[i] += v
		}
		out.Revenues[category] = s
	case isOutlayCategory(category):
		s := out.Outlays[category]
		for i, v := range delta.Values {
			s.Values[i] += v
		}
		out.Outlays[category] = s
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	// Re-run the debt accumulation against the new deficit path. The base
	// debt level (debt[0] - deficit[0]) is preserved from the original.
	baseDebt := b.Debt.Values[0] - b.Deficit().Values[0]
	deficit := out.Deficit()
	prev := baseDebt
	for i := range out.Debt.Values {
		prev += deficit.Values[i]
		out.Debt.Values[i] = prev
	}
	return out, nil
}

func isRevenueCategory(c BudgetCategory) bool {
	for _, rc := range RevenueCategories {
		if c == rc {
			return true
		}
	}
	return false
}

func isOutlayCategory(c BudgetCategory) bool {
	for _, oc := range OutlayCategories {
		if c == oc {
			return true
		}
	}
	return false
}
