package model

import "testing"

// calibBaseline builds a small hand-rolled projection for variant tests.
// Values are flat across the horizon; only relative arithmetic matters here.
func calibBaseline(t *testing.T) *BaselineProjection {
	t.Helper()
	const horizon = 10
	flat := func(v float64) Series {
		s := NewSeries(2026, horizon)
		for i := range s.Values {
			s.Values[i] = v
		}
		return s
	}
	b := &BaselineProjection{
		StartYear:  2026,
		NominalGDP: flat(28_500),
		RealGDP:    flat(23_000),
		Revenues:   map[BudgetCategory]Series{},
		Outlays:    map[BudgetCategory]Series{},
		Debt:       flat(28_000),
	}
	b.Revenues[CategoryIndividualIncomeTax] = flat(2_500)
	b.Revenues[CategoryCorporateIncomeTax] = flat(525)
	b.Revenues[CategoryPayrollTaxes] = flat(1_700)
	b.Revenues[CategoryOtherRevenue] = flat(256)
	b.Outlays[CategorySocialSecurity] = flat(1_450)
	b.Outlays[CategoryMedicare] = flat(1_050)
	b.Outlays[CategoryMedicaid] = flat(627)
	b.Outlays[CategoryOtherMandatory] = flat(1_083)
	b.Outlays[CategoryDefenseDiscretionary] = flat(855)
	b.Outlays[CategoryNonDefenseDiscretionary] = flat(940)
	b.Outlays[CategoryNetInterest] = flat(850)
	return b
}
