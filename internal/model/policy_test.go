package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taxPolicy() *Policy {
	return &Policy{
		Name:          "rate change",
		Category:      CategoryIndividualIncomeTax,
		StartYear:     2026,
		DurationYears: 10,
		Kind:          KindTax,
		Tax:           &TaxProvisions{RateChange: -0.02},
	}
}

func TestPolicy_ValidateKindPairing(t *testing.T) {
	p := taxPolicy()
	require.NoError(t, p.Validate())

	// Provisions not matching the kind
	p.Spending = &SpendingProvisions{AnnualAmountBillions: 10}
	assert.ErrorIs(t, p.Validate(), ErrUnknownPolicyKind)

	// Kind outside the closed set
	q := taxPolicy()
	q.Kind = "subsidy"
	assert.ErrorIs(t, q.Validate(), ErrUnknownPolicyKind)

	// Missing provisions entirely
	r := taxPolicy()
	r.Tax = nil
	assert.ErrorIs(t, r.Validate(), ErrUnknownPolicyKind)
}

func TestPolicy_ValidateRequiredFields(t *testing.T) {
	p := taxPolicy()
	p.Name = ""
	assert.Error(t, p.Validate())

	p = taxPolicy()
	p.StartYear = 0
	assert.Error(t, p.Validate())

	p = taxPolicy()
	p.DurationYears = 0
	assert.Error(t, p.Validate())
}

func TestPolicy_IsActiveWindow(t *testing.T) {
	p := taxPolicy()
	p.DurationYears = 5

	assert.False(t, p.IsActive(2025))
	assert.True(t, p.IsActive(2026))
	// Without sunset the policy is permanent
	assert.True(t, p.IsActive(2031))

	p.Sunset = true
	assert.True(t, p.IsActive(2030))
	assert.False(t, p.IsActive(2031))
}

func TestPolicy_PhaseInFactorRampsToOne(t *testing.T) {
	p := taxPolicy()
	p.PhaseInYears = 3

	assert.Equal(t, 0.0, p.PhaseInFactor(2025), "inactive year")
	assert.InDelta(t, 1.0/3.0, p.PhaseInFactor(2026), 1e-12)
	assert.InDelta(t, 2.0/3.0, p.PhaseInFactor(2027), 1e-12)
	assert.Equal(t, 1.0, p.PhaseInFactor(2028))
	assert.Equal(t, 1.0, p.PhaseInFactor(2035))

	// Monotone and bounded over the whole window
	prev := 0.0
	for year := 2026; year <= 2035; year++ {
		f := p.PhaseInFactor(year)
		assert.GreaterOrEqual(t, f, prev, "factor must not decrease")
		assert.LessOrEqual(t, f, 1.0)
		prev = f
	}
}

func TestPolicy_PhaseInFactorImmediateWhenShort(t *testing.T) {
	p := taxPolicy()
	for _, phase := range []int{0, 1} {
		p.PhaseInYears = phase
		assert.Equal(t, 1.0, p.PhaseInFactor(2026))
	}
}

func TestPolicy_SunsetZeroesPhaseInFactor(t *testing.T) {
	p := taxPolicy()
	p.DurationYears = 3
	p.Sunset = true
	assert.Equal(t, 1.0, p.PhaseInFactor(2028))
	assert.Equal(t, 0.0, p.PhaseInFactor(2029))
}

func TestTaxProvisions_PreciseEstimator(t *testing.T) {
	p := taxPolicy()
	p.Tax = &TaxProvisions{
		RateChange:                -0.02,
		IncomeThreshold:           400_000,
		AffectedTaxpayersMillions: 2.0,
		AvgTaxableIncomeInBracket: 600_000,
	}

	// -0.02 x (600K - 400K) x 2.0M filers = -$8.0B per year
	got := p.Tax.StaticRevenueChange(p, 2026, nil)
	assert.InDelta(t, -8.0, got, 1e-9)

	// Behavioral offset claws back half the elasticity-implied response:
	// -8.0 x 0.25 x 0.5 = -1.0
	assert.InDelta(t, -1.0, p.Tax.BehavioralOffset(got), 1e-9)
}

func TestTaxProvisions_PreciseEstimatorNoThreshold(t *testing.T) {
	p := taxPolicy()
	p.Tax = &TaxProvisions{
		RateChange:                0.01,
		AffectedTaxpayersMillions: 100.0,
		AvgTaxableIncomeInBracket: 80_000,
	}
	// Threshold 0 applies the rate to all taxable income in the bracket:
	// 0.01 x 80K x 100M = $80B
	assert.InDelta(t, 80.0, p.Tax.StaticRevenueChange(p, 2026, nil), 1e-9)
}

func TestTaxProvisions_CoarseEstimatorUsesBaselineShare(t *testing.T) {
	b := calibBaseline(t)
	p := taxPolicy()
	p.Tax = &TaxProvisions{RateChange: 0.01, IncomeThreshold: 250_000}

	baseRev := b.Revenues[CategoryIndividualIncomeTax].At(2026)
	want := baseRev * 0.40 * 0.01 / 0.18
	assert.InDelta(t, want, p.Tax.StaticRevenueChange(p, 2026, b), 1e-9)
}

func TestTaxProvisions_CreditsAndDeductions(t *testing.T) {
	p := taxPolicy()
	p.Tax = &TaxProvisions{
		CreditChangeBillions:    30,
		DeductionChangeBillions: 100,
	}
	// -30 - 100 x 0.22 = -52
	assert.InDelta(t, -52.0, p.Tax.StaticRevenueChange(p, 2026, nil), 1e-9)
}

func TestTaxProvisions_ETIDefault(t *testing.T) {
	tp := &TaxProvisions{}
	assert.Equal(t, DefaultETI, tp.ETI())
	tp.ElasticityOfTaxableIncome = 0.4
	assert.Equal(t, 0.4, tp.ETI())
}

func TestSpendingProvisions_OneTime(t *testing.T) {
	p := &Policy{
		Name:          "bridge repair",
		StartYear:     2026,
		DurationYears: 10,
		Kind:          KindSpending,
		Spending:      &SpendingProvisions{AnnualAmountBillions: 50, OneTime: true},
	}
	assert.Equal(t, 50.0, p.Spending.SpendingInYear(p, 2026))
	assert.Equal(t, 0.0, p.Spending.SpendingInYear(p, 2027))
}

func TestSpendingProvisions_RealGrowthCompounds(t *testing.T) {
	p := &Policy{
		Name:          "program",
		StartYear:     2026,
		DurationYears: 10,
		Kind:          KindSpending,
		Spending:      &SpendingProvisions{AnnualAmountBillions: 100, RealGrowthRate: 0.02},
	}
	assert.InDelta(t, 100.0, p.Spending.SpendingInYear(p, 2026), 1e-9)
	assert.InDelta(t, 102.0, p.Spending.SpendingInYear(p, 2027), 1e-9)
	assert.InDelta(t, 100.0*1.02*1.02, p.Spending.SpendingInYear(p, 2028), 1e-9)
	assert.Equal(t, 0.0, p.Spending.SpendingInYear(p, 2025))
}

func TestTransferProvisions_CostComposition(t *testing.T) {
	b := calibBaseline(t)
	p := &Policy{
		Name:          "benefit bump",
		Category:      CategorySocialSecurity,
		StartYear:     2026,
		DurationYears: 10,
		Kind:          KindTransfer,
		Transfer: &TransferProvisions{
			BenefitChangePercent:     0.05,
			BenefitChangeBillions:    10,
			NewBeneficiariesMillions: 1.0,
		},
	}
	baseCost := b.Outlays[CategorySocialSecurity].At(2026)
	want := 10 + baseCost*0.05 + 1.0*1e6*18_000/1e9
	assert.InDelta(t, want, p.Transfer.CostInYear(p, 2026, b), 1e-9)
}

func TestPolicy_Validate_TransferPercentNeedsOutlayCategory(t *testing.T) {
	p := &Policy{
		Name:          "benefit bump",
		Category:      CategoryIndividualIncomeTax,
		StartYear:     2026,
		DurationYears: 10,
		Kind:          KindTransfer,
		Transfer:      &TransferProvisions{BenefitChangePercent: 0.05},
	}
	err := p.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCategory)

	// Naming the affected program fixes it.
	p.Category = CategorySocialSecurity
	assert.NoError(t, p.Validate())

	// An explicit cost override does not need a budget line.
	override := 42.0
	p.Category = ""
	p.Transfer.CostOverrideBillions = &override
	assert.NoError(t, p.Validate())

	// Neither does a flat-dollar change.
	p.Transfer = &TransferProvisions{BenefitChangeBillions: 10}
	assert.NoError(t, p.Validate())
}

func TestTransferProvisions_OverrideWins(t *testing.T) {
	override := 42.0
	p := &Policy{
		Name:          "scored elsewhere",
		StartYear:     2026,
		DurationYears: 10,
		Kind:          KindTransfer,
		Transfer: &TransferProvisions{
			BenefitChangeBillions: 99,
			CostOverrideBillions:  &override,
		},
	}
	assert.Equal(t, 42.0, p.Transfer.CostInYear(p, 2026, nil))
}

func TestPackage_InteractionDefaultsToOne(t *testing.T) {
	pkg := &Package{Policies: []Policy{*taxPolicy()}}
	assert.Equal(t, 1.0, pkg.Interaction())
	pkg.InteractionFactor = 0.9
	assert.Equal(t, 0.9, pkg.Interaction())
}

func TestPackage_Years(t *testing.T) {
	a := *taxPolicy()
	a.StartYear, a.DurationYears = 2026, 5
	b := *taxPolicy()
	b.StartYear, b.DurationYears = 2028, 10
	pkg := &Package{Policies: []Policy{a, b}}
	first, last := pkg.Years()
	assert.Equal(t, 2026, first)
	assert.Equal(t, 2038, last)
}

func TestConditionPreset_KnownAndUnknown(t *testing.T) {
	for _, name := range ConditionPresetNames {
		_, ok := ConditionPreset(name)
		assert.True(t, ok, "preset %q should resolve", name)
	}
	_, ok := ConditionPreset("boom")
	assert.False(t, ok)
}
