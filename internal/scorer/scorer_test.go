package scorer

import (
	"path/filepath"
	"testing"

	"fiscal-score/internal/baseline"
	"fiscal-score/internal/data"
	"fiscal-score/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// neutralConditions has every multiplier adjustment factor at exactly 1.
func neutralConditions() model.EconomicConditions {
	return model.EconomicConditions{DebtToGDP: 0.6, UnemploymentRate: 4.2}
}

func rateCutPolicy() *model.Policy {
	return &model.Policy{
		Name:          "high-earner rate cut",
		Category:      model.CategoryIndividualIncomeTax,
		StartYear:     2026,
		DurationYears: 10,
		Kind:          model.KindTax,
		Tax: &model.TaxProvisions{
			RateChange:                -0.02,
			IncomeThreshold:           400_000,
			AffectedTaxpayersMillions: 2.0,
			AvgTaxableIncomeInBracket: 600_000,
		},
	}
}

func TestScorePolicy_ConventionalTaxCut(t *testing.T) {
	s := New(2026, false, nil, neutralConditions())
	res, err := s.ScorePolicy(rateCutPolicy(), Options{})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		// Static revenue loss: -0.02 x $200K x 2.0M = -$8.0B
		assert.InDelta(t, -8.0, res.StaticRevenue.Values[i], 1e-9)
		// Deficit side: +8.0
		assert.InDelta(t, 8.0, res.StaticDeficit.Values[i], 1e-9)
		// Behavioral response claws back -8.0 x 0.25 x 0.5 = -1.0
		assert.InDelta(t, -1.0, res.BehavioralOffset.Values[i], 1e-9)
		// Final: 8.0 - 1.0 = 7.0 per year
		assert.InDelta(t, 7.0, res.FinalDeficit.Values[i], 1e-9)
	}
	assert.InDelta(t, 70.0, res.TotalDeficitEffect(), 1e-9)
	assert.InDelta(t, 7.0, res.AverageAnnualCost(), 1e-9)

	// Without uncertainty the bands collapse onto the central estimate.
	assert.Equal(t, res.FinalDeficit.Values, res.Low.Values)
	assert.Equal(t, res.FinalDeficit.Values, res.High.Values)
	assert.Nil(t, res.Dynamic)
}

func TestScorePolicy_DynamicFeedbackReducesDeficit(t *testing.T) {
	s := New(2026, false, nil, neutralConditions())

	conv, err := s.ScorePolicy(rateCutPolicy(), Options{})
	require.NoError(t, err)
	dyn, err := s.ScorePolicy(rateCutPolicy(), Options{Dynamic: true})
	require.NoError(t, err)

	require.NotNil(t, dyn.Dynamic)
	for i := range dyn.FinalDeficit.Values {
		feedback := dyn.Dynamic.RevenueFeedback.Values[i]
		assert.InDelta(t, conv.FinalDeficit.Values[i]-feedback, dyn.FinalDeficit.Values[i], 1e-9)
	}
}

func TestScorePolicy_ZeroChangeScoresZero(t *testing.T) {
	s := New(2026, false, nil, neutralConditions())
	p := &model.Policy{
		Name:          "no-op",
		Category:      model.CategoryIndividualIncomeTax,
		StartYear:     2026,
		DurationYears: 10,
		Kind:          model.KindTax,
		Tax:           &model.TaxProvisions{},
	}

	for _, opts := range []Options{{}, {Dynamic: true}, {Dynamic: true, Uncertainty: true}} {
		res, err := s.ScorePolicy(p, opts)
		require.NoError(t, err)
		assert.True(t, res.FinalDeficit.IsZero())
		assert.True(t, res.Low.IsZero())
		assert.True(t, res.High.IsZero())
	}
}

func TestScorePolicy_InvalidPolicyRejected(t *testing.T) {
	s := New(2026, false, nil, neutralConditions())
	p := rateCutPolicy()
	p.Kind = "subsidy"
	p.Tax = nil

	_, err := s.ScorePolicy(p, Options{})
	assert.ErrorIs(t, err, model.ErrUnknownPolicyKind)
}

func TestScorePolicy_BandsOrderedAndWidening(t *testing.T) {
	s := New(2026, false, nil, neutralConditions())
	res, err := s.ScorePolicy(rateCutPolicy(), Options{Uncertainty: true})
	require.NoError(t, err)

	prevRel := 0.0
	for i, v := range res.FinalDeficit.Values {
		assert.LessOrEqual(t, res.Low.Values[i], v)
		assert.GreaterOrEqual(t, res.High.Values[i], v)

		// Relative width grows with the horizon year.
		rel := (res.High.Values[i] - res.Low.Values[i]) / v
		assert.Greater(t, rel, prevRel, "year index %d", i)
		prevRel = rel
	}

	// The band is asymmetric: more room above the estimate than below.
	assert.Greater(t, res.High.Values[0]-res.FinalDeficit.Values[0],
		res.FinalDeficit.Values[0]-res.Low.Values[0])
}

func TestScorePolicy_BandsOrderedForDeficitReduction(t *testing.T) {
	s := New(2026, false, nil, neutralConditions())
	p := rateCutPolicy()
	p.Name = "high-earner rate increase"
	p.Tax.RateChange = 0.02

	res, err := s.ScorePolicy(p, Options{Uncertainty: true})
	require.NoError(t, err)

	for i, v := range res.FinalDeficit.Values {
		assert.Negative(t, v, "a revenue raise reduces the deficit")
		assert.LessOrEqual(t, res.Low.Values[i], v)
		assert.GreaterOrEqual(t, res.High.Values[i], v)
	}
}

func TestScorePolicy_DynamicWidensBands(t *testing.T) {
	s := New(2026, false, nil, neutralConditions())

	conv, err := s.ScorePolicy(rateCutPolicy(), Options{Uncertainty: true})
	require.NoError(t, err)
	dyn, err := s.ScorePolicy(rateCutPolicy(), Options{Dynamic: true, Uncertainty: true})
	require.NoError(t, err)

	convRel := (conv.High.Values[0] - conv.Low.Values[0]) / conv.FinalDeficit.Values[0]
	dynRel := (dyn.High.Values[0] - dyn.Low.Values[0]) / dyn.FinalDeficit.Values[0]
	assert.InDelta(t, 1.5, dynRel/convRel, 1e-9, "dynamic scoring multiplies band width by 1.5")
}

// taxSnapshot carries the calibrated base-year levels plus a filer summary,
// so statistical-mode scoring keeps the hand-computed arithmetic.
func taxSnapshot(withFilers bool) *model.StatSnapshot {
	snap := &model.StatSnapshot{
		Revenue: []model.RevenueObservation{{Year: 2025, AmountBillions: 2500}},
		GDP:     []model.GDPObservation{{Year: 2025, AmountBillions: 28500}},
	}
	if withFilers {
		snap.Filers = []model.FilerSummary{{
			Year:             2025,
			IncomeThreshold:  400_000,
			FilerCount:       2_000_000,
			AvgTaxableIncome: 600_000,
		}}
	}
	return snap
}

func TestScorePolicy_FilerDataFeedsPreciseEstimator(t *testing.T) {
	s := New(2026, true, data.NewSnapshotSource(taxSnapshot(true)), neutralConditions())
	require.Equal(t, baseline.SourceStatistical, s.Source)
	require.NotNil(t, s.Filers)

	p := rateCutPolicy()
	p.Tax.AffectedTaxpayersMillions = 0
	p.Tax.AvgTaxableIncomeInBracket = 0

	res, err := s.ScorePolicy(p, Options{})
	require.NoError(t, err)

	// The filer lookup supplies the bracket inputs, so the precise formula
	// runs: -0.02 x $200K x 2.0M = -$8.0B.
	assert.InDelta(t, -8.0, res.StaticRevenue.Values[0], 1e-9)
	assert.InDelta(t, -1.0, res.BehavioralOffset.Values[0], 1e-9)
	// The caller's policy is never mutated.
	assert.Zero(t, p.Tax.AffectedTaxpayersMillions)
	assert.Zero(t, p.Tax.AvgTaxableIncomeInBracket)
}

func TestScorePolicy_FilerLookupFailureFallsBackCoarse(t *testing.T) {
	s := New(2026, true, data.NewSnapshotSource(taxSnapshot(false)), neutralConditions())

	p := rateCutPolicy()
	p.Tax.AffectedTaxpayersMillions = 0
	p.Tax.AvgTaxableIncomeInBracket = 0

	res, err := s.ScorePolicy(p, Options{})
	require.NoError(t, err)

	// No filer series in the snapshot: the coarse share-of-baseline
	// estimator runs instead (40% share above $200K, effective rate 0.18).
	baseRev := s.Baseline.Revenues[model.CategoryIndividualIncomeTax].At(2026)
	want := baseRev * 0.40 * -0.02 / 0.18
	assert.InDelta(t, want, res.StaticRevenue.Values[0], 1e-9)
}

func TestScorePolicy_ExplicitBracketInputsWin(t *testing.T) {
	snap := taxSnapshot(true)
	snap.Filers[0].FilerCount = 9_000_000
	s := New(2026, true, data.NewSnapshotSource(snap), neutralConditions())

	res, err := s.ScorePolicy(rateCutPolicy(), Options{})
	require.NoError(t, err)

	// Manually supplied bracket inputs are kept over the filer lookup.
	assert.InDelta(t, -8.0, res.StaticRevenue.Values[0], 1e-9)
}

func TestScorePackage_SingleMemberMatchesPolicy(t *testing.T) {
	s := New(2026, false, nil, neutralConditions())

	single, err := s.ScorePolicy(rateCutPolicy(), Options{Dynamic: true})
	require.NoError(t, err)

	pkg := &model.Package{Name: "solo", Policies: []model.Policy{*rateCutPolicy()}}
	packaged, err := s.ScorePackage(pkg, Options{Dynamic: true})
	require.NoError(t, err)

	assert.InDelta(t, single.TotalDeficitEffect(), packaged.TotalDeficitEffect(), 1e-9)
	for i := range single.FinalDeficit.Values {
		assert.InDelta(t, single.FinalDeficit.Values[i], packaged.FinalDeficit.Values[i], 1e-9)
	}
}

func TestScorePackage_SingleMemberBandsMatchPolicy(t *testing.T) {
	s := New(2026, false, nil, neutralConditions())

	single, err := s.ScorePolicy(rateCutPolicy(), Options{Uncertainty: true})
	require.NoError(t, err)

	pkg := &model.Package{Name: "solo", Policies: []model.Policy{*rateCutPolicy()}}
	packaged, err := s.ScorePackage(pkg, Options{Uncertainty: true})
	require.NoError(t, err)

	// A one-member package bands with the member's type factor, so the
	// bands match the solo score exactly, not just the central estimate.
	for i := range single.FinalDeficit.Values {
		assert.InDelta(t, single.Low.Values[i], packaged.Low.Values[i], 1e-9)
		assert.InDelta(t, single.High.Values[i], packaged.High.Values[i], 1e-9)
	}
	// Year 0, tax factor 1.2: u = 0.10 x 1.2, spread = 7.0 x 0.12 = 0.84.
	assert.InDelta(t, 7.0-0.84*0.9, packaged.Low.Values[0], 1e-9)
	assert.InDelta(t, 7.0+0.84*1.1, packaged.High.Values[0], 1e-9)
}

func TestScorePackage_MixedKindsBandNeutral(t *testing.T) {
	s := New(2026, false, nil, neutralConditions())

	spend := model.Policy{
		Name:          "program",
		Category:      model.CategoryNonDefenseDiscretionary,
		StartYear:     2026,
		DurationYears: 10,
		Kind:          model.KindSpending,
		Spending:      &model.SpendingProvisions{AnnualAmountBillions: 20},
	}
	pkg := &model.Package{Name: "combo", Policies: []model.Policy{*rateCutPolicy(), spend}}

	res, err := s.ScorePackage(pkg, Options{Uncertainty: true})
	require.NoError(t, err)

	// Mixed kinds band with the neutral factor: year 0 central 27.0,
	// u = 0.10, spread 2.7.
	assert.InDelta(t, 27.0-2.7*0.9, res.Low.Values[0], 1e-9)
	assert.InDelta(t, 27.0+2.7*1.1, res.High.Values[0], 1e-9)
}

func TestScorePackage_InteractionFactorScalesStatics(t *testing.T) {
	s := New(2026, false, nil, neutralConditions())

	full := &model.Package{Name: "full", Policies: []model.Policy{*rateCutPolicy()}}
	discounted := &model.Package{
		Name:              "discounted",
		Policies:          []model.Policy{*rateCutPolicy()},
		InteractionFactor: 0.9,
	}

	resFull, err := s.ScorePackage(full, Options{})
	require.NoError(t, err)
	resDisc, err := s.ScorePackage(discounted, Options{})
	require.NoError(t, err)

	for i := range resFull.StaticDeficit.Values {
		assert.InDelta(t, resFull.StaticDeficit.Values[i]*0.9, resDisc.StaticDeficit.Values[i], 1e-9)
	}
}

func TestScorePackage_SumsMembers(t *testing.T) {
	s := New(2026, false, nil, neutralConditions())

	spend := model.Policy{
		Name:          "program",
		Category:      model.CategoryNonDefenseDiscretionary,
		StartYear:     2026,
		DurationYears: 10,
		Kind:          model.KindSpending,
		Spending:      &model.SpendingProvisions{AnnualAmountBillions: 20},
	}
	pkg := &model.Package{Name: "combo", Policies: []model.Policy{*rateCutPolicy(), spend}}

	res, err := s.ScorePackage(pkg, Options{})
	require.NoError(t, err)

	// 8.0 (tax) + 20.0 (spending) static deficit, -1.0 behavioral
	assert.InDelta(t, 28.0, res.StaticDeficit.Values[0], 1e-9)
	assert.InDelta(t, 27.0, res.FinalDeficit.Values[0], 1e-9)
	assert.Equal(t, "combo", res.PackageName)
	assert.Nil(t, res.Policy)
}

func TestScorePackage_EmptyRejected(t *testing.T) {
	s := New(2026, false, nil, neutralConditions())
	_, err := s.ScorePackage(&model.Package{Name: "empty"}, Options{})
	assert.Error(t, err)
}

func TestWriteLedgerCSV(t *testing.T) {
	s := New(2026, false, nil, neutralConditions())
	res, err := s.ScorePolicy(rateCutPolicy(), Options{Uncertainty: true})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "ledger.csv")
	require.NoError(t, WriteLedgerCSV(path, res.Rows()))

	rows := res.Rows()
	assert.Len(t, rows, 10)
	assert.Equal(t, 2026, rows[0].Year)
	assert.InDelta(t, 7.0, rows[0].CumFinalDeficit, 1e-9)
	assert.InDelta(t, 70.0, rows[9].CumFinalDeficit, 1e-9)
}
