// Package scorer orchestrates the scoring pipeline: static effects per
// policy variant, behavioral offsets, optional dynamic feedback, optional
// uncertainty bands, and package aggregation.
package scorer

import (
	"fmt"
	"math"

	"fiscal-score/internal/baseline"
	"fiscal-score/internal/dynamics"
	"fiscal-score/internal/model"
)

// Band calibration: base uncertainty widens with horizon year, scaled by the
// policy type and whether dynamic effects were computed. Bands are
// asymmetric because cost estimates are exceeded more often than undershot.
const (
	bandBase       = 0.10
	bandPerYear    = 0.02
	bandDynamic    = 1.5
	bandLowShare   = 0.9
	bandHighShare  = 1.1
)

var bandTypeFactor = map[model.Kind]float64{
	model.KindTax:      1.2,
	model.KindSpending: 0.8,
	model.KindTransfer: 1.0,
}

// Options selects the optional pipeline stages.
type Options struct {
	Dynamic     bool
	Uncertainty bool
}

// FilerSource answers the filers-above-threshold query behind the precise
// tax estimator. Both the HTTP client and the snapshot source satisfy it.
type FilerSource interface {
	FilersAboveThreshold(threshold float64, year int) (*model.FilerSummary, error)
}

// Scorer scores policies and packages against a fixed baseline. The baseline
// is built once at construction and shared read-only afterwards, so scoring
// independent policies concurrently is safe.
type Scorer struct {
	Baseline *model.BaselineProjection
	// Source reports whether the baseline came from statistical data or the
	// calibrated fallback.
	Source baseline.Source
	Econ   *dynamics.Model
	// Filers, when non-nil, fills in missing precise-estimator inputs for
	// tax policies before scoring.
	Filers FilerSource
}

// New builds a scorer: one baseline for the start year (statistical or
// calibrated per useRealData), plus a dynamic model calibrated to the given
// conditions. src may be nil to force the calibrated baseline. A source that
// can also answer filer queries feeds the precise tax estimator.
func New(startYear int, useRealData bool, src baseline.StatisticalSource, conditions model.EconomicConditions) *Scorer {
	gen := baseline.New(model.DefaultAssumptions(startYear), src)
	proj, source := gen.Build(startYear, useRealData)
	s := &Scorer{
		Baseline: proj,
		Source:   source,
		Econ:     dynamics.New(conditions),
	}
	if useRealData {
		if f, ok := src.(FilerSource); ok {
			s.Filers = f
		}
	}
	return s
}

// NewFromBaseline wires a scorer around an existing projection.
func NewFromBaseline(proj *model.BaselineProjection, source baseline.Source, econ *dynamics.Model) *Scorer {
	return &Scorer{Baseline: proj, Source: source, Econ: econ}
}

// ScorePolicy runs the full pipeline for one policy. Every year is tested
// independently against the activation window; a policy need not be active
// for the whole horizon.
func (s *Scorer) ScorePolicy(p *model.Policy, opts Options) (*ScoringResult, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("score policy: %w", err)
	}
	p = s.enrichTax(p)

	res, err := s.staticEffects(p)
	if err != nil {
		return nil, err
	}

	preFeedback, err := res.StaticDeficit.Add(res.BehavioralOffset)
	if err != nil {
		return nil, err
	}

	if opts.Dynamic {
		eff, err := s.Econ.Effects(p, preFeedback, s.Baseline)
		if err != nil {
			return nil, fmt.Errorf("dynamic effects: %w", err)
		}
		res.Dynamic = eff
		// Revenue feedback reduces the deficit.
		res.FinalDeficit, err = preFeedback.Sub(eff.RevenueFeedback)
		if err != nil {
			return nil, err
		}
	} else {
		res.FinalDeficit = preFeedback
	}

	s.applyBands(res, bandTypeFactor[p.Kind], opts)
	return res, nil
}

// ScorePackage scores each member independently, sums the static and
// behavioral series, applies the interaction factor to the static sums, and
// then proceeds as for a single policy. Dynamic effects across members are
// summed field by field; this ignores cross-policy macro interaction and is
// a documented simplification.
func (s *Scorer) ScorePackage(pkg *model.Package, opts Options) (*ScoringResult, error) {
	if err := pkg.Validate(); err != nil {
		return nil, fmt.Errorf("score package: %w", err)
	}

	horizon := s.Baseline.Horizon()
	res := &ScoringResult{
		PackageName:      pkg.Name,
		Baseline:         s.Baseline,
		StaticRevenue:    model.NewSeries(s.Baseline.StartYear, horizon),
		StaticSpending:   model.NewSeries(s.Baseline.StartYear, horizon),
		BehavioralOffset: model.NewSeries(s.Baseline.StartYear, horizon),
	}

	var combined *model.DynamicEffects
	for i := range pkg.Policies {
		p := s.enrichTax(&pkg.Policies[i])
		member, err := s.staticEffects(p)
		if err != nil {
			return nil, fmt.Errorf("package member %s: %w", p.Name, err)
		}
		for j := range member.StaticRevenue.Values {
			res.StaticRevenue.Values[j] += member.StaticRevenue.Values[j]
			res.StaticSpending.Values[j] += member.StaticSpending.Values[j]
			res.BehavioralOffset.Values[j] += member.BehavioralOffset.Values[j]
		}
	}

	factor := pkg.Interaction()
	res.StaticRevenue = res.StaticRevenue.Scale(factor)
	res.StaticSpending = res.StaticSpending.Scale(factor)

	res.StaticDeficit, _ = res.StaticSpending.Sub(res.StaticRevenue)
	preFeedback, err := res.StaticDeficit.Add(res.BehavioralOffset)
	if err != nil {
		return nil, err
	}

	if opts.Dynamic {
		for i := range pkg.Policies {
			p := s.enrichTax(&pkg.Policies[i])
			member, err := s.staticEffects(p)
			if err != nil {
				return nil, err
			}
			memberPre, err := member.StaticDeficit.Add(member.BehavioralOffset)
			if err != nil {
				return nil, err
			}
			eff, err := s.Econ.Effects(p, memberPre, s.Baseline)
			if err != nil {
				return nil, fmt.Errorf("package member %s dynamics: %w", p.Name, err)
			}
			if combined == nil {
				combined = eff
			} else if err := combined.AddInto(eff); err != nil {
				return nil, err
			}
		}
		res.Dynamic = combined
		res.FinalDeficit, err = preFeedback.Sub(combined.RevenueFeedback)
		if err != nil {
			return nil, err
		}
	} else {
		res.FinalDeficit = preFeedback
	}

	s.applyBands(res, packageBandFactor(pkg), opts)
	return res, nil
}

// packageBandFactor picks the band type factor for a package: a package whose
// members are all one kind bands like that kind, so a one-member package
// reproduces the solo score exactly. Mixed packages band with the neutral
// factor.
func packageBandFactor(pkg *model.Package) float64 {
	kind := pkg.Policies[0].Kind
	for i := 1; i < len(pkg.Policies); i++ {
		if pkg.Policies[i].Kind != kind {
			return 1.0
		}
	}
	return bandTypeFactor[kind]
}

// enrichTax fills the precise-estimator inputs from the filer source when a
// tax rate change above a positive threshold arrives without bracket data.
// The lookup targets the same data year the baseline was built from. The
// returned policy is a copy; the caller's policy is never mutated, and any
// lookup failure falls back silently to the coarse estimator.
func (s *Scorer) enrichTax(p *model.Policy) *model.Policy {
	if s.Filers == nil || p.Kind != model.KindTax || p.Tax == nil {
		return p
	}
	t := p.Tax
	if t.RateChange == 0 || t.IncomeThreshold <= 0 ||
		(t.AffectedTaxpayersMillions > 0 && t.AvgTaxableIncomeInBracket > 0) {
		return p
	}
	sum, err := s.Filers.FilersAboveThreshold(t.IncomeThreshold, s.Baseline.StartYear-1)
	if err != nil || sum.FilerCount <= 0 || sum.AvgTaxableIncome <= 0 {
		return p
	}
	clone := *p
	tax := *t
	tax.AffectedTaxpayersMillions = sum.FilerCount / 1e6
	tax.AvgTaxableIncomeInBracket = sum.AvgTaxableIncome
	clone.Tax = &tax
	return &clone
}

// staticEffects computes the pre-feedback series for one policy. Dispatch is
// exhaustive over the closed kind set.
func (s *Scorer) staticEffects(p *model.Policy) (*ScoringResult, error) {
	horizon := s.Baseline.Horizon()
	res := &ScoringResult{
		Policy:           p,
		Baseline:         s.Baseline,
		StaticRevenue:    model.NewSeries(s.Baseline.StartYear, horizon),
		StaticSpending:   model.NewSeries(s.Baseline.StartYear, horizon),
		BehavioralOffset: model.NewSeries(s.Baseline.StartYear, horizon),
	}

	for i := 0; i < horizon; i++ {
		year := s.Baseline.StartYear + i
		switch p.Kind {
		case model.KindTax:
			rev := p.Tax.StaticRevenueChange(p, year, s.Baseline)
			res.StaticRevenue.Values[i] = rev
			res.BehavioralOffset.Values[i] = p.Tax.BehavioralOffset(rev)
		case model.KindSpending:
			res.StaticSpending.Values[i] = p.Spending.SpendingInYear(p, year)
		case model.KindTransfer:
			res.StaticSpending.Values[i] = p.Transfer.CostInYear(p, year, s.Baseline)
		default:
			return nil, fmt.Errorf("%w: %q", model.ErrUnknownPolicyKind, p.Kind)
		}
	}

	res.StaticDeficit, _ = res.StaticSpending.Sub(res.StaticRevenue)
	return res, nil
}

// applyBands attaches low/high uncertainty bands, or collapses them onto the
// central estimate when uncertainty was not requested. The band grows with
// horizon year and is asymmetric around the central value; using the
// magnitude keeps low <= central <= high for deficit-reducing years too.
func (s *Scorer) applyBands(res *ScoringResult, typeFactor float64, opts Options) {
	if !opts.Uncertainty {
		res.Low = res.FinalDeficit.Clone()
		res.High = res.FinalDeficit.Clone()
		return
	}

	dynFactor := 1.0
	if res.Dynamic != nil {
		dynFactor = bandDynamic
	}

	res.Low = res.FinalDeficit.Clone()
	res.High = res.FinalDeficit.Clone()
	for i, v := range res.FinalDeficit.Values {
		u := (bandBase + bandPerYear*float64(i)) * typeFactor * dynFactor
		spread := math.Abs(v) * u
		res.Low.Values[i] = v - spread*bandLowShare
		res.High.Values[i] = v + spread*bandHighShare
	}
}
