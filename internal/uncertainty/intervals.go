// Package uncertainty wraps central estimates with confidence bands, Monte
// Carlo simulation, and one-parameter sensitivity sweeps.
package uncertainty

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"fiscal-score/internal/model"
)

// DefaultPercentile is the two-sided confidence level used when none is
// requested.
const DefaultPercentile = 0.90

// Category coefficients of variation, reflecting known volatility of each
// line: corporate receipts swing hardest, payroll taxes barely move.
var categoryCV = map[model.BudgetCategory]float64{
	model.CategoryIndividualIncomeTax: 0.08,
	model.CategoryCorporateIncomeTax:  0.20,
	model.CategoryPayrollTaxes:        0.04,
	model.CategoryOtherRevenue:        0.10,

	model.CategorySocialSecurity:          0.03,
	model.CategoryMedicare:                0.06,
	model.CategoryMedicaid:                0.08,
	model.CategoryOtherMandatory:          0.10,
	model.CategoryDefenseDiscretionary:    0.05,
	model.CategoryNonDefenseDiscretionary: 0.05,
	model.CategoryNetInterest:             0.15,
}

// Policy-type base CVs and the separate behavioral-response CVs. Tax
// behavioral responses are the least certain input in the whole pipeline.
var (
	policyBaseCV = map[model.Kind]float64{
		model.KindTax:      0.30,
		model.KindSpending: 0.15,
		model.KindTransfer: 0.20,
	}
	behavioralCV = map[model.Kind]float64{
		model.KindTax:      0.50,
		model.KindSpending: 0.20,
		model.KindTransfer: 0.30,
	}
)

// Aggregation constants for the total-deficit band: spending variance enters
// at half weight and revenue/spending shocks are partially correlated.
const (
	spendingVarianceWeight     = 0.5
	revenueSpendingCorrelation = 0.3
)

// Band is a central series with its low/high confidence bounds.
type Band struct {
	Low     model.Series
	Central model.Series
	High    model.Series
}

// Calculator computes confidence intervals at a configured percentile.
type Calculator struct {
	// Percentile is the two-sided confidence level in (0,1); 0 means
	// DefaultPercentile.
	Percentile float64
}

func NewCalculator() *Calculator { return &Calculator{Percentile: DefaultPercentile} }

// zScore converts the two-sided percentile into a normal quantile.
func (c *Calculator) zScore() float64 {
	p := c.Percentile
	if p <= 0 || p >= 1 {
		p = DefaultPercentile
	}
	return distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.5 + p/2)
}

// BaselineBands holds per-category intervals and the combined deficit band.
type BaselineBands struct {
	Revenues map[model.BudgetCategory]Band
	Outlays  map[model.BudgetCategory]Band
	Deficit  Band
}

// CalculateBaselineUncertainty bands every baseline category. Per-category
// standard deviation is value x CV x sqrt(t+1)/sqrt(horizon), so uncertainty
// widens with distance from the base year. The deficit band combines
// component variances assuming partial correlation rather than independence.
func (c *Calculator) CalculateBaselineUncertainty(b *model.BaselineProjection) *BaselineBands {
	z := c.zScore()
	horizon := b.Horizon()

	out := &BaselineBands{
		Revenues: make(map[model.BudgetCategory]Band, len(model.RevenueCategories)),
		Outlays:  make(map[model.BudgetCategory]Band, len(model.OutlayCategories)),
	}

	revVar := model.NewSeries(b.StartYear, horizon)
	outVar := model.NewSeries(b.StartYear, horizon)

	band := func(s model.Series, cv float64, accum *model.Series) Band {
		bd := Band{
			Low:     s.Clone(),
			Central: s.Clone(),
			High:    s.Clone(),
		}
		for i, v := range s.Values {
			std := v * cv * math.Sqrt(float64(i+1)) / math.Sqrt(float64(horizon))
			bd.Low.Values[i] = v - z*std
			bd.High.Values[i] = v + z*std
			accum.Values[i] += std * std
		}
		return bd
	}

	for _, cat := range model.RevenueCategories {
		out.Revenues[cat] = band(b.Revenues[cat], categoryCV[cat], &revVar)
	}
	for _, cat := range model.OutlayCategories {
		out.Outlays[cat] = band(b.Outlays[cat], categoryCV[cat], &outVar)
	}

	deficit := b.Deficit()
	out.Deficit = Band{
		Low:     deficit.Clone(),
		Central: deficit.Clone(),
		High:    deficit.Clone(),
	}
	for i := range deficit.Values {
		cross := 2 * revenueSpendingCorrelation * math.Sqrt(revVar.Values[i]*outVar.Values[i])
		std := math.Sqrt(revVar.Values[i] + spendingVarianceWeight*outVar.Values[i] + cross)
		out.Deficit.Low.Values[i] = deficit.Values[i] - z*std
		out.Deficit.High.Values[i] = deficit.Values[i] + z*std
	}
	return out
}

// CalculatePolicyUncertainty bands a policy's central deficit-effect series.
// The type CV and the behavioral CV combine in quadrature and widen linearly
// with horizon year.
func (c *Calculator) CalculatePolicyUncertainty(central model.Series, kind model.Kind, dynamic bool) Band {
	z := c.zScore()
	base := policyBaseCV[kind]
	behavioral := behavioralCV[kind]
	cv := math.Sqrt(base*base + behavioral*behavioral)
	if dynamic {
		cv *= 1.5
	}

	bd := Band{
		Low:     central.Clone(),
		Central: central.Clone(),
		High:    central.Clone(),
	}
	for i, v := range central.Values {
		std := math.Abs(v) * cv * (1 + 0.05*float64(i))
		bd.Low.Values[i] = v - z*std
		bd.High.Values[i] = v + z*std
	}
	return bd
}
