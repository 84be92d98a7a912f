package handlers

import (
	"fiscal-score/internal/api/models"
	"fiscal-score/internal/baseline"
	"fiscal-score/internal/data"
	"fiscal-score/internal/model"
	"fiscal-score/internal/scorer"
)

// toConditions resolves a request's preset/override combination, defaulting
// to normal conditions.
func toConditions(c models.Conditions) (model.EconomicConditions, bool) {
	cond := model.NormalConditions()
	if c.Preset != "" {
		preset, ok := model.ConditionPreset(c.Preset)
		if !ok {
			return cond, false
		}
		cond = preset
	}
	if c.OutputGap != nil {
		cond.OutputGap = *c.OutputGap
	}
	if c.AtZeroLowerBound != nil {
		cond.AtZeroLowerBound = *c.AtZeroLowerBound
	}
	if c.DebtToGDP != nil {
		cond.DebtToGDP = *c.DebtToGDP
	}
	if c.UnemploymentRate != nil {
		cond.UnemploymentRate = *c.UnemploymentRate
	}
	return cond, true
}

// toPolicy converts a request policy to the domain model.
func toPolicy(pr models.PolicyRequest, defaultStartYear int) *model.Policy {
	p := &model.Policy{
		Name:          pr.Name,
		Description:   pr.Description,
		Category:      model.BudgetCategory(pr.Category),
		StartYear:     pr.StartYear,
		DurationYears: pr.DurationYears,
		PhaseInYears:  pr.PhaseInYears,
		Sunset:        pr.Sunset,
		Kind:          model.Kind(pr.Kind),
	}
	if p.StartYear == 0 {
		p.StartYear = defaultStartYear
	}
	if p.DurationYears == 0 {
		p.DurationYears = model.DefaultHorizon
	}
	if pr.Tax != nil {
		p.Tax = &model.TaxProvisions{
			RateChange:                pr.Tax.RateChange,
			IncomeThreshold:           pr.Tax.IncomeThreshold,
			CreditChangeBillions:      pr.Tax.CreditChangeBillions,
			DeductionChangeBillions:   pr.Tax.DeductionChangeBillions,
			AffectedTaxpayersMillions: pr.Tax.AffectedTaxpayersMillions,
			AvgTaxableIncomeInBracket: pr.Tax.AvgTaxableIncomeInBracket,
			ElasticityOfTaxableIncome: pr.Tax.ElasticityOfTaxableIncome,
		}
	}
	if pr.Spending != nil {
		p.Spending = &model.SpendingProvisions{
			AnnualAmountBillions: pr.Spending.AnnualAmountBillions,
			RealGrowthRate:       pr.Spending.RealGrowthRate,
			GDPMultiplier:        pr.Spending.GDPMultiplier,
			OneTime:              pr.Spending.OneTime,
		}
	}
	if pr.Transfer != nil {
		p.Transfer = &model.TransferProvisions{
			BenefitChangePercent:     pr.Transfer.BenefitChangePercent,
			BenefitChangeBillions:    pr.Transfer.BenefitChangeBillions,
			EligibilityAgeChange:     pr.Transfer.EligibilityAgeChange,
			NewBeneficiariesMillions: pr.Transfer.NewBeneficiariesMillions,
			LaborForceEffect:         pr.Transfer.LaborForceEffect,
			CostOverrideBillions:     pr.Transfer.CostOverrideBillions,
		}
	}
	return p
}

// newScorer builds a scorer for a request. A statistical-data client is only
// wired in when real data was requested.
func newScorer(startYear int, useRealData bool, apiKey string, cond model.EconomicConditions) *scorer.Scorer {
	if startYear == 0 {
		startYear = 2026
	}
	var src baseline.StatisticalSource
	if useRealData {
		src = data.NewClient(apiKey, "")
	}
	return scorer.New(startYear, useRealData, src, cond)
}

// toSummary flattens a result into the response headline block.
func toSummary(res *scorer.ScoringResult, source baseline.Source) models.ScoreSummary {
	name := res.PackageName
	kind := ""
	if res.Policy != nil {
		name = res.Policy.Name
		kind = string(res.Policy.Kind)
	}
	return models.ScoreSummary{
		PolicyName:     name,
		Kind:           kind,
		StartYear:      res.FinalDeficit.StartYear,
		Horizon:        res.FinalDeficit.Len(),
		BaselineSource: string(source),
		TenYearTotal:   res.TotalDeficitEffect(),
		AverageAnnual:  res.AverageAnnualCost(),
		TenYearLow:     res.Low.Sum(),
		TenYearHigh:    res.High.Sum(),
	}
}

// toLedger flattens per-year scoring rows for the response.
func toLedger(res *scorer.ScoringResult) []models.LedgerRow {
	rows := res.Rows()
	out := make([]models.LedgerRow, len(rows))
	for i, r := range rows {
		out[i] = models.LedgerRow{
			Year:             r.Year,
			StaticRevenue:    r.StaticRevenue,
			StaticSpending:   r.StaticSpending,
			StaticDeficit:    r.StaticDeficit,
			BehavioralOffset: r.BehavioralOffset,
			RevenueFeedback:  r.RevenueFeedback,
			FinalDeficit:     r.FinalDeficit,
			Low:              r.Low,
			High:             r.High,
			CumFinalDeficit:  r.CumFinalDeficit,
		}
	}
	return out
}
