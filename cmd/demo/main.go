package main

import (
	"flag"
	"fmt"

	"fiscal-score/internal/model"
	"fiscal-score/internal/scorer"
)

// Demo:
// - Build a calibrated baseline
// - Score a rate cut on high earners, conventionally and dynamically
// - Score the same stimulus package under normal and recession conditions
func main() {
	year := flag.Int("year", 2026, "First fiscal year of the scoring window")
	outCSV := flag.String("out", "", "Optional path to write the rate-cut ledger CSV")
	flag.Parse()

	rateCut := &model.Policy{
		Name:          "High-earner rate cut",
		Description:   "2pp rate cut above $400K AGI",
		Category:      model.CategoryIndividualIncomeTax,
		StartYear:     *year,
		DurationYears: 10,
		Kind:          model.KindTax,
		Tax: &model.TaxProvisions{
			RateChange:                -0.02,
			IncomeThreshold:           400_000,
			AffectedTaxpayersMillions: 2.0,
			AvgTaxableIncomeInBracket: 600_000,
		},
	}

	stimulus := &model.Policy{
		Name:          "Infrastructure stimulus",
		Description:   "$100B/yr for 5 years, 3-year phase-in",
		Category:      model.CategoryNonDefenseDiscretionary,
		StartYear:     *year,
		DurationYears: 5,
		PhaseInYears:  3,
		Sunset:        true,
		Kind:          model.KindSpending,
		Spending: &model.SpendingProvisions{
			AnnualAmountBillions: 100,
		},
	}

	fmt.Println("=== Conventional score: high-earner rate cut ===")
	s := scorer.New(*year, false, nil, model.NormalConditions())
	res, err := s.ScorePolicy(rateCut, scorer.Options{Uncertainty: true})
	if err != nil {
		panic(err)
	}
	printTotals(res)

	fmt.Println("\n=== Dynamic score: same policy ===")
	dyn, err := s.ScorePolicy(rateCut, scorer.Options{Dynamic: true, Uncertainty: true})
	if err != nil {
		panic(err)
	}
	printTotals(dyn)
	fmt.Printf("Revenue feedback (10yr): %.1f\n", dyn.Dynamic.RevenueFeedback.Sum())

	fmt.Println("\n=== Stimulus under normal conditions ===")
	resNormal, err := s.ScorePolicy(stimulus, scorer.Options{Dynamic: true})
	if err != nil {
		panic(err)
	}
	printTotals(resNormal)

	fmt.Println("\n=== Stimulus in a deep recession (ZLB) ===")
	sRecession := scorer.New(*year, false, nil, model.DeepRecessionConditions())
	resRecession, err := sRecession.ScorePolicy(stimulus, scorer.Options{Dynamic: true})
	if err != nil {
		panic(err)
	}
	printTotals(resRecession)
	fmt.Printf("Multiplier boost cut the net cost by %.1f versus normal conditions\n",
		resNormal.TotalDeficitEffect()-resRecession.TotalDeficitEffect())

	fmt.Println("\n=== Package: rate cut + stimulus, 10% interaction discount ===")
	pkg := &model.Package{
		Name:              "Combined package",
		Policies:          []model.Policy{*rateCut, *stimulus},
		InteractionFactor: 0.9,
	}
	resPkg, err := s.ScorePackage(pkg, scorer.Options{Dynamic: true, Uncertainty: true})
	if err != nil {
		panic(err)
	}
	printTotals(resPkg)

	if *outCSV != "" {
		if err := scorer.WriteLedgerCSV(*outCSV, res.Rows()); err != nil {
			panic(err)
		}
		fmt.Printf("\nRate-cut ledger written to %s\n", *outCSV)
	}
}

func printTotals(res *scorer.ScoringResult) {
	fmt.Printf("10-year deficit effect: %8.1f ($B)\n", res.TotalDeficitEffect())
	fmt.Printf("Average annual cost:    %8.1f ($B)\n", res.AverageAnnualCost())
	if res.Low.Sum() != res.High.Sum() {
		fmt.Printf("90%% band (10-year):     [%.1f, %.1f]\n", res.Low.Sum(), res.High.Sum())
	}
}
