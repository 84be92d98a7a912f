package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"fiscal-score/internal/baseline"
	"fiscal-score/internal/config"
	"fiscal-score/internal/data"
	"fiscal-score/internal/model"
	"fiscal-score/internal/scorer"
	"fiscal-score/internal/uncertainty"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "score":
		cmdScore(os.Args[2:])
	case "baseline":
		cmdBaseline(os.Args[2:])
	case "montecarlo":
		cmdMonteCarlo(os.Args[2:])
	case "sensitivity":
		cmdSensitivity(os.Args[2:])
	case "fetch":
		cmdFetch(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli score --config examples/scenario.yaml --out results/score.csv")
	fmt.Println("  cli baseline --year 2026")
	fmt.Println("  cli montecarlo --config examples/scenario.yaml --n 1000 --seed 1")
	fmt.Println("  cli sensitivity --config examples/scenario.yaml --param elasticity_of_taxable_income --central 0.25")
	fmt.Println("  cli fetch --year 2025 --out snapshot.json")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - score outputs one CSV row per fiscal year of the deficit ledger")
	fmt.Println("  - fetch requires FISCALDATA_API_KEY in the environment")
	fmt.Println("  - score/montecarlo/sensitivity accept --snapshot to reuse a fetched snapshot offline")
}

// buildScorer loads the scenario and constructs a scorer for it. A snapshot
// path overrides the live client so a fetched snapshot scores offline.
func buildScorer(cfg *config.Config, snapshotPath string) (*scorer.Scorer, error) {
	cond, err := cfg.ToConditions()
	if err != nil {
		return nil, err
	}
	var src baseline.StatisticalSource
	useRealData := cfg.UseRealData
	switch {
	case snapshotPath != "":
		snap, err := data.LoadSnapshot(snapshotPath)
		if err != nil {
			return nil, err
		}
		src = data.NewSnapshotSource(snap)
		useRealData = true
	case cfg.UseRealData:
		src = data.NewClient(os.Getenv("FISCALDATA_API_KEY"), "")
	}
	return scorer.New(cfg.StartYear, useRealData, src, cond), nil
}

// scoreScenario scores the scenario's single policy, or its package when it
// has several.
func scoreScenario(cfg *config.Config, s *scorer.Scorer) (*scorer.ScoringResult, error) {
	opts := scorer.Options{
		Dynamic:     cfg.Scoring.Dynamic,
		Uncertainty: cfg.Scoring.Uncertainty,
	}
	policies := cfg.ToPolicies()
	if len(policies) == 1 {
		return s.ScorePolicy(&policies[0], opts)
	}
	return s.ScorePackage(cfg.ToPackage("scenario"), opts)
}

func cmdScore(args []string) {
	fs := flag.NewFlagSet("score", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to scenario YAML")
	outPath := fs.String("out", "", "Optional: write the per-year ledger CSV here")
	snapPath := fs.String("snapshot", "", "Optional: score against a fetched snapshot instead of the live API")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	s, err := buildScorer(cfg, *snapPath)
	if err != nil {
		fatal(err)
	}
	res, err := scoreScenario(cfg, s)
	if err != nil {
		fatal(err)
	}

	printResult(res, s.Source)

	if *outPath != "" {
		if err := scorer.WriteLedgerCSV(*outPath, res.Rows()); err != nil {
			fatal(err)
		}
		fmt.Printf("\nLedger written to %s\n", *outPath)
	}
}

func cmdBaseline(args []string) {
	fs := flag.NewFlagSet("baseline", flag.ExitOnError)
	year := fs.Int("year", 2026, "First fiscal year of the projection")
	useReal := fs.Bool("real", false, "Use statistical data (requires FISCALDATA_API_KEY)")
	_ = fs.Parse(args)

	var src baseline.StatisticalSource
	if *useReal {
		src = data.NewClient(os.Getenv("FISCALDATA_API_KEY"), "")
	}
	gen := baseline.New(model.DefaultAssumptions(*year), src)
	proj, source := gen.Build(*year, *useReal)

	deficit := proj.Deficit()
	debtToGDP := proj.DebtToGDP()

	fmt.Printf("Baseline projection FY%d-FY%d (%s)\n\n", proj.StartYear, proj.StartYear+proj.Horizon()-1, source)
	fmt.Printf("%-6s %12s %12s %12s %12s %10s\n", "Year", "Revenues", "Outlays", "Deficit", "Debt", "Debt/GDP")
	for i, y := range proj.NominalGDP.Years() {
		fmt.Printf("%-6d %12.0f %12.0f %12.0f %12.0f %9.1f%%\n",
			y,
			proj.TotalRevenues().Values[i],
			proj.TotalOutlays().Values[i],
			deficit.Values[i],
			proj.Debt.Values[i],
			debtToGDP.Values[i]*100,
		)
	}
}

func cmdMonteCarlo(args []string) {
	fs := flag.NewFlagSet("montecarlo", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to scenario YAML")
	n := fs.Int("n", 1000, "Number of simulations")
	seed := fs.Uint64("seed", 1, "Random seed")
	snapPath := fs.String("snapshot", "", "Optional: score against a fetched snapshot instead of the live API")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	s, err := buildScorer(cfg, *snapPath)
	if err != nil {
		fatal(err)
	}
	res, err := scoreScenario(cfg, s)
	if err != nil {
		fatal(err)
	}

	mcCfg := uncertainty.DefaultMonteCarloConfig()
	mcCfg.Simulations = *n
	mcCfg.Seed = *seed
	mc, err := uncertainty.NewCalculator().MonteCarlo(res.FinalDeficit, mcCfg)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Monte Carlo (%d simulations)\n\n", mc.Simulations)
	fmt.Printf("%-6s %10s %10s %10s %10s %10s\n", "Year", "P10", "P25", "Median", "P75", "P90")
	for i, y := range mc.Mean.Years() {
		fmt.Printf("%-6d %10.1f %10.1f %10.1f %10.1f %10.1f\n",
			y, mc.P10.Values[i], mc.P25.Values[i], mc.Median.Values[i], mc.P75.Values[i], mc.P90.Values[i])
	}
	fmt.Printf("\n10-year total: mean %.1f, median %.1f, std %.1f, P10 %.1f, P90 %.1f\n",
		mc.TotalMean, mc.TotalMedian, mc.TotalStd, mc.TotalP10, mc.TotalP90)
}

func cmdSensitivity(args []string) {
	fs := flag.NewFlagSet("sensitivity", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to scenario YAML")
	param := fs.String("param", "", "Parameter to sweep (see list below on error)")
	central := fs.Float64("central", 0, "Central parameter value")
	rangePct := fs.Float64("range", 0.25, "Sweep range as a fraction of the central value")
	snapPath := fs.String("snapshot", "", "Optional: score against a fetched snapshot instead of the live API")
	_ = fs.Parse(args)

	if *cfgPath == "" || *param == "" {
		fmt.Println("--config and --param are required")
		fmt.Printf("parameters: %s\n", strings.Join(uncertainty.SensitivityParameters(), ", "))
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	s, err := buildScorer(cfg, *snapPath)
	if err != nil {
		fatal(err)
	}
	res, err := scoreScenario(cfg, s)
	if err != nil {
		fatal(err)
	}

	sens, err := uncertainty.NewCalculator().Sensitivity(res.FinalDeficit, *param, *central, *rangePct)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Sensitivity of 10-year total to %s (central %.4g)\n\n", sens.Parameter, sens.CentralValue)
	fmt.Printf("%12s %14s\n", "Value", "10-yr total")
	for k := range sens.Values {
		fmt.Printf("%12.4g %14.1f\n", sens.Values[k], sens.Totals[k])
	}
	fmt.Printf("\nElasticity: %.2f\n", sens.Elasticity)
}

func cmdFetch(args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	year := fs.Int("year", 2025, "Fiscal year to snapshot")
	outPath := fs.String("out", "snapshot.json", "Output snapshot path")
	_ = fs.Parse(args)

	apiKey := os.Getenv("FISCALDATA_API_KEY")
	client := data.NewClient(apiKey, "")

	snap := &model.StatSnapshot{}

	rev, err := client.TotalIndividualIncomeTax(*year)
	if err != nil {
		fatal(err)
	}
	snap.Revenue = append(snap.Revenue, model.RevenueObservation{
		Year:           *year,
		AmountBillions: rev,
	})

	gdp, err := client.NominalGDP(*year)
	if err != nil {
		fatal(err)
	}
	snap.GDP = append(snap.GDP, model.GDPObservation{
		Year:           *year,
		AmountBillions: gdp,
	})

	// Filer counts above a few common thresholds; missing series are
	// tolerated so one unavailable breakdown does not fail the snapshot.
	for _, threshold := range []float64{100_000, 200_000, 400_000, 1_000_000} {
		filers, err := client.FilersAboveThreshold(threshold, *year)
		if err != nil {
			var apiErr *data.FiscalDataError
			if errors.As(err, &apiErr) && apiErr.Code == "SERIES_NOT_AVAILABLE" {
				continue
			}
			fatal(err)
		}
		snap.Filers = append(snap.Filers, *filers)
	}

	if err := data.SaveSnapshot(snap, *outPath); err != nil {
		fatal(err)
	}
	fmt.Printf("Snapshot for FY%d written to %s\n", *year, *outPath)
}

func printResult(res *scorer.ScoringResult, source baseline.Source) {
	name := res.PackageName
	if res.Policy != nil {
		name = res.Policy.Name
	}
	fmt.Printf("Score: %s (baseline: %s)\n\n", name, source)
	fmt.Printf("%-6s %12s %12s %12s %12s %12s\n",
		"Year", "StaticDef", "Behavioral", "Feedback", "FinalDef", "Cumulative")
	for _, row := range res.Rows() {
		fmt.Printf("%-6d %12.1f %12.1f %12.1f %12.1f %12.1f\n",
			row.Year, row.StaticDeficit, row.BehavioralOffset, row.RevenueFeedback,
			row.FinalDeficit, row.CumFinalDeficit)
	}
	fmt.Printf("\n10-year deficit effect: %.1f ($B)\n", res.TotalDeficitEffect())
	fmt.Printf("Average annual cost:    %.1f ($B)\n", res.AverageAnnualCost())
	if res.Low.Sum() != res.High.Sum() {
		fmt.Printf("90%% band (10-year):     [%.1f, %.1f]\n", res.Low.Sum(), res.High.Sum())
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
