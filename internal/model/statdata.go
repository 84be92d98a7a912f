package model

// Shapes returned by the statistical-data collaborators. The scoring core
// consumes only these normalized numbers; raw ingestion lives outside it.

// RevenueObservation is one year's realized receipts for a revenue line, $B.
type RevenueObservation struct {
	Year           int     `json:"year"`
	AmountBillions float64 `json:"amount_billions"`
}

// GDPObservation is one year's nominal GDP, $B.
type GDPObservation struct {
	Year           int     `json:"year"`
	AmountBillions float64 `json:"amount_billions"`
}

// FilerSummary answers the filers-above-threshold query backing the precise
// tax-policy estimator. Dollar averages are per-filer; liability is $B.
type FilerSummary struct {
	Year            int     `json:"year"`
	IncomeThreshold float64 `json:"income_threshold"`

	FilerCount             float64 `json:"filer_count"`
	AvgAGI                 float64 `json:"avg_agi"`
	AvgTaxableIncome       float64 `json:"avg_taxable_income"`
	TotalLiabilityBillions float64 `json:"total_liability_billions"`
}

// StatSnapshot is the JSON shape of a saved statistical-data response, used
// to score offline against previously fetched data.
type StatSnapshot struct {
	Revenue []RevenueObservation `json:"revenue"`
	GDP     []GDPObservation     `json:"gdp"`
	Filers  []FilerSummary       `json:"filers,omitempty"`
}
