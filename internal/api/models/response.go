package models

// ScoreResponse represents the response from scoring a policy or package.
type ScoreResponse struct {
	Status  string       `json:"status"`
	Summary ScoreSummary `json:"summary"`
	Ledger  []LedgerRow  `json:"ledger,omitempty"`
	Dynamic *DynamicView `json:"dynamic,omitempty"`
}

// ScoreSummary contains the headline numbers.
type ScoreSummary struct {
	PolicyName     string  `json:"policy_name"`
	Kind           string  `json:"kind,omitempty"`
	StartYear      int     `json:"start_year"`
	Horizon        int     `json:"horizon"`
	BaselineSource string  `json:"baseline_source"` // "statistical" or "calibrated"
	TenYearTotal   float64 `json:"ten_year_total"`
	AverageAnnual  float64 `json:"average_annual"`
	TenYearLow     float64 `json:"ten_year_low"`
	TenYearHigh    float64 `json:"ten_year_high"`
}

// LedgerRow is one fiscal year of scoring output, $B.
type LedgerRow struct {
	Year             int     `json:"year"`
	StaticRevenue    float64 `json:"static_revenue"`
	StaticSpending   float64 `json:"static_spending"`
	StaticDeficit    float64 `json:"static_deficit"`
	BehavioralOffset float64 `json:"behavioral_offset"`
	RevenueFeedback  float64 `json:"revenue_feedback"`
	FinalDeficit     float64 `json:"final_deficit"`
	Low              float64 `json:"low"`
	High             float64 `json:"high"`
	CumFinalDeficit  float64 `json:"cum_final_deficit"`
}

// DynamicView exposes the macro feedback series.
type DynamicView struct {
	GDPLevelChange     []float64 `json:"gdp_level_change"`
	GDPPercentChange   []float64 `json:"gdp_percent_change"`
	EmploymentChange   []float64 `json:"employment_change"`
	InterestRateChange []float64 `json:"interest_rate_change"`
	RevenueFeedback    []float64 `json:"revenue_feedback"`
	LongRunGDPLevel    float64   `json:"long_run_gdp_level,omitempty"`
	LongRunGDPPercent  float64   `json:"long_run_gdp_percent,omitempty"`
}

// CompareScoreResponse lists results for the base and each variation.
type CompareScoreResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

type ComparisonResult struct {
	Name    string       `json:"name"`
	Summary ScoreSummary `json:"summary"`
}

// BaselineResponse returns a projection by category.
type BaselineResponse struct {
	StartYear int                  `json:"start_year"`
	Source    string               `json:"source"`
	Years     []int                `json:"years"`
	Revenues  map[string][]float64 `json:"revenues"`
	Outlays   map[string][]float64 `json:"outlays"`

	NominalGDP []float64 `json:"nominal_gdp"`
	Deficit    []float64 `json:"deficit"`
	Debt       []float64 `json:"debt"`
	DebtToGDP  []float64 `json:"debt_to_gdp"`

	DeficitLow  []float64 `json:"deficit_low,omitempty"`
	DeficitHigh []float64 `json:"deficit_high,omitempty"`
}

// MonteCarloResponse summarizes a simulation run.
type MonteCarloResponse struct {
	Simulations int `json:"simulations"`

	Years  []int     `json:"years"`
	Mean   []float64 `json:"mean"`
	Median []float64 `json:"median"`
	Std    []float64 `json:"std"`
	P10    []float64 `json:"p10"`
	P25    []float64 `json:"p25"`
	P75    []float64 `json:"p75"`
	P90    []float64 `json:"p90"`

	TotalMean   float64 `json:"total_mean"`
	TotalMedian float64 `json:"total_median"`
	TotalStd    float64 `json:"total_std"`
	TotalP10    float64 `json:"total_p10"`
	TotalP90    float64 `json:"total_p90"`
}

// ConditionPresetInfo pairs a preset with its adjusted multipliers.
type ConditionPresetInfo struct {
	Name             string  `json:"name"`
	OutputGap        float64 `json:"output_gap"`
	AtZeroLowerBound bool    `json:"at_zero_lower_bound"`
	DebtToGDP        float64 `json:"debt_to_gdp"`
	UnemploymentRate float64 `json:"unemployment_rate"`

	SpendingMultiplier float64 `json:"spending_multiplier"`
	TaxMultiplier      float64 `json:"tax_multiplier"`
	TransferMultiplier float64 `json:"transfer_multiplier"`
	CrowdOutRate       float64 `json:"crowd_out_rate"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
