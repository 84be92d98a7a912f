package models

// ScoreRequest represents the request body for scoring a single policy.
type ScoreRequest struct {
	StartYear   int           `json:"start_year"`
	UseRealData bool          `json:"use_real_data,omitempty"`
	APIKey      string        `json:"api_key,omitempty"` // statistical-data API key
	Conditions  Conditions    `json:"conditions,omitempty"`
	Policy      PolicyRequest `json:"policy" binding:"required"`
	Options     ScoreOptions  `json:"options,omitempty"`
}

// PackageScoreRequest scores several policies jointly.
type PackageScoreRequest struct {
	StartYear         int             `json:"start_year"`
	UseRealData       bool            `json:"use_real_data,omitempty"`
	APIKey            string          `json:"api_key,omitempty"`
	Conditions        Conditions      `json:"conditions,omitempty"`
	Name              string          `json:"name,omitempty"`
	Policies          []PolicyRequest `json:"policies" binding:"required"`
	InteractionFactor float64         `json:"interaction_factor,omitempty"`
	Options           ScoreOptions    `json:"options,omitempty"`
}

// CompareScoreRequest scores a base policy plus named variations.
type CompareScoreRequest struct {
	StartYear   int              `json:"start_year"`
	UseRealData bool             `json:"use_real_data,omitempty"`
	APIKey      string           `json:"api_key,omitempty"`
	Conditions  Conditions       `json:"conditions,omitempty"`
	Base        PolicyRequest    `json:"base" binding:"required"`
	Variations  []ScoreVariation `json:"variations" binding:"required"`
	Options     ScoreOptions     `json:"options,omitempty"`
}

// ScoreVariation is one named alternative in a comparison.
type ScoreVariation struct {
	Name   string        `json:"name" binding:"required"`
	Policy PolicyRequest `json:"policy" binding:"required"`
}

// Conditions selects a preset and/or explicit condition values.
type Conditions struct {
	Preset           string   `json:"preset,omitempty"`
	OutputGap        *float64 `json:"output_gap,omitempty"`
	AtZeroLowerBound *bool    `json:"at_zero_lower_bound,omitempty"`
	DebtToGDP        *float64 `json:"debt_to_gdp,omitempty"`
	UnemploymentRate *float64 `json:"unemployment_rate,omitempty"`
}

// ScoreOptions selects the optional pipeline stages.
type ScoreOptions struct {
	Dynamic       bool `json:"dynamic,omitempty"`
	Uncertainty   bool `json:"uncertainty,omitempty"`
	IncludeLedger bool `json:"include_ledger,omitempty"`
}

// PolicyRequest mirrors the policy model for JSON.
type PolicyRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description,omitempty"`
	Category      string `json:"category,omitempty"`
	Kind          string `json:"kind" binding:"required"` // "tax", "spending", "transfer"
	StartYear     int    `json:"start_year"`
	DurationYears int    `json:"duration_years,omitempty"`
	PhaseInYears  int    `json:"phase_in_years,omitempty"`
	Sunset        bool   `json:"sunset,omitempty"`

	Tax      *TaxRequest      `json:"tax,omitempty"`
	Spending *SpendingRequest `json:"spending,omitempty"`
	Transfer *TransferRequest `json:"transfer,omitempty"`
}

type TaxRequest struct {
	RateChange                float64 `json:"rate_change"`
	IncomeThreshold           float64 `json:"income_threshold"`
	CreditChangeBillions      float64 `json:"credit_change_billions,omitempty"`
	DeductionChangeBillions   float64 `json:"deduction_change_billions,omitempty"`
	AffectedTaxpayersMillions float64 `json:"affected_taxpayers_millions,omitempty"`
	AvgTaxableIncomeInBracket float64 `json:"avg_taxable_income_in_bracket,omitempty"`
	ElasticityOfTaxableIncome float64 `json:"elasticity_of_taxable_income,omitempty"`
}

type SpendingRequest struct {
	AnnualAmountBillions float64 `json:"annual_amount_billions"`
	RealGrowthRate       float64 `json:"real_growth_rate,omitempty"`
	GDPMultiplier        float64 `json:"gdp_multiplier,omitempty"`
	OneTime              bool    `json:"one_time,omitempty"`
}

type TransferRequest struct {
	BenefitChangePercent     float64  `json:"benefit_change_percent,omitempty"`
	BenefitChangeBillions    float64  `json:"benefit_change_billions,omitempty"`
	EligibilityAgeChange     float64  `json:"eligibility_age_change,omitempty"`
	NewBeneficiariesMillions float64  `json:"new_beneficiaries_millions,omitempty"`
	LaborForceEffect         float64  `json:"labor_force_effect,omitempty"`
	CostOverrideBillions     *float64 `json:"cost_override_billions,omitempty"`
}

// BaselineRequest selects a baseline build.
type BaselineRequest struct {
	StartYear   int    `form:"start_year"`
	UseRealData bool   `form:"use_real_data"`
	APIKey      string `form:"api_key"`
	Uncertainty bool   `form:"uncertainty"`
}

// MonteCarloRequest wraps a score request with simulation controls.
type MonteCarloRequest struct {
	Score       ScoreRequest `json:"score" binding:"required"`
	Simulations int          `json:"simulations,omitempty"`
	Seed        uint64       `json:"seed,omitempty"`

	GDPShockStd        float64 `json:"gdp_shock_std,omitempty"`
	PolicyShockStd     float64 `json:"policy_shock_std,omitempty"`
	BehavioralShockStd float64 `json:"behavioral_shock_std,omitempty"`
}

// SensitivityRequest sweeps one parameter around a scored policy.
type SensitivityRequest struct {
	Score        ScoreRequest `json:"score" binding:"required"`
	Parameter    string       `json:"parameter" binding:"required"`
	CentralValue float64      `json:"central_value" binding:"required"`
	RangePct     float64      `json:"range_pct,omitempty"`
}
