package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fiscal-score/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk scenario shape (YAML).
type Config struct {
	StartYear   int  `yaml:"start_year"`
	UseRealData bool `yaml:"use_real_data"`

	// Conditions may name a preset ("normal", "recession", ...) or spell
	// out explicit values; explicit values override the preset.
	Conditions ConditionsConfig `yaml:"conditions"`

	// Optional: load policies from a separate YAML (e.g. examples/policies/*.yaml).
	// Policies listed inline are appended after the file's.
	PolicyFile string         `yaml:"policy_file"`
	Policies   []PolicyConfig `yaml:"policies"`

	// InteractionFactor applies when more than one policy is configured.
	InteractionFactor float64 `yaml:"interaction_factor"`

	Scoring ScoringConfig `yaml:"scoring"`
}

type ConditionsConfig struct {
	Preset           string   `yaml:"preset"`
	OutputGap        *float64 `yaml:"output_gap"`
	AtZeroLowerBound *bool    `yaml:"at_zero_lower_bound"`
	DebtToGDP        *float64 `yaml:"debt_to_gdp"`
	UnemploymentRate *float64 `yaml:"unemployment_rate"`
}

type ScoringConfig struct {
	Dynamic     bool `yaml:"dynamic"`
	Uncertainty bool `yaml:"uncertainty"`
}

// PolicyConfig mirrors model.Policy for YAML.
type PolicyConfig struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	Category      string `yaml:"category"`
	Kind          string `yaml:"kind"`
	StartYear     int    `yaml:"start_year"`
	DurationYears int    `yaml:"duration_years"`
	PhaseInYears  int    `yaml:"phase_in_years"`
	Sunset        bool   `yaml:"sunset"`

	Tax      *TaxConfig      `yaml:"tax,omitempty"`
	Spending *SpendingConfig `yaml:"spending,omitempty"`
	Transfer *TransferConfig `yaml:"transfer,omitempty"`
}

type TaxConfig struct {
	RateChange                float64 `yaml:"rate_change"`
	IncomeThreshold           float64 `yaml:"income_threshold"`
	CreditChangeBillions      float64 `yaml:"credit_change_billions"`
	DeductionChangeBillions   float64 `yaml:"deduction_change_billions"`
	AffectedTaxpayersMillions float64 `yaml:"affected_taxpayers_millions"`
	AvgTaxableIncomeInBracket float64 `yaml:"avg_taxable_income_in_bracket"`
	ElasticityOfTaxableIncome float64 `yaml:"elasticity_of_taxable_income"`
}

type SpendingConfig struct {
	AnnualAmountBillions float64 `yaml:"annual_amount_billions"`
	RealGrowthRate       float64 `yaml:"real_growth_rate"`
	GDPMultiplier        float64 `yaml:"gdp_multiplier"`
	OneTime              bool    `yaml:"one_time"`
}

type TransferConfig struct {
	BenefitChangePercent     float64  `yaml:"benefit_change_percent"`
	BenefitChangeBillions    float64  `yaml:"benefit_change_billions"`
	EligibilityAgeChange     float64  `yaml:"eligibility_age_change"`
	NewBeneficiariesMillions float64  `yaml:"new_beneficiaries_millions"`
	LaborForceEffect         float64  `yaml:"labor_force_effect"`
	CostOverrideBillions     *float64 `yaml:"cost_override_billions,omitempty"`
}

// Load reads, merges, defaults, and validates a scenario config.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if c.StartYear == 0 {
		c.StartYear = 2026
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config but does not validate it. Useful for
// debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.PolicyFile != "" {
		policyPath := c.PolicyFile
		if !filepath.IsAbs(policyPath) {
			// Prefer interpreting relative paths as relative to the config
			// file directory, falling back to the path as given.
			cand := filepath.Join(filepath.Dir(path), policyPath)
			if _, err := os.Stat(cand); err == nil {
				policyPath = cand
			}
		}
		loaded, err := loadPolicyFile(policyPath)
		if err != nil {
			return nil, err
		}
		c.Policies = append(loaded, c.Policies...)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.StartYear <= 0 {
		return errors.New("start_year is required")
	}
	if len(c.Policies) == 0 {
		return errors.New("at least one policy is required")
	}
	if _, err := c.ToConditions(); err != nil {
		return err
	}
	for i, pc := range c.Policies {
		p := pc.ToModel()
		if p.StartYear == 0 {
			p.StartYear = c.StartYear
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("policy %d (%s): %w", i, pc.Name, err)
		}
	}
	return nil
}

// ToConditions resolves the preset/override combination.
func (c *Config) ToConditions() (model.EconomicConditions, error) {
	cond := model.NormalConditions()
	if c.Conditions.Preset != "" {
		preset, ok := model.ConditionPreset(c.Conditions.Preset)
		if !ok {
			return cond, fmt.Errorf("unknown conditions preset %q", c.Conditions.Preset)
		}
		cond = preset
	}
	if c.Conditions.OutputGap != nil {
		cond.OutputGap = *c.Conditions.OutputGap
	}
	if c.Conditions.AtZeroLowerBound != nil {
		cond.AtZeroLowerBound = *c.Conditions.AtZeroLowerBound
	}
	if c.Conditions.DebtToGDP != nil {
		cond.DebtToGDP = *c.Conditions.DebtToGDP
	}
	if c.Conditions.UnemploymentRate != nil {
		cond.UnemploymentRate = *c.Conditions.UnemploymentRate
	}
	return cond, nil
}

// ToPolicies converts every configured policy. A policy without its own
// start_year inherits the scenario's.
func (c *Config) ToPolicies() []model.Policy {
	out := make([]model.Policy, 0, len(c.Policies))
	for _, pc := range c.Policies {
		p := pc.ToModel()
		if p.StartYear == 0 {
			p.StartYear = c.StartYear
		}
		out = append(out, *p)
	}
	return out
}

// ToPackage wraps the configured policies with the interaction factor.
func (c *Config) ToPackage(name string) *model.Package {
	return &model.Package{
		Name:              name,
		Policies:          c.ToPolicies(),
		InteractionFactor: c.InteractionFactor,
	}
}

// ToModel converts one policy config. Duration defaults to the standard
// horizon.
func (pc PolicyConfig) ToModel() *model.Policy {
	p := &model.Policy{
		Name:          pc.Name,
		Description:   pc.Description,
		Category:      model.BudgetCategory(pc.Category),
		StartYear:     pc.StartYear,
		DurationYears: pc.DurationYears,
		PhaseInYears:  pc.PhaseInYears,
		Sunset:        pc.Sunset,
		Kind:          model.Kind(pc.Kind),
	}
	if p.DurationYears == 0 {
		p.DurationYears = model.DefaultHorizon
	}
	if pc.Tax != nil {
		p.Tax = &model.TaxProvisions{
			RateChange:                pc.Tax.RateChange,
			IncomeThreshold:           pc.Tax.IncomeThreshold,
			CreditChangeBillions:      pc.Tax.CreditChangeBillions,
			DeductionChangeBillions:   pc.Tax.DeductionChangeBillions,
			AffectedTaxpayersMillions: pc.Tax.AffectedTaxpayersMillions,
			AvgTaxableIncomeInBracket: pc.Tax.AvgTaxableIncomeInBracket,
			ElasticityOfTaxableIncome: pc.Tax.ElasticityOfTaxableIncome,
		}
	}
	if pc.Spending != nil {
		p.Spending = &model.SpendingProvisions{
			AnnualAmountBillions: pc.Spending.AnnualAmountBillions,
			RealGrowthRate:       pc.Spending.RealGrowthRate,
			GDPMultiplier:        pc.Spending.GDPMultiplier,
			OneTime:              pc.Spending.OneTime,
		}
	}
	if pc.Transfer != nil {
		p.Transfer = &model.TransferProvisions{
			BenefitChangePercent:     pc.Transfer.BenefitChangePercent,
			BenefitChangeBillions:    pc.Transfer.BenefitChangeBillions,
			EligibilityAgeChange:     pc.Transfer.EligibilityAgeChange,
			NewBeneficiariesMillions: pc.Transfer.NewBeneficiariesMillions,
			LaborForceEffect:         pc.Transfer.LaborForceEffect,
			CostOverrideBillions:     pc.Transfer.CostOverrideBillions,
		}
	}
	return p
}

type policyFileWrapper struct {
	Policies []PolicyConfig `yaml:"policies"`
}

func loadPolicyFile(path string) ([]PolicyConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w policyFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return w.Policies, nil
}
