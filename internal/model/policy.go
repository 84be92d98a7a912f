package model

import (
	"errors"
	"fmt"
)

// ErrUnknownPolicyKind indicates a Policy whose Kind is outside the closed
// {Tax, Spending, Transfer} set, or whose provisions do not match its Kind.
// Dispatch sites return it from their default arm so an unhandled kind can
// never silently score as zero.
var ErrUnknownPolicyKind = errors.New("unknown policy kind")

// Kind is the closed set of policy variants.
type Kind string

const (
	KindTax      Kind = "tax"
	KindSpending Kind = "spending"
	KindTransfer Kind = "transfer"
)

// Policy describes one proposed change to current law: what kind of change it
// is, when it takes effect, and the variant-specific provisions. Exactly one
// of Tax/Spending/Transfer is set, matching Kind.
type Policy struct {
	Name        string
	Description string
	// Category tags the affected budget line, e.g. "corporate_income_tax"
	// for a corporate rate change or "social_security" for a benefit change.
	Category BudgetCategory

	StartYear     int
	DurationYears int
	// PhaseInYears is the ramp length; <= 1 means full effect immediately.
	PhaseInYears int
	// Sunset expires the policy after DurationYears.
	Sunset bool

	Kind     Kind
	Tax      *TaxProvisions
	Spending *SpendingProvisions
	Transfer *TransferProvisions
}

// Validate checks the kind/provisions pairing and the activation window.
func (p *Policy) Validate() error {
	if p.Name == "" {
		return errors.New("policy name is required")
	}
	if p.StartYear <= 0 {
		return errors.New("policy start_year is required")
	}
	if p.DurationYears <= 0 {
		return errors.New("policy duration_years must be > 0")
	}
	switch p.Kind {
	case KindTax:
		if p.Tax == nil || p.Spending != nil || p.Transfer != nil {
			return fmt.Errorf("%w: kind %q requires exactly tax provisions", ErrUnknownPolicyKind, p.Kind)
		}
	case KindSpending:
		if p.Spending == nil || p.Tax != nil || p.Transfer != nil {
			return fmt.Errorf("%w: kind %q requires exactly spending provisions", ErrUnknownPolicyKind, p.Kind)
		}
	case KindTransfer:
		if p.Transfer == nil || p.Tax != nil || p.Spending != nil {
			return fmt.Errorf("%w: kind %q requires exactly transfer provisions", ErrUnknownPolicyKind, p.Kind)
		}
		// A percent benefit change is costed off the affected program's
		// baseline outlay, so it must name one; overrides and flat-dollar
		// changes do not need a budget line.
		if p.Transfer.BenefitChangePercent != 0 && p.Transfer.CostOverrideBillions == nil && !IsOutlayCategory(p.Category) {
			return fmt.Errorf("%w: transfer policy %q needs an outlay category for a percent benefit change, got %q",
				ErrUnknownCategory, p.Name, p.Category)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPolicyKind, p.Kind)
	}
	return nil
}

// IsActive reports whether the policy is in force in a fiscal year.
func (p *Policy) IsActive(year int) bool {
	if year < p.StartYear {
		return false
	}
	if p.Sunset && year >= p.StartYear+p.DurationYears {
		return false
	}
	return true
}

// PhaseInFactor returns the fraction of full effect in a fiscal year:
// 0 outside the active window; 1 immediately when PhaseInYears <= 1;
// otherwise a linear ramp from 1/PhaseInYears in the first active year to 1
// once yearsSinceStart+1 >= PhaseInYears. Every variant and the dynamic model
// share this one implementation.
func (p *Policy) PhaseInFactor(year int) float64 {
	if !p.IsActive(year) {
		return 0
	}
	if p.PhaseInYears <= 1 {
		return 1
	}
	sinceStart := year - p.StartYear
	if sinceStart+1 >= p.PhaseInYears {
		return 1
	}
	return float64(sinceStart+1) / float64(p.PhaseInYears)
}

// EndYear returns the first year the policy is no longer in force when it
// sunsets, or StartYear+DurationYears regardless (callers treat a non-sunset
// policy as permanent past this point).
func (p *Policy) EndYear() int { return p.StartYear + p.DurationYears }
