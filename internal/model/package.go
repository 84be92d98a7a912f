package model

import (
	"errors"
	"fmt"
)

// Package is an ordered collection of policies scored jointly. The
// InteractionFactor is a single scalar applied multiplicatively to the
// package's summed static effects; no richer cross-policy interaction is
// modeled.
type Package struct {
	Name     string
	Policies []Policy
	// InteractionFactor defaults to 1.0 (no interaction) when 0.
	InteractionFactor float64
}

// Interaction returns the declared factor, defaulting to 1.0.
func (pkg *Package) Interaction() float64 {
	if pkg.InteractionFactor == 0 {
		return 1.0
	}
	return pkg.InteractionFactor
}

// Validate checks every member policy.
func (pkg *Package) Validate() error {
	if len(pkg.Policies) == 0 {
		return errors.New("package has no policies")
	}
	for i := range pkg.Policies {
		if err := pkg.Policies[i].Validate(); err != nil {
			return fmt.Errorf("policy %d (%s): %w", i, pkg.Policies[i].Name, err)
		}
	}
	return nil
}

// ActivePolicies returns the members in force in a fiscal year.
func (pkg *Package) ActivePolicies(year int) []*Policy {
	var out []*Policy
	for i := range pkg.Policies {
		if pkg.Policies[i].IsActive(year) {
			out = append(out, &pkg.Policies[i])
		}
	}
	return out
}

// Years returns the earliest start year and latest end year across members.
func (pkg *Package) Years() (first, last int) {
	for i, p := range pkg.Policies {
		if i == 0 || p.StartYear < first {
			first = p.StartYear
		}
		if end := p.EndYear(); end > last {
			last = end
		}
	}
	return first, last
}
