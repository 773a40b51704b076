package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/forecast"
	"github.com/shopspring/decimal"
)

// PolicyFile is the TOML shape of a priority policy override.
// Sections that are absent keep the default heuristics.
//
//	[fixed]
//	default = "routine"
//
//	[[fixed.rules]]
//	keywords = ["rent", "insurance", "loan"]
//	priority = "critical"
//
//	[[fixed.rules]]
//	above = "10000"
//	priority = "critical"
type PolicyFile struct {
	Loan         *PolicySection `toml:"loan"`
	Fixed        *PolicySection `toml:"fixed"`
	Subscription *PolicySection `toml:"subscription"`
}

// PolicySection holds the rules for one obligation type
type PolicySection struct {
	Default string     `toml:"default"`
	Rules   []RuleFile `toml:"rules"`
}

// RuleFile is a single predicate -> tier rule
type RuleFile struct {
	Keywords []string `toml:"keywords"`
	Above    string   `toml:"above"`
	Priority string   `toml:"priority"`
}

// LoadPriorityPolicy reads a policy file. An empty path yields the default policy.
func LoadPriorityPolicy(path string) (forecast.PolicySet, error) {
	if path == "" {
		return forecast.DefaultPolicySet(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return forecast.PolicySet{}, fmt.Errorf("reading priority policy: %w", err)
	}

	return ParsePriorityPolicy(data)
}

// ParsePriorityPolicy decodes TOML policy data on top of the default policy
func ParsePriorityPolicy(data []byte) (forecast.PolicySet, error) {
	var file PolicyFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return forecast.PolicySet{}, fmt.Errorf("parsing priority policy: %w", err)
	}

	set := forecast.DefaultPolicySet()
	var err error
	if set.Loan, err = file.Loan.apply(set.Loan, "loan"); err != nil {
		return forecast.PolicySet{}, err
	}
	if set.Fixed, err = file.Fixed.apply(set.Fixed, "fixed"); err != nil {
		return forecast.PolicySet{}, err
	}
	if set.Subscription, err = file.Subscription.apply(set.Subscription, "subscription"); err != nil {
		return forecast.PolicySet{}, err
	}
	return set, nil
}

func (s *PolicySection) apply(base forecast.PriorityPolicy, name string) (forecast.PriorityPolicy, error) {
	if s == nil {
		return base, nil
	}

	policy := forecast.PriorityPolicy{Default: forecast.PriorityRoutine}
	if s.Default != "" {
		p := forecast.Priority(s.Default)
		if !p.IsValid() {
			return base, fmt.Errorf("%s: unknown default priority %q", name, s.Default)
		}
		policy.Default = p
	}

	for i, r := range s.Rules {
		p := forecast.Priority(r.Priority)
		if !p.IsValid() {
			return base, fmt.Errorf("%s rule %d: unknown priority %q", name, i, r.Priority)
		}
		rule := forecast.PriorityRule{Keywords: r.Keywords, Priority: p}
		if r.Above != "" {
			above, err := decimal.NewFromString(r.Above)
			if err != nil {
				return base, fmt.Errorf("%s rule %d: invalid threshold %q: %w", name, i, r.Above, err)
			}
			rule.Above = &above
		}
		policy.Rules = append(policy.Rules, rule)
	}

	return policy, nil
}
