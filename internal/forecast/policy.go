package forecast

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PriorityRule assigns Priority when every condition it sets holds.
// Keywords match case-insensitively as substrings of the obligation name;
// Above matches amounts strictly greater than the threshold.
// A rule with no conditions always matches.
type PriorityRule struct {
	Keywords []string
	Above    *decimal.Decimal
	Priority Priority
}

func (r PriorityRule) matches(lowerName string, amount decimal.Decimal) bool {
	if len(r.Keywords) > 0 && !containsAny(lowerName, r.Keywords) {
		return false
	}
	if r.Above != nil && !amount.GreaterThan(*r.Above) {
		return false
	}
	return true
}

// PriorityPolicy is an ordered rule list; the first matching rule wins
type PriorityPolicy struct {
	Rules   []PriorityRule
	Default Priority
}

// Classify returns the tier for an obligation with the given name and amount
func (p PriorityPolicy) Classify(name string, amount decimal.Decimal) Priority {
	lower := strings.ToLower(name)
	for _, rule := range p.Rules {
		if rule.matches(lower, amount) {
			return rule.Priority
		}
	}
	if p.Default == "" {
		return PriorityRoutine
	}
	return p.Default
}

// PolicySet holds one classification policy per obligation type
type PolicySet struct {
	Loan         PriorityPolicy
	Fixed        PriorityPolicy
	Subscription PriorityPolicy
}

// For returns the policy that applies to t
func (s PolicySet) For(t ObligationType) PriorityPolicy {
	switch t {
	case ObligationEMI:
		return s.Loan
	case ObligationFixed:
		return s.Fixed
	default:
		return s.Subscription
	}
}

// DefaultPolicySet returns the stock heuristics: loans are always critical; fixed
// expenses are critical on rent/insurance/loan keywords or above 10000, important
// above 2000; subscriptions are important above 1000.
func DefaultPolicySet() PolicySet {
	return PolicySet{
		Loan: PriorityPolicy{Default: PriorityCritical},
		Fixed: PriorityPolicy{
			Rules: []PriorityRule{
				{Keywords: []string{"rent", "insurance", "loan"}, Priority: PriorityCritical},
				{Above: threshold(10000), Priority: PriorityCritical},
				{Above: threshold(2000), Priority: PriorityImportant},
			},
			Default: PriorityRoutine,
		},
		Subscription: PriorityPolicy{
			Rules: []PriorityRule{
				{Above: threshold(1000), Priority: PriorityImportant},
			},
			Default: PriorityRoutine,
		},
	}
}

func threshold(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(s, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
