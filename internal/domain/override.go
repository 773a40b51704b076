package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrOverrideKindInvalid = errors.New("override kind is not recognised")

type OverrideKind string

const (
	OverrideIncomeAdjust  OverrideKind = "income_adjust"
	OverrideExpenseAdjust OverrideKind = "expense_adjust"
	OverrideOneOffDebit   OverrideKind = "one_off_debit"
	OverrideOneOffCredit  OverrideKind = "one_off_credit"
)

// IsValid reports whether k is a known override kind
func (k OverrideKind) IsValid() bool {
	switch k {
	case OverrideIncomeAdjust, OverrideExpenseAdjust, OverrideOneOffDebit, OverrideOneOffCredit:
		return true
	}
	return false
}

// Override is a user-supplied adjustment applied to one month of a cash-flow simulation.
// MonthIndex is 0-based from the first simulated month.
type Override struct {
	MonthIndex int             `json:"monthIndex"`
	Kind       OverrideKind    `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Label      string          `json:"label"`
}

func (o *Override) Validate() error {
	if !o.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrOverrideKindInvalid, o.Kind)
	}
	return nil
}
