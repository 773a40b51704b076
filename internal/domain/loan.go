package domain

import (
	"context"
	"errors"
	"time"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/util"
	"github.com/shopspring/decimal"
)

var (
	ErrLoanNameEmpty        = errors.New("loan name is required")
	ErrLoanAmountInvalid    = errors.New("loan monthly amount must be positive")
	ErrLoanMonthsInvalid    = errors.New("number of months must be at least 1")
	ErrLoanStartDateMissing = errors.New("loan start date is required")
	ErrLoanPaidMonthsRange  = errors.New("paid months must be between 0 and total months")
)

// Loan is an installment loan (EMI) repaid in equal monthly amounts
type Loan struct {
	ID            int32           `json:"id"`
	WorkspaceID   int32           `json:"workspaceId"`
	Name          string          `json:"name"`
	MonthlyAmount decimal.Decimal `json:"monthlyAmount"`
	TotalMonths   int32           `json:"totalMonths"`
	StartDate     time.Time       `json:"startDate"`
	// PaidMonths is informational; it never gates whether an installment is due
	PaidMonths int32      `json:"paidMonths"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty"`
}

func (l *Loan) Validate() error {
	if l.Name == "" {
		return ErrLoanNameEmpty
	}
	if l.MonthlyAmount.LessThanOrEqual(decimal.Zero) {
		return ErrLoanAmountInvalid
	}
	if l.TotalMonths < 1 {
		return ErrLoanMonthsInvalid
	}
	if l.StartDate.IsZero() {
		return ErrLoanStartDateMissing
	}
	if l.PaidMonths < 0 || l.PaidMonths > l.TotalMonths {
		return ErrLoanPaidMonthsRange
	}
	return nil
}

// MonthsSinceStart returns how many calendar months the given month is past the start month
func (l *Loan) MonthsSinceStart(year int, month time.Month) int {
	return util.MonthsBetween(l.StartDate.Year(), l.StartDate.Month(), year, month)
}

// IsActive reports whether an installment falls due in the given month
func (l *Loan) IsActive(year int, month time.Month) bool {
	elapsed := l.MonthsSinceStart(year, month)
	return elapsed >= 0 && elapsed < int(l.TotalMonths)
}

type LoanRepository interface {
	ListByWorkspace(ctx context.Context, workspaceID int32) ([]*Loan, error)
}
