package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrFixedExpenseTitleEmpty    = errors.New("fixed expense title is required")
	ErrFixedExpenseAmountInvalid = errors.New("fixed expense amount must be positive")
	ErrFixedExpenseDayOutOfRange = errors.New("fixed expense day of month must be between 1 and 31")
)

// FixedExpense is a bill due on the same day every calendar month
type FixedExpense struct {
	ID          int32           `json:"id"`
	WorkspaceID int32           `json:"workspaceId"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	DayOfMonth  int32           `json:"dayOfMonth"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   *time.Time      `json:"deletedAt,omitempty"`
}

func (f *FixedExpense) Validate() error {
	if f.Title == "" {
		return ErrFixedExpenseTitleEmpty
	}
	if f.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrFixedExpenseAmountInvalid
	}
	if f.DayOfMonth < MinDayOfMonth || f.DayOfMonth > MaxDayOfMonth {
		return ErrFixedExpenseDayOutOfRange
	}
	return nil
}

type FixedExpenseRepository interface {
	ListByWorkspace(ctx context.Context, workspaceID int32) ([]*FixedExpense, error)
}
