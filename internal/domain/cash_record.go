package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CashRecord is a single dated income or variable-expense amount used for trailing averages
type CashRecord struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// CashRecordRepository reads historical records in the half-open range [start, end)
type CashRecordRepository interface {
	ListIncomeByDateRange(ctx context.Context, workspaceID int32, start, end time.Time) ([]CashRecord, error)
	ListVariableExpensesByDateRange(ctx context.Context, workspaceID int32, start, end time.Time) ([]CashRecord, error)
}
