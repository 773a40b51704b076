package testutil

import (
	"time"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
	"github.com/shopspring/decimal"
)

// Date returns midnight UTC on the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Int32Ptr returns a pointer to v
func Int32Ptr(v int32) *int32 {
	return &v
}

// NewLoan builds a valid loan in a workspace
func NewLoan(workspaceID, id int32, name, monthly string, totalMonths int32, start time.Time) *domain.Loan {
	return &domain.Loan{
		ID:            id,
		WorkspaceID:   workspaceID,
		Name:          name,
		MonthlyAmount: decimal.RequireFromString(monthly),
		TotalMonths:   totalMonths,
		StartDate:     start,
	}
}

// NewFixedExpense builds a valid fixed expense in a workspace
func NewFixedExpense(workspaceID, id int32, title, amount string, day int32) *domain.FixedExpense {
	return &domain.FixedExpense{
		ID:          id,
		WorkspaceID: workspaceID,
		Title:       title,
		Amount:      decimal.RequireFromString(amount),
		DayOfMonth:  day,
	}
}

// NewMonthlySubscription builds an active monthly subscription in a workspace
func NewMonthlySubscription(workspaceID, id int32, name, amount string, day int32) *domain.Subscription {
	return &domain.Subscription{
		ID:          id,
		WorkspaceID: workspaceID,
		Name:        name,
		Amount:      decimal.RequireFromString(amount),
		Frequency:   domain.FrequencyMonthly,
		DayOfMonth:  Int32Ptr(day),
		IsActive:    true,
	}
}

func record(date time.Time, amount string) domain.CashRecord {
	return domain.CashRecord{Date: date, Amount: decimal.RequireFromString(amount)}
}
