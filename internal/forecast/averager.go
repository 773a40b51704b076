package forecast

import (
	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/util"
	"github.com/shopspring/decimal"
)

// DefaultWindowMonths is the trailing window used for historical averages
const DefaultWindowMonths = 3

// AverageIncome divides the total of records by the fixed window length, regardless of
// how many months actually hold data. A short history therefore understates income.
func AverageIncome(records []domain.CashRecord, windowMonths int) decimal.Decimal {
	if len(records) == 0 {
		return decimal.Zero
	}
	if windowMonths <= 0 {
		windowMonths = DefaultWindowMonths
	}
	return sumRecords(records).Div(decimal.NewFromInt(int64(windowMonths)))
}

// AverageVariableExpense divides the total of records by the number of distinct
// calendar months that contain at least one record, so gaps do not dilute the figure.
// windowMonths only bounds what the caller fetched and does not affect the divisor.
func AverageVariableExpense(records []domain.CashRecord, windowMonths int) decimal.Decimal {
	if len(records) == 0 {
		return decimal.Zero
	}
	months := make(map[string]struct{})
	for _, r := range records {
		months[util.MonthKey(r.Date.Year(), r.Date.Month())] = struct{}{}
	}
	divisor := len(months)
	if divisor < 1 {
		divisor = 1
	}
	return sumRecords(records).Div(decimal.NewFromInt(int64(divisor)))
}

func sumRecords(records []domain.CashRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}
