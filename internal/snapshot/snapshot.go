// Package snapshot reads a workspace's obligation sources and cash records from a TOML
// file so forecasts can run offline against the same service the API uses.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/forecast"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/service"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// File is the on-disk layout. Money is written as strings, dates as YYYY-MM-DD.
type File struct {
	ReferenceDate    string             `toml:"reference_date"`
	StartingBalance  *decimal.Decimal   `toml:"starting_balance"`
	Baseline         BaselineFile       `toml:"baseline"`
	Loans            []LoanFile         `toml:"loans"`
	FixedExpenses    []FixedExpenseFile `toml:"fixed_expenses"`
	Subscriptions    []SubscriptionFile `toml:"subscriptions"`
	Income           []CashRecordFile   `toml:"income"`
	VariableExpenses []CashRecordFile   `toml:"variable_expenses"`
	Overrides        []OverrideFile     `toml:"overrides"`
}

type BaselineFile struct {
	MonthlyIncome   *decimal.Decimal `toml:"monthly_income"`
	FixedExpenses   *decimal.Decimal `toml:"fixed_expenses"`
	AverageVariable *decimal.Decimal `toml:"average_variable"`
	EMITotal        *decimal.Decimal `toml:"emi_total"`
}

type LoanFile struct {
	ID            int32           `toml:"id"`
	Name          string          `toml:"name"`
	MonthlyAmount decimal.Decimal `toml:"monthly_amount"`
	TotalMonths   int32           `toml:"total_months"`
	StartDate     string          `toml:"start_date"`
	PaidMonths    int32           `toml:"paid_months"`
}

type FixedExpenseFile struct {
	ID         int32           `toml:"id"`
	Title      string          `toml:"title"`
	Amount     decimal.Decimal `toml:"amount"`
	DayOfMonth int32           `toml:"day_of_month"`
}

type SubscriptionFile struct {
	ID         int32           `toml:"id"`
	Name       string          `toml:"name"`
	Amount     decimal.Decimal `toml:"amount"`
	Frequency  string          `toml:"frequency"`
	DayOfMonth *int32          `toml:"day_of_month"`
	IsActive   *bool           `toml:"is_active"`
}

type CashRecordFile struct {
	Date   string          `toml:"date"`
	Amount decimal.Decimal `toml:"amount"`
}

type OverrideFile struct {
	MonthIndex int             `toml:"month_index"`
	Kind       string          `toml:"kind"`
	Amount     decimal.Decimal `toml:"amount"`
	Label      string          `toml:"label"`
}

// Snapshot is a decoded, single-workspace view of stored records
type Snapshot struct {
	// ReferenceDate is zero when the file leaves it out
	ReferenceDate    time.Time
	StartingBalance  decimal.Decimal
	Baseline         service.BaselineOverrides
	Sources          forecast.Sources
	Income           []domain.CashRecord
	VariableExpenses []domain.CashRecord
	Overrides        []domain.Override
}

// Load reads and decodes a snapshot file
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return Parse(data)
}

// Parse decodes snapshot TOML. Unparseable dates are rejected, except a loan's
// start date, which is left zero so the engine reports the loan as skipped.
func Parse(data []byte) (*Snapshot, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	s := &Snapshot{
		Baseline: service.BaselineOverrides{
			MonthlyIncome:   f.Baseline.MonthlyIncome,
			FixedExpenses:   f.Baseline.FixedExpenses,
			AverageVariable: f.Baseline.AverageVariable,
			EMITotal:        f.Baseline.EMITotal,
		},
	}
	if f.StartingBalance != nil {
		s.StartingBalance = *f.StartingBalance
	}

	var err error
	if f.ReferenceDate != "" {
		if s.ReferenceDate, err = time.Parse(dateLayout, f.ReferenceDate); err != nil {
			return nil, fmt.Errorf("%w: reference_date %q", domain.ErrInvalidInput, f.ReferenceDate)
		}
	}

	for _, l := range f.Loans {
		start, _ := time.Parse(dateLayout, l.StartDate)
		s.Sources.Loans = append(s.Sources.Loans, &domain.Loan{
			ID:            l.ID,
			Name:          l.Name,
			MonthlyAmount: l.MonthlyAmount,
			TotalMonths:   l.TotalMonths,
			StartDate:     start,
			PaidMonths:    l.PaidMonths,
		})
	}

	for _, fe := range f.FixedExpenses {
		s.Sources.FixedExpenses = append(s.Sources.FixedExpenses, &domain.FixedExpense{
			ID:         fe.ID,
			Title:      fe.Title,
			Amount:     fe.Amount,
			DayOfMonth: fe.DayOfMonth,
		})
	}

	for _, sub := range f.Subscriptions {
		frequency := domain.Frequency(sub.Frequency)
		if frequency == "" {
			frequency = domain.FrequencyMonthly
		}
		active := true
		if sub.IsActive != nil {
			active = *sub.IsActive
		}
		s.Sources.Subscriptions = append(s.Sources.Subscriptions, &domain.Subscription{
			ID:         sub.ID,
			Name:       sub.Name,
			Amount:     sub.Amount,
			Frequency:  frequency,
			DayOfMonth: sub.DayOfMonth,
			IsActive:   active,
		})
	}

	if s.Income, err = cashRecords("income", f.Income); err != nil {
		return nil, err
	}
	if s.VariableExpenses, err = cashRecords("variable_expenses", f.VariableExpenses); err != nil {
		return nil, err
	}

	for _, o := range f.Overrides {
		s.Overrides = append(s.Overrides, domain.Override{
			MonthIndex: o.MonthIndex,
			Kind:       domain.OverrideKind(o.Kind),
			Amount:     o.Amount,
			Label:      o.Label,
		})
	}

	return s, nil
}

func cashRecords(table string, in []CashRecordFile) ([]domain.CashRecord, error) {
	out := make([]domain.CashRecord, 0, len(in))
	for i, r := range in {
		date, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d].date %q", domain.ErrInvalidInput, table, i, r.Date)
		}
		out = append(out, domain.CashRecord{Date: date, Amount: r.Amount})
	}
	return out, nil
}

// Service returns a ForecastService that reads this snapshot in place of the database.
// Its clock is pinned to ReferenceDate when one is set.
func (s *Snapshot) Service(policy forecast.PolicySet) *service.ForecastService {
	svc := service.NewForecastService(
		loanSource(s.Sources.Loans),
		fixedExpenseSource(s.Sources.FixedExpenses),
		subscriptionSource(s.Sources.Subscriptions),
		cashSource{income: s.Income, variable: s.VariableExpenses},
		policy,
	)
	if !s.ReferenceDate.IsZero() {
		ref := s.ReferenceDate
		svc.WithClock(func() time.Time { return ref })
	}
	return svc
}

// The snapshot holds one workspace, so workspace IDs are ignored below.

type loanSource []*domain.Loan

func (l loanSource) ListByWorkspace(ctx context.Context, workspaceID int32) ([]*domain.Loan, error) {
	return l, nil
}

type fixedExpenseSource []*domain.FixedExpense

func (f fixedExpenseSource) ListByWorkspace(ctx context.Context, workspaceID int32) ([]*domain.FixedExpense, error) {
	return f, nil
}

type subscriptionSource []*domain.Subscription

func (s subscriptionSource) ListByWorkspace(ctx context.Context, workspaceID int32, activeOnly bool) ([]*domain.Subscription, error) {
	if !activeOnly {
		return s, nil
	}
	active := make([]*domain.Subscription, 0, len(s))
	for _, sub := range s {
		if sub != nil && sub.IsActive {
			active = append(active, sub)
		}
	}
	return active, nil
}

type cashSource struct {
	income   []domain.CashRecord
	variable []domain.CashRecord
}

func (c cashSource) ListIncomeByDateRange(ctx context.Context, workspaceID int32, start, end time.Time) ([]domain.CashRecord, error) {
	return inRange(c.income, start, end), nil
}

func (c cashSource) ListVariableExpensesByDateRange(ctx context.Context, workspaceID int32, start, end time.Time) ([]domain.CashRecord, error) {
	return inRange(c.variable, start, end), nil
}

func inRange(records []domain.CashRecord, start, end time.Time) []domain.CashRecord {
	var out []domain.CashRecord
	for _, r := range records {
		if !r.Date.Before(start) && r.Date.Before(end) {
			out = append(out, r)
		}
	}
	return out
}
