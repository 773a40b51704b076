// Package forecast projects upcoming obligations and simulates month-by-month cash flow.
// Every function here is pure: inputs are already-scoped, in-memory collections and
// nothing is cached between calls.
package forecast

import (
	"time"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
	"github.com/shopspring/decimal"
)

type ObligationType string

const (
	ObligationEMI          ObligationType = "emi"
	ObligationFixed        ObligationType = "fixed"
	ObligationSubscription ObligationType = "subscription"
)

type Priority string

const (
	PriorityCritical  Priority = "critical"
	PriorityImportant Priority = "important"
	PriorityRoutine   Priority = "routine"
)

// Rank orders priorities for sorting; lower ranks sort first
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityImportant:
		return 1
	case PriorityRoutine:
		return 2
	}
	return 3
}

// IsValid reports whether p is a known tier
func (p Priority) IsValid() bool {
	return p.Rank() < 3
}

// ObligationStatus is always StatusUnknown today: the engine never sees payments.
type ObligationStatus string

const (
	StatusUnknown ObligationStatus = "unknown"
	StatusPending ObligationStatus = "pending"
	StatusPaid    ObligationStatus = "paid"
)

// Obligation is one scheduled payment in one month
type Obligation struct {
	ID       string
	SourceID int32
	Name     string
	Amount   decimal.Decimal
	DueDate  time.Time
	Type     ObligationType
	Priority Priority
	Status   ObligationStatus
}

// SkippedRecord describes a source record that could not be resolved
type SkippedRecord struct {
	Source   ObligationType
	SourceID int32
	Name     string
	Reason   string
}

// Sources groups the obligation-source collections for one workspace
type Sources struct {
	Loans         []*domain.Loan
	FixedExpenses []*domain.FixedExpense
	Subscriptions []*domain.Subscription
}

// Resolution is the output of Resolve for a single month
type Resolution struct {
	Obligations []Obligation
	Skipped     []SkippedRecord
}

// ProjectionMonth is the sorted list of obligations due in one month with totals
type ProjectionMonth struct {
	Year           int
	Month          time.Month
	Label          string
	Obligations    []Obligation
	TotalAmount    decimal.Decimal
	CriticalTotal  decimal.Decimal
	ImportantTotal decimal.Decimal
	RoutineTotal   decimal.Decimal
}

// Projection is the output of Project
type Projection struct {
	Months  []ProjectionMonth
	Skipped []SkippedRecord
}

// Baseline holds the monthly figures a simulation starts from
type Baseline struct {
	MonthlyIncome   decimal.Decimal
	FixedExpenses   decimal.Decimal
	AverageVariable decimal.Decimal
	EMITotal        decimal.Decimal
}

// MonthlyExpenses is the sum of every baseline outflow
func (b Baseline) MonthlyExpenses() decimal.Decimal {
	return b.FixedExpenses.Add(b.AverageVariable).Add(b.EMITotal)
}

// SimulationMonth is one step of a cash-flow simulation
type SimulationMonth struct {
	Index          int
	Income         decimal.Decimal
	Expenses       decimal.Decimal
	NetFlow        decimal.Decimal
	RunningBalance decimal.Decimal
	// Events lists the labels of overrides applied this month, in input order
	Events []string
}
