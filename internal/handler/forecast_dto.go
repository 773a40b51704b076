package handler

import (
	"github.com/dafibh/fortuna/fortuna-forecast/internal/forecast"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/service"
)

const dateLayout = "2006-01-02"

// LoanRequest is an installment loan supplied inline
type LoanRequest struct {
	ID            int32  `json:"id"`
	Name          string `json:"name"`
	MonthlyAmount string `json:"monthlyAmount"`
	TotalMonths   int32  `json:"totalMonths"`
	StartDate     string `json:"startDate"`
	PaidMonths    int32  `json:"paidMonths"`
}

// FixedExpenseRequest is a fixed recurring expense supplied inline
type FixedExpenseRequest struct {
	ID         int32  `json:"id"`
	Title      string `json:"title"`
	Amount     string `json:"amount"`
	DayOfMonth int32  `json:"dayOfMonth"`
}

// SubscriptionRequest is a subscription supplied inline
type SubscriptionRequest struct {
	ID         int32  `json:"id"`
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	Frequency  string `json:"frequency"` // defaults to monthly
	DayOfMonth *int32 `json:"dayOfMonth,omitempty"`
	IsActive   *bool  `json:"isActive,omitempty"` // defaults to true
}

// ProjectionRequest represents the stateless projection request body
type ProjectionRequest struct {
	Loans         []LoanRequest         `json:"loans"`
	FixedExpenses []FixedExpenseRequest `json:"fixedExpenses"`
	Subscriptions []SubscriptionRequest `json:"subscriptions"`
	MonthsAhead   *int                  `json:"monthsAhead,omitempty"`
	ReferenceDate *string               `json:"referenceDate,omitempty"` // YYYY-MM-DD, defaults to today
}

// BaselineRequest carries baseline figures; absent fields are zero for stateless
// simulations and keep the derived value for workspace simulations
type BaselineRequest struct {
	MonthlyIncome   *string `json:"monthlyIncome,omitempty"`
	FixedExpenses   *string `json:"fixedExpenses,omitempty"`
	AverageVariable *string `json:"averageVariable,omitempty"`
	EMITotal        *string `json:"emiTotal,omitempty"`
}

// OverrideRequest is a single simulation override event
type OverrideRequest struct {
	MonthIndex int    `json:"monthIndex"`
	Kind       string `json:"kind"`
	Amount     string `json:"amount"`
	Label      string `json:"label"`
}

// SimulationRequest represents the simulation request body
type SimulationRequest struct {
	Baseline        BaselineRequest   `json:"baseline"`
	Overrides       []OverrideRequest `json:"overrides"`
	Months          *int              `json:"months,omitempty"`
	StartingBalance *string           `json:"startingBalance,omitempty"`
}

// ObligationResponse represents an obligation in API responses
type ObligationResponse struct {
	ID       string `json:"id"`
	SourceID int32  `json:"sourceId"`
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	DueDate  string `json:"dueDate"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
}

// ProjectionMonthResponse represents one projected month
type ProjectionMonthResponse struct {
	Year           int                  `json:"year"`
	Month          int                  `json:"month"`
	Label          string               `json:"label"`
	Obligations    []ObligationResponse `json:"obligations"`
	TotalAmount    string               `json:"totalAmount"`
	CriticalTotal  string               `json:"criticalTotal"`
	ImportantTotal string               `json:"importantTotal"`
	RoutineTotal   string               `json:"routineTotal"`
	TotalsByType   map[string]string    `json:"totalsByType"`
}

// SkippedRecordResponse describes a source record left out of the projection
type SkippedRecordResponse struct {
	Source   string `json:"source"`
	SourceID int32  `json:"sourceId"`
	Name     string `json:"name,omitempty"`
	Reason   string `json:"reason"`
}

// ProjectionResponse represents the projection call output
type ProjectionResponse struct {
	Projection []ProjectionMonthResponse `json:"projection"`
	Skipped    []SkippedRecordResponse   `json:"skipped"`
}

// SimulationMonthResponse represents one simulated month
type SimulationMonthResponse struct {
	Index          int      `json:"index"`
	Income         string   `json:"income"`
	Expenses       string   `json:"expenses"`
	NetFlow        string   `json:"netFlow"`
	RunningBalance string   `json:"runningBalance"`
	Events         []string `json:"events"`
}

// SimulationDefaultsResponse holds the baseline monthly totals
type SimulationDefaultsResponse struct {
	MonthlyIncome   string `json:"monthlyIncome"`
	MonthlyExpenses string `json:"monthlyExpenses"`
}

// BaselineResponse echoes the baseline a simulation ran from
type BaselineResponse struct {
	MonthlyIncome   string `json:"monthlyIncome"`
	FixedExpenses   string `json:"fixedExpenses"`
	AverageVariable string `json:"averageVariable"`
	EMITotal        string `json:"emiTotal"`
}

// SimulationResponse represents the simulation call output
type SimulationResponse struct {
	CashFlow []SimulationMonthResponse  `json:"cashFlow"`
	Defaults SimulationDefaultsResponse `json:"defaults"`
	Baseline BaselineResponse           `json:"baseline"`
}

// NewProjectionResponse converts a projection to its JSON shape. extraSkipped lists
// records rejected before they reached the engine.
func NewProjectionResponse(p *forecast.Projection, extraSkipped []forecast.SkippedRecord) ProjectionResponse {
	resp := ProjectionResponse{
		Projection: make([]ProjectionMonthResponse, 0, len(p.Months)),
		Skipped:    make([]SkippedRecordResponse, 0, len(extraSkipped)+len(p.Skipped)),
	}

	for _, m := range p.Months {
		obligations := make([]ObligationResponse, 0, len(m.Obligations))
		for _, o := range m.Obligations {
			obligations = append(obligations, ObligationResponse{
				ID:       o.ID,
				SourceID: o.SourceID,
				Name:     o.Name,
				Amount:   o.Amount.StringFixed(2),
				DueDate:  o.DueDate.Format(dateLayout),
				Type:     string(o.Type),
				Priority: string(o.Priority),
				Status:   string(o.Status),
			})
		}
		byType := make(map[string]string, 3)
		for t, total := range m.TotalsByType() {
			byType[string(t)] = total.StringFixed(2)
		}
		resp.Projection = append(resp.Projection, ProjectionMonthResponse{
			Year:           m.Year,
			Month:          int(m.Month),
			Label:          m.Label,
			Obligations:    obligations,
			TotalAmount:    m.TotalAmount.StringFixed(2),
			CriticalTotal:  m.CriticalTotal.StringFixed(2),
			ImportantTotal: m.ImportantTotal.StringFixed(2),
			RoutineTotal:   m.RoutineTotal.StringFixed(2),
			TotalsByType:   byType,
		})
	}

	for _, group := range [][]forecast.SkippedRecord{extraSkipped, p.Skipped} {
		for _, s := range group {
			resp.Skipped = append(resp.Skipped, SkippedRecordResponse{
				Source:   string(s.Source),
				SourceID: s.SourceID,
				Name:     s.Name,
				Reason:   s.Reason,
			})
		}
	}

	return resp
}

// NewSimulationResponse converts a simulation result to its JSON shape
func NewSimulationResponse(r *service.SimulationResult) SimulationResponse {
	resp := SimulationResponse{
		CashFlow: make([]SimulationMonthResponse, 0, len(r.CashFlow)),
		Defaults: SimulationDefaultsResponse{
			MonthlyIncome:   r.Defaults.MonthlyIncome.StringFixed(2),
			MonthlyExpenses: r.Defaults.MonthlyExpenses.StringFixed(2),
		},
		Baseline: BaselineResponse{
			MonthlyIncome:   r.Baseline.MonthlyIncome.StringFixed(2),
			FixedExpenses:   r.Baseline.FixedExpenses.StringFixed(2),
			AverageVariable: r.Baseline.AverageVariable.StringFixed(2),
			EMITotal:        r.Baseline.EMITotal.StringFixed(2),
		},
	}
	for _, m := range r.CashFlow {
		resp.CashFlow = append(resp.CashFlow, SimulationMonthResponse{
			Index:          m.Index,
			Income:         m.Income.StringFixed(2),
			Expenses:       m.Expenses.StringFixed(2),
			NetFlow:        m.NetFlow.StringFixed(2),
			RunningBalance: m.RunningBalance.StringFixed(2),
			Events:         m.Events,
		})
	}
	return resp
}
