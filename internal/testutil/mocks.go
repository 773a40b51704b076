package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
)

// MockLoanRepository is a mock implementation of domain.LoanRepository
type MockLoanRepository struct {
	Loans map[int32][]*domain.Loan
	Err   error
}

// NewMockLoanRepository creates a new MockLoanRepository
func NewMockLoanRepository() *MockLoanRepository {
	return &MockLoanRepository{Loans: make(map[int32][]*domain.Loan)}
}

// AddLoan adds a loan to its workspace
func (m *MockLoanRepository) AddLoan(loan *domain.Loan) {
	m.Loans[loan.WorkspaceID] = append(m.Loans[loan.WorkspaceID], loan)
}

// ListByWorkspace returns the loans of a workspace
func (m *MockLoanRepository) ListByWorkspace(ctx context.Context, workspaceID int32) ([]*domain.Loan, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Loans[workspaceID], nil
}

// MockFixedExpenseRepository is a mock implementation of domain.FixedExpenseRepository
type MockFixedExpenseRepository struct {
	Expenses map[int32][]*domain.FixedExpense
	Err      error
}

// NewMockFixedExpenseRepository creates a new MockFixedExpenseRepository
func NewMockFixedExpenseRepository() *MockFixedExpenseRepository {
	return &MockFixedExpenseRepository{Expenses: make(map[int32][]*domain.FixedExpense)}
}

// AddFixedExpense adds a fixed expense to its workspace
func (m *MockFixedExpenseRepository) AddFixedExpense(fe *domain.FixedExpense) {
	m.Expenses[fe.WorkspaceID] = append(m.Expenses[fe.WorkspaceID], fe)
}

// ListByWorkspace returns the fixed expenses of a workspace
func (m *MockFixedExpenseRepository) ListByWorkspace(ctx context.Context, workspaceID int32) ([]*domain.FixedExpense, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Expenses[workspaceID], nil
}

// MockSubscriptionRepository is a mock implementation of domain.SubscriptionRepository
type MockSubscriptionRepository struct {
	Subscriptions map[int32][]*domain.Subscription
	Err           error
}

// NewMockSubscriptionRepository creates a new MockSubscriptionRepository
func NewMockSubscriptionRepository() *MockSubscriptionRepository {
	return &MockSubscriptionRepository{Subscriptions: make(map[int32][]*domain.Subscription)}
}

// AddSubscription adds a subscription to its workspace
func (m *MockSubscriptionRepository) AddSubscription(s *domain.Subscription) {
	m.Subscriptions[s.WorkspaceID] = append(m.Subscriptions[s.WorkspaceID], s)
}

// ListByWorkspace returns the subscriptions of a workspace
func (m *MockSubscriptionRepository) ListByWorkspace(ctx context.Context, workspaceID int32, activeOnly bool) ([]*domain.Subscription, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []*domain.Subscription
	for _, s := range m.Subscriptions[workspaceID] {
		if activeOnly && !s.IsActive {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

// MockCashRecordRepository is a mock implementation of domain.CashRecordRepository
type MockCashRecordRepository struct {
	Income   map[int32][]domain.CashRecord
	Expenses map[int32][]domain.CashRecord
	Err      error

	mu        sync.Mutex
	LastStart time.Time
	LastEnd   time.Time
}

// NewMockCashRecordRepository creates a new MockCashRecordRepository
func NewMockCashRecordRepository() *MockCashRecordRepository {
	return &MockCashRecordRepository{
		Income:   make(map[int32][]domain.CashRecord),
		Expenses: make(map[int32][]domain.CashRecord),
	}
}

// AddIncome adds an income record to a workspace
func (m *MockCashRecordRepository) AddIncome(workspaceID int32, date time.Time, amount string) {
	m.Income[workspaceID] = append(m.Income[workspaceID], record(date, amount))
}

// AddExpense adds a variable expense record to a workspace
func (m *MockCashRecordRepository) AddExpense(workspaceID int32, date time.Time, amount string) {
	m.Expenses[workspaceID] = append(m.Expenses[workspaceID], record(date, amount))
}

// ListIncomeByDateRange returns income records in [start, end)
func (m *MockCashRecordRepository) ListIncomeByDateRange(ctx context.Context, workspaceID int32, start, end time.Time) ([]domain.CashRecord, error) {
	return m.filter(m.Income[workspaceID], start, end)
}

// ListVariableExpensesByDateRange returns variable expense records in [start, end)
func (m *MockCashRecordRepository) ListVariableExpensesByDateRange(ctx context.Context, workspaceID int32, start, end time.Time) ([]domain.CashRecord, error) {
	return m.filter(m.Expenses[workspaceID], start, end)
}

func (m *MockCashRecordRepository) filter(records []domain.CashRecord, start, end time.Time) ([]domain.CashRecord, error) {
	m.mu.Lock()
	m.LastStart, m.LastEnd = start, end
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	var result []domain.CashRecord
	for _, r := range records {
		if !r.Date.Before(start) && r.Date.Before(end) {
			result = append(result, r)
		}
	}
	return result, nil
}

// MockWorkspaceRepository is a mock implementation of domain.WorkspaceRepository
type MockWorkspaceRepository struct {
	ByAuth0ID map[string]*domain.Workspace
}

// NewMockWorkspaceRepository creates a new MockWorkspaceRepository
func NewMockWorkspaceRepository() *MockWorkspaceRepository {
	return &MockWorkspaceRepository{ByAuth0ID: make(map[string]*domain.Workspace)}
}

// GetByUserAuth0ID retrieves a workspace by user's Auth0 ID
func (m *MockWorkspaceRepository) GetByUserAuth0ID(ctx context.Context, auth0ID string) (*domain.Workspace, error) {
	if ws, ok := m.ByAuth0ID[auth0ID]; ok {
		return ws, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}
