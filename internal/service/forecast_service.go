package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/forecast"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ForecastService runs the forecast engine over caller-supplied or stored collections
type ForecastService struct {
	loanRepo         domain.LoanRepository
	fixedExpenseRepo domain.FixedExpenseRepository
	subscriptionRepo domain.SubscriptionRepository
	cashRecordRepo   domain.CashRecordRepository
	policy           forecast.PolicySet
	now              func() time.Time
}

// NewForecastService creates a new ForecastService
func NewForecastService(
	loanRepo domain.LoanRepository,
	fixedExpenseRepo domain.FixedExpenseRepository,
	subscriptionRepo domain.SubscriptionRepository,
	cashRecordRepo domain.CashRecordRepository,
	policy forecast.PolicySet,
) *ForecastService {
	return &ForecastService{
		loanRepo:         loanRepo,
		fixedExpenseRepo: fixedExpenseRepo,
		subscriptionRepo: subscriptionRepo,
		cashRecordRepo:   cashRecordRepo,
		policy:           policy,
		now:              time.Now,
	}
}

// WithClock replaces the clock used when a request carries no reference date
func (s *ForecastService) WithClock(now func() time.Time) *ForecastService {
	s.now = now
	return s
}

// Today returns the current date at midnight UTC
func (s *ForecastService) Today() time.Time {
	n := s.now().UTC()
	return util.CalculateActualDate(n.Year(), n.Month(), n.Day())
}

// SimulationDefaults are the baseline monthly figures a simulation started from
type SimulationDefaults struct {
	MonthlyIncome   decimal.Decimal
	MonthlyExpenses decimal.Decimal
}

// SimulationResult holds a cash-flow simulation and the baseline behind it
type SimulationResult struct {
	CashFlow []forecast.SimulationMonth
	Baseline forecast.Baseline
	Defaults SimulationDefaults
}

// BaselineOverrides replaces individual derived baseline figures when set
type BaselineOverrides struct {
	MonthlyIncome   *decimal.Decimal
	FixedExpenses   *decimal.Decimal
	AverageVariable *decimal.Decimal
	EMITotal        *decimal.Decimal
}

// Project builds an obligation projection from supplied collections.
// monthsAhead <= 0 uses the default; a zero referenceDate means today.
func (s *ForecastService) Project(sources forecast.Sources, monthsAhead int, referenceDate time.Time) (*forecast.Projection, error) {
	if monthsAhead <= 0 {
		monthsAhead = forecast.DefaultProjectionMonths
	}
	if referenceDate.IsZero() {
		referenceDate = s.Today()
	}

	projection, err := forecast.Project(sources, monthsAhead, referenceDate, s.policy)
	if err != nil {
		return nil, err
	}
	logSkipped(0, projection.Skipped)
	return projection, nil
}

// ProjectWorkspace builds an obligation projection from a workspace's stored collections
func (s *ForecastService) ProjectWorkspace(ctx context.Context, workspaceID int32, monthsAhead int) (*forecast.Projection, error) {
	if monthsAhead <= 0 {
		monthsAhead = forecast.DefaultProjectionMonths
	}

	sources, err := s.loadSources(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	projection, err := forecast.Project(sources, monthsAhead, s.Today(), s.policy)
	if err != nil {
		return nil, err
	}
	logSkipped(workspaceID, projection.Skipped)
	return projection, nil
}

// Simulate runs a cash-flow simulation from a supplied baseline
func (s *ForecastService) Simulate(baseline forecast.Baseline, overrides []domain.Override, months int, startingBalance decimal.Decimal) (*SimulationResult, error) {
	cashFlow, err := forecast.Simulate(baseline, overrides, months, startingBalance)
	if err != nil {
		return nil, err
	}
	return &SimulationResult{
		CashFlow: cashFlow,
		Baseline: baseline,
		Defaults: SimulationDefaults{
			MonthlyIncome:   baseline.MonthlyIncome,
			MonthlyExpenses: baseline.MonthlyExpenses(),
		},
	}, nil
}

// SimulateWorkspace derives a baseline from stored records, applies field overrides, and simulates
func (s *ForecastService) SimulateWorkspace(
	ctx context.Context,
	workspaceID int32,
	baselineOverrides BaselineOverrides,
	overrides []domain.Override,
	months int,
	startingBalance decimal.Decimal,
) (*SimulationResult, error) {
	baseline, err := s.DeriveBaseline(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return s.Simulate(baselineOverrides.Apply(*baseline), overrides, months, startingBalance)
}

// DeriveBaseline computes baseline figures for a workspace: trailing averages over the
// last DefaultWindowMonths complete months, plus the fixed, subscription and EMI totals
// due in the current month.
func (s *ForecastService) DeriveBaseline(ctx context.Context, workspaceID int32) (*forecast.Baseline, error) {
	today := s.Today()
	startYear, startMonth := util.AddMonths(today.Year(), today.Month(), -forecast.DefaultWindowMonths)
	windowStart := util.FirstOfMonth(startYear, startMonth)
	windowEnd := util.FirstOfMonth(today.Year(), today.Month())

	var (
		sources  forecast.Sources
		income   []domain.CashRecord
		variable []domain.CashRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sources, err = s.loadSources(gctx, workspaceID)
		return err
	})
	g.Go(func() error {
		var err error
		if income, err = s.cashRecordRepo.ListIncomeByDateRange(gctx, workspaceID, windowStart, windowEnd); err != nil {
			return fmt.Errorf("list income records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if variable, err = s.cashRecordRepo.ListVariableExpensesByDateRange(gctx, workspaceID, windowStart, windowEnd); err != nil {
			return fmt.Errorf("list variable expense records: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	current := forecast.Resolve(sources, today, s.policy)
	logSkipped(workspaceID, current.Skipped)

	baseline := &forecast.Baseline{
		MonthlyIncome:   forecast.AverageIncome(income, forecast.DefaultWindowMonths),
		AverageVariable: forecast.AverageVariableExpense(variable, forecast.DefaultWindowMonths),
		FixedExpenses:   decimal.Zero,
		EMITotal:        decimal.Zero,
	}
	for _, o := range current.Obligations {
		if o.Type == forecast.ObligationEMI {
			baseline.EMITotal = baseline.EMITotal.Add(o.Amount)
		} else {
			baseline.FixedExpenses = baseline.FixedExpenses.Add(o.Amount)
		}
	}

	log.Debug().
		Int32("workspace_id", workspaceID).
		Str("window_start", windowStart.Format("2006-01-02")).
		Int("income_records", len(income)).
		Int("variable_records", len(variable)).
		Msg("Derived simulation baseline")

	return baseline, nil
}

// loadSources fetches the three obligation-source collections concurrently;
// the first failure cancels the others.
func (s *ForecastService) loadSources(ctx context.Context, workspaceID int32) (forecast.Sources, error) {
	var sources forecast.Sources

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if sources.Loans, err = s.loanRepo.ListByWorkspace(gctx, workspaceID); err != nil {
			return fmt.Errorf("list loans: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if sources.FixedExpenses, err = s.fixedExpenseRepo.ListByWorkspace(gctx, workspaceID); err != nil {
			return fmt.Errorf("list fixed expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if sources.Subscriptions, err = s.subscriptionRepo.ListByWorkspace(gctx, workspaceID, true); err != nil {
			return fmt.Errorf("list subscriptions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return forecast.Sources{}, err
	}
	return sources, nil
}

// Apply returns b with every set field replaced
func (o BaselineOverrides) Apply(b forecast.Baseline) forecast.Baseline {
	if o.MonthlyIncome != nil {
		b.MonthlyIncome = *o.MonthlyIncome
	}
	if o.FixedExpenses != nil {
		b.FixedExpenses = *o.FixedExpenses
	}
	if o.AverageVariable != nil {
		b.AverageVariable = *o.AverageVariable
	}
	if o.EMITotal != nil {
		b.EMITotal = *o.EMITotal
	}
	return b
}

func logSkipped(workspaceID int32, skipped []forecast.SkippedRecord) {
	for _, sk := range skipped {
		log.Warn().
			Int32("workspace_id", workspaceID).
			Str("source", string(sk.Source)).
			Int32("source_id", sk.SourceID).
			Str("reason", sk.Reason).
			Msg("Skipped malformed obligation source")
	}
}
