package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/forecast"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/middleware"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ForecastHandler handles projection and simulation HTTP requests
type ForecastHandler struct {
	forecastService *service.ForecastService
}

// NewForecastHandler creates a new ForecastHandler
func NewForecastHandler(forecastService *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{
		forecastService: forecastService,
	}
}

// Project handles POST /api/v1/forecast/projection
// Projects obligations from the collections carried in the request body
func (h *ForecastHandler) Project(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req ProjectionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var referenceDate time.Time
	if req.ReferenceDate != nil && *req.ReferenceDate != "" {
		parsed, err := time.Parse(dateLayout, *req.ReferenceDate)
		if err != nil {
			return NewValidationError(c, "Invalid reference date", []ValidationError{{Field: "referenceDate", Message: "Must be in YYYY-MM-DD format"}})
		}
		referenceDate = parsed
	}

	monthsAhead := 0
	if req.MonthsAhead != nil {
		monthsAhead = *req.MonthsAhead
	}

	sources, rejected := req.toSources()

	projection, err := h.forecastService.Project(sources, monthsAhead, referenceDate)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "Failed to build projection")
	}

	return c.JSON(http.StatusOK, NewProjectionResponse(projection, rejected))
}

// ProjectWorkspace handles GET /api/v1/forecast/projection
// Accepts an optional monthsAhead query param
func (h *ForecastHandler) ProjectWorkspace(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	monthsAhead := 0
	if raw := c.QueryParam("monthsAhead"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return NewValidationError(c, "Invalid monthsAhead format", []ValidationError{{Field: "monthsAhead", Message: "Must be a valid integer"}})
		}
		monthsAhead = parsed
	}

	projection, err := h.forecastService.ProjectWorkspace(c.Request().Context(), workspaceID, monthsAhead)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "Failed to build projection")
	}

	return c.JSON(http.StatusOK, NewProjectionResponse(projection, nil))
}

// Simulate handles POST /api/v1/forecast/simulation
// Runs a cash-flow simulation from the baseline carried in the request body
func (h *ForecastHandler) Simulate(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req SimulationRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	baseline, errs := req.Baseline.toOverrides()
	overrides, overrideErrs := toOverrides(req.Overrides)
	errs = append(errs, overrideErrs...)
	startingBalance, balanceErr := parseOptionalMoney("startingBalance", req.StartingBalance)
	if balanceErr != nil {
		errs = append(errs, *balanceErr)
	}
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid simulation input", errs)
	}

	result, err := h.forecastService.Simulate(baseline.Apply(forecast.Baseline{}), overrides, req.months(), startingBalance)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "Failed to run simulation")
	}

	return c.JSON(http.StatusOK, NewSimulationResponse(result))
}

// SimulateWorkspace handles POST /api/v1/forecast/workspace-simulation
// Derives the baseline from stored records; baseline fields in the body replace derived ones
func (h *ForecastHandler) SimulateWorkspace(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req SimulationRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	baseline, errs := req.Baseline.toOverrides()
	overrides, overrideErrs := toOverrides(req.Overrides)
	errs = append(errs, overrideErrs...)
	startingBalance, balanceErr := parseOptionalMoney("startingBalance", req.StartingBalance)
	if balanceErr != nil {
		errs = append(errs, *balanceErr)
	}
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid simulation input", errs)
	}

	result, err := h.forecastService.SimulateWorkspace(c.Request().Context(), workspaceID, baseline, overrides, req.months(), startingBalance)
	if err != nil {
		return handleServiceError(c, err, workspaceID, "Failed to run simulation")
	}

	return c.JSON(http.StatusOK, NewSimulationResponse(result))
}

func (r SimulationRequest) months() int {
	if r.Months == nil {
		return forecast.DefaultSimulationMonths
	}
	return *r.Months
}

// toSources converts inline records, rejecting those whose amounts or dates do not parse
func (r ProjectionRequest) toSources() (forecast.Sources, []forecast.SkippedRecord) {
	var (
		sources  forecast.Sources
		rejected []forecast.SkippedRecord
	)

	for _, l := range r.Loans {
		amount, err := decimal.NewFromString(l.MonthlyAmount)
		if err != nil {
			rejected = append(rejected, reject(forecast.ObligationEMI, l.ID, l.Name, "monthly amount must be a decimal string"))
			continue
		}
		var start time.Time
		if l.StartDate != "" {
			if start, err = time.Parse(dateLayout, l.StartDate); err != nil {
				rejected = append(rejected, reject(forecast.ObligationEMI, l.ID, l.Name, "start date must be in YYYY-MM-DD format"))
				continue
			}
		}
		sources.Loans = append(sources.Loans, &domain.Loan{
			ID:            l.ID,
			Name:          l.Name,
			MonthlyAmount: amount,
			TotalMonths:   l.TotalMonths,
			StartDate:     start,
			PaidMonths:    l.PaidMonths,
		})
	}

	for _, f := range r.FixedExpenses {
		amount, err := decimal.NewFromString(f.Amount)
		if err != nil {
			rejected = append(rejected, reject(forecast.ObligationFixed, f.ID, f.Title, "amount must be a decimal string"))
			continue
		}
		sources.FixedExpenses = append(sources.FixedExpenses, &domain.FixedExpense{
			ID:         f.ID,
			Title:      f.Title,
			Amount:     amount,
			DayOfMonth: f.DayOfMonth,
		})
	}

	for _, s := range r.Subscriptions {
		amount, err := decimal.NewFromString(s.Amount)
		if err != nil {
			rejected = append(rejected, reject(forecast.ObligationSubscription, s.ID, s.Name, "amount must be a decimal string"))
			continue
		}
		frequency := domain.Frequency(s.Frequency)
		if frequency == "" {
			frequency = domain.FrequencyMonthly
		}
		active := true
		if s.IsActive != nil {
			active = *s.IsActive
		}
		sources.Subscriptions = append(sources.Subscriptions, &domain.Subscription{
			ID:         s.ID,
			Name:       s.Name,
			Amount:     amount,
			Frequency:  frequency,
			DayOfMonth: s.DayOfMonth,
			IsActive:   active,
		})
	}

	return sources, rejected
}

func reject(source forecast.ObligationType, id int32, name, reason string) forecast.SkippedRecord {
	return forecast.SkippedRecord{Source: source, SourceID: id, Name: name, Reason: reason}
}

// toOverrides parses each baseline field that is present
func (b BaselineRequest) toOverrides() (service.BaselineOverrides, []ValidationError) {
	var (
		out  service.BaselineOverrides
		errs []ValidationError
	)
	fields := []struct {
		name string
		raw  *string
		dst  **decimal.Decimal
	}{
		{"baseline.monthlyIncome", b.MonthlyIncome, &out.MonthlyIncome},
		{"baseline.fixedExpenses", b.FixedExpenses, &out.FixedExpenses},
		{"baseline.averageVariable", b.AverageVariable, &out.AverageVariable},
		{"baseline.emiTotal", b.EMITotal, &out.EMITotal},
	}
	for _, f := range fields {
		if f.raw == nil {
			continue
		}
		v, err := decimal.NewFromString(*f.raw)
		if err != nil {
			errs = append(errs, ValidationError{Field: f.name, Message: "Must be a decimal string"})
			continue
		}
		*f.dst = &v
	}
	return out, errs
}

func toOverrides(reqs []OverrideRequest) ([]domain.Override, []ValidationError) {
	var errs []ValidationError
	overrides := make([]domain.Override, 0, len(reqs))
	for i, r := range reqs {
		amount, err := decimal.NewFromString(r.Amount)
		if err != nil {
			errs = append(errs, ValidationError{Field: fmt.Sprintf("overrides[%d].amount", i), Message: "Must be a decimal string"})
			continue
		}
		overrides = append(overrides, domain.Override{
			MonthIndex: r.MonthIndex,
			Kind:       domain.OverrideKind(r.Kind),
			Amount:     amount,
			Label:      r.Label,
		})
	}
	return overrides, errs
}

func parseOptionalMoney(field string, raw *string) (decimal.Decimal, *ValidationError) {
	if raw == nil || *raw == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(*raw)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: field, Message: "Must be a decimal string"}
	}
	return v, nil
}
