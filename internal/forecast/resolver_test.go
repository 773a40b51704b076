package forecast

import (
	"testing"
	"time"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int32Ptr(v int32) *int32 { return &v }

func carLoan() *domain.Loan {
	return &domain.Loan{
		ID:            1,
		Name:          "Car Loan",
		MonthlyAmount: dec("8000"),
		TotalMonths:   24,
		StartDate:     date(2023, time.June, 10),
	}
}

func TestResolve_LoanActiveWindow(t *testing.T) {
	sources := Sources{Loans: []*domain.Loan{carLoan()}}
	policy := DefaultPolicySet()

	due := 0
	for i := -6; i < 36; i++ {
		target := date(2023, time.June, 1).AddDate(0, i, 0)
		res := Resolve(sources, target, policy)

		inWindow := !target.Before(date(2023, time.June, 1)) && target.Before(date(2025, time.June, 1))
		if !inWindow {
			assert.Empty(t, res.Obligations, "loan should not be due in %s", target.Format("2006-01"))
			continue
		}

		require.Len(t, res.Obligations, 1, "loan should be due in %s", target.Format("2006-01"))
		o := res.Obligations[0]
		assert.Equal(t, 10, o.DueDate.Day())
		assert.Equal(t, target.Month(), o.DueDate.Month())
		assert.Equal(t, ObligationEMI, o.Type)
		assert.Equal(t, PriorityCritical, o.Priority)
		assert.Equal(t, StatusUnknown, o.Status)
		assertDecimal(t, "8000", o.Amount)
		due++
	}
	assert.Equal(t, 24, due)
}

func TestResolve_LoanDueDayClamped(t *testing.T) {
	loan := carLoan()
	loan.StartDate = date(2024, time.January, 31)

	res := Resolve(Sources{Loans: []*domain.Loan{loan}}, date(2024, time.February, 1), DefaultPolicySet())

	require.Len(t, res.Obligations, 1)
	assert.Equal(t, date(2024, time.February, 29), res.Obligations[0].DueDate)
}

func TestResolve_FixedExpenseDay31(t *testing.T) {
	fe := &domain.FixedExpense{ID: 3, Title: "Gym", Amount: dec("1500"), DayOfMonth: 31}
	sources := Sources{FixedExpenses: []*domain.FixedExpense{fe}}

	tests := []struct {
		target  time.Time
		wantDay int
	}{
		{date(2025, time.February, 1), 28},
		{date(2024, time.February, 1), 29},
		{date(2025, time.April, 1), 30},
		{date(2025, time.May, 1), 31},
	}

	for _, tt := range tests {
		res := Resolve(sources, tt.target, DefaultPolicySet())
		require.Len(t, res.Obligations, 1)
		o := res.Obligations[0]
		assert.Equal(t, tt.wantDay, o.DueDate.Day(), tt.target.Format("2006-01"))
		assert.Equal(t, tt.target.Month(), o.DueDate.Month(), "due date must not roll over")
		assert.Equal(t, PriorityRoutine, o.Priority)
		assert.Equal(t, ObligationFixed, o.Type)
	}
}

func TestResolve_FixedExpensePriorities(t *testing.T) {
	sources := Sources{FixedExpenses: []*domain.FixedExpense{
		{ID: 1, Title: "Home Rent", Amount: dec("15000"), DayOfMonth: 1},
		{ID: 2, Title: "Gym", Amount: dec("1500"), DayOfMonth: 2},
		{ID: 3, Title: "Car Insurance", Amount: dec("3000"), DayOfMonth: 3},
	}}

	res := Resolve(sources, date(2025, time.March, 1), DefaultPolicySet())

	require.Len(t, res.Obligations, 3)
	assert.Equal(t, PriorityCritical, res.Obligations[0].Priority)
	assert.Equal(t, PriorityRoutine, res.Obligations[1].Priority)
	assert.Equal(t, PriorityCritical, res.Obligations[2].Priority)
}

func TestResolve_Subscriptions(t *testing.T) {
	sources := Sources{Subscriptions: []*domain.Subscription{
		{ID: 1, Name: "Streaming", Amount: dec("15"), Frequency: domain.FrequencyMonthly, DayOfMonth: int32Ptr(12), IsActive: true},
		{ID: 2, Name: "Design Suite", Amount: dec("1200"), Frequency: domain.FrequencyMonthly, DayOfMonth: int32Ptr(31), IsActive: true},
		{ID: 3, Name: "Paused Gym App", Amount: dec("20"), Frequency: domain.FrequencyMonthly, DayOfMonth: int32Ptr(5), IsActive: false},
		{ID: 4, Name: "Domain Renewal", Amount: dec("60"), Frequency: domain.FrequencyYearly, DayOfMonth: int32Ptr(5), IsActive: true},
		{ID: 5, Name: "News", Amount: dec("9"), Frequency: domain.FrequencyMonthly, IsActive: true},
	}}

	res := Resolve(sources, date(2025, time.June, 18), DefaultPolicySet())

	require.Len(t, res.Obligations, 3)
	assert.Empty(t, res.Skipped)

	assert.Equal(t, "Streaming", res.Obligations[0].Name)
	assert.Equal(t, 12, res.Obligations[0].DueDate.Day())
	assert.Equal(t, PriorityRoutine, res.Obligations[0].Priority)

	assert.Equal(t, "News", res.Obligations[1].Name)
	assert.Equal(t, 18, res.Obligations[1].DueDate.Day(), "nil day falls back to the reference day")

	assert.Equal(t, "Design Suite", res.Obligations[2].Name)
	assert.Equal(t, 30, res.Obligations[2].DueDate.Day())
	assert.Equal(t, PriorityImportant, res.Obligations[2].Priority)
}

func TestResolve_SortsByDueDateThenPriority(t *testing.T) {
	sources := Sources{
		Loans: []*domain.Loan{
			{ID: 9, Name: "Phone", MonthlyAmount: dec("100"), TotalMonths: 12, StartDate: date(2025, time.January, 15)},
		},
		FixedExpenses: []*domain.FixedExpense{
			{ID: 1, Title: "Water", Amount: dec("50"), DayOfMonth: 15},
			{ID: 2, Title: "Internet", Amount: dec("2500"), DayOfMonth: 15},
			{ID: 3, Title: "Rent", Amount: dec("1200"), DayOfMonth: 1},
		},
		Subscriptions: []*domain.Subscription{
			{ID: 4, Name: "Cloud", Amount: dec("5"), Frequency: domain.FrequencyMonthly, DayOfMonth: int32Ptr(15), IsActive: true},
		},
	}

	res := Resolve(sources, date(2025, time.March, 1), DefaultPolicySet())

	names := make([]string, 0, len(res.Obligations))
	for _, o := range res.Obligations {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{"Rent", "Phone", "Internet", "Water", "Cloud"}, names)
}

func TestResolve_SkipsMalformedRecords(t *testing.T) {
	noStart := carLoan()
	noStart.ID = 2
	noStart.StartDate = time.Time{}

	sources := Sources{
		Loans: []*domain.Loan{nil, noStart, carLoan()},
		FixedExpenses: []*domain.FixedExpense{
			{ID: 7, Title: "Broken", Amount: dec("10"), DayOfMonth: 0},
			{ID: 8, Title: "Rent", Amount: dec("10"), DayOfMonth: 5},
		},
		Subscriptions: []*domain.Subscription{
			{ID: 11, Name: "Free", Amount: dec("0"), Frequency: domain.FrequencyMonthly, IsActive: true},
		},
	}

	res := Resolve(sources, date(2024, time.March, 1), DefaultPolicySet())

	assert.Len(t, res.Obligations, 2)
	require.Len(t, res.Skipped, 4)
	assert.Equal(t, SkippedRecord{Source: ObligationEMI, Reason: "nil record"}, res.Skipped[0])
	assert.Equal(t, int32(2), res.Skipped[1].SourceID)
	assert.Equal(t, domain.ErrLoanStartDateMissing.Error(), res.Skipped[1].Reason)
	assert.Equal(t, ObligationFixed, res.Skipped[2].Source)
	assert.Equal(t, ObligationSubscription, res.Skipped[3].Source)
}

func TestResolve_EmptySources(t *testing.T) {
	res := Resolve(Sources{}, date(2025, time.January, 1), DefaultPolicySet())
	assert.Empty(t, res.Obligations)
	assert.Empty(t, res.Skipped)
}

func TestResolve_CustomPolicy(t *testing.T) {
	policy := DefaultPolicySet()
	policy.Loan = PriorityPolicy{
		Rules:   []PriorityRule{{Keywords: []string{"bnpl"}, Priority: PriorityRoutine}},
		Default: PriorityCritical,
	}
	loan := carLoan()
	loan.Name = "BNPL headphones"

	res := Resolve(Sources{Loans: []*domain.Loan{loan}}, date(2024, time.January, 1), policy)

	require.Len(t, res.Obligations, 1)
	assert.Equal(t, PriorityRoutine, res.Obligations[0].Priority)
	assert.Equal(t, "emi-1-2024-01", res.Obligations[0].ID)
}
