package forecast

import (
	"errors"
	"testing"
	"time"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSources() Sources {
	return Sources{
		Loans: []*domain.Loan{
			{ID: 1, Name: "Phone", MonthlyAmount: dec("500"), TotalMonths: 2, StartDate: date(2025, time.January, 20)},
		},
		FixedExpenses: []*domain.FixedExpense{
			{ID: 2, Title: "Home Rent", Amount: dec("15000"), DayOfMonth: 1},
			{ID: 3, Title: "Internet", Amount: dec("2500"), DayOfMonth: 31},
			{ID: 4, Title: "Gym", Amount: dec("1500"), DayOfMonth: 5},
		},
		Subscriptions: []*domain.Subscription{
			{ID: 5, Name: "Music", Amount: dec("12.99"), Frequency: domain.FrequencyMonthly, DayOfMonth: int32Ptr(8), IsActive: true},
		},
	}
}

func TestProject_MonthsAndTotals(t *testing.T) {
	p, err := Project(sampleSources(), 3, date(2025, time.January, 31), DefaultPolicySet())
	require.NoError(t, err)
	require.Len(t, p.Months, 3)

	jan := p.Months[0]
	assert.Equal(t, "January 2025", jan.Label)
	assert.Len(t, jan.Obligations, 5)
	assertDecimal(t, "19512.99", jan.TotalAmount)
	assertDecimal(t, "15500", jan.CriticalTotal)
	assertDecimal(t, "2500", jan.ImportantTotal)
	assertDecimal(t, "1512.99", jan.RoutineTotal)

	feb := p.Months[1]
	assert.Equal(t, "February 2025", feb.Label)
	assert.Equal(t, time.February, feb.Month)
	require.Len(t, feb.Obligations, 5)
	last := feb.Obligations[len(feb.Obligations)-1]
	assert.Equal(t, "Internet", last.Name)
	assert.Equal(t, 28, last.DueDate.Day())

	mar := p.Months[2]
	assert.Len(t, mar.Obligations, 4, "two-month loan has ended by March")
	assertDecimal(t, "15000", mar.CriticalTotal)
	assertDecimal(t, "19012.99", mar.TotalAmount)
}

func TestProject_AcrossYearBoundary(t *testing.T) {
	p, err := Project(Sources{}, 3, date(2025, time.November, 15), DefaultPolicySet())
	require.NoError(t, err)

	labels := []string{p.Months[0].Label, p.Months[1].Label, p.Months[2].Label}
	assert.Equal(t, []string{"November 2025", "December 2025", "January 2026"}, labels)
	for _, m := range p.Months {
		assert.Empty(t, m.Obligations)
		assertDecimal(t, "0", m.TotalAmount)
	}
}

func TestProject_RejectsInvalidMonthsAhead(t *testing.T) {
	for _, n := range []int{0, -1, MaxProjectionMonths + 1} {
		_, err := Project(sampleSources(), n, date(2025, time.January, 1), DefaultPolicySet())
		assert.True(t, errors.Is(err, domain.ErrInvalidArgument), "monthsAhead=%d", n)
	}
}

func TestProject_IsIdempotent(t *testing.T) {
	ref := date(2025, time.January, 31)

	first, err := Project(sampleSources(), 6, ref, DefaultPolicySet())
	require.NoError(t, err)
	second, err := Project(sampleSources(), 6, ref, DefaultPolicySet())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestProject_DeduplicatesSkippedRecords(t *testing.T) {
	sources := sampleSources()
	sources.FixedExpenses = append(sources.FixedExpenses, &domain.FixedExpense{ID: 99, Title: "", Amount: dec("10"), DayOfMonth: 1})

	p, err := Project(sources, 4, date(2025, time.January, 1), DefaultPolicySet())
	require.NoError(t, err)

	require.Len(t, p.Skipped, 1)
	assert.Equal(t, int32(99), p.Skipped[0].SourceID)
	assert.Equal(t, ObligationFixed, p.Skipped[0].Source)
}

func TestProjectionMonth_TotalsByType(t *testing.T) {
	p, err := Project(sampleSources(), 1, date(2025, time.January, 1), DefaultPolicySet())
	require.NoError(t, err)

	totals := p.Months[0].TotalsByType()
	assertDecimal(t, "500", totals[ObligationEMI])
	assertDecimal(t, "19000", totals[ObligationFixed])
	assertDecimal(t, "12.99", totals[ObligationSubscription])
}
