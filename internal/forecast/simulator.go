package forecast

import (
	"fmt"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultSimulationMonths is the horizon used when the caller gives none
	DefaultSimulationMonths = 6
	// MaxHorizonMonths bounds simulation work; longer horizons are rejected, not truncated
	MaxHorizonMonths = 36
)

// Simulate projects income, expenses and a running balance for horizonMonths months.
// Overrides with a MonthIndex outside [0, horizonMonths) are ignored.
func Simulate(baseline Baseline, overrides []domain.Override, horizonMonths int, startingBalance decimal.Decimal) ([]SimulationMonth, error) {
	if horizonMonths < 1 || horizonMonths > MaxHorizonMonths {
		return nil, fmt.Errorf("%w: horizon must be between 1 and %d months, got %d",
			domain.ErrInvalidArgument, MaxHorizonMonths, horizonMonths)
	}

	byMonth := make(map[int][]domain.Override)
	for i := range overrides {
		o := overrides[i]
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("%w: override %d: %v", domain.ErrInvalidArgument, i, err)
		}
		if o.MonthIndex < 0 || o.MonthIndex >= horizonMonths {
			continue
		}
		byMonth[o.MonthIndex] = append(byMonth[o.MonthIndex], o)
	}

	baseExpenses := baseline.MonthlyExpenses()
	balance := startingBalance
	months := make([]SimulationMonth, 0, horizonMonths)

	for k := 0; k < horizonMonths; k++ {
		income := baseline.MonthlyIncome
		expenses := baseExpenses
		events := make([]string, 0, len(byMonth[k]))

		for _, o := range byMonth[k] {
			switch o.Kind {
			case domain.OverrideIncomeAdjust:
				income = income.Add(o.Amount)
			case domain.OverrideExpenseAdjust, domain.OverrideOneOffDebit:
				expenses = expenses.Add(o.Amount)
			case domain.OverrideOneOffCredit:
				expenses = expenses.Sub(o.Amount)
			}
			events = append(events, eventLabel(o))
		}

		net := income.Sub(expenses)
		balance = balance.Add(net)

		months = append(months, SimulationMonth{
			Index:          k,
			Income:         income,
			Expenses:       expenses,
			NetFlow:        net,
			RunningBalance: balance,
			Events:         events,
		})
	}

	return months, nil
}

func eventLabel(o domain.Override) string {
	if o.Label != "" {
		return o.Label
	}
	return string(o.Kind)
}
