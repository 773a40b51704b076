package forecast

import (
	"fmt"
	"time"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/util"
	"github.com/shopspring/decimal"
)

const (
	// DefaultProjectionMonths is the default number of months to project ahead
	DefaultProjectionMonths = 3
	// MaxProjectionMonths bounds projection work
	MaxProjectionMonths = 24
)

// Project resolves obligations for monthsAhead consecutive months starting at
// referenceDate's month. The result depends only on its arguments.
func Project(sources Sources, monthsAhead int, referenceDate time.Time, policy PolicySet) (*Projection, error) {
	if monthsAhead < 1 || monthsAhead > MaxProjectionMonths {
		return nil, fmt.Errorf("%w: monthsAhead must be between 1 and %d, got %d",
			domain.ErrInvalidArgument, MaxProjectionMonths, monthsAhead)
	}

	projection := &Projection{
		Months: make([]ProjectionMonth, 0, monthsAhead),
	}
	seen := make(map[string]struct{})

	for i := 0; i < monthsAhead; i++ {
		target := util.ShiftDate(referenceDate, i)
		res := Resolve(sources, target, policy)

		projection.Months = append(projection.Months, buildMonth(target.Year(), target.Month(), res.Obligations))

		for _, s := range res.Skipped {
			key := fmt.Sprintf("%s|%d|%s", s.Source, s.SourceID, s.Reason)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			projection.Skipped = append(projection.Skipped, s)
		}
	}

	return projection, nil
}

func buildMonth(year int, month time.Month, obligations []Obligation) ProjectionMonth {
	pm := ProjectionMonth{
		Year:           year,
		Month:          month,
		Label:          util.MonthLabel(year, month),
		Obligations:    obligations,
		TotalAmount:    decimal.Zero,
		CriticalTotal:  decimal.Zero,
		ImportantTotal: decimal.Zero,
		RoutineTotal:   decimal.Zero,
	}
	for _, o := range obligations {
		pm.TotalAmount = pm.TotalAmount.Add(o.Amount)
		switch o.Priority {
		case PriorityCritical:
			pm.CriticalTotal = pm.CriticalTotal.Add(o.Amount)
		case PriorityImportant:
			pm.ImportantTotal = pm.ImportantTotal.Add(o.Amount)
		default:
			pm.RoutineTotal = pm.RoutineTotal.Add(o.Amount)
		}
	}
	return pm
}

// TotalsByType sums a month's obligations per obligation type
func (pm ProjectionMonth) TotalsByType() map[ObligationType]decimal.Decimal {
	totals := map[ObligationType]decimal.Decimal{
		ObligationEMI:          decimal.Zero,
		ObligationFixed:        decimal.Zero,
		ObligationSubscription: decimal.Zero,
	}
	for _, o := range pm.Obligations {
		totals[o.Type] = totals[o.Type].Add(o.Amount)
	}
	return totals
}
