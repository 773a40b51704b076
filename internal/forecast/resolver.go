package forecast

import (
	"fmt"
	"sort"
	"time"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/util"
)

// Resolve returns the obligations due in target's month. target's day is only used as
// the due day for subscriptions that carry no anchor day of their own.
// Malformed records are skipped and reported; they never abort the batch.
func Resolve(sources Sources, target time.Time, policy PolicySet) Resolution {
	year, month := target.Year(), target.Month()
	lastDay := util.DaysInMonth(year, month)

	res := Resolution{
		Obligations: make([]Obligation, 0, len(sources.Loans)+len(sources.FixedExpenses)+len(sources.Subscriptions)),
	}

	for _, loan := range sources.Loans {
		if loan == nil {
			res.Skipped = append(res.Skipped, SkippedRecord{Source: ObligationEMI, Reason: "nil record"})
			continue
		}
		if err := loan.Validate(); err != nil {
			res.Skipped = append(res.Skipped, skipped(ObligationEMI, loan.ID, loan.Name, err))
			continue
		}
		if !loan.IsActive(year, month) {
			continue
		}
		res.Obligations = append(res.Obligations, Obligation{
			ID:       obligationID(ObligationEMI, loan.ID, year, month),
			SourceID: loan.ID,
			Name:     loan.Name,
			Amount:   loan.MonthlyAmount,
			DueDate:  dueDate(year, month, loan.StartDate.Day(), lastDay),
			Type:     ObligationEMI,
			Priority: policy.For(ObligationEMI).Classify(loan.Name, loan.MonthlyAmount),
			Status:   StatusUnknown,
		})
	}

	for _, fe := range sources.FixedExpenses {
		if fe == nil {
			res.Skipped = append(res.Skipped, SkippedRecord{Source: ObligationFixed, Reason: "nil record"})
			continue
		}
		if err := fe.Validate(); err != nil {
			res.Skipped = append(res.Skipped, skipped(ObligationFixed, fe.ID, fe.Title, err))
			continue
		}
		res.Obligations = append(res.Obligations, Obligation{
			ID:       obligationID(ObligationFixed, fe.ID, year, month),
			SourceID: fe.ID,
			Name:     fe.Title,
			Amount:   fe.Amount,
			DueDate:  dueDate(year, month, int(fe.DayOfMonth), lastDay),
			Type:     ObligationFixed,
			Priority: policy.For(ObligationFixed).Classify(fe.Title, fe.Amount),
			Status:   StatusUnknown,
		})
	}

	for _, sub := range sources.Subscriptions {
		if sub == nil {
			res.Skipped = append(res.Skipped, SkippedRecord{Source: ObligationSubscription, Reason: "nil record"})
			continue
		}
		if err := sub.Validate(); err != nil {
			res.Skipped = append(res.Skipped, skipped(ObligationSubscription, sub.ID, sub.Name, err))
			continue
		}
		// TODO: resolve yearly subscriptions once an anchor month is stored alongside DayOfMonth.
		if !sub.IsActive || sub.Frequency != domain.FrequencyMonthly {
			continue
		}
		day := target.Day()
		if sub.DayOfMonth != nil {
			day = int(*sub.DayOfMonth)
		}
		res.Obligations = append(res.Obligations, Obligation{
			ID:       obligationID(ObligationSubscription, sub.ID, year, month),
			SourceID: sub.ID,
			Name:     sub.Name,
			Amount:   sub.Amount,
			DueDate:  dueDate(year, month, day, lastDay),
			Type:     ObligationSubscription,
			Priority: policy.For(ObligationSubscription).Classify(sub.Name, sub.Amount),
			Status:   StatusUnknown,
		})
	}

	SortObligations(res.Obligations)
	return res
}

// SortObligations orders by due date, then priority rank; equal keys keep input order
func SortObligations(obligations []Obligation) {
	sort.SliceStable(obligations, func(i, j int) bool {
		a, b := obligations[i], obligations[j]
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		return a.Priority.Rank() < b.Priority.Rank()
	})
}

func dueDate(year int, month time.Month, day, lastDay int) time.Time {
	return time.Date(year, month, util.ClampDay(day, lastDay), 0, 0, 0, 0, time.UTC)
}

func obligationID(t ObligationType, sourceID int32, year int, month time.Month) string {
	return fmt.Sprintf("%s-%d-%s", t, sourceID, util.MonthKey(year, month))
}

func skipped(t ObligationType, id int32, name string, err error) SkippedRecord {
	return SkippedRecord{Source: t, SourceID: id, Name: name, Reason: err.Error()}
}
