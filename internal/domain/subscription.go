package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrSubscriptionNameEmpty        = errors.New("subscription name is required")
	ErrSubscriptionAmountInvalid    = errors.New("subscription amount must be positive")
	ErrSubscriptionFrequencyInvalid = errors.New("subscription frequency must be monthly or yearly")
	ErrSubscriptionDayOutOfRange    = errors.New("subscription day of month must be between 1 and 31")
)

type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// IsValid reports whether f is a known frequency
func (f Frequency) IsValid() bool {
	return f == FrequencyMonthly || f == FrequencyYearly
}

// Subscription is a periodic charge such as software or a membership
type Subscription struct {
	ID          int32           `json:"id"`
	WorkspaceID int32           `json:"workspaceId"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   Frequency       `json:"frequency"`
	DayOfMonth  *int32          `json:"dayOfMonth,omitempty"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   *time.Time      `json:"deletedAt,omitempty"`
}

func (s *Subscription) Validate() error {
	if s.Name == "" {
		return ErrSubscriptionNameEmpty
	}
	if s.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrSubscriptionAmountInvalid
	}
	if !s.Frequency.IsValid() {
		return ErrSubscriptionFrequencyInvalid
	}
	if s.DayOfMonth != nil && (*s.DayOfMonth < MinDayOfMonth || *s.DayOfMonth > MaxDayOfMonth) {
		return ErrSubscriptionDayOutOfRange
	}
	return nil
}

type SubscriptionRepository interface {
	ListByWorkspace(ctx context.Context, workspaceID int32, activeOnly bool) ([]*Subscription, error)
}
