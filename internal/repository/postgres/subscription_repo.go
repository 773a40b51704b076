package postgres

import (
	"context"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const listSubscriptionsByWorkspace = `
SELECT id, workspace_id, name, amount, frequency, day_of_month, is_active, created_at, updated_at
FROM subscriptions
WHERE workspace_id = $1 AND deleted_at IS NULL AND (NOT $2::boolean OR is_active)
ORDER BY id`

// SubscriptionRepository implements domain.SubscriptionRepository using PostgreSQL
type SubscriptionRepository struct {
	db DBTX
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// ListByWorkspace retrieves subscriptions in a workspace, optionally only active ones
func (r *SubscriptionRepository) ListByWorkspace(ctx context.Context, workspaceID int32, activeOnly bool) ([]*domain.Subscription, error) {
	rows, err := r.db.Query(ctx, listSubscriptionsByWorkspace, workspaceID, activeOnly)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Subscription, error) {
		var (
			s         domain.Subscription
			amount    pgtype.Numeric
			frequency string
			day       pgtype.Int4
			createdAt pgtype.Timestamptz
			updatedAt pgtype.Timestamptz
		)
		if err := row.Scan(&s.ID, &s.WorkspaceID, &s.Name, &amount, &frequency, &day, &s.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		s.Amount = pgNumericToDecimal(amount)
		s.Frequency = domain.Frequency(frequency)
		if day.Valid {
			d := day.Int32
			s.DayOfMonth = &d
		}
		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time
		return &s, nil
	})
}
