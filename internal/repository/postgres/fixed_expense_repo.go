package postgres

import (
	"context"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const listFixedExpensesByWorkspace = `
SELECT id, workspace_id, title, amount, day_of_month, created_at, updated_at
FROM fixed_expenses
WHERE workspace_id = $1 AND deleted_at IS NULL
ORDER BY day_of_month, id`

// FixedExpenseRepository implements domain.FixedExpenseRepository using PostgreSQL
type FixedExpenseRepository struct {
	db DBTX
}

// NewFixedExpenseRepository creates a new FixedExpenseRepository
func NewFixedExpenseRepository(db DBTX) *FixedExpenseRepository {
	return &FixedExpenseRepository{db: db}
}

// ListByWorkspace retrieves every non-deleted fixed expense in a workspace
func (r *FixedExpenseRepository) ListByWorkspace(ctx context.Context, workspaceID int32) ([]*domain.FixedExpense, error) {
	rows, err := r.db.Query(ctx, listFixedExpensesByWorkspace, workspaceID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.FixedExpense, error) {
		var (
			f         domain.FixedExpense
			amount    pgtype.Numeric
			createdAt pgtype.Timestamptz
			updatedAt pgtype.Timestamptz
		)
		if err := row.Scan(&f.ID, &f.WorkspaceID, &f.Title, &amount, &f.DayOfMonth, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		f.Amount = pgNumericToDecimal(amount)
		f.CreatedAt = createdAt.Time
		f.UpdatedAt = updatedAt.Time
		return &f, nil
	})
}
