package postgres

import (
	"context"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const listLoansByWorkspace = `
SELECT id, workspace_id, name, monthly_amount, total_months, start_date, paid_months, created_at, updated_at
FROM loans
WHERE workspace_id = $1 AND deleted_at IS NULL
ORDER BY start_date, id`

// LoanRepository implements domain.LoanRepository using PostgreSQL
type LoanRepository struct {
	db DBTX
}

// NewLoanRepository creates a new LoanRepository
func NewLoanRepository(db DBTX) *LoanRepository {
	return &LoanRepository{db: db}
}

// ListByWorkspace retrieves every non-deleted loan in a workspace.
// A NULL start_date yields a zero StartDate, which the resolver reports as skipped.
func (r *LoanRepository) ListByWorkspace(ctx context.Context, workspaceID int32) ([]*domain.Loan, error) {
	rows, err := r.db.Query(ctx, listLoansByWorkspace, workspaceID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Loan, error) {
		var (
			l         domain.Loan
			amount    pgtype.Numeric
			startDate pgtype.Date
			createdAt pgtype.Timestamptz
			updatedAt pgtype.Timestamptz
		)
		if err := row.Scan(&l.ID, &l.WorkspaceID, &l.Name, &amount, &l.TotalMonths, &startDate, &l.PaidMonths, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		l.MonthlyAmount = pgNumericToDecimal(amount)
		l.StartDate = pgDateToTime(startDate)
		l.CreatedAt = createdAt.Time
		l.UpdatedAt = updatedAt.Time
		return &l, nil
	})
}
