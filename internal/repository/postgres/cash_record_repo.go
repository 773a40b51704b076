package postgres

import (
	"context"
	"time"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	listIncomeByDateRange = `
SELECT received_on, amount
FROM income_records
WHERE workspace_id = $1 AND received_on >= $2 AND received_on < $3 AND deleted_at IS NULL
ORDER BY received_on`

	listVariableExpensesByDateRange = `
SELECT spent_on, amount
FROM variable_expense_records
WHERE workspace_id = $1 AND spent_on >= $2 AND spent_on < $3 AND deleted_at IS NULL
ORDER BY spent_on`
)

// CashRecordRepository implements domain.CashRecordRepository using PostgreSQL
type CashRecordRepository struct {
	db DBTX
}

// NewCashRecordRepository creates a new CashRecordRepository
func NewCashRecordRepository(db DBTX) *CashRecordRepository {
	return &CashRecordRepository{db: db}
}

// ListIncomeByDateRange retrieves income records dated in [start, end)
func (r *CashRecordRepository) ListIncomeByDateRange(ctx context.Context, workspaceID int32, start, end time.Time) ([]domain.CashRecord, error) {
	return r.list(ctx, listIncomeByDateRange, workspaceID, start, end)
}

// ListVariableExpensesByDateRange retrieves variable expense records dated in [start, end)
func (r *CashRecordRepository) ListVariableExpensesByDateRange(ctx context.Context, workspaceID int32, start, end time.Time) ([]domain.CashRecord, error) {
	return r.list(ctx, listVariableExpensesByDateRange, workspaceID, start, end)
}

func (r *CashRecordRepository) list(ctx context.Context, query string, workspaceID int32, start, end time.Time) ([]domain.CashRecord, error) {
	rows, err := r.db.Query(ctx, query, workspaceID, timeToPgDate(start), timeToPgDate(end))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanCashRecord)
}

func scanCashRecord(row pgx.CollectableRow) (domain.CashRecord, error) {
	var (
		date   pgtype.Date
		amount pgtype.Numeric
	)
	if err := row.Scan(&date, &amount); err != nil {
		return domain.CashRecord{}, err
	}
	return domain.CashRecord{Date: pgDateToTime(date), Amount: pgNumericToDecimal(amount)}, nil
}
