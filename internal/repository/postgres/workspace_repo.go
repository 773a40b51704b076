package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const getWorkspaceByUserAuth0ID = `
SELECT w.id, w.user_id, w.name, w.created_at, w.updated_at
FROM workspaces w
JOIN users u ON u.id = w.user_id
WHERE u.auth0_id = $1`

// WorkspaceRepository implements domain.WorkspaceRepository using PostgreSQL
type WorkspaceRepository struct {
	db DBTX
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(db DBTX) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// GetByUserAuth0ID retrieves a workspace by user's Auth0 ID
func (r *WorkspaceRepository) GetByUserAuth0ID(ctx context.Context, auth0ID string) (*domain.Workspace, error) {
	var (
		w         domain.Workspace
		userID    pgtype.UUID
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, getWorkspaceByUserAuth0ID, auth0ID).Scan(&w.ID, &userID, &w.Name, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWorkspaceNotFound
		}
		return nil, err
	}
	if userID.Valid {
		w.UserID = userID.Bytes
	}
	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time
	return &w, nil
}
