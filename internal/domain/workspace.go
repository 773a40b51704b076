package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Workspace represents a user's workspace; every source collection is scoped to one
type Workspace struct {
	ID        int32     `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkspaceRepository defines the workspace lookups needed to scope requests
type WorkspaceRepository interface {
	GetByUserAuth0ID(ctx context.Context, auth0ID string) (*Workspace, error)
}
