package middleware

import (
	"context"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
)

// RepositoryWorkspaceProvider adapts a domain.WorkspaceRepository to WorkspaceProvider
type RepositoryWorkspaceProvider struct {
	Workspaces domain.WorkspaceRepository
}

// GetWorkspaceByAuth0ID implements WorkspaceProvider
func (p RepositoryWorkspaceProvider) GetWorkspaceByAuth0ID(ctx context.Context, auth0ID string) (int32, error) {
	workspace, err := p.Workspaces.GetByUserAuth0ID(ctx, auth0ID)
	if err != nil {
		return 0, err
	}
	return workspace.ID, nil
}
