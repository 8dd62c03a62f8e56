package service

import (
	"context"

	"github.com/elitedog/backend/internal/apperr"
	"github.com/elitedog/backend/pkg/identity"
)

// AdminDirectoryService exposes the identity provider's user list to the site admin.
// Callers are responsible for the admin check.
type AdminDirectoryService interface {
	ListUsers(ctx context.Context) ([]identity.User, error)
}

type adminDirectoryService struct {
	dir identity.Directory
}

// NewAdminDirectoryService creates an AdminDirectoryService over dir.
func NewAdminDirectoryService(dir identity.Directory) AdminDirectoryService {
	return &adminDirectoryService{dir: dir}
}

// ListUsers returns the directory; failures are wrapped as *apperr.UpstreamError.
func (s *adminDirectoryService) ListUsers(ctx context.Context) ([]identity.User, error) {
	users, err := s.dir.ListUsers(ctx)
	if err != nil {
		return nil, &apperr.UpstreamError{Op: "list users", Err: err}
	}
	if users == nil {
		users = []identity.User{}
	}
	return users, nil
}
