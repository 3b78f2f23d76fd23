package role

import (
	"context"

	errs "github.com/tendant/simple-rbac/pkg/errors"
)

// RoleService provides methods for role management
type RoleService struct {
	repo RoleRepository
}

func NewRoleService(repo RoleRepository) *RoleService {
	return &RoleService{
		repo: repo,
	}
}

// CreateRole adds a new role. The name must not be taken yet.
func (s *RoleService) CreateRole(ctx context.Context, name string) (Role, error) {
	if name == "" {
		return Role{}, errs.InvalidInput("name", "must not be empty")
	}
	return s.repo.CreateRole(ctx, name)
}

// FindRoles returns all roles in creation order
func (s *RoleService) FindRoles(ctx context.Context) ([]Role, error) {
	return s.repo.FindRoles(ctx)
}

// GetRole retrieves a role by id
func (s *RoleService) GetRole(ctx context.Context, id int64) (Role, error) {
	return s.repo.GetRoleById(ctx, id)
}

// UpdateRole renames an existing role
func (s *RoleService) UpdateRole(ctx context.Context, id int64, name string) (Role, error) {
	if name == "" {
		return Role{}, errs.InvalidInput("name", "must not be empty")
	}
	return s.repo.UpdateRole(ctx, UpdateRoleParams{ID: id, Name: name})
}

// DeleteRole removes a role. Assignments referencing it are not cascaded.
func (s *RoleService) DeleteRole(ctx context.Context, id int64) error {
	return s.repo.DeleteRole(ctx, id)
}
