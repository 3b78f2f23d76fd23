package userrole

import (
	"context"

	errs "github.com/tendant/simple-rbac/pkg/errors"
)

// UserRoleService provides assignment management operations
type UserRoleService struct {
	repo UserRoleRepository
}

// NewUserRoleService creates a new assignment service
func NewUserRoleService(repo UserRoleRepository) *UserRoleService {
	return &UserRoleService{
		repo: repo,
	}
}

// CreateUserRole assigns a role to a user. Both referents must exist at
// creation time; the same pair may be assigned more than once.
func (s *UserRoleService) CreateUserRole(ctx context.Context, userID, roleID int64) (UserRole, error) {
	ok, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return UserRole{}, err
	}
	if !ok {
		return UserRole{}, errs.Newf(errs.ErrCodeUserNotFound, "user not found: %d", userID)
	}

	ok, err = s.repo.RoleExists(ctx, roleID)
	if err != nil {
		return UserRole{}, err
	}
	if !ok {
		return UserRole{}, errs.Newf(errs.ErrCodeRoleNotFound, "role not found: %d", roleID)
	}

	return s.repo.CreateUserRole(ctx, userID, roleID)
}

// FindUserRoles returns all assignments, unjoined
func (s *UserRoleService) FindUserRoles(ctx context.Context) ([]UserRole, error) {
	return s.repo.FindUserRoles(ctx)
}

// FindRolesForUser returns the denormalized assignment view for one user.
// An unknown user yields an empty list, not an error.
func (s *UserRoleService) FindRolesForUser(ctx context.Context, userID int64) ([]UserRoleDetail, error) {
	return s.repo.FindRolesForUser(ctx, userID)
}
