package userrole

import "context"

// UserRoleRepository defines the interface for assignment storage
// operations. UserExists/RoleExists back the referent validation done at
// assignment creation, since the user_roles table carries no enforced
// foreign keys.
type UserRoleRepository interface {
	CreateUserRole(ctx context.Context, userID, roleID int64) (UserRole, error)
	FindUserRoles(ctx context.Context) ([]UserRole, error)
	FindRolesForUser(ctx context.Context, userID int64) ([]UserRoleDetail, error)
	UserExists(ctx context.Context, userID int64) (bool, error)
	RoleExists(ctx context.Context, roleID int64) (bool, error)
}
