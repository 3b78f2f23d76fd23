package role

import "context"

// Role represents a role in the system
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UpdateRoleParams contains parameters for renaming a role
type UpdateRoleParams struct {
	ID   int64
	Name string
}

// RoleRepository defines the interface for role storage operations
type RoleRepository interface {
	CreateRole(ctx context.Context, name string) (Role, error)
	GetRoleById(ctx context.Context, id int64) (Role, error)
	FindRoles(ctx context.Context) ([]Role, error)
	UpdateRole(ctx context.Context, arg UpdateRoleParams) (Role, error)
	DeleteRole(ctx context.Context, id int64) error
}
