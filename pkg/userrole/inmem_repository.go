package userrole

import (
	"context"
	"sync"
	"time"

	"github.com/tendant/simple-rbac/pkg/role"
	"github.com/tendant/simple-rbac/pkg/user"
)

// InMemoryUserRoleRepository implements UserRoleRepository using in-memory
// storage. It resolves referents through the user and role repositories it
// is constructed with, so it sees the same data the other services mutate.
type InMemoryUserRoleRepository struct {
	mu          sync.RWMutex
	assignments map[int64]UserRole
	nextID      int64
	users       user.UserRepository
	roles       role.RoleRepository
}

// NewInMemoryUserRoleRepository creates a new in-memory assignment repository
func NewInMemoryUserRoleRepository(users user.UserRepository, roles role.RoleRepository) *InMemoryUserRoleRepository {
	return &InMemoryUserRoleRepository{
		assignments: make(map[int64]UserRole),
		nextID:      1,
		users:       users,
		roles:       roles,
	}
}

// CreateUserRole creates a new assignment with assigned_at set to now
func (r *InMemoryUserRoleRepository) CreateUserRole(ctx context.Context, userID, roleID int64) (UserRole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ur := UserRole{
		ID:         r.nextID,
		UserID:     userID,
		RoleID:     roleID,
		AssignedAt: time.Now().UTC(),
	}
	r.assignments[ur.ID] = ur
	r.nextID++
	return ur, nil
}

// FindUserRoles returns all assignments in creation order
func (r *InMemoryUserRoleRepository) FindUserRoles(ctx context.Context) ([]UserRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userRoles := make([]UserRole, 0, len(r.assignments))
	for id := int64(1); id < r.nextID; id++ {
		if ur, ok := r.assignments[id]; ok {
			userRoles = append(userRoles, ur)
		}
	}
	return userRoles, nil
}

// FindRolesForUser returns the denormalized view for one user. Assignments
// whose user or role no longer resolves are skipped.
func (r *InMemoryUserRoleRepository) FindRolesForUser(ctx context.Context, userID int64) ([]UserRoleDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var details []UserRoleDetail
	for id := int64(1); id < r.nextID; id++ {
		ur, ok := r.assignments[id]
		if !ok || ur.UserID != userID {
			continue
		}

		u, err := r.users.GetUserById(ctx, ur.UserID)
		if err != nil {
			continue
		}
		ro, err := r.roles.GetRoleById(ctx, ur.RoleID)
		if err != nil {
			continue
		}

		details = append(details, UserRoleDetail{
			AssignmentID: ur.ID,
			UserID:       u.ID,
			UserName:     u.Name,
			RoleID:       ro.ID,
			RoleName:     ro.Name,
			AssignedAt:   ur.AssignedAt,
		})
	}
	return details, nil
}

// UserExists reports whether the user repository resolves the given id
func (r *InMemoryUserRoleRepository) UserExists(ctx context.Context, userID int64) (bool, error) {
	_, err := r.users.GetUserById(ctx, userID)
	return err == nil, nil
}

// RoleExists reports whether the role repository resolves the given id
func (r *InMemoryUserRoleRepository) RoleExists(ctx context.Context, roleID int64) (bool, error) {
	_, err := r.roles.GetRoleById(ctx, roleID)
	return err == nil, nil
}
