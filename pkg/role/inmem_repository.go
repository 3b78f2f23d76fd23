package role

import (
	"context"
	"sort"
	"sync"

	errs "github.com/tendant/simple-rbac/pkg/errors"
)

// InMemoryRoleRepository implements RoleRepository using in-memory storage
type InMemoryRoleRepository struct {
	mu     sync.RWMutex
	roles  map[int64]Role
	nextID int64
}

// NewInMemoryRoleRepository creates a new in-memory role repository
func NewInMemoryRoleRepository() *InMemoryRoleRepository {
	return &InMemoryRoleRepository{
		roles:  make(map[int64]Role),
		nextID: 1,
	}
}

// CreateRole creates a new role, enforcing name uniqueness
func (r *InMemoryRoleRepository) CreateRole(ctx context.Context, name string) (Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, role := range r.roles {
		if role.Name == name {
			return Role{}, errs.Newf(errs.ErrCodeRoleAlreadyExists, "role already exists: %s", name)
		}
	}

	role := Role{ID: r.nextID, Name: name}
	r.roles[role.ID] = role
	r.nextID++
	return role, nil
}

// GetRoleById retrieves a role by its id
func (r *InMemoryRoleRepository) GetRoleById(ctx context.Context, id int64) (Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, ok := r.roles[id]
	if !ok {
		return Role{}, errs.Newf(errs.ErrCodeRoleNotFound, "role not found: %d", id)
	}
	return role, nil
}

// FindRoles returns all roles in creation order
func (r *InMemoryRoleRepository) FindRoles(ctx context.Context) ([]Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roles := make([]Role, 0, len(r.roles))
	for _, role := range r.roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].ID < roles[j].ID })
	return roles, nil
}

// UpdateRole renames an existing role
func (r *InMemoryRoleRepository) UpdateRole(ctx context.Context, arg UpdateRoleParams) (Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roles[arg.ID]; !ok {
		return Role{}, errs.Newf(errs.ErrCodeRoleNotFound, "role not found: %d", arg.ID)
	}

	for _, role := range r.roles {
		if role.ID != arg.ID && role.Name == arg.Name {
			return Role{}, errs.Newf(errs.ErrCodeRoleAlreadyExists, "role already exists: %s", arg.Name)
		}
	}

	role := Role{ID: arg.ID, Name: arg.Name}
	r.roles[role.ID] = role
	return role, nil
}

// DeleteRole removes a role
func (r *InMemoryRoleRepository) DeleteRole(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roles[id]; !ok {
		return errs.Newf(errs.ErrCodeRoleNotFound, "role not found: %d", id)
	}
	delete(r.roles, id)
	return nil
}
