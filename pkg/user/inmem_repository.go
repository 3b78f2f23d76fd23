package user

import (
	"context"
	"sort"
	"sync"

	errs "github.com/tendant/simple-rbac/pkg/errors"
)

// InMemoryUserRepository implements UserRepository using in-memory storage
type InMemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]User
	nextID int64
}

// NewInMemoryUserRepository creates a new in-memory user repository
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:  make(map[int64]User),
		nextID: 1,
	}
}

// CreateUser creates a new user, enforcing email uniqueness
func (r *InMemoryUserRepository) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == params.Email {
			return User{}, errs.Newf(errs.ErrCodeUserAlreadyExists, "email already registered: %s", params.Email)
		}
	}

	user := User{
		ID:    r.nextID,
		Name:  params.Name,
		Email: params.Email,
		Age:   params.Age,
	}
	r.users[user.ID] = user
	r.nextID++
	return user, nil
}

// GetUserById retrieves a user by its id
func (r *InMemoryUserRepository) GetUserById(ctx context.Context, id int64) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return User{}, errs.Newf(errs.ErrCodeUserNotFound, "user not found: %d", id)
	}
	return user, nil
}

// FindUsers returns all users in creation order
func (r *InMemoryUserRepository) FindUsers(ctx context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// UpdateUser overwrites name, email and age of an existing user
func (r *InMemoryUserRepository) UpdateUser(ctx context.Context, params UpdateUserParams) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[params.ID]; !ok {
		return User{}, errs.Newf(errs.ErrCodeUserNotFound, "user not found: %d", params.ID)
	}

	for _, u := range r.users {
		if u.ID != params.ID && u.Email == params.Email {
			return User{}, errs.Newf(errs.ErrCodeUserAlreadyExists, "email already registered: %s", params.Email)
		}
	}

	user := User{
		ID:    params.ID,
		Name:  params.Name,
		Email: params.Email,
		Age:   params.Age,
	}
	r.users[user.ID] = user
	return user, nil
}

// DeleteUser removes a user
func (r *InMemoryUserRepository) DeleteUser(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return errs.Newf(errs.ErrCodeUserNotFound, "user not found: %d", id)
	}
	delete(r.users, id)
	return nil
}
