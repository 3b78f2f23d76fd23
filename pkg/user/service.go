package user

import (
	"context"

	errs "github.com/tendant/simple-rbac/pkg/errors"
)

// UserService provides user management operations
type UserService struct {
	repo UserRepository
}

// NewUserService creates a new user service
func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// CreateUser adds a new user. The email must not be registered yet.
func (s *UserService) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	if params.Email == "" {
		return User{}, errs.InvalidInput("email", "must not be empty")
	}
	return s.repo.CreateUser(ctx, params)
}

// FindUsers returns all users in creation order
func (s *UserService) FindUsers(ctx context.Context) ([]User, error) {
	return s.repo.FindUsers(ctx)
}

// GetUser retrieves a user by id
func (s *UserService) GetUser(ctx context.Context, id int64) (User, error) {
	return s.repo.GetUserById(ctx, id)
}

// UpdateUser overwrites name, email and age of an existing user
func (s *UserService) UpdateUser(ctx context.Context, params UpdateUserParams) (User, error) {
	if params.Email == "" {
		return User{}, errs.InvalidInput("email", "must not be empty")
	}
	return s.repo.UpdateUser(ctx, params)
}

// DeleteUser removes a user. Assignments referencing it are not cascaded.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}
