package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/tendant/simple-rbac/pkg/errors"
)

func TestUserService_CreateUser(t *testing.T) {
	// Setup
	service := NewUserService(NewInMemoryUserRepository())
	ctx := context.Background()

	age := int32(30)
	created, err := service.CreateUser(ctx, CreateUserParams{
		Name:  "Alice",
		Email: "alice@example.com",
		Age:   &age,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, "alice@example.com", created.Email)
	require.NotNil(t, created.Age)
	assert.Equal(t, int32(30), *created.Age)

	// The created user is retrievable by its id
	retrieved, err := service.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, retrieved)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	service := NewUserService(NewInMemoryUserRepository())
	ctx := context.Background()

	_, err := service.CreateUser(ctx, CreateUserParams{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	// Same email again, different name
	_, err = service.CreateUser(ctx, CreateUserParams{Name: "Other Alice", Email: "alice@example.com"})
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.ErrCodeUserAlreadyExists))

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 409, e.HTTPStatusCode())
}

func TestUserService_CreateUser_EmptyEmail(t *testing.T) {
	service := NewUserService(NewInMemoryUserRepository())

	_, err := service.CreateUser(context.Background(), CreateUserParams{Name: "NoEmail"})
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.ErrCodeInvalidInput))
}

func TestUserService_CreateUser_NilAge(t *testing.T) {
	service := NewUserService(NewInMemoryUserRepository())
	ctx := context.Background()

	created, err := service.CreateUser(ctx, CreateUserParams{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)
	assert.Nil(t, created.Age)

	retrieved, err := service.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, retrieved.Age)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	service := NewUserService(NewInMemoryUserRepository())

	_, err := service.GetUser(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.ErrCodeUserNotFound))

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 404, e.HTTPStatusCode())
}

func TestUserService_FindUsers(t *testing.T) {
	service := NewUserService(NewInMemoryUserRepository())
	ctx := context.Background()

	users, err := service.FindUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	_, err = service.CreateUser(ctx, CreateUserParams{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	_, err = service.CreateUser(ctx, CreateUserParams{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	users, err = service.FindUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	// Creation order
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "Bob", users[1].Name)
}

func TestUserService_UpdateUser(t *testing.T) {
	service := NewUserService(NewInMemoryUserRepository())
	ctx := context.Background()

	age := int32(30)
	created, err := service.CreateUser(ctx, CreateUserParams{Name: "Alice", Email: "alice@example.com", Age: &age})
	require.NoError(t, err)

	// Full overwrite, age omitted becomes null
	updated, err := service.UpdateUser(ctx, UpdateUserParams{
		ID:    created.ID,
		Name:  "Alice Smith",
		Email: "alice.smith@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Alice Smith", updated.Name)
	assert.Equal(t, "alice.smith@example.com", updated.Email)
	assert.Nil(t, updated.Age)

	retrieved, err := service.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, retrieved)
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	service := NewUserService(NewInMemoryUserRepository())

	_, err := service.UpdateUser(context.Background(), UpdateUserParams{
		ID:    999,
		Name:  "Ghost",
		Email: "ghost@example.com",
	})
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.ErrCodeUserNotFound))
}

func TestUserService_UpdateUser_DuplicateEmail(t *testing.T) {
	service := NewUserService(NewInMemoryUserRepository())
	ctx := context.Background()

	_, err := service.CreateUser(ctx, CreateUserParams{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	bob, err := service.CreateUser(ctx, CreateUserParams{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	_, err = service.UpdateUser(ctx, UpdateUserParams{ID: bob.ID, Name: "Bob", Email: "alice@example.com"})
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.ErrCodeUserAlreadyExists))
}

func TestUserService_DeleteUser(t *testing.T) {
	service := NewUserService(NewInMemoryUserRepository())
	ctx := context.Background()

	created, err := service.CreateUser(ctx, CreateUserParams{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	err = service.DeleteUser(ctx, created.ID)
	require.NoError(t, err)

	_, err = service.GetUser(ctx, created.ID)
	assert.True(t, errs.IsCode(err, errs.ErrCodeUserNotFound))

	// Deleting again fails, delete is not idempotent
	err = service.DeleteUser(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.ErrCodeUserNotFound))
}

func TestUserService_EmailReusableAfterDelete(t *testing.T) {
	service := NewUserService(NewInMemoryUserRepository())
	ctx := context.Background()

	created, err := service.CreateUser(ctx, CreateUserParams{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	err = service.DeleteUser(ctx, created.ID)
	require.NoError(t, err)

	recreated, err := service.CreateUser(ctx, CreateUserParams{Name: "Alice Again", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, recreated.ID)
}
