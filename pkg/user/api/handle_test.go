package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-rbac/pkg/user"
)

func setupHandler() http.Handler {
	userService := user.NewUserService(user.NewInMemoryUserRepository())
	return Handler(NewUserHandler(userService))
}

func doRequest(t *testing.T, handler http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCreateUser(t *testing.T) {
	handler := setupHandler()

	age := int32(30)
	rec := doRequest(t, handler, http.MethodPost, "/", CreateUserRequest{
		Name:  "Alice",
		Email: "alice@example.com",
		Age:   &age,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created user.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, "alice@example.com", created.Email)
	require.NotNil(t, created.Age)
	assert.Equal(t, int32(30), *created.Age)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	handler := setupHandler()

	rec := doRequest(t, handler, http.MethodPost, "/", CreateUserRequest{Name: "Alice", Email: "alice@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, handler, http.MethodPost, "/", CreateUserRequest{Name: "Other", Email: "alice@example.com"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Contains(t, errResp.Message, "alice@example.com")
}

func TestCreateUser_InvalidBody(t *testing.T) {
	handler := setupHandler()

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUser(t *testing.T) {
	handler := setupHandler()

	rec := doRequest(t, handler, http.MethodPost, "/", CreateUserRequest{Name: "Alice", Email: "alice@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var found user.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	assert.Equal(t, "Alice", found.Name)
}

func TestGetUser_NotFound(t *testing.T) {
	handler := setupHandler()

	rec := doRequest(t, handler, http.MethodGet, "/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetUser_InvalidID(t *testing.T) {
	handler := setupHandler()

	rec := doRequest(t, handler, http.MethodGet, "/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListUsers(t *testing.T) {
	handler := setupHandler()

	rec := doRequest(t, handler, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []user.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Empty(t, users)

	doRequest(t, handler, http.MethodPost, "/", CreateUserRequest{Name: "Alice", Email: "alice@example.com"})
	doRequest(t, handler, http.MethodPost, "/", CreateUserRequest{Name: "Bob", Email: "bob@example.com"})

	rec = doRequest(t, handler, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "Bob", users[1].Name)
}

func TestUpdateUser(t *testing.T) {
	handler := setupHandler()

	rec := doRequest(t, handler, http.MethodPost, "/", CreateUserRequest{Name: "Alice", Email: "alice@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, handler, http.MethodPut, "/1", UpdateUserRequest{Name: "Alice Smith", Email: "alice.smith@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated user.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, int64(1), updated.ID)
	assert.Equal(t, "Alice Smith", updated.Name)
	assert.Equal(t, "alice.smith@example.com", updated.Email)
	assert.Nil(t, updated.Age)
}

func TestUpdateUser_NotFound(t *testing.T) {
	handler := setupHandler()

	rec := doRequest(t, handler, http.MethodPut, "/999", UpdateUserRequest{Name: "Ghost", Email: "ghost@example.com"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUser(t *testing.T) {
	handler := setupHandler()

	rec := doRequest(t, handler, http.MethodPost, "/", CreateUserRequest{Name: "Alice", Email: "alice@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, handler, http.MethodDelete, "/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var msg MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "User deleted successfully", msg.Message)

	rec = doRequest(t, handler, http.MethodGet, "/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUser_NotFound(t *testing.T) {
	handler := setupHandler()

	rec := doRequest(t, handler, http.MethodDelete, "/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
