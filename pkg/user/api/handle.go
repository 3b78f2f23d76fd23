package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jinzhu/copier"

	errs "github.com/tendant/simple-rbac/pkg/errors"
	"github.com/tendant/simple-rbac/pkg/user"
)

// UserHandler handles HTTP requests for user management
type UserHandler struct {
	userService *user.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *user.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   *int32 `json:"age"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   *int32 `json:"age"`
}

// MessageResponse represents a human-readable success message
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string `json:"message"`
}

// ListUsers handles listing all users
// (GET /users)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.FindUsers(r.Context())
	if err != nil {
		slog.Error("Failed getting users", "error", err)
		renderServiceError(w, r, err, "Failed getting users")
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, users)
}

// CreateUser handles creating a new user
// (POST /users)
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var request CreateUserRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	var params user.CreateUserParams
	copier.Copy(&params, &request)

	created, err := h.userService.CreateUser(r.Context(), params)
	if err != nil {
		slog.Error("Failed creating user", "error", err, "email", request.Email)
		renderServiceError(w, r, err, "Failed creating user")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

// GetUser handles retrieving a user by id
// (GET /users/{id})
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid id format")
		return
	}

	found, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err, "Failed getting user")
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, found)
}

// UpdateUser handles overwriting a user's mutable fields
// (PUT /users/{id})
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid id format")
		return
	}

	var request UpdateUserRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := user.UpdateUserParams{ID: id}
	copier.Copy(&params, &request)

	updated, err := h.userService.UpdateUser(r.Context(), params)
	if err != nil {
		slog.Error("Failed updating user", "error", err, "id", id)
		renderServiceError(w, r, err, "Failed updating user")
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, updated)
}

// DeleteUser handles deleting a user
// (DELETE /users/{id})
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid id format")
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		renderServiceError(w, r, err, "Failed deleting user")
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, MessageResponse{Message: "User deleted successfully"})
}

// Handler returns a http.Handler for the user API
func Handler(h *UserHandler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListUsers)
	r.Post("/", h.CreateUser)
	r.Get("/{id}", h.GetUser)
	r.Put("/{id}", h.UpdateUser)
	r.Delete("/{id}", h.DeleteUser)

	return r
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// renderError renders an error response with the given status code and message
func renderError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{Message: message})
}

// renderServiceError maps a structured service error onto its HTTP status;
// anything unrecognized becomes a 500 with the fallback message.
func renderServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var e *errs.Error
	if errors.As(err, &e) {
		renderError(w, r, e.HTTPStatusCode(), e.Message)
		return
	}
	renderError(w, r, http.StatusInternalServerError, fallback)
}
