package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	errs "github.com/tendant/simple-rbac/pkg/errors"
	"github.com/tendant/simple-rbac/pkg/userrole"
)

// UserRoleHandler handles HTTP requests for role assignments
type UserRoleHandler struct {
	userRoleService *userrole.UserRoleService
}

// NewUserRoleHandler creates a new assignment handler
func NewUserRoleHandler(userRoleService *userrole.UserRoleService) *UserRoleHandler {
	return &UserRoleHandler{
		userRoleService: userRoleService,
	}
}

// CreateUserRoleRequest represents the request body for assigning a role to a user
type CreateUserRoleRequest struct {
	UserID int64 `json:"user_id"`
	RoleID int64 `json:"role_id"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string `json:"message"`
}

// CreateUserRole handles assigning a role to a user
// (POST /user_roles)
func (h *UserRoleHandler) CreateUserRole(w http.ResponseWriter, r *http.Request) {
	var request CreateUserRoleRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.userRoleService.CreateUserRole(r.Context(), request.UserID, request.RoleID)
	if err != nil {
		slog.Error("Failed creating user role", "error", err, "userID", request.UserID, "roleID", request.RoleID)
		renderServiceError(w, r, err, "Failed creating user role")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

// ListUserRoles handles listing all assignments, unjoined
// (GET /user_roles)
func (h *UserRoleHandler) ListUserRoles(w http.ResponseWriter, r *http.Request) {
	userRoles, err := h.userRoleService.FindUserRoles(r.Context())
	if err != nil {
		slog.Error("Failed getting user roles", "error", err)
		renderServiceError(w, r, err, "Failed getting user roles")
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, userRoles)
}

// ListRolesForUser handles the denormalized assignment view for one user
// (GET /user_roles/{user_id})
func (h *UserRoleHandler) ListRolesForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid user_id format")
		return
	}

	details, err := h.userRoleService.FindRolesForUser(r.Context(), userID)
	if err != nil {
		slog.Error("Failed getting roles for user", "error", err, "userID", userID)
		renderServiceError(w, r, err, "Failed getting roles for user")
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, details)
}

// Handler returns a http.Handler for the assignment API
func Handler(h *UserRoleHandler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateUserRole)
	r.Get("/", h.ListUserRoles)
	r.Get("/{user_id}", h.ListRolesForUser)

	return r
}

func renderError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{Message: message})
}

func renderServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var e *errs.Error
	if errors.As(err, &e) {
		renderError(w, r, e.HTTPStatusCode(), e.Message)
		return
	}
	renderError(w, r, http.StatusInternalServerError, fallback)
}
