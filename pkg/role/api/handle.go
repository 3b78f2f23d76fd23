package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	errs "github.com/tendant/simple-rbac/pkg/errors"
	rolepkg "github.com/tendant/simple-rbac/pkg/role"
)

// RoleHandler handles HTTP requests for role management
type RoleHandler struct {
	roleService *rolepkg.RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService *rolepkg.RoleService) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
	}
}

// RoleRequest represents the request body for creating or renaming a role
type RoleRequest struct {
	Name string `json:"name"`
}

// MessageResponse represents a human-readable success message
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string `json:"message"`
}

// ListRoles handles retrieving the list of roles
// (GET /roles)
func (h *RoleHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.FindRoles(r.Context())
	if err != nil {
		slog.Error("Failed getting roles", "error", err)
		renderServiceError(w, r, err, "Failed getting roles")
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, roles)
}

// CreateRole handles the creation of a new role
// (POST /roles)
func (h *RoleHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var request RoleRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.roleService.CreateRole(r.Context(), request.Name)
	if err != nil {
		slog.Error("Failed creating role", "error", err, "name", request.Name)
		renderServiceError(w, r, err, "Failed creating role")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

// GetRole handles retrieving a role by id
// (GET /roles/{id})
func (h *RoleHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid id format")
		return
	}

	found, err := h.roleService.GetRole(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err, "Failed getting role")
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, found)
}

// UpdateRole handles renaming an existing role
// (PUT /roles/{id})
func (h *RoleHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid id format")
		return
	}

	var request RoleRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.roleService.UpdateRole(r.Context(), id, request.Name)
	if err != nil {
		slog.Error("Failed updating role", "error", err, "id", id)
		renderServiceError(w, r, err, "Failed updating role")
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, updated)
}

// DeleteRole handles deleting a role
// (DELETE /roles/{id})
func (h *RoleHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "Invalid id format")
		return
	}

	if err := h.roleService.DeleteRole(r.Context(), id); err != nil {
		renderServiceError(w, r, err, "Failed deleting role")
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, MessageResponse{Message: "Role deleted successfully"})
}

// Handler returns a http.Handler for the role API
func Handler(h *RoleHandler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListRoles)
	r.Post("/", h.CreateRole)
	r.Get("/{id}", h.GetRole)
	r.Put("/{id}", h.UpdateRole)
	r.Delete("/{id}", h.DeleteRole)

	return r
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
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
