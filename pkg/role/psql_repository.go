package role

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	errs "github.com/tendant/simple-rbac/pkg/errors"
)

const pgUniqueViolation = "23505"

// PostgresRoleRepository implements RoleRepository using PostgreSQL
type PostgresRoleRepository struct {
	db DBTX
}

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// NewPostgresRoleRepository creates a new PostgreSQL role repository
func NewPostgresRoleRepository(db DBTX) *PostgresRoleRepository {
	return &PostgresRoleRepository{
		db: db,
	}
}

// CreateRole inserts a new role row. The roles.name unique constraint is
// the authority on duplicates.
func (r *PostgresRoleRepository) CreateRole(ctx context.Context, name string) (Role, error) {
	query := `
		INSERT INTO roles (name)
		VALUES ($1)
		RETURNING id, name
	`

	row := r.db.QueryRow(ctx, query, name)

	var result Role
	if err := row.Scan(&result.ID, &result.Name); err != nil {
		if isUniqueViolation(err) {
			slog.Debug("Role name already exists", "name", name)
			return Role{}, errs.Newf(errs.ErrCodeRoleAlreadyExists, "role already exists: %s", name)
		}
		slog.Error("Failed to create role", "err", err, "name", name)
		return Role{}, fmt.Errorf("failed to create role: %w", err)
	}

	return result, nil
}

// GetRoleById retrieves a role by its id
func (r *PostgresRoleRepository) GetRoleById(ctx context.Context, id int64) (Role, error) {
	query := `
		SELECT id, name
		FROM roles
		WHERE id = $1
	`

	row := r.db.QueryRow(ctx, query, id)

	var result Role
	if err := row.Scan(&result.ID, &result.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			slog.Debug("Role not found", "id", id)
			return Role{}, errs.Newf(errs.ErrCodeRoleNotFound, "role not found: %d", id)
		}
		slog.Error("Failed to get role", "err", err, "id", id)
		return Role{}, fmt.Errorf("failed to get role: %w", err)
	}

	return result, nil
}

// FindRoles returns all roles in creation order
func (r *PostgresRoleRepository) FindRoles(ctx context.Context) ([]Role, error) {
	query := `
		SELECT id, name
		FROM roles
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		slog.Error("Failed to find roles", "err", err)
		return nil, fmt.Errorf("failed to find roles: %w", err)
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			slog.Error("Failed to scan role", "err", err)
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		slog.Error("Error iterating over roles", "err", err)
		return nil, fmt.Errorf("error iterating over roles: %w", err)
	}

	return roles, nil
}

// UpdateRole renames an existing role. A name that collides with another
// row violates the unique constraint and surfaces as a conflict error.
func (r *PostgresRoleRepository) UpdateRole(ctx context.Context, arg UpdateRoleParams) (Role, error) {
	query := `
		UPDATE roles
		SET name = $2
		WHERE id = $1
		RETURNING id, name
	`

	row := r.db.QueryRow(ctx, query, arg.ID, arg.Name)

	var result Role
	if err := row.Scan(&result.ID, &result.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			slog.Debug("Role not found for update", "id", arg.ID)
			return Role{}, errs.Newf(errs.ErrCodeRoleNotFound, "role not found: %d", arg.ID)
		}
		if isUniqueViolation(err) {
			slog.Debug("Role name already exists", "name", arg.Name)
			return Role{}, errs.Newf(errs.ErrCodeRoleAlreadyExists, "role already exists: %s", arg.Name)
		}
		slog.Error("Failed to update role", "err", err, "id", arg.ID)
		return Role{}, fmt.Errorf("failed to update role: %w", err)
	}

	return result, nil
}

// DeleteRole removes a role row. Assignment rows referencing the role are
// left untouched.
func (r *PostgresRoleRepository) DeleteRole(ctx context.Context, id int64) error {
	query := `
		DELETE FROM roles
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		slog.Error("Failed to delete role", "err", err, "id", id)
		return fmt.Errorf("failed to delete role: %w", err)
	}

	if result.RowsAffected() == 0 {
		slog.Debug("Role not found for delete", "id", id)
		return errs.Newf(errs.ErrCodeRoleNotFound, "role not found: %d", id)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
