package userrole

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresUserRoleRepository implements UserRoleRepository using PostgreSQL
type PostgresUserRoleRepository struct {
	db DBTX
}

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// NewPostgresUserRoleRepository creates a new PostgreSQL assignment repository
func NewPostgresUserRoleRepository(db DBTX) *PostgresUserRoleRepository {
	return &PostgresUserRoleRepository{
		db: db,
	}
}

// CreateUserRole inserts a new assignment row. assigned_at is set by the
// database and never updated afterwards.
func (r *PostgresUserRoleRepository) CreateUserRole(ctx context.Context, userID, roleID int64) (UserRole, error) {
	query := `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		RETURNING id, user_id, role_id, assigned_at
	`

	row := r.db.QueryRow(ctx, query, userID, roleID)

	var result UserRole
	err := row.Scan(&result.ID, &result.UserID, &result.RoleID, &result.AssignedAt)
	if err != nil {
		slog.Error("Failed to create user role", "err", err, "userID", userID, "roleID", roleID)
		return UserRole{}, fmt.Errorf("failed to create user role: %w", err)
	}

	slog.Debug("User role created", "id", result.ID, "userID", userID, "roleID", roleID)
	return result, nil
}

// FindUserRoles returns all assignment rows, unjoined
func (r *PostgresUserRoleRepository) FindUserRoles(ctx context.Context) ([]UserRole, error) {
	query := `
		SELECT id, user_id, role_id, assigned_at
		FROM user_roles
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		slog.Error("Failed to find user roles", "err", err)
		return nil, fmt.Errorf("failed to find user roles: %w", err)
	}
	defer rows.Close()

	var userRoles []UserRole
	for rows.Next() {
		var ur UserRole
		if err := rows.Scan(&ur.ID, &ur.UserID, &ur.RoleID, &ur.AssignedAt); err != nil {
			slog.Error("Failed to scan user role", "err", err)
			return nil, fmt.Errorf("failed to scan user role: %w", err)
		}
		userRoles = append(userRoles, ur)
	}

	if err := rows.Err(); err != nil {
		slog.Error("Error iterating over user roles", "err", err)
		return nil, fmt.Errorf("error iterating over user roles: %w", err)
	}

	return userRoles, nil
}

// FindRolesForUser returns the denormalized assignment view for one user
// as a single join. Assignments whose user or role row no longer exists
// are dropped by the inner join rather than dereferenced.
func (r *PostgresUserRoleRepository) FindRolesForUser(ctx context.Context, userID int64) ([]UserRoleDetail, error) {
	query := `
		SELECT ur.id, ur.user_id, u.name, ur.role_id, r.name, ur.assigned_at
		FROM user_roles ur
		JOIN users u ON u.id = ur.user_id
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = $1
		ORDER BY ur.id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		slog.Error("Failed to find roles for user", "err", err, "userID", userID)
		return nil, fmt.Errorf("failed to find roles for user: %w", err)
	}
	defer rows.Close()

	var details []UserRoleDetail
	for rows.Next() {
		var d UserRoleDetail
		err := rows.Scan(
			&d.AssignmentID,
			&d.UserID,
			&d.UserName,
			&d.RoleID,
			&d.RoleName,
			&d.AssignedAt,
		)
		if err != nil {
			slog.Error("Failed to scan user role detail", "err", err)
			return nil, fmt.Errorf("failed to scan user role detail: %w", err)
		}
		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		slog.Error("Error iterating over user role details", "err", err)
		return nil, fmt.Errorf("error iterating over user role details: %w", err)
	}

	slog.Debug("Found roles for user", "userID", userID, "count", len(details))
	return details, nil
}

// UserExists reports whether a users row with the given id exists
func (r *PostgresUserRoleRepository) UserExists(ctx context.Context, userID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID)
}

// RoleExists reports whether a roles row with the given id exists
func (r *PostgresUserRoleRepository) RoleExists(ctx context.Context, roleID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM roles WHERE id = $1)`, roleID)
}

func (r *PostgresUserRoleRepository) exists(ctx context.Context, query string, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		slog.Error("Failed existence check", "err", err, "id", id)
		return false, fmt.Errorf("failed existence check: %w", err)
	}
	return exists, nil
}
