package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	errs "github.com/tendant/simple-rbac/pkg/errors"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations
const pgUniqueViolation = "23505"

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db DBTX
}

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

// CreateUser inserts a new user row. The users.email unique constraint is
// the authority on duplicates: a violation surfaces as a conflict error
// with no check-then-insert window.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	query := `
		INSERT INTO users (name, email, age)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, age
	`

	row := r.db.QueryRow(ctx, query, params.Name, params.Email, nullInt32(params.Age))

	result, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			slog.Debug("Email already registered", "email", params.Email)
			return User{}, errs.Newf(errs.ErrCodeUserAlreadyExists, "email already registered: %s", params.Email)
		}
		slog.Error("Failed to create user", "err", err, "email", params.Email)
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Debug("User created", "id", result.ID)
	return result, nil
}

// GetUserById retrieves a user by its id
func (r *PostgresUserRepository) GetUserById(ctx context.Context, id int64) (User, error) {
	query := `
		SELECT id, name, email, age
		FROM users
		WHERE id = $1
	`

	row := r.db.QueryRow(ctx, query, id)

	result, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			slog.Debug("User not found", "id", id)
			return User{}, errs.Newf(errs.ErrCodeUserNotFound, "user not found: %d", id)
		}
		slog.Error("Failed to get user", "err", err, "id", id)
		return User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return result, nil
}

// FindUsers returns all users in creation order
func (r *PostgresUserRepository) FindUsers(ctx context.Context) ([]User, error) {
	query := `
		SELECT id, name, email, age
		FROM users
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		slog.Error("Failed to find users", "err", err)
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		result, err := scanUser(rows)
		if err != nil {
			slog.Error("Failed to scan user", "err", err)
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, result)
	}

	if err := rows.Err(); err != nil {
		slog.Error("Error iterating over users", "err", err)
		return nil, fmt.Errorf("error iterating over users: %w", err)
	}

	return users, nil
}

// UpdateUser overwrites name, email and age of an existing user. An email
// that collides with another row violates the unique constraint and
// surfaces as a conflict error.
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, params UpdateUserParams) (User, error) {
	query := `
		UPDATE users
		SET name = $2, email = $3, age = $4
		WHERE id = $1
		RETURNING id, name, email, age
	`

	row := r.db.QueryRow(ctx, query, params.ID, params.Name, params.Email, nullInt32(params.Age))

	result, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			slog.Debug("User not found for update", "id", params.ID)
			return User{}, errs.Newf(errs.ErrCodeUserNotFound, "user not found: %d", params.ID)
		}
		if isUniqueViolation(err) {
			slog.Debug("Email already registered", "email", params.Email)
			return User{}, errs.Newf(errs.ErrCodeUserAlreadyExists, "email already registered: %s", params.Email)
		}
		slog.Error("Failed to update user", "err", err, "id", params.ID)
		return User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return result, nil
}

// DeleteUser removes a user row. Assignment rows referencing the user are
// left untouched.
func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id int64) error {
	query := `
		DELETE FROM users
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		slog.Error("Failed to delete user", "err", err, "id", id)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		slog.Debug("User not found for delete", "id", id)
		return errs.Newf(errs.ErrCodeUserNotFound, "user not found: %d", id)
	}

	return nil
}

// scanUser scans one users row from either a pgx.Row or pgx.Rows
func scanUser(row pgx.Row) (User, error) {
	var user User
	var age sql.NullInt32
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&age,
	)
	if err != nil {
		return User{}, err
	}

	if age.Valid {
		user.Age = &age.Int32
	}

	return user, nil
}

func nullInt32(v *int32) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: *v, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
