package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"

	"TravelPlanner_WebProject/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
	ErrNameExists   = errors.New("name already exists")
)

const (
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
	pgUniqueViolation          = "23505"
)

// CreateUser inserts user in a single transaction. Nothing is persisted
// unless the insert commits.
func (d *DB) CreateUser(ctx context.Context, user *models.User) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int
	if err := tx.QueryRowContext(ctx, d.rebind("SELECT COUNT(*) FROM users WHERE email = ?"), user.Email).Scan(&existing); err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing > 0 {
		return ErrEmailExists
	}

	_, err = tx.ExecContext(ctx,
		d.rebind("INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)"),
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		if dup := duplicateError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if dup := duplicateError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetUserByEmail returns ErrUserNotFound when no row matches.
func (d *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return d.getUser(ctx, "email", email)
}

// GetUserByID returns ErrUserNotFound when no row matches.
func (d *DB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return d.getUser(ctx, "id", id)
}

func (d *DB) getUser(ctx context.Context, column, value string) (*models.User, error) {
	query := d.rebind("SELECT id, name, email, password_hash, created_at FROM users WHERE " + column + " = ?")

	user := &models.User{}
	err := d.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return user, nil
}

// duplicateError maps a unique-constraint failure onto ErrEmailExists or
// ErrNameExists. It returns nil for any other error.
func duplicateError(err error) error {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		if code != sqliteConstraintUnique && code != sqliteConstraintPrimaryKey {
			return nil
		}
		return columnError(sqliteErr.Error())
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return columnError(pgErr.ConstraintName + " " + pgErr.Message)
	}
	return nil
}

func columnError(msg string) error {
	switch {
	case strings.Contains(msg, "email"):
		return ErrEmailExists
	case strings.Contains(msg, "name"):
		return ErrNameExists
	default:
		return fmt.Errorf("duplicate user: %s", msg)
	}
}
