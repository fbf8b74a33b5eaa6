// Package storage persists user records in SQLite (default) or Postgres.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"TravelPlanner_WebProject/migrations"
)

// Dialect identifies the SQL backend behind a DB.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ErrUnsupportedDSN is returned by ParseDSN for URL schemes it does not know.
var ErrUnsupportedDSN = errors.New("unsupported database URL")

// DB wraps a *sql.DB together with the dialect its queries are written for.
type DB struct {
	db      *sql.DB
	dialect Dialect
}

// ParseDSN maps a DATABASE_URL value onto a dialect and a driver-level DSN.
//
//	sqlite://data/app.db      -> sqlite, file:data/app.db?...
//	data/app.db               -> sqlite, file:data/app.db?...
//	postgres://user@host/db   -> postgres, unchanged
func ParseDSN(databaseURL string) (Dialect, string, error) {
	raw := strings.TrimSpace(databaseURL)
	switch {
	case raw == "":
		return "", "", fmt.Errorf("%w: empty", ErrUnsupportedDSN)
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return DialectPostgres, raw, nil
	case strings.HasPrefix(raw, "sqlite://"):
		return DialectSQLite, strings.TrimPrefix(raw, "sqlite://"), nil
	case strings.HasPrefix(raw, "file:"):
		return DialectSQLite, strings.TrimPrefix(raw, "file:"), nil
	case strings.Contains(raw, "://"):
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedDSN, raw[:strings.Index(raw, "://")])
	default:
		return DialectSQLite, raw, nil
	}
}

// Open connects to databaseURL, verifies the connection and applies all
// pending migrations.
func Open(ctx context.Context, databaseURL string, logger *slog.Logger) (*DB, error) {
	dialect, dsn, err := ParseDSN(databaseURL)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	switch dialect {
	case DialectSQLite:
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err = sql.Open("sqlite", "file:"+dsn+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		// One writer at a time; the unique indexes do the rest.
		db.SetMaxOpenConns(1)
	case DialectPostgres:
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(ctx, db, dialect, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{db: db, dialect: dialect}, nil
}

func migrate(ctx context.Context, db *sql.DB, dialect Dialect, logger *slog.Logger) error {
	gooseDialect := goose.DialectSQLite3
	if dialect == DialectPostgres {
		gooseDialect = goose.DialectPostgres
	}

	provider, err := goose.NewProvider(gooseDialect, db, migrations.FS)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	for _, r := range results {
		logger.Info("Migration applied", "version", r.Source.Version, "duration_ms", r.Duration.Milliseconds())
	}
	return nil
}

// Dialect reports which backend the DB talks to.
func (d *DB) Dialect() Dialect {
	return d.dialect
}

// Ping checks that the database is still reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (d *DB) Close() error {
	return d.db.Close()
}

// rebind rewrites ? placeholders into $n for Postgres.
func (d *DB) rebind(query string) string {
	if d.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
