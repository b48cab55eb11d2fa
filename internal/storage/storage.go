// Package storage opens the relational store behind the planner and
// bootstraps its schema. Two drivers are supported: an embedded sqlite
// file and postgres through pgx. Both speak the same SQL as far as the
// services are concerned ($n placeholders, RETURNING, COALESCE).
package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const MemoryPath = ":memory:"

var ErrUnknownDriver = errors.New("unknown storage driver")

//go:embed schema/*.sql
var schemaFS embed.FS

// OpenSQLite opens the sqlite database at path, creating its directory if
// needed. Foreign keys are enforced. The pool is limited to a single
// connection: sqlite serializes writers anyway, and every connection to
// MemoryPath would otherwise see its own empty database.
func OpenSQLite(path string, busyTimeout time.Duration) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=%d", path, busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	return db, nil
}

// OpenPostgres opens a database/sql handle backed by pgx.
func OpenPostgres(connURL string, connectTimeout time.Duration) (*sql.DB, error) {
	connCfg, err := pgx.ParseConfig(connURL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	connCfg.ConnectTimeout = connectTimeout

	return stdlib.OpenDB(*connCfg), nil
}

// Migrate creates the tables of driver's schema if they don't exist yet.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	if driver != DriverSQLite && driver != DriverPostgres {
		return fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}

	schema, err := schemaFS.ReadFile("schema/" + driver + ".sql")
	if err != nil {
		return fmt.Errorf("read %s schema: %w", driver, err)
	}

	for _, stmt := range strings.Split(string(schema), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err = db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply %s schema: %w", driver, err)
		}
	}
	return nil
}

// IsUniqueViolation reports whether err was caused by a UNIQUE constraint.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return false
}

// IsForeignKeyViolation reports whether err was caused by a FOREIGN KEY
// constraint.
func IsForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.ForeignKeyViolation
	}
	return false
}
