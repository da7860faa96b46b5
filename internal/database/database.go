// Package database opens the configured relational store and brings its
// schema up to date.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/docflow/internal/dbx"
	"github.com/dmitrijs2005/docflow/internal/migrations"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// driverNames maps a dialect to its database/sql driver.
var driverNames = map[dbx.Dialect]string{
	dbx.DialectSQLite:   "sqlite",
	dbx.DialectPostgres: "pgx",
}

// RunMigrations applies all pending embedded migrations for the dialect.
// Running it on an up-to-date schema is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB, dialect dbx.Dialect) error {
	var (
		migrationsFS fs.FS
		dir          string
		gooseDialect string
	)

	switch dialect {
	case dbx.DialectSQLite:
		migrationsFS, dir, gooseDialect = migrations.SQLite, "sqlite", "sqlite3"
	case dbx.DialectPostgres:
		migrationsFS, dir, gooseDialect = migrations.Postgres, "postgres", "postgres"
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens dsn with the dialect's driver and migrates it.
//
// SQLite gets a single connection with foreign keys switched on, so every
// unit of work runs on the same connection (and an in-memory database
// survives between calls).
func InitDatabase(ctx context.Context, dialect dbx.Dialect, dsn string) (*sql.DB, error) {
	driver, ok := driverNames[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == dbx.DialectSQLite {
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := RunMigrations(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
