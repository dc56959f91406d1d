// Package storage opens the local state database and hands out the
// repositories built on it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/chatcore/internal/client/migrations"
	"github.com/dmitrijs2005/chatcore/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/chatcore/internal/client/repositories/readmarkers"
	"github.com/dmitrijs2005/chatcore/internal/client/repositories/recents"
	"github.com/dmitrijs2005/chatcore/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Repositories bundles the durable stores the engine needs.
type Repositories struct {
	Metadata    metadata.Repository
	ReadMarkers readmarkers.Repository
	Recents     recents.Repository
}

// NewRepositories builds SQLite-backed repositories on db.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Metadata:    metadata.NewSQLiteRepository(db),
		ReadMarkers: readmarkers.NewSQLiteRepository(db),
		Recents:     recents.NewSQLiteRepository(db),
	}
}

// RunMigrations applies every pending embedded migration.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens (or creates) the SQLite database at dsn and migrates it.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	if _, err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
