package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/yigit/coursefeedback/internal/db"
)

// Migrator applies forward-only SQL files to PostgreSQL
type Migrator struct {
	db     *db.PostgresDB
	logger zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(pg *db.PostgresDB, logger zerolog.Logger) *Migrator {
	return &Migrator{
		db:     pg,
		logger: logger.With().Str("component", "migrator").Logger(),
	}
}

// migrationFile is one SQL file and the version taken from its name prefix
type migrationFile struct {
	Name    string
	Version string
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	_, err := m.db.Pool.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	err := m.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// MigrateFromDirectory applies every pending SQL file found in dirPath
func (m *Migrator) MigrateFromDirectory(ctx context.Context, dirPath string) error {
	if _, err := os.Stat(dirPath); err != nil {
		return fmt.Errorf("migrations directory not found at %s: %w", dirPath, err)
	}
	return m.Migrate(ctx, os.DirFS(dirPath))
}

// Migrate applies every pending SQL file at the root of fsys in lexical order
func (m *Migrator) Migrate(ctx context.Context, fsys fs.FS) error {
	files, err := listMigrations(fsys)
	if err != nil {
		return err
	}

	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	for _, file := range files {
		if err := m.apply(ctx, fsys, file); err != nil {
			return err
		}
	}
	return nil
}

func (m *Migrator) apply(ctx context.Context, fsys fs.FS, file migrationFile) error {
	applied, err := m.isMigrationApplied(ctx, file.Version)
	if err != nil {
		return err
	}
	if applied {
		m.logger.Debug().Str("file", file.Name).Msg("Migration already applied, skipping")
		return nil
	}

	content, err := fs.ReadFile(fsys, file.Name)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", file.Name, err)
	}

	err = m.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("migration %s failed: %w", file.Name, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, file.Version); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", file.Name, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info().Str("file", file.Name).Str("version", file.Version).Msg("Migration applied")
	return nil
}

// listMigrations returns the .sql files at the root of fsys, sorted by name.
// The version is the part of the file name before the first underscore ("001_init.sql" => "001").
func listMigrations(fsys fs.FS) ([]migrationFile, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var files []migrationFile
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		version, _, _ := strings.Cut(entry.Name(), "_")
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, prev, entry.Name())
		}
		seen[version] = entry.Name()
		files = append(files, migrationFile{Name: entry.Name(), Version: version})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
