package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// execFn runs one statement inside a migration transaction
type execFn func(ctx context.Context, query string, args ...any) error

// store abstracts the two supported engines. Statements are written with
// '?' placeholders and rewritten for PostgreSQL.
type store interface {
	exec(ctx context.Context, query string, args ...any) error
	exists(ctx context.Context, query string, args ...any) (bool, error)
	inTx(ctx context.Context, fn func(exec execFn) error) error
}

// Migrator manages database migrations
type Migrator struct {
	db     store
	logger zerolog.Logger
}

// NewMigrator creates a migrator for a PostgreSQL pool
func NewMigrator(db *pgxpool.Pool, lgr zerolog.Logger) *Migrator {
	return &Migrator{db: pgxStore{pool: db}, logger: lgr}
}

// NewSQLiteMigrator creates a migrator for a SQLite handle
func NewSQLiteMigrator(db *sql.DB, lgr zerolog.Logger) *Migrator {
	return &Migrator{db: sqlStore{db: db}, logger: lgr}
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if err := m.db.exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// Migrate applies every *.sql file of fsys that has not been applied yet,
// in filename order. The version is the filename prefix before the first '_'.
func (m *Migrator) Migrate(ctx context.Context, fsys fs.FS) error {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	var sqlFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			sqlFiles = append(sqlFiles, e.Name())
		}
	}
	sort.Strings(sqlFiles)

	for _, name := range sqlFiles {
		if err := m.migrateFile(ctx, fsys, name); err != nil {
			return err
		}
	}
	return nil
}

func (m *Migrator) migrateFile(ctx context.Context, fsys fs.FS, name string) error {
	version := strings.Split(path.Base(name), "_")[0]

	applied, err := m.db.exists(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = ?)`, version)
	if err != nil {
		return fmt.Errorf("failed to check migration status: %w", err)
	}
	if applied {
		m.logger.Debug().Str("file", name).Msg("Migration already applied, skipping")
		return nil
	}

	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	err = m.db.inTx(ctx, func(exec execFn) error {
		if err := exec(ctx, string(content)); err != nil {
			return fmt.Errorf("error occurred during SQL migration %s: %w", name, err)
		}
		if err := exec(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info().Str("file", name).Msg("Migration file successfully applied")
	return nil
}

type pgxStore struct {
	pool *pgxpool.Pool
}

func dollar(query string) string {
	out, err := squirrel.Dollar.ReplacePlaceholders(query)
	if err != nil {
		return query
	}
	return out
}

func (s pgxStore) exec(ctx context.Context, query string, args ...any) error {
	_, err := s.pool.Exec(ctx, dollar(query), args...)
	return err
}

func (s pgxStore) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var ok bool
	err := s.pool.QueryRow(ctx, dollar(query), args...).Scan(&ok)
	return ok, err
}

func (s pgxStore) inTx(ctx context.Context, fn func(exec execFn) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(func(ctx context.Context, query string, args ...any) error {
			if len(args) == 0 {
				// Simple protocol so multi-statement files are accepted.
				_, err := tx.Exec(ctx, query, pgx.QueryExecModeSimpleProtocol)
				return err
			}
			_, err := tx.Exec(ctx, dollar(query), args...)
			return err
		})
	})
}

type sqlStore struct {
	db *sql.DB
}

func (s sqlStore) exec(ctx context.Context, query string, args ...any) error {
	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

func (s sqlStore) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var ok bool
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&ok)
	return ok, err
}

func (s sqlStore) inTx(ctx context.Context, fn func(exec execFn) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(func(ctx context.Context, query string, args ...any) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
