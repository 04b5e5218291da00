package repositories

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
)

// rowIterator is the subset of pgx.Rows and *sql.Rows the repositories use
type rowIterator interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// executor hides whether statements go through pgxpool or database/sql, so
// the same squirrel-built queries run against PostgreSQL and SQLite.
type executor interface {
	query(ctx context.Context, sql string, args ...any) (rowIterator, error)
	exec(ctx context.Context, sql string, args ...any) (int64, error)
}

type pgxExecutor struct {
	pool *pgxpool.Pool
}

func (e pgxExecutor) query(ctx context.Context, sql string, args ...any) (rowIterator, error) {
	return e.pool.Query(ctx, sql, args...)
}

func (e pgxExecutor) exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := e.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type sqlExecutor struct {
	db *sql.DB
}

type sqlRows struct {
	*sql.Rows
}

func (r sqlRows) Close() { _ = r.Rows.Close() }

func (e sqlExecutor) query(ctx context.Context, query string, args ...any) (rowIterator, error) {
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rows}, nil
}

func (e sqlExecutor) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := e.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
