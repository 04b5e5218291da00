package repositories

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	CutoffRepository  *CutoffRepository
	BranchRepository  *BranchRepository
	CatalogRepository *CatalogRepository
}

// NewRepositories initializes all repositories on a PostgreSQL pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return newRepositories(pgxExecutor{pool: db}, squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar))
}

// NewSQLiteRepositories initializes all repositories on a SQLite handle
func NewSQLiteRepositories(db *sql.DB) *Repositories {
	return newRepositories(sqlExecutor{db: db}, squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question))
}

func newRepositories(db executor, sb squirrel.StatementBuilderType) *Repositories {
	return &Repositories{
		CutoffRepository:  &CutoffRepository{db: db, sb: sb},
		BranchRepository:  &BranchRepository{db: db, sb: sb},
		CatalogRepository: &CatalogRepository{db: db, sb: sb},
	}
}
