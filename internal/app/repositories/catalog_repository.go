package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/cutoffpredictor/internal/app/models"
	"github.com/yigit/cutoffpredictor/internal/pkg/logger"
)

// CatalogRepository writes reference data and cutoffs. Inserts are idempotent
// on the primary key so seeding can be re-run.
type CatalogRepository struct {
	db executor
	sb squirrel.StatementBuilderType
}

func (r *CatalogRepository) insertIgnore(ctx context.Context, table string, columns []string, values ...interface{}) (bool, error) {
	sql, args, err := r.sb.Insert(table).
		Columns(columns...).
		Values(values...).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build insert %s query: %w", table, err)
	}

	affected, err := r.db.exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error executing insert query")
		return false, fmt.Errorf("error inserting into %s: %w", table, err)
	}
	return affected > 0, nil
}

// CreateBranch inserts a branch; it reports false if the ID already exists
func (r *CatalogRepository) CreateBranch(ctx context.Context, b *models.Branch) (bool, error) {
	return r.insertIgnore(ctx, "branches", []string{"id", "branch_name", "branch_code"}, b.ID, b.Name, b.Code)
}

// CreateCollege inserts a college; it reports false if the ID already exists
func (r *CatalogRepository) CreateCollege(ctx context.Context, c *models.College) (bool, error) {
	return r.insertIgnore(ctx, "colleges", []string{"id", "college_name", "location"}, c.ID, c.Name, c.Location)
}

// CreateOffering inserts a college-branch offering
func (r *CatalogRepository) CreateOffering(ctx context.Context, o *models.Offering) (bool, error) {
	return r.insertIgnore(ctx, "college_branches", []string{"id", "college_id", "branch_id", "fees_per_year"},
		o.ID, o.CollegeID, o.BranchID, o.FeesPerYear)
}

// CreateCutoff inserts a historical cutoff
func (r *CatalogRepository) CreateCutoff(ctx context.Context, c *models.CutoffRecord) (bool, error) {
	return r.insertIgnore(ctx, "cutoffs",
		[]string{"id", "college_branch_id", "category", "domicile", "round_number", "closing_percentile"},
		c.ID, c.OfferingID, string(c.Category), string(c.Domicile), c.RoundNumber, c.ClosingPercentile)
}
