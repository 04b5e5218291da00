package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/yigit/cutoffpredictor/internal/app/models"
	"github.com/yigit/cutoffpredictor/internal/app/predictor"
	"github.com/yigit/cutoffpredictor/internal/pkg/apperrors"
	"github.com/yigit/cutoffpredictor/internal/pkg/dberrors"
	"github.com/yigit/cutoffpredictor/internal/pkg/logger"
)

// CutoffRepository reads historical cutoffs together with the offerings,
// colleges and branches they reference.
type CutoffRepository struct {
	db executor
	sb squirrel.StatementBuilderType
}

var _ predictor.CutoffSource = (*CutoffRepository)(nil)

// buildFetchQuery selects every cutoff matching the hard filters in one
// statement. Offerings, colleges and branches are LEFT JOINed so that a
// dangling reference comes back as NULL columns instead of vanishing; a cutoff
// without an offering is kept for the same reason even though its branch
// cannot be checked.
func (r *CutoffRepository) buildFetchQuery(c models.Criteria) (string, []interface{}, error) {
	return r.sb.Select(
		"c.id", "c.college_branch_id", "c.category", "c.domicile", "c.round_number", "c.closing_percentile",
		"cb.id", "cb.college_id", "cb.branch_id", "cb.fees_per_year",
		"col.id", "col.college_name", "col.location",
		"b.id", "b.branch_name", "b.branch_code",
	).
		From("cutoffs c").
		LeftJoin("college_branches cb ON cb.id = c.college_branch_id").
		LeftJoin("colleges col ON col.id = cb.college_id").
		LeftJoin("branches b ON b.id = cb.branch_id").
		Where(squirrel.Eq{"c.category": string(c.Category)}).
		Where(squirrel.Eq{"c.domicile": string(c.Domicile)}).
		Where(squirrel.LtOrEq{"c.closing_percentile": c.Percentile}).
		Where(squirrel.Or{
			squirrel.Eq{"cb.branch_id": c.BranchIDs},
			squirrel.Eq{"cb.id": nil},
		}).
		OrderBy("c.closing_percentile DESC", "c.id ASC").
		ToSql()
}

// FetchCutoffs implements predictor.CutoffSource with a single query
func (r *CutoffRepository) FetchCutoffs(ctx context.Context, c models.Criteria) (*predictor.Dataset, error) {
	query, args, err := r.buildFetchQuery(c)
	if err != nil {
		logger.Error().Err(err).Msg("Error building fetch cutoffs SQL")
		return nil, fmt.Errorf("failed to build fetch cutoffs query: %w", err)
	}

	rows, err := r.db.query(ctx, query, args...)
	if err != nil {
		logFetchError(err, "Error executing fetch cutoffs query")
		return nil, apperrors.NewUnavailableError("fetch cutoffs", err)
	}
	defer rows.Close()

	ds := predictor.NewDataset()
	for rows.Next() {
		if err := scanCutoffRow(rows, ds); err != nil {
			logger.Error().Err(err).Msg("Error scanning cutoff row")
			return nil, apperrors.NewUnavailableError("scan cutoff row", err)
		}
	}

	if err := rows.Err(); err != nil {
		logFetchError(err, "Error iterating cutoff rows")
		return nil, apperrors.NewUnavailableError("iterate cutoff rows", err)
	}

	return ds, nil
}

func scanCutoffRow(rows rowIterator, ds *predictor.Dataset) error {
	var (
		cut                               models.CutoffRecord
		category, domicile                string
		offeringID, collegeRef, branchRef sql.NullString
		fees                              decimal.NullDecimal
		collegeID, collegeName, location  sql.NullString
		branchID, branchName, branchCode  sql.NullString
	)

	if err := rows.Scan(
		&cut.ID, &cut.OfferingID, &category, &domicile, &cut.RoundNumber, &cut.ClosingPercentile,
		&offeringID, &collegeRef, &branchRef, &fees,
		&collegeID, &collegeName, &location,
		&branchID, &branchName, &branchCode,
	); err != nil {
		return err
	}

	cut.Category = models.Category(category)
	cut.Domicile = models.Domicile(domicile)
	ds.AddCutoff(cut)

	if offeringID.Valid {
		ds.AddOffering(models.Offering{
			ID:          offeringID.String,
			CollegeID:   collegeRef.String,
			BranchID:    branchRef.String,
			FeesPerYear: fees,
		})
	}
	if collegeID.Valid {
		ds.AddCollege(models.College{ID: collegeID.String, Name: collegeName.String, Location: location.String})
	}
	if branchID.Valid {
		ds.AddBranch(models.Branch{ID: branchID.String, Name: branchName.String, Code: branchCode.String})
	}
	return nil
}

func logFetchError(err error, msg string) {
	event := logger.Error().Err(err)
	if dberrors.IsConnectionError(err) {
		event = event.Str("cause", "connection")
	} else {
		event = event.Str("cause", "statement")
	}
	event.Msg(msg)
}
