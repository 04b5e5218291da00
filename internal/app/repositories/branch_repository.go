package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/cutoffpredictor/internal/app/models"
	"github.com/yigit/cutoffpredictor/internal/pkg/apperrors"
	"github.com/yigit/cutoffpredictor/internal/pkg/logger"
)

// BranchRepository handles branch database operations
type BranchRepository struct {
	db executor
	sb squirrel.StatementBuilderType
}

// GetAllBranches retrieves all branches ordered by name
func (r *BranchRepository) GetAllBranches(ctx context.Context) ([]*models.Branch, error) {
	sql, args, err := r.sb.Select("id", "branch_name", "branch_code").
		From("branches").
		OrderBy("branch_name ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all branches SQL")
		return nil, fmt.Errorf("failed to build get all branches query: %w", err)
	}

	rows, err := r.db.query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all branches query")
		return nil, apperrors.NewUnavailableError("query branches", err)
	}
	defer rows.Close()

	branches := []*models.Branch{}
	for rows.Next() {
		branch := &models.Branch{}
		if err := rows.Scan(&branch.ID, &branch.Name, &branch.Code); err != nil {
			logger.Error().Err(err).Msg("Error scanning branch row")
			return nil, apperrors.NewUnavailableError("scan branch row", err)
		}
		branches = append(branches, branch)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating branch rows")
		return nil, apperrors.NewUnavailableError("iterate branch rows", err)
	}

	return branches, nil
}
