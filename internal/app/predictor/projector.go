package predictor

import (
	"github.com/shopspring/decimal"

	"github.com/yigit/cutoffpredictor/internal/app/models"
)

// Project flattens a resolved cutoff into the result shape. Offerings without
// a recorded fee project to zero.
func Project(r Resolved) models.PredictionResult {
	fees := decimal.Zero
	if r.Offering.FeesPerYear.Valid {
		fees = r.Offering.FeesPerYear.Decimal
	}

	return models.PredictionResult{
		CollegeName:       r.College.Name,
		BranchName:        r.Branch.Name,
		FeesPerYear:       fees,
		ClosingPercentile: r.Cutoff.ClosingPercentile,
		Location:          r.College.Location,
		RoundNumber:       r.Cutoff.RoundNumber,
	}
}

// ProjectAll projects every resolved record, keeping order.
func ProjectAll(resolved []Resolved) []models.PredictionResult {
	out := make([]models.PredictionResult, len(resolved))
	for i, r := range resolved {
		out[i] = Project(r)
	}
	return out
}
