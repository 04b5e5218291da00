package predictor

import "github.com/yigit/cutoffpredictor/internal/app/models"

// Dedupe keeps the first result seen for each (college name, branch name, round)
// key and drops later ones. Input order is preserved.
func Dedupe(results []models.PredictionResult) []models.PredictionResult {
	seen := make(map[models.ResultKey]struct{}, len(results))
	out := make([]models.PredictionResult, 0, len(results))
	for _, r := range results {
		k := r.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
