package predictor

import (
	"sort"
	"strings"

	"github.com/yigit/cutoffpredictor/internal/app/models"
)

// Rank sorts results in place, highest closing percentile first.
// Exact ties fall back to college name, branch name, then round number, so the
// order does not depend on how the store returned the rows.
func Rank(results []models.PredictionResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if c := a.ClosingPercentile.Cmp(b.ClosingPercentile); c != 0 {
			return c > 0
		}
		if c := strings.Compare(a.CollegeName, b.CollegeName); c != 0 {
			return c < 0
		}
		if c := strings.Compare(a.BranchName, b.BranchName); c != 0 {
			return c < 0
		}
		return a.RoundNumber < b.RoundNumber
	})
}
