package models

import "github.com/shopspring/decimal"

// PredictionResult is one ranked admission opportunity
type PredictionResult struct {
	CollegeName       string
	BranchName        string
	FeesPerYear       decimal.Decimal
	ClosingPercentile decimal.Decimal
	Location          string
	RoundNumber       int
}

// ResultKey identifies a result row for deduplication
type ResultKey struct {
	CollegeName string
	BranchName  string
	RoundNumber int
}

// Key returns the deduplication key of r
func (r PredictionResult) Key() ResultKey {
	return ResultKey{CollegeName: r.CollegeName, BranchName: r.BranchName, RoundNumber: r.RoundNumber}
}
