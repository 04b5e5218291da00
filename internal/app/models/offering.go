package models

import "github.com/shopspring/decimal"

// Offering links a college to a branch it teaches. Cutoffs hang off offerings.
type Offering struct {
	ID          string              `json:"id"`
	CollegeID   string              `json:"college_id"`
	BranchID    string              `json:"branch_id"`
	FeesPerYear decimal.NullDecimal `json:"fees_per_year"`
}
