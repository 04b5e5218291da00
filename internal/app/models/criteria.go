package models

import "github.com/shopspring/decimal"

// CriteriaInput is the raw, unvalidated prediction request.
// Nil pointers mean the field was absent.
type CriteriaInput struct {
	Percentile *decimal.Decimal
	Category   *string
	Domicile   *string
	BranchIDs  []string
}

// Criteria is a validated prediction request. It is built once per request
// by the validator and never mutated afterwards.
type Criteria struct {
	Percentile decimal.Decimal
	Category   Category
	Domicile   Domicile
	BranchIDs  []string
}
