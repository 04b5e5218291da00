package models

import "github.com/shopspring/decimal"

// CutoffRecord is one historical admission data point: the lowest percentile
// admitted to an offering for a category, domicile and counselling round.
type CutoffRecord struct {
	ID                string          `json:"id"`
	OfferingID        string          `json:"college_branch_id"`
	Category          Category        `json:"category"`
	Domicile          Domicile        `json:"domicile"`
	RoundNumber       int             `json:"round_number"`
	ClosingPercentile decimal.Decimal `json:"closing_percentile"`
}
