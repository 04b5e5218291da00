package dto

import (
	"github.com/shopspring/decimal"

	"github.com/yigit/cutoffpredictor/internal/app/models"
	"github.com/yigit/cutoffpredictor/internal/app/predictor"
)

// PredictRequest is the body of a prediction request.
// Percentile accepts a JSON number or a numeric string.
type PredictRequest struct {
	Percentile *decimal.Decimal `json:"percentile" swaggertype:"number" example:"92.5"`
	Category   *string          `json:"category" example:"OPEN" enums:"OPEN,SC,ST,OBC,EWS"`
	Domicile   *string          `json:"domicile" example:"Maharashtra" enums:"Maharashtra,Other State"`
	BranchIDs  []string         `json:"branch_ids"`
}

// ToCriteriaInput converts the request into the engine's raw input
func (r PredictRequest) ToCriteriaInput() models.CriteriaInput {
	return models.CriteriaInput{
		Percentile: r.Percentile,
		Category:   r.Category,
		Domicile:   r.Domicile,
		BranchIDs:  r.BranchIDs,
	}
}

// CollegeResult is one ranked college-branch opportunity
type CollegeResult struct {
	CollegeName       string  `json:"college_name" example:"COEP Technological University"`
	BranchName        string  `json:"branch_name" example:"Computer Engineering"`
	FeesPerYear       float64 `json:"fees_per_year" example:"90000"`
	ClosingPercentile float64 `json:"closing_percentile" example:"92.5"`
	Location          string  `json:"location" example:"Pune"`
	RoundNumber       int     `json:"round_number" example:"1"`
}

// CriteriaEcho repeats the normalized criteria back to the caller
type CriteriaEcho struct {
	Percentile       float64 `json:"percentile" example:"92.5"`
	Category         string  `json:"category" example:"OPEN"`
	Domicile         string  `json:"domicile" example:"Maharashtra"`
	BranchesSearched int     `json:"branches_searched" example:"2"`
}

// PredictionResponse is the success body of a prediction request
type PredictionResponse struct {
	Colleges   []CollegeResult `json:"colleges"`
	TotalFound int             `json:"total_found" example:"1"`
	Criteria   CriteriaEcho    `json:"criteria"`
}

// PredictionErrorResponse is the failure body of a prediction request
type PredictionErrorResponse struct {
	Error string `json:"error" example:"Missing required parameters"`
}

// NewPredictionResponse builds the response body from an engine run
func NewPredictionResponse(p *predictor.Prediction) *PredictionResponse {
	colleges := make([]CollegeResult, 0, len(p.Results))
	for _, r := range p.Results {
		colleges = append(colleges, CollegeResult{
			CollegeName:       r.CollegeName,
			BranchName:        r.BranchName,
			FeesPerYear:       r.FeesPerYear.InexactFloat64(),
			ClosingPercentile: r.ClosingPercentile.InexactFloat64(),
			Location:          r.Location,
			RoundNumber:       r.RoundNumber,
		})
	}

	return &PredictionResponse{
		Colleges:   colleges,
		TotalFound: len(colleges),
		Criteria: CriteriaEcho{
			Percentile:       p.Criteria.Percentile.InexactFloat64(),
			Category:         string(p.Criteria.Category),
			Domicile:         string(p.Criteria.Domicile),
			BranchesSearched: len(p.Criteria.BranchIDs),
		},
	}
}
