package dto

import "github.com/yigit/cutoffpredictor/internal/app/models"

// BranchResponse represents a selectable branch
type BranchResponse struct {
	ID   string `json:"id" example:"6f1c2b9e-5d1a-5e0a-9d7e-3c1b2a4f5e60"`
	Name string `json:"branch_name" example:"Computer Engineering"`
	Code string `json:"branch_code" example:"CS"`
}

// NewBranchResponses maps branch models to response items
func NewBranchResponses(branches []*models.Branch) []BranchResponse {
	out := make([]BranchResponse, 0, len(branches))
	for _, b := range branches {
		out = append(out, BranchResponse{ID: b.ID, Name: b.Name, Code: b.Code})
	}
	return out
}
