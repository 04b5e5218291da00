package services

import (
	"context"

	"github.com/yigit/cutoffpredictor/internal/app/models"
	"github.com/yigit/cutoffpredictor/internal/app/models/dto"
)

// BranchLister is the storage the branch service reads from
type BranchLister interface {
	GetAllBranches(ctx context.Context) ([]*models.Branch, error)
}

// BranchService defines the interface for branch catalogue operations
type BranchService interface {
	GetAllBranches(ctx context.Context) ([]dto.BranchResponse, error)
}

type branchServiceImpl struct {
	branchRepo BranchLister
}

// NewBranchService creates a new branch service
func NewBranchService(branchRepo BranchLister) BranchService {
	return &branchServiceImpl{branchRepo: branchRepo}
}

// GetAllBranches returns every branch ordered by name
func (s *branchServiceImpl) GetAllBranches(ctx context.Context) ([]dto.BranchResponse, error) {
	branches, err := s.branchRepo.GetAllBranches(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewBranchResponses(branches), nil
}
