package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/cutoffpredictor/internal/app/models/dto"
	"github.com/yigit/cutoffpredictor/internal/app/services"
	"github.com/yigit/cutoffpredictor/internal/middleware"
)

// BranchController handles branch catalogue requests
type BranchController struct {
	branchService services.BranchService
}

// NewBranchController creates a new BranchController
func NewBranchController(branchService services.BranchService) *BranchController {
	return &BranchController{
		branchService: branchService,
	}
}

// GetAllBranches retrieves all branches
// @Summary Get all branches
// @Description Retrieves every branch a prediction can be restricted to, ordered by name
// @Tags branches
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.BranchResponse} "Branches retrieved successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /branches [get]
func (c *BranchController) GetAllBranches(ctx *gin.Context) {
	branches, err := c.branchService.GetAllBranches(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      branches,
		Timestamp: time.Now(),
	})
}
