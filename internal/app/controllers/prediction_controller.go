package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/cutoffpredictor/internal/app/models/dto"
	"github.com/yigit/cutoffpredictor/internal/app/services"
	"github.com/yigit/cutoffpredictor/internal/middleware"
	"github.com/yigit/cutoffpredictor/internal/pkg/apperrors"
	"github.com/yigit/cutoffpredictor/internal/pkg/logger"
)

// PredictionController handles college prediction requests
type PredictionController struct {
	predictionService services.PredictionService
}

// NewPredictionController creates a new PredictionController
func NewPredictionController(predictionService services.PredictionService) *PredictionController {
	return &PredictionController{
		predictionService: predictionService,
	}
}

// PredictColleges returns the college-branch opportunities a student qualifies for
// @Summary Predict colleges
// @Description Lists the college-branch combinations whose closing percentile is at or below the student's percentile, best first
// @Tags predictions
// @Accept json
// @Produce json
// @Param request body dto.PredictRequest true "Student criteria"
// @Success 200 {object} dto.PredictionResponse "Ranked opportunities"
// @Failure 400 {object} dto.PredictionErrorResponse "Missing required parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.PredictionErrorResponse "Database query failed"
// @Router /predict-colleges [post]
func (c *PredictionController) PredictColleges(ctx *gin.Context) {
	var req dto.PredictRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.Debug().Err(err).Msg("Prediction request body could not be decoded")
		middleware.HandlePredictionError(ctx, apperrors.NewInvalidCriteriaError("request", err.Error()))
		return
	}

	resp, err := c.predictionService.PredictColleges(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandlePredictionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
