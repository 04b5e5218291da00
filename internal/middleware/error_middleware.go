package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/cutoffpredictor/internal/app/models/dto"
	"github.com/yigit/cutoffpredictor/internal/pkg/apperrors"
)

// Prediction endpoint error messages
const (
	MsgMissingParameters   = "Missing required parameters"
	MsgDatabaseQueryFailed = "Database query failed"
	MsgInternalServerError = "Internal server error"
)

// HandlePredictionError maps a prediction failure to its status and flat error body
func HandlePredictionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCriteria):
		c.JSON(http.StatusBadRequest, dto.PredictionErrorResponse{Error: MsgMissingParameters})
	case apperrors.Is(err, apperrors.ErrDataSourceUnavailable, apperrors.ErrIntegrityViolation):
		c.JSON(http.StatusInternalServerError, dto.PredictionErrorResponse{Error: MsgDatabaseQueryFailed})
	default:
		c.JSON(http.StatusInternalServerError, dto.PredictionErrorResponse{Error: MsgInternalServerError})
	}
}

// HandleAPIError maps a catalog lookup failure to an enveloped error response
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrDataSourceUnavailable):
		c.JSON(http.StatusInternalServerError, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database query failed").WithSeverity(dto.ErrorSeverityCritical),
			Timestamp: time.Now(),
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
			Timestamp: time.Now(),
		})
	}
}
