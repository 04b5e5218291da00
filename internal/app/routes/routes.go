package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/cutoffpredictor/internal/app/controllers"
	"github.com/yigit/cutoffpredictor/internal/app/models/dto"
	"github.com/yigit/cutoffpredictor/internal/middleware"
)

// SetupRouter configures all application routes. A nil authMiddleware
// leaves the prediction routes public.
func SetupRouter(
	router *gin.Engine,
	predictionController *controllers.PredictionController,
	branchController *controllers.BranchController,
	authMiddleware *middleware.AuthMiddleware,
) {
	predictHandlers := []gin.HandlerFunc{}
	if authMiddleware != nil {
		predictHandlers = append(predictHandlers, authMiddleware.JWTAuth())
	}
	predictHandlers = append(predictHandlers, predictionController.PredictColleges)

	// API version group
	v1 := router.Group("/api/v1")
	{
		v1.POST("/predict-colleges", predictHandlers...)
		v1.GET("/branches", branchController.GetAllBranches)
	}

	// Path used by the existing web form
	functions := router.Group("/functions/v1")
	{
		functions.POST("/predict-colleges", predictHandlers...)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.APIResponse{
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})
}
