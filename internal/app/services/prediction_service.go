package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/yigit/cutoffpredictor/internal/app/models/dto"
	"github.com/yigit/cutoffpredictor/internal/app/predictor"
	"github.com/yigit/cutoffpredictor/internal/pkg/apperrors"
	"github.com/yigit/cutoffpredictor/internal/pkg/logger"
)

// PredictionService defines the interface for college prediction
type PredictionService interface {
	PredictColleges(ctx context.Context, req dto.PredictRequest) (*dto.PredictionResponse, error)
}

// predictionServiceImpl implements the PredictionService interface
type predictionServiceImpl struct {
	engine *predictor.Engine
}

// NewPredictionService creates a new prediction service reading from source
func NewPredictionService(source predictor.CutoffSource) PredictionService {
	return &predictionServiceImpl{engine: predictor.NewEngine(source)}
}

// PredictColleges runs the engine and converts its outcome into the response body
func (s *predictionServiceImpl) PredictColleges(ctx context.Context, req dto.PredictRequest) (*dto.PredictionResponse, error) {
	log := logger.WithField("operation", "predict_colleges")

	event := log.Info().Int("branches", len(req.BranchIDs))
	if req.Percentile != nil {
		event = event.Str("percentile", req.Percentile.String())
	}
	if req.Category != nil {
		event = event.Str("category", *req.Category)
	}
	if req.Domicile != nil {
		event = event.Str("domicile", *req.Domicile)
	}
	event.Msg("Prediction request received")

	prediction, err := s.engine.Predict(ctx, req.ToCriteriaInput())
	if err != nil {
		logPredictionError(log, err)
		return nil, err
	}

	log.Info().
		Int("matched", prediction.Matched).
		Int("returned", len(prediction.Results)).
		Msg("Prediction completed")

	return dto.NewPredictionResponse(prediction), nil
}

// logPredictionError records failures by kind. Integrity violations are data
// bugs and are kept apart from outages so they can be alerted on separately.
func logPredictionError(log zerolog.Logger, err error) {
	var custom *apperrors.CustomError

	switch {
	case errors.Is(err, apperrors.ErrInvalidCriteria):
		log.Warn().Err(err).Str("kind", "invalid_criteria").Msg("Prediction rejected")
	case errors.Is(err, apperrors.ErrIntegrityViolation):
		event := log.Error().Err(err).Str("kind", "integrity")
		if errors.As(err, &custom) {
			event = event.Fields(custom.Details)
		}
		event.Msg("Cutoff data references missing rows")
	case errors.Is(err, apperrors.ErrDataSourceUnavailable):
		log.Error().Err(err).Str("kind", "unavailable").Msg("Cutoff store query failed")
	default:
		log.Error().Err(err).Str("kind", "internal").Msg("Prediction failed")
	}
}
