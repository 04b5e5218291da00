package predictor

import (
	"context"

	"github.com/yigit/cutoffpredictor/internal/app/models"
)

// Prediction is the outcome of one engine run
type Prediction struct {
	Criteria models.Criteria
	Results  []models.PredictionResult
	// Matched is the number of cutoff rows fetched before deduplication.
	Matched int
}

// Engine runs validate → fetch → resolve → project → dedupe → rank.
// It keeps no state between calls.
type Engine struct {
	source CutoffSource
}

// NewEngine creates an engine reading from source
func NewEngine(source CutoffSource) *Engine {
	return &Engine{source: source}
}

// Predict runs the whole pipeline. Any failure aborts the run; partial
// results are never returned.
func (e *Engine) Predict(ctx context.Context, in models.CriteriaInput) (*Prediction, error) {
	criteria, err := ValidateCriteria(in)
	if err != nil {
		return nil, err
	}

	ds, err := e.source.FetchCutoffs(ctx, criteria)
	if err != nil {
		return nil, err
	}

	resolved, err := ResolveAll(ds)
	if err != nil {
		return nil, err
	}

	results := Dedupe(ProjectAll(resolved))
	Rank(results)

	return &Prediction{Criteria: criteria, Results: results, Matched: len(ds.Cutoffs)}, nil
}
