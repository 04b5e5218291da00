package predictor

import (
	"context"

	"github.com/yigit/cutoffpredictor/internal/app/models"
)

// CutoffSource performs the single read of a prediction request. Implementations
// must return only cutoffs that satisfy every hard filter of the criteria:
// equal category, equal domicile, closing percentile at or below the criteria
// percentile, and an offering whose branch is in the branch filter.
// Unreachable stores fail with apperrors.ErrDataSourceUnavailable.
type CutoffSource interface {
	FetchCutoffs(ctx context.Context, criteria models.Criteria) (*Dataset, error)
}

// Dataset is the in-memory result of one fetch. Entities are stored in arenas
// keyed by their IDs; cutoffs refer to offerings and offerings to colleges and
// branches only through those handles.
type Dataset struct {
	Colleges  map[string]models.College
	Branches  map[string]models.Branch
	Offerings map[string]models.Offering
	Cutoffs   []models.CutoffRecord
}

// NewDataset creates an empty dataset
func NewDataset() *Dataset {
	return &Dataset{
		Colleges:  make(map[string]models.College),
		Branches:  make(map[string]models.Branch),
		Offerings: make(map[string]models.Offering),
	}
}

// AddCollege stores c under its ID.
func (d *Dataset) AddCollege(c models.College) { d.Colleges[c.ID] = c }

// AddBranch stores b under its ID.
func (d *Dataset) AddBranch(b models.Branch) { d.Branches[b.ID] = b }

// AddOffering stores o under its ID.
func (d *Dataset) AddOffering(o models.Offering) { d.Offerings[o.ID] = o }

// AddCutoff appends a cutoff, keeping fetch order.
func (d *Dataset) AddCutoff(c models.CutoffRecord) { d.Cutoffs = append(d.Cutoffs, c) }
