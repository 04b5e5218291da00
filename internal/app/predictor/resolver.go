package predictor

import (
	"github.com/yigit/cutoffpredictor/internal/app/models"
	"github.com/yigit/cutoffpredictor/internal/pkg/apperrors"
)

// Resolved is a cutoff joined with the entities it references
type Resolved struct {
	Cutoff   models.CutoffRecord
	Offering models.Offering
	College  models.College
	Branch   models.Branch
}

// Resolve follows the cutoff → offering → college/branch handles inside ds.
// A missing entity means the dataset is corrupt and is reported as
// apperrors.ErrIntegrityViolation; the row is never silently skipped.
func Resolve(ds *Dataset, cutoff models.CutoffRecord) (Resolved, error) {
	offering, ok := ds.Offerings[cutoff.OfferingID]
	if !ok {
		return Resolved{}, apperrors.NewIntegrityError(cutoff.ID, "offering", cutoff.OfferingID)
	}
	college, ok := ds.Colleges[offering.CollegeID]
	if !ok {
		return Resolved{}, apperrors.NewIntegrityError(cutoff.ID, "college", offering.CollegeID)
	}
	branch, ok := ds.Branches[offering.BranchID]
	if !ok {
		return Resolved{}, apperrors.NewIntegrityError(cutoff.ID, "branch", offering.BranchID)
	}

	return Resolved{Cutoff: cutoff, Offering: offering, College: college, Branch: branch}, nil
}

// ResolveAll resolves every cutoff of ds in fetch order. It stops at the first
// integrity violation.
func ResolveAll(ds *Dataset) ([]Resolved, error) {
	out := make([]Resolved, 0, len(ds.Cutoffs))
	for _, c := range ds.Cutoffs {
		r, err := Resolve(ds, c)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
