package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	appModels "github.com/yigit/cutoffpredictor/internal/app/models"
	appRepos "github.com/yigit/cutoffpredictor/internal/app/repositories"
)

// namespace makes seeded IDs stable across runs, so re-seeding is a no-op.
var namespace = uuid.MustParse("8f7c3a52-1d0e-4c55-9a1e-5b2f6f0d9c11")

// ID returns the deterministic ID of a seeded entity.
func ID(kind, key string) string {
	return uuid.NewSHA1(namespace, []byte(kind+":"+key)).String()
}

type seedCollege struct {
	code, name, location string
	// branch code -> round 1 OPEN in-state closing percentile and yearly fee
	branches map[string][2]string
}

var seedBranches = []appModels.Branch{
	{Name: "Computer Engineering", Code: "CS"},
	{Name: "Information Technology", Code: "IT"},
	{Name: "Electronics and Telecommunication", Code: "ENTC"},
	{Name: "Mechanical Engineering", Code: "MECH"},
	{Name: "Civil Engineering", Code: "CIVIL"},
}

var seedColleges = []seedCollege{
	{"COEP", "COEP Technological University", "Pune", map[string][2]string{
		"CS": {"99.52", "90000"}, "ENTC": {"98.71", "90000"}, "MECH": {"96.80", "90000"}, "CIVIL": {"94.10", "90000"},
	}},
	{"VJTI", "Veermata Jijabai Technological Institute", "Mumbai", map[string][2]string{
		"CS": {"99.61", "85000"}, "IT": {"99.20", "85000"}, "ENTC": {"98.30", "85000"}, "MECH": {"96.05", "85000"},
	}},
	{"PICT", "Pune Institute of Computer Technology", "Pune", map[string][2]string{
		"CS": {"99.05", "110000"}, "IT": {"98.62", "110000"}, "ENTC": {"97.40", "110000"},
	}},
	{"SPIT", "Sardar Patel Institute of Technology", "Mumbai", map[string][2]string{
		"CS": {"98.90", "165000"}, "IT": {"98.35", "165000"}, "ENTC": {"96.90", ""},
	}},
	{"WCE", "Walchand College of Engineering", "Sangli", map[string][2]string{
		"CS": {"97.85", "75000"}, "IT": {"97.10", "75000"}, "MECH": {"93.20", "75000"}, "CIVIL": {"89.40", "75000"},
	}},
}

// categoryOffset is subtracted from the OPEN cutoff for each category.
var categoryOffset = map[appModels.Category]string{
	appModels.CategoryOpen: "0",
	appModels.CategoryEWS:  "1.10",
	appModels.CategoryOBC:  "1.85",
	appModels.CategorySC:   "6.40",
	appModels.CategoryST:   "11.25",
}

var (
	roundDrop     = decimal.RequireFromString("0.35")
	outStateDrift = decimal.RequireFromString("0.45")
	rounds        = []int{1, 2, 3}
)

// CreateDefaultData creates a demo cutoff dataset if it doesn't exist.
// Every insert is keyed by a deterministic ID, so existing rows are left alone.
func CreateDefaultData(ctx context.Context, repo *appRepos.CatalogRepository, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Branches/Colleges/Cutoffs)...")
	var finalErr error // collect errors without stopping the process
	created := 0

	track := func(ok bool, err error, what string) {
		if err != nil {
			lgr.Error().Err(err).Str("entity", what).Msg("Error creating default data")
			finalErr = errors.Join(finalErr, err)
			return
		}
		if ok {
			created++
		}
	}

	for _, b := range seedBranches {
		b.ID = ID("branch", b.Code)
		ok, err := repo.CreateBranch(ctx, &b)
		track(ok, err, "branch "+b.Code)
	}

	for _, sc := range seedColleges {
		college := appModels.College{ID: ID("college", sc.code), Name: sc.name, Location: sc.location}
		ok, err := repo.CreateCollege(ctx, &college)
		track(ok, err, "college "+sc.code)

		for branchCode, v := range sc.branches {
			offering := appModels.Offering{
				ID:        ID("offering", sc.code+"/"+branchCode),
				CollegeID: college.ID,
				BranchID:  ID("branch", branchCode),
			}
			if v[1] != "" {
				offering.FeesPerYear = decimal.NewNullDecimal(decimal.RequireFromString(v[1]))
			}
			ok, err := repo.CreateOffering(ctx, &offering)
			track(ok, err, "offering "+sc.code+"/"+branchCode)

			for _, cutoff := range cutoffsFor(offering.ID, decimal.RequireFromString(v[0])) {
				ok, err := repo.CreateCutoff(ctx, &cutoff)
				track(ok, err, "cutoff "+cutoff.ID)
			}
		}
	}

	lgr.Info().Int("created", created).Msg("Default data check complete")
	if finalErr != nil {
		return fmt.Errorf("seeding default data: %w", finalErr)
	}
	return nil
}

// cutoffsFor derives round-wise cutoffs of one offering for every category and domicile.
func cutoffsFor(offeringID string, open decimal.Decimal) []appModels.CutoffRecord {
	var out []appModels.CutoffRecord
	for _, category := range appModels.Categories {
		base := open.Sub(decimal.RequireFromString(categoryOffset[category]))
		for _, domicile := range []appModels.Domicile{appModels.DomicileInState, appModels.DomicileOutOfState} {
			pct := base
			if domicile == appModels.DomicileOutOfState {
				pct = pct.Add(outStateDrift)
			}
			for _, round := range rounds {
				value := pct.Sub(roundDrop.Mul(decimal.NewFromInt(int64(round - 1))))
				if value.GreaterThan(decimal.NewFromInt(100)) {
					value = decimal.NewFromInt(100)
				}
				out = append(out, appModels.CutoffRecord{
					ID:                ID("cutoff", fmt.Sprintf("%s/%s/%s/%d", offeringID, category, domicile, round)),
					OfferingID:        offeringID,
					Category:          category,
					Domicile:          domicile,
					RoundNumber:       round,
					ClosingPercentile: value.Round(2),
				})
			}
		}
	}
	return out
}
