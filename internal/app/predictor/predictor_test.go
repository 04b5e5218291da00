package predictor

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/cutoffpredictor/internal/app/models"
	"github.com/yigit/cutoffpredictor/internal/pkg/apperrors"
)

// fakeSource holds a whole dataset and applies the hard filters itself,
// the way a store query would.
type fakeSource struct {
	all   *Dataset
	err   error
	calls int
}

func (f *fakeSource) FetchCutoffs(_ context.Context, c models.Criteria) (*Dataset, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := NewDataset()
	out.Colleges = f.all.Colleges
	out.Branches = f.all.Branches
	out.Offerings = f.all.Offerings
	for _, cut := range f.all.Cutoffs {
		off, ok := f.all.Offerings[cut.OfferingID]
		branchID := ""
		if ok {
			branchID = off.BranchID
		}
		if cut.Category == c.Category && cut.Domicile == c.Domicile &&
			cut.ClosingPercentile.LessThanOrEqual(c.Percentile) &&
			(!ok || hasBranch(c, branchID)) {
			out.AddCutoff(cut)
		}
	}
	return out, nil
}

func hasBranch(c models.Criteria, id string) bool {
	for _, b := range c.BranchIDs {
		if b == id {
			return true
		}
	}
	return false
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string { return &s }

func validInput() models.CriteriaInput {
	return models.CriteriaInput{
		Percentile: decPtr("92.5"),
		Category:   strPtr("OPEN"),
		Domicile:   strPtr("Maharashtra"),
		BranchIDs:  []string{"CS"},
	}
}

func sampleDataset() *Dataset {
	ds := NewDataset()
	ds.AddBranch(models.Branch{ID: "CS", Name: "Computer Engineering", Code: "CS"})
	ds.AddBranch(models.Branch{ID: "ME", Name: "Mechanical Engineering", Code: "ME"})
	ds.AddCollege(models.College{ID: "coep", Name: "COEP Pune", Location: "Pune"})
	ds.AddCollege(models.College{ID: "vjti", Name: "VJTI Mumbai", Location: "Mumbai"})
	ds.AddOffering(models.Offering{ID: "coep-cs", CollegeID: "coep", BranchID: "CS",
		FeesPerYear: decimal.NewNullDecimal(dec("90000"))})
	ds.AddOffering(models.Offering{ID: "vjti-cs", CollegeID: "vjti", BranchID: "CS"})
	ds.AddOffering(models.Offering{ID: "vjti-me", CollegeID: "vjti", BranchID: "ME"})

	add := func(id, offering string, round int, pct string) {
		ds.AddCutoff(models.CutoffRecord{ID: id, OfferingID: offering, Category: models.CategoryOpen,
			Domicile: models.DomicileInState, RoundNumber: round, ClosingPercentile: dec(pct)})
	}
	add("c1", "coep-cs", 1, "90.0")
	add("c2", "vjti-cs", 1, "93.0")
	add("c3", "vjti-cs", 2, "92.5")
	add("c4", "vjti-me", 1, "80.0")
	ds.AddCutoff(models.CutoffRecord{ID: "c5", OfferingID: "coep-cs", Category: models.CategorySC,
		Domicile: models.DomicileInState, RoundNumber: 1, ClosingPercentile: dec("70")})
	ds.AddCutoff(models.CutoffRecord{ID: "c6", OfferingID: "coep-cs", Category: models.CategoryOpen,
		Domicile: models.DomicileOutOfState, RoundNumber: 1, ClosingPercentile: dec("70")})
	return ds
}

func TestValidateCriteria(t *testing.T) {
	c, err := ValidateCriteria(models.CriteriaInput{
		Percentile: decPtr("88.456"),
		Category:   strPtr(" OBC "),
		Domicile:   strPtr("Other State"),
		BranchIDs:  []string{"CS", " ", "CS", "IT"},
	})
	require.NoError(t, err)

	assert.Equal(t, "88.45", c.Percentile.String())
	assert.Equal(t, models.CategoryOBC, c.Category)
	assert.Equal(t, models.DomicileOutOfState, c.Domicile)
	assert.Equal(t, []string{"CS", "IT"}, c.BranchIDs)
}

func TestValidateCriteriaBoundaries(t *testing.T) {
	for _, p := range []string{"0", "100", "99.999"} {
		in := validInput()
		in.Percentile = decPtr(p)
		_, err := ValidateCriteria(in)
		assert.NoError(t, err, "percentile %s", p)
	}

	for _, p := range []string{"-0.004", "100.004", "100.0000001"} {
		in := validInput()
		in.Percentile = decPtr(p)
		_, err := ValidateCriteria(in)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCriteria, "percentile %s", p)
	}
}

func TestMustRegisterPanicsOnBadTag(t *testing.T) {
	assert.NotPanics(t, func() { newValidator() })
	assert.Panics(t, func() {
		mustRegister(validator.New(), "", func(validator.FieldLevel) bool { return true })
	})
}

func TestValidateCriteriaTruncatesPercentile(t *testing.T) {
	for in, want := range map[string]string{"92.495": "92.49", "92.499": "92.49", "99.999": "99.99", "0.009": "0", "92.5": "92.5"} {
		input := validInput()
		input.Percentile = decPtr(in)
		c, err := ValidateCriteria(input)
		require.NoError(t, err, in)
		assert.Equal(t, want, c.Percentile.String(), in)
	}
}

func TestPredictNeverReturnsCutoffAboveSubmittedPercentile(t *testing.T) {
	in := validInput()
	in.Percentile = decPtr("92.495")

	got, err := NewEngine(&fakeSource{all: sampleDataset()}).Predict(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, got.Results, 1)
	assert.Equal(t, "90", got.Results[0].ClosingPercentile.String())
	for _, r := range got.Results {
		assert.True(t, r.ClosingPercentile.LessThanOrEqual(dec("92.495")), r.ClosingPercentile.String())
	}
}

func TestValidateCriteriaRejects(t *testing.T) {
	cases := map[string]func(*models.CriteriaInput){
		"missing percentile": func(in *models.CriteriaInput) { in.Percentile = nil },
		"negative":           func(in *models.CriteriaInput) { in.Percentile = decPtr("-0.01") },
		"above 100":          func(in *models.CriteriaInput) { in.Percentile = decPtr("100.01") },
		"missing category":   func(in *models.CriteriaInput) { in.Category = nil },
		"blank category":     func(in *models.CriteriaInput) { in.Category = strPtr("  ") },
		"unknown category":   func(in *models.CriteriaInput) { in.Category = strPtr("GENERAL") },
		"lowercase category": func(in *models.CriteriaInput) { in.Category = strPtr("open") },
		"missing domicile":   func(in *models.CriteriaInput) { in.Domicile = nil },
		"unknown domicile":   func(in *models.CriteriaInput) { in.Domicile = strPtr("Goa") },
		"nil branches":       func(in *models.CriteriaInput) { in.BranchIDs = nil },
		"empty branches":     func(in *models.CriteriaInput) { in.BranchIDs = []string{} },
		"blank branches":     func(in *models.CriteriaInput) { in.BranchIDs = []string{"", " "} },
		"everything missing": func(in *models.CriteriaInput) { *in = models.CriteriaInput{} },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := ValidateCriteria(in)
			assert.ErrorIs(t, err, apperrors.ErrInvalidCriteria)
		})
	}
}

func TestResolveIntegrityViolations(t *testing.T) {
	ds := sampleDataset()
	ds.AddOffering(models.Offering{ID: "ghost-college", CollegeID: "nope", BranchID: "CS"})
	ds.AddOffering(models.Offering{ID: "ghost-branch", CollegeID: "coep", BranchID: "nope"})

	for _, offering := range []string{"missing", "ghost-college", "ghost-branch"} {
		_, err := Resolve(ds, models.CutoffRecord{ID: "x", OfferingID: offering})
		require.ErrorIs(t, err, apperrors.ErrIntegrityViolation, offering)

		var custom *apperrors.CustomError
		require.True(t, errors.As(err, &custom))
		assert.Equal(t, "x", custom.Details["cutoffId"])
	}
}

func TestProjectDefaultsFees(t *testing.T) {
	ds := sampleDataset()
	r, err := Resolve(ds, ds.Cutoffs[1])
	require.NoError(t, err)

	got := Project(r)
	assert.Equal(t, "VJTI Mumbai", got.CollegeName)
	assert.Equal(t, "Computer Engineering", got.BranchName)
	assert.Equal(t, "Mumbai", got.Location)
	assert.True(t, got.FeesPerYear.IsZero())
	assert.Equal(t, 1, got.RoundNumber)
}

func TestDedupeKeepsFirstSeen(t *testing.T) {
	base := models.PredictionResult{CollegeName: "COEP Pune", BranchName: "Computer Engineering",
		ClosingPercentile: dec("90"), Location: "Pune"}
	r1, r2, r3 := base, base, base
	r1.RoundNumber, r2.RoundNumber, r3.RoundNumber = 1, 2, 3
	dup := r1
	dup.Location = "second copy"

	got := Dedupe([]models.PredictionResult{r1, r2, dup, r3})
	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{got[0].RoundNumber, got[1].RoundNumber, got[2].RoundNumber})
	assert.Equal(t, "Pune", got[0].Location)
}

func TestRankOrdersByPercentileThenNames(t *testing.T) {
	results := []models.PredictionResult{
		{CollegeName: "B", BranchName: "X", ClosingPercentile: dec("90"), RoundNumber: 1},
		{CollegeName: "A", BranchName: "Y", ClosingPercentile: dec("95"), RoundNumber: 1},
		{CollegeName: "A", BranchName: "X", ClosingPercentile: dec("90.00"), RoundNumber: 2},
		{CollegeName: "A", BranchName: "X", ClosingPercentile: dec("90"), RoundNumber: 1},
	}
	Rank(results)

	var order []string
	for _, r := range results {
		order = append(order, r.CollegeName+r.BranchName+r.ClosingPercentile.String())
	}
	assert.Equal(t, []string{"AY95", "AX90", "AX90", "BX90"}, order)
	assert.Equal(t, 1, results[1].RoundNumber)
	assert.Equal(t, 2, results[2].RoundNumber)
}

func TestEnginePredictScenario(t *testing.T) {
	src := &fakeSource{all: sampleDataset()}
	engine := NewEngine(src)

	got, err := engine.Predict(context.Background(), validInput())
	require.NoError(t, err)

	require.Len(t, got.Results, 2)
	assert.Equal(t, "92.5", got.Results[0].ClosingPercentile.String())
	assert.Equal(t, "90", got.Results[1].ClosingPercentile.String())
	assert.Equal(t, "COEP Pune", got.Results[1].CollegeName)
	assert.Equal(t, "90000", got.Results[1].FeesPerYear.String())
	assert.Equal(t, 2, got.Matched)

	for _, r := range got.Results {
		assert.True(t, r.ClosingPercentile.LessThanOrEqual(got.Criteria.Percentile))
		assert.Equal(t, "Computer Engineering", r.BranchName)
	}
}

func TestEnginePredictIsIdempotent(t *testing.T) {
	engine := NewEngine(&fakeSource{all: sampleDataset()})
	in := validInput()
	in.Percentile = decPtr("99")
	in.BranchIDs = []string{"CS", "ME"}

	first, err := engine.Predict(context.Background(), in)
	require.NoError(t, err)
	second, err := engine.Predict(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.Results, second.Results)
	assert.Len(t, first.Results, 4)
}

func TestEnginePredictRoundsCollapse(t *testing.T) {
	ds := sampleDataset()
	ds.Cutoffs = nil
	for _, round := range []int{1, 2, 3, 1} {
		ds.AddCutoff(models.CutoffRecord{ID: "r", OfferingID: "coep-cs", Category: models.CategoryOpen,
			Domicile: models.DomicileInState, RoundNumber: round, ClosingPercentile: dec("85")})
	}

	got, err := NewEngine(&fakeSource{all: ds}).Predict(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, 4, got.Matched)
	require.Len(t, got.Results, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{got.Results[0].RoundNumber, got.Results[1].RoundNumber, got.Results[2].RoundNumber})
}

func TestEnginePredictFailures(t *testing.T) {
	t.Run("invalid criteria never reaches the store", func(t *testing.T) {
		src := &fakeSource{all: sampleDataset()}
		in := validInput()
		in.BranchIDs = []string{}

		got, err := NewEngine(src).Predict(context.Background(), in)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCriteria)
		assert.Zero(t, src.calls)
	})

	t.Run("store failure is surfaced", func(t *testing.T) {
		src := &fakeSource{err: apperrors.NewUnavailableError("fetch cutoffs", errors.New("connection refused"))}
		got, err := NewEngine(src).Predict(context.Background(), validInput())
		assert.Nil(t, got)
		assert.ErrorIs(t, err, apperrors.ErrDataSourceUnavailable)
		assert.Equal(t, 1, src.calls)
	})

	t.Run("dangling reference aborts the whole run", func(t *testing.T) {
		ds := sampleDataset()
		delete(ds.Colleges, "vjti")

		got, err := NewEngine(&fakeSource{all: ds}).Predict(context.Background(), validInput())
		assert.Nil(t, got)
		assert.ErrorIs(t, err, apperrors.ErrIntegrityViolation)
	})
}
