package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appMigrations "github.com/yigit/cutoffpredictor/internal/app/migrations"
	"github.com/yigit/cutoffpredictor/internal/app/models"
	"github.com/yigit/cutoffpredictor/internal/app/predictor"
	appRepos "github.com/yigit/cutoffpredictor/internal/app/repositories"
	"github.com/yigit/cutoffpredictor/internal/db"
	"github.com/yigit/cutoffpredictor/migrations"
)

func TestCreateDefaultDataIsRepeatable(t *testing.T) {
	ctx := context.Background()
	sqlite, err := db.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	defer sqlite.Close()
	require.NoError(t, appMigrations.NewSQLiteMigrator(sqlite.DB, zerolog.Nop()).Migrate(ctx, migrations.FS))

	repos := appRepos.NewSQLiteRepositories(sqlite.DB)
	require.NoError(t, CreateDefaultData(ctx, repos.CatalogRepository, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(ctx, repos.CatalogRepository, zerolog.Nop()))

	branches, err := repos.BranchRepository.GetAllBranches(ctx)
	require.NoError(t, err)
	require.Len(t, branches, len(seedBranches))
	assert.Equal(t, "Civil Engineering", branches[0].Name)
	assert.Equal(t, ID("branch", "CIVIL"), branches[0].ID)

	var cutoffs int
	require.NoError(t, sqlite.DB.QueryRow(`SELECT COUNT(*) FROM cutoffs`).Scan(&cutoffs))
	assert.Equal(t, 18*len(models.Categories)*2*len(rounds), cutoffs)

	pct := decimal.RequireFromString("99.55")
	category, domicile := "OPEN", "Maharashtra"
	got, err := predictor.NewEngine(repos.CutoffRepository).Predict(ctx, models.CriteriaInput{
		Percentile: &pct, Category: &category, Domicile: &domicile,
		BranchIDs: []string{ID("branch", "CS")},
	})
	require.NoError(t, err)
	require.NotEmpty(t, got.Results)
	assert.Equal(t, "99.52", got.Results[0].ClosingPercentile.String())
	assert.Equal(t, "COEP Technological University", got.Results[0].CollegeName)
}

func TestCutoffsForDropsPerRound(t *testing.T) {
	got := cutoffsFor("o", decimal.RequireFromString("90"))
	require.Len(t, got, len(models.Categories)*2*len(rounds))

	first := got[:3]
	assert.Equal(t, models.CategoryOpen, first[0].Category)
	assert.Equal(t, models.DomicileInState, first[0].Domicile)
	assert.Equal(t, []string{"90", "89.65", "89.3"}, []string{
		first[0].ClosingPercentile.String(), first[1].ClosingPercentile.String(), first[2].ClosingPercentile.String(),
	})
}
