// cutoffctl manages the cutoff store and runs predictions from the shell.
//
// Usage:
//
//	cutoffctl migrate
//	cutoffctl seed
//	cutoffctl branches
//	cutoffctl predict --percentile 92.5 --category OPEN --domicile Maharashtra --branch <id>
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/yigit/cutoffpredictor/internal/app/models/dto"
	appServices "github.com/yigit/cutoffpredictor/internal/app/services"
	"github.com/yigit/cutoffpredictor/internal/bootstrap"
	"github.com/yigit/cutoffpredictor/internal/config"
	"github.com/yigit/cutoffpredictor/internal/pkg/logger"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "cutoffctl",
		Usage:   "Manage the admission cutoff store and predict eligible colleges",
		Version: version,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   filepath.Join("configs", "config.yaml"),
				Usage:   "Path to the YAML configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error); overrides the config file",
				EnvVars: []string{"CUTOFFCTL_LOG_LEVEL"},
			},
		},

		Commands: []*cli.Command{
			migrateCommand(),
			seedCommand(),
			branchesCommand(),
			predictCommand(),
		},
	}
}

// setup loads configuration, logs to stderr and opens the migrated store
func setup(c *cli.Context) (*config.Config, *bootstrap.Store, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, nil, zerolog.Logger{}, err
	}

	level := cfg.Logging.Level
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}
	lgr := logger.Configure(logger.Config{
		Level:  logger.ParseLevel(level),
		Pretty: true,
		Output: os.Stderr,
	})

	store, err := bootstrap.SetupDatabase(c.Context, cfg, lgr)
	if err != nil {
		return nil, nil, lgr, err
	}
	return cfg, store, lgr, nil
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending SQL migrations",
		Action: func(c *cli.Context) error {
			_, store, lgr, err := setup(c)
			if err != nil {
				return err
			}
			defer store.Close()
			lgr.Info().Str("driver", store.Driver).Msg("Schema is up to date")
			return nil
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load the demo colleges, branches and cutoffs",
		Action: func(c *cli.Context) error {
			_, store, lgr, err := setup(c)
			if err != nil {
				return err
			}
			defer store.Close()
			return bootstrap.SeedDatabase(c.Context, store, lgr)
		},
	}
}

func branchesCommand() *cli.Command {
	return &cli.Command{
		Name:  "branches",
		Usage: "List branch IDs accepted by predict",
		Action: func(c *cli.Context) error {
			_, store, _, err := setup(c)
			if err != nil {
				return err
			}
			defer store.Close()

			branches, err := appServices.NewBranchService(store.Repos.BranchRepository).GetAllBranches(c.Context)
			if err != nil {
				return err
			}
			for _, b := range branches {
				fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\n", b.ID, b.Code, b.Name)
			}
			return nil
		},
	}
}

func predictCommand() *cli.Command {
	return &cli.Command{
		Name:  "predict",
		Usage: "Print the ranked colleges for a student's criteria as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "percentile",
				Aliases:  []string{"p"},
				Usage:    "Student percentile, 0 to 100",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "category",
				Usage:    "Reservation category (OPEN, SC, ST, OBC, EWS)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "domicile",
				Value: "Maharashtra",
				Usage: "Domicile (Maharashtra, Other State)",
			},
			&cli.StringSliceFlag{
				Name:     "branch",
				Aliases:  []string{"b"},
				Usage:    "Branch ID to search; repeat for several",
				Required: true,
			},
		},
		Action: runPredict,
	}
}

func runPredict(c *cli.Context) error {
	percentile, err := decimal.NewFromString(c.String("percentile"))
	if err != nil {
		return fmt.Errorf("invalid percentile %q: %w", c.String("percentile"), err)
	}
	category := c.String("category")
	domicile := c.String("domicile")

	_, store, _, err := setup(c)
	if err != nil {
		return err
	}
	defer store.Close()

	svc := appServices.NewPredictionService(store.Repos.CutoffRepository)
	resp, err := svc.PredictColleges(c.Context, dto.PredictRequest{
		Percentile: &percentile,
		Category:   &category,
		Domicile:   &domicile,
		BranchIDs:  c.StringSlice("branch"),
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
