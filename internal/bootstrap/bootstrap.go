package bootstrap

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/cutoffpredictor/internal/app/controllers"
	appMigrations "github.com/yigit/cutoffpredictor/internal/app/migrations"
	appRepos "github.com/yigit/cutoffpredictor/internal/app/repositories"
	appRoutes "github.com/yigit/cutoffpredictor/internal/app/routes"
	appServices "github.com/yigit/cutoffpredictor/internal/app/services"
	"github.com/yigit/cutoffpredictor/internal/config"
	"github.com/yigit/cutoffpredictor/internal/db"
	appMiddleware "github.com/yigit/cutoffpredictor/internal/middleware"
	pkgAuth "github.com/yigit/cutoffpredictor/internal/pkg/auth"
	"github.com/yigit/cutoffpredictor/internal/pkg/logger"
	"github.com/yigit/cutoffpredictor/internal/seed"
	"github.com/yigit/cutoffpredictor/migrations"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	PredictionService    appServices.PredictionService
	BranchService        appServices.BranchService
	PredictionController *appControllers.PredictionController
	BranchController     *appControllers.BranchController
	AuthMiddleware       *appMiddleware.AuthMiddleware // nil when auth is disabled
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Logger               zerolog.Logger
}

// Store is an open, migrated database together with its repositories
type Store struct {
	Driver string
	Repos  *appRepos.Repositories
	close  func()
}

// Close releases the underlying connection pool or handle
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := ConfigureLogger(cfg.Logging.Level, cfg.Logging.Format)
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// ConfigureLogger applies a level and format ("json" or "text") to the global logger
func ConfigureLogger(level, format string) zerolog.Logger {
	logger.Configure(logger.Config{
		Level:  logger.ParseLevel(level),
		Pretty: strings.ToLower(format) == "text",
	})
	return log.Logger
}

// migrationSource prefers the configured directory on disk and falls back to
// the migrations compiled into the binary.
func migrationSource(cfg *config.Config, lgr zerolog.Logger) fs.FS {
	dir := cfg.Migrations.Dir
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			lgr.Debug().Str("path", dir).Msg("Using migrations directory")
			return os.DirFS(dir)
		}
	}
	lgr.Debug().Msg("Using embedded migrations")
	return migrations.FS
}

// SetupDatabase opens the configured store and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")

	var (
		store    *Store
		migrator *appMigrations.Migrator
	)

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		database, err := db.NewSQLiteDB(cfg.Database.SQLitePath)
		if err != nil {
			lgr.Error().Err(err).Str("path", cfg.Database.SQLitePath).Msg("Failed to open sqlite database")
			return nil, err
		}
		store = &Store{
			Driver: config.DriverSQLite,
			Repos:  appRepos.NewSQLiteRepositories(database.DB),
			close:  func() { _ = database.Close() },
		}
		migrator = appMigrations.NewSQLiteMigrator(database.DB, lgr)

	default:
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		store = &Store{
			Driver: config.DriverPostgres,
			Repos:  appRepos.NewRepositories(database.Pool),
			close:  database.Close,
		}
		migrator = appMigrations.NewMigrator(database.Pool, lgr)
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	if err := migrator.Migrate(ctx, migrationSource(cfg, lgr)); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		store.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return store, nil
}

// SeedDatabase loads the demo catalogue and cutoffs into store
func SeedDatabase(ctx context.Context, store *Store, lgr zerolog.Logger) error {
	return seed.CreateDefaultData(ctx, store.Repos.CatalogRepository, lgr)
}

// BuildDependencies initializes application services, controllers and middleware.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr, Repos: repos}

	deps.PredictionService = appServices.NewPredictionService(repos.CutoffRepository)
	deps.BranchService = appServices.NewBranchService(repos.BranchRepository)

	if cfg.Auth.Enabled {
		deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
			SecretKey:   cfg.Auth.Secret,
			TokenIssuer: cfg.Auth.Issuer,
		})
		deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
		lgr.Info().Str("issuer", cfg.Auth.Issuer).Msg("JWT authentication enabled for prediction routes")
	}

	deps.PredictionController = appControllers.NewPredictionController(deps.PredictionService)
	deps.BranchController = appControllers.NewBranchController(deps.BranchService)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestLogger(),
		appMiddleware.SetupCORS(cfg.CORS.AllowedOrigins),
	)

	appRoutes.SetupRouter(router,
		deps.PredictionController,
		deps.BranchController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
