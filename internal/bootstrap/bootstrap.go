package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/trainerapi/internal/app/controllers"
	appMigrations "github.com/yigit/trainerapi/internal/app/migrations"
	appRepos "github.com/yigit/trainerapi/internal/app/repositories"
	"github.com/yigit/trainerapi/internal/app/repositories/memory"
	appRoutes "github.com/yigit/trainerapi/internal/app/routes"
	appServices "github.com/yigit/trainerapi/internal/app/services"
	"github.com/yigit/trainerapi/internal/config"
	"github.com/yigit/trainerapi/internal/db"
	appMiddleware "github.com/yigit/trainerapi/internal/middleware"
	"github.com/yigit/trainerapi/internal/pkg/logger"
	"github.com/yigit/trainerapi/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	PokemonService    appServices.PokemonService
	TrainerService    appServices.TrainerService
	SchoolService     appServices.SchoolService
	PokemonController *appControllers.PokemonController
	TrainerController *appControllers.TrainerController
	SchoolController  *appControllers.SchoolController
	HealthController  *appControllers.HealthController
	Logger            zerolog.Logger
}

// Storage is the store the services run against, plus what is needed to
// check and release it. DB is nil for the memory driver.
type Storage struct {
	Driver string
	Store  appRepos.Store
	DB     *db.PostgresDB
}

// Ping checks the backing database. It is nil when there is nothing to dial.
func (s *Storage) Ping() appControllers.PingFunc {
	if s.DB == nil {
		return nil
	}
	return s.DB.Pool.Ping
}

// Close releases the database pool, if any
func (s *Storage) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the configured store. For postgres it connects, pings
// and applies the migrations found in cfg.Database.MigrationsDir.
func SetupStorage(cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	driver := strings.ToLower(cfg.Database.Driver)
	if driver == config.DriverMemory {
		lgr.Warn().Msg("Using in-memory store, data is lost on shutdown")
		return &Storage{Driver: driver, Store: memory.NewStore()}, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return &Storage{
		Driver: driver,
		Store:  appRepos.NewPostgresStore(database.Pool),
		DB:     database,
	}, nil
}

// BuildDependencies initializes application services and controllers.
func BuildDependencies(storage *Storage, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}

	deps.PokemonService = appServices.NewPokemonService(storage.Store, lgr)
	deps.TrainerService = appServices.NewTrainerService(storage.Store, lgr)
	deps.SchoolService = appServices.NewSchoolService(storage.Store, lgr)

	deps.PokemonController = appControllers.NewPokemonController(deps.PokemonService)
	deps.TrainerController = appControllers.NewTrainerController(deps.TrainerService)
	deps.SchoolController = appControllers.NewSchoolController(deps.SchoolService)
	deps.HealthController = appControllers.NewHealthController(storage.Driver, storage.Ping())

	return deps
}

// SeedDefaultData writes the demo data when enabled. A failure is logged and
// does not stop startup.
func SeedDefaultData(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) {
	if !cfg.Seed.Enabled {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := seed.CreateDefaultData(ctx, seed.Services{
		Trainers: deps.TrainerService,
		Pokemon:  deps.PokemonService,
		School:   deps.SchoolService,
	}, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.UseJSONFieldNames()

	router := gin.New()
	router.ContextWithFallback = true
	router.Use(
		appMiddleware.RequestLogger(),
		appMiddleware.Recovery(),
		appMiddleware.CORS(cfg.CORS.AllowedOrigins),
	)

	appRoutes.SetupRouter(router,
		deps.PokemonController,
		deps.TrainerController,
		deps.SchoolController,
		deps.HealthController,
	)

	return router
}
