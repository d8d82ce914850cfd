package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/adityar/hostelhub/internal/app/allocation"
	"github.com/adityar/hostelhub/internal/app/catalog"
	appControllers "github.com/adityar/hostelhub/internal/app/controllers"
	appMigrations "github.com/adityar/hostelhub/internal/app/migrations"
	"github.com/adityar/hostelhub/internal/app/models"
	appRepos "github.com/adityar/hostelhub/internal/app/repositories"
	appRoutes "github.com/adityar/hostelhub/internal/app/routes"
	appServices "github.com/adityar/hostelhub/internal/app/services"
	"github.com/adityar/hostelhub/internal/config"
	"github.com/adityar/hostelhub/internal/db"
	appMiddleware "github.com/adityar/hostelhub/internal/middleware"
	pkgAuth "github.com/adityar/hostelhub/internal/pkg/auth"
	"github.com/adityar/hostelhub/internal/pkg/helpers"
	"github.com/adityar/hostelhub/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AllotmentService    appServices.AllotmentService // Interface type
	AllotmentController *appControllers.AllotmentController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	Catalog             *catalog.Catalog
	JWTService          *pkgAuth.JWTService
	Logger              zerolog.Logger
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

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// BuildDependencies initializes the room catalog, repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// Load the room catalog. An unreadable or invalid catalog is fatal:
	// the engine cannot run against an unknown inventory.
	roomCatalog, err := catalog.Load(cfg.Hostel.CatalogPath)
	if err != nil {
		lgr.Error().Err(err).Str("path", cfg.Hostel.CatalogPath).Msg("Failed to load room catalog")
		return nil, fmt.Errorf("failed to load room catalog: %w", err)
	}
	deps.Catalog = roomCatalog
	lgr.Info().Int("rooms", len(roomCatalog.Rooms)).Str("path", cfg.Hostel.CatalogPath).Msg("Room catalog loaded")

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	policy := allocation.Policy{
		HostelType:       models.HostelType(strings.ToUpper(cfg.Hostel.HostelType)),
		FallbackRoomType: models.RoomType(strings.ToUpper(cfg.Hostel.FallbackRoomType)),
	}

	deps.AllotmentService = appServices.NewAllotmentService(
		deps.Catalog,
		deps.Repos.AllotmentRepository,
		deps.Repos.ProfileRepository,
		policy,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AllotmentController = appControllers.NewAllotmentController(deps.AllotmentService)

	return deps, nil
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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AllotmentController,
		deps.AuthMiddleware,
	)

	return router
}
