package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ozgur/rollcall/internal/app/controllers"
	appMigrations "github.com/ozgur/rollcall/internal/app/migrations"
	appRepos "github.com/ozgur/rollcall/internal/app/repositories"
	appRoutes "github.com/ozgur/rollcall/internal/app/routes"
	appServices "github.com/ozgur/rollcall/internal/app/services"
	"github.com/ozgur/rollcall/internal/config"
	"github.com/ozgur/rollcall/internal/db"
	appMiddleware "github.com/ozgur/rollcall/internal/middleware"
	pkgAuth "github.com/ozgur/rollcall/internal/pkg/auth"
	"github.com/ozgur/rollcall/internal/pkg/helpers"
	"github.com/ozgur/rollcall/internal/pkg/logger"
	"github.com/ozgur/rollcall/internal/seed"
	"github.com/ozgur/rollcall/internal/store"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	CourseService     appServices.CourseService
	EnrollmentService appServices.EnrollmentService
	SessionService    appServices.SessionService
	AttendanceService appServices.AttendanceService
	ReportService     appServices.ReportService

	CourseController     *appControllers.CourseController
	EnrollmentController *appControllers.EnrollmentController
	SessionController    *appControllers.SessionController
	AttendanceController *appControllers.AttendanceController
	ReportController     *appControllers.ReportController

	AuthMiddleware *appMiddleware.AuthMiddleware
	CheckInLimiter *appMiddleware.TokenBucketLimiter
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Redis          *store.Redis
	Logger         zerolog.Logger
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

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

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

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.Redis = store.NewRedis(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if !deps.Redis.Healthy(ctx) {
		return nil, fmt.Errorf("redis is not reachable at %s", cfg.Redis.Addr)
	}
	codeRegistry := store.NewCodeRegistry(deps.Redis)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, deps.Repos.EnrollmentRepository)
	deps.EnrollmentService = appServices.NewEnrollmentService(deps.Repos.EnrollmentRepository, deps.Repos.CourseRepository)
	deps.SessionService = appServices.NewSessionService(deps.Repos.SessionRepository, deps.Repos.CourseRepository, deps.Repos.EnrollmentRepository, codeRegistry)
	deps.AttendanceService = appServices.NewAttendanceService(deps.Repos.AttendanceRepository, deps.Repos.SessionRepository, deps.Repos.EnrollmentRepository)
	deps.ReportService = appServices.NewReportService(deps.Repos.AttendanceRepository, deps.Repos.CourseRepository, deps.Repos.EnrollmentRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.CheckInLimiter = appMiddleware.NewTokenBucketLimiter(cfg.RateLimit.CheckInPerMinute)

	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService)
	deps.SessionController = appControllers.NewSessionController(deps.SessionService)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService)
	deps.ReportController = appControllers.NewReportController(deps.ReportService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, dbPool *pgxpool.Pool, lgr zerolog.Logger) *gin.Engine {
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

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.CourseController,
		deps.EnrollmentController,
		deps.SessionController,
		deps.AttendanceController,
		deps.ReportController,
		deps.AuthMiddleware,
		deps.CheckInLimiter,
	)

	// Operational endpoints outside the versioned API
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{"database": "up", "redis": "up"}
		if err := dbPool.Ping(ctx); err != nil {
			checks["database"] = "down"
			status = http.StatusServiceUnavailable
		}
		if !deps.Redis.Healthy(ctx) {
			checks["redis"] = "down"
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, checks)
	})

	return router
}
