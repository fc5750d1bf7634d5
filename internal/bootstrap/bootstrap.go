package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/kaanyildiz/assignflow/internal/app/auth"
	appControllers "github.com/kaanyildiz/assignflow/internal/app/controllers"
	appMigrations "github.com/kaanyildiz/assignflow/internal/app/migrations"
	appRepos "github.com/kaanyildiz/assignflow/internal/app/repositories"
	appRoutes "github.com/kaanyildiz/assignflow/internal/app/routes"
	appServices "github.com/kaanyildiz/assignflow/internal/app/services"
	"github.com/kaanyildiz/assignflow/internal/config"
	"github.com/kaanyildiz/assignflow/internal/db"
	appMiddleware "github.com/kaanyildiz/assignflow/internal/middleware"
	pkgAuth "github.com/kaanyildiz/assignflow/internal/pkg/auth"
	"github.com/kaanyildiz/assignflow/internal/pkg/email"
	"github.com/kaanyildiz/assignflow/internal/pkg/filestorage"
	"github.com/kaanyildiz/assignflow/internal/pkg/helpers"
	"github.com/kaanyildiz/assignflow/internal/pkg/logger"
	"github.com/kaanyildiz/assignflow/internal/pkg/otpstore"
	"github.com/kaanyildiz/assignflow/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         appServices.AuthService
	AssignmentService   appServices.AssignmentService
	ApprovalService     appServices.ApprovalService
	RoutingService      appServices.RoutingService
	NotificationService appServices.NotificationService
	DepartmentService   appServices.DepartmentService
	UserService         appServices.UserService

	AuthController         *appControllers.AuthController
	AssignmentController   *appControllers.AssignmentController
	ReviewController       *appControllers.ReviewController
	NotificationController *appControllers.NotificationController
	DepartmentController   *appControllers.DepartmentController
	UserController         *appControllers.UserController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	OTPStore       otpstore.Store
	EmailService   email.EmailService
	FileStorage    *filestorage.LocalStorage
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
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	var err error
	fileStorageBaseURL := "http://localhost:" + cfg.Server.Port + cfg.Storage.BaseURL
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.UploadDir, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.Email.Host,
		Port:      cfg.Email.Port,
		Username:  cfg.Email.Username,
		Password:  cfg.Email.Password,
		FromName:  cfg.Email.FromName,
		FromEmail: cfg.Email.FromEmail,
		UseTLS:    cfg.Email.UseTLS,
	}, lgr)

	deps.OTPStore = buildOTPStore(cfg, lgr)

	deps.AuthzService = appAuth.NewAuthorizationService()

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
	)
	deps.AssignmentService = appServices.NewAssignmentService(
		deps.Repos.AssignmentRepository,
		deps.Repos.HistoryRepository,
		deps.Repos.NotificationRepository,
		deps.Repos.UserRepository,
		database,
		deps.FileStorage,
		deps.EmailService,
	)
	deps.ApprovalService = appServices.NewApprovalService(
		deps.Repos.AssignmentRepository,
		deps.Repos.HistoryRepository,
		deps.Repos.NotificationRepository,
		deps.Repos.UserRepository,
		database,
		deps.OTPStore,
		deps.EmailService,
		cfg.GetOTPTTL(),
	)
	deps.RoutingService = appServices.NewRoutingService(deps.Repos.UserRepository)
	deps.NotificationService = appServices.NewNotificationService(deps.Repos.NotificationRepository)
	deps.DepartmentService = appServices.NewDepartmentService(deps.Repos.DepartmentRepository)
	deps.UserService = appServices.NewUserService(
		deps.Repos.UserRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.TokenRepository,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.AuthzService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.AssignmentController = appControllers.NewAssignmentController(deps.AssignmentService)
	deps.ReviewController = appControllers.NewReviewController(
		deps.AssignmentService,
		deps.ApprovalService,
		deps.RoutingService,
	)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService)
	deps.DepartmentController = appControllers.NewDepartmentController(deps.DepartmentService)
	deps.UserController = appControllers.NewUserController(deps.UserService)

	return deps, nil
}

// buildOTPStore selects the approval-code backend. Memory is the default;
// Redis is for multi-instance deployments where pending codes must be shared.
func buildOTPStore(cfg *config.Config, lgr zerolog.Logger) otpstore.Store {
	if cfg.Approval.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Using Redis approval-code store")
		return otpstore.NewRedisStore(client)
	}
	lgr.Info().Msg("Using in-memory approval-code store")
	return otpstore.NewMemoryStore()
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

	router := gin.Default()

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.AssignmentController,
		deps.ReviewController,
		deps.NotificationController,
		deps.DepartmentController,
		deps.UserController,
		deps.AuthMiddleware,
		cfg.Storage.UploadDir,
	)

	return router
}
