package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/incampus/backend/internal/app/controllers"
	"github.com/incampus/backend/internal/app/migrations"
	"github.com/incampus/backend/internal/app/repositories"
	"github.com/incampus/backend/internal/app/routes"
	"github.com/incampus/backend/internal/app/services"
	"github.com/incampus/backend/internal/config"
	"github.com/incampus/backend/internal/db"
	"github.com/incampus/backend/internal/middleware"
	pkgAuth "github.com/incampus/backend/internal/pkg/auth"
	"github.com/incampus/backend/internal/pkg/email"
	"github.com/incampus/backend/internal/pkg/filestorage"
	"github.com/incampus/backend/internal/pkg/logger"
	"github.com/incampus/backend/internal/pkg/realtime"
	"github.com/incampus/backend/internal/seed"
)

// Dependencies holds every wired component of the application
type Dependencies struct {
	Repos       *repositories.Repositories
	JWTService  *pkgAuth.JWTService
	FileStorage *filestorage.LocalStorage
	Mailer      email.Sender
	Hub         *realtime.Hub

	AuthService         *services.AuthService
	FriendService       *services.FriendService
	SuggestionService   *services.SuggestionService
	PostService         *services.PostService
	NotificationService *services.NotificationService
	UserService         *services.UserService

	AuthController         *controllers.AuthController
	FriendController       *controllers.FriendController
	PostController         *controllers.PostController
	NotificationController *controllers.NotificationController
	UserController         *controllers.UserController
	WSHandler              *realtime.Handler

	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// LoadConfigAndSetupLogger loads configuration and configures the logger
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: cfg.Logging.Pretty,
	})

	logger.Info().Str("logLevel", cfg.Logging.Level).Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase connects to postgres, applies migrations and seeds default
// data in development mode.
func SetupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrations.NewMigrator(dbPool).Run(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	logger.Info().Msg("Database migrations applied")

	if strings.ToLower(cfg.Server.Mode) != "production" {
		if err := seed.CreateDefaultData(ctx, dbPool); err != nil {
			logger.Error().Err(err).Msg("Failed to seed default data, proceeding anyway")
		}
	}

	return dbPool, nil
}

// BuildDependencies wires repositories, services, controllers and middleware
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Repos = repositories.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    cfg.TokenExpiration(),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.Mailer = email.NewSMTPSender(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	})

	deps.Hub = realtime.NewHub()

	deps.NotificationService = services.NewNotificationService(deps.Repos.Notification, deps.Repos.User, deps.Hub)
	deps.AuthService = services.NewAuthService(deps.Repos.User, deps.JWTService, deps.Mailer)
	deps.FriendService = services.NewFriendService(deps.Repos.Friendship, deps.Repos.User, deps.NotificationService)
	deps.SuggestionService = services.NewSuggestionService(deps.Repos.Friendship, deps.Repos.User)
	deps.PostService = services.NewPostService(deps.Repos.Post, deps.Repos.Friendship, deps.NotificationService)
	deps.UserService = services.NewUserService(deps.Repos.User, deps.FileStorage, deps.Mailer)

	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.JWTService)
	if cfg.RateLimit.Enabled {
		deps.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	deps.AuthController = controllers.NewAuthController(deps.AuthService)
	deps.FriendController = controllers.NewFriendController(deps.FriendService, deps.SuggestionService)
	deps.PostController = controllers.NewPostController(deps.PostService, deps.FileStorage)
	deps.NotificationController = controllers.NewNotificationController(deps.NotificationService)
	deps.UserController = controllers.NewUserController(deps.UserService)
	deps.WSHandler = realtime.NewHandler(deps.Hub, deps.JWTService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if deps.RateLimiter != nil {
		router.Use(deps.RateLimiter.Handler())
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/swagger/doc.json"),
		ginSwagger.DefaultModelsExpandDepth(1)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "ok"})
	})

	router.Static("/uploads", cfg.Server.StoragePath)

	routes.SetupRouter(router,
		deps.AuthController,
		deps.FriendController,
		deps.PostController,
		deps.NotificationController,
		deps.UserController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	return router
}
