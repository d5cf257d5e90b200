package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/reviewhub/review-platform/internal/api/handler"
	"github.com/reviewhub/review-platform/internal/api/middleware"
	"github.com/reviewhub/review-platform/internal/core/domain"
	"github.com/reviewhub/review-platform/internal/core/ports"
	"github.com/reviewhub/review-platform/internal/core/service"
	"github.com/reviewhub/review-platform/internal/infrastructure/config"
	mongodb "github.com/reviewhub/review-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/reviewhub/review-platform/internal/infrastructure/db/redis"
	healthhandlers "github.com/reviewhub/review-platform/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, mailer ports.Mailer, mailQueue ports.MailDispatcher, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Env, log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("reviewhub"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	authService := service.NewAuthService(userRepo, tokenService, mailer, log)
	userService := service.NewUserService(userRepo, mailQueue, log)

	authHandler := handler.NewAuthHandler(authService, cfg.Production(), cfg.RefreshTTL)
	userHandler := handler.NewUserHandler(userService, authService)

	sessionGate := middleware.Auth(tokenService)
	banGuard := middleware.BanGuard(userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	loginLimiter := middleware.RateLimit(
		redisdb.NewRateLimiter(rdb, "auth", cfg.LoginRateLimit, cfg.LoginRateWindow), log)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login, loginLimiter)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/refresh-token", authHandler.Refresh)
	auth.POST("/reset-password", authHandler.ResetPassword, loginLimiter)

	// --- Account routes (authenticated, never banned) ---
	users := e.Group("/users", sessionGate, banGuard)
	users.PATCH("/me/password", userHandler.UpdatePassword)

	// Administrative account management.
	users.GET("", userHandler.List, adminOnly)
	users.POST("", userHandler.Create, adminOnly)
	users.GET("/:id", userHandler.Show, adminOnly)
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.PATCH("/:id/avatar", userHandler.UpdateAvatar, adminOnly)
	users.PATCH("/:id/cover", userHandler.UpdateCover, adminOnly)
	users.PATCH("/:id/ban", userHandler.ToggleBan, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
