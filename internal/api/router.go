package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pressroom/pressroom-api/internal/api/handler"
	"github.com/pressroom/pressroom-api/internal/api/middleware"
	"github.com/pressroom/pressroom-api/internal/core/auth"
	"github.com/pressroom/pressroom-api/internal/core/ports"
	"github.com/pressroom/pressroom-api/internal/core/service"
	mongodb "github.com/pressroom/pressroom-api/internal/infrastructure/db/mongo"
	redisdb "github.com/pressroom/pressroom-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// hooks carries the service extension points (query, pre/post-persist,
// representation); main wires the post-persist hook to the audit dispatcher.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, hooks ports.Hooks, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("pressroom"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	avatar := redisdb.NewAvatarResolver(rdb)
	gate := auth.NewGate()

	userService := service.NewUserService(userRepo, gate, avatar, hooks, log)
	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour)

	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)
	authMiddleware := middleware.Auth(jwtSecret)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- User resource ---
	users := e.Group("/v1/users", authMiddleware)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
