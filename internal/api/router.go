package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/simplesdental/product-api/internal/api/handler"
	"github.com/simplesdental/product-api/internal/api/middleware"
	"github.com/simplesdental/product-api/internal/core/domain"
	"github.com/simplesdental/product-api/internal/core/ports"
	"github.com/simplesdental/product-api/internal/core/service"
	"github.com/simplesdental/product-api/internal/infrastructure/config"
	mongodb "github.com/simplesdental/product-api/internal/infrastructure/db/mongo"
	redisdb "github.com/simplesdental/product-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("product_api"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	contextCache := redisdb.NewContextCache(rdb)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, contextCache, audit, log)
	userService := service.NewUserService(userRepo, contextCache, audit, log)
	productService := service.NewProductService(productRepo, categoryRepo, log)
	categoryService := service.NewCategoryService(categoryRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	// The gate runs on every route: anonymous requests pass through untouched
	// and role gates decide per group.
	e.Use(middleware.Auth(tokenService, userRepo))

	requireAdmin := middleware.RequireRole(domain.RoleAdmin)
	requireUser := middleware.RequireRole(domain.RoleAdmin, domain.RoleUser)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/authenticate", authHandler.Authenticate)
	e.POST("/auth/context", authHandler.Context)

	// --- User management (admin only) ---
	users := e.Group("/users", requireAdmin)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Categories (reads authenticated, writes admin) ---
	categories := e.Group("/categories")
	categories.GET("", categoryHandler.List, requireUser)
	categories.GET("/:id", categoryHandler.Get, requireUser)
	categories.POST("", categoryHandler.Create, requireAdmin)
	categories.PUT("/:id", categoryHandler.Update, requireAdmin)
	categories.DELETE("/:id", categoryHandler.Delete, requireAdmin)

	// --- Products v1 ---
	products := e.Group("/products")
	products.GET("", productHandler.List, requireUser)
	products.GET("/:id", productHandler.Get, requireUser)
	products.POST("", productHandler.Create, requireAdmin)
	products.PUT("/:id", productHandler.Update, requireAdmin)
	products.DELETE("/:id", productHandler.Delete, requireAdmin)

	// --- Products v2 (adds the numeric code field) ---
	productsV2 := e.Group("/v2/products")
	productsV2.GET("", productHandler.ListV2, requireUser)
	productsV2.GET("/:id", productHandler.GetV2, requireUser)
	productsV2.POST("", productHandler.CreateV2, requireAdmin)
	productsV2.PUT("/:id", productHandler.UpdateV2, requireAdmin)
	productsV2.DELETE("/:id", productHandler.Delete, requireAdmin)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
