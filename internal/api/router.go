package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/storekit/catalog-api/docs"
	"github.com/storekit/catalog-api/internal/api/handler"
	"github.com/storekit/catalog-api/internal/api/middleware"
	"github.com/storekit/catalog-api/internal/core/domain"
	"github.com/storekit/catalog-api/internal/core/service"
	"github.com/storekit/catalog-api/internal/infrastructure/config"
	mongodb "github.com/storekit/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/storekit/catalog-api/internal/infrastructure/db/redis"
	"github.com/storekit/catalog-api/internal/infrastructure/storage"
	"github.com/storekit/catalog-api/internal/web"
)

// NewRouter builds the Echo instance with both surfaces registered: the JSON
// API under the root and the session-authenticated HTML UI under /dashboard.
func NewRouter(db *mongo.Database, rdb *redis.Client, assets *storage.LocalAssetStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	tokenRepo := mongodb.NewTokenRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb, cfg.SessionTTL)

	authService := service.NewAuthService(userRepo, roleRepo, tokenRepo, cfg.JWTSecret, cfg.TokenTTL)
	productService := service.NewProductService(productRepo, assets, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authMiddleware := middleware.Auth(cfg.JWTSecret, tokenRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/registerUser", authHandler.Register)
	e.POST("/loginUser", authHandler.Login)
	e.POST("/logout", authHandler.Logout, authMiddleware)

	// --- Product routes ---
	products := e.Group("/products", authMiddleware)
	products.GET("", productHandler.Index, middleware.RBAC(domain.RoleAdmin, domain.RoleUser))
	products.POST("", productHandler.Store, adminOnly)
	products.GET("/:id", productHandler.Show, adminOnly)
	products.PUT("/:id", productHandler.Update, adminOnly)
	products.PATCH("/:id", productHandler.Update, adminOnly)
	products.DELETE("/:id", productHandler.Destroy, adminOnly)

	// --- Web surface ---
	web.Register(e, web.Deps{
		Auth:     authService,
		Sessions: sessionStore,
		Users:    userRepo,
		Roles:    roleRepo,
		Products: productService,
		Assets:   assets,
	})
	e.Static("/storage/productImage", assets.Dir())

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
