package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-api/controllers"
	"storefront-api/database"
	"storefront-api/middleware"
	"storefront-api/repository"
	"storefront-api/routes"
	"storefront-api/services"
	"storefront-api/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize structured logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	if err := database.Connect(cfg.MongoURL, cfg.MongoDB); err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	// Redis is optional; without it reads are simply uncached.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zap.L().Warn("Failed to parse REDIS_URL, caching disabled", zap.Error(err))
		} else {
			redisClient = redis.NewClient(opts)
		}
	}

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		zap.L().Fatal("Failed to initialize upload storage", zap.Error(err))
	}

	// --- Dependency injection ---

	productRepo := repository.NewProductRepository(database.DB)
	categoryRepo := repository.NewCategoryRepository(database.DB)
	reviewRepo := repository.NewReviewRepository(database.DB)
	userRepo := repository.NewUserRepository(database.DB)

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 10*time.Second)
	for _, r := range []interface {
		EnsureIndexes(context.Context) error
	}{productRepo, categoryRepo, reviewRepo, userRepo} {
		if err := r.EnsureIndexes(indexCtx); err != nil {
			zap.L().Warn("Failed to ensure indexes", zap.Error(err))
		}
	}
	cancelIndexes()

	secret := []byte(cfg.JWTSecret)
	tokenTTL := time.Duration(cfg.JWTExpiresHours) * time.Hour

	productService := services.NewProductService(productRepo, categoryRepo, reviewRepo, userRepo, store)
	categoryService := services.NewCategoryService(categoryRepo)
	reviewService := services.NewReviewService(reviewRepo, productRepo, userRepo)
	authService := services.NewAuthService(userRepo, secret, tokenTTL)

	cache := controllers.NewCacheManager(redisClient)
	validator := controllers.NewRequestValidator()

	productController := controllers.NewProductController(productService, cache, validator)
	categoryController := controllers.NewCategoryController(categoryService, cache, validator)
	reviewController := controllers.NewReviewController(reviewService, cache, validator)
	authController := controllers.NewAuthController(authService, validator, tokenTTL)

	auth := middleware.NewAuth(secret, userRepo)

	// --- HTTP server & middleware ---

	r := gin.New()
	r.Use(gin.Recovery())

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	r.Static(storage.URLPrefix, cfg.UploadDir)

	routes.RegisterRoutes(r, auth, productController, categoryController, reviewController, authController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// --- Graceful shutdown ---

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Storefront API starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down Storefront API...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			zap.L().Error("Failed to close Redis", zap.Error(err))
		}
	}
	if err := database.Close(); err != nil {
		zap.L().Error("Failed to close MongoDB", zap.Error(err))
	}

	zap.L().Info("Storefront API stopped gracefully")
}
