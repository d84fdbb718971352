package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/walatech/tenant-core/docs"
	"github.com/walatech/tenant-core/internal/api"
	"github.com/walatech/tenant-core/internal/config"
	"github.com/walatech/tenant-core/internal/metrics"
	"github.com/walatech/tenant-core/internal/middleware"
	"github.com/walatech/tenant-core/internal/repository/postgres"
	"github.com/walatech/tenant-core/internal/service"
	"github.com/walatech/tenant-core/internal/service/archive"
	"github.com/walatech/tenant-core/internal/service/pubsub"
	"github.com/walatech/tenant-core/internal/service/queue"
	"github.com/walatech/tenant-core/internal/worker"
	"github.com/walatech/tenant-core/pkg/logger"
)

// @title           Tenant Core API
// @version         1.0
// @description     Tenant resolution, lifecycle and settings service.

// @host      localhost:10000
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @externalDocs.description  OpenAPI
// @externalDocs.url          https://swagger.io/resources/open-api/
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize logger
	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load config", err)
	}

	metrics.InitMetrics(cfg.MetricsPrefix)

	dbConnections, err := config.NewDatabaseConnections()
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer dbConnections.Close()

	appLogger.Info("Database connections established - writer and reader connected")

	// Initialize Redis
	redisConfig := config.DefaultRedisConfig()
	redisClient, err := redisConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()

	// Initialize Redis pub/sub
	redisPubSub := pubsub.NewRedisPubSub(redisClient, redisConfig.EventsChannel, appLogger)

	// Initialize S3 archive
	s3Config := config.DefaultS3Config()
	s3Client, err := s3Config.GetClient(context.Background())
	if err != nil {
		appLogger.Fatal("Failed to create S3 client", err)
	}
	archiver := archive.NewS3Archiver(s3Client, s3Config, appLogger)

	// Initialize SQS
	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	repo := postgres.NewPostgresRepository(dbConnections)

	// Initialize services
	tenantService := service.NewTenantService(repo, appLogger, cfg.Lifecycle.Retention())
	tenantService.SetEventPublisher(redisPubSub)
	tenantService.SetArchiver(archiver)
	tenantService.SetPurgeNotifier(sqsService)

	settingsService := service.NewTenantSettingsService(repo, appLogger)
	settingsService.SetEventPublisher(redisPubSub)

	resolver := service.NewTenantResolver(repo, appLogger)
	superAdmin := service.NewSuperAdminChecker(cfg.SuperAdmin)

	// The sweeper here only serves the manual trigger; the periodic
	// sweep runs in cmd/cleanup_worker.
	sweeper := worker.NewCleanupWorker(tenantService, appLogger, cfg.Lifecycle.SweepInterval)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg, superAdmin)
	tenantMiddleware := middleware.NewTenantMiddleware(resolver, appLogger)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(redisClient, cfg, appLogger)
	validationMiddleware := middleware.NewValidationMiddleware(appLogger)

	// Initialize server
	server := api.NewServer(
		tenantService,
		settingsService,
		sweeper,
		authMiddleware,
		tenantMiddleware,
		rateLimitMiddleware,
		validationMiddleware,
		cfg,
		appLogger,
		redisPubSub,
	)

	// Start WebSocket hub
	server.StartWebSocketHub()

	// Initialize router
	router := gin.Default()
	router.Use(middleware.Metrics())

	// Swagger documentation endpoint
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.ServerPort)
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Swagger UI endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", api.HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Setup API routes
	apiGroup := router.Group("/api/v1")
	server.SetupRoutes(apiGroup)

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	server.StopWebSocketHub()

	// Shutdown the HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	appLogger.Info("Server exiting")
	appLogger.Sync()
}
