package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/walatech/tenant-core/internal/config"
	"github.com/walatech/tenant-core/internal/metrics"
	"github.com/walatech/tenant-core/internal/repository/postgres"
	"github.com/walatech/tenant-core/internal/service"
	"github.com/walatech/tenant-core/internal/service/archive"
	"github.com/walatech/tenant-core/internal/service/pubsub"
	"github.com/walatech/tenant-core/internal/service/queue"
	"github.com/walatech/tenant-core/internal/worker"
	"github.com/walatech/tenant-core/pkg/logger"
)

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

	// Initialize PostgreSQL with database connections
	dbConnections, err := config.NewDatabaseConnections()
	if err != nil {
		appLogger.Fatal("Failed to connect to PostgreSQL", err)
	}
	defer dbConnections.Close()

	pgRepo := postgres.NewPostgresRepository(dbConnections)

	// Initialize Redis pub/sub for hard_deleted events
	redisConfig := config.DefaultRedisConfig()
	redisClient, err := redisConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()
	redisPubSub := pubsub.NewRedisPubSub(redisClient, redisConfig.EventsChannel, appLogger)

	// Initialize S3 archive
	s3Config := config.DefaultS3Config()
	s3Client, err := s3Config.GetClient(context.Background())
	if err != nil {
		appLogger.Fatal("Failed to create S3 client", err)
	}

	// Initialize SQS
	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}

	tenantService := service.NewTenantService(pgRepo, appLogger, cfg.Lifecycle.Retention())
	tenantService.SetEventPublisher(redisPubSub)
	tenantService.SetArchiver(archive.NewS3Archiver(s3Client, s3Config, appLogger))
	tenantService.SetPurgeNotifier(queue.NewSQSService(sqsClient, sqsConfig))

	// Create cleanup worker
	cleanupWorker := worker.NewCleanupWorker(tenantService, appLogger, cfg.Lifecycle.SweepInterval)
	cleanupWorker.RunOnStart(os.Getenv("TENANT_SWEEP_ON_START") == "true")

	// Expose sweep metrics for scraping
	metricsAddr := os.Getenv("METRICS_ADDR")
	if metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				appLogger.Error("Metrics server stopped", err)
			}
		}()
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	cleanupWorker.Start()

	// Wait for shutdown signal
	<-sigChan
	appLogger.Info("Shutting down cleanup worker...")

	// Stop worker
	cleanupWorker.Stop()
	redisPubSub.Close()
	appLogger.Sync()
}
