package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/walatech/tenant-core/internal/config"
	"github.com/walatech/tenant-core/internal/repository/postgres"
	"github.com/walatech/tenant-core/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	if err := postgres.RunMigrations(config.WriterURL()); err != nil {
		appLogger.Fatal("Failed to apply migrations", err)
	}

	appLogger.Info("Migrations applied")
	appLogger.Sync()
}
