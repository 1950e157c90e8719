package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/postgres/jobrepo"
	"dispatch/internal/adapters/out/postgres/locationrepo"
	"dispatch/internal/adapters/out/postgres/workerrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	gormDB, err := gorm.Open(postgresdriver.Open(configs.DBConnectionString()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&jobrepo.JobDTO{},
		&workerrepo.WorkerDTO{},
		&locationrepo.LocationDTO{},
	); err != nil {
		log.Fatalf("failed to migrate database schema: %v", err)
	}

	root := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	root.CreateHTTPServer().RegisterRoutes(e)
	e.GET("/ws", root.CreateWebSocketServer().Handle)

	go func() {
		address := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		if serveErr := e.Start(address); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", serveErr)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}

func getConfigs() cmd.Config {
	// A missing .env file is fine in containerized deployments where the
	// environment is injected directly.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:               envOr("HTTP_PORT", "8080"),
		DBHost:                 envOr("DB_HOST", "localhost"),
		DBPort:                 envOr("DB_PORT", "5432"),
		DBUser:                 envOr("DB_USER", "postgres"),
		DBPassword:             envOr("DB_PASSWORD", "postgres"),
		DBName:                 envOr("DB_NAME", "dispatch"),
		DBSslMode:              envOr("DB_SSLMODE", "disable"),
		SessionIdleTimeout:     envDuration("SESSION_IDLE_TIMEOUT", 5*time.Minute),
		SessionReaperSchedule:  envOr("SESSION_REAPER_SCHEDULE", "*/30 * * * * *"),
		PresenceTTL:            envDuration("PRESENCE_TTL", 2*time.Minute),
		PresenceExpirySchedule: envOr("PRESENCE_EXPIRY_SCHEDULE", "0 * * * * *"),
	}
}

func envOr(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", value)
		return fallback
	}
	return parsed
}
