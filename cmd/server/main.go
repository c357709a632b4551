package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/osikani/marketplace-payments/internal/config"
	"github.com/osikani/marketplace-payments/internal/gateway/paystack"
	"github.com/osikani/marketplace-payments/internal/infrastructure/database"
	httpServer "github.com/osikani/marketplace-payments/internal/infrastructure/http"
	"github.com/osikani/marketplace-payments/internal/queue"
	"github.com/osikani/marketplace-payments/internal/worker"
	"github.com/osikani/marketplace-payments/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		FilePath:    cfg.Log.FilePath,
		Development: cfg.Log.Development,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations
	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize repositories
	repos := database.NewRepositories(db, zapLogger)

	// Initialize job queue
	jobQueue, err := queue.NewRedisQueue(&cfg.Redis, &cfg.Queue, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer jobQueue.Close()

	// Initialize payment gateway client
	gateway := paystack.NewClient(&cfg.Service.Paystack, zapLogger)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the embedded settlement worker
	settlementWorker := worker.NewWorker(jobQueue, gateway, repos.Payment, zapLogger)
	go func() {
		if err := settlementWorker.Run(ctx); err != nil && ctx.Err() == nil {
			zapLogger.Fatal("Worker stopped unexpectedly", zap.Error(err))
		}
	}()

	// Start the HTTP server
	httpSrv := httpServer.NewServer(cfg, zapLogger, repos, gateway, jobQueue)
	go func() {
		if err := httpSrv.Start(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down...")
	cancel()

	if err := httpSrv.Shutdown(context.Background()); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Server shut down successfully")
}
