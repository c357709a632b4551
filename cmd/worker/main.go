package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/osikani/marketplace-payments/internal/config"
	"github.com/osikani/marketplace-payments/internal/gateway/paystack"
	"github.com/osikani/marketplace-payments/internal/infrastructure/database"
	"github.com/osikani/marketplace-payments/internal/queue"
	"github.com/osikani/marketplace-payments/internal/worker"
	"github.com/osikani/marketplace-payments/pkg/logger"
)

// Standalone settlement worker. Runs the same job loop the server embeds,
// for deployments that scale queue processing separately.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

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

	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	repos := database.NewRepositories(db, zapLogger)

	jobQueue, err := queue.NewRedisQueue(&cfg.Redis, &cfg.Queue, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer jobQueue.Close()

	gateway := paystack.NewClient(&cfg.Service.Paystack, zapLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settlementWorker := worker.NewWorker(jobQueue, gateway, repos.Payment, zapLogger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- settlementWorker.Run(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		zapLogger.Info("Shutting down worker...")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil && ctx.Err() == nil {
			zapLogger.Fatal("Worker stopped unexpectedly", zap.Error(err))
		}
	}

	zapLogger.Info("Worker shut down successfully")
}
