// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"club-booking/cmd"
	"club-booking/internal/data/repository"
	"club-booking/internal/wire"
	"club-booking/internal/worker"
	"club-booking/pkg/database"
	"club-booking/pkg/queue"
	"club-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Connect event publisher and start background workers
	publisher, err := queue.NewKafkaPublisher(ctx, config.Kafka, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Kafka", zap.Error(err))
	}
	defer publisher.Close()

	outboxWorker := worker.NewOutboxWorker(repos.Outbox, publisher, config.Outbox.PollInterval, config.Outbox.BatchSize, logger)
	sweepWorker := worker.NewSweepWorker(repos.Hold, app.Service.Booking, config.Outbox.SweepEvery, logger)

	go outboxWorker.Run(ctx)
	go sweepWorker.Run(ctx)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
