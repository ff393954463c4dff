package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lunchly/lunchly-backend/internal/config"
	"github.com/lunchly/lunchly-backend/internal/db"
	"github.com/lunchly/lunchly-backend/internal/logger"
	"github.com/lunchly/lunchly-backend/internal/queue"
	"github.com/lunchly/lunchly-backend/internal/repository"
	"github.com/lunchly/lunchly-backend/internal/service"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.AMQP.URL == "" {
		log.Fatal("LUNCHLY_AMQP_URL is required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.Postgres, log)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer database.Close()

	reservationRepo := &repository.ReservationRepository{DB: database}
	customerRepo := &repository.CustomerRepository{DB: database, Reservations: reservationRepo}

	q, err := queue.DialAMQP(cfg.AMQP.URL, log)
	if err != nil {
		log.Fatalw("failed to connect to RabbitMQ", "error", err)
	}
	defer q.Close()

	worker := service.NewConfirmationWorker(reservationRepo, customerRepo, service.LogSender(log), log)
	if err := worker.Start(q); err != nil {
		log.Fatalw("failed to register consumer", "error", err)
	}

	log.Info("worker running, waiting for reservation confirmations...")
	<-ctx.Done()
	log.Info("worker stopped")
}
