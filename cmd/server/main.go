// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lunchly/lunchly-backend/internal/config"
	"github.com/lunchly/lunchly-backend/internal/controller"
	"github.com/lunchly/lunchly-backend/internal/db"
	"github.com/lunchly/lunchly-backend/internal/handler"
	"github.com/lunchly/lunchly-backend/internal/logger"
	"github.com/lunchly/lunchly-backend/internal/queue"
	"github.com/lunchly/lunchly-backend/internal/repository"
	"github.com/lunchly/lunchly-backend/internal/router"
	"github.com/lunchly/lunchly-backend/internal/service"
	"github.com/lunchly/lunchly-backend/internal/tracing"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		tp, err := tracing.NewProvider(cfg.Tracing.ServiceName, os.Stdout)
		if err != nil {
			log.Fatalw("failed to set up tracing", "error", err)
		}
		defer tracing.Shutdown(context.Background(), tp)
	}

	database, err := db.Open(ctx, cfg.Postgres, log)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer database.Close()

	reservationRepo := &repository.ReservationRepository{DB: database}
	customerRepo := &repository.CustomerRepository{DB: database, Reservations: reservationRepo}

	// Without RabbitMQ, confirmations are sent in-process.
	var q queue.Queue
	if cfg.AMQP.URL != "" {
		amqpQueue, err := queue.DialAMQP(cfg.AMQP.URL, log)
		if err != nil {
			log.Fatalw("failed to connect to RabbitMQ", "error", err)
		}
		defer amqpQueue.Close()
		q = amqpQueue
	} else {
		memQueue := queue.NewInMemoryQueue(log)
		worker := service.NewConfirmationWorker(reservationRepo, customerRepo, service.LogSender(log), log)
		if err := worker.Start(memQueue); err != nil {
			log.Fatalw("failed to start confirmation worker", "error", err)
		}
		q = memQueue
	}

	customerService := &service.CustomerService{
		CustomerRepo:    customerRepo,
		ReservationRepo: reservationRepo,
		Queue:           q,
		Logger:          log,
	}

	srv := &http.Server{
		Addr: cfg.Server.Address,
		Handler: router.New(router.Handlers{
			Customers:    &controller.CustomerController{CustomerService: customerService, Logger: log},
			Reservations: &handler.ReservationHandler{Service: customerService, Logger: log},
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("server running", "address", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
	}
	log.Info("server stopped")
}
