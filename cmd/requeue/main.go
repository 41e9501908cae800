// Command requeue republishes emails that stayed CREATED because the broker
// rejected the original publish. It is intended to be invoked by an
// external cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/aistomin/andys-backend/internal/adapter/postgres"
	"github.com/aistomin/andys-backend/internal/adapter/postgres/email"
	"github.com/aistomin/andys-backend/internal/adapter/queue"
	"github.com/aistomin/andys-backend/internal/app"
	"github.com/aistomin/andys-backend/internal/config"
	"github.com/aistomin/andys-backend/internal/service/dispatch"
)

func main() {
	age := flag.Duration("age", 10*time.Minute, "only requeue emails older than this")
	limit := flag.Int("limit", 500, "maximum emails to requeue in one run")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Broker.Driver == config.BrokerGoChannel {
		log.Fatal("requeue needs a networked broker; with gochannel the server requeues whenever its consumer starts")
	}
	if *limit <= 0 {
		log.Fatal("limit must be positive")
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	pubsub, err := queue.New(cfg.Broker, logger)
	if err != nil {
		logger.Error("connect to broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pubsub.Close()

	emails := email.New(pool)
	dispatcher := dispatch.NewDispatcher(logger, emails, pubsub.Publisher(), cfg.Broker.Topic)

	n, err := dispatch.NewRequeuer(logger, emails, dispatcher).Run(ctx, *age, *limit)
	if err != nil {
		logger.Error("requeue failed",
			slog.String("error", err.Error()),
			slog.Int("requeued", n),
		)
		os.Exit(1)
	}

	logger.Info("requeue completed", slog.Int("requeued", n), slog.Duration("age", *age))
}
