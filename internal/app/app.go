// Package app wires configuration, storage, messaging and HTTP into the
// running service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/aistomin/andys-backend/internal/adapter/mailer"
	"github.com/aistomin/andys-backend/internal/adapter/postgres"
	"github.com/aistomin/andys-backend/internal/adapter/postgres/blogpost"
	"github.com/aistomin/andys-backend/internal/adapter/postgres/email"
	"github.com/aistomin/andys-backend/internal/adapter/postgres/lyrics"
	"github.com/aistomin/andys-backend/internal/adapter/postgres/musicsheet"
	"github.com/aistomin/andys-backend/internal/adapter/postgres/person"
	"github.com/aistomin/andys-backend/internal/adapter/postgres/photo"
	userrepo "github.com/aistomin/andys-backend/internal/adapter/postgres/user"
	"github.com/aistomin/andys-backend/internal/adapter/postgres/video"
	"github.com/aistomin/andys-backend/internal/adapter/queue"
	jwtauth "github.com/aistomin/andys-backend/internal/auth"
	"github.com/aistomin/andys-backend/internal/config"
	"github.com/aistomin/andys-backend/internal/service/auth"
	"github.com/aistomin/andys-backend/internal/service/contact"
	"github.com/aistomin/andys-backend/internal/service/content"
	"github.com/aistomin/andys-backend/internal/service/dispatch"
	"github.com/aistomin/andys-backend/internal/service/user"
	"github.com/aistomin/andys-backend/internal/transport/rest"
)

// Run is the application entry point. It blocks until ctx is cancelled or
// a startup step fails.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.InfoContext(ctx, "starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("broker", cfg.Broker.Driver),
		slog.String("mail", cfg.Mail.Driver),
	)

	if cfg.Database.AutoMigrate {
		n, err := postgres.Migrate(ctx, cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("app: migrate: %w", err)
		}
		logger.InfoContext(ctx, "migrations applied", slog.Int("count", n))
	}

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	persons := person.New(pool)
	emails := email.New(pool)
	users := userrepo.New(pool)

	m, err := mailer.New(ctx, cfg.Mail, logger)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}

	pubsub, err := queue.New(cfg.Broker, logger)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	publisher := queue.NewBreakerPublisher(pubsub.Publisher(), cfg.Broker, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("close publisher", slog.String("error", err.Error()))
		}
	}()

	dispatcher := dispatch.NewDispatcher(logger, emails, publisher, cfg.Broker.Topic)
	processor := dispatch.NewProcessor(logger, emails, m)
	contactSvc := contact.NewService(logger, persons, emails, dispatcher,
		cfg.Contact.SupportEmail, cfg.Contact.DuplicateWindow)

	userSvc := user.NewService(logger, users, cfg.Auth.BcryptCost)
	if err := userSvc.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	tokens := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	authSvc := auth.NewService(logger, users, tokens, cfg.Auth.BcryptCost)

	consumer := queue.NewConsumerService("email-consumer", cfg.Broker.Topic, pubsub,
		processor.Handle, cfg.Broker.CloseTimeout, logger)
	if cfg.Broker.Driver == config.BrokerGoChannel {
		consumer.OnStart(startupRequeue(logger, dispatch.NewRequeuer(logger, emails, dispatcher), cfg.Broker.StartupRequeue))
	}

	router := rest.NewRouter(rest.RouterDeps{
		Log:     logger,
		Tokens:  authSvc,
		Auth:    rest.NewAuthHandler(authSvc, logger),
		Contact: rest.NewContactHandler(contactSvc, logger),
		Users:   rest.NewUserHandler(userSvc, logger),
		Health: rest.NewHealthHandler(rest.HealthDeps{
			DB:       pool,
			Broker:   publisher,
			Consumer: consumer,
			Version:  Version,
		}),
		Content: []rest.ContentRoutes{
			rest.NewVideoHandler(content.NewVideos(logger, video.New(pool), txm), logger),
			rest.NewMusicSheetHandler(content.NewMusicSheets(logger, musicsheet.New(pool), txm), logger),
			rest.NewLyricsHandler(content.NewLyrics(logger, lyrics.New(pool), txm), logger),
			rest.NewBlogPostHandler(content.NewBlogPosts(logger, blogpost.New(pool), txm), logger),
			rest.NewPhotoHandler(content.NewPhotos(logger, photo.New(pool), txm), logger),
		},
		CORS:      cfg.CORS,
		RateLimit: cfg.RateLimit,
	})

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	sup := newSupervisor(logger, cfg.Server.ShutdownTimeout)
	sup.Add(newHTTPService(server, cfg.Server.ShutdownTimeout))
	sup.Add(consumer)

	logger.InfoContext(ctx, "http server listening", slog.String("addr", server.Addr))

	err = sup.Serve(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logger.Info("shutdown complete")
		return nil
	}
	return err
}

type requeuer interface {
	Run(ctx context.Context, age time.Duration, limit int) (int, error)
}

// startupRequeue republishes every CREATED email once the in-process
// consumer has subscribed. The gochannel driver drops references published
// while nothing is subscribed, and loses all of them on a process restart.
func startupRequeue(log *slog.Logger, r requeuer, limit int) func(context.Context) {
	return func(ctx context.Context) {
		if limit <= 0 {
			return
		}
		n, err := r.Run(ctx, 0, limit)
		if err != nil {
			log.ErrorContext(ctx, "startup requeue failed",
				slog.String("error", err.Error()),
				slog.Int("requeued", n),
			)
			return
		}
		if n > 0 {
			log.InfoContext(ctx, "startup requeue completed", slog.Int("requeued", n))
		}
	}
}
