package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// NewRouter returns a watermill router with panic recovery only. Handlers
// decide themselves which failures to drop; nothing is retried and no
// poison topic exists.
func NewRouter(closeTimeout time.Duration, log *slog.Logger) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: closeTimeout,
	}, watermill.NewSlogLogger(log.With("component", "watermill-router")))
	if err != nil {
		return nil, fmt.Errorf("queue: create router: %w", err)
	}
	router.AddMiddleware(middleware.Recoverer)
	return router, nil
}

// ConsumerService runs one router consuming a topic. It implements
// suture.Service, building a fresh router and subscriber on every start.
type ConsumerService struct {
	name         string
	topic        string
	pubsub       *PubSub
	handler      message.NoPublishHandlerFunc
	closeTimeout time.Duration
	log          *slog.Logger

	onStart   func(ctx context.Context)
	consuming atomic.Bool
}

// NewConsumerService creates a consumer of topic that passes every message
// to handler.
func NewConsumerService(name, topic string, pubsub *PubSub, handler message.NoPublishHandlerFunc, closeTimeout time.Duration, log *slog.Logger) *ConsumerService {
	return &ConsumerService{
		name:         name,
		topic:        topic,
		pubsub:       pubsub,
		handler:      handler,
		closeTimeout: closeTimeout,
		log:          log,
	}
}

// OnStart registers fn to run each time a router run has subscribed. It
// must be called before Serve.
func (s *ConsumerService) OnStart(fn func(ctx context.Context)) {
	s.onStart = fn
}

// Serve implements suture.Service.
func (s *ConsumerService) Serve(ctx context.Context) error {
	router, err := NewRouter(s.closeTimeout, s.log)
	if err != nil {
		return err
	}

	sub, err := s.pubsub.NewSubscriber()
	if err != nil {
		return err
	}
	router.AddConsumerHandler(s.name, s.topic, sub, s.handler)

	runCtx, stop := context.WithCancel(ctx)
	watched := make(chan struct{})
	defer func() {
		stop()
		<-watched
		s.consuming.Store(false)
	}()
	go func() {
		defer close(watched)
		select {
		case <-router.Running():
		case <-runCtx.Done():
			return
		}
		s.consuming.Store(true)
		if s.onStart != nil {
			s.onStart(runCtx)
		}
	}()

	s.log.Info("email consumer starting", slog.String("topic", s.topic))
	if err := router.Run(ctx); err != nil {
		return fmt.Errorf("queue: router %s: %w", s.name, err)
	}
	// Run returns nil after ctx is cancelled; anything else is a crash.
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("queue: router %s stopped", s.name)
}

// Consuming reports whether the current router run is subscribed. It is
// false before the first start and between a crash and the restart.
func (s *ConsumerService) Consuming() bool {
	return s.consuming.Load()
}

// String implements fmt.Stringer for suture logging.
func (s *ConsumerService) String() string {
	return s.name
}
