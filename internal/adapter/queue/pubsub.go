// Package queue builds the watermill publisher, subscribers and router that
// carry email references between the HTTP side and the email consumer.
package queue

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"

	"github.com/aistomin/andys-backend/internal/config"
)

// PubSub owns the broker connections for one process.
type PubSub struct {
	cfg       config.BrokerConfig
	logger    watermill.LoggerAdapter
	publisher message.Publisher
	// shared is set for the in-process driver, where one instance both
	// publishes and subscribes.
	shared *gochannel.GoChannel
}

// New connects to the broker selected by cfg.Driver.
func New(cfg config.BrokerConfig, log *slog.Logger) (*PubSub, error) {
	logger := watermill.NewSlogLogger(log.With("component", "watermill"))

	switch strings.ToLower(cfg.Driver) {
	case config.BrokerGoChannel:
		// Not persistent: a reference published while no router is
		// subscribed is dropped, and the consumer's start hook requeues
		// CREATED rows to cover that gap.
		ch := gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: cfg.BufferSize,
		}, logger)
		return &PubSub{cfg: cfg, logger: logger, publisher: ch, shared: ch}, nil

	case config.BrokerNATS:
		pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
			URL:         cfg.URL,
			NatsOptions: natsOptions(logger),
			Marshaler:   &wmNats.NATSMarshaler{},
			JetStream: wmNats.JetStreamConfig{
				AutoProvision: true,
				TrackMsgId:    true,
				PublishOptions: []natsgo.PubOpt{
					natsgo.RetryAttempts(3),
					natsgo.RetryWait(100 * time.Millisecond),
				},
			},
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("queue: create nats publisher: %w", err)
		}
		return &PubSub{cfg: cfg, logger: logger, publisher: pub}, nil
	}

	return nil, fmt.Errorf("queue: unknown driver %q", cfg.Driver)
}

// Publisher returns the shared publisher.
func (p *PubSub) Publisher() message.Publisher {
	return p.publisher
}

// NewSubscriber returns a subscriber for one router run. The router closes
// its subscribers on shutdown, so every run needs its own.
func (p *PubSub) NewSubscriber() (message.Subscriber, error) {
	if p.shared != nil {
		return keepOpen{p.shared}, nil
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              p.cfg.URL,
		QueueGroupPrefix: p.cfg.QueueGroup,
		SubscribersCount: p.cfg.SubscribersCount,
		AckWaitTimeout:   p.cfg.AckWait,
		CloseTimeout:     p.cfg.CloseTimeout,
		NatsOptions:      natsOptions(p.logger),
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			AutoProvision: true,
			DurablePrefix: p.cfg.DurableName,
			SubscribeOptions: []natsgo.SubOpt{
				natsgo.AckWait(p.cfg.AckWait),
				natsgo.DeliverAll(),
			},
		},
	}, p.logger)
	if err != nil {
		return nil, fmt.Errorf("queue: create nats subscriber: %w", err)
	}
	return sub, nil
}

// Close releases the publisher and, for the in-process driver, drops any
// undelivered messages.
func (p *PubSub) Close() error {
	return p.publisher.Close()
}

func natsOptions(logger watermill.LoggerAdapter) []natsgo.Option {
	return []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("nats disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("nats reconnected", watermill.LogFields{"url": nc.ConnectedUrl()})
		}),
	}
}

// keepOpen hides Close from the router so the shared in-process channel
// survives a consumer restart.
type keepOpen struct {
	message.Subscriber
}

func (keepOpen) Close() error { return nil }
