package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Subscription - a confirmed subscription to the event channel.
type Subscription struct {
	logger *slog.Logger
	pubsub *redis.PubSub
}

// Subscribe - subscribes to channel and waits for Redis to confirm it.
func Subscribe(ctx context.Context, logger *slog.Logger, client *redis.Client, channel string) (*Subscription, error) {
	pubsub := client.Subscribe(ctx, channel)

	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	return &Subscription{
		logger: logger.With("component", "feed", "channel", channel),
		pubsub: pubsub,
	}, nil
}

// Run - calls handle for every event until ctx is done or handle fails.
func (that *Subscription) Run(ctx context.Context, handle func(Event) error) error {
	log := that.logger.With("method", "Run")

	messages := that.pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}

			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Warn("skipping malformed event", "error", err)
				continue
			}

			if err := handle(event); err != nil {
				return fmt.Errorf("failed to handle %s event: %w", event.Type, err)
			}
		}
	}
}

func (that *Subscription) Close() error {
	return that.pubsub.Close()
}
