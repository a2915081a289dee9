package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const (
	EventToast = "toast"
	EventSound = "sound"
)

// Event - one toast or sound cue of a screen session, as sent over Pub/Sub.
type Event struct {
	Session string        `json:"session"`
	Type    string        `json:"type"`
	Toast   *entity.Toast `json:"toast,omitempty"`
	Cue     entity.Cue    `json:"cue,omitempty"`
	At      time.Time     `json:"at"`
}

// Publisher mirrors a session's toasts and cues to a Redis channel.
// Nothing is stored: subscribers that are not listening miss the event.
type Publisher struct {
	client  *redis.Client
	channel string
	session string

	now func() time.Time
}

func NewPublisher(client *redis.Client, channel, session string) *Publisher {
	return &Publisher{
		client:  client,
		channel: channel,
		session: session,
		now:     time.Now,
	}
}

func (that *Publisher) Notify(ctx context.Context, toast entity.Toast) error {
	return that.publish(ctx, Event{Type: EventToast, Toast: &toast})
}

func (that *Publisher) Play(ctx context.Context, cue entity.Cue) error {
	return that.publish(ctx, Event{Type: EventSound, Cue: cue})
}

func (that *Publisher) publish(ctx context.Context, event Event) error {
	event.Session = that.session
	event.At = that.now().UTC()

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel, eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	return nil
}
