package viewer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Publisher is the part of *redis.Client the viewer needs
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// ProfileViewRequest is the message published for each selected entry.
// The profile UI subscribes to the channel and opens the overlay.
type ProfileViewRequest struct {
	RequestID   string    `json:"request_id"`
	Username    string    `json:"username"`
	FullPage    bool      `json:"full_page"`
	Overlay     bool      `json:"overlay"`
	RequestedAt time.Time `json:"requested_at"`
}

// RedisProfileViewer forwards profile requests over Redis pub/sub
type RedisProfileViewer struct {
	publisher Publisher
	channel   string
	now       func() time.Time
}

func NewRedisProfileViewer(publisher Publisher, channel string) *RedisProfileViewer {
	return &RedisProfileViewer{
		publisher: publisher,
		channel:   channel,
		now:       time.Now,
	}
}

func (v *RedisProfileViewer) PresentProfile(ctx context.Context, username string, fullPage, overlay bool) error {
	msg := ProfileViewRequest{
		RequestID:   uuid.NewString(),
		Username:    username,
		FullPage:    fullPage,
		Overlay:     overlay,
		RequestedAt: v.now().UTC(),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal profile request: %w", err)
	}

	receivers, err := v.publisher.Publish(ctx, v.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("failed to publish profile request: %w", err)
	}

	// Nobody listening is not an error, the UI may simply be closed
	if receivers == 0 {
		log.Debug().Str("channel", v.channel).Str("username", username).Msg("[VIEWER] No subscriber for profile request")
	}
	return nil
}
