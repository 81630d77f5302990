package viewer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	channel   string
	message   []byte
	receivers int64
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.message, _ = message.([]byte)
	return redis.NewIntResult(f.receivers, f.err)
}

func TestPresentProfile_PublishesRequest(t *testing.T) {
	pub := &fakePublisher{receivers: 1}
	v := NewRedisProfileViewer(pub, "directory:profile_requests")
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return fixed }

	err := v.PresentProfile(context.Background(), "amy", false, true)
	require.NoError(t, err)

	assert.Equal(t, "directory:profile_requests", pub.channel)

	var msg ProfileViewRequest
	require.NoError(t, json.Unmarshal(pub.message, &msg))
	assert.Equal(t, "amy", msg.Username)
	assert.False(t, msg.FullPage)
	assert.True(t, msg.Overlay)
	assert.True(t, fixed.Equal(msg.RequestedAt))
	_, err = uuid.Parse(msg.RequestID)
	assert.NoError(t, err)
}

func TestPresentProfile_NoSubscribersIsFine(t *testing.T) {
	v := NewRedisProfileViewer(&fakePublisher{receivers: 0}, "c")
	assert.NoError(t, v.PresentProfile(context.Background(), "amy", false, true))
}

func TestPresentProfile_PublishError(t *testing.T) {
	v := NewRedisProfileViewer(&fakePublisher{err: errors.New("connection reset")}, "c")

	err := v.PresentProfile(context.Background(), "amy", false, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
