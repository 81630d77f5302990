package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRefresher(t *testing.T) {
	svc := newTestService(t, &fakeRemote{}, &fakeFallback{}, nil)

	t.Run("valid schedules", func(t *testing.T) {
		for _, schedule := range []string{"*/5 * * * *", "@every 10m", "@hourly"} {
			r, err := NewRefresher(svc, schedule)
			require.NoError(t, err, schedule)
			r.Start()
			r.Stop()
		}
	})

	t.Run("invalid schedule", func(t *testing.T) {
		r, err := NewRefresher(svc, "every now and then")
		assert.Error(t, err)
		assert.Nil(t, r)
	})
}

func TestRefresher_RefreshRebuildsRoster(t *testing.T) {
	remote := &fakeRemote{records: remoteUsers("u", 3)}
	svc := newTestService(t, remote, &fakeFallback{}, nil)
	svc.LoadDirectory(context.Background())
	require.Equal(t, uint64(1), svc.Roster().Version)

	r, err := NewRefresher(svc, "@every 1h")
	require.NoError(t, err)

	remote.records = remoteUsers("v", 4)
	r.refresh()

	roster := svc.Roster()
	assert.Equal(t, uint64(2), roster.Version)
	assert.Equal(t, 4, roster.Len())
	assert.Equal(t, int32(2), remote.calls.Load())
}
