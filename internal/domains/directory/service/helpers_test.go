package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"directory-backend/internal/domains/directory/model"
)

// fakeRemote returns canned records. When gate is set, every fetch blocks
// until the gate is closed.
type fakeRemote struct {
	records []model.ProfileRecord
	err     error
	gate    chan struct{}
	calls   atomic.Int32
}

func (f *fakeRemote) FetchAllProfiles(ctx context.Context) ([]model.ProfileRecord, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	return f.records, f.err
}

type fakeFallback struct {
	mu    sync.Mutex
	snap  *model.LocalSnapshot
	err   error
	calls int
}

func (f *fakeFallback) Snapshot(ctx context.Context) (*model.LocalSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.snap, f.err
}

func profile(id, username string) model.ProfileRecord {
	return model.ProfileRecord{
		ID:            uuid.NewSHA1(uuid.NameSpaceOID, []byte(id)),
		Username:      username,
		EmailVerified: true,
	}
}

func hearts(n int) *int { return &n }

func defaultRules(t *testing.T) *NameRules {
	t.Helper()
	rules, err := NewNameRules(model.DefaultReservedUsernames(), model.DefaultDeletedPattern)
	require.NoError(t, err)
	return rules
}

func newTestReconciler(t *testing.T, remote *fakeRemote, fallback *fakeFallback) *Reconciler {
	t.Helper()
	return NewReconciler(remote, fallback, defaultRules(t), nil, 0)
}

func newTestService(t *testing.T, remote *fakeRemote, fallback *fakeFallback, viewer ProfileViewer) ServiceInterface {
	t.Helper()
	return NewDirectoryService(
		newTestReconciler(t, remote, fallback),
		NewProfileResolver(viewer),
		model.DefaultPageSize,
	)
}

// remoteUsers builds n remote profiles named <prefix>000, <prefix>001, ...
func remoteUsers(prefix string, n int) []model.ProfileRecord {
	records := make([]model.ProfileRecord, n)
	for i := range records {
		name := fmt.Sprintf("%s%03d", prefix, i)
		records[i] = profile(name, name)
	}
	return records
}

func usernames(entries []model.DirectoryEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Username
	}
	return names
}
