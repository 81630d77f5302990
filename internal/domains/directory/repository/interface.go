package repository

import (
	"context"

	"directory-backend/internal/domains/directory/model"
)

// =====================================================
// REMOTE PROFILE SOURCE
// =====================================================

// RemoteSource is the remote directory service.
// An error or an empty slice both mean "no data"; records are never partial.
type RemoteSource interface {
	FetchAllProfiles(ctx context.Context) ([]model.ProfileRecord, error)
}

// =====================================================
// LOCAL (FALLBACK) STORES
// =====================================================

// RegistrationStore lists locally registered usernames in registration order
type RegistrationStore interface {
	ListRegisteredUsernames(ctx context.Context) ([]string, error)
}

// ContentStore lists cached content items of every category
type ContentStore interface {
	ListItems(ctx context.Context) ([]model.Item, error)
}

// ProfileStore holds per-user avatar records and follower counts, returned
// as raw maps. Keys are kept as stored; case-insensitive matching is the
// reconciler's job.
type ProfileStore interface {
	AllAvatars(ctx context.Context) (map[string]string, error)
	AllFollowerCounts(ctx context.Context) (map[string]int, error)
}

// LocalSource groups every store the fallback adapter reads
type LocalSource interface {
	RegistrationStore
	ContentStore
	ProfileStore
}

// FallbackSource produces a reconciled-ready snapshot of the local cache
type FallbackSource interface {
	Snapshot(ctx context.Context) (*model.LocalSnapshot, error)
}
