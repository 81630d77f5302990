package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"directory-backend/internal/domains/directory/model"
	"directory-backend/internal/shared/utils"
)

// =====================================================
// FALLBACK ADAPTER
// =====================================================

type fallbackAdapter struct {
	store LocalSource
}

// NewFallbackAdapter builds snapshots from the local stores.
func NewFallbackAdapter(store LocalSource) FallbackSource {
	return &fallbackAdapter{store: store}
}

// Snapshot fails only when registrations or items cannot be read.
// Avatar and follower stores are auxiliary: a failure there degrades to
// empty maps so stats default to zero.
func (a *fallbackAdapter) Snapshot(ctx context.Context) (*model.LocalSnapshot, error) {
	registered, err := a.store.ListRegisteredUsernames(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrLocalUnavailable, err)
	}

	items, err := a.store.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrLocalUnavailable, err)
	}

	avatars, err := a.store.AllAvatars(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("[DIRECTORY] Avatar store unreadable, continuing without avatars")
		avatars = map[string]string{}
	}

	followers, err := a.store.AllFollowerCounts(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("[DIRECTORY] Follower store unreadable, continuing without followers")
		followers = map[string]int{}
	}

	return &model.LocalSnapshot{
		Registrants: surfaceRegistrants(registered, items),
		Items:       items,
		Avatars:     avatars,
		Followers:   followers,
	}, nil
}

// surfaceRegistrants keeps the registration list as-is and appends every
// uploader that is not registered (case-insensitive) as an implicit registrant,
// in order of first appearance.
func surfaceRegistrants(registered []string, items []model.Item) []model.Registrant {
	out := make([]model.Registrant, 0, len(registered))
	seen := make(map[string]struct{}, len(registered))

	for _, name := range registered {
		out = append(out, model.Registrant{Username: name})
		seen[utils.UsernameKey(name)] = struct{}{}
	}

	for _, item := range items {
		if utils.IsBlankUsername(item.Uploader) {
			continue
		}
		key := utils.UsernameKey(item.Uploader)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, model.Registrant{Username: item.Uploader, Implicit: true})
	}

	return out
}
