package repository

import (
	"context"
	"fmt"

	"directory-backend/internal/domains/directory/model"
	"directory-backend/pkg/cache"
)

// Cache keys of the local directory data. They mirror the client-side
// storage layout the data was originally cached under.
const (
	KeyTakenUsernames = "directory:taken_usernames"
	KeyItemsPrefix    = "directory:items:"
	KeyUserProfiles   = "directory:user_profiles"
	KeyUserFollowers  = "directory:user_followers"
)

// ItemsKey returns the cache key of one item category
func ItemsKey(c model.Category) string {
	return KeyItemsPrefix + string(c)
}

// CachedProfile is one value of the KeyUserProfiles map
type CachedProfile struct {
	Avatar string `json:"avatar,omitempty"`
}

// cacheLocalStore reads the fallback data from any cache.Cache (Redis in
// production, in-memory in tests). A missing key is "no data", a value that
// fails to decode is an error.
type cacheLocalStore struct {
	cache      cache.Cache
	categories []model.Category
}

func NewCacheLocalStore(c cache.Cache) LocalSource {
	return &cacheLocalStore{
		cache:      c,
		categories: model.AllCategories(),
	}
}

func (s *cacheLocalStore) ListRegisteredUsernames(ctx context.Context) ([]string, error) {
	var names []string
	if _, err := s.cache.Get(ctx, KeyTakenUsernames, &names); err != nil {
		return nil, fmt.Errorf("failed to read registrations: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (s *cacheLocalStore) ListItems(ctx context.Context) ([]model.Item, error) {
	all := make([]model.Item, 0)
	for _, category := range s.categories {
		var items []model.Item
		found, err := s.cache.Get(ctx, ItemsKey(category), &items)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s items: %w", category, err)
		}
		if !found {
			continue
		}
		for _, item := range items {
			item.Category = category
			all = append(all, item)
		}
	}
	return all, nil
}

func (s *cacheLocalStore) AllAvatars(ctx context.Context) (map[string]string, error) {
	var profiles map[string]CachedProfile
	if _, err := s.cache.Get(ctx, KeyUserProfiles, &profiles); err != nil {
		return nil, fmt.Errorf("failed to read user profiles: %w", err)
	}

	avatars := make(map[string]string, len(profiles))
	for username, p := range profiles {
		if p.Avatar != "" {
			avatars[username] = p.Avatar
		}
	}
	return avatars, nil
}

func (s *cacheLocalStore) AllFollowerCounts(ctx context.Context) (map[string]int, error) {
	var followers map[string]int
	if _, err := s.cache.Get(ctx, KeyUserFollowers, &followers); err != nil {
		return nil, fmt.Errorf("failed to read followers: %w", err)
	}
	if followers == nil {
		followers = map[string]int{}
	}
	return followers, nil
}
