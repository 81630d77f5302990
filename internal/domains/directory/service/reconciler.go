package service

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"directory-backend/internal/domains/directory/model"
	"directory-backend/internal/domains/directory/repository"
	"directory-backend/internal/shared/utils"
)

// DefaultRemoteTimeout bounds a single remote fetch
const DefaultRemoteTimeout = 10 * time.Second

// Reconciler turns one adapter's output into a sorted, numbered roster.
type Reconciler struct {
	remote        repository.RemoteSource
	fallback      repository.FallbackSource
	rules         *NameRules
	avatars       AvatarResolver
	remoteTimeout time.Duration
	now           func() time.Time
}

func NewReconciler(
	remote repository.RemoteSource,
	fallback repository.FallbackSource,
	rules *NameRules,
	avatars AvatarResolver,
	remoteTimeout time.Duration,
) *Reconciler {
	if avatars == nil {
		avatars = PassthroughAvatars{}
	}
	if remoteTimeout <= 0 {
		remoteTimeout = DefaultRemoteTimeout
	}
	return &Reconciler{
		remote:        remote,
		fallback:      fallback,
		rules:         rules,
		avatars:       avatars,
		remoteTimeout: remoteTimeout,
		now:           time.Now,
	}
}

// ranked pairs an entry with its precomputed matching key
type ranked struct {
	entry model.DirectoryEntry
	key   string
}

// Reconcile performs a full rebuild. It never fails: every source problem
// degrades to the next source or to an empty roster.
func (r *Reconciler) Reconcile(ctx context.Context, version uint64) *model.Roster {
	// Step 1: Remote source is preferred
	if rows := r.fromRemote(ctx); len(rows) > 0 {
		sortRemote(rows)
		return model.NewRoster(version, model.SourceRemote, r.now(), number(rows))
	}

	// Step 2: Local fallback
	if rows := r.fromFallback(ctx); len(rows) > 0 {
		sortFallback(rows)
		return model.NewRoster(version, model.SourceFallback, r.now(), number(rows))
	}

	log.Warn().Uint64("version", version).Msg("[DIRECTORY] No source produced any entry, roster is empty")
	return model.NewRoster(version, model.SourceEmpty, r.now(), nil)
}

// =====================================================
// REMOTE PATH
// =====================================================

func (r *Reconciler) fromRemote(ctx context.Context) []ranked {
	fetchCtx, cancel := context.WithTimeout(ctx, r.remoteTimeout)
	defer cancel()

	records, err := r.remote.FetchAllProfiles(fetchCtx)
	if err != nil {
		log.Warn().Err(err).Msg("[DIRECTORY] Remote profiles unavailable, using local fallback")
		return nil
	}

	rows := make([]ranked, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, p := range records {
		if !r.rules.Allowed(p.Username) {
			continue
		}
		key := utils.UsernameKey(p.Username)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		var avatar string
		if p.AvatarURL != nil {
			avatar = r.resolveAvatar(ctx, *p.AvatarURL)
		}

		rows = append(rows, ranked{
			key: key,
			entry: model.DirectoryEntry{
				SourceID:  p.ID.String(),
				Username:  strings.TrimSpace(p.Username),
				AvatarRef: avatar,
			},
		})
	}

	log.Info().
		Int("fetched", len(records)).
		Int("usable", len(rows)).
		Msg("[DIRECTORY] Loaded profiles from remote source")
	return rows
}

// =====================================================
// FALLBACK PATH
// =====================================================

type itemStats struct {
	uploads int
	likes   int
}

func (r *Reconciler) fromFallback(ctx context.Context) []ranked {
	snap, err := r.fallback.Snapshot(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("[DIRECTORY] Local fallback unreadable, treating as empty")
		return nil
	}
	if snap.IsEmpty() {
		return nil
	}

	// Stats are keyed by canonical uploader so "alice" and "ALICE" add up
	stats := make(map[string]*itemStats)
	for _, item := range snap.Items {
		if utils.IsBlankUsername(item.Uploader) {
			continue
		}
		key := utils.UsernameKey(item.Uploader)
		s, ok := stats[key]
		if !ok {
			s = &itemStats{}
			stats[key] = s
		}
		s.uploads++
		s.likes += item.HeartCount()
	}

	avatars := newLowerLookup(snap.Avatars)
	followers := newLowerLookup(snap.Followers)

	rows := make([]ranked, 0, len(snap.Registrants))
	seen := make(map[string]struct{}, len(snap.Registrants))
	for _, reg := range snap.Registrants {
		if !r.rules.Allowed(reg.Username) {
			continue
		}
		key := utils.UsernameKey(reg.Username)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		entry := model.DirectoryEntry{
			Username: strings.TrimSpace(reg.Username),
			Implicit: reg.Implicit,
		}
		if s, ok := stats[key]; ok {
			entry.UploadCount = s.uploads
			entry.LikeTotal = s.likes
		}
		if count, ok := followers.get(reg.Username); ok && count > 0 {
			entry.FollowerCount = count
		}
		if ref, ok := avatars.get(reg.Username); ok {
			entry.AvatarRef = r.resolveAvatar(ctx, ref)
		}

		rows = append(rows, ranked{entry: entry, key: key})
	}

	log.Info().
		Int("registrants", len(snap.Registrants)).
		Int("items", len(snap.Items)).
		Int("usable", len(rows)).
		Msg("[DIRECTORY] Built roster from local fallback")
	return rows
}

func (r *Reconciler) resolveAvatar(ctx context.Context, ref string) string {
	safe := utils.SanitizeAvatarRef(ref)
	if safe == "" {
		return ""
	}
	return r.avatars.ResolveAvatar(ctx, safe)
}

// lowerLookup matches usernames case-insensitively against a store keyed by
// exact username. An exact key always wins; otherwise the first key in byte
// order among the case variants is used, so lookups are deterministic.
type lowerLookup[V any] struct {
	exact   map[string]V
	lowered map[string]V
}

func newLowerLookup[V any](m map[string]V) lowerLookup[V] {
	lowered := make(map[string]V, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		key := utils.UsernameKey(k)
		if _, ok := lowered[key]; !ok {
			lowered[key] = m[k]
		}
	}
	return lowerLookup[V]{exact: m, lowered: lowered}
}

func (l lowerLookup[V]) get(username string) (V, bool) {
	if v, ok := l.exact[username]; ok {
		return v, true
	}
	v, ok := l.lowered[utils.UsernameKey(username)]
	return v, ok
}

// =====================================================
// ORDERING
// =====================================================

// sortRemote: username ascending, case-insensitive.
func sortRemote(rows []ranked) {
	slices.SortStableFunc(rows, func(a, b ranked) int {
		return cmp.Or(
			strings.Compare(a.key, b.key),
			strings.Compare(a.entry.Username, b.entry.Username),
			strings.Compare(a.entry.SourceID, b.entry.SourceID),
		)
	})
}

// sortFallback: engagement (likes + followers) descending, ties by username.
func sortFallback(rows []ranked) {
	slices.SortStableFunc(rows, func(a, b ranked) int {
		return cmp.Or(
			cmp.Compare(b.entry.Engagement(), a.entry.Engagement()),
			strings.Compare(a.key, b.key),
			strings.Compare(a.entry.Username, b.entry.Username),
		)
	})
}

// number assigns dense 1-based ordinals in final order
func number(rows []ranked) []model.DirectoryEntry {
	entries := make([]model.DirectoryEntry, len(rows))
	for i, row := range rows {
		row.entry.OrdinalID = i + 1
		entries[i] = row.entry
	}
	return entries
}
