package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"directory-backend/internal/domains/directory/model"
)

// ProfileResolver maps an ordinal of the full roster back to a username
// and hands it to the profile viewer.
type ProfileResolver struct {
	viewer ProfileViewer
}

func NewProfileResolver(viewer ProfileViewer) *ProfileResolver {
	if viewer == nil {
		viewer = NoopProfileViewer{}
	}
	return &ProfileResolver{viewer: viewer}
}

// Select is a silent no-op on a miss. Viewer failures are logged, not returned:
// the selection itself succeeded.
func (r *ProfileResolver) Select(ctx context.Context, roster *model.Roster, ordinalID int) (*model.ProfileRequest, bool) {
	entry, ok := roster.Lookup(ordinalID)
	if !ok {
		log.Debug().
			Int("ordinal", ordinalID).
			Uint64("roster_version", roster.Version).
			Msg("[DIRECTORY] Stale or unknown entry selected")
		return nil, false
	}

	req := &model.ProfileRequest{
		OrdinalID: entry.OrdinalID,
		Username:  entry.Username,
		FullPage:  false,
		Overlay:   true,
	}

	if err := r.viewer.PresentProfile(ctx, req.Username, req.FullPage, req.Overlay); err != nil {
		log.Warn().Err(err).Str("username", req.Username).Msg("[DIRECTORY] Profile viewer failed")
	}

	return req, true
}
