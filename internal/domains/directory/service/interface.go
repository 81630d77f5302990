package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"directory-backend/internal/domains/directory/model"
)

// =====================================================
// DIRECTORY SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// ========================================
	// ROSTER
	// ========================================

	// LoadDirectory rebuilds the roster. Calls made while a rebuild is in
	// flight join it instead of starting another one.
	LoadDirectory(ctx context.Context) *model.Roster

	// Roster returns the active roster snapshot
	Roster() *model.Roster

	// ========================================
	// VIEW STATE
	// ========================================

	// SetLetterFilter changes the filter and resets to page 1
	SetLetterFilter(letter string) error

	// GoToPage is a no-op (returns false) outside [1, totalPages]
	GoToPage(page int) bool

	// VisiblePage returns the current page of the current filter
	VisiblePage() *model.Page

	// Query computes a page without touching the view state
	Query(letter model.LetterFilter, page int) *model.Page

	// ========================================
	// PROFILE SELECTION
	// ========================================

	// SelectEntry resolves an ordinal and presents the profile.
	// A stale or unknown ordinal returns false and does nothing.
	SelectEntry(ctx context.Context, ordinalID int) (*model.ProfileRequest, bool)

	// ========================================
	// EXPORT
	// ========================================

	// ExportRoster builds a workbook of every entry matching letter
	ExportRoster(letter model.LetterFilter) (*excelize.File, error)
}

// =====================================================
// COLLABORATORS
// =====================================================

// ProfileViewer shows a user's profile. The resolver always asks for the
// overlay presentation (fullPage=false, overlay=true).
type ProfileViewer interface {
	PresentProfile(ctx context.Context, username string, fullPage, overlay bool) error
}

// NoopProfileViewer is used when no viewer is wired
type NoopProfileViewer struct{}

func (NoopProfileViewer) PresentProfile(ctx context.Context, username string, fullPage, overlay bool) error {
	return nil
}

// AvatarResolver turns a sanitized avatar reference into something the UI
// can load. Returning "" makes the UI render the placeholder.
type AvatarResolver interface {
	ResolveAvatar(ctx context.Context, ref string) string
}

// PassthroughAvatars returns references unchanged
type PassthroughAvatars struct{}

func (PassthroughAvatars) ResolveAvatar(ctx context.Context, ref string) string {
	return ref
}
