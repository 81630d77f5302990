package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/singleflight"

	"directory-backend/internal/domains/directory/model"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

const rebuildKey = "roster"

// directoryService owns the active roster and the viewer's letter/page state.
//
// The roster is published through an atomic pointer, so readers always see a
// complete roster. Rebuilds are serialized by a singleflight guard: a load
// requested while one is running waits for it and shares its result.
type directoryService struct {
	reconciler *Reconciler
	resolver   *ProfileResolver
	pageSize   int

	roster  atomic.Pointer[model.Roster]
	version atomic.Uint64
	rebuild singleflight.Group

	mu     sync.Mutex
	letter model.LetterFilter
	page   int
}

func NewDirectoryService(
	reconciler *Reconciler,
	resolver *ProfileResolver,
	pageSize int,
) ServiceInterface {
	if pageSize <= 0 {
		pageSize = model.DefaultPageSize
	}
	s := &directoryService{
		reconciler: reconciler,
		resolver:   resolver,
		pageSize:   pageSize,
		letter:     model.LetterAll,
		page:       1,
	}
	s.roster.Store(model.EmptyRoster())
	return s
}

// =====================================================
// ROSTER
// =====================================================

func (s *directoryService) LoadDirectory(ctx context.Context) *model.Roster {
	// The rebuild outlives a cancelled caller: in-flight rebuilds are never cancelled
	buildCtx := context.WithoutCancel(ctx)

	v, _, shared := s.rebuild.Do(rebuildKey, func() (interface{}, error) {
		version := s.version.Add(1)
		roster := s.reconciler.Reconcile(buildCtx, version)
		s.publish(roster)
		return roster, nil
	})

	roster := v.(*model.Roster)
	log.Info().
		Uint64("version", roster.Version).
		Str("source", string(roster.Source)).
		Int("total", roster.Len()).
		Bool("joined", shared).
		Msg("[DIRECTORY] Roster loaded")
	return roster
}

// publish swaps the roster and resets the view to page 1 under one lock, so
// the view never points past the end of the new roster.
func (s *directoryService) publish(roster *model.Roster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster.Store(roster)
	s.page = 1
}

func (s *directoryService) Roster() *model.Roster {
	return s.roster.Load()
}

// =====================================================
// VIEW STATE
// =====================================================

func (s *directoryService) SetLetterFilter(letter string) error {
	parsed, err := model.ParseLetter(letter)
	if err != nil {
		return model.NewInvalidLetterError(letter)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.letter = parsed
	s.page = 1
	return nil
}

func (s *directoryService) GoToPage(page int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := FilterByLetter(s.roster.Load(), s.letter)
	total := TotalPages(len(filtered), s.pageSize)

	// Validate before touching state
	if page < 1 || page > total {
		return false
	}

	s.page = page
	return true
}

func (s *directoryService) VisiblePage() *model.Page {
	s.mu.Lock()
	letter, page := s.letter, s.page
	roster := s.roster.Load()
	s.mu.Unlock()

	return Paginate(roster, letter, page, s.pageSize)
}

func (s *directoryService) Query(letter model.LetterFilter, page int) *model.Page {
	return Paginate(s.roster.Load(), letter, page, s.pageSize)
}

// =====================================================
// PROFILE SELECTION
// =====================================================

func (s *directoryService) SelectEntry(ctx context.Context, ordinalID int) (*model.ProfileRequest, bool) {
	return s.resolver.Select(ctx, s.roster.Load(), ordinalID)
}

// =====================================================
// EXPORT
// =====================================================

func (s *directoryService) ExportRoster(letter model.LetterFilter) (*excelize.File, error) {
	entries := FilterByLetter(s.roster.Load(), letter)

	f, err := buildRosterExcelFile(entries)
	if err != nil {
		return nil, model.NewExportFailedError(err)
	}
	return f, nil
}
