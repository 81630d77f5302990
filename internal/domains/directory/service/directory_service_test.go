package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"directory-backend/internal/domains/directory/model"
)

type mockViewer struct {
	mock.Mock
}

func (m *mockViewer) PresentProfile(ctx context.Context, username string, fullPage, overlay bool) error {
	args := m.Called(ctx, username, fullPage, overlay)
	return args.Error(0)
}

func TestDirectoryService_InitialState(t *testing.T) {
	svc := newTestService(t, &fakeRemote{}, &fakeFallback{}, nil)

	roster := svc.Roster()
	assert.Equal(t, uint64(0), roster.Version)
	assert.Equal(t, 0, roster.Len())

	page := svc.VisiblePage()
	assert.True(t, page.Empty)
	assert.Equal(t, model.LetterAll, page.Letter)
}

func TestDirectoryService_LoadDirectoryBumpsVersion(t *testing.T) {
	svc := newTestService(t, &fakeRemote{records: remoteUsers("u", 3)}, &fakeFallback{}, nil)

	first := svc.LoadDirectory(context.Background())
	second := svc.LoadDirectory(context.Background())

	assert.Equal(t, uint64(1), first.Version)
	assert.Equal(t, uint64(2), second.Version)
	assert.Same(t, second, svc.Roster())
}

func TestDirectoryService_GoToPage(t *testing.T) {
	svc := newTestService(t, &fakeRemote{records: remoteUsers("u", 60)}, &fakeFallback{}, nil)
	svc.LoadDirectory(context.Background())

	require.Equal(t, 3, svc.VisiblePage().TotalPages)

	assert.True(t, svc.GoToPage(3))
	page := svc.VisiblePage()
	assert.Equal(t, 3, page.CurrentPage)
	assert.Len(t, page.Entries, 10)

	for _, p := range []int{0, 4, -1} {
		assert.False(t, svc.GoToPage(p), "page %d", p)
		assert.Equal(t, 3, svc.VisiblePage().CurrentPage, "state unchanged after page %d", p)
	}
}

func TestDirectoryService_SetLetterFilter(t *testing.T) {
	fallback := &fakeFallback{snap: &model.LocalSnapshot{
		Registrants: []model.Registrant{
			{Username: "bob"}, {Username: "Bea"}, {Username: "amy"}, {Username: "carl"},
		},
	}}
	svc := newTestService(t, &fakeRemote{}, fallback, nil)
	svc.LoadDirectory(context.Background())

	require.NoError(t, svc.SetLetterFilter("b"))
	page := svc.VisiblePage()
	assert.Equal(t, model.LetterFilter("B"), page.Letter)
	assert.ElementsMatch(t, []string{"bob", "Bea"}, usernames(page.Entries))

	t.Run("invalid letters are rejected", func(t *testing.T) {
		for _, in := range []string{"", "ab", "1", "é"} {
			err := svc.SetLetterFilter(in)
			require.Error(t, err, "input %q", in)
			assert.ErrorIs(t, err, model.ErrInvalidLetter)
		}
		assert.Equal(t, model.LetterFilter("B"), svc.VisiblePage().Letter)
	})

	require.NoError(t, svc.SetLetterFilter("ALL"))
	assert.Len(t, svc.VisiblePage().Entries, 4)
}

func TestDirectoryService_SetLetterFilterResetsPage(t *testing.T) {
	svc := newTestService(t, &fakeRemote{records: remoteUsers("a", 60)}, &fakeFallback{}, nil)
	svc.LoadDirectory(context.Background())

	require.True(t, svc.GoToPage(2))
	require.NoError(t, svc.SetLetterFilter("A"))

	assert.Equal(t, 1, svc.VisiblePage().CurrentPage)
}

func TestDirectoryService_RebuildResetsPageKeepsLetter(t *testing.T) {
	svc := newTestService(t, &fakeRemote{records: remoteUsers("a", 60)}, &fakeFallback{}, nil)
	svc.LoadDirectory(context.Background())

	require.NoError(t, svc.SetLetterFilter("a"))
	require.True(t, svc.GoToPage(3))

	svc.LoadDirectory(context.Background())

	page := svc.VisiblePage()
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, model.LetterFilter("A"), page.Letter)
}

func TestDirectoryService_ConcurrentLoadsJoinInFlightRebuild(t *testing.T) {
	remote := &fakeRemote{records: remoteUsers("u", 5), gate: make(chan struct{})}
	svc := newTestService(t, remote, &fakeFallback{}, nil)

	const callers = 8
	results := make([]*model.Roster, callers)

	var entered atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entered.Add(1)
			results[i] = svc.LoadDirectory(context.Background())
		}(i)
	}

	// The first rebuild stays blocked on the gate until every caller is in
	require.Eventually(t, func() bool {
		return entered.Load() == callers && remote.calls.Load() == 1
	}, time.Second, time.Millisecond)
	close(remote.gate)
	wg.Wait()

	assert.Equal(t, int32(1), remote.calls.Load())
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
	assert.Equal(t, uint64(1), svc.Roster().Version)
}

func TestDirectoryService_ReadersNeverSeePartialRoster(t *testing.T) {
	svc := newTestService(t, &fakeRemote{records: remoteUsers("u", 50)}, &fakeFallback{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ctx.Err() == nil {
			r := svc.Roster()
			if n := r.Len(); n != 0 && n != 50 {
				t.Errorf("observed partial roster of %d entries", n)
				return
			}
		}
	}()

	for i := 0; i < 20; i++ {
		svc.LoadDirectory(context.Background())
	}
	cancel()
	wg.Wait()
}

func TestDirectoryService_SelectEntry(t *testing.T) {
	viewer := &mockViewer{}
	viewer.On("PresentProfile", mock.Anything, "amy", false, true).Return(nil).Once()

	remote := &fakeRemote{records: []model.ProfileRecord{profile("1", "Zed"), profile("2", "amy")}}
	svc := newTestService(t, remote, &fakeFallback{}, viewer)
	svc.LoadDirectory(context.Background())

	req, ok := svc.SelectEntry(context.Background(), 1)

	require.True(t, ok)
	assert.Equal(t, &model.ProfileRequest{OrdinalID: 1, Username: "amy", FullPage: false, Overlay: true}, req)
	viewer.AssertExpectations(t)
}

func TestDirectoryService_SelectEntryIgnoresFilter(t *testing.T) {
	viewer := &mockViewer{}
	viewer.On("PresentProfile", mock.Anything, "Zed", false, true).Return(nil).Once()

	remote := &fakeRemote{records: []model.ProfileRecord{profile("1", "Zed"), profile("2", "amy")}}
	svc := newTestService(t, remote, &fakeFallback{}, viewer)
	svc.LoadDirectory(context.Background())
	require.NoError(t, svc.SetLetterFilter("A"))

	req, ok := svc.SelectEntry(context.Background(), 2)

	require.True(t, ok)
	assert.Equal(t, "Zed", req.Username)
	viewer.AssertExpectations(t)
}

func TestDirectoryService_StaleOrdinalIsNoop(t *testing.T) {
	viewer := &mockViewer{}
	remote := &fakeRemote{records: remoteUsers("u", 10)}
	svc := newTestService(t, remote, &fakeFallback{}, viewer)
	svc.LoadDirectory(context.Background())

	// The roster shrinks on rebuild, ordinal 8 no longer exists
	remote.records = remoteUsers("u", 3)
	svc.LoadDirectory(context.Background())

	for _, ordinal := range []int{8, 0, -3} {
		req, ok := svc.SelectEntry(context.Background(), ordinal)
		assert.False(t, ok)
		assert.Nil(t, req)
	}
	viewer.AssertNotCalled(t, "PresentProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDirectoryService_ViewerErrorDoesNotFailSelection(t *testing.T) {
	viewer := &mockViewer{}
	viewer.On("PresentProfile", mock.Anything, "u000", false, true).Return(errors.New("channel closed"))

	svc := newTestService(t, &fakeRemote{records: remoteUsers("u", 1)}, &fakeFallback{}, viewer)
	svc.LoadDirectory(context.Background())

	req, ok := svc.SelectEntry(context.Background(), 1)
	assert.True(t, ok)
	assert.Equal(t, "u000", req.Username)
}

func TestDirectoryService_QueryDoesNotTouchViewState(t *testing.T) {
	svc := newTestService(t, &fakeRemote{records: remoteUsers("u", 60)}, &fakeFallback{}, nil)
	svc.LoadDirectory(context.Background())

	page := svc.Query(model.LetterAll, 2)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 1, svc.VisiblePage().CurrentPage)
}

func TestDirectoryService_ExportRoster(t *testing.T) {
	fallback := &fakeFallback{snap: &model.LocalSnapshot{
		Registrants: []model.Registrant{{Username: "alice"}, {Username: "bob"}},
		Items:       []model.Item{{Uploader: "alice", Hearts: hearts(4)}},
	}}
	svc := newTestService(t, &fakeRemote{}, fallback, nil)
	svc.LoadDirectory(context.Background())

	f, err := svc.ExportRoster(model.LetterAll)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Username", rows[0][1])
	assert.Equal(t, []string{"1", "alice", "1", "4", "0"}, rows[1][:5])
	assert.Equal(t, "bob", rows[2][1])

	filtered, err := svc.ExportRoster(model.LetterFilter("B"))
	require.NoError(t, err)
	defer filtered.Close()

	rows, err = filtered.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "bob", rows[1][1])
}
