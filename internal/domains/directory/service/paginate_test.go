package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"directory-backend/internal/domains/directory/model"
)

// rosterOf numbers names in the order given
func rosterOf(names ...string) *model.Roster {
	entries := make([]model.DirectoryEntry, len(names))
	for i, n := range names {
		entries[i] = model.DirectoryEntry{OrdinalID: i + 1, Username: n}
	}
	return model.NewRoster(1, model.SourceFallback, time.Now(), entries)
}

func numberedRoster(n int) *model.Roster {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("user%02d", i+1)
	}
	return rosterOf(names...)
}

// render draws a control bar compactly: "<" prev, ">" next, "[n]" active,
// "..." ellipsis, "!" suffix for disabled.
func render(controls []model.PageControl) []string {
	out := make([]string, len(controls))
	for i, c := range controls {
		var s string
		switch c.Kind {
		case model.ControlPrev:
			s = fmt.Sprintf("<%d", c.Page)
		case model.ControlNext:
			s = fmt.Sprintf(">%d", c.Page)
		case model.ControlEllipsis:
			s = "..."
		case model.ControlPage:
			s = fmt.Sprint(c.Page)
			if c.Active {
				s = "[" + s + "]"
			}
		}
		if c.Disabled {
			s += "!"
		}
		out[i] = s
	}
	return out
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, size, want int
	}{
		{0, 25, 0},
		{1, 25, 1},
		{25, 25, 1},
		{26, 25, 2},
		{60, 25, 3},
		{10, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.count, tt.size), "count=%d size=%d", tt.count, tt.size)
	}
}

func TestPaginate_Boundaries(t *testing.T) {
	roster := numberedRoster(60)

	first := Paginate(roster, model.LetterAll, 1, 25)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 60, first.TotalEntries)
	assert.Len(t, first.Entries, 25)
	assert.False(t, first.HasPrev)
	assert.True(t, first.HasNext)
	assert.False(t, first.Empty)

	last := Paginate(roster, model.LetterAll, 3, 25)
	require.Len(t, last.Entries, 10)
	assert.Equal(t, 51, last.Entries[0].OrdinalID)
	assert.Equal(t, 60, last.Entries[9].OrdinalID)
	assert.True(t, last.HasPrev)
	assert.False(t, last.HasNext)

	t.Run("out of range pages clamp", func(t *testing.T) {
		assert.Equal(t, 1, Paginate(roster, model.LetterAll, 0, 25).CurrentPage)
		assert.Equal(t, 3, Paginate(roster, model.LetterAll, 99, 25).CurrentPage)
	})
}

func TestPaginate_LetterFilter(t *testing.T) {
	roster := rosterOf("bob", "Amy", "Bea", "carl", "BRUNO", "anna")

	page := Paginate(roster, model.LetterFilter("B"), 1, 25)

	assert.Equal(t, []string{"bob", "Bea", "BRUNO"}, usernames(page.Entries))
	for _, e := range page.Entries {
		assert.Contains(t, []int{1, 3, 5}, e.OrdinalID, "ordinals refer to the full roster")
	}

	all := Paginate(roster, model.LetterAll, 1, 25)
	assert.Len(t, all.Entries, 6)
}

func TestPaginate_EmptyState(t *testing.T) {
	roster := rosterOf("amy", "bob")

	page := Paginate(roster, model.LetterFilter("Z"), 1, 25)

	assert.True(t, page.Empty)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	assert.NotNil(t, page.Entries)
	assert.Empty(t, page.Entries)
	assert.Empty(t, page.Controls)
	assert.False(t, page.HasPrev)
	assert.False(t, page.HasNext)

	empty := Paginate(model.EmptyRoster(), model.LetterAll, 1, 25)
	assert.True(t, empty.Empty)
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name           string
		current, total int
		want           []string
	}{
		{"single page", 1, 1, []string{"<1!", "[1]", ">1!"}},
		{"three pages", 2, 3, []string{"<1", "1", "[2]", "3", ">3"}},
		{"first of ten", 1, 10, []string{"<1!", "[1]", "2", "3", "4", "5", "...", "10", ">2"}},
		{"middle of ten", 5, 10, []string{"<4", "1", "...", "3", "4", "[5]", "6", "7", "...", "10", ">6"}},
		{"last of ten", 10, 10, []string{"<9", "1", "...", "6", "7", "8", "9", "[10]", ">10!"}},
		{"no ellipsis for adjacent last", 1, 6, []string{"<1!", "[1]", "2", "3", "4", "5", "6", ">2"}},
		{"no ellipsis for adjacent first", 4, 6, []string{"<3", "1", "2", "3", "[4]", "5", "6", ">5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(PageWindow(tt.current, tt.total)))
		})
	}

	assert.Empty(t, PageWindow(1, 0))
}
