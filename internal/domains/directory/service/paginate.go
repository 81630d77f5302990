package service

import (
	"directory-backend/internal/domains/directory/model"
)

// Filtering and pagination are pure: they read a roster snapshot and
// never mutate it, so they are safe to call from any goroutine.

// FilterByLetter returns the roster entries matching letter, in roster order.
func FilterByLetter(roster *model.Roster, letter model.LetterFilter) []model.DirectoryEntry {
	return roster.Filter(func(e model.DirectoryEntry) bool {
		return letter.Matches(e.Username)
	})
}

// TotalPages is ceil(count/pageSize); zero entries means zero pages.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// Paginate builds the page view. A page outside [1, totalPages] is clamped;
// callers that must reject such pages check TotalPages first.
func Paginate(roster *model.Roster, letter model.LetterFilter, page, pageSize int) *model.Page {
	if pageSize <= 0 {
		pageSize = model.DefaultPageSize
	}

	filtered := FilterByLetter(roster, letter)
	total := TotalPages(len(filtered), pageSize)

	view := &model.Page{
		Letter:        letter,
		CurrentPage:   1,
		TotalPages:    total,
		TotalEntries:  len(filtered),
		PageSize:      pageSize,
		RosterVersion: roster.Version,
	}

	if total == 0 {
		view.Entries = []model.DirectoryEntry{}
		view.Controls = []model.PageControl{}
		view.Empty = true
		return view
	}

	page = min(max(page, 1), total)
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(filtered))

	view.Entries = filtered[start:end]
	view.CurrentPage = page
	view.HasPrev = page > 1
	view.HasNext = page < total
	view.Controls = PageWindow(page, total)
	return view
}

// PageWindow lays out the pagination bar: prev, an optional "1 …" head,
// up to WindowSize numbered pages centred on current, an optional "… N"
// tail, then next.
func PageWindow(current, total int) []model.PageControl {
	if total <= 0 {
		return []model.PageControl{}
	}

	controls := []model.PageControl{{
		Kind:     model.ControlPrev,
		Page:     max(current-1, 1),
		Disabled: current <= 1,
	}}

	start := max(1, current-model.WindowSize/2)
	end := min(total, start+model.WindowSize-1)
	// Shift back when the window ran past the last page
	start = max(1, end-model.WindowSize+1)

	if start > 1 {
		controls = append(controls, model.PageControl{Kind: model.ControlPage, Page: 1})
		if start > 2 {
			controls = append(controls, model.PageControl{Kind: model.ControlEllipsis})
		}
	}

	for i := start; i <= end; i++ {
		controls = append(controls, model.PageControl{
			Kind:   model.ControlPage,
			Page:   i,
			Active: i == current,
		})
	}

	if end < total {
		if end < total-1 {
			controls = append(controls, model.PageControl{Kind: model.ControlEllipsis})
		}
		controls = append(controls, model.PageControl{Kind: model.ControlPage, Page: total})
	}

	controls = append(controls, model.PageControl{
		Kind:     model.ControlNext,
		Page:     min(current+1, total),
		Disabled: current >= total,
	})

	return controls
}
