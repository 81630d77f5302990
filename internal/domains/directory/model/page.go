package model

import (
	"strings"
)

// =====================================================
// LETTER FILTER
// =====================================================

// LetterFilter is either LetterAll or a single uppercase letter A-Z.
type LetterFilter string

const LetterAll LetterFilter = "all"

// ParseLetter normalizes user input ("b", "B", "ALL") into a LetterFilter.
func ParseLetter(raw string) (LetterFilter, error) {
	s := strings.TrimSpace(raw)
	if strings.EqualFold(s, string(LetterAll)) {
		return LetterAll, nil
	}
	if len(s) != 1 {
		return "", ErrInvalidLetter
	}
	c := s[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if c < 'A' || c > 'Z' {
		return "", ErrInvalidLetter
	}
	return LetterFilter(string(c)), nil
}

// Matches reports whether username belongs under this filter.
func (l LetterFilter) Matches(username string) bool {
	if l == LetterAll {
		return true
	}
	return strings.HasPrefix(strings.ToUpper(username), string(l))
}

// =====================================================
// PAGE VIEW
// =====================================================

// ControlKind identifies one element of the pagination bar
type ControlKind string

const (
	ControlPrev     ControlKind = "prev"
	ControlPage     ControlKind = "page"
	ControlEllipsis ControlKind = "ellipsis"
	ControlNext     ControlKind = "next"
)

// PageControl is one rendered pagination element, in display order.
type PageControl struct {
	Kind     ControlKind `json:"kind"`
	Page     int         `json:"page,omitempty"` // target page; 0 for ellipsis
	Active   bool        `json:"active,omitempty"`
	Disabled bool        `json:"disabled,omitempty"`
}

// Page is the visible slice of the filtered roster plus pagination metadata.
type Page struct {
	Entries       []DirectoryEntry `json:"entries"`
	Letter        LetterFilter     `json:"letter"`
	CurrentPage   int              `json:"current_page"`
	TotalPages    int              `json:"total_pages"`
	TotalEntries  int              `json:"total_entries"`
	PageSize      int              `json:"page_size"`
	HasPrev       bool             `json:"has_prev"`
	HasNext       bool             `json:"has_next"`
	Empty         bool             `json:"empty"` // "no results", not an error
	RosterVersion uint64           `json:"roster_version"`
	Controls      []PageControl    `json:"controls"`
}

// ProfileRequest is what the resolver hands to the profile viewer
type ProfileRequest struct {
	OrdinalID int    `json:"id"`
	Username  string `json:"username"`
	FullPage  bool   `json:"full_page"`
	Overlay   bool   `json:"overlay"`
}
