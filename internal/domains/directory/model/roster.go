package model

import (
	"slices"
	"time"
)

// Source names which adapter produced a roster
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
	SourceEmpty    Source = "empty" // neither adapter produced data
)

// Roster is an immutable, versioned snapshot of the whole directory.
// Entries are stored in final sort order, so entry i carries OrdinalID i+1.
type Roster struct {
	Version uint64
	Source  Source
	BuiltAt time.Time

	entries []DirectoryEntry
}

// NewRoster takes ownership of entries, which must already be sorted and numbered.
func NewRoster(version uint64, source Source, builtAt time.Time, entries []DirectoryEntry) *Roster {
	if entries == nil {
		entries = []DirectoryEntry{}
	}
	return &Roster{
		Version: version,
		Source:  source,
		BuiltAt: builtAt,
		entries: entries,
	}
}

// EmptyRoster is the roster visible before the first load.
func EmptyRoster() *Roster {
	return NewRoster(0, SourceEmpty, time.Time{}, nil)
}

// Len returns the number of entries
func (r *Roster) Len() int {
	return len(r.entries)
}

// Entries returns a copy of all entries in roster order.
func (r *Roster) Entries() []DirectoryEntry {
	return slices.Clone(r.entries)
}

// Filter returns the entries accepted by keep, preserving roster order.
func (r *Roster) Filter(keep func(DirectoryEntry) bool) []DirectoryEntry {
	out := make([]DirectoryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Lookup finds an entry by ordinal across the full roster.
func (r *Roster) Lookup(ordinalID int) (DirectoryEntry, bool) {
	if ordinalID < 1 || ordinalID > len(r.entries) {
		return DirectoryEntry{}, false
	}
	return r.entries[ordinalID-1], true
}

// Summary describes the roster without its entries
func (r *Roster) Summary() RosterSummary {
	return RosterSummary{
		Version: r.Version,
		Source:  r.Source,
		BuiltAt: r.BuiltAt,
		Total:   len(r.entries),
	}
}

// RosterSummary is returned by the load endpoint
type RosterSummary struct {
	Version uint64    `json:"version"`
	Source  Source    `json:"source"`
	BuiltAt time.Time `json:"built_at"`
	Total   int       `json:"total"`
}
