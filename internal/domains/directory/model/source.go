package model

import (
	"time"

	"github.com/google/uuid"
)

// =====================================================
// REMOTE SOURCE RECORDS
// =====================================================

// ProfileRecord is one row of the remote profile store.
type ProfileRecord struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	AvatarURL     *string   `json:"avatar_url"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// =====================================================
// LOCAL (FALLBACK) SOURCE RECORDS
// =====================================================

// Category buckets content items in the local cache
type Category string

const (
	CategoryPresets   Category = "presets"
	CategorySamples   Category = "samples"
	CategoryMIDI      Category = "midi"
	CategoryProjects  Category = "projects"
	CategoryOriginals Category = "originals"
)

// AllCategories returns the buckets read by the fallback adapter, in read order.
func AllCategories() []Category {
	return []Category{
		CategoryPresets,
		CategorySamples,
		CategoryMIDI,
		CategoryProjects,
		CategoryOriginals,
	}
}

// IsValid kiểm tra category có nằm trong danh sách đã biết không
func (c Category) IsValid() bool {
	switch c {
	case CategoryPresets, CategorySamples, CategoryMIDI, CategoryProjects, CategoryOriginals:
		return true
	}
	return false
}

// Item is a cached content item attributed to an uploader.
type Item struct {
	Uploader string   `json:"uploader"`
	Category Category `json:"category"`
	Hearts   *int     `json:"hearts,omitempty"`
}

// HeartCount treats a missing or negative count as zero.
func (i Item) HeartCount() int {
	if i.Hearts == nil || *i.Hearts < 0 {
		return 0
	}
	return *i.Hearts
}

// Registrant is a username known to the local cache.
// Implicit registrants were never registered and only appear as uploaders.
type Registrant struct {
	Username string
	Implicit bool
}

// LocalSnapshot is everything the fallback adapter read in one pass.
// Map keys are usernames exactly as stored (case-sensitive).
type LocalSnapshot struct {
	Registrants []Registrant
	Items       []Item
	Avatars     map[string]string
	Followers   map[string]int
}

// IsEmpty reports whether the snapshot can produce any entry at all.
func (s *LocalSnapshot) IsEmpty() bool {
	return s == nil || len(s.Registrants) == 0
}
