package model

// DirectoryEntry is one reconciled user of the roster.
// OrdinalID is only valid for the roster that produced the entry.
type DirectoryEntry struct {
	OrdinalID int    `json:"id"`
	SourceID  string `json:"source_id,omitempty"` // remote path only
	Username  string `json:"username"`
	AvatarRef string `json:"avatar,omitempty"`

	// Derived statistics (fallback path only, 0 on the remote path)
	UploadCount   int `json:"uploads"`
	LikeTotal     int `json:"likes"`
	FollowerCount int `json:"followers"`

	// Implicit is set when the user only appears as an item uploader
	Implicit bool `json:"implicit,omitempty"`
}

// Engagement is the ranking score used by fallback rosters.
func (e DirectoryEntry) Engagement() int {
	return e.LikeTotal + e.FollowerCount
}

// HasAvatar reports whether the UI should render an image instead of the placeholder.
func (e DirectoryEntry) HasAvatar() bool {
	return e.AvatarRef != ""
}
