package model

const (
	// DefaultPageSize is the number of cards per directory page
	DefaultPageSize = 25

	// WindowSize is the maximum number of numbered page buttons
	WindowSize = 5

	// DefaultDeletedPattern marks soft-deleted accounts, e.g. "[Deleted 1a2b]"
	DefaultDeletedPattern = `^\[Deleted`
)

// DefaultReservedUsernames can never appear in the directory.
func DefaultReservedUsernames() []string {
	return []string{
		"admin", "administrator", "moderator", "mod", "system", "support",
		"preset", "junkies", "presetjunkies", "presets", "official",
		"help", "info", "contact", "root", "superuser", "guest",
	}
}
