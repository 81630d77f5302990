package utils

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	scriptSchemeRe = regexp.MustCompile(`(?i)^(javascript|vbscript):`)
	safeDataURLRe  = regexp.MustCompile(`(?i)^data:image/(png|jpeg|jpg|gif|webp);base64,`)
)

// SanitizeAvatarRef returns ref if it is safe to render, otherwise "".
// Accepted forms: http(s) URLs, base64 raster data URLs, and bare object
// keys (no scheme) that the storage layer resolves later.
func SanitizeAvatarRef(ref string) string {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return ""
	}

	if scriptSchemeRe.MatchString(trimmed) {
		return ""
	}

	if strings.HasPrefix(strings.ToLower(trimmed), "data:") {
		if safeDataURLRe.MatchString(trimmed) {
			return trimmed
		}
		return ""
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return ""
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return ""
		}
		return trimmed
	case "":
		// protocol-relative refs ("//host/x.png") are not object keys
		if u.Host != "" {
			return ""
		}
		return trimmed
	}
	return ""
}

// IsObjectKey reports whether a sanitized ref points into object storage
// rather than at a URL.
func IsObjectKey(ref string) bool {
	if ref == "" {
		return false
	}
	lower := strings.ToLower(ref)
	return !strings.HasPrefix(lower, "http://") &&
		!strings.HasPrefix(lower, "https://") &&
		!strings.HasPrefix(lower, "data:")
}
