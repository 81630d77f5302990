package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// UsernameKey trả về key dùng để so khớp username không phân biệt hoa thường.
// Invisible characters are stripped and the name is lower-cased. No folding
// beyond that, so "straße" and "strasse" stay distinct users.
func UsernameKey(name string) string {
	// cases.Caser is stateful, never share one between goroutines
	return cases.Lower(language.Und).String(stripInvisible(name))
}

// CanonicalUsername is the screening key for reserved names. NFKC also folds
// look-alike forms ("Ａdmin" -> "admin") so they cannot dodge the reserved list.
func CanonicalUsername(name string) string {
	return cases.Fold().String(stripInvisible(norm.NFKC.String(name)))
}

// IsBlankUsername reports whether name has no visible characters.
func IsBlankUsername(name string) bool {
	return stripInvisible(name) == ""
}

func stripInvisible(name string) string {
	s := strings.Map(func(r rune) rune {
		if isInvisible(r) {
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(s)
}

func isInvisible(r rune) bool {
	switch {
	case r >= 0x200B && r <= 0x200F,
		r >= 0x2060 && r <= 0x206F:
		return true
	}
	switch r {
	case 0xFEFF, 0x00AD, 0x034F, 0x061C, 0x115F, 0x1160,
		0x17B4, 0x17B5, 0x180E, 0x3164, 0xFFA0:
		return true
	}
	return unicode.Is(unicode.Cf, r)
}
