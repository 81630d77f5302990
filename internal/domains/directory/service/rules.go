package service

import (
	"fmt"
	"regexp"
	"strings"

	"directory-backend/internal/shared/utils"
)

// NameRules decides which usernames may appear in the directory.
type NameRules struct {
	reserved  map[string]struct{}
	isDeleted func(username string) bool
}

// NewNameRules compiles the soft-deleted marker pattern. An empty pattern
// disables the soft-delete check.
func NewNameRules(reserved []string, deletedPattern string) (*NameRules, error) {
	rules := &NameRules{
		reserved:  make(map[string]struct{}, len(reserved)),
		isDeleted: func(string) bool { return false },
	}

	for _, name := range reserved {
		if key := utils.CanonicalUsername(name); key != "" {
			rules.reserved[key] = struct{}{}
		}
	}

	if deletedPattern != "" {
		re, err := regexp.Compile(deletedPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid soft-deleted pattern: %w", err)
		}
		rules.isDeleted = func(username string) bool {
			return re.MatchString(strings.TrimSpace(username))
		}
	}

	return rules, nil
}

// Allowed reports whether username can be listed
func (r *NameRules) Allowed(username string) bool {
	key := utils.UsernameKey(username)
	if key == "" {
		return false
	}
	if _, reserved := r.reserved[utils.CanonicalUsername(username)]; reserved {
		return false
	}
	return !r.isDeleted(username)
}
