package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters discovered files by name pattern.
type Filter struct{}

// NewFilter creates a new Filter.
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters file paths by base-name pattern using wildcard
// matching. Supports patterns like "*login*" or "checkout.feature"; a
// pattern without wildcards falls back to a substring match.
func (f *Filter) FilterByName(files []string, pat string) []string {
	if pat == "" {
		return files
	}

	var filtered []string
	for _, file := range files {
		name := filepath.Base(file)

		if matched, err := filepath.Match(pat, name); err == nil && matched {
			filtered = append(filtered, file)
			continue
		}

		if strings.ContainsAny(pat, "*?") {
			if containsAllParts(name, pat) {
				filtered = append(filtered, file)
			}
			continue
		}

		if strings.Contains(name, pat) {
			filtered = append(filtered, file)
		}
	}
	return filtered
}

// containsAllParts checks that every non-wildcard segment of the pattern
// appears in the name, so "*login*steps*" matches loosely.
func containsAllParts(name, pat string) bool {
	parts := strings.FieldsFunc(pat, func(r rune) bool { return r == '*' || r == '?' })
	if len(parts) == 0 {
		return false
	}
	for _, p := range parts {
		if !strings.Contains(name, p) {
			return false
		}
	}
	return true
}
