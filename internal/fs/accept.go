package fs

import (
	"path/filepath"
	"strings"
)

// acceptPattern is a parsed accept entry with its matching strategy.
type acceptPattern struct {
	pattern string
	glob    bool // true = filepath.Match against the basename; false = extension comparison
}

// AcceptMatcher decides which files may be picked for upload.
// Entries starting with '.' are extensions compared case-insensitively;
// anything else is a glob matched against the lower-cased basename.
// An empty matcher accepts everything.
type AcceptMatcher struct {
	patterns []acceptPattern
}

// NewAcceptMatcher creates an AcceptMatcher from raw entries.
// Blank entries and entries starting with '#' are skipped.
func NewAcceptMatcher(rawPatterns []string) *AcceptMatcher {
	var patterns []acceptPattern
	for _, raw := range rawPatterns {
		raw = strings.ToLower(strings.TrimSpace(raw))
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		patterns = append(patterns, acceptPattern{
			pattern: raw,
			glob:    !strings.HasPrefix(raw, ".") || strings.ContainsAny(raw, "*?["),
		})
	}
	return &AcceptMatcher{patterns: patterns}
}

// Match reports whether the file name is accepted.
func (m *AcceptMatcher) Match(name string) bool {
	if len(m.patterns) == 0 {
		return true
	}

	base := strings.ToLower(filepath.Base(name))
	ext := filepath.Ext(base)

	for _, p := range m.patterns {
		if !p.glob {
			if ext == p.pattern {
				return true
			}
			continue
		}
		matched, err := filepath.Match(p.pattern, base)
		if err != nil {
			// Bad pattern: skip rather than crash.
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// String lists the accepted entries, comma separated.
func (m *AcceptMatcher) String() string {
	parts := make([]string, len(m.patterns))
	for i, p := range m.patterns {
		parts[i] = p.pattern
	}
	return strings.Join(parts, ", ")
}
