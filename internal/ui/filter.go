package ui

import (
	"path/filepath"
	"strings"

	"trp/internal/domain"
)

// FilterFailures narrows a failure list by a title pattern. Patterns support
// * and ? wildcards ("*checkout*", "login ?") and fall back to a substring
// match when no wildcard is present.
func FilterFailures(failures []domain.TestOutcome, pattern string) []domain.TestOutcome {
	if pattern == "" {
		return failures
	}

	var filtered []domain.TestOutcome

	for _, failure := range failures {
		title := failure.Title

		matched, err := filepath.Match(pattern, title)
		if err == nil && matched {
			filtered = append(filtered, failure)
			continue
		}

		// Patterns like "*checkout*" where filepath.Match is too strict:
		// every non-empty part between wildcards must appear in the title.
		if strings.Contains(pattern, "*") {
			parts := strings.Split(pattern, "*")
			allMatch := true
			hasNonEmpty := false
			for _, part := range parts {
				if part == "" {
					continue
				}
				hasNonEmpty = true
				if !strings.Contains(title, part) {
					allMatch = false
					break
				}
			}
			if allMatch && hasNonEmpty {
				filtered = append(filtered, failure)
			}
			continue
		}

		if !strings.Contains(pattern, "?") && strings.Contains(title, pattern) {
			filtered = append(filtered, failure)
		}
	}

	return filtered
}
