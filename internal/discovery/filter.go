package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters discovered paths by name pattern.
type Filter struct{}

// NewFilter creates a new Filter.
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the paths matching pattern. Wildcard patterns use
// filepath.Match semantics against the base name ("*Test.php"); a pattern
// without wildcards matches anywhere in the path. An empty pattern keeps
// everything. Invalid patterns fail with PatternMatchError.
func (f *Filter) FilterByName(candidates []string, pattern string) ([]string, error) {
	if pattern == "" {
		return candidates, nil
	}

	plain := !strings.ContainsAny(pattern, "*?[")
	var filtered []string
	for _, candidate := range candidates {
		if plain {
			if strings.Contains(candidate, pattern) {
				filtered = append(filtered, candidate)
			}
			continue
		}

		name := filepath.Base(candidate)

		matched, err := filepath.Match(pattern, name)
		if err != nil {
			return nil, &PatternMatchError{Path: candidate, Pattern: pattern, Err: err}
		}
		if matched {
			filtered = append(filtered, candidate)
		}
	}

	return filtered, nil
}
