package discovery

import (
	"os"
	"path/filepath"
	"strings"
)

// Scanner walks a directory subtree and yields every file whose name
// matches the test-file convention (default *Test.php).
type Scanner struct {
	pattern  string
	skipDirs map[string]bool
}

// NewScanner creates a Scanner matching file names against pattern and
// skipping the given directory names.
func NewScanner(pattern string, skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{pattern: pattern, skipDirs: skipMap}
}

// Scan finds all matching test files under root. Results come back in
// filesystem enumeration order and the walk is recomputed on every call;
// callers needing a stable order must sort. An existing directory with no
// matches yields an empty result, not an error.
func (s *Scanner) Scan(root string) ([]string, error) {
	var testfiles []string

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, &DirectoryNotFoundError{Path: root}
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if strings.HasPrefix(name, ".") && name != "." && name != ".." {
				return filepath.SkipDir
			}

			if s.skipDirs[name] {
				return filepath.SkipDir
			}

			return nil
		}

		matched, err := filepath.Match(s.pattern, d.Name())
		if err != nil {
			return &PatternMatchError{Path: path, Pattern: s.pattern, Err: err}
		}
		if matched {
			testfiles = append(testfiles, path)
		}

		return nil
	})

	return testfiles, err
}
