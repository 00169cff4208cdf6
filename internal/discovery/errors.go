package discovery

import "fmt"

// DirectoryNotFoundError reports a declared test-suite directory that does
// not exist on disk.
type DirectoryNotFoundError struct {
	Path string
}

func (e *DirectoryNotFoundError) Error() string {
	return fmt.Sprintf("test directory does not exist: %s", e.Path)
}

// PatternMatchError reports an invalid file-matching pattern, surfaced with
// the path being matched when it failed.
type PatternMatchError struct {
	Path    string
	Pattern string
	Err     error
}

func (e *PatternMatchError) Error() string {
	return fmt.Sprintf("invalid file pattern %q while matching %s: %v", e.Pattern, e.Path, e.Err)
}

func (e *PatternMatchError) Unwrap() error { return e.Err }
