package domain

import "path"

// ConfigFile identifies one phpunit.xml discovered in the workspace.
// Both paths are workspace-relative and use forward slashes.
type ConfigFile struct {
	Path        string // path to the phpunit.xml file
	ProjectRoot string // containing directory, "." for the workspace root
}

// NewConfigFile derives the owning project root from a config file path.
func NewConfigFile(relPath string) ConfigFile {
	return ConfigFile{
		Path:        relPath,
		ProjectRoot: path.Dir(relPath),
	}
}
