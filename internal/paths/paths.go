// Package paths normalizes output paths into the portable token form the
// host build engine expects: paths inside a project are expressed against
// {projectRoot}, paths escaping it against {workspaceRoot}. Tokens always
// use forward slashes regardless of OS.
package paths

import (
	"path"
	"path/filepath"
	"strings"
)

const (
	// ProjectRootToken prefixes outputs that stay inside the project.
	ProjectRootToken = "{projectRoot}"
	// WorkspaceRootToken prefixes outputs that escape the project root.
	WorkspaceRootToken = "{workspaceRoot}"
)

// ResolveOutput resolves candidate relative to projectRoot and rewrites it
// as a portable token path. Outputs that stay inside the project root are
// expressed against {projectRoot}; anything that climbs out of it is
// expressed against {workspaceRoot} instead. projectRoot is given relative
// to workspaceRoot ("." for the workspace itself).
func ResolveOutput(candidate, workspaceRoot, projectRoot string) string {
	projAbs := filepath.Join(workspaceRoot, filepath.FromSlash(projectRoot))
	resolved := filepath.Join(projAbs, filepath.FromSlash(candidate))

	if rel, err := filepath.Rel(projAbs, resolved); err == nil && !escapes(rel) {
		return joinToken(ProjectRootToken, rel)
	}
	rel, err := filepath.Rel(workspaceRoot, resolved)
	if err != nil {
		rel = resolved
	}
	return joinToken(WorkspaceRootToken, rel)
}

// WithSubfolder namespaces an output path under subfolder. When the path
// ends in a file (has an extension) the subfolder is inserted before the
// file name; otherwise it is appended as a new segment. Empty subfolder is
// a no-op.
func WithSubfolder(output, subfolder string) string {
	if subfolder == "" {
		return output
	}
	if path.Ext(output) != "" {
		dir, file := path.Split(output)
		return dir + subfolder + "/" + file
	}
	return output + "/" + subfolder
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func joinToken(token, rel string) string {
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return token
	}
	return token + "/" + rel
}
