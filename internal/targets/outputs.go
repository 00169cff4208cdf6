package targets

import "pti/internal/paths"

// ComputeOutputs returns the normalized output paths a target produces:
// the subfolder-adjusted test-output path, then the coverage path when one
// was declared. The result is deduplicated and insertion-ordered.
func ComputeOutputs(testOutput, coverageOutput, workspaceRoot, projectRoot, subfolder string) []string {
	outputs := []string{
		paths.WithSubfolder(paths.ResolveOutput(testOutput, workspaceRoot, projectRoot), subfolder),
	}
	if coverageOutput != "" {
		coverage := paths.ResolveOutput(coverageOutput, workspaceRoot, projectRoot)
		if coverage != outputs[0] {
			outputs = append(outputs, coverage)
		}
	}
	return outputs
}
