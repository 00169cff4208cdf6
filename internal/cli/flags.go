package cli

import "pti/internal/config"

// Flags holds command-line flags
type Flags struct {
	WorkspaceRoot string
	TargetName    string
	CiTargetName  string
	NoAtomize     bool
	NoCache       bool
	Processors    int
	Filter        string
	Output        string
	JSON          bool
	Targets       bool
	Verbose       bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		WorkspaceRoot: f.WorkspaceRoot,
		TargetName:    f.TargetName,
		CiTargetName:  f.CiTargetName,
		NoAtomize:     f.NoAtomize,
		NoCache:       f.NoCache,
		Processors:    f.Processors,
		Filter:        f.Filter,
		Output:        f.Output,
		JSON:          f.JSON,
		Targets:       f.Targets,
		Verbose:       f.Verbose,
	}
}
