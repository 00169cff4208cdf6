package domain

// Target is a named, schedulable unit of work consumed by the host build
// engine. Targets are pure data; pti only derives them.
type Target struct {
	Command     string             `json:"command,omitempty"`
	Executor    string             `json:"executor,omitempty"`
	Options     TargetOptions      `json:"options"`
	Cache       bool               `json:"cache"`
	Inputs      []string           `json:"inputs,omitempty"`
	Outputs     []string           `json:"outputs,omitempty"`
	Parallelism bool               `json:"parallelism"`
	DependsOn   []TargetDependency `json:"dependsOn,omitempty"`
	Metadata    *TargetMetadata    `json:"metadata,omitempty"`
}

// TargetOptions holds per-target execution options.
type TargetOptions struct {
	Cwd string `json:"cwd"`
}

// TargetDependency references another target by name. Params controls
// whether caller-supplied parameters are forwarded to the dependency.
type TargetDependency struct {
	Target string `json:"target"`
	Params string `json:"params,omitempty"`
}

// TargetMetadata is display-only information attached to a target.
type TargetMetadata struct {
	Technologies      []string    `json:"technologies,omitempty"`
	Description       string      `json:"description,omitempty"`
	Help              *TargetHelp `json:"help,omitempty"`
	NonAtomizedTarget string      `json:"nonAtomizedTarget,omitempty"`
}

// TargetHelp describes how to invoke the underlying tool by hand.
type TargetHelp struct {
	Command string `json:"command,omitempty"`
	Example string `json:"example,omitempty"`
}
