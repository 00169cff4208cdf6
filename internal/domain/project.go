package domain

// ProjectDescriptor is the per-project result of target inference: the
// project identity plus every target derived from its phpunit.xml.
type ProjectDescriptor struct {
	Name     string            `json:"name"`
	Root     string            `json:"root"`
	Targets  map[string]Target `json:"targets"`
	Metadata *ProjectMetadata  `json:"metadata,omitempty"`
}

// ProjectMetadata groups target names for display. Each group is an
// ordered list of target names under a human-readable label.
type ProjectMetadata struct {
	TargetGroups map[string][]string `json:"targetGroups,omitempty"`
}
