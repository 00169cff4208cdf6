package config

const (
	// DefaultWorkspaceRoot is the default workspace root
	DefaultWorkspaceRoot = "."
	// DefaultDataDir is the workspace-relative directory for persisted caches
	DefaultDataDir = ".pti/workspace-data"
	// DefaultTargetName is the default name of the test target
	DefaultTargetName = "test"
	// DefaultCiTargetName is the default name of the CI aggregator target
	DefaultCiTargetName = "test-ci"
	// DefaultTestFilePattern is the test-file naming convention
	DefaultTestFilePattern = "*Test.php"
	// DefaultProcessors is the default number of concurrent workers
	DefaultProcessors = 4
)

// DefaultPathsToIgnore are the directory names never searched for
// configuration files.
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"storage",
	"public",
}
