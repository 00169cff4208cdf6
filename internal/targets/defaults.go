package targets

const (
	// DefaultTargetName is the default name of the test-run target.
	DefaultTargetName = "test"
	// DefaultCiTargetName is the default name of the aggregator target.
	DefaultCiTargetName = "test-ci"
	// DefaultTestOutput is where PHPUnit caches test results when the
	// configuration declares no cacheResultFile.
	DefaultTestOutput = ".phpunit.cache/test-results"
	// Command is the fixed test-runner invocation.
	Command = "vendor/bin/phpunit"
	// NoopExecutor marks the aggregator target, which exists only to
	// declare dependencies on the per-file targets.
	NoopExecutor = "pti:noop"
	// CiGroupLabel is the display label grouping CI-related targets.
	CiGroupLabel = "Test (CI)"
	// ManifestName is the package-manifest marker a directory needs to
	// count as a project.
	ManifestName = "composer.json"
)
