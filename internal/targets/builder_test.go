package targets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pti/internal/discovery"
	"pti/internal/domain"
	"pti/internal/storage"
)

func writeWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return root
}

func newTestBuilder(root string, namedInputs map[string][]string, memo *storage.Store) *Builder {
	scanner := discovery.NewScanner("*Test.php", nil)
	return NewBuilder(root, namedInputs, scanner, memo, zerolog.Nop())
}

func disabledCi() Options {
	empty := ""
	return Options{CiTargetName: &empty}
}

func TestBuild_DefaultTargetOnly(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"apps/api/composer.json": `{"name": "acme/api"}`,
		"apps/api/phpunit.xml":   `<phpunit cacheResultFile="custom/out.cache"/>`,
	})

	builder := newTestBuilder(root, nil, nil)
	project, err := builder.Build(domain.NewConfigFile("apps/api/phpunit.xml"), Normalize(disabledCi()))
	require.NoError(t, err)
	require.NotNil(t, project)

	assert.Equal(t, "acme/api", project.Name)
	assert.Equal(t, "apps/api", project.Root)
	require.Len(t, project.Targets, 1)

	test := project.Targets["test"]
	assert.Equal(t, Command, test.Command)
	assert.Equal(t, "apps/api", test.Options.Cwd)
	assert.True(t, test.Cache)
	assert.Equal(t, []string{"default", "^default"}, test.Inputs)
	assert.Equal(t, []string{"{projectRoot}/custom/out.cache"}, test.Outputs)
	assert.Nil(t, project.Metadata)
}

func TestBuild_ProductionNamedInputs(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"apps/api/composer.json": `{"name": "acme/api"}`,
		"apps/api/phpunit.xml":   `<phpunit/>`,
	})

	namedInputs := map[string][]string{
		"default":    {"{projectRoot}/**/*"},
		"production": {"!{projectRoot}/tests/**/*"},
	}
	builder := newTestBuilder(root, namedInputs, nil)
	project, err := builder.Build(domain.NewConfigFile("apps/api/phpunit.xml"), Normalize(disabledCi()))
	require.NoError(t, err)

	assert.Equal(t, []string{"default", "^production"}, project.Targets["test"].Inputs)
	assert.Equal(t, []string{"{projectRoot}/.phpunit.cache/test-results"}, project.Targets["test"].Outputs)
}

func TestBuild_AtomizedCiTargets(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"apps/api/composer.json":            `{"name": "acme/api"}`,
		"apps/api/phpunit.xml":              `<phpunit><testsuites><testsuite name="Unit" directory="tests"/></testsuites></phpunit>`,
		"apps/api/tests/FooTest.php":        "<?php",
		"apps/api/tests/sub/BarTest.php":    "<?php",
		"apps/api/tests/sub/not_a_test.php": "<?php",
	})

	builder := newTestBuilder(root, nil, nil)
	project, err := builder.Build(domain.NewConfigFile("apps/api/phpunit.xml"), Normalize(Options{}))
	require.NoError(t, err)
	require.NotNil(t, project)

	require.Len(t, project.Targets, 4)
	foo := project.Targets["test-ci--tests/FooTest.php"]
	assert.Equal(t, Command+" tests/FooTest.php", foo.Command)
	assert.Equal(t, []string{"{projectRoot}/.phpunit.cache/test-results/tests-FooTest-php"}, foo.Outputs)

	bar := project.Targets["test-ci--tests/sub/BarTest.php"]
	assert.Equal(t, Command+" tests/sub/BarTest.php", bar.Command)

	agg := project.Targets["test-ci"]
	assert.Empty(t, agg.Command)
	assert.Equal(t, NoopExecutor, agg.Executor)
	assert.Equal(t, project.Targets["test"].Inputs, agg.Inputs)
	assert.Equal(t, project.Targets["test"].Outputs, agg.Outputs)
	assert.Equal(t, []domain.TargetDependency{
		{Target: "test-ci--tests/FooTest.php", Params: "forward"},
		{Target: "test-ci--tests/sub/BarTest.php", Params: "forward"},
	}, agg.DependsOn)
	require.NotNil(t, agg.Metadata)
	assert.Equal(t, "test", agg.Metadata.NonAtomizedTarget)

	require.NotNil(t, project.Metadata)
	assert.Equal(t, []string{
		"test-ci--tests/FooTest.php",
		"test-ci--tests/sub/BarTest.php",
		"test-ci",
	}, project.Metadata.TargetGroups[CiGroupLabel])
}

func TestBuild_CoverageOutputsEverywhere(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"apps/api/composer.json":     `{"name": "acme/api"}`,
		"apps/api/phpunit.xml":       `<phpunit><coverage cacheDirectory="coverage"/><testsuites><testsuite name="Unit" directory="tests"/></testsuites></phpunit>`,
		"apps/api/tests/FooTest.php": "<?php",
	})

	builder := newTestBuilder(root, nil, nil)
	project, err := builder.Build(domain.NewConfigFile("apps/api/phpunit.xml"), Normalize(Options{}))
	require.NoError(t, err)

	for name, target := range project.Targets {
		assert.Contains(t, target.Outputs, "{projectRoot}/coverage", "target %s", name)
		assert.Len(t, target.Outputs, 2, "target %s", name)
	}
}

func TestBuild_SkipsWithoutManifest(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"fixtures/phpunit.xml": `<phpunit/>`,
	})

	builder := newTestBuilder(root, nil, nil)
	project, err := builder.Build(domain.NewConfigFile("fixtures/phpunit.xml"), Normalize(Options{}))
	require.NoError(t, err)
	assert.Nil(t, project)
}

func TestBuild_Memoization(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"apps/api/composer.json":     `{"name": "acme/api"}`,
		"apps/api/phpunit.xml":       `<phpunit><testsuites><testsuite name="Unit" directory="tests"/></testsuites></phpunit>`,
		"apps/api/tests/FooTest.php": "<?php",
	})
	file := domain.NewConfigFile("apps/api/phpunit.xml")
	opts := Normalize(Options{})

	memo := storage.Open(filepath.Join(t.TempDir(), "targets-test.json"))
	cached := newTestBuilder(root, nil, memo)

	first, err := cached.Build(file, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, memo.Len())

	second, err := cached.Build(file, opts)
	require.NoError(t, err)
	assert.Equal(t, first, second, "memoization must not alter output")

	uncached, err := newTestBuilder(root, nil, nil).Build(file, opts)
	require.NoError(t, err)
	assert.Equal(t, first, uncached, "cache is an optimization, not a source of truth")
}

// Subfolder tokens are not injective: slashes and dots both collapse to
// hyphens, so distinct relative paths can share an output subfolder. The
// target names themselves stay unique. This pins the known behavior.
func TestBuild_SubfolderTokenCollision(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"apps/api/composer.json":       `{"name": "acme/api"}`,
		"apps/api/phpunit.xml":         `<phpunit><testsuites><testsuite name="Unit" directory="tests"/></testsuites></phpunit>`,
		"apps/api/tests/a/bTest.php":   "<?php",
		"apps/api/tests/a-bTest.php":   "<?php",
	})

	builder := newTestBuilder(root, nil, nil)
	project, err := builder.Build(domain.NewConfigFile("apps/api/phpunit.xml"), Normalize(Options{}))
	require.NoError(t, err)

	nested := project.Targets["test-ci--tests/a/bTest.php"]
	flat := project.Targets["test-ci--tests/a-bTest.php"]
	require.NotEmpty(t, nested.Outputs)
	assert.Equal(t, nested.Outputs, flat.Outputs)
}
