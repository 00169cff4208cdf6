package workspace

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pti/internal/phpunit"
	"pti/internal/targets"
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

func newTestEngine(t *testing.T, root string) *Engine {
	t.Helper()
	ctx, err := NewContext(root, ".pti/workspace-data")
	require.NoError(t, err)
	return NewEngine(ctx, EngineConfig{
		TestFilePattern: "*Test.php",
		IgnoreDirs:      []string{"vendor", "node_modules"},
		Processors:      4,
	}, zerolog.Nop())
}

func TestEngine_Discover(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"phpunit.xml":                     `<phpunit/>`,
		"apps/api/phpunit.xml":            `<phpunit/>`,
		"apps/billing/phpunit.xml":        `<phpunit/>`,
		"vendor/pkg/phpunit.xml":          `<phpunit/>`,
		".git/phpunit.xml":                `<phpunit/>`,
		"apps/api/tests/fixture/note.txt": "not a config",
	})

	engine := newTestEngine(t, root)
	files, err := engine.Discover()
	require.NoError(t, err)

	var paths []string
	for _, file := range files {
		paths = append(paths, file.Path)
	}
	assert.Equal(t, []string{"apps/api/phpunit.xml", "apps/billing/phpunit.xml", "phpunit.xml"}, paths)

	assert.Equal(t, "apps/api", files[0].ProjectRoot)
	assert.Equal(t, ".", files[2].ProjectRoot)
}

func TestEngine_InferWorkspace(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"apps/api/composer.json":         `{"name": "acme/api"}`,
		"apps/api/phpunit.xml":           `<phpunit><testsuites><testsuite name="Unit" directory="tests"/></testsuites></phpunit>`,
		"apps/api/tests/FooTest.php":     "<?php",
		"apps/billing/composer.json":     `{"name": "acme/billing"}`,
		"apps/billing/phpunit.xml":       `<phpunit cacheResultFile="custom/out.cache"/>`,
		"fixtures/phpunit.xml":           `<phpunit/>`,
		"apps/broken/composer.json":      `{"name": "acme/broken"}`,
		"apps/broken/phpunit.xml":        `<phpunit><testsuites></phpunit>`,
	})

	engine := newTestEngine(t, root)
	projects, err := engine.InferWorkspace(targets.Options{})

	// The malformed config fails alone; the rest of the batch survives.
	require.Error(t, err)
	var parseErr *phpunit.ConfigParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "apps/broken/phpunit.xml", parseErr.Path)

	require.Len(t, projects, 2)
	assert.Equal(t, "acme/api", projects["apps/api"].Name)
	assert.Equal(t, "acme/billing", projects["apps/billing"].Name)
	assert.Contains(t, projects["apps/api"].Targets, "test-ci--tests/FooTest.php")
	assert.NotContains(t, projects, "fixtures")

	// Store persistence happens even though one file failed.
	opts := targets.Normalize(targets.Options{})
	storeFile := filepath.Join(root, ".pti", "workspace-data", "targets-"+targets.OptionsHash(opts)+".json")
	if _, statErr := os.Stat(storeFile); statErr != nil {
		t.Fatalf("expected persisted store at %s: %v", storeFile, statErr)
	}
}

func TestEngine_Idempotence(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"apps/api/composer.json":         `{"name": "acme/api"}`,
		"apps/api/phpunit.xml":           `<phpunit><coverage cacheDirectory="coverage"/><testsuites><testsuite name="Unit" directory="tests"/></testsuites></phpunit>`,
		"apps/api/tests/FooTest.php":     "<?php",
		"apps/api/tests/sub/BarTest.php": "<?php",
	})

	engine := newTestEngine(t, root)

	first, err := engine.InferWorkspace(targets.Options{})
	require.NoError(t, err)
	second, err := engine.InferWorkspace(targets.Options{})
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON), "cached rerun must be byte-identical")

	// Clearing the store must not change the result either.
	require.NoError(t, os.RemoveAll(filepath.Join(root, ".pti")))
	cleared, err := engine.InferWorkspace(targets.Options{})
	require.NoError(t, err)
	assert.Equal(t, first, cleared)
}

func TestEngine_OptionsChangeTargetNames(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"apps/api/composer.json": `{"name": "acme/api"}`,
		"apps/api/phpunit.xml":   `<phpunit/>`,
	})

	engine := newTestEngine(t, root)
	projects, err := engine.InferWorkspace(targets.Options{TargetName: "phpunit"})
	require.NoError(t, err)

	require.Contains(t, projects, "apps/api")
	assert.Contains(t, projects["apps/api"].Targets, "phpunit")
	assert.NotContains(t, projects["apps/api"].Targets, "test")
}
