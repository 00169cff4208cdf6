// Package targets derives build-engine targets from PHPUnit configuration
// files: one default test target per project, optionally one target per
// discovered test file, and an aggregator depending on all of them.
package targets

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"pti/internal/discovery"
	"pti/internal/domain"
	"pti/internal/phpunit"
	"pti/internal/storage"
)

// Builder derives the target set for single configuration files. A Builder
// is safe for concurrent use across distinct config files.
type Builder struct {
	workspaceRoot string
	namedInputs   map[string][]string
	scanner       *discovery.Scanner
	memo          *storage.Store
	logger        zerolog.Logger
}

// NewBuilder creates a Builder rooted at workspaceRoot. namedInputs are
// the host build engine's named-input groups; memo may be nil to disable
// memoization.
func NewBuilder(workspaceRoot string, namedInputs map[string][]string, scanner *discovery.Scanner, memo *storage.Store, logger zerolog.Logger) *Builder {
	return &Builder{
		workspaceRoot: workspaceRoot,
		namedInputs:   namedInputs,
		scanner:       scanner,
		memo:          memo,
		logger:        logger,
	}
}

// Build derives the full target set for one configuration file. It returns
// (nil, nil) when the owning directory has no package manifest: the file
// is assumed to belong to a non-project directory such as a fixture.
func (b *Builder) Build(file domain.ConfigFile, opts NormalizedOptions) (*domain.ProjectDescriptor, error) {
	projectDir := projectDirOf(b.workspaceRoot, file.ProjectRoot)

	manifestData, err := os.ReadFile(filepath.Join(projectDir, ManifestName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			b.logger.Debug().Str("config", file.Path).Msg("no package manifest, skipping")
			return nil, nil
		}
		return nil, fmt.Errorf("read manifest for %s: %w", file.Path, err)
	}
	name, ok := projectName(manifestData)
	if !ok {
		b.logger.Warn().Str("config", file.Path).Msg("unreadable package manifest, skipping")
		return nil, nil
	}
	if name == "" {
		name = path.Base(path.Join(filepath.ToSlash(b.workspaceRoot), file.ProjectRoot))
	}

	configData, err := os.ReadFile(filepath.Join(b.workspaceRoot, filepath.FromSlash(file.Path)))
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", file.Path, err)
	}

	key := contentHash(file.ProjectRoot, opts, configData, manifestData)
	if b.memo != nil {
		if entry, ok := b.memo.Get(key); ok {
			b.logger.Debug().Str("project", name).Msg("target cache hit")
			return descriptor(name, file.ProjectRoot, entry), nil
		}
	}

	parsed, err := phpunit.Parse(configData, file.Path)
	if err != nil {
		return nil, err
	}

	entry, err := b.derive(file, parsed, opts)
	if err != nil {
		return nil, err
	}

	if b.memo != nil {
		b.memo.Put(key, entry)
	}
	return descriptor(name, file.ProjectRoot, entry), nil
}

// derive runs the uncached core: base target, optional per-file CI targets
// and their aggregator.
func (b *Builder) derive(file domain.ConfigFile, parsed *phpunit.ParsedConfiguration, opts NormalizedOptions) (storage.Entry, error) {
	testOutput := parsed.CacheResultFile
	if testOutput == "" {
		testOutput = DefaultTestOutput
	}
	coverageOutput := parsed.CoverageCacheDirectory
	inputs := []string{"default", b.dependencyInput()}
	cwd := domain.TargetOptions{Cwd: file.ProjectRoot}

	base := domain.Target{
		Command:     Command,
		Options:     cwd,
		Cache:       true,
		Inputs:      inputs,
		Outputs:     ComputeOutputs(testOutput, coverageOutput, b.workspaceRoot, file.ProjectRoot, ""),
		Parallelism: true,
		Metadata: &domain.TargetMetadata{
			Technologies: []string{"phpunit"},
			Description:  "Runs PHPUnit tests",
			Help: &domain.TargetHelp{
				Command: Command + " --help",
				Example: Command + " --filter UserTest",
			},
		},
	}

	entry := storage.Entry{Targets: map[string]domain.Target{opts.TargetName: base}}
	if opts.CiTargetName == "" {
		return entry, nil
	}

	suiteDir := projectDirOf(b.workspaceRoot, file.ProjectRoot)
	if parsed.SuiteDirectory != "" {
		suiteDir = filepath.Join(suiteDir, filepath.FromSlash(parsed.SuiteDirectory))
	}
	testFiles, err := b.scanner.Scan(suiteDir)
	if err != nil {
		return storage.Entry{}, fmt.Errorf("discover test files for %s: %w", file.Path, err)
	}

	var dependencies []domain.TargetDependency
	var group []string
	for _, testFile := range testFiles {
		rel, err := filepath.Rel(projectDirOf(b.workspaceRoot, file.ProjectRoot), testFile)
		if err != nil {
			return storage.Entry{}, fmt.Errorf("relativize %s: %w", testFile, err)
		}
		rel = filepath.ToSlash(rel)

		targetName := opts.CiTargetName + "--" + rel
		entry.Targets[targetName] = domain.Target{
			Command:     Command + " " + rel,
			Options:     cwd,
			Cache:       true,
			Inputs:      inputs,
			Outputs:     ComputeOutputs(testOutput, coverageOutput, b.workspaceRoot, file.ProjectRoot, subfolderToken(rel)),
			Parallelism: true,
			Metadata: &domain.TargetMetadata{
				Technologies: []string{"phpunit"},
				Description:  "Runs PHPUnit tests in " + rel,
				Help: &domain.TargetHelp{
					Command: Command + " --help",
					Example: Command + " " + rel,
				},
			},
		}
		dependencies = append(dependencies, domain.TargetDependency{Target: targetName, Params: "forward"})
		group = append(group, targetName)
	}

	entry.Targets[opts.CiTargetName] = domain.Target{
		Executor:    NoopExecutor,
		Options:     cwd,
		Cache:       base.Cache,
		Inputs:      base.Inputs,
		Outputs:     base.Outputs,
		Parallelism: true,
		DependsOn:   dependencies,
		Metadata: &domain.TargetMetadata{
			Technologies:      []string{"phpunit"},
			Description:       "Runs PHPUnit tests in CI",
			NonAtomizedTarget: opts.TargetName,
			Help: &domain.TargetHelp{
				Command: Command + " --help",
				Example: Command,
			},
		},
	}
	group = append(group, opts.CiTargetName)
	entry.Metadata = &domain.ProjectMetadata{
		TargetGroups: map[string][]string{CiGroupLabel: group},
	}
	return entry, nil
}

// dependencyInput picks the named-input category used for upstream
// dependency hashing. The check is shallow key existence only: when the
// workspace defines a "production" group, dependency inputs use it so
// test-only files upstream stay out of the cache key.
func (b *Builder) dependencyInput() string {
	if _, ok := b.namedInputs["production"]; ok {
		return "^production"
	}
	return "^default"
}

// subfolderToken turns a project-relative file path into a filesystem-safe
// subfolder name. Slashes and dots collapse to hyphens; distinct paths can
// in principle collide (e.g. a/bTest.php and a-bTest.php) and no
// disambiguating suffix is added.
func subfolderToken(rel string) string {
	return strings.NewReplacer("/", "-", ".", "-").Replace(rel)
}

func projectDirOf(workspaceRoot, projectRoot string) string {
	return filepath.Join(workspaceRoot, filepath.FromSlash(projectRoot))
}

func descriptor(name, root string, entry storage.Entry) *domain.ProjectDescriptor {
	return &domain.ProjectDescriptor{
		Name:     name,
		Root:     root,
		Targets:  entry.Targets,
		Metadata: entry.Metadata,
	}
}
