// Package workspace is the batch entry point for target inference: it
// enumerates phpunit.xml files across the monorepo, derives targets for
// each owning project and persists the memoization store once per batch.
package workspace

import (
	"errors"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"pti/internal/discovery"
	"pti/internal/domain"
	"pti/internal/storage"
	"pti/internal/targets"
)

// ConfigGlob matches PHPUnit configuration files anywhere in the workspace.
const ConfigGlob = "**/phpunit.xml"

// EngineConfig tunes an inference Engine.
type EngineConfig struct {
	// TestFilePattern is the test-file naming convention, e.g. *Test.php.
	TestFilePattern string
	// IgnoreDirs are directory names never searched for configuration
	// files (hidden directories are always skipped).
	IgnoreDirs []string
	// Processors bounds how many configuration files are processed
	// concurrently.
	Processors int
	// NoCache disables the memoization store for the run.
	NoCache bool
}

// Engine runs batch target inference over a workspace.
type Engine struct {
	ctx        *Context
	scanner    *discovery.Scanner
	ignoreDirs map[string]bool
	processors int
	noCache    bool
	logger     zerolog.Logger
	progress   Progress
}

// Progress receives batch completion updates.
type Progress interface {
	Update(completed, projects, skipped int)
	Finish()
}

// NewEngine creates an Engine over ctx.
func NewEngine(ctx *Context, cfg EngineConfig, logger zerolog.Logger) *Engine {
	ignore := make(map[string]bool)
	for _, dir := range cfg.IgnoreDirs {
		ignore[dir] = true
	}
	return &Engine{
		ctx:        ctx,
		scanner:    discovery.NewScanner(cfg.TestFilePattern, cfg.IgnoreDirs),
		ignoreDirs: ignore,
		processors: cfg.Processors,
		noCache:    cfg.NoCache,
		logger:     logger,
	}
}

// SetProgress attaches a progress reporter for Infer.
func (e *Engine) SetProgress(progress Progress) {
	e.progress = progress
}

// Discover enumerates phpunit.xml files under the workspace root, skipping
// ignored and hidden directories. Results are sorted by path.
func (e *Engine) Discover() ([]domain.ConfigFile, error) {
	matches, err := doublestar.Glob(os.DirFS(e.ctx.Root), ConfigGlob)
	if err != nil {
		return nil, &discovery.PatternMatchError{Path: e.ctx.Root, Pattern: ConfigGlob, Err: err}
	}

	var files []domain.ConfigFile
	for _, match := range matches {
		if e.ignored(match) {
			continue
		}
		files = append(files, domain.NewConfigFile(match))
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// Infer derives targets for every configuration file and returns the
// project mapping keyed by project root. Files whose directory lacks a
// package manifest contribute nothing; files that fail contribute their
// error without aborting the rest. The memoization store is persisted
// exactly once, even when individual files failed.
func (e *Engine) Infer(files []domain.ConfigFile, opts targets.Options) (projects map[string]*domain.ProjectDescriptor, err error) {
	normalized := targets.Normalize(opts)

	var store *storage.Store
	if !e.noCache {
		store = storage.Open(storage.FileFor(e.ctx.DataDir, targets.OptionsHash(normalized)))
		defer func() {
			if ferr := store.Flush(); ferr != nil {
				err = errors.Join(err, ferr)
			}
		}()
	}

	builder := targets.NewBuilder(e.ctx.Root, e.ctx.NamedInputs, e.scanner, store, e.logger)
	results := e.processAll(files, builder, normalized)

	projects = make(map[string]*domain.ProjectDescriptor)
	var errs []error
	for _, result := range results {
		if result.err != nil {
			e.logger.Warn().Err(result.err).Str("config", result.file.Path).Msg("target inference failed")
			errs = append(errs, result.err)
			continue
		}
		if result.project != nil {
			projects[result.project.Root] = result.project
		}
	}
	return projects, errors.Join(errs...)
}

// InferWorkspace discovers configuration files and infers targets for all
// of them in one call.
func (e *Engine) InferWorkspace(opts targets.Options) (map[string]*domain.ProjectDescriptor, error) {
	files, err := e.Discover()
	if err != nil {
		return nil, err
	}
	return e.Infer(files, opts)
}

// ignored reports whether any path segment names an ignored or hidden
// directory.
func (e *Engine) ignored(relPath string) bool {
	segments := strings.Split(relPath, "/")
	for _, segment := range segments[:len(segments)-1] {
		if e.ignoreDirs[segment] || strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}
