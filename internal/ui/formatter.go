package ui

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"

	"pti/internal/domain"
)

// Formatter renders inference results for the terminal.
type Formatter struct{}

// NewFormatter creates a new Formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// PrintSummary prints a per-project target summary after a batch run.
func (f *Formatter) PrintSummary(projects map[string]*domain.ProjectDescriptor, duration time.Duration, failures int) {
	roots := sortedRoots(projects)

	fmt.Println()
	for _, root := range roots {
		project := projects[root]
		color.Cyan("%s (%s)", project.Name, project.Root)
		for _, name := range sortedTargetNames(project) {
			target := project.Targets[name]
			if target.Executor != "" {
				fmt.Printf("  %s  %s\n", color.GreenString(name), color.New(color.Faint).Sprintf("(%d deps)", len(target.DependsOn)))
				continue
			}
			fmt.Printf("  %s  %s\n", color.GreenString(name), color.New(color.Faint).Sprint(target.Command))
		}
	}

	fmt.Println()
	color.Green("✓ %d project(s) in %s", len(projects), duration.Round(time.Millisecond))
	if failures > 0 {
		color.Red("✗ %d configuration file(s) failed", failures)
	}
}

// PrintConfigList prints discovered configuration files with their project
// status.
func (f *Formatter) PrintConfigList(files []domain.ConfigFile, hasManifest func(domain.ConfigFile) bool) {
	for _, file := range files {
		if hasManifest(file) {
			fmt.Printf("%s %s\n", color.GreenString("●"), file.Path)
		} else {
			fmt.Printf("%s %s %s\n", color.YellowString("○"), file.Path, color.New(color.Faint).Sprint("(no manifest)"))
		}
	}
	fmt.Fprintf(os.Stderr, "\n%d configuration file(s)\n", len(files))
}

// PrintTargetList prints every inferred target name grouped by project.
func (f *Formatter) PrintTargetList(projects map[string]*domain.ProjectDescriptor) {
	for _, root := range sortedRoots(projects) {
		project := projects[root]
		color.Cyan(project.Name)
		for _, name := range sortedTargetNames(project) {
			fmt.Printf("  %s\n", name)
		}
	}
}

func sortedRoots(projects map[string]*domain.ProjectDescriptor) []string {
	roots := make([]string, 0, len(projects))
	for root := range projects {
		roots = append(roots, root)
	}
	sort.Strings(roots)
	return roots
}

func sortedTargetNames(project *domain.ProjectDescriptor) []string {
	names := make([]string, 0, len(project.Targets))
	for name := range project.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
