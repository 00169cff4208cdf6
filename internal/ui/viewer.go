package ui

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"pti/internal/domain"
)

// TargetViewer browses inferred projects and their targets in an
// interactive TUI: projects and targets on the left, the selected
// target's full definition on the right.
type TargetViewer struct{}

// NewTargetViewer creates a new TargetViewer
func NewTargetViewer() *TargetViewer {
	return &TargetViewer{}
}

type viewerItem struct {
	project *domain.ProjectDescriptor
	target  string // empty for the project heading itself
}

// View opens the browser. Returns once the user quits (q / Esc / Ctrl-C).
func (tv *TargetViewer) View(projects map[string]*domain.ProjectDescriptor) error {
	if len(projects) == 0 {
		color.Yellow("No projects to display")
		return nil
	}

	items := flatten(projects)

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	list.SetBorder(true).SetTitle(" Projects / Targets ")

	detail := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	detail.SetBorder(true).SetTitle(" Target ")

	for _, item := range items {
		if item.target == "" {
			list.AddItem(fmt.Sprintf("[yellow]%s[white] (%s)", item.project.Name, item.project.Root), "", 0, nil)
		} else {
			list.AddItem("  "+item.target, "", 0, nil)
		}
	}

	showDetail := func(index int) {
		if index < 0 || index >= len(items) {
			return
		}
		item := items[index]
		detail.Clear()
		if item.target == "" {
			fmt.Fprint(detail, renderProject(item.project))
			return
		}
		target := item.project.Targets[item.target]
		data, err := json.MarshalIndent(target, "", "  ")
		if err != nil {
			fmt.Fprintf(detail, "[red]%v", err)
			return
		}
		fmt.Fprintf(detail, "[green]%s[white]\n\n%s", item.target, tview.Escape(string(data)))
	}

	list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		showDetail(index)
	})
	showDetail(0)

	flex := tview.NewFlex().
		AddItem(list, 0, 1, true).
		AddItem(detail, 0, 2, false)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEscape, event.Rune() == 'q':
			app.Stop()
			return nil
		}
		return event
	})

	return app.SetRoot(flex, true).Run()
}

// flatten orders projects by root with their targets indented beneath,
// aggregator groups preserved in metadata order when present.
func flatten(projects map[string]*domain.ProjectDescriptor) []viewerItem {
	var items []viewerItem
	for _, root := range sortedRoots(projects) {
		project := projects[root]
		items = append(items, viewerItem{project: project})

		names := make([]string, 0, len(project.Targets))
		for name := range project.Targets {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			items = append(items, viewerItem{project: project, target: name})
		}
	}
	return items
}

func renderProject(project *domain.ProjectDescriptor) string {
	out := fmt.Sprintf("[yellow]%s[white]\nroot: %s\ntargets: %d\n", project.Name, project.Root, len(project.Targets))
	if project.Metadata != nil {
		for label, group := range project.Metadata.TargetGroups {
			out += fmt.Sprintf("\n[yellow]%s[white]\n", label)
			for _, name := range group {
				out += "  " + name + "\n"
			}
		}
	}
	return out
}
