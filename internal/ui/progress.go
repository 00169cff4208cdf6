package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar reports batch inference progress over configuration files.
// It implements workspace.Progress.
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a progress bar sized to the number of discovered
// configuration files.
func NewProgressBar(count int) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(
			color.CyanString("Inferring targets: ")+
				color.GreenString("[projects: 0")+
				" | "+
				color.YellowString("skipped: 0]"),
		),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

// Update advances the bar with the counts of emitted projects and
// manifest-less skips.
func (p *ProgressBar) Update(completed, projects, skipped int) {
	p.bar.Set(completed)
	p.bar.Describe(
		color.CyanString("Inferring targets: ") +
			color.GreenString("[projects: %d", projects) +
			" | " +
			color.YellowString("skipped: %d]", skipped),
	)
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}
