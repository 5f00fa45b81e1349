package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/fatih/color"

	"github.com/greaterdiscord/installer/internal/install"
	"github.com/greaterdiscord/installer/internal/messages"
)

const progressWidth = 40

// progressReporter draws the run progress as a single redrawn bar. Without a terminal it
// only prints the final status.
type progressReporter struct {
	out         io.Writer
	interactive bool
	bar         progress.Model
	value       float64
	status      install.Status
	drawn       bool
}

func newProgressReporter(out io.Writer, interactive bool) *progressReporter {
	return &progressReporter{
		out:         out,
		interactive: interactive,
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressWidth)),
		status:      install.StatusInProgress,
	}
}

func (p *progressReporter) Progress(value float64) {
	p.value = value
	p.draw()
}

func (p *progressReporter) Status(status install.Status) {
	p.status = status
	p.draw()
}

func (p *progressReporter) draw() {
	if !p.interactive {
		return
	}
	_, _ = fmt.Fprintf(p.out, messages.ProgressLineFmt, p.bar.ViewAs(p.value/100), statusLabel(p.status))
	p.drawn = true
}

// finish ends the progress line.
func (p *progressReporter) finish() {
	if p.drawn {
		_, _ = fmt.Fprintln(p.out)
		return
	}
	_, _ = fmt.Fprintf(p.out, "%.0f%% %s\n", p.value, statusLabel(p.status))
}

func statusLabel(status install.Status) string {
	switch status {
	case install.StatusSuccess:
		return color.GreenString(messages.StatusSuccess)
	case install.StatusError:
		return color.RedString(messages.StatusError)
	default:
		return color.YellowString(messages.StatusInProgress)
	}
}
