package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"inopush/internal/publish"
)

var (
	success     = lipgloss.Color("#8BC34A")
	warning     = lipgloss.Color("#FFC107")
	destructive = lipgloss.Color("#e53935")
	muted       = lipgloss.Color("#7a8699")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3"))
	okStyle     = lipgloss.NewStyle().Foreground(success)
	warnStyle   = lipgloss.NewStyle().Foreground(warning)
	failStyle   = lipgloss.NewStyle().Foreground(destructive)
	mutedStyle  = lipgloss.NewStyle().Foreground(muted)
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

// outcomeStyle picks the color of an outcome label.
func outcomeStyle(o publish.Outcome) lipgloss.Style {
	switch {
	case o == publish.OutcomePublished || o == publish.OutcomeReadmeWritten:
		return okStyle
	case o.Failed():
		return failStyle
	default:
		return warnStyle
	}
}

// renderReport formats a run report as a per-folder table followed by totals.
func renderReport(r *publish.Report) string {
	var b strings.Builder

	title := "Publish summary"
	if r.DryRun {
		title += " (dry run)"
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	if r.RunID != "" {
		b.WriteString(mutedStyle.Render("run " + r.RunID))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	nameWidth := len("folder")
	for _, res := range r.Results {
		if n := len(res.Project.Name); n > nameWidth {
			nameWidth = n
		}
	}
	folderCell := cellStyle.Width(nameWidth + 2)

	for _, res := range r.Results {
		detail := res.Name
		if res.CloneURL != "" {
			detail = res.CloneURL
		}
		if res.NameFallback {
			detail += " (fallback name)"
		}
		if res.Err != nil {
			detail = res.Err.Error()
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top,
			folderCell.Render(res.Project.Name),
			cellStyle.Width(20).Inherit(outcomeStyle(res.Outcome)).Render(string(res.Outcome)),
			mutedStyle.Render(detail),
		)
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	counts := r.Counts()
	var totals []string
	for _, o := range publish.Outcomes {
		if n := counts[o]; n > 0 {
			totals = append(totals, outcomeStyle(o).Render(fmt.Sprintf("%s: %d", o, n)))
		}
	}
	b.WriteString(strings.Join(totals, "  "))
	b.WriteString("\n")
	return b.String()
}
