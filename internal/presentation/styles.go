package presentation

import (
	"github.com/charmbracelet/lipgloss"

	"csvcopy/internal/domain"
)

var (
	copiedColor  = lipgloss.Color("#85DCB0")
	skippedColor = lipgloss.Color("#9CA3AF")
	dryRunColor  = lipgloss.Color("#E8A87C")
	errorColor   = lipgloss.Color("#E85D75")
	mutedColor   = lipgloss.Color("#6B7280")
)

// styles are bound to a renderer so colour follows the destination writer.
type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	file    lipgloss.Style
	muted   lipgloss.Style
	copied  lipgloss.Style
	skipped lipgloss.Style
	dryRun  lipgloss.Style
	failed  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true),
		label:   r.NewStyle().Foreground(mutedColor),
		file:    r.NewStyle(),
		muted:   r.NewStyle().Foreground(mutedColor).Italic(true),
		copied:  r.NewStyle().Foreground(copiedColor).Bold(true),
		skipped: r.NewStyle().Foreground(skippedColor),
		dryRun:  r.NewStyle().Foreground(dryRunColor),
		failed:  r.NewStyle().Foreground(errorColor).Bold(true),
	}
}

func (s styles) forOutcome(o domain.Outcome) lipgloss.Style {
	switch o {
	case domain.Copied:
		return s.copied
	case domain.SkippedExists:
		return s.skipped
	case domain.Simulated:
		return s.dryRun
	default:
		return s.failed
	}
}
