package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"csvcopy/internal/domain"
)

// maxFailuresShown bounds the failure list kept on screen.
const maxFailuresShown = 5

type Phase int

const (
	PhaseCopying Phase = iota
	PhaseDone
	PhaseError
)

type (
	ResultMsg struct {
		Result domain.Result
	}
	DoneMsg struct {
		Summary domain.Summary
		Err     error
	}
)

type Config struct {
	SourceDir string
	TargetDir string
	DryRun    bool
	// Total is the number of non-blank manifest rows, or 0 when unknown.
	Total int
}

type Model struct {
	config      Config
	Phase       Phase
	Summary     domain.Summary
	Err         error
	Interrupted bool

	spinner  spinner.Model
	progress progress.Model
	current  string
	failures []domain.Result
	width    int
}

func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseCopying,
		spinner:  s,
		progress: p,
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = max(10, min(msg.Width-20, 60))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Interrupted = m.Phase == PhaseCopying
			return m, tea.Quit
		}

	case ResultMsg:
		m.Summary.Add(msg.Result)
		m.current = msg.Result.Filename
		if msg.Result.IsFailure() {
			m.failures = append(m.failures, msg.Result)
			if len(m.failures) > maxFailuresShown {
				m.failures = m.failures[len(m.failures)-maxFailuresShown:]
			}
		}
		return m, nil

	case DoneMsg:
		m.Summary.Blank = msg.Summary.Blank
		m.Err = msg.Err
		m.Phase = PhaseDone
		if msg.Err != nil {
			m.Phase = PhaseError
		}
		return m, tea.Quit

	case spinner.TickMsg:
		if m.Phase == PhaseCopying {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// Percent is the share of known rows already processed.
func (m Model) Percent() float64 {
	if m.config.Total <= 0 {
		return 0
	}
	return min(1, float64(m.Summary.Processed())/float64(m.config.Total))
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.Phase {
	case PhaseCopying:
		b.WriteString(m.renderProgress())
	case PhaseDone:
		b.WriteString(successStyle.Render(iconCopied + " Done"))
		b.WriteString("\n")
	case PhaseError:
		b.WriteString(errorStyle.Render(fmt.Sprintf("%s Error: %v", iconError, m.Err)))
		b.WriteString("\n")
	}

	b.WriteString(m.renderCounts())
	b.WriteString(m.renderFailures())

	if m.Phase == PhaseCopying {
		b.WriteString(helpStyle.Render("Press q to stop after the current file"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHeader() string {
	title := "Copying files"
	if m.config.DryRun {
		title = "Dry run, nothing will be written"
	}
	return fmt.Sprintf("%s\n%s\n%s\n",
		titleStyle.Render(title),
		pathStyle.Render(fmt.Sprintf("%s Source: %s", iconFolder, m.config.SourceDir)),
		pathStyle.Render(fmt.Sprintf("%s Target: %s", iconFolder, m.config.TargetDir)),
	)
}

func (m Model) renderProgress() string {
	var b strings.Builder
	processed := m.Summary.Processed()
	if m.config.Total > 0 {
		fmt.Fprintf(&b, "%s %s\n\n", m.spinner.View(), countStyle.Render(fmt.Sprintf("%d/%d files", processed, m.config.Total)))
		fmt.Fprintf(&b, "  %s\n", m.progress.ViewAs(m.Percent()))
	} else {
		fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), countStyle.Render(fmt.Sprintf("%d files", processed)))
	}
	if m.current != "" {
		fmt.Fprintf(&b, "\n  %s %s\n", iconArrow, fileNameStyle.Render(m.current))
	}
	return b.String()
}

func (m Model) renderCounts() string {
	first := successStyle.Render(fmt.Sprintf("%s %d copied", iconCopied, m.Summary.Copied))
	if m.config.DryRun {
		first = dryRunStyle.Render(fmt.Sprintf("%s %d would copy", iconDryRun, m.Summary.Simulated))
	}
	return fmt.Sprintf("\n  %s  %s  %s\n",
		first,
		skippedStyle.Render(fmt.Sprintf("%s %d skipped", iconSkipped, m.Summary.SkippedExists)),
		errorStyle.Render(fmt.Sprintf("%s %d failed", iconError, m.Summary.Failed)),
	)
}

func (m Model) renderFailures() string {
	if len(m.failures) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Recent failures"))
	b.WriteString("\n")
	for _, f := range m.failures {
		fmt.Fprintf(&b, "  %s %s: %s\n", errorStyle.Render(iconError), fileNameStyle.Render(f.Filename), f.Reason)
	}
	return b.String()
}
