package presentation

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"csvcopy/internal/config"
	"csvcopy/internal/domain"
	appErrors "csvcopy/internal/errors"
)

const labelWidth = 15

// Printer renders run output. Per-file failures and fatal errors go to
// ErrWriter even when Quiet is set; everything else is suppressed by Quiet.
type Printer struct {
	Writer    io.Writer
	ErrWriter io.Writer
	Quiet     bool

	out styles
	err styles
}

func NewPrinter(writer, errWriter io.Writer, quiet bool) *Printer {
	return &Printer{
		Writer:    writer,
		ErrWriter: errWriter,
		Quiet:     quiet,
		out:       newStyles(lipgloss.NewRenderer(writer)),
		err:       newStyles(lipgloss.NewRenderer(errWriter)),
	}
}

func (p *Printer) PrintHeader(cfg config.Config) {
	if p.Quiet {
		return
	}
	rows := [][2]string{
		{"CSV file", strconv.Quote(cfg.ManifestPath)},
		{"Column to read", strconv.Quote(cfg.Column)},
		{"Source directory", strconv.Quote(cfg.SourceDir)},
		{"Destination directory", strconv.Quote(cfg.TargetDir)},
		{"Overwrite existing", strconv.FormatBool(cfg.Overwrite)},
		{"Dry Run", strconv.FormatBool(cfg.DryRun)},
	}
	for _, row := range rows {
		fmt.Fprintf(p.Writer, "%s %s\n", p.out.label.Render(row[0]+":"), row[1])
	}
	fmt.Fprintln(p.Writer)
}

// OnResult prints the status line for one file.
func (p *Printer) OnResult(result domain.Result) {
	if result.IsFailure() {
		fmt.Fprintln(p.ErrWriter, formatResult(result, p.err))
		return
	}
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.Writer, formatResult(result, p.out))
}

func (p *Printer) PrintSummary(summary domain.Summary, dryRun bool) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.Writer)
	fmt.Fprintln(p.Writer, p.out.title.Render("Operation complete"))
	fmt.Fprintln(p.Writer, renderSummaryTable(summaryRows(summary, dryRun)))
}

// PrintError reports a fatal error; it is never suppressed.
func (p *Printer) PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(p.ErrWriter, p.err.failed.Render("error:"), appErrors.UserMessage(err))
}

// formatResult renders "<outcome> "<filename>"" plus the reason when there is one.
func formatResult(result domain.Result, st styles) string {
	label := fmt.Sprintf("%-*s", labelWidth, result.Outcome.String())
	line := st.forOutcome(result.Outcome).Render(label) + " " + st.file.Render(strconv.Quote(result.Filename))

	switch result.Outcome {
	case domain.Failed:
		if result.Reason != "" {
			line += ": " + result.Reason
		}
	case domain.Simulated:
		if result.Reason != "" {
			line += " " + st.muted.Render("("+result.Reason+")")
		}
	}
	return line
}

func summaryRows(summary domain.Summary, dryRun bool) [][]string {
	copied := []string{"Copied", strconv.Itoa(summary.Copied)}
	if dryRun {
		copied = []string{"Would copy", strconv.Itoa(summary.Simulated)}
	}
	rows := [][]string{copied}
	if summary.SkippedExists > 0 {
		rows = append(rows, []string{"Already exist in destination", strconv.Itoa(summary.SkippedExists)})
	}
	if summary.Failed > 0 {
		rows = append(rows, []string{"Failed", strconv.Itoa(summary.Failed)})
	}
	if summary.Blank > 0 {
		rows = append(rows, []string{"Blank rows ignored", strconv.Itoa(summary.Blank)})
	}
	return rows
}
