package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"gitlab.com/tozd/go/errors"

	"csvcopy/internal/app"
	"csvcopy/internal/domain"
	"csvcopy/internal/logging"
)

// WorkFunc runs the copy loop, reporting each result to observer.
type WorkFunc func(ctx context.Context, observer app.Observer) (domain.Summary, error)

type outcome struct {
	summary domain.Summary
	err     error
}

// Run shows the progress view on output while work runs in its own
// goroutine. Quitting the view cancels work before the next file.
func Run(ctx context.Context, cfg Config, output io.Writer, work WorkFunc, opts ...tea.ProgramOption) (domain.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts = append([]tea.ProgramOption{tea.WithOutput(output), tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(NewModel(cfg), opts...)

	done := make(chan outcome, 1)
	go func() {
		summary, err := work(ctx, app.ObserverFunc(func(result domain.Result) {
			program.Send(ResultMsg{Result: result})
		}))
		done <- outcome{summary: summary, err: err}
		program.Send(DoneMsg{Summary: summary, Err: err})
	}()

	final, runErr := program.Run()
	if model, ok := final.(Model); ok && model.Interrupted {
		logging.FromContext(ctx).Debug().Msg("progress view closed, stopping after the current file")
		cancel()
	}
	res := <-done

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return res.summary, errors.Errorf("progress view: %w", runErr)
	}
	return res.summary, res.err
}
