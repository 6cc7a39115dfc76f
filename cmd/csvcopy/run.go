package main

import (
	"context"
	"io"

	"gitlab.com/tozd/go/errors"

	"csvcopy/internal/app"
	"csvcopy/internal/config"
	"csvcopy/internal/domain"
	appErrors "csvcopy/internal/errors"
	"csvcopy/internal/infra/fs"
	"csvcopy/internal/logging"
	"csvcopy/internal/manifest"
	"csvcopy/internal/presentation"
	"csvcopy/internal/tui"
)

// errFilesFailed marks a run whose failures were already reported per file.
var errFilesFailed = errors.Base("one or more files could not be copied")

func run(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	logger := logging.New(stderr, cfg.Verbose)
	ctx = logger.WithContext(ctx)

	printer := presentation.NewPrinter(stdout, stderr, cfg.Quiet)
	printer.PrintHeader(cfg)

	filesystem := fs.OSFS{}
	if err := preflight(filesystem, cfg); err != nil {
		return err
	}

	reader, err := manifest.Open(cfg.ManifestPath, cfg.Column, cfg.Delimiter)
	if err != nil {
		return err
	}
	defer reader.Close()
	logger.Verbosef("manifest columns: %v", reader.Columns())

	executor := &app.Executor{
		FS:        filesystem,
		SourceDir: cfg.SourceDir,
		TargetDir: cfg.TargetDir,
		Overwrite: cfg.Overwrite,
		DryRun:    cfg.DryRun,
		Observer:  printer,
		Logger:    logger,
	}

	var summary domain.Summary
	if useProgress(cfg, stdout) {
		summary, err = runWithProgress(ctx, cfg, stdout, executor, reader, printer, logger)
	} else {
		summary, err = executor.Run(ctx, reader)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return appErrors.Wrap(appErrors.Interrupted, "copy", "", err)
		}
		return err
	}

	printer.PrintSummary(summary, cfg.DryRun)
	if summary.HasFailures() {
		return appErrors.Wrap(appErrors.CopyFailure, "copy", cfg.TargetDir, errFilesFailed)
	}
	return nil
}

// preflight checks every input path before any file is touched.
func preflight(filesystem fs.OSFS, cfg config.Config) error {
	if _, err := filesystem.Stat(cfg.ManifestPath); err != nil {
		return appErrors.Wrap(appErrors.NotFound, "stat", cfg.ManifestPath, err)
	}
	for _, dir := range []string{cfg.SourceDir, cfg.TargetDir} {
		info, err := filesystem.Stat(dir)
		if err != nil {
			return appErrors.Wrap(appErrors.NotFound, "stat", dir, err)
		}
		if !info.IsDir() {
			return appErrors.Wrap(appErrors.NotFound, "stat", dir, errors.New("not a directory"))
		}
	}
	return nil
}

func useProgress(cfg config.Config, stdout io.Writer) bool {
	return cfg.Progress && !cfg.Quiet && logging.IsTerminal(stdout)
}

// runWithProgress hands the terminal to the progress view for the duration
// of the copy and reports failures once it has closed.
func runWithProgress(
	ctx context.Context,
	cfg config.Config,
	stdout io.Writer,
	executor *app.Executor,
	reader *manifest.Reader,
	printer *presentation.Printer,
	logger logging.Logger,
) (domain.Summary, error) {
	total, err := manifest.Count(cfg.ManifestPath, cfg.Column, cfg.Delimiter)
	if err != nil {
		logger.Warn().Err(err).Msg("could not count manifest rows, progress will be indeterminate")
		total = 0
	}

	var failures []domain.Result
	summary, err := tui.Run(ctx, tui.Config{
		SourceDir: cfg.SourceDir,
		TargetDir: cfg.TargetDir,
		DryRun:    cfg.DryRun,
		Total:     total,
	}, stdout, func(ctx context.Context, observer app.Observer) (domain.Summary, error) {
		executor.Observer = app.ObserverFunc(func(result domain.Result) {
			observer.OnResult(result)
			if result.IsFailure() {
				failures = append(failures, result)
			}
		})
		return executor.Run(ctx, reader)
	})

	for _, failure := range failures {
		printer.OnResult(failure)
	}
	return summary, err
}
