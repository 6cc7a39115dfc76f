package app

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"

	"csvcopy/internal/domain"
	"csvcopy/internal/logging"
	"csvcopy/internal/manifest"
)

const (
	reasonEscapes      = "path escapes directory"
	reasonNoSource     = "source file not found"
	reasonPathTooLong  = "path too long for the destination"
	reasonDryRunSuffix = "dry run, nothing written"
)

type Executor struct {
	FS        FileSystem
	SourceDir string
	TargetDir string
	Overwrite bool
	DryRun    bool
	Observer  Observer
	Logger    logging.Logger
}

// Run processes entries in order until the source is exhausted. Per-file
// failures are recorded in the summary; only a manifest read error or a
// cancelled context stops the run early.
func (e *Executor) Run(ctx context.Context, entries EntrySource) (domain.Summary, error) {
	var summary domain.Summary
	if e.FS == nil {
		return summary, errors.New("executor requires FS")
	}

	stop := e.Logger.Measure("Copying files")
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		entry, err := entries.Next()
		if errors.Is(err, io.EOF) {
			return summary, nil
		}
		if err != nil {
			return summary, err
		}

		if strings.TrimSpace(entry.Filename) == "" {
			e.Logger.Verbosef("line %d: blank filename, ignoring", entry.Line)
			summary.Blank++
			continue
		}

		result := e.Process(entry)
		summary.Add(result)
		if e.Observer != nil {
			e.Observer.OnResult(result)
		}
	}
}

// Process resolves one non-blank entry to its terminal outcome.
func (e *Executor) Process(entry manifest.Entry) domain.Result {
	result := domain.Result{
		Line:     entry.Line,
		Filename: entry.Filename,
	}

	name := filepath.FromSlash(entry.Filename)
	if !filepath.IsLocal(name) {
		return fail(result, reasonEscapes, nil)
	}
	result.SourcePath = filepath.Join(e.SourceDir, name)
	result.TargetPath = filepath.Join(e.TargetDir, name)

	exists, err := e.FS.Exists(result.TargetPath)
	if err != nil {
		return fail(result, "checking destination", err)
	}
	if exists && !e.Overwrite {
		e.Logger.Verbosef("%s: destination exists, skipping", result.TargetPath)
		result.Outcome = domain.SkippedExists
		return result
	}

	srcExists, err := e.FS.Exists(result.SourcePath)
	if err != nil {
		return fail(result, "checking source", err)
	}
	if !srcExists {
		return fail(result, reasonNoSource, nil)
	}

	if !e.FS.PathLengthOK(result.TargetPath) {
		return fail(result, reasonPathTooLong, nil)
	}

	if e.DryRun {
		result.Outcome = domain.Simulated
		result.Reason = reasonDryRunSuffix
		return result
	}

	if err := e.FS.CopyFile(result.SourcePath, result.TargetPath); err != nil {
		return fail(result, "copying", err)
	}
	e.Logger.Verbosef("copied %s -> %s", result.SourcePath, result.TargetPath)
	result.Outcome = domain.Copied
	return result
}

func fail(result domain.Result, reason string, err error) domain.Result {
	result.Outcome = domain.Failed
	result.Reason = reason
	if err != nil {
		result.Err = err
		result.Reason = reason + ": " + err.Error()
	}
	return result
}
