package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"csvcopy/internal/config"
	appErrors "csvcopy/internal/errors"
	"csvcopy/internal/presentation"
)

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var opts *config.Options

	cmd := &cobra.Command{
		Use:           "csvcopy [flags] csv_file source_dir target_dir",
		Short:         "Copy files based on the contents of a CSV file",
		Long:          "Reads a column of filenames from csv_file and copies each named file from source_dir into target_dir.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if _, err := opts.Finalize(args); err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "arguments", "", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.Finalize(args)
			if err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "arguments", "", err)
			}
			return run(cmd.Context(), cfg, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return appErrors.Wrap(appErrors.InvalidConfig, "flags", "", err)
	})
	opts = config.Bind(cmd.Flags())

	return cmd
}

// execute runs the command and maps the outcome to a process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return appErrors.ExitOK
	}
	if appErrors.Is(err, appErrors.CopyFailure) {
		// Already reported file by file.
		return appErrors.ExitFailure
	}

	presentation.NewPrinter(stdout, stderr, true).PrintError(err)
	if appErrors.KindOf(err) == appErrors.InvalidConfig {
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return appErrors.ExitCode(err)
}
