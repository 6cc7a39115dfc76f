package config

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"
	"gitlab.com/tozd/go/errors"
)

const (
	DefaultColumn    = "filename"
	DefaultDelimiter = ','
)

type Config struct {
	ManifestPath string
	SourceDir    string
	TargetDir    string
	Column       string
	Delimiter    rune
	Quiet        bool
	Overwrite    bool
	DryRun       bool
	Verbose      bool
	Progress     bool
}

// Options holds raw flag values until the positionals are known.
type Options struct {
	Column    string
	Delimiter string
	Quiet     bool
	Overwrite bool
	DryRun    bool
	Verbose   bool
	Progress  bool
}

// Bind registers every flag on fs and returns the Options they populate.
func Bind(fs *pflag.FlagSet) *Options {
	opts := &Options{}
	fs.StringVarP(&opts.Column, "column-name", "c", DefaultColumn, "Column to read from the CSV file")
	fs.StringVarP(&opts.Delimiter, "delimiter", "d", string(DefaultDelimiter), `Field delimiter of the CSV file ("\t" or "tab" for TSV)`)
	fs.BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress program output (failures are still reported)")
	fs.BoolVarP(&opts.Overwrite, "overwrite", "o", false, "Overwrite file if it already exists in destination (default: skip file)")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Don't copy files, just print what would've been copied")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "Write debug diagnostics to stderr")
	fs.BoolVar(&opts.Progress, "progress", false, "Show an interactive progress view when attached to a terminal")
	return opts
}

// Finalize validates the positional arguments and builds the Config.
func (o *Options) Finalize(args []string) (Config, error) {
	names := []string{"csv_file", "source_dir", "target_dir"}
	if len(args) < len(names) {
		return Config{}, errors.Errorf("missing required argument(s): %s", strings.Join(names[len(args):], ", "))
	}
	if len(args) > len(names) {
		return Config{}, errors.Errorf("unexpected argument(s): %s", strings.Join(args[len(names):], " "))
	}
	for i, name := range names {
		if strings.TrimSpace(args[i]) == "" {
			return Config{}, errors.Errorf("%s must not be empty", name)
		}
	}

	column := strings.TrimSpace(o.Column)
	if column == "" {
		return Config{}, errors.New("column name must not be empty")
	}

	delim, err := ParseDelimiter(o.Delimiter)
	if err != nil {
		return Config{}, err
	}

	return Config{
		ManifestPath: args[0],
		SourceDir:    args[1],
		TargetDir:    args[2],
		Column:       column,
		Delimiter:    delim,
		Quiet:        o.Quiet,
		Overwrite:    o.Overwrite,
		DryRun:       o.DryRun,
		Verbose:      o.Verbose,
		Progress:     o.Progress,
	}, nil
}

// Parse parses a full argument list. A help request is returned as
// pflag.ErrHelp.
func Parse(args []string) (Config, error) {
	fs := pflag.NewFlagSet("csvcopy", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := Bind(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return Config{}, pflag.ErrHelp
		}
		return Config{}, errors.WithStack(err)
	}
	return opts.Finalize(fs.Args())
}

func ParseDelimiter(value string) (rune, error) {
	switch value {
	case `\t`, "tab", "\t":
		return '\t', nil
	case "":
		return 0, errors.New("delimiter must not be empty")
	}
	r, size := utf8.DecodeRuneInString(value)
	if size != len(value) || r == utf8.RuneError {
		return 0, errors.Errorf("delimiter must be a single character, got %q", value)
	}
	if r == '"' || r == '\r' || r == '\n' {
		return 0, errors.Errorf("delimiter %q is not allowed", value)
	}
	return r, nil
}
