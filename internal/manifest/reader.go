// Package manifest reads the delimited file that lists the filenames to copy.
package manifest

import (
	"encoding/csv"
	"io"
	"iter"
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"

	appErrors "csvcopy/internal/errors"
)

const utf8BOM = "\ufeff"

// Entry is one data row reduced to the configured column.
type Entry struct {
	// Line is the 1-based line of the row in the manifest file.
	Line     int
	Filename string
}

// Reader yields entries lazily in file order. It cannot be rewound;
// reopen the file to start over.
type Reader struct {
	path    string
	column  string
	file    *os.File
	csv     *csv.Reader
	columns []string
	index   int
}

// Open opens path, reads the header row and resolves column.
func Open(path, column string, delimiter rune) (*Reader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.NotFound, "open manifest", path, err)
	}
	if info.IsDir() {
		return nil, appErrors.Wrap(appErrors.NotFound, "open manifest", path, errors.New("is a directory"))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.NotFound, "open manifest", path, err)
	}

	r := &Reader{
		path:   path,
		column: column,
		file:   file,
		csv:    newCSVReader(file, delimiter),
	}
	if err := r.readHeader(); err != nil {
		_ = file.Close()
		return nil, err
	}
	return r, nil
}

func newCSVReader(src io.Reader, delimiter rune) *csv.Reader {
	cr := csv.NewReader(src)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return appErrors.Wrap(appErrors.Schema, "read header", r.path, errors.New("manifest is empty, expected a header row"))
	}
	if err != nil {
		return appErrors.Wrap(appErrors.Schema, "read header", r.path, errors.Errorf("parsing header: %w", err))
	}

	columns := make([]string, len(header))
	copy(columns, header)
	if len(columns) > 0 {
		columns[0] = strings.TrimPrefix(columns[0], utf8BOM)
	}

	index := -1
	// Later duplicates win, matching a dict built from the header.
	for i, name := range columns {
		if name == r.column {
			index = i
		}
	}
	if index < 0 {
		return appErrors.Wrap(appErrors.Schema, "read header", r.path,
			errors.Errorf("column %q does not exist (available: %s)", r.column, strings.Join(columns, ", ")))
	}

	r.columns = columns
	r.index = index
	return nil
}

// Columns returns the header row as parsed.
func (r *Reader) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Next returns the next entry, or io.EOF once the manifest is exhausted.
// A row too short to contain the column yields an empty filename.
func (r *Reader) Next() (Entry, error) {
	record, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return Entry{}, io.EOF
	}
	if err != nil {
		return Entry{}, appErrors.Wrap(appErrors.Schema, "read row", r.path, errors.Errorf("parsing manifest: %w", err))
	}

	line, _ := r.csv.FieldPos(0)
	entry := Entry{Line: line}
	if r.index < len(record) {
		entry.Filename = record[r.index]
	}
	return entry, nil
}

// All ranges over the remaining entries. Iteration stops after the first
// error, which is yielded with a zero Entry.
func (r *Reader) All() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for {
			entry, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(entry, err) || err != nil {
				return
			}
		}
	}
}

func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// Count reopens path and returns how many rows carry a non-blank value in
// column. It is used to size progress displays before the real pass.
func Count(path, column string, delimiter rune) (int, error) {
	r, err := Open(path, column, delimiter)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	n := 0
	for entry, err := range r.All() {
		if err != nil {
			return n, err
		}
		if strings.TrimSpace(entry.Filename) != "" {
			n++
		}
	}
	return n, nil
}
