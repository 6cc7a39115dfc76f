package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "csvcopy/internal/errors"
)

type cliTestEnv struct {
	base     string
	manifest string
	source   string
	target   string
}

func setupCLITestEnv(t *testing.T, manifest string, sources map[string]string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		base:     base,
		manifest: filepath.Join(base, "files.csv"),
		source:   filepath.Join(base, "source"),
		target:   filepath.Join(base, "target"),
	}
	require.NoError(t, os.Mkdir(env.source, 0o755))
	require.NoError(t, os.Mkdir(env.target, 0o755))
	require.NoError(t, os.WriteFile(env.manifest, []byte(manifest), 0o644))
	for name, content := range sources {
		require.NoError(t, os.WriteFile(filepath.Join(env.source, name), []byte(content), 0o644))
	}
	return env
}

func (e *cliTestEnv) run(t *testing.T, flags ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args := append(flags, e.manifest, e.source, e.target)
	code := execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func (e *cliTestEnv) targetFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.target)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}

func (e *cliTestEnv) readTarget(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(e.target, name))
	require.NoError(t, err)
	return string(b)
}

func statusLines(output, label string) []string {
	var out []string
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, label+" ") {
			out = append(out, line)
		}
	}
	return out
}

func TestCopiesAllListedFiles(t *testing.T) {
	env := setupCLITestEnv(t, "filename\na.txt\nb.txt\n", map[string]string{"a.txt": "A", "b.txt": "B"})

	code, stdout, stderr := env.run(t)

	assert.Equal(t, 0, code, stderr)
	assert.Len(t, statusLines(stdout, "copied"), 2)
	assert.Equal(t, []string{"a.txt", "b.txt"}, env.targetFiles(t))
	assert.Equal(t, "A", env.readTarget(t, "a.txt"))
	assert.Contains(t, stdout, "Operation complete")
}

func TestSkipsExistingDestination(t *testing.T) {
	env := setupCLITestEnv(t, "filename\na.txt\nb.txt\n", map[string]string{"a.txt": "A", "b.txt": "B"})
	require.NoError(t, os.WriteFile(filepath.Join(env.target, "a.txt"), []byte("old"), 0o644))

	code, stdout, _ := env.run(t)

	assert.Equal(t, 0, code)
	skipped := statusLines(stdout, "skipped-exists")
	require.Len(t, skipped, 1)
	assert.Contains(t, skipped[0], `"a.txt"`)
	copied := statusLines(stdout, "copied")
	require.Len(t, copied, 1)
	assert.Contains(t, copied[0], `"b.txt"`)
	assert.Equal(t, "old", env.readTarget(t, "a.txt"))
}

func TestMissingSourceFailsRun(t *testing.T) {
	env := setupCLITestEnv(t, "filename\na.txt\nb.txt\n", map[string]string{"a.txt": "A"})

	code, stdout, stderr := env.run(t)

	assert.Equal(t, appErrors.ExitFailure, code)
	assert.Len(t, statusLines(stdout, "copied"), 1)
	assert.Len(t, statusLines(stderr, "failed"), 1)
	assert.Contains(t, stderr, `"b.txt"`)
	assert.Equal(t, []string{"a.txt"}, env.targetFiles(t))
}

func TestOverwriteReplacesContent(t *testing.T) {
	env := setupCLITestEnv(t, "filename\na.txt\n", map[string]string{"a.txt": "fresh"})
	require.NoError(t, os.WriteFile(filepath.Join(env.target, "a.txt"), []byte("stale"), 0o644))

	code, _, _ := env.run(t, "--overwrite")

	assert.Equal(t, 0, code)
	assert.Equal(t, "fresh", env.readTarget(t, "a.txt"))
}

func TestDryRunLeavesTargetUntouched(t *testing.T) {
	env := setupCLITestEnv(t, "filename\na.txt\nb.txt\n", map[string]string{"a.txt": "A", "b.txt": "B"})
	require.NoError(t, os.WriteFile(filepath.Join(env.target, "b.txt"), []byte("old"), 0o644))
	before := env.targetFiles(t)

	code, stdout, _ := env.run(t, "--dry-run", "-o")

	assert.Equal(t, 0, code)
	assert.Equal(t, before, env.targetFiles(t))
	assert.Equal(t, "old", env.readTarget(t, "b.txt"))
	lines := statusLines(stdout, "simulated")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "dry run")
}

func TestSecondRunSkipsCopiedFiles(t *testing.T) {
	env := setupCLITestEnv(t, "filename\na.txt\nb.txt\n", map[string]string{"a.txt": "A", "b.txt": "B"})

	code, first, _ := env.run(t)
	require.Equal(t, 0, code)
	code, second, _ := env.run(t)

	assert.Equal(t, 0, code)
	assert.Len(t, statusLines(first, "copied"), 2)
	assert.Len(t, statusLines(second, "skipped-exists"), 2)
	assert.Empty(t, statusLines(second, "copied"))
}

func TestStatusLinesMatchNonBlankRows(t *testing.T) {
	env := setupCLITestEnv(t, "id,filename\n1,a.txt\n2,\n3,  \n4,b.txt\n", map[string]string{"a.txt": "A", "b.txt": "B"})

	code, stdout, _ := env.run(t)

	assert.Equal(t, 0, code)
	assert.Len(t, statusLines(stdout, "copied"), 2)
	assert.Contains(t, stdout, "Blank rows ignored")
}

func TestMissingColumnCopiesNothing(t *testing.T) {
	env := setupCLITestEnv(t, "name\na.txt\n", map[string]string{"a.txt": "A"})

	code, _, stderr := env.run(t)

	assert.Equal(t, appErrors.ExitFailure, code)
	assert.Contains(t, stderr, `column "filename" does not exist`)
	assert.Empty(t, env.targetFiles(t))
}

func TestCustomColumnAndDelimiter(t *testing.T) {
	env := setupCLITestEnv(t, "id\tpath\n1\ta.txt\n", map[string]string{"a.txt": "A"})

	code, _, stderr := env.run(t, "-c", "path", "-d", "tab")

	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, []string{"a.txt"}, env.targetFiles(t))
}

func TestQuietPrintsOnlyFailures(t *testing.T) {
	env := setupCLITestEnv(t, "filename\na.txt\nb.txt\n", map[string]string{"a.txt": "A"})

	code, stdout, stderr := env.run(t, "-q")

	assert.Equal(t, appErrors.ExitFailure, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `"b.txt"`)
	assert.NotContains(t, stderr, `"a.txt"`)
}

func TestQuietSuccessIsSilent(t *testing.T) {
	env := setupCLITestEnv(t, "filename\na.txt\n", map[string]string{"a.txt": "A"})

	code, stdout, stderr := env.run(t, "--quiet")

	assert.Equal(t, 0, code)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestMissingDirectoryIsNotFound(t *testing.T) {
	env := setupCLITestEnv(t, "filename\na.txt\n", map[string]string{"a.txt": "A"})
	require.NoError(t, os.RemoveAll(env.target))

	code, _, stderr := env.run(t)

	assert.Equal(t, appErrors.ExitFailure, code)
	assert.Contains(t, stderr, "Path not found")
}

func TestTargetMustBeDirectory(t *testing.T) {
	env := setupCLITestEnv(t, "filename\na.txt\n", map[string]string{"a.txt": "A"})
	require.NoError(t, os.RemoveAll(env.target))
	require.NoError(t, os.WriteFile(env.target, []byte("file"), 0o644))

	code, _, stderr := env.run(t)

	assert.Equal(t, appErrors.ExitFailure, code)
	assert.Contains(t, stderr, "not a directory")
}

func TestMissingManifestIsNotFound(t *testing.T) {
	env := setupCLITestEnv(t, "filename\n", nil)
	require.NoError(t, os.Remove(env.manifest))

	code, _, stderr := env.run(t)

	assert.Equal(t, appErrors.ExitFailure, code)
	assert.Contains(t, stderr, "Path not found")
}

func TestUsageErrors(t *testing.T) {
	cases := map[string][]string{
		"missing positionals": {"only.csv"},
		"unknown flag":        {"--bogus", "a.csv", "src", "dst"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := execute(context.Background(), args, &stdout, &stderr)

			assert.Equal(t, appErrors.ExitUsage, code)
			assert.Contains(t, stderr.String(), "Usage:")
		})
	}
}

func TestHelpExitsZero(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), []string{"-h"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "--column-name")
	assert.Contains(t, stdout.String(), "--dry-run")
}

func TestHeaderEchoesConfiguration(t *testing.T) {
	env := setupCLITestEnv(t, "filename\n", nil)

	code, stdout, _ := env.run(t)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, `Column to read: "filename"`)
	assert.Contains(t, stdout, "Dry Run: false")
}
