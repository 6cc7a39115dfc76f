package fs

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	ok, err := OSFS{}.Exists(path)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = OSFS{}.Exists(filepath.Join(dir, "missing.txt"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCopyFileCopiesContentAndMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.sh")
	dst := filepath.Join(dir, "out", "dst.sh")
	require.NoError(t, os.Mkdir(filepath.Dir(dst), 0o755))
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\necho hi\n"), 0o750))

	require.NoError(t, OSFS{}.CopyFile(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\necho hi\n", string(got))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(dst)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o750), info.Mode().Perm())
	}
}

func TestCopyFileReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("old content"), 0o644))

	require.NoError(t, OSFS{}.CopyFile(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := OSFS{}.CopyFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCopyFileMissingTargetDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	err := OSFS{}.CopyFile(src, filepath.Join(dir, "missing", "dst.txt"))
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestCopyFileRejectsDirectorySource(t *testing.T) {
	dir := t.TempDir()
	err := OSFS{}.CopyFile(dir, filepath.Join(t.TempDir(), "dst"))
	assert.Error(t, err)
}

func TestCopyFileLeavesNoTempOnRenameFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))
	out := t.TempDir()

	orig := renameFunc
	renameFunc = func(_, _ string) error { return errors.New("rename failed") }
	t.Cleanup(func() { renameFunc = orig })

	err := OSFS{}.CopyFile(src, filepath.Join(out, "dst.txt"))
	require.Error(t, err)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPathLengthOKShortPath(t *testing.T) {
	assert.True(t, OSFS{}.PathLengthOK(filepath.Join(t.TempDir(), "a.txt")))
}

func TestPathLengthOKLongPathOffWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("depends on the LongPathsEnabled registry value")
	}
	long := filepath.Join(t.TempDir(), strings.Repeat("x", 300))
	assert.True(t, OSFS{}.PathLengthOK(long))
}
