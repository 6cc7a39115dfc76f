package fs

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gitlab.com/tozd/go/errors"
)

// maxPath is the classic Windows MAX_PATH limit.
const maxPath = 260

var (
	renameFunc = os.Rename

	longPaths = sync.OnceValue(longPathsEnabled)
)

type OSFS struct{}

func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (OSFS) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// PathLengthOK reports whether path can be written on this system. Only
// Windows without LongPathsEnabled has a limit.
func (OSFS) PathLengthOK(path string) bool {
	if longPaths() {
		return true
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return len(abs) < maxPath
}

// CopyFile copies src to dst through a temporary file in dst's directory,
// so dst is either untouched or complete. The parent of dst must exist.
func (OSFS) CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return errors.Errorf("%s is not a regular file", src)
	}

	dir := filepath.Dir(dst)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, srcFile); err != nil {
		return errors.Errorf("writing %s: %w", dst, err)
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil && runtime.GOOS != "windows" {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := renameFunc(tmpName, dst); err != nil {
		return err
	}
	committed = true

	_ = syncDirBestEffort(dir)
	return nil
}

func syncDirBestEffort(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
