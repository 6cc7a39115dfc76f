//go:build !windows

package fs

func longPathsEnabled() bool {
	return true
}
