//go:build windows

package fs

import "golang.org/x/sys/windows/registry"

// longPathsEnabled reads the LongPathsEnabled switch. A missing key or value
// means the feature is off.
func longPathsEnabled() bool {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, `SYSTEM\CurrentControlSet\Control\FileSystem`, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer key.Close()

	value, _, err := key.GetIntegerValue("LongPathsEnabled")
	if err != nil {
		return false
	}
	return value != 0
}
