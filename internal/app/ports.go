package app

import (
	"csvcopy/internal/domain"
	"csvcopy/internal/manifest"
)

type FileSystem interface {
	Exists(path string) (bool, error)
	PathLengthOK(path string) bool
	CopyFile(src, dst string) error
}

// EntrySource is satisfied by *manifest.Reader.
type EntrySource interface {
	Next() (manifest.Entry, error)
}

// Observer receives every Result as soon as it is known.
type Observer interface {
	OnResult(result domain.Result)
}

type ObserverFunc func(result domain.Result)

func (f ObserverFunc) OnResult(result domain.Result) {
	f(result)
}
