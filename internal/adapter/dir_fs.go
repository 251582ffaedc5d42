// Package adapter contains the infrastructure adapters for the rmds CLI.
package adapter

import (
	"os"

	m "rmds.dev/pkg/rmds/internal/model"
)

// DirFS abstracts the directory operations the traverser performs so the
// scan logic can be tested against fakes without touching the disk. It
// intentionally hides direct `os` access from the domain layer.
type DirFS interface {
	// ReadDir lists a directory. The listing excludes the self/parent
	// pseudo-entries and is fully materialized before returning, so the
	// underlying handle is never held across a recursion step.
	ReadDir(path m.Path) ([]os.DirEntry, error)

	// Lstat returns metadata for a path without following symbolic links.
	Lstat(path m.Path) (os.FileInfo, error)

	// Remove unlinks a single file.
	Remove(path m.Path) error

	// DeviceID extracts the storage device identifier from metadata
	// previously returned by Lstat. The second result is false on
	// platforms that do not expose one.
	DeviceID(info os.FileInfo) (uint64, bool)
}

// LocalDirFS is the os-backed implementation of DirFS.
type LocalDirFS struct{}

// NewLocalDirFS constructs a LocalDirFS ready to be wired into the traverser.
func NewLocalDirFS() *LocalDirFS {
	return &LocalDirFS{}
}

// ReadDir lists the named directory.
func (a *LocalDirFS) ReadDir(path m.Path) ([]os.DirEntry, error) {
	return os.ReadDir(string(path))
}

// Lstat returns metadata without following symbolic links.
func (a *LocalDirFS) Lstat(path m.Path) (os.FileInfo, error) {
	return os.Lstat(string(path))
}

// Remove unlinks the named file.
func (a *LocalDirFS) Remove(path m.Path) error {
	return os.Remove(string(path))
}

// DeviceID extracts the device id from the platform stat data.
func (a *LocalDirFS) DeviceID(info os.FileInfo) (uint64, bool) {
	return deviceID(info)
}
