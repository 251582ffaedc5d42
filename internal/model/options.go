// Package model holds the plain data records shared across the rmds layers.
package model

// Path represents a file system path.
type Path string

// DefaultTargetName is the file name rmds removes when no --name is given.
const DefaultTargetName = ".DS_Store"

// AppleDoublePrefix marks AppleDouble sidecar files matched by --clean-all.
const AppleDoublePrefix = "._"

// UnlimitedDepth disables the recursion depth limit.
const UnlimitedDepth = -1

// Options configures a single scan. The record is immutable for the
// duration of one traversal.
type Options struct {
	// DryRun reports intended deletions without mutating the filesystem.
	DryRun bool
	// Quiet suppresses all output except deletion failures.
	Quiet bool
	// Verbose logs per-directory progress and skip decisions.
	Verbose bool
	// Interactive asks for a y/N confirmation before each deletion.
	Interactive bool
	// MaxDepth limits recursion below each root; UnlimitedDepth disables it.
	MaxDepth int
	// OneFileSystem restricts the scan to the device of the scan root.
	OneFileSystem bool
	// Excluded holds directory names that are never recursed into.
	Excluded map[string]struct{}
	// TargetName is the exact file name to remove.
	TargetName string
	// CleanAll additionally matches ".DS_Store" and the "._" prefix.
	CleanAll bool
}

// Matches reports whether a non-directory entry name is a deletion target.
func (o Options) Matches(name string) bool {
	if name == o.TargetName {
		return true
	}

	if !o.CleanAll {
		return false
	}

	return name == DefaultTargetName || hasAppleDoublePrefix(name)
}

// ExcludedDir reports whether a directory name is on the exclude list.
func (o Options) ExcludedDir(name string) bool {
	_, ok := o.Excluded[name]
	return ok
}

func hasAppleDoublePrefix(name string) bool {
	return len(name) >= len(AppleDoublePrefix) && name[:len(AppleDoublePrefix)] == AppleDoublePrefix
}

// Stats accumulates scan outcomes for the exit summary. Counts are only
// ever appended to while a scan runs; nothing is persisted.
type Stats struct {
	Deleted     int
	WouldDelete int
	Skipped     int
	Errors      int
	// BytesReclaimed is the combined size of removed files, or of the
	// files a dry run would remove.
	BytesReclaimed int64
}
