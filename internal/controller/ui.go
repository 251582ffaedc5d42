// Package controller renders traversal events for the operator.
package controller

import (
	"os"

	"golang.org/x/term"

	m "rmds.dev/pkg/rmds/internal/model"
)

// UI receives traversal events and displays them. Implementations decide
// formatting only; the traverser decides which events fire under the
// active quiet/verbose policy.
type UI interface {
	// Banner announces the start of a scan rooted at root.
	Banner(root m.Path, target string)
	// Scanning reports that a directory is being listed.
	Scanning(dir m.Path)
	// Deleted reports a successful removal.
	Deleted(path m.Path)
	// WouldDelete reports a removal a dry run skipped.
	WouldDelete(path m.Path)
	// SkipExcluded reports a directory skipped by the exclude list.
	SkipExcluded(dir m.Path)
	// SkipOtherDevice reports a directory skipped by --one-file-system.
	SkipOtherDevice(dir m.Path)
	// Warnf reports a non-fatal diagnostic on the error stream.
	Warnf(format string, args ...any)
	// DeleteError reports a failed removal on the error stream.
	DeleteError(path m.Path, err error)
	// Summary renders the final counters.
	Summary(stats m.Stats)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
