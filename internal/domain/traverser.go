// Package domain implements the depth-first scan that finds and removes
// target files.
package domain

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"

	"rmds.dev/pkg/rmds/internal/adapter"
	"rmds.dev/pkg/rmds/internal/controller"
	m "rmds.dev/pkg/rmds/internal/model"
)

// Traverser walks directory trees depth-first and deletes files matching
// the configured target predicate. All results are observable via UI
// events and filesystem side effects; nothing is persisted.
type Traverser struct {
	fs      adapter.DirFS
	confirm adapter.Confirmer
	ui      controller.UI
	opts    m.Options

	// Device binding for the root currently being scanned. Captured once
	// per root before its traversal begins and never rebound during it.
	rootDev   uint64
	rootDevOK bool

	stats m.Stats
}

// NewTraverser wires a Traverser from its collaborators.
func NewTraverser(dirFS adapter.DirFS, confirm adapter.Confirmer, ui controller.UI, opts m.Options) *Traverser {
	return &Traverser{
		fs:      dirFS,
		confirm: confirm,
		ui:      ui,
		opts:    opts,
	}
}

// Run scans each root in turn. A root that cannot be statted, or is not a
// directory, is reported and does not abort the remaining roots.
func (t *Traverser) Run(roots []m.Path) m.Stats {
	for _, root := range roots {
		info, err := t.fs.Lstat(root)
		if err != nil {
			t.stats.Errors++
			if !t.opts.Quiet {
				t.ui.Warnf("cannot scan %s: %v", root, err)
			}

			continue
		}

		if !info.IsDir() {
			t.stats.Errors++
			if !t.opts.Quiet {
				t.ui.Warnf("cannot scan %s: not a directory", root)
			}

			continue
		}

		t.rootDev, t.rootDevOK = 0, false
		if t.opts.OneFileSystem {
			t.rootDev, t.rootDevOK = t.fs.DeviceID(info)
		}

		if !t.opts.Quiet {
			t.ui.Banner(root, t.opts.TargetName)
		}

		slog.Debug("scan start", "root", string(root), "target", t.opts.TargetName)
		t.scan(root, 0)
	}

	return t.stats
}

// scan lists one directory and processes its entries: subdirectories are
// recursed into (depth-first, pre-order), matching files are deleted.
// Entry order follows the underlying directory listing and must not be
// relied upon.
func (t *Traverser) scan(dir m.Path, depth int) {
	if t.opts.MaxDepth != m.UnlimitedDepth && depth > t.opts.MaxDepth {
		return
	}

	entries, err := t.fs.ReadDir(dir)
	if err != nil {
		t.stats.Errors++
		t.warnListFailure(dir, err)

		return
	}

	if t.opts.Verbose && !t.opts.Quiet {
		t.ui.Scanning(dir)
	}

	for _, entry := range entries {
		child := m.Path(filepath.Join(string(dir), entry.Name()))

		info, err := t.fs.Lstat(child)
		if err != nil {
			t.stats.Errors++
			if !t.opts.Quiet {
				t.ui.Warnf("cannot stat %s: %v", child, err)
			}

			continue
		}

		if info.IsDir() {
			t.enterDir(child, entry.Name(), info, depth)
			continue
		}

		if t.opts.Matches(entry.Name()) {
			t.remove(child, info.Size())
		}
	}
}

// enterDir applies the directory policies and recurses when they pass.
func (t *Traverser) enterDir(dir m.Path, name string, info fs.FileInfo, depth int) {
	if t.opts.ExcludedDir(name) {
		t.stats.Skipped++
		slog.Debug("skip excluded", "path", string(dir))

		if t.opts.Verbose && !t.opts.Quiet {
			t.ui.SkipExcluded(dir)
		}

		return
	}

	if t.opts.OneFileSystem && t.rootDevOK {
		if dev, ok := t.fs.DeviceID(info); ok && dev != t.rootDev {
			t.stats.Skipped++
			slog.Debug("skip other device", "path", string(dir), "device", dev)

			if t.opts.Verbose && !t.opts.Quiet {
				t.ui.SkipOtherDevice(dir)
			}

			return
		}
	}

	t.scan(dir, depth+1)
}

// remove deletes one matching file, honoring interactive confirmation and
// dry-run mode. Deletion failures are surfaced even in quiet mode.
func (t *Traverser) remove(path m.Path, size int64) {
	if t.opts.Interactive && !t.confirm.Confirm(path) {
		t.stats.Skipped++
		slog.Debug("declined", "path", string(path))

		return
	}

	if t.opts.DryRun {
		t.stats.WouldDelete++
		t.stats.BytesReclaimed += size

		if !t.opts.Quiet {
			t.ui.WouldDelete(path)
		}

		return
	}

	if err := t.fs.Remove(path); err != nil {
		t.stats.Errors++
		t.ui.DeleteError(path, err)

		return
	}

	t.stats.Deleted++
	t.stats.BytesReclaimed += size
	slog.Debug("deleted", "path", string(path), "size", size)

	if !t.opts.Quiet {
		t.ui.Deleted(path)
	}
}

func (t *Traverser) warnListFailure(dir m.Path, err error) {
	if t.opts.Quiet {
		return
	}

	if errors.Is(err, fs.ErrPermission) {
		t.ui.Warnf("permission denied: %s", dir)
		return
	}

	t.ui.Warnf("cannot read directory %s: %v", dir, err)
}
