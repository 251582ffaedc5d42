package domain

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rmds.dev/pkg/rmds/internal/adapter"
	m "rmds.dev/pkg/rmds/internal/model"
)

// recordingUI captures traversal events for assertions.
type recordingUI struct {
	banners      []string
	scans        []string
	deleted      []string
	wouldDelete  []string
	skipExcluded []string
	skipDevice   []string
	warnings     []string
	deleteErrors []string
}

func (r *recordingUI) Banner(root m.Path, _ string) { r.banners = append(r.banners, string(root)) }
func (r *recordingUI) Scanning(dir m.Path)          { r.scans = append(r.scans, string(dir)) }
func (r *recordingUI) Deleted(path m.Path)          { r.deleted = append(r.deleted, string(path)) }
func (r *recordingUI) WouldDelete(path m.Path) {
	r.wouldDelete = append(r.wouldDelete, string(path))
}
func (r *recordingUI) SkipExcluded(dir m.Path) {
	r.skipExcluded = append(r.skipExcluded, string(dir))
}
func (r *recordingUI) SkipOtherDevice(dir m.Path) {
	r.skipDevice = append(r.skipDevice, string(dir))
}
func (r *recordingUI) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}
func (r *recordingUI) DeleteError(path m.Path, err error) {
	r.deleteErrors = append(r.deleteErrors, fmt.Sprintf("%s: %v", path, err))
}
func (r *recordingUI) Summary(_ m.Stats) {}

// alwaysConfirm stands in when interactive mode is off.
type alwaysConfirm struct{}

func (alwaysConfirm) Confirm(_ m.Path) bool { return true }

func defaultOptions() m.Options {
	return m.Options{
		MaxDepth:   m.UnlimitedDepth,
		TargetName: m.DefaultTargetName,
	}
}

// writeTree creates the given relative files (with placeholder content)
// under root.
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()

	for _, rel := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("junk"), 0o600))
	}
}

func newTestTraverser(opts m.Options, confirm adapter.Confirmer) (*Traverser, *recordingUI) {
	ui := &recordingUI{}
	return NewTraverser(adapter.NewLocalDirFS(), confirm, ui, opts), ui
}

func TestTraverser_DeletesTargetsRecursively(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, ".DS_Store", "sub/.DS_Store", "sub/keep.txt")

	traverser, ui := newTestTraverser(defaultOptions(), alwaysConfirm{})
	stats := traverser.Run([]m.Path{m.Path(root)})

	assert.NoFileExists(t, filepath.Join(root, ".DS_Store"))
	assert.NoFileExists(t, filepath.Join(root, "sub", ".DS_Store"))
	assert.FileExists(t, filepath.Join(root, "sub", "keep.txt"))

	assert.Equal(t, 2, stats.Deleted)
	assert.Equal(t, 0, stats.Errors)
	assert.Len(t, ui.deleted, 2)
	assert.Len(t, ui.banners, 1)
}

func TestTraverser_DryRunLeavesTreeUntouched(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, ".DS_Store", "sub/.DS_Store", "sub/keep.txt")

	opts := defaultOptions()
	opts.DryRun = true

	traverser, ui := newTestTraverser(opts, alwaysConfirm{})
	stats := traverser.Run([]m.Path{m.Path(root)})

	assert.FileExists(t, filepath.Join(root, ".DS_Store"))
	assert.FileExists(t, filepath.Join(root, "sub", ".DS_Store"))

	assert.Equal(t, 0, stats.Deleted)
	assert.Equal(t, 2, stats.WouldDelete)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, ".DS_Store"),
		filepath.Join(root, "sub", ".DS_Store"),
	}, ui.wouldDelete)
}

func TestTraverser_ExcludedDirectoryIsNeverEntered(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "skipme/.DS_Store", "skipme/deep/.DS_Store", "other/.DS_Store")

	opts := defaultOptions()
	opts.Excluded = map[string]struct{}{"skipme": {}}
	opts.Verbose = true

	traverser, ui := newTestTraverser(opts, alwaysConfirm{})
	stats := traverser.Run([]m.Path{m.Path(root)})

	assert.FileExists(t, filepath.Join(root, "skipme", ".DS_Store"))
	assert.FileExists(t, filepath.Join(root, "skipme", "deep", ".DS_Store"))
	assert.NoFileExists(t, filepath.Join(root, "other", ".DS_Store"))

	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, []string{filepath.Join(root, "skipme")}, ui.skipExcluded)
}

func TestTraverser_MaxDepthZeroStaysInRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, ".DS_Store", "sub/.DS_Store")

	opts := defaultOptions()
	opts.MaxDepth = 0

	traverser, _ := newTestTraverser(opts, alwaysConfirm{})
	stats := traverser.Run([]m.Path{m.Path(root)})

	assert.NoFileExists(t, filepath.Join(root, ".DS_Store"))
	assert.FileExists(t, filepath.Join(root, "sub", ".DS_Store"))
	assert.Equal(t, 1, stats.Deleted)
}

func TestTraverser_MaxDepthOneReachesFirstLevel(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "sub/.DS_Store", "sub/deep/.DS_Store")

	opts := defaultOptions()
	opts.MaxDepth = 1

	traverser, _ := newTestTraverser(opts, alwaysConfirm{})
	traverser.Run([]m.Path{m.Path(root)})

	assert.NoFileExists(t, filepath.Join(root, "sub", ".DS_Store"))
	assert.FileExists(t, filepath.Join(root, "sub", "deep", ".DS_Store"))
}

func TestTraverser_CleanAllMatchesAppleDoubles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, ".DS_Store", "._sidecar", "sub/._photo.jpg", "sub/notes.txt")

	opts := defaultOptions()
	opts.CleanAll = true

	traverser, _ := newTestTraverser(opts, alwaysConfirm{})
	stats := traverser.Run([]m.Path{m.Path(root)})

	assert.NoFileExists(t, filepath.Join(root, ".DS_Store"))
	assert.NoFileExists(t, filepath.Join(root, "._sidecar"))
	assert.NoFileExists(t, filepath.Join(root, "sub", "._photo.jpg"))
	assert.FileExists(t, filepath.Join(root, "sub", "notes.txt"))
	assert.Equal(t, 3, stats.Deleted)
}

func TestTraverser_DefaultModeIgnoresAppleDoubles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, ".DS_Store", "._sidecar")

	traverser, _ := newTestTraverser(defaultOptions(), alwaysConfirm{})
	traverser.Run([]m.Path{m.Path(root)})

	assert.NoFileExists(t, filepath.Join(root, ".DS_Store"))
	assert.FileExists(t, filepath.Join(root, "._sidecar"))
}

func TestTraverser_CustomTargetName(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "Thumbs.db", ".DS_Store")

	opts := defaultOptions()
	opts.TargetName = "Thumbs.db"

	traverser, _ := newTestTraverser(opts, alwaysConfirm{})
	traverser.Run([]m.Path{m.Path(root)})

	assert.NoFileExists(t, filepath.Join(root, "Thumbs.db"))
	assert.FileExists(t, filepath.Join(root, ".DS_Store"))
}

func TestTraverser_InteractiveHonorsAnswers(t *testing.T) {
	root := t.TempDir()
	// os.ReadDir sorts entries, so "a" is prompted before "b".
	writeTree(t, root, "a/.DS_Store", "b/.DS_Store")

	opts := defaultOptions()
	opts.Interactive = true

	confirmer := adapter.NewLineConfirmer(strings.NewReader("n\ny\n"), io.Discard)

	traverser, _ := newTestTraverser(opts, confirmer)
	stats := traverser.Run([]m.Path{m.Path(root)})

	assert.FileExists(t, filepath.Join(root, "a", ".DS_Store"))
	assert.NoFileExists(t, filepath.Join(root, "b", ".DS_Store"))
	assert.Equal(t, 1, stats.Deleted)
	assert.Equal(t, 1, stats.Skipped)
}

func TestTraverser_InteractiveEOFDeclines(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, ".DS_Store")

	opts := defaultOptions()
	opts.Interactive = true

	confirmer := adapter.NewLineConfirmer(strings.NewReader(""), io.Discard)

	traverser, _ := newTestTraverser(opts, confirmer)
	stats := traverser.Run([]m.Path{m.Path(root)})

	assert.FileExists(t, filepath.Join(root, ".DS_Store"))
	assert.Equal(t, 0, stats.Deleted)
	assert.Equal(t, 1, stats.Skipped)
}

func TestTraverser_MissingRootDoesNotAbortRemainingRoots(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, ".DS_Store")
	missing := filepath.Join(root, "does-not-exist")

	traverser, ui := newTestTraverser(defaultOptions(), alwaysConfirm{})
	stats := traverser.Run([]m.Path{m.Path(missing), m.Path(root)})

	assert.NoFileExists(t, filepath.Join(root, ".DS_Store"))
	assert.Equal(t, 1, stats.Deleted)
	assert.Equal(t, 1, stats.Errors)
	require.Len(t, ui.warnings, 1)
	assert.Contains(t, ui.warnings[0], missing)
}

func TestTraverser_FileRootIsRejected(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "plain.txt")

	traverser, ui := newTestTraverser(defaultOptions(), alwaysConfirm{})
	stats := traverser.Run([]m.Path{m.Path(filepath.Join(root, "plain.txt"))})

	assert.Equal(t, 1, stats.Errors)
	require.Len(t, ui.warnings, 1)
	assert.Contains(t, ui.warnings[0], "not a directory")
}

func TestTraverser_VerboseLogsScannedDirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "sub/keep.txt")

	opts := defaultOptions()
	opts.Verbose = true

	traverser, ui := newTestTraverser(opts, alwaysConfirm{})
	traverser.Run([]m.Path{m.Path(root)})

	assert.ElementsMatch(t, []string{root, filepath.Join(root, "sub")}, ui.scans)
}

func TestTraverser_QuietSuppressesEverythingButDeleteErrors(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, ".DS_Store", "sub/.DS_Store")

	opts := defaultOptions()
	opts.Quiet = true
	opts.Verbose = true

	failing := failingRemoveFS{DirFS: adapter.NewLocalDirFS()}
	ui := &recordingUI{}
	stats := NewTraverser(failing, alwaysConfirm{}, ui, opts).Run([]m.Path{m.Path(root)})

	assert.Empty(t, ui.banners)
	assert.Empty(t, ui.scans)
	assert.Empty(t, ui.deleted)
	assert.Empty(t, ui.warnings)
	assert.Len(t, ui.deleteErrors, 2)
	assert.Equal(t, 2, stats.Errors)
}

// failingRemoveFS fails every unlink to exercise the always-surfaced
// deletion error path.
type failingRemoveFS struct {
	adapter.DirFS
}

func (failingRemoveFS) Remove(_ m.Path) error {
	return errors.New("unlink blocked")
}
