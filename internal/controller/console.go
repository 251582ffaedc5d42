package controller

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	m "rmds.dev/pkg/rmds/internal/model"
)

// ConsoleUI implements UI with plain line output, optionally colored
// when stdout is a terminal.
type ConsoleUI struct {
	out    io.Writer
	errOut io.Writer
	color  bool

	deletedStyle lipgloss.Style
	dryRunStyle  lipgloss.Style
	skipStyle    lipgloss.Style
	errorStyle   lipgloss.Style
}

// NewConsoleUI creates a ConsoleUI writing events to out and diagnostics
// to errOut. Styling is applied only when color is true.
func NewConsoleUI(out, errOut io.Writer, color bool) *ConsoleUI {
	return &ConsoleUI{
		out:    out,
		errOut: errOut,
		color:  color,

		deletedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		dryRunStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		skipStyle:    lipgloss.NewStyle().Faint(true),
		errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Banner announces the start of a scan.
func (c *ConsoleUI) Banner(root m.Path, target string) {
	fmt.Fprintf(c.out, "Scanning for %s files in: %s\n", target, root)
}

// Scanning reports the directory currently being listed.
func (c *ConsoleUI) Scanning(dir m.Path) {
	fmt.Fprintf(c.out, "Scanning: %s\n", dir)
}

// Deleted reports a successful removal.
func (c *ConsoleUI) Deleted(path m.Path) {
	fmt.Fprintf(c.out, "%s %s\n", c.render(c.deletedStyle, "Deleted:"), path)
}

// WouldDelete reports a removal a dry run skipped.
func (c *ConsoleUI) WouldDelete(path m.Path) {
	fmt.Fprintf(c.out, "%s %s\n", c.render(c.dryRunStyle, "Would delete:"), path)
}

// SkipExcluded reports a directory skipped by the exclude list.
func (c *ConsoleUI) SkipExcluded(dir m.Path) {
	fmt.Fprintf(c.out, "%s\n", c.render(c.skipStyle, fmt.Sprintf("Skipping excluded directory: %s", dir)))
}

// SkipOtherDevice reports a directory skipped by --one-file-system.
func (c *ConsoleUI) SkipOtherDevice(dir m.Path) {
	fmt.Fprintf(c.out, "%s\n", c.render(c.skipStyle, fmt.Sprintf("Skipping different file system: %s", dir)))
}

// Warnf reports a non-fatal diagnostic on the error stream.
func (c *ConsoleUI) Warnf(format string, args ...any) {
	fmt.Fprintf(c.errOut, "rmds: "+format+"\n", args...)
}

// DeleteError reports a failed removal on the error stream.
func (c *ConsoleUI) DeleteError(path m.Path, err error) {
	fmt.Fprintf(c.errOut, "%s %s: %v\n", c.render(c.errorStyle, "Error deleting"), path, err)
}

// Summary renders the final counters as a table.
func (c *ConsoleUI) Summary(stats m.Stats) {
	fmt.Fprintf(c.out, "\n%s", renderSummaryTable(stats))
}

func (c *ConsoleUI) render(style lipgloss.Style, s string) string {
	if !c.color {
		return s
	}

	return style.Render(s)
}

func renderSummaryTable(stats m.Stats) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Result", "Count"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	table.Append([]string{"Deleted", strconv.Itoa(stats.Deleted)})
	table.Append([]string{"Would delete", strconv.Itoa(stats.WouldDelete)})
	table.Append([]string{"Skipped", strconv.Itoa(stats.Skipped)})
	table.Append([]string{"Errors", strconv.Itoa(stats.Errors)})

	table.SetFooter([]string{
		"Reclaimed",
		humanize.Bytes(uint64(stats.BytesReclaimed)),
	})

	table.Render()

	return tableBuffer.String()
}
