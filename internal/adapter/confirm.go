package adapter

import (
	"bufio"
	"fmt"
	"io"

	m "rmds.dev/pkg/rmds/internal/model"
)

// Confirmer asks the operator to approve a single deletion.
type Confirmer interface {
	Confirm(path m.Path) bool
}

// LineConfirmer prompts on out and reads one line per answer from in.
// It works on pipes as well as terminals.
type LineConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineConfirmer constructs a LineConfirmer over the given streams.
func NewLineConfirmer(in io.Reader, out io.Writer) *LineConfirmer {
	return &LineConfirmer{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm prompts for the given path and reads a single response line.
// The first byte decides: 'y' or 'Y' approves, anything else declines.
// End of input declines. The rest of the line is consumed so stray input
// never leaks into the next prompt.
func (c *LineConfirmer) Confirm(path m.Path) bool {
	fmt.Fprintf(c.out, "Delete %s? [y/N] ", path)

	line, err := c.in.ReadString('\n')
	if line == "" && err != nil {
		return false
	}

	return line[0] == 'y' || line[0] == 'Y'
}
