package cli

import (
	"context"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/aretw0/termfolio/internal/config"
	"github.com/aretw0/termfolio/pkg/content"
)

// RunOptions carries the resolved settings of the run and shell commands.
type RunOptions struct {
	Config    config.Config
	Debug     bool
	Line      bool
	JSON      bool
	SessionID string

	// Stdin/Stdout default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	// Screen defaults to the terminal tcell finds.
	Screen tcell.Screen
}

func (o *RunOptions) streams() (io.Reader, io.Writer) {
	in, out := o.Stdin, o.Stdout
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return in, out
}

// Execute picks the full-screen host when stdout is a terminal and the line shell otherwise.
func Execute(ctx context.Context, catalog *content.Catalog, opts RunOptions) error {
	if !opts.Line && !opts.JSON && opts.Stdout == nil && isTerminal(os.Stdout) {
		return RunScreen(ctx, catalog, opts)
	}
	return RunShell(ctx, catalog, opts)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
