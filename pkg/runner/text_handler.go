package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/termfolio/internal/presentation/tui"
	"github.com/aretw0/termfolio/pkg/content"
	"github.com/aretw0/termfolio/pkg/domain"
)

// TextHandler implements the human-readable interface.
type TextHandler struct {
	Writer io.Writer
	Styler tui.Styler

	lines *lineReader
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerStyler overrides the colour detection, e.g. with tui.PlainStyler.
func WithTextHandlerStyler(s tui.Styler) TextHandlerOption {
	return func(h *TextHandler) {
		h.Styler = s
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Writer: w,
		Styler: tui.NewStyler(),
		lines:  newLineReader(r),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) BootStep(ctx context.Context, step domain.BootStep, percent int) error {
	_, err := fmt.Fprintf(h.Writer, "%s %s\n", h.Styler.Dim(fmt.Sprintf("[%3d%%]", percent)), step.Text)
	return err
}

func (h *TextHandler) Languages(ctx context.Context, screen content.LanguageScreen) error {
	fmt.Fprintln(h.Writer)
	fmt.Fprintln(h.Writer, h.Styler.Prompt(screen.Title))
	if screen.Subtitle != "" {
		fmt.Fprintln(h.Writer, h.Styler.Dim(screen.Subtitle))
	}
	for i, opt := range screen.Options {
		fmt.Fprintf(h.Writer, "  %d) %s  %s\n", i+1, opt.Label(), h.Styler.Dim(opt.Description))
	}
	if screen.Footer != "" {
		fmt.Fprintln(h.Writer, h.Styler.Dim(screen.Footer))
	}
	return nil
}

func (h *TextHandler) Output(ctx context.Context, resp *Response) error {
	if resp.Error != "" {
		_, err := fmt.Fprintln(h.Writer, h.Styler.Error(resp.Error))
		return err
	}
	for _, line := range resp.Lines {
		if _, err := fmt.Fprintln(h.Writer, h.Styler.Output(line)); err != nil {
			return err
		}
	}
	return nil
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprintln(h.Writer, h.Styler.Error(msg))
	return err
}

func (h *TextHandler) Input(ctx context.Context, prompt string) (string, error) {
	// Only show prompt if context is not yet done
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	fmt.Fprint(h.Writer, h.Styler.Prompt(strings.TrimRight(prompt, " "))+" ")

	return h.lines.next(ctx, func(err error) {
		fmt.Fprintf(h.Writer, "%s\n%s ", h.Styler.Error(fmt.Sprintf("Error: %v. Please try again.", err)), h.Styler.Prompt(strings.TrimRight(prompt, " ")))
	})
}
