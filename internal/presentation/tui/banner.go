package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// bannerShades run from bright to deep matrix green.
var bannerShades = []string{"#b6ffb6", "#8cff8c", "#5cff5c", "#33ff33", "#00ff41", "#00e03a", "#00c032", "#00a02a", "#008f11", "#006b0d"}

// PrintBanner writes the portfolio banner, one shade of green per line.
func PrintBanner(w io.Writer, lines []string) {
	NewStyler().Banner(w, lines)
}

// Styler colours line-mode output.
type Styler struct {
	profile termenv.Profile
}

// NewStyler detects the colour support of the environment.
func NewStyler() Styler {
	return Styler{profile: termenv.EnvColorProfile()}
}

// PlainStyler never emits escape sequences.
func PlainStyler() Styler {
	return Styler{profile: termenv.Ascii}
}

// Prompt styles the shell prompt.
func (s Styler) Prompt(text string) string {
	return s.profile.String(text).Foreground(s.profile.Color("#00ff41")).Bold().String()
}

// Error styles an inline error line.
func (s Styler) Error(text string) string {
	return s.profile.String(text).Foreground(s.profile.Color("#ff5555")).String()
}

// Dim styles secondary text such as boot progress.
func (s Styler) Dim(text string) string {
	return s.profile.String(text).Foreground(s.profile.Color("#008f11")).String()
}

// Output styles view content.
func (s Styler) Output(text string) string {
	return s.profile.String(text).Foreground(s.profile.Color("#c8ffc8")).String()
}

// Banner writes lines framed by blank lines, one shade of green per line.
func (s Styler) Banner(w io.Writer, lines []string) {
	fmt.Fprintln(w)
	for i, line := range lines {
		shade := bannerShades[min(i, len(bannerShades)-1)]
		fmt.Fprintln(w, s.profile.String(line).Foreground(s.profile.Color(shade)))
	}
	fmt.Fprintln(w)
}
