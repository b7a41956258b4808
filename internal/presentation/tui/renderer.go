package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/termfolio/pkg/content"
)

// NewRenderer returns a function that renders markdown using glamour.
// It uses a dark theme by default, but could be configurable.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return markdown, err
		}
		return r.Render(markdown)
	}
}

// CommandsMarkdown describes a locale's command table as a markdown document.
func CommandsMarkdown(t *content.Table) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", strings.TrimSpace(t.HelpTitle))
	fmt.Fprintf(&sb, "Locale `%s` • prompt `%s`\n\n", t.Locale, t.Shell)

	sb.WriteString("| Command | Action | Description |\n")
	sb.WriteString("|---|---|---|\n")

	described := make(map[string]string, len(t.Help))
	for _, e := range t.Help {
		described[e.Command] = e.Description
	}
	for _, token := range t.Tokens() {
		action, _ := t.Lookup(token)
		fmt.Fprintf(&sb, "| `%s` | %s | %s |\n", token, action, escapeCell(described[token]))
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
