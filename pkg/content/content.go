package content

import (
	"fmt"
	"strings"

	"github.com/aretw0/termfolio/pkg/domain"
)

// Catalog is the complete, validated set of portfolio text.
type Catalog struct {
	Boot     BootScreen
	Language LanguageScreen
	Banner   []string
	// Portrait is the ASCII art of the welcome portrait, nil when none is shipped.
	Portrait []string

	tables map[domain.Locale]*Table
}

// BootScreen is the text of the GRUB-style boot panel.
type BootScreen struct {
	Title    string            `yaml:"title"`
	Subtitle string            `yaml:"subtitle"`
	Menu     []string          `yaml:"menu"`
	Footer   []string          `yaml:"footer"`
	Steps    []domain.BootStep `yaml:"steps"`
}

// LanguageScreen is the text of the language selector.
type LanguageScreen struct {
	Title    string           `yaml:"title"`
	Subtitle string           `yaml:"subtitle"`
	Footer   string           `yaml:"footer"`
	Options  []LanguageOption `yaml:"options"`
}

// LanguageOption is one selectable language.
type LanguageOption struct {
	Locale      domain.Locale `yaml:"locale" json:"locale"`
	Flag        string        `yaml:"flag" json:"flag"`
	Name        string        `yaml:"name" json:"name"`
	Description string        `yaml:"description" json:"description"`
}

// Label is the option as shown in the selector, e.g. "🇺🇸 English".
func (o LanguageOption) Label() string {
	return o.Flag + " " + o.Name
}

// HelpEntry is one row of the help view.
type HelpEntry struct {
	Command     string `yaml:"command" json:"command"`
	Description string `yaml:"description" json:"description"`
}

// Table is the per-locale command table and view text.
type Table struct {
	Locale    domain.Locale
	Prompt    string
	Shell     string
	Commands  map[string]domain.Action
	HelpTitle string
	Help      []HelpEntry
	Nav       map[domain.View]string

	banner []string
	views  map[domain.View][]string
}

// BootSteps returns a copy of the boot sequence.
func (c *Catalog) BootSteps() []domain.BootStep {
	return append([]domain.BootStep(nil), c.Boot.Steps...)
}

// LanguageOptions returns a copy of the selectable languages in display order.
func (c *Catalog) LanguageOptions() []LanguageOption {
	return append([]LanguageOption(nil), c.Language.Options...)
}

// Table returns the command table for locale.
func (c *Catalog) Table(locale domain.Locale) (*Table, error) {
	t, ok := c.tables[locale]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownLocale, locale)
	}
	return t, nil
}

// Locales returns the locales that have a table, in presentation order.
func (c *Catalog) Locales() []domain.Locale {
	var out []domain.Locale
	for _, l := range domain.Locales {
		if _, ok := c.tables[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Normalize prepares raw input for Lookup.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Lookup resolves an already normalized token.
func (t *Table) Lookup(token string) (domain.Action, bool) {
	a, ok := t.Commands[token]
	return a, ok
}

// Tokens returns every command token sorted by the view order, then alphabetically.
func (t *Table) Tokens() []string {
	out := make([]string, 0, len(t.Commands))
	for token := range t.Commands {
		out = append(out, token)
	}
	sortTokens(out, t.Commands)
	return out
}

// Lines returns the content block of a view.
// The welcome view starts with the banner; help is built from the help entries.
func (t *Table) Lines(view domain.View) []string {
	switch view {
	case domain.ViewHelp:
		return t.helpLines()
	case domain.ViewWelcome:
		out := make([]string, 0, len(t.banner)+1+len(t.views[view]))
		out = append(out, t.banner...)
		out = append(out, "")
		return append(out, t.views[view]...)
	default:
		return append([]string(nil), t.views[view]...)
	}
}

func (t *Table) helpLines() []string {
	width := 0
	for _, e := range t.Help {
		if n := len([]rune(e.Command)); n > width {
			width = n
		}
	}
	out := make([]string, 0, len(t.Help)+2)
	out = append(out, t.HelpTitle, "")
	for _, e := range t.Help {
		pad := strings.Repeat(" ", width-len([]rune(e.Command)))
		out = append(out, fmt.Sprintf("  %s%s - %s", e.Command, pad, e.Description))
	}
	return out
}
