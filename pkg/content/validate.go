package content

import (
	"github.com/aretw0/termfolio/pkg/domain"
)

// Validate checks the structural rules every catalog must satisfy.
// It returns an *AggregateError listing every failure, or nil.
func Validate(c *Catalog) error {
	var errs []error

	if len(c.Boot.Steps) == 0 {
		errs = append(errs, invalid("", "boot.steps", "at least one step is required"))
	}
	for i, step := range c.Boot.Steps {
		if step.Duration <= 0 {
			errs = append(errs, invalid("", "boot.steps", "step %d has no duration", i))
		}
	}

	if len(c.Language.Options) == 0 {
		errs = append(errs, invalid("", "language.options", "at least one option is required"))
	}
	for i, opt := range c.Language.Options {
		if _, ok := c.tables[opt.Locale]; !ok {
			errs = append(errs, invalid("", "language.options", "option %d names locale %q without a table", i, opt.Locale))
		}
	}

	for _, locale := range c.Locales() {
		errs = append(errs, validateTable(c.tables[locale])...)
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func validateTable(t *Table) []error {
	var errs []error
	l := t.Locale

	if t.Prompt == "" {
		errs = append(errs, invalid(l, "prompt", "must not be empty"))
	}
	if t.Shell == "" {
		errs = append(errs, invalid(l, "shell", "must not be empty"))
	}

	hasClear := false
	for _, action := range t.Commands {
		if action.Kind == domain.ActionClear {
			hasClear = true
			break
		}
	}
	if !hasClear {
		errs = append(errs, invalid(l, "commands", "no token maps to clear"))
	}

	for _, view := range domain.Views {
		if view == domain.ViewHelp {
			continue
		}
		if len(t.views[view]) == 0 {
			errs = append(errs, invalid(l, "views."+view.String(), "missing content"))
		}
	}

	if t.HelpTitle == "" {
		errs = append(errs, invalid(l, "help.title", "must not be empty"))
	}
	if len(t.Help) == 0 {
		errs = append(errs, invalid(l, "help.entries", "at least one entry is required"))
	}
	for _, e := range t.Help {
		if _, ok := t.Commands[e.Command]; !ok {
			errs = append(errs, invalid(l, "help.entries", "%q is not a command", e.Command))
		}
	}

	for _, view := range domain.NavViews {
		if t.Nav[view] == "" {
			errs = append(errs, invalid(l, "nav."+view.String(), "missing label"))
		}
	}

	return errs
}
