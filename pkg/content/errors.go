package content

import (
	"errors"
	"fmt"

	"github.com/aretw0/termfolio/pkg/domain"
)

// ValidationError represents a single problem found in the catalog.
type ValidationError struct {
	Locale domain.Locale // Empty for locale-independent files
	Key    string        // Dotted path of the offending field
	Reason string        // Human-readable reason for failure
}

func (e *ValidationError) Error() string {
	if e.Locale == "" {
		return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("locale %s: field %q: %s", e.Locale, e.Key, e.Reason)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err wraps an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}

func invalid(locale domain.Locale, key, format string, args ...any) error {
	return &ValidationError{Locale: locale, Key: key, Reason: fmt.Sprintf(format, args...)}
}
