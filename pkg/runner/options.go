package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/termfolio/pkg/domain"
	"github.com/aretw0/termfolio/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithStore configures the SessionStore for persistence.
// This is required if WithSessionID is used.
func WithStore(store ports.SessionStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithSessionID resumes (or starts) the given session in Store and saves it
// after every command.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.SessionID = id
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithHooks attaches observers to the session.
func WithHooks(hooks domain.Hooks) Option {
	return func(r *Runner) {
		r.Hooks = hooks
	}
}

// WithSkipBoot skips the boot sequence.
func WithSkipBoot(skip bool) Option {
	return func(r *Runner) {
		r.SkipBoot = skip
	}
}

// WithLocale answers the language question in advance.
func WithLocale(locale domain.Locale) Option {
	return func(r *Runner) {
		r.Locale = locale
	}
}

// WithPacing controls whether the boot sequence waits in real time.
// Disabled, timers fire as fast as they can be processed.
func WithPacing(enabled bool) Option {
	return func(r *Runner) {
		r.Pacing = enabled
	}
}

// WithClock sets the start time of the session scheduler.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.clock = now
	}
}
