package app

import (
	"log/slog"

	"github.com/aretw0/termfolio/internal/logging"
	"github.com/aretw0/termfolio/pkg/boot"
	"github.com/aretw0/termfolio/pkg/content"
	"github.com/aretw0/termfolio/pkg/domain"
	"github.com/aretw0/termfolio/pkg/language"
	"github.com/aretw0/termfolio/pkg/matrix"
	"github.com/aretw0/termfolio/pkg/scheduler"
	"github.com/aretw0/termfolio/pkg/terminal"
)

// Option configures an App.
type Option func(*App)

// WithLogger configures the structured logger. It is passed down to every child.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithHooks registers lifecycle, command and navigation observers.
func WithHooks(hooks domain.Hooks) Option {
	return func(a *App) {
		a.hooks = hooks
	}
}

// WithSurface enables the rain background on surface.
func WithSurface(surface matrix.Surface, opts ...matrix.Option) Option {
	return func(a *App) {
		a.surface = surface
		a.rainOpts = opts
	}
}

// WithSkipBoot completes the boot sequence as soon as it starts.
func WithSkipBoot(skip bool) Option {
	return func(a *App) {
		a.skipBoot = skip
	}
}

// WithLocale makes the selector choose locale on its own.
func WithLocale(locale domain.Locale) Option {
	return func(a *App) {
		a.fixedLocale = locale
	}
}

// WithBootOptions forwards options to the boot sequencer.
func WithBootOptions(opts ...boot.Option) Option {
	return func(a *App) {
		a.bootOpts = append(a.bootOpts, opts...)
	}
}

// WithLanguageOptions forwards options to the language selector.
func WithLanguageOptions(opts ...language.Option) Option {
	return func(a *App) {
		a.languageOpts = append(a.languageOpts, opts...)
	}
}

// WithTerminalOptions forwards options to the terminal.
func WithTerminalOptions(opts ...terminal.Option) Option {
	return func(a *App) {
		a.terminalOpts = append(a.terminalOpts, opts...)
	}
}

// App is the root composer. It is not safe for concurrent use; every method and
// every scheduler callback must run on the host goroutine.
type App struct {
	catalog *content.Catalog
	sched   *scheduler.Scheduler
	logger  *slog.Logger
	hooks   domain.Hooks

	surface      matrix.Surface
	rainOpts     []matrix.Option
	skipBoot     bool
	fixedLocale  domain.Locale
	bootOpts     []boot.Option
	languageOpts []language.Option
	terminalOpts []terminal.Option

	phase    domain.Phase
	locale   domain.Locale
	rain     *matrix.Rain
	boot     *boot.Sequencer
	selector *language.Selector
	term     *terminal.Terminal
	started  bool
	disposed bool
}

// New creates an App in the booting phase. Nothing runs until Start.
func New(sched *scheduler.Scheduler, catalog *content.Catalog, opts ...Option) *App {
	a := &App{
		catalog: catalog,
		sched:   sched,
		logger:  logging.NewNop(),
		phase:   domain.PhaseBooting,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start mounts the rain (when a surface is configured) and the boot sequencer.
func (a *App) Start() {
	if a.started || a.disposed {
		return
	}
	a.started = true

	if a.surface != nil {
		a.rain = matrix.New(a.rainOpts...)
		a.rain.Mount(a.sched, a.surface)
	}

	var seq *boot.Sequencer
	opts := append([]boot.Option{boot.WithLogger(a.logger)}, a.bootOpts...)
	seq = boot.New(a.sched, a.catalog.BootSteps(), func() { a.bootCompleted(seq) }, opts...)
	a.boot = seq
	seq.Start()
	if a.skipBoot {
		seq.Skip()
	}
}

func (a *App) bootCompleted(seq *boot.Sequencer) {
	if a.disposed || seq == nil || a.boot != seq || !a.advance(domain.PhaseSelectingLanguage) {
		return
	}
	seq.Dispose()
	a.boot = nil

	opts := []language.Option{language.WithLogger(a.logger)}
	if a.fixedLocale != "" {
		opts = append(opts, language.WithAutoSelect(a.fixedLocale))
	}
	opts = append(opts, a.languageOpts...)

	var sel *language.Selector
	sel = language.New(a.sched, a.catalog.LanguageOptions(), func(l domain.Locale) { a.languageSelected(sel, l) }, opts...)
	a.selector = sel
	sel.Start()
}

func (a *App) languageSelected(sel *language.Selector, locale domain.Locale) {
	if a.disposed || sel == nil || a.selector != sel || a.locale != "" || a.phase != domain.PhaseSelectingLanguage {
		return
	}
	table, err := a.catalog.Table(locale)
	if err != nil {
		a.logger.Warn("selected locale has no table, using default", "locale", locale, "err", err)
		locale = domain.DefaultLocale
		if table, err = a.catalog.Table(locale); err != nil {
			// Nothing can be mounted; stop instead of idling with a finished selector.
			a.logger.Error("default locale has no table, shutting down", "err", err)
			a.Dispose()
			return
		}
	}

	a.locale = locale
	a.advance(domain.PhaseInteractive)
	sel.Dispose()
	a.selector = nil

	opts := []terminal.Option{
		terminal.WithScheduler(a.sched),
		terminal.WithLogger(a.logger),
		terminal.WithHooks(a.hooks),
	}
	a.term = terminal.New(table, append(opts, a.terminalOpts...)...)
}

// advance moves to `to` only if it is the phase directly after the current one.
func (a *App) advance(to domain.Phase) bool {
	from := a.phase
	next, ok := from.Next()
	if !ok || next != to {
		return false
	}
	a.phase = to
	a.logger.Info("phase transition", "from", from, "to", to, "locale", a.locale)
	a.hooks.PhaseChanged(&domain.PhaseEvent{
		EventBase: domain.EventBase{Timestamp: a.sched.Now(), Type: domain.EventPhaseChange},
		From:      from,
		To:        to,
		Locale:    a.locale,
	})
	return true
}

// HandleKey routes a key press to the active child and reports whether it was consumed.
func (a *App) HandleKey(k domain.Key) bool {
	if a.disposed {
		return false
	}
	switch {
	case a.boot != nil:
		return a.boot.HandleKey(k)
	case a.selector != nil:
		return a.selector.HandleKey(k)
	case a.term != nil:
		return a.term.HandleKey(k)
	}
	return false
}

// Phase returns the current lifecycle phase.
func (a *App) Phase() domain.Phase {
	return a.phase
}

// Locale returns the chosen locale, or "" before selection.
func (a *App) Locale() domain.Locale {
	return a.locale
}

// Catalog returns the content catalog in use.
func (a *App) Catalog() *content.Catalog {
	return a.catalog
}

// Boot returns the boot sequencer while booting, or nil.
func (a *App) Boot() *boot.Sequencer {
	return a.boot
}

// Selector returns the language selector while it is active, or nil.
func (a *App) Selector() *language.Selector {
	return a.selector
}

// Terminal returns the terminal once interactive, or nil.
func (a *App) Terminal() *terminal.Terminal {
	return a.term
}

// Rain returns the background, or nil without a surface.
func (a *App) Rain() *matrix.Rain {
	return a.rain
}

// Disposed reports whether the app has been torn down.
func (a *App) Disposed() bool {
	return a.disposed
}

// Dispose tears down every component. Pending callbacks never run afterwards.
func (a *App) Dispose() {
	if a.disposed {
		return
	}
	a.disposed = true
	if a.boot != nil {
		a.boot.Dispose()
	}
	if a.selector != nil {
		a.selector.Dispose()
	}
	if a.term != nil {
		a.term.Dispose()
	}
	if a.rain != nil {
		a.rain.Dispose()
	}
}
