package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/termfolio/internal/logging"
	"github.com/aretw0/termfolio/pkg/app"
	"github.com/aretw0/termfolio/pkg/content"
	"github.com/aretw0/termfolio/pkg/domain"
	"github.com/aretw0/termfolio/pkg/ports"
	"github.com/aretw0/termfolio/pkg/scheduler"
	"github.com/aretw0/termfolio/pkg/terminal"
)

// LanguagePrompt is shown while waiting for a language choice.
const LanguagePrompt = ">"

// ErrInvalidChoice is reported when the language answer matches no option.
var ErrInvalidChoice = errors.New("invalid choice")

// ErrNoTable is returned when not even the default locale has a command table.
var ErrNoTable = errors.New("no command table for the default locale")

// Runner drives a portfolio session over an IOHandler.
type Runner struct {
	// Handler is the strategy for IO. Defaults to a TextHandler on Stdin/Stdout.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Store is the persistence adapter for resumable sessions.
	// If nil, sessions are ephemeral.
	Store     ports.SessionStore
	SessionID string

	Hooks    domain.Hooks
	SkipBoot bool
	Locale   domain.Locale
	Pacing   bool

	catalog *content.Catalog
	clock   func() time.Time
}

// NewRunner creates a new Runner over catalog with default Stdin/Stdout.
func NewRunner(catalog *content.Catalog, opts ...Option) *Runner {
	r := &Runner{
		Logger:  logging.NewNop(),
		Pacing:  true,
		catalog: catalog,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r
}

// Run executes the session until the input ends or ctx is cancelled.
// Both are normal exits and return nil.
func (r *Runner) Run(ctx context.Context) error {
	sm := NewSignalManager(ctx)
	defer sm.Stop()
	ctx = sm.Context()

	term, err := r.resume(ctx)
	if err != nil {
		return err
	}
	if term == nil {
		term, err = r.start(ctx)
		if err != nil {
			return r.exit(sm, err)
		}
		r.persist(ctx, term)
	}
	defer term.Dispose()

	return r.exit(sm, r.loop(ctx, term))
}

// resume restores the stored session, if any.
func (r *Runner) resume(ctx context.Context) (*terminal.Terminal, error) {
	if r.Store == nil || r.SessionID == "" {
		return nil, nil
	}
	state, err := r.Store.Load(ctx, r.SessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", r.SessionID, err)
	}
	table, err := r.catalog.Table(state.Locale)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", r.SessionID, err)
	}
	term, err := terminal.Restore(table, state, terminal.WithLogger(r.Logger), terminal.WithHooks(r.Hooks))
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", r.SessionID, err)
	}
	r.Logger.Info("session resumed", "session_id", r.SessionID, "locale", state.Locale, "view", state.View)
	return term, nil
}

// start plays the boot sequence and the language choice.
func (r *Runner) start(ctx context.Context) (*terminal.Terminal, error) {
	sched := scheduler.New(r.clock())
	a := app.New(sched, r.catalog,
		app.WithLogger(r.Logger),
		app.WithHooks(r.Hooks),
		app.WithSkipBoot(r.SkipBoot),
		app.WithLocale(r.Locale),
	)
	a.Start()

	if err := r.boot(ctx, a, sched); err != nil {
		return nil, err
	}
	if err := r.chooseLanguage(ctx, a, sched); err != nil {
		return nil, err
	}
	return a.Terminal(), nil
}

func (r *Runner) boot(ctx context.Context, a *app.App, sched *scheduler.Scheduler) error {
	steps := a.Catalog().BootSteps()
	printed := 0
	for a.Phase() == domain.PhaseBooting {
		if err := r.step(ctx, sched); err != nil {
			return err
		}
		reached := len(steps)
		if a.Phase() == domain.PhaseBooting {
			reached = a.Boot().Snapshot().Step
		}
		for ; printed < reached; printed++ {
			percent := (printed + 1) * 100 / len(steps)
			if err := r.Handler.BootStep(ctx, steps[printed], percent); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) chooseLanguage(ctx context.Context, a *app.App, sched *scheduler.Scheduler) error {
	for a.Phase() == domain.PhaseSelectingLanguage && !a.Selector().Snapshot().Visible {
		if err := r.step(ctx, sched); err != nil {
			return err
		}
	}

	if sel := a.Selector(); sel != nil && sel.Snapshot().Selected < 0 {
		screen := a.Catalog().Language
		if err := r.Handler.Languages(ctx, screen); err != nil {
			return err
		}
		for {
			line, err := r.Handler.Input(ctx, LanguagePrompt)
			if errors.Is(err, io.EOF) {
				sel.Cancel()
				break
			}
			if err != nil {
				return err
			}
			i, err := ParseChoice(line, screen.Options)
			if err != nil {
				if err := r.Handler.SystemOutput(ctx, err.Error()); err != nil {
					return err
				}
				continue
			}
			if i < 0 {
				sel.Cancel()
			} else {
				sel.Select(i)
			}
			break
		}
	}

	for a.Phase() != domain.PhaseInteractive {
		if a.Disposed() {
			return ErrNoTable
		}
		if err := r.step(ctx, sched); err != nil {
			return err
		}
	}
	return nil
}

// step fires the next scheduled task, waiting for it in real time when pacing.
func (r *Runner) step(ctx context.Context, sched *scheduler.Scheduler) error {
	due, ok := sched.NextDue()
	if !ok {
		return errors.New("session stalled: nothing scheduled")
	}
	if wait := due.Sub(sched.Now()); r.Pacing && wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}
	sched.Advance(due)
	return nil
}

func (r *Runner) loop(ctx context.Context, term *terminal.Terminal) error {
	if err := r.Handler.Output(ctx, Render(term)); err != nil {
		return err
	}
	prompt := term.Table().Shell

	for {
		line, err := r.Handler.Input(ctx, prompt)
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		resp := SubmitAndRender(term, line)
		r.persist(ctx, term)
		if err := r.Handler.Output(ctx, resp); err != nil {
			return err
		}
	}
}

func (r *Runner) persist(ctx context.Context, term *terminal.Terminal) {
	if r.Store == nil || r.SessionID == "" {
		return
	}
	if err := r.Store.Save(ctx, r.SessionID, term.State()); err != nil {
		r.Logger.Warn("failed to save session", "session_id", r.SessionID, "err", err)
	}
}

// exit maps the ways a session ends to the Run result.
func (r *Runner) exit(sm *SignalManager, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		// On some consoles Ctrl+C arrives as EOF just before the signal.
		sm.CheckRace()
		if sm.Interrupted() {
			r.Logger.Info("session interrupted")
		} else {
			r.Logger.Debug("input closed")
		}
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		r.Logger.Info("session interrupted")
		return nil
	}
	return err
}

// ParseChoice maps a language answer to an option index: a 1-based number or a
// locale code. Blank input and "esc" return -1, meaning the default language.
func ParseChoice(answer string, options []content.LanguageOption) (int, error) {
	a := strings.ToLower(strings.TrimSpace(answer))
	if a == "" || a == "esc" {
		return -1, nil
	}
	if n, err := strconv.Atoi(a); err == nil {
		if n < 1 || n > len(options) {
			return 0, fmt.Errorf("%w: %q (pick 1-%d)", ErrInvalidChoice, answer, len(options))
		}
		return n - 1, nil
	}
	for i, opt := range options {
		if string(opt.Locale) == a || strings.ToLower(opt.Name) == a {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidChoice, answer)
}
