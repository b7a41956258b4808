package terminal

import (
	"fmt"
	"log/slog"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/termfolio/internal/logging"
	"github.com/aretw0/termfolio/pkg/content"
	"github.com/aretw0/termfolio/pkg/domain"
	"github.com/aretw0/termfolio/pkg/scheduler"
)

const (
	// DefaultScrollStep is the number of lines one scroll request moves.
	DefaultScrollStep = 5
	// DefaultMaxInput bounds the input buffer in bytes.
	DefaultMaxInput = 4096
	// CursorBlink is the cursor toggle period.
	CursorBlink = 500 * time.Millisecond
	// CursorGlyph is drawn at the end of the input line while the cursor is visible.
	CursorGlyph = "█"
)

// Option configures a Terminal.
type Option func(*Terminal)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Terminal) {
		t.logger = logger
	}
}

// WithHooks registers observers for commands and navigation.
func WithHooks(hooks domain.Hooks) Option {
	return func(t *Terminal) {
		t.hooks = hooks
	}
}

// WithScheduler enables the blinking cursor and uses the scheduler clock for events.
func WithScheduler(sched *scheduler.Scheduler) Option {
	return func(t *Terminal) {
		t.sched = sched
	}
}

// WithScrollStep overrides DefaultScrollStep.
func WithScrollStep(lines int) Option {
	return func(t *Terminal) {
		if lines > 0 {
			t.scrollStep = lines
		}
	}
}

// WithMaxInput overrides DefaultMaxInput.
func WithMaxInput(bytes int) Option {
	return func(t *Terminal) {
		if bytes > 0 {
			t.maxInput = bytes
		}
	}
}

// Result describes what a submitted command did.
type Result struct {
	Action domain.Action
	Known  bool
}

// Terminal is the command interpreter. It is not safe for concurrent use.
type Terminal struct {
	table      *content.Table
	state      *domain.TerminalState
	input      []rune
	scrollStep int
	maxInput   int

	cursorVisible bool
	sched         *scheduler.Scheduler
	scope         *scheduler.Scope

	logger *slog.Logger
	hooks  domain.Hooks
}

// New creates a Terminal showing the welcome view of table.
func New(table *content.Table, opts ...Option) *Terminal {
	return newTerminal(table, domain.NewTerminalState(table.Locale), opts)
}

// Restore rebuilds a Terminal from a snapshot taken with State.
func Restore(table *content.Table, state *domain.TerminalState, opts ...Option) (*Terminal, error) {
	if state == nil {
		return nil, fmt.Errorf("restore: nil state")
	}
	if state.Locale != table.Locale {
		return nil, fmt.Errorf("restore: state locale %q does not match table %q", state.Locale, table.Locale)
	}
	if !state.View.Valid() {
		return nil, fmt.Errorf("restore: %w: %q", domain.ErrUnknownView, state.View)
	}
	s := state.Clone()
	if s.History == nil {
		s.History = []domain.HistoryEntry{}
	}
	if s.Scroll < 0 {
		s.Scroll = 0
	}
	return newTerminal(table, s, opts), nil
}

func newTerminal(table *content.Table, state *domain.TerminalState, opts []Option) *Terminal {
	t := &Terminal{
		table:         table,
		state:         state,
		scrollStep:    DefaultScrollStep,
		maxInput:      DefaultMaxInput,
		cursorVisible: true,
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.sched != nil {
		t.scope = t.sched.Scope()
		t.scope.Every(CursorBlink, func() {
			t.cursorVisible = !t.cursorVisible
		})
	}
	return t
}

// Submit interprets raw as a command. The input buffer is always cleared.
func (t *Terminal) Submit(raw string) Result {
	t.input = t.input[:0]

	token := content.Normalize(raw)
	if token == "" {
		return Result{}
	}

	action, known := t.table.Lookup(token)
	if !known {
		t.state.History = append(t.state.History, domain.HistoryEntry{
			Command: raw,
			Error:   domain.NotFoundMessage(raw),
		})
		t.logger.Debug("unknown command", "locale", t.state.Locale, "input", raw)
		t.emitCommand(raw, Result{})
		return Result{}
	}

	t.state.History = append(t.state.History, domain.HistoryEntry{Command: raw})

	switch action.Kind {
	case domain.ActionClear:
		t.state.History = []domain.HistoryEntry{}
		t.state.View = domain.ViewWelcome
		t.state.Scroll = 0
	case domain.ActionScroll:
		t.Scroll(action.Direction)
	case domain.ActionView:
		t.setView(action.View)
	}

	res := Result{Action: action, Known: true}
	t.emitCommand(raw, res)
	return res
}

// SubmitInput submits the current input buffer.
func (t *Terminal) SubmitInput() Result {
	return t.Submit(string(t.input))
}

// Type appends r to the input buffer. Control characters and input beyond
// the size limit are rejected.
func (t *Terminal) Type(r rune) bool {
	if unicode.IsControl(r) || r == utf8.RuneError {
		return false
	}
	if len(string(t.input))+utf8.RuneLen(r) > t.maxInput {
		return false
	}
	t.input = append(t.input, r)
	return true
}

// Backspace removes the last rune of the input buffer.
func (t *Terminal) Backspace() bool {
	if len(t.input) == 0 {
		return false
	}
	t.input = t.input[:len(t.input)-1]
	return true
}

// Input returns the current input buffer.
func (t *Terminal) Input() string {
	return string(t.input)
}

// Scroll moves the content offset by one step, never above the top
// nor past the last transcript line.
func (t *Terminal) Scroll(dir domain.ScrollDirection) {
	offset := t.state.Scroll + int(dir)*t.scrollStep
	if limit := len(t.Transcript()) - 1; offset > limit {
		offset = limit
	}
	if offset < 0 {
		offset = 0
	}
	t.state.Scroll = offset
}

// Navigate shows view without touching the history.
func (t *Terminal) Navigate(view domain.View) error {
	if !view.Valid() {
		return fmt.Errorf("navigate: %w: %q", domain.ErrUnknownView, view)
	}
	t.setView(view)
	t.hooks.Navigated(&domain.NavigateEvent{
		EventBase: t.event(domain.EventNavigate),
		Locale:    t.state.Locale,
		View:      view,
	})
	return nil
}

func (t *Terminal) setView(view domain.View) {
	if view != t.state.View {
		t.state.View = view
		t.state.Scroll = 0
	}
}

// HandleKey maps a key press to a terminal operation and reports whether it was consumed.
func (t *Terminal) HandleKey(k domain.Key) bool {
	switch k.Code {
	case domain.KeyRune:
		return t.Type(k.Rune)
	case domain.KeyBackspace:
		return t.Backspace()
	case domain.KeyEnter:
		t.SubmitInput()
		return true
	case domain.KeyPageUp, domain.KeyUp:
		t.Scroll(domain.ScrollUp)
		return true
	case domain.KeyPageDown, domain.KeyDown:
		t.Scroll(domain.ScrollDown)
		return true
	case domain.KeyF1, domain.KeyF2, domain.KeyF3, domain.KeyF4, domain.KeyF5:
		return t.Navigate(domain.NavViews[k.Code-domain.KeyF1]) == nil
	}
	return false
}

// View returns the displayed view.
func (t *Terminal) View() domain.View {
	return t.state.View
}

// Locale returns the terminal's locale.
func (t *Terminal) Locale() domain.Locale {
	return t.state.Locale
}

// Table returns the command table in use.
func (t *Terminal) Table() *content.Table {
	return t.table
}

// History returns a copy of the command history.
func (t *Terminal) History() []domain.HistoryEntry {
	return append([]domain.HistoryEntry(nil), t.state.History...)
}

// ScrollOffset returns the number of transcript lines scrolled past.
func (t *Terminal) ScrollOffset() int {
	return t.state.Scroll
}

// CursorVisible reports the blink state of the cursor.
func (t *Terminal) CursorVisible() bool {
	return t.cursorVisible
}

// Content returns the content block of the current view.
func (t *Terminal) Content() []string {
	return t.table.Lines(t.state.View)
}

// State returns a snapshot of the terminal for storage.
func (t *Terminal) State() *domain.TerminalState {
	return t.state.Clone()
}

// Dispose stops the cursor blink.
func (t *Terminal) Dispose() {
	if t.scope != nil {
		t.scope.Dispose()
	}
}

func (t *Terminal) emitCommand(raw string, res Result) {
	t.hooks.CommandSubmitted(&domain.CommandEvent{
		EventBase: t.event(domain.EventCommand),
		Locale:    t.state.Locale,
		Input:     raw,
		Known:     res.Known,
		Action:    res.Action,
	})
}

func (t *Terminal) event(kind domain.EventType) domain.EventBase {
	now := time.Now()
	if t.sched != nil {
		now = t.sched.Now()
	}
	return domain.EventBase{Timestamp: now, Type: kind}
}
