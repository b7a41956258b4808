// Package language implements the language selector shown between boot and the terminal.
package language

import (
	"log/slog"
	"time"

	"github.com/aretw0/termfolio/internal/logging"
	"github.com/aretw0/termfolio/pkg/content"
	"github.com/aretw0/termfolio/pkg/domain"
	"github.com/aretw0/termfolio/pkg/scheduler"
)

const (
	// DefaultRevealDelay is how long the selector stays hidden after mounting.
	DefaultRevealDelay = 500 * time.Millisecond
	// DefaultAckDelay is how long the chosen option is shown before calling back.
	DefaultAckDelay = 800 * time.Millisecond
)

// Option configures a Selector.
type Option func(*Selector)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Selector) {
		s.logger = logger
	}
}

// WithRevealDelay overrides the initial hidden period.
func WithRevealDelay(d time.Duration) Option {
	return func(s *Selector) {
		s.revealDelay = d
	}
}

// WithAckDelay overrides the acknowledgement period.
func WithAckDelay(d time.Duration) Option {
	return func(s *Selector) {
		s.ackDelay = d
	}
}

// WithAutoSelect picks locale as soon as the options are revealed.
// Unknown locales are ignored and the selector waits for input.
func WithAutoSelect(locale domain.Locale) Option {
	return func(s *Selector) {
		s.autoSelect = locale
	}
}

// Snapshot is what a renderer needs to draw the selector.
type Snapshot struct {
	Visible   bool
	Options   []content.LanguageOption
	Highlight int
	Selected  int // -1 until a choice is recorded
	Done      bool
}

// Selector lets the visitor choose a locale exactly once.
type Selector struct {
	options     []content.LanguageOption
	revealDelay time.Duration
	ackDelay    time.Duration
	autoSelect  domain.Locale
	logger      *slog.Logger
	onSelect    func(domain.Locale)

	scope     *scheduler.Scope
	started   bool
	visible   bool
	highlight int
	selected  int
	chosen    bool
	done      bool
}

// New creates a Selector over options. onSelect runs at most once.
func New(sched *scheduler.Scheduler, options []content.LanguageOption, onSelect func(domain.Locale), opts ...Option) *Selector {
	s := &Selector{
		options:     options,
		revealDelay: DefaultRevealDelay,
		ackDelay:    DefaultAckDelay,
		logger:      logging.NewNop(),
		onSelect:    onSelect,
		scope:       sched.Scope(),
		selected:    -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start schedules the reveal.
func (s *Selector) Start() {
	if s.started {
		return
	}
	s.started = true
	s.scope.After(s.revealDelay, func() {
		s.visible = true
		if s.autoSelect != "" {
			if i := s.indexOf(s.autoSelect); i >= 0 {
				s.Select(i)
			}
		}
	})
}

// Select records option i and calls back after the acknowledgement delay.
// It returns false when the options are hidden, i is out of range, or a choice
// was already recorded.
func (s *Selector) Select(i int) bool {
	if !s.visible || s.chosen || i < 0 || i >= len(s.options) {
		return false
	}
	s.highlight = i
	s.record(i, s.options[i].Locale)
	return true
}

// Cancel resolves to the default locale through the same acknowledgement path.
// It works before the options are revealed.
func (s *Selector) Cancel() bool {
	if !s.started || s.chosen {
		return false
	}
	i := s.indexOf(domain.DefaultLocale)
	if i >= 0 {
		s.highlight = i
	}
	s.record(i, domain.DefaultLocale)
	return true
}

func (s *Selector) record(i int, locale domain.Locale) {
	s.chosen = true
	s.selected = i
	s.logger.Debug("language chosen", "locale", locale)
	s.scope.After(s.ackDelay, func() {
		s.done = true
		s.scope.Dispose()
		if s.onSelect != nil {
			s.onSelect(locale)
		}
	})
}

// HandleKey maps keyboard input to selector operations and reports whether the key was consumed.
// Arrows and Tab move the highlight, Enter selects it, digits pick an option directly,
// Escape cancels.
func (s *Selector) HandleKey(k domain.Key) bool {
	switch k.Code {
	case domain.KeyEscape:
		return s.Cancel()
	case domain.KeyUp, domain.KeyLeft:
		return s.move(-1)
	case domain.KeyDown, domain.KeyRight, domain.KeyTab:
		return s.move(1)
	case domain.KeyEnter:
		return s.Select(s.highlight)
	case domain.KeyRune:
		if k.Rune >= '1' && k.Rune <= '9' {
			return s.Select(int(k.Rune - '1'))
		}
	}
	return false
}

func (s *Selector) move(delta int) bool {
	if !s.visible || s.chosen || len(s.options) == 0 {
		return false
	}
	n := len(s.options)
	s.highlight = ((s.highlight+delta)%n + n) % n
	return true
}

func (s *Selector) indexOf(locale domain.Locale) int {
	for i, opt := range s.options {
		if opt.Locale == locale {
			return i
		}
	}
	return -1
}

// Dispose cancels pending tasks without calling back.
func (s *Selector) Dispose() {
	s.done = true
	s.scope.Dispose()
}

// Snapshot returns the current render state.
func (s *Selector) Snapshot() Snapshot {
	return Snapshot{
		Visible:   s.visible,
		Options:   s.options,
		Highlight: s.highlight,
		Selected:  s.selected,
		Done:      s.done,
	}
}
