package boot

import (
	"log/slog"
	"time"

	"github.com/aretw0/termfolio/internal/logging"
	"github.com/aretw0/termfolio/pkg/domain"
	"github.com/aretw0/termfolio/pkg/scheduler"
)

const (
	// DefaultCharDelay is the typewriter speed.
	DefaultCharDelay = 30 * time.Millisecond
	// DefaultSafetyTimeout forces completion if the steps have not finished.
	DefaultSafetyTimeout = 8 * time.Second
)

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sequencer) {
		s.logger = logger
	}
}

// WithCharDelay overrides the typewriter speed.
func WithCharDelay(d time.Duration) Option {
	return func(s *Sequencer) {
		s.charDelay = d
	}
}

// WithSafetyTimeout overrides the forced completion delay.
func WithSafetyTimeout(d time.Duration) Option {
	return func(s *Sequencer) {
		s.safetyTimeout = d
	}
}

// Snapshot is what a renderer needs to draw the boot panel.
type Snapshot struct {
	Step     int    // Zero-based index of the current step
	Total    int    // Number of steps
	Text     string // Revealed part of the current step text
	Progress float64
	Done     bool
}

// Percent is Progress rounded to a whole percentage.
func (s Snapshot) Percent() int {
	return int(s.Progress*100 + 0.5)
}

// Sequencer drives the boot steps.
type Sequencer struct {
	steps         []domain.BootStep
	charDelay     time.Duration
	safetyTimeout time.Duration
	logger        *slog.Logger
	onComplete    func()

	scope    *scheduler.Scope
	typer    *scheduler.Task
	index    int
	text     []rune
	revealed int
	started  bool
	done     bool
}

// New creates a Sequencer. onComplete runs at most once.
func New(sched *scheduler.Scheduler, steps []domain.BootStep, onComplete func(), opts ...Option) *Sequencer {
	s := &Sequencer{
		steps:         steps,
		charDelay:     DefaultCharDelay,
		safetyTimeout: DefaultSafetyTimeout,
		logger:        logging.NewNop(),
		onComplete:    onComplete,
		scope:         sched.Scope(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the sequence. Calling it again has no effect.
func (s *Sequencer) Start() {
	if s.started || s.done {
		return
	}
	s.started = true
	s.logger.Debug("boot started", "steps", len(s.steps))

	if len(s.steps) == 0 {
		s.complete("empty")
		return
	}
	s.scope.After(s.safetyTimeout, func() { s.complete("safety_timeout") })
	s.runStep(0)
}

func (s *Sequencer) runStep(i int) {
	s.typer.Cancel()

	step := s.steps[i]
	s.index = i
	s.text = []rune(step.Text)
	s.revealed = 0

	s.typer = s.scope.Every(s.charDelay, func() {
		if s.revealed < len(s.text) {
			s.revealed++
		}
		if s.revealed >= len(s.text) {
			s.typer.Cancel()
		}
	})

	s.scope.After(step.Duration, func() {
		if i+1 < len(s.steps) {
			s.runStep(i + 1)
			return
		}
		s.complete("finished")
	})
}

// Skip completes the sequence immediately.
func (s *Sequencer) Skip() {
	if !s.started {
		return
	}
	s.complete("skipped")
}

// HandleKey skips on 's' or 'S' and reports whether the key was consumed.
func (s *Sequencer) HandleKey(k domain.Key) bool {
	if k.Code == domain.KeyRune && (k.Rune == 's' || k.Rune == 'S') {
		s.Skip()
		return true
	}
	return false
}

func (s *Sequencer) complete(reason string) {
	if s.done {
		return
	}
	s.done = true
	s.scope.Dispose()
	s.logger.Info("boot complete", "reason", reason, "step", s.index)
	if s.onComplete != nil {
		s.onComplete()
	}
}

// Dispose cancels every pending task without calling back.
func (s *Sequencer) Dispose() {
	s.done = true
	s.scope.Dispose()
}

// Done reports whether the sequence has completed or been disposed.
func (s *Sequencer) Done() bool {
	return s.done
}

// Snapshot returns the current render state.
func (s *Sequencer) Snapshot() Snapshot {
	snap := Snapshot{
		Step:  s.index,
		Total: len(s.steps),
		Text:  string(s.text[:s.revealed]),
		Done:  s.done,
	}
	if s.started && snap.Total > 0 {
		snap.Progress = float64(s.index+1) / float64(snap.Total)
	}
	return snap
}
