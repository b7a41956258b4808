// Package screen hosts an app.App on a full-screen tcell terminal.
//
// One goroutine polls tcell events into a channel. The main loop drains that channel, advances
// the app scheduler with wall time, draws a frame and sleeps FrameDelay. The Host doubles as the
// matrix.Surface the rain background is attached to.
package screen

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/aretw0/termfolio/internal/logging"
	"github.com/aretw0/termfolio/pkg/app"
	"github.com/aretw0/termfolio/pkg/content"
	"github.com/aretw0/termfolio/pkg/scheduler"
)

// DefaultFrameDelay paces the render loop at about 30 frames per second.
const DefaultFrameDelay = 33 * time.Millisecond

// MaxLag caps animation catch-up after the process was stopped or suspended.
const MaxLag = time.Second

// Option configures a Host.
type Option func(*Host)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// WithFrameDelay overrides DefaultFrameDelay.
func WithFrameDelay(d time.Duration) Option {
	return func(h *Host) {
		if d > 0 {
			h.frameDelay = d
		}
	}
}

// WithClock replaces time.Now as the scheduler time source.
func WithClock(now func() time.Time) Option {
	return func(h *Host) {
		h.clock = now
	}
}

// WithAppOptions forwards options to the composed app.
func WithAppOptions(opts ...app.Option) Option {
	return func(h *Host) {
		h.appOpts = append(h.appOpts, opts...)
	}
}

// Host owns the tcell screen and the render loop.
type Host struct {
	screen     tcell.Screen
	app        *app.App
	sched      *scheduler.Scheduler
	frameDelay time.Duration
	clock      func() time.Time
	logger     *slog.Logger
	appOpts    []app.Option
	portrait   *portrait

	width, height int
	listeners     map[int]func(int, int)
	nextListener  int

	hits        []hitBox
	lastButtons tcell.ButtonMask

	events   chan tcell.Event
	quit     chan struct{}
	pollDone chan struct{}
	polling  bool
	closed   bool
}

// New initializes screen and composes the app on it.
func New(s tcell.Screen, catalog *content.Catalog, opts ...Option) (*Host, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}

	h := &Host{
		screen:     s,
		frameDelay: DefaultFrameDelay,
		clock:      time.Now,
		logger:     logging.NewNop(),
		listeners:  make(map[int]func(int, int)),
		events:     make(chan tcell.Event, 10),
		quit:       make(chan struct{}),
		pollDone:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}

	s.EnableMouse()
	s.HideCursor()
	s.SetStyle(styleBase)
	h.width, h.height = s.Size()

	h.sched = scheduler.New(h.clock(), scheduler.WithMaxLag(MaxLag))
	h.portrait = newPortrait(catalog.Portrait, h.logger)
	appOpts := append([]app.Option{app.WithLogger(h.logger), app.WithSurface(h)}, h.appOpts...)
	h.app = app.New(h.sched, catalog, appOpts...)
	return h, nil
}

// App returns the composed app.
func (h *Host) App() *app.App {
	return h.app
}

// Size implements matrix.Surface.
func (h *Host) Size() (int, int) {
	return h.width, h.height
}

// OnResize implements matrix.Surface.
func (h *Host) OnResize(fn func(int, int)) func() {
	id := h.nextListener
	h.nextListener++
	h.listeners[id] = fn
	return func() { delete(h.listeners, id) }
}

// Run starts the app and loops until ctx is done or the visitor quits.
func (h *Host) Run(ctx context.Context) error {
	h.app.Start()
	h.screen.Clear()

	h.polling = true
	go h.pollEvents()

	for {
		if ctx.Err() != nil {
			return nil
		}
		if done := h.processEvents(); done {
			return nil
		}
		h.Frame(h.clock())
		if h.app.Disposed() {
			return errors.New("app stopped")
		}
		time.Sleep(h.frameDelay)
	}
}

// Close tears down the app and restores the terminal. It is idempotent.
func (h *Host) Close() {
	if h.closed {
		return
	}
	h.closed = true
	close(h.quit)
	h.portrait.dispose()
	h.app.Dispose()
	h.screen.Fini()

	// Wait for pollEvents goroutine to finish
	if h.polling {
		select {
		case <-h.pollDone:
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// pollEvents reads events until the screen is finalized.
// When screen.Fini() is called (in Close()), PollEvent returns nil, ending this goroutine.
// Close also unblocks a send the main loop will never drain.
func (h *Host) pollEvents() {
	defer close(h.pollDone)
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case h.events <- ev:
		case <-h.quit:
			return
		}
	}
}

func (h *Host) processEvents() bool {
	for {
		select {
		case ev := <-h.events:
			if h.HandleEvent(ev) {
				return true
			}
		default:
			return false
		}
	}
}

// Frame advances the scheduler to now and draws.
func (h *Host) Frame(now time.Time) {
	h.sched.Advance(now)
	h.syncPortrait()
	h.draw()
	h.screen.Show()
}

// HandleEvent applies one tcell event and reports whether the visitor asked to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.resize()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			h.logger.Info("quit requested")
			return true
		}
		if k, ok := translateKey(ev); ok {
			h.app.HandleKey(k)
		}
	case *tcell.EventMouse:
		buttons := ev.Buttons()
		pressed := buttons&tcell.Button1 != 0 && h.lastButtons&tcell.Button1 == 0
		h.lastButtons = buttons
		if pressed {
			h.click(ev.Position())
		}
	}
	return false
}

func (h *Host) resize() {
	h.screen.Sync()
	h.width, h.height = h.screen.Size()
	h.logger.Debug("screen resized", "width", h.width, "height", h.height)
	for _, fn := range h.listeners {
		fn(h.width, h.height)
	}
}

// hitBox is a clickable region recorded while drawing.
type hitBox struct {
	x0, y0, x1, y1 int // inclusive-exclusive
	action         func()
}

func (h *Host) addHit(x0, y0, x1, y1 int, action func()) {
	h.hits = append(h.hits, hitBox{x0: x0, y0: y0, x1: x1, y1: y1, action: action})
}

func (h *Host) click(x, y int) {
	for _, b := range h.hits {
		if x >= b.x0 && x < b.x1 && y >= b.y0 && y < b.y1 {
			b.action()
			return
		}
	}
}
