// Package matrix renders the falling-glyph background as a grid of fading cells.
//
// Rain owns no drawing code: the host reads cells through Cell and maps intensity to colour.
package matrix

import (
	"math/rand/v2"
	"time"

	"github.com/aretw0/termfolio/pkg/scheduler"
)

const (
	// TickInterval is the animation period (about 30 frames per second).
	TickInterval = 33 * time.Millisecond
	// Fade is the fraction of intensity every cell loses per tick.
	Fade = 0.05
	// ResetChance is the per-tick probability that a drop past the bottom restarts at the top.
	ResetChance = 0.025
	// MinIntensity is the level below which a cell is considered empty.
	MinIntensity = 0.05
)

// Glyphs are single-cell runes: half-width katakana, digits and latin capitals.
var Glyphs = []rune("ｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// Surface is the drawing area the rain is attached to.
type Surface interface {
	Size() (width, height int)
	// OnResize registers fn for size changes and returns a function that unregisters it.
	OnResize(fn func(width, height int)) (unsubscribe func())
}

// Cell is one grid position. A zero Glyph means empty.
type Cell struct {
	Glyph     rune
	Intensity float64
}

// Option configures a Rain.
type Option func(*Rain)

// WithRand injects the random source.
func WithRand(rnd *rand.Rand) Option {
	return func(r *Rain) {
		r.rnd = rnd
	}
}

// WithInterval overrides TickInterval.
func WithInterval(d time.Duration) Option {
	return func(r *Rain) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithGlyphs replaces the glyph set. An empty set keeps Glyphs.
func WithGlyphs(glyphs []rune) Option {
	return func(r *Rain) {
		if len(glyphs) > 0 {
			r.glyphs = glyphs
		}
	}
}

// WithFade overrides Fade. Values outside (0, 1] are ignored.
func WithFade(fade float64) Option {
	return func(r *Rain) {
		if fade > 0 && fade <= 1 {
			r.fade = fade
		}
	}
}

// WithScatteredDrops starts every new column at a random row instead of the top.
func WithScatteredDrops() Option {
	return func(r *Rain) {
		r.scatter = true
	}
}

// Rain is the matrix rain state. It is not safe for concurrent use.
type Rain struct {
	rnd         *rand.Rand
	interval    time.Duration
	glyphs      []rune
	fade        float64
	scatter     bool
	width       int
	height      int
	drops       []int
	cells       []Cell
	scope       *scheduler.Scope
	unsubscribe func()
}

// New creates an unmounted Rain.
func New(opts ...Option) *Rain {
	r := &Rain{interval: TickInterval, glyphs: Glyphs, fade: Fade}
	for _, opt := range opts {
		opt(r)
	}
	if r.rnd == nil {
		seed := uint64(time.Now().UnixNano())
		r.rnd = rand.New(rand.NewPCG(seed, seed>>32))
	}
	return r
}

// Mount sizes the grid to surface, follows its resizes and starts ticking on sched.
func (r *Rain) Mount(sched *scheduler.Scheduler, surface Surface) {
	r.Dispose()
	r.Resize(surface.Size())
	r.unsubscribe = surface.OnResize(r.Resize)
	r.scope = sched.Scope()
	r.scope.Every(r.interval, r.Tick)
}

// Resize changes the grid dimensions, keeping the overlapping region.
func (r *Rain) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	cells := make([]Cell, width*height)
	for y := 0; y < min(height, r.height); y++ {
		for x := 0; x < min(width, r.width); x++ {
			cells[y*width+x] = r.cells[y*r.width+x]
		}
	}

	drops := make([]int, width)
	n := copy(drops, r.drops)
	if r.scatter && height > 0 {
		for x := n; x < width; x++ {
			drops[x] = r.rnd.IntN(height)
		}
	}

	r.width, r.height = width, height
	r.cells, r.drops = cells, drops
}

// Tick advances the animation one frame.
func (r *Rain) Tick() {
	for i := range r.cells {
		c := &r.cells[i]
		c.Intensity *= 1 - r.fade
		if c.Intensity < MinIntensity {
			*c = Cell{}
		}
	}

	for x, row := range r.drops {
		if row >= 0 && row < r.height {
			r.cells[row*r.width+x] = Cell{
				Glyph:     r.glyphs[r.rnd.IntN(len(r.glyphs))],
				Intensity: 1,
			}
		}
		if row >= r.height && r.rnd.Float64() < ResetChance {
			r.drops[x] = 0
			continue
		}
		r.drops[x] = row + 1
	}
}

// Interval returns the tick period.
func (r *Rain) Interval() time.Duration {
	return r.interval
}

// Size returns the grid dimensions.
func (r *Rain) Size() (width, height int) {
	return r.width, r.height
}

// Cell returns the cell at x, y. Out of range positions are empty.
func (r *Rain) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return Cell{}
	}
	return r.cells[y*r.width+x]
}

// Drop returns the next row column x will draw at.
func (r *Rain) Drop(x int) int {
	if x < 0 || x >= r.width {
		return -1
	}
	return r.drops[x]
}

// Mounted reports whether the rain is ticking.
func (r *Rain) Mounted() bool {
	return r.scope != nil && !r.scope.Disposed()
}

// Dispose stops the animation and the resize subscription.
func (r *Rain) Dispose() {
	if r.scope != nil {
		r.scope.Dispose()
	}
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}
