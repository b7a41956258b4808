package screen

import (
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/aretw0/termfolio/pkg/domain"
	"github.com/aretw0/termfolio/pkg/matrix"
	"github.com/aretw0/termfolio/pkg/scheduler"
)

// Portrait box geometry, border included.
const (
	PortraitWidth  = 24
	PortraitHeight = 12

	// PortraitInterval is the slower tick of the overlay rain.
	PortraitInterval = 150 * time.Millisecond
	// PortraitFade keeps long trails over the art.
	PortraitFade = 0.03

	portraitGap = 2
	// portraitFloor hides faded trail cells so the art shows through.
	portraitFloor = 0.4
)

// PortraitGlyphs is the overlay charset: latin capitals, digits and symbols.
var PortraitGlyphs = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ123456789@#$%^&*()*&^%+-/~{[|`]}")

// portrait is the framed welcome-view art with its own rain layered on top.
type portrait struct {
	art    []string
	rain   *matrix.Rain
	logger *slog.Logger
}

func newPortrait(art []string, logger *slog.Logger, opts ...matrix.Option) *portrait {
	opts = append([]matrix.Option{
		matrix.WithInterval(PortraitInterval),
		matrix.WithGlyphs(PortraitGlyphs),
		matrix.WithFade(PortraitFade),
		matrix.WithScatteredDrops(),
	}, opts...)
	return &portrait{art: art, rain: matrix.New(opts...), logger: logger}
}

// Size implements matrix.Surface: the inside of the frame.
func (p *portrait) Size() (int, int) {
	return PortraitWidth - 2, PortraitHeight - 2
}

// OnResize implements matrix.Surface. The frame never changes size.
func (p *portrait) OnResize(func(int, int)) func() {
	return func() {}
}

func (p *portrait) mounted() bool {
	return p.rain.Mounted()
}

func (p *portrait) mount(sched *scheduler.Scheduler) {
	if len(p.art) == 0 {
		p.logger.Debug("no portrait art configured, drawing empty frame")
	} else {
		p.logger.Debug("portrait loaded", "rows", len(p.art))
	}
	p.rain.Mount(sched, p)
}

func (p *portrait) dispose() {
	p.rain.Dispose()
}

// portraitOrigin places the portrait at the top right of the terminal viewport when the
// welcome view is shown and the rows beside it leave room.
func (h *Host) portraitOrigin() (x, y int, ok bool) {
	term := h.app.Terminal()
	if term == nil || term.View() != domain.ViewWelcome || h.width < 10 || h.height < 6 {
		return 0, 0, false
	}
	ix, iy, iw, ih := viewport(h.width, h.height)
	if ih < PortraitHeight {
		return 0, 0, false
	}

	lines := term.Transcript()
	offset := min(term.ScrollOffset(), max(len(lines)-1, 0))
	widest := 0
	for row := 0; row < PortraitHeight && offset+row < len(lines); row++ {
		l := lines[offset+row]
		w := runewidth.StringWidth(l.Text)
		if l.Prompt != "" {
			w += runewidth.StringWidth(l.Prompt) + 1
		}
		widest = max(widest, w)
	}
	if widest+portraitGap+PortraitWidth > iw {
		return 0, 0, false
	}
	return ix + iw - PortraitWidth, iy, true
}

// syncPortrait mounts the overlay while the portrait is on screen and disposes it otherwise.
func (h *Host) syncPortrait() {
	_, _, show := h.portraitOrigin()
	switch {
	case show && !h.portrait.mounted():
		h.portrait.mount(h.sched)
	case !show && h.portrait.mounted():
		h.portrait.dispose()
	}
}

func (h *Host) drawPortrait() {
	x0, y0, ok := h.portraitOrigin()
	if !ok || !h.portrait.mounted() {
		return
	}
	ix, iy, _, _ := h.box(x0, y0, PortraitWidth, PortraitHeight, stylePanel, styleBorder)
	// box reserves a padding column; the rain uses the whole inside.
	ix--
	w, ht := h.portrait.Size()

	top := iy + max((ht-len(h.portrait.art))/2, 0)
	for i, line := range h.portrait.art {
		if top+i >= iy+ht {
			break
		}
		h.centered(top+i, ix, w, line, styleDim)
	}

	for y := 0; y < ht; y++ {
		for x := 0; x < w; x++ {
			cell := h.portrait.rain.Cell(x, y)
			if cell.Glyph == 0 || cell.Intensity < portraitFloor {
				continue
			}
			g := int32(60 + 195*cell.Intensity)
			h.screen.SetContent(ix+x, iy+y, cell.Glyph, nil, stylePanel.Foreground(tcell.NewRGBColor(0, g, 0)))
		}
	}
}
