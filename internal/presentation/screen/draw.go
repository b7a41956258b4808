package screen

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/aretw0/termfolio/pkg/boot"
	"github.com/aretw0/termfolio/pkg/content"
	"github.com/aretw0/termfolio/pkg/domain"
	"github.com/aretw0/termfolio/pkg/language"
	"github.com/aretw0/termfolio/pkg/terminal"
)

var (
	colorGreen  = tcell.NewRGBColor(0, 255, 65)
	colorDim    = tcell.NewRGBColor(0, 143, 17)
	colorText   = tcell.NewRGBColor(200, 255, 200)
	colorError  = tcell.NewRGBColor(255, 85, 85)
	colorPanel  = tcell.NewRGBColor(5, 15, 5)
	colorSelect = tcell.NewRGBColor(0, 90, 20)

	styleBase     = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(colorGreen)
	stylePanel    = tcell.StyleDefault.Background(colorPanel).Foreground(colorText)
	styleBorder   = stylePanel.Foreground(colorGreen)
	styleTitle    = stylePanel.Foreground(colorGreen).Bold(true)
	styleDim      = stylePanel.Foreground(colorDim)
	styleError    = stylePanel.Foreground(colorError)
	styleHighlite = stylePanel.Background(colorSelect).Foreground(colorGreen).Bold(true)
)

const (
	panelMaxWidth = 76
	navGap        = 1
)

func (h *Host) draw() {
	h.hits = h.hits[:0]
	h.drawRain()

	switch {
	case h.app.Boot() != nil:
		h.drawBoot(h.app.Boot().Snapshot())
	case h.app.Selector() != nil:
		h.drawLanguage(h.app.Selector())
	case h.app.Terminal() != nil:
		h.drawTerminal(h.app.Terminal())
	}
}

func (h *Host) drawRain() {
	rain := h.app.Rain()
	for y := 0; y < h.height; y++ {
		for x := 0; x < h.width; x++ {
			var c = ' '
			style := styleBase
			if rain != nil {
				if cell := rain.Cell(x, y); cell.Glyph != 0 {
					c = cell.Glyph
					g := int32(40 + 215*cell.Intensity)
					style = styleBase.Foreground(tcell.NewRGBColor(0, g, g/4))
				}
			}
			h.screen.SetContent(x, y, c, nil, style)
		}
	}
}

// text draws s from x on row y, clipped at maxX, and returns the column after the last cell.
func (h *Host) text(x, y, maxX int, s string, style tcell.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		h.screen.SetContent(x, y, r, nil, style)
		for i := 1; i < w; i++ {
			h.screen.SetContent(x+i, y, ' ', nil, style)
		}
		x += w
	}
	return x
}

// box fills a bordered panel and returns its inner rectangle.
func (h *Host) box(x0, y0, w, ht int, style, border tcell.Style) (ix, iy, iw, ih int) {
	for y := y0; y < y0+ht; y++ {
		for x := x0; x < x0+w; x++ {
			r := ' '
			st := style
			switch {
			case (y == y0 || y == y0+ht-1) && (x == x0 || x == x0+w-1):
				r, st = '+', border
			case y == y0 || y == y0+ht-1:
				r, st = '─', border
			case x == x0 || x == x0+w-1:
				r, st = '│', border
			}
			h.screen.SetContent(x, y, r, nil, st)
		}
	}
	return x0 + 2, y0 + 1, w - 4, ht - 2
}

func (h *Host) centered(y, x0, w int, s string, style tcell.Style) {
	sw := runewidth.StringWidth(s)
	x := x0 + max((w-sw)/2, 0)
	h.text(x, y, x0+w, s, style)
}

func (h *Host) panelRect(lines int) (x0, y0, w, ht int) {
	w = min(panelMaxWidth, h.width-2)
	ht = min(lines+2, h.height)
	return (h.width - w) / 2, max((h.height-ht)/2, 0), w, ht
}

func (h *Host) drawBoot(snap boot.Snapshot) {
	screen := h.app.Catalog().Boot
	rows := 4 + len(screen.Menu) + 1 + 2 + 1 + 2 + 1 + len(screen.Footer)
	x0, y0, w, ht := h.panelRect(rows)
	if w < 10 || ht < 3 {
		return
	}
	ix, y, iw, _ := h.box(x0, y0, w, ht, stylePanel, styleBorder)
	maxX := ix + iw

	h.centered(y+1, ix, iw, screen.Title, styleTitle)
	h.centered(y+2, ix, iw, screen.Subtitle, styleDim)
	y += 4

	for i, item := range screen.Menu {
		style, pointer := stylePanel, "  "
		if i == 0 {
			style, pointer = styleHighlite, "► "
		}
		h.text(ix, y, maxX, pointer+item, style)
		y++
	}
	y++

	barWidth := max(iw-6, 1)
	filled := int(snap.Progress * float64(barWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	x := h.text(ix, y, maxX, bar, styleBorder)
	h.text(x+1, y, maxX, fmt.Sprintf("%3d%%", snap.Percent()), styleTitle)
	y += 2

	x = h.text(ix, y, maxX, snap.Text, stylePanel)
	h.text(x, y, maxX, "|", styleTitle)
	dots := ""
	for i := 0; i < 3; i++ {
		if snap.Step >= i {
			dots += "● "
		} else {
			dots += "○ "
		}
	}
	h.text(maxX-6, y, maxX, dots, styleDim)
	y += 2

	for _, line := range screen.Footer {
		h.text(ix, y, maxX, line, styleDim)
		y++
	}
}

func (h *Host) drawLanguage(sel *language.Selector) {
	snap := sel.Snapshot()
	if !snap.Visible {
		return
	}
	screen := h.app.Catalog().Language
	const optionHeight = 5
	x0, y0, w, ht := h.panelRect(4 + optionHeight + 2)
	if w < 20 || ht < 3 {
		return
	}
	ix, y, iw, _ := h.box(x0, y0, w, ht, stylePanel, styleBorder)

	h.centered(y+1, ix, iw, screen.Title, styleTitle)
	h.centered(y+2, ix, iw, screen.Subtitle, styleDim)
	y += 4

	n := max(len(snap.Options), 1)
	optW := (iw - (n-1)*2) / n
	for i, opt := range snap.Options {
		ox := ix + i*(optW+2)
		style := stylePanel
		switch {
		case snap.Selected == i:
			style = styleHighlite
		case snap.Selected < 0 && snap.Highlight == i:
			style = styleTitle
		}
		bx, by, bw, _ := h.box(ox, y, optW, optionHeight, style, style)
		h.centered(by, bx, bw, opt.Flag, style)
		h.centered(by+1, bx, bw, opt.Name, style)
		h.centered(by+2, bx, bw, opt.Description, style)

		index := i
		h.addHit(ox, y, ox+optW, y+optionHeight, func() { sel.Select(index) })
	}
	y += optionHeight + 1

	h.centered(y, ix, iw, screen.Footer, styleDim)
}

func (h *Host) drawTerminal(term *terminal.Terminal) {
	if h.width < 10 || h.height < 6 {
		return
	}
	table := term.Table()

	// Window frame leaves one row at the bottom for the nav bar.
	x0, y0 := 1, 0
	w, ht := h.width-2, h.height-1
	ix, iy, iw, ih := h.box(x0, y0, w, ht, stylePanel, styleBorder)
	maxX := ix + iw

	x := h.text(ix, iy, maxX, "● ● ●  ", styleError)
	h.text(x, iy, maxX, table.Prompt, styleTitle)

	viewportTop := iy + 2
	viewportRows := ih - 2
	lines := term.Transcript()
	offset := min(term.ScrollOffset(), max(len(lines)-1, 0))
	for row := 0; row < viewportRows && offset+row < len(lines); row++ {
		h.drawLine(ix, viewportTop+row, maxX, lines[offset+row])
	}
	h.drawPortrait()

	h.drawNav(term, table, h.height-1)
}

// viewport is the transcript area inside the frame drawTerminal draws.
func viewport(width, height int) (x, y, w, h int) {
	return 3, 3, width - 6, height - 5
}

func (h *Host) drawLine(x, y, maxX int, l terminal.Line) {
	switch l.Kind {
	case terminal.LineCommand, terminal.LineInput:
		x = h.text(x, y, maxX, l.Prompt, styleTitle)
		h.text(x+1, y, maxX, l.Text, stylePanel)
	case terminal.LineError:
		h.text(x, y, maxX, l.Text, styleError)
	default:
		h.text(x, y, maxX, l.Text, stylePanel)
	}
}

func (h *Host) drawNav(term *terminal.Terminal, table *content.Table, y int) {
	type button struct {
		label  string
		active bool
		action func()
	}
	buttons := []button{
		{label: "↑", action: func() { term.Scroll(domain.ScrollUp) }},
		{label: "↓", action: func() { term.Scroll(domain.ScrollDown) }},
	}
	for _, v := range domain.NavViews {
		view := v
		buttons = append(buttons, button{
			label:  table.Nav[view],
			active: term.View() == view,
			action: func() { _ = term.Navigate(view) },
		})
	}

	x := 1
	for _, b := range buttons {
		label := " " + b.label + " "
		style := styleDim
		if b.active {
			style = styleHighlite
		}
		end := h.text(x, y, h.width, label, style)
		if end > x {
			h.addHit(x, y, end, y+1, b.action)
		}
		x = end + navGap
	}
}
