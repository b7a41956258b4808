package screen

import (
	"github.com/gdamore/tcell/v2"

	"github.com/aretw0/termfolio/pkg/domain"
)

var keyMap = map[tcell.Key]domain.KeyCode{
	tcell.KeyEnter:      domain.KeyEnter,
	tcell.KeyEscape:     domain.KeyEscape,
	tcell.KeyBackspace:  domain.KeyBackspace,
	tcell.KeyBackspace2: domain.KeyBackspace,
	tcell.KeyUp:         domain.KeyUp,
	tcell.KeyDown:       domain.KeyDown,
	tcell.KeyLeft:       domain.KeyLeft,
	tcell.KeyRight:      domain.KeyRight,
	tcell.KeyPgUp:       domain.KeyPageUp,
	tcell.KeyPgDn:       domain.KeyPageDown,
	tcell.KeyTab:        domain.KeyTab,
	tcell.KeyF1:         domain.KeyF1,
	tcell.KeyF2:         domain.KeyF2,
	tcell.KeyF3:         domain.KeyF3,
	tcell.KeyF4:         domain.KeyF4,
	tcell.KeyF5:         domain.KeyF5,
	tcell.KeyCtrlC:      domain.KeyCtrlC,
}

// translateKey converts a tcell key event into the transport-neutral form.
func translateKey(ev *tcell.EventKey) (domain.Key, bool) {
	if ev.Key() == tcell.KeyRune {
		return domain.RuneKey(ev.Rune()), true
	}
	code, ok := keyMap[ev.Key()]
	return domain.Key{Code: code}, ok
}
