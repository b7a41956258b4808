package domain

// KeyCode identifies a key independently of the terminal library in use.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyTab
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyCtrlC
)

// Key is a single key press. Rune is only meaningful for KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
}

// RuneKey is a shorthand for a printable key press.
func RuneKey(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}
