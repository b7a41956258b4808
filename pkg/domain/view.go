package domain

import (
	"fmt"
	"strings"
)

// View is a named content section the terminal can display.
type View string

const (
	ViewWelcome    View = "welcome"
	ViewProfile    View = "profile"
	ViewExperience View = "experience"
	ViewSkills     View = "skills"
	ViewContact    View = "contact"
	ViewHelp       View = "help"
)

// Views is the closed set of views, in declaration order.
var Views = []View{ViewWelcome, ViewProfile, ViewExperience, ViewSkills, ViewContact, ViewHelp}

// NavViews are the views reachable from the navigation bar, in button order.
var NavViews = []View{ViewWelcome, ViewProfile, ViewExperience, ViewSkills, ViewContact}

// ParseView converts a name into a View.
func ParseView(name string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(name)))
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	return v, nil
}

// Valid reports whether v belongs to the closed View set.
func (v View) Valid() bool {
	for _, known := range Views {
		if v == known {
			return true
		}
	}
	return false
}

func (v View) String() string {
	return string(v)
}

// ScrollDirection is the direction of a content pane scroll.
type ScrollDirection int

const (
	ScrollUp ScrollDirection = iota - 1
	ScrollNone
	ScrollDown
)

func (d ScrollDirection) String() string {
	switch d {
	case ScrollUp:
		return "up"
	case ScrollDown:
		return "down"
	default:
		return "none"
	}
}

// ActionKind classifies what a command token does.
type ActionKind int

const (
	ActionView ActionKind = iota
	ActionClear
	ActionScroll
)

func (k ActionKind) String() string {
	switch k {
	case ActionView:
		return "view"
	case ActionClear:
		return "clear"
	case ActionScroll:
		return "scroll"
	default:
		return "unknown"
	}
}

// Action is the resolved meaning of a command token.
// View is set for ActionView, Direction for ActionScroll.
type Action struct {
	Kind      ActionKind
	View      View
	Direction ScrollDirection
}

// Raw table spellings of the pseudo-commands.
const (
	actionClear      = "clear"
	actionScrollUp   = "scroll-up"
	actionScrollDown = "scroll-down"
)

// ParseAction decodes a command table value: a view name, "clear", "scroll-up" or "scroll-down".
func ParseAction(raw string) (Action, error) {
	switch s := strings.ToLower(strings.TrimSpace(raw)); s {
	case actionClear:
		return Action{Kind: ActionClear}, nil
	case actionScrollUp:
		return Action{Kind: ActionScroll, Direction: ScrollUp}, nil
	case actionScrollDown:
		return Action{Kind: ActionScroll, Direction: ScrollDown}, nil
	default:
		v, err := ParseView(s)
		if err != nil {
			return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, raw)
		}
		return Action{Kind: ActionView, View: v}, nil
	}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionView:
		return string(a.View)
	case ActionClear:
		return actionClear
	case ActionScroll:
		if a.Direction == ScrollUp {
			return actionScrollUp
		}
		return actionScrollDown
	default:
		return "unknown"
	}
}

// MarshalText renders the action in its table spelling.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses the table spelling of an action.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
