package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventPhaseChange EventType = "phase_change"
	EventCommand     EventType = "command"
	EventNavigate    EventType = "navigate"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// PhaseEvent reports a lifecycle transition.
type PhaseEvent struct {
	EventBase
	From   Phase  `json:"from"`
	To     Phase  `json:"to"`
	Locale Locale `json:"locale,omitempty"`
}

// CommandEvent reports a submitted terminal command.
// Known is false for unrecognized input, in which case Action is the zero value.
type CommandEvent struct {
	EventBase
	Locale Locale `json:"locale"`
	Input  string `json:"input"`
	Known  bool   `json:"known"`
	Action Action `json:"action"`
}

// NavigateEvent reports a direct view selection.
type NavigateEvent struct {
	EventBase
	Locale Locale `json:"locale"`
	View   View   `json:"view"`
}

// Hooks are optional observers. They never influence control flow.
type Hooks struct {
	OnPhaseChange func(*PhaseEvent)
	OnCommand     func(*CommandEvent)
	OnNavigate    func(*NavigateEvent)
}

// PhaseChanged invokes OnPhaseChange when set.
func (h Hooks) PhaseChanged(e *PhaseEvent) {
	if h.OnPhaseChange != nil {
		h.OnPhaseChange(e)
	}
}

// CommandSubmitted invokes OnCommand when set.
func (h Hooks) CommandSubmitted(e *CommandEvent) {
	if h.OnCommand != nil {
		h.OnCommand(e)
	}
}

// Navigated invokes OnNavigate when set.
func (h Hooks) Navigated(e *NavigateEvent) {
	if h.OnNavigate != nil {
		h.OnNavigate(e)
	}
}

// Merge returns hooks that call h first and then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnPhaseChange: func(e *PhaseEvent) { h.PhaseChanged(e); other.PhaseChanged(e) },
		OnCommand:     func(e *CommandEvent) { h.CommandSubmitted(e); other.CommandSubmitted(e) },
		OnNavigate:    func(e *NavigateEvent) { h.Navigated(e); other.Navigated(e) },
	}
}
