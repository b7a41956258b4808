package domain

import "fmt"

// HistoryEntry is one submitted command.
// Command keeps the text exactly as typed; Error is set only for unrecognized commands.
type HistoryEntry struct {
	Command string `json:"command"`
	Error   string `json:"error,omitempty"`
}

// NotFoundMessage builds the inline error attached to an unrecognized command.
func NotFoundMessage(raw string) string {
	return fmt.Sprintf("Command not found: %s. Type 'help' for available commands.", raw)
}

// TerminalState is a serializable snapshot of a terminal session.
type TerminalState struct {
	Locale  Locale         `json:"locale"`
	View    View           `json:"view"`
	History []HistoryEntry `json:"history"`
	Scroll  int            `json:"scroll"`
}

// NewTerminalState returns the initial state of a terminal in the given locale.
func NewTerminalState(locale Locale) *TerminalState {
	return &TerminalState{
		Locale:  locale,
		View:    ViewWelcome,
		History: []HistoryEntry{},
	}
}

// Clone returns a deep copy so callers can mutate it safely.
func (s *TerminalState) Clone() *TerminalState {
	if s == nil {
		return nil
	}
	next := *s
	next.History = make([]HistoryEntry, len(s.History))
	copy(next.History, s.History)
	return &next
}
