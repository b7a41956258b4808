package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocale(t *testing.T) {
	l, err := ParseLocale(" FR ")
	require.NoError(t, err)
	assert.Equal(t, LocaleFrench, l)

	_, err = ParseLocale("de")
	assert.ErrorIs(t, err, ErrUnknownLocale)
}

func TestParseView(t *testing.T) {
	v, err := ParseView("Skills")
	require.NoError(t, err)
	assert.Equal(t, ViewSkills, v)

	_, err = ParseView("admin")
	assert.ErrorIs(t, err, ErrUnknownView)
	assert.False(t, View("").Valid())
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		raw     string
		want    Action
		wantErr bool
	}{
		{"clear", Action{Kind: ActionClear}, false},
		{"scroll-up", Action{Kind: ActionScroll, Direction: ScrollUp}, false},
		{"scroll-down", Action{Kind: ActionScroll, Direction: ScrollDown}, false},
		{"contact", Action{Kind: ActionView, View: ViewContact}, false},
		{"teleport", Action{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAction(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownAction)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.raw, got.String())
		})
	}
}

func TestAction_JSONUsesTableSpelling(t *testing.T) {
	data, err := json.Marshal(Action{Kind: ActionScroll, Direction: ScrollDown})
	require.NoError(t, err)
	assert.JSONEq(t, `"scroll-down"`, string(data))

	var a Action
	require.NoError(t, json.Unmarshal([]byte(`"profile"`), &a))
	assert.Equal(t, Action{Kind: ActionView, View: ViewProfile}, a)
}

func TestPhase_OnlyMovesForward(t *testing.T) {
	next, ok := PhaseBooting.Next()
	assert.True(t, ok)
	assert.Equal(t, PhaseSelectingLanguage, next)

	next, ok = next.Next()
	assert.True(t, ok)
	assert.Equal(t, PhaseInteractive, next)

	_, ok = next.Next()
	assert.False(t, ok)
	assert.Equal(t, "selecting_language", PhaseSelectingLanguage.String())
}

func TestTerminalState_Clone(t *testing.T) {
	s := NewTerminalState(LocaleFrench)
	s.History = append(s.History, HistoryEntry{Command: "aide"})

	c := s.Clone()
	c.History[0].Command = "changed"
	c.View = ViewSkills

	assert.Equal(t, "aide", s.History[0].Command)
	assert.Equal(t, ViewWelcome, s.View)
	assert.Nil(t, (*TerminalState)(nil).Clone())
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "Command not found: xyz123. Type 'help' for available commands.", NotFoundMessage("xyz123"))
}

func TestHooks_MergeAndNilSafety(t *testing.T) {
	var calls []string
	a := Hooks{OnCommand: func(*CommandEvent) { calls = append(calls, "a") }}
	b := Hooks{OnCommand: func(*CommandEvent) { calls = append(calls, "b") }}

	a.Merge(b).CommandSubmitted(&CommandEvent{})
	assert.Equal(t, []string{"a", "b"}, calls)

	assert.NotPanics(t, func() {
		var h Hooks
		h.PhaseChanged(&PhaseEvent{})
		h.Navigated(&NavigateEvent{})
		h.Merge(Hooks{}).CommandSubmitted(&CommandEvent{})
	})
}
