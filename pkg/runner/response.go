package runner

import (
	"github.com/aretw0/termfolio/pkg/domain"
	"github.com/aretw0/termfolio/pkg/terminal"
)

// Response combines the outcome of a command with what the client should display.
// It is shared by the line-mode shell and the HTTP adapter.
type Response struct {
	Input  string         `json:"input,omitempty"`
	Known  bool           `json:"known"`
	Action *domain.Action `json:"action,omitempty"`
	View   domain.View    `json:"view"`
	Error  string         `json:"error,omitempty"`
	// Lines is set only when the command changed what is displayed.
	Lines []string              `json:"lines,omitempty"`
	State *domain.TerminalState `json:"state,omitempty"`
}

// SubmitAndRender submits input to term and describes the result.
// Blank input yields a response with neither Error nor Lines.
func SubmitAndRender(term *terminal.Terminal, input string) *Response {
	before := len(term.History())
	res := term.Submit(input)

	resp := &Response{
		Input: input,
		Known: res.Known,
		View:  term.View(),
		State: term.State(),
	}
	if !res.Known {
		if h := term.History(); len(h) > before {
			resp.Error = h[len(h)-1].Error
		}
		return resp
	}

	action := res.Action
	resp.Action = &action
	if action.Kind != domain.ActionScroll {
		resp.Lines = term.Content()
	}
	return resp
}

// NavigateAndRender switches term to view and returns its content.
func NavigateAndRender(term *terminal.Terminal, view domain.View) (*Response, error) {
	if err := term.Navigate(view); err != nil {
		return nil, err
	}
	return Render(term), nil
}

// Render describes the current view without changing anything.
func Render(term *terminal.Terminal) *Response {
	return &Response{
		Known: true,
		View:  term.View(),
		Lines: term.Content(),
		State: term.State(),
	}
}
