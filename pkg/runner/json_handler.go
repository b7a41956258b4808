package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/aretw0/termfolio/pkg/content"
	"github.com/aretw0/termfolio/pkg/domain"
)

// Event types emitted by JSONHandler, one JSON object per line.
const (
	EventBoot      = "boot"
	EventLanguages = "languages"
	EventResponse  = "response"
	EventSystem    = "system"
)

// Event is the envelope of every line JSONHandler writes.
type Event struct {
	Type     string                   `json:"type"`
	Text     string                   `json:"text,omitempty"`
	Percent  *int                     `json:"percent,omitempty"`
	Options  []content.LanguageOption `json:"options,omitempty"`
	Response *Response                `json:"response,omitempty"`
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
type JSONHandler struct {
	Writer  io.Writer
	Encoder *json.Encoder

	lines *lineReader
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Writer:  w,
		Encoder: json.NewEncoder(w),
		lines:   newLineReader(r),
	}
}

func (h *JSONHandler) BootStep(ctx context.Context, step domain.BootStep, percent int) error {
	return h.Encoder.Encode(Event{Type: EventBoot, Text: step.Text, Percent: &percent})
}

func (h *JSONHandler) Languages(ctx context.Context, screen content.LanguageScreen) error {
	return h.Encoder.Encode(Event{Type: EventLanguages, Text: screen.Title, Options: screen.Options})
}

func (h *JSONHandler) Output(ctx context.Context, resp *Response) error {
	return h.Encoder.Encode(Event{Type: EventResponse, Response: resp})
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(Event{Type: EventSystem, Text: msg})
}

// Input accepts either a JSON string ("help") or raw text (help).
func (h *JSONHandler) Input(ctx context.Context, prompt string) (string, error) {
	text, err := h.lines.next(ctx, func(err error) {
		_ = h.SystemOutput(ctx, err.Error())
	})
	if err != nil {
		return "", err
	}

	// Try to unquote if it's a JSON string
	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		return val, nil
	}
	return text, nil
}
