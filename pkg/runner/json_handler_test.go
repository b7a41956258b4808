package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/termfolio/pkg/domain"
)

func TestJSONHandler_Output(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewJSONHandler(strings.NewReader(""), buf)

	err := handler.Output(context.Background(), &Response{Input: "help", Known: true, View: domain.ViewHelp})
	require.NoError(t, err)

	// Should be a single line of JSON
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var decoded Event
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &decoded))
	assert.Equal(t, EventResponse, decoded.Type)
	require.NotNil(t, decoded.Response)
	assert.Equal(t, domain.ViewHelp, decoded.Response.View)
}

func TestJSONHandler_Input(t *testing.T) {
	// JSON strings are unquoted, anything else is taken verbatim.
	handler := NewJSONHandler(strings.NewReader("\"Hello World\"\nplain text\n"), &bytes.Buffer{})

	val, err := handler.Input(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", val)

	val, err = handler.Input(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "plain text", val)
}

func TestJSONHandler_BootPercentAlwaysPresent(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewJSONHandler(strings.NewReader(""), buf)

	require.NoError(t, handler.BootStep(context.Background(), domain.BootStep{Text: "x"}, 0))
	assert.JSONEq(t, `{"type":"boot","text":"x","percent":0}`, buf.String())
}
