package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/termfolio/internal/presentation/tui"
	"github.com/aretw0/termfolio/pkg/domain"
)

func plainHandler(input string) (*TextHandler, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewTextHandler(strings.NewReader(input), out, WithTextHandlerStyler(tui.PlainStyler())), out
}

func TestTextHandler_Input(t *testing.T) {
	h, out := plainHandler("  my user input  \n")

	val, err := h.Input(context.Background(), "dina@matrix:~$ ")
	require.NoError(t, err)
	assert.Equal(t, "  my user input  ", val, "only the line ending is stripped")
	assert.Equal(t, "dina@matrix:~$ ", out.String())

	_, err = h.Input(context.Background(), ">")
	assert.ErrorIs(t, err, io.EOF)
}

func TestTextHandler_InputStripsCRLF(t *testing.T) {
	h, _ := plainHandler("help\r\n")

	val, err := h.Input(context.Background(), ">")
	require.NoError(t, err)
	assert.Equal(t, "help", val)
}

func TestTextHandler_InputRetriesRejectedLines(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "8")
	h, out := plainHandler("far too long for the limit\nhelp\n")

	val, err := h.Input(context.Background(), ">")
	require.NoError(t, err)
	assert.Equal(t, "help", val)
	assert.Contains(t, out.String(), "Please try again.")
}

func TestTextHandler_InputHonoursContext(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	h := NewTextHandler(r, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := h.Input(ctx, ">")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTextHandler_Output(t *testing.T) {
	h, out := plainHandler("")

	require.NoError(t, h.Output(context.Background(), &Response{Lines: []string{"one", "two"}}))
	require.NoError(t, h.Output(context.Background(), &Response{Error: "bad", Lines: []string{"hidden"}}))
	require.NoError(t, h.BootStep(context.Background(), domain.BootStep{Text: "Loading"}, 7))

	assert.Equal(t, "one\ntwo\nbad\n[  7%] Loading\n", out.String())
}
