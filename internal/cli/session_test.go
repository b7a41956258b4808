package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/termfolio/internal/config"
	"github.com/aretw0/termfolio/pkg/adapters/file"
	"github.com/aretw0/termfolio/pkg/content"
	"github.com/aretw0/termfolio/pkg/domain"
	"github.com/aretw0/termfolio/pkg/runner"
)

func shellOptions(input string, mutate func(*config.Config)) (RunOptions, *bytes.Buffer) {
	cfg := config.Default()
	cfg.SkipBoot = true
	if mutate != nil {
		mutate(&cfg)
	}
	out := &bytes.Buffer{}
	return RunOptions{
		Config: cfg,
		Line:   true,
		Stdin:  strings.NewReader(input),
		Stdout: out,
	}, out
}

func TestRunShell_Text(t *testing.T) {
	opts, out := shellOptions("fr\ncompetences\nxyz\n", nil)

	require.NoError(t, RunShell(context.Background(), content.MustLoad(), opts))
	text := out.String()

	assert.Contains(t, text, "Language Selection")
	assert.Contains(t, text, "dina@matrix:~$ ")
	assert.Contains(t, text, domain.NotFoundMessage("xyz"))
	assert.NotContains(t, text, ">>>", "no session, no system messages")
}

func TestRunShell_JSON(t *testing.T) {
	opts, out := shellOptions(`"help"`+"\n", func(c *config.Config) { c.Locale = "en" })
	opts.JSON = true

	require.NoError(t, Execute(context.Background(), content.MustLoad(), opts))

	var events []runner.Event
	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		var ev runner.Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev), scanner.Text())
		events = append(events, ev)
	}
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, runner.EventResponse, last.Type)
	require.NotNil(t, last.Response)
	assert.Equal(t, domain.ViewHelp, last.Response.View)
}

func TestRunShell_SessionResume(t *testing.T) {
	dir := t.TempDir()
	withDir := func(c *config.Config) {
		c.SessionDir = dir
		c.Locale = "fr"
	}

	opts, out := shellOptions("contact\n", withDir)
	opts.SessionID = "visitor"
	require.NoError(t, RunShell(context.Background(), content.MustLoad(), opts))
	assert.Contains(t, out.String(), ">>> Session 'visitor' active.")
	assert.Contains(t, out.String(), ">>> Session 'visitor' saved.")

	state, err := file.New(dir).Load(context.Background(), "visitor")
	require.NoError(t, err)
	assert.Equal(t, domain.ViewContact, state.View)

	opts, out = shellOptions("", withDir)
	opts.SessionID = "visitor"
	require.NoError(t, RunShell(context.Background(), content.MustLoad(), opts))
	assert.Contains(t, out.String(), ">>> Resuming session 'visitor'...")
}
