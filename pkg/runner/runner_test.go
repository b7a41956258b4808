package runner_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/termfolio/internal/presentation/tui"
	"github.com/aretw0/termfolio/pkg/adapters/memory"
	"github.com/aretw0/termfolio/pkg/content"
	"github.com/aretw0/termfolio/pkg/domain"
	"github.com/aretw0/termfolio/pkg/runner"
)

func epoch() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func newTextRunner(input string, opts ...runner.Option) (*runner.Runner, *bytes.Buffer) {
	out := &bytes.Buffer{}
	h := runner.NewTextHandler(strings.NewReader(input), out, runner.WithTextHandlerStyler(tui.PlainStyler()))
	base := []runner.Option{
		runner.WithInputHandler(h),
		runner.WithPacing(false),
		runner.WithClock(epoch),
	}
	return runner.NewRunner(content.MustLoad(), append(base, opts...)...), out
}

func TestRunner_FullSession(t *testing.T) {
	r, out := newTextRunner("2\naide\nxyz\nclear\n")

	require.NoError(t, r.Run(context.Background()))
	text := out.String()

	// Boot progress, one line per step.
	assert.Contains(t, text, "[ 14%] Initializing Dinahasina Portfolio OS...")
	assert.Contains(t, text, "[100%] System ready. Welcome to the Matrix.")

	// Language menu, then French content.
	assert.Contains(t, text, "🌐 Language Selection")
	assert.Contains(t, text, "  2) 🇫🇷 Français")
	assert.Contains(t, text, "dina@matrix:~$ ")
	assert.Contains(t, text, "📋 Commandes Disponibles :")
	assert.Contains(t, text, domain.NotFoundMessage("xyz"))

	// Welcome is printed on entry and again after clear.
	assert.Equal(t, 2, strings.Count(text, "Bienvenue dans l'Univers Numérique de Dinahasina"))
	assert.Less(t, strings.Index(text, "System ready"), strings.Index(text, "Language Selection"))
}

func TestRunner_SkipBootAndFixedLocale(t *testing.T) {
	r, out := newTextRunner("skills\n", runner.WithSkipBoot(true), runner.WithLocale(domain.LocaleEnglish))

	require.NoError(t, r.Run(context.Background()))
	text := out.String()

	assert.NotContains(t, text, "Initializing")
	assert.NotContains(t, text, "Language Selection")
	assert.Contains(t, text, "Welcome")
}

func TestRunner_HistoryKeepsRawInput(t *testing.T) {
	store := memory.NewStore()
	r, _ := newTextRunner("  Skills \n   \n",
		runner.WithSkipBoot(true),
		runner.WithLocale(domain.LocaleEnglish),
		runner.WithStore(store),
		runner.WithSessionID("raw"),
	)
	require.NoError(t, r.Run(context.Background()))

	state, err := store.Load(context.Background(), "raw")
	require.NoError(t, err)
	assert.Equal(t, domain.ViewSkills, state.View)
	require.Len(t, state.History, 1, "blank lines are skipped")
	assert.Equal(t, "  Skills ", state.History[0].Command)
}

func TestRunner_CatalogWithoutTables(t *testing.T) {
	full := content.MustLoad()
	bare := &content.Catalog{Boot: full.Boot, Language: full.Language}

	out := &bytes.Buffer{}
	r := runner.NewRunner(bare,
		runner.WithInputHandler(runner.NewTextHandler(strings.NewReader("1\n"), out)),
		runner.WithPacing(false),
		runner.WithClock(epoch),
		runner.WithSkipBoot(true),
	)
	assert.ErrorIs(t, r.Run(context.Background()), runner.ErrNoTable)
}

func TestRunner_LanguageChoice(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   string
	}{
		{"number", "1", "Available Commands"},
		{"code", "fr", "Commandes Disponibles"},
		{"blank means default", "", "Available Commands"},
		{"esc means default", "esc", "Available Commands"},
		{"retry after invalid", "9\nfr", "Commandes Disponibles"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out := newTextRunner(tt.answer+"\nls\n", runner.WithSkipBoot(true))
			require.NoError(t, r.Run(context.Background()))
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestRunner_InvalidChoiceIsReported(t *testing.T) {
	r, out := newTextRunner("klingon\n1\n", runner.WithSkipBoot(true))
	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, out.String(), `invalid choice: "klingon"`)
}

func TestRunner_EOFDuringLanguageUsesDefault(t *testing.T) {
	r, out := newTextRunner("", runner.WithSkipBoot(true))
	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, out.String(), "Welcome")
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, _ := newTextRunner("help\n")
	assert.NoError(t, r.Run(ctx))
}

func TestRunner_PersistsAndResumes(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	r, _ := newTextRunner("fr\ncompetences\nxyz\n",
		runner.WithSkipBoot(true),
		runner.WithStore(store),
		runner.WithSessionID("visitor"),
	)
	require.NoError(t, r.Run(ctx))

	state, err := store.Load(ctx, "visitor")
	require.NoError(t, err)
	assert.Equal(t, domain.LocaleFrench, state.Locale)
	assert.Equal(t, domain.ViewSkills, state.View)
	require.Len(t, state.History, 2)

	// A second run skips boot and language and continues the same session.
	r, out := newTextRunner("contact\n", runner.WithStore(store), runner.WithSessionID("visitor"))
	require.NoError(t, r.Run(ctx))
	assert.NotContains(t, out.String(), "Initializing")
	assert.NotContains(t, out.String(), "Language Selection")

	state, err = store.Load(ctx, "visitor")
	require.NoError(t, err)
	assert.Equal(t, domain.ViewContact, state.View)
	assert.Len(t, state.History, 3)
}

func TestRunner_JSONMode(t *testing.T) {
	out := &bytes.Buffer{}
	h := runner.NewJSONHandler(strings.NewReader("\"en\"\n\"skills\"\nnope\n"), out)
	r := runner.NewRunner(content.MustLoad(),
		runner.WithInputHandler(h),
		runner.WithPacing(false),
		runner.WithClock(epoch),
	)
	require.NoError(t, r.Run(context.Background()))

	var events []runner.Event
	scanner := bufio.NewScanner(out)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var e runner.Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e), scanner.Text())
		events = append(events, e)
	}

	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	assert.Equal(t, runner.EventBoot, types[0])
	require.Len(t, events, 7+1+3)
	assert.Equal(t, runner.EventLanguages, types[7])
	require.NotNil(t, events[7].Options)
	assert.Len(t, events[7].Options, 2)

	welcome := events[8].Response
	require.NotNil(t, welcome)
	assert.Equal(t, domain.ViewWelcome, welcome.View)

	skills := events[9].Response
	require.NotNil(t, skills)
	assert.True(t, skills.Known)
	assert.Equal(t, domain.ViewSkills, skills.View)
	assert.NotEmpty(t, skills.Lines)

	miss := events[10].Response
	require.NotNil(t, miss)
	assert.False(t, miss.Known)
	assert.Equal(t, domain.NotFoundMessage("nope"), miss.Error)
	assert.Empty(t, miss.Lines)
}

func TestParseChoice(t *testing.T) {
	opts := content.MustLoad().LanguageOptions()

	i, err := runner.ParseChoice(" 2 ", opts)
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	i, err = runner.ParseChoice("Français", opts)
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	i, err = runner.ParseChoice("ESC", opts)
	require.NoError(t, err)
	assert.Equal(t, -1, i)

	_, err = runner.ParseChoice("0", opts)
	assert.ErrorIs(t, err, runner.ErrInvalidChoice)
}
