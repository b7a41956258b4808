package content

import (
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/termfolio/pkg/domain"
)

func TestLoad_EmbeddedCatalogIsValid(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, domain.Locales, c.Locales())
	assert.Len(t, c.BootSteps(), 7)
	assert.Equal(t, time.Second, c.BootSteps()[0].Duration)
	assert.Equal(t, "System ready. Welcome to the Matrix.", c.BootSteps()[6].Text)
	assert.Len(t, c.Banner, 10)

	opts := c.LanguageOptions()
	require.Len(t, opts, 2)
	assert.Equal(t, domain.LocaleEnglish, opts[0].Locale)
	assert.Equal(t, "English / International", opts[0].Name+" / "+opts[0].Description)
	assert.Equal(t, "Français / Native", opts[1].Name+" / "+opts[1].Description)
}

func TestTable_EveryCommandResolvesToAValidAction(t *testing.T) {
	c := MustLoad()
	for _, locale := range c.Locales() {
		table, err := c.Table(locale)
		require.NoError(t, err)
		require.NotEmpty(t, table.Commands)

		for token, action := range table.Commands {
			switch action.Kind {
			case domain.ActionView:
				assert.True(t, action.View.Valid(), "%s: %s", locale, token)
			case domain.ActionClear:
			case domain.ActionScroll:
				assert.NotEqual(t, domain.ScrollNone, action.Direction, "%s: %s", locale, token)
			default:
				t.Errorf("%s: %s has kind %v", locale, token, action.Kind)
			}
		}
	}
}

func TestTable_Lookup(t *testing.T) {
	c := MustLoad()
	en, _ := c.Table(domain.LocaleEnglish)
	fr, _ := c.Table(domain.LocaleFrench)

	tests := []struct {
		table *Table
		token string
		want  domain.Action
		found bool
	}{
		{en, "about", domain.Action{Kind: domain.ActionView, View: domain.ViewProfile}, true},
		{en, "ls", domain.Action{Kind: domain.ActionView, View: domain.ViewHelp}, true},
		{en, "clear", domain.Action{Kind: domain.ActionClear}, true},
		{en, "up", domain.Action{Kind: domain.ActionScroll, Direction: domain.ScrollUp}, true},
		{fr, "effacer", domain.Action{Kind: domain.ActionClear}, true},
		{fr, "competences", domain.Action{Kind: domain.ActionView, View: domain.ViewSkills}, true},
		{fr, "bas", domain.Action{Kind: domain.ActionScroll, Direction: domain.ScrollDown}, true},
		{fr, "whoami", domain.Action{}, false},
		{en, "xyz123", domain.Action{}, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.table.Locale)+"/"+tt.token, func(t *testing.T) {
			got, ok := tt.table.Lookup(tt.token)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTable_Lines(t *testing.T) {
	c := MustLoad()
	en, _ := c.Table(domain.LocaleEnglish)

	welcome := en.Lines(domain.ViewWelcome)
	require.Greater(t, len(welcome), len(c.Banner))
	assert.Equal(t, c.Banner, welcome[:len(c.Banner)])

	help := en.Lines(domain.ViewHelp)
	require.Len(t, help, len(en.Help)+2)
	assert.Equal(t, en.HelpTitle, help[0])
	assert.Empty(t, help[1])
	assert.Contains(t, help[2], "whoami")
	assert.Contains(t, help[2], "Show welcome message")

	// Returned slices are copies.
	profile := en.Lines(domain.ViewProfile)
	profile[0] = "changed"
	assert.NotEqual(t, "changed", en.Lines(domain.ViewProfile)[0])
}

func TestTable_Tokens(t *testing.T) {
	en, _ := MustLoad().Table(domain.LocaleEnglish)
	tokens := en.Tokens()

	assert.Len(t, tokens, len(en.Commands))
	assert.Equal(t, "exit", tokens[0], "welcome tokens come first, alphabetically")
	assert.Equal(t, "up", tokens[len(tokens)-2])
	assert.Equal(t, "down", tokens[len(tokens)-1])
}

func TestCatalog_UnknownLocale(t *testing.T) {
	_, err := MustLoad().Table("de")
	assert.ErrorIs(t, err, domain.ErrUnknownLocale)
}

func embeddedCopy(t *testing.T) fstest.MapFS {
	t.Helper()
	out := fstest.MapFS{}
	err := fs.WalkDir(files, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(files, p)
		if err != nil {
			return err
		}
		out[p] = &fstest.MapFile{Data: data}
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestLoadFS_AggregatesEveryFailure(t *testing.T) {
	fsys := embeddedCopy(t)
	fsys["locales/fr.yaml"] = &fstest.MapFile{Data: []byte(`
locale: fr
prompt: ''
shell: 'dina@matrix:~$'
commands:
  aide: help
  bizarre: teleport
help:
  title: Aide
  entries:
    - command: aide
      description: aide
    - command: effacer
      description: effacer
nav:
  welcome: Accueil
views:
  welcome: ['bonjour']
`)}

	_, err := LoadFS(fsys)
	require.Error(t, err)

	errs := ValidationErrors(err)
	keys := make([]string, 0, len(errs))
	for _, e := range errs {
		var ve *ValidationError
		require.ErrorAs(t, e, &ve)
		assert.Equal(t, domain.LocaleFrench, ve.Locale)
		keys = append(keys, ve.Key)
	}

	assert.Contains(t, keys, "commands.bizarre")
	assert.Contains(t, keys, "prompt")
	assert.Contains(t, keys, "commands")
	assert.Contains(t, keys, "views.profile")
	assert.Contains(t, keys, "nav.contact")
	assert.Contains(t, keys, "help.entries")
}

func TestLoadFS_MissingLocaleFile(t *testing.T) {
	fsys := embeddedCopy(t)
	delete(fsys, "locales/fr.yaml")

	_, err := LoadFS(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing locales/fr.yaml")
	assert.Contains(t, err.Error(), "without a table")
}

func TestLoadFS_BrokenYAML(t *testing.T) {
	fsys := embeddedCopy(t)
	fsys["catalog.yaml"] = &fstest.MapFile{Data: []byte("boot: [unterminated")}

	_, err := LoadFS(fsys)
	require.Error(t, err)
	assert.Nil(t, ValidationErrors(err))
	assert.Contains(t, err.Error(), "catalog.yaml")
}

func TestLoadFS_PortraitIsOptional(t *testing.T) {
	assert.Len(t, MustLoad().Portrait, 10)

	fsys := embeddedCopy(t)
	delete(fsys, "portrait.txt")

	c, err := LoadFS(fsys)
	require.NoError(t, err)
	assert.Nil(t, c.Portrait)
}
