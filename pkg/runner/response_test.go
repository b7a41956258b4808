package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/termfolio/pkg/content"
	"github.com/aretw0/termfolio/pkg/domain"
	"github.com/aretw0/termfolio/pkg/terminal"
)

func newTerminal(t *testing.T) *terminal.Terminal {
	t.Helper()
	table, err := content.MustLoad().Table(domain.LocaleEnglish)
	require.NoError(t, err)
	return terminal.New(table)
}

func TestSubmitAndRender(t *testing.T) {
	term := newTerminal(t)

	resp := SubmitAndRender(term, "Skills")
	assert.True(t, resp.Known)
	require.NotNil(t, resp.Action)
	assert.Equal(t, domain.ActionView, resp.Action.Kind)
	assert.Equal(t, domain.ViewSkills, resp.View)
	assert.Equal(t, term.Content(), resp.Lines)
	assert.Equal(t, "Skills", resp.State.History[0].Command)

	resp = SubmitAndRender(term, "down")
	assert.True(t, resp.Known)
	assert.Nil(t, resp.Lines, "scrolling does not change the content")

	resp = SubmitAndRender(term, "xyz123")
	assert.False(t, resp.Known)
	assert.Nil(t, resp.Action)
	assert.Equal(t, domain.NotFoundMessage("xyz123"), resp.Error)

	resp = SubmitAndRender(term, "clear")
	assert.Equal(t, domain.ViewWelcome, resp.View)
	assert.Empty(t, resp.State.History)
	assert.NotEmpty(t, resp.Lines)

	resp = SubmitAndRender(term, "   ")
	assert.False(t, resp.Known)
	assert.Empty(t, resp.Error)
	assert.Empty(t, resp.State.History)
}

func TestNavigateAndRender(t *testing.T) {
	term := newTerminal(t)

	resp, err := NavigateAndRender(term, domain.ViewContact)
	require.NoError(t, err)
	assert.Equal(t, domain.ViewContact, resp.View)
	assert.Equal(t, term.Content(), resp.Lines)

	_, err = NavigateAndRender(term, domain.View("admin"))
	assert.ErrorIs(t, err, domain.ErrUnknownView)
}
