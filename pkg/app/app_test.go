package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/termfolio/pkg/content"
	"github.com/aretw0/termfolio/pkg/domain"
	"github.com/aretw0/termfolio/pkg/scheduler"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

type phaseLog struct {
	events []*domain.PhaseEvent
}

func (p *phaseLog) hooks() domain.Hooks {
	return domain.Hooks{OnPhaseChange: func(e *domain.PhaseEvent) { p.events = append(p.events, e) }}
}

func (p *phaseLog) phases() []domain.Phase {
	out := make([]domain.Phase, len(p.events))
	for i, e := range p.events {
		out[i] = e.To
	}
	return out
}

type surface struct{ w, h int }

func (s surface) Size() (int, int)              { return s.w, s.h }
func (s surface) OnResize(func(int, int)) func() { return func() {} }

func TestApp_FullLifecycle(t *testing.T) {
	sched := scheduler.New(epoch)
	log := &phaseLog{}
	a := New(sched, content.MustLoad(), WithHooks(log.hooks()), WithSurface(surface{20, 10}))
	a.Start()

	assert.Equal(t, domain.PhaseBooting, a.Phase())
	require.NotNil(t, a.Boot())
	assert.Nil(t, a.Selector())
	assert.True(t, a.Rain().Mounted())

	sched.Advance(at(4600))
	assert.Equal(t, domain.PhaseSelectingLanguage, a.Phase())
	assert.Nil(t, a.Boot())
	require.NotNil(t, a.Selector())

	sched.Advance(at(5100))
	assert.True(t, a.HandleKey(domain.RuneKey('2')))
	sched.Advance(at(5900))

	assert.Equal(t, domain.PhaseInteractive, a.Phase())
	assert.Equal(t, domain.LocaleFrench, a.Locale())
	assert.Nil(t, a.Selector())
	require.NotNil(t, a.Terminal())
	assert.Equal(t, domain.LocaleFrench, a.Terminal().Locale())

	for _, r := range "aide" {
		a.HandleKey(domain.RuneKey(r))
	}
	a.HandleKey(domain.Key{Code: domain.KeyEnter})
	assert.Equal(t, domain.ViewHelp, a.Terminal().View())

	assert.Equal(t, []domain.Phase{domain.PhaseSelectingLanguage, domain.PhaseInteractive}, log.phases())
	assert.Equal(t, domain.LocaleFrench, log.events[1].Locale)
}

func TestApp_SkipKeyDuringBoot(t *testing.T) {
	sched := scheduler.New(epoch)
	a := New(sched, content.MustLoad())
	a.Start()
	sched.Advance(at(200))

	assert.True(t, a.HandleKey(domain.RuneKey('s')))
	assert.Equal(t, domain.PhaseSelectingLanguage, a.Phase())

	// The skip key means nothing to the selector.
	assert.False(t, a.HandleKey(domain.RuneKey('s')))
}

func TestApp_SkipBootAndFixedLocale(t *testing.T) {
	sched := scheduler.New(epoch)
	log := &phaseLog{}
	a := New(sched, content.MustLoad(),
		WithSkipBoot(true),
		WithLocale(domain.LocaleFrench),
		WithHooks(log.hooks()),
	)
	a.Start()
	assert.Equal(t, domain.PhaseSelectingLanguage, a.Phase())

	sched.Advance(at(1300))
	assert.Equal(t, domain.PhaseInteractive, a.Phase())
	assert.Equal(t, domain.LocaleFrench, a.Locale())
	assert.Len(t, log.events, 2)
}

func TestApp_EscapeUsesDefaultLocale(t *testing.T) {
	sched := scheduler.New(epoch)
	a := New(sched, content.MustLoad(), WithSkipBoot(true))
	a.Start()

	a.HandleKey(domain.Key{Code: domain.KeyEscape})
	sched.Advance(at(800))
	assert.Equal(t, domain.PhaseInteractive, a.Phase())
	assert.Equal(t, domain.DefaultLocale, a.Locale())
}

func TestApp_LateCallbacksIgnored(t *testing.T) {
	sched := scheduler.New(epoch)
	log := &phaseLog{}
	a := New(sched, content.MustLoad(), WithSkipBoot(true), WithLocale(domain.LocaleEnglish), WithHooks(log.hooks()))
	a.Start()
	sched.Advance(at(1300))
	require.Equal(t, domain.PhaseInteractive, a.Phase())

	// Replay completions from components that are already gone.
	a.bootCompleted(nil)
	a.languageSelected(nil, domain.LocaleFrench)

	assert.Equal(t, domain.PhaseInteractive, a.Phase())
	assert.Equal(t, domain.LocaleEnglish, a.Locale())
	assert.Len(t, log.events, 2)
}

func TestApp_PhasesNeverGoBackwards(t *testing.T) {
	sched := scheduler.New(epoch)
	a := New(sched, content.MustLoad(), WithSkipBoot(true))
	a.Start()

	assert.False(t, a.advance(domain.PhaseBooting))
	assert.False(t, a.advance(domain.PhaseInteractive), "phases cannot be skipped")
	assert.Equal(t, domain.PhaseSelectingLanguage, a.Phase())
}

func TestApp_DisposeStopsEverything(t *testing.T) {
	sched := scheduler.New(epoch)
	a := New(sched, content.MustLoad(), WithSurface(surface{10, 5}))
	a.Start()
	sched.Advance(at(100))

	a.Dispose()
	assert.Equal(t, 0, sched.Pending())

	sched.Advance(at(60000))
	assert.Equal(t, domain.PhaseBooting, a.Phase())
	assert.False(t, a.HandleKey(domain.RuneKey('x')))
}

func TestApp_DisposeInteractive(t *testing.T) {
	sched := scheduler.New(epoch)
	a := New(sched, content.MustLoad(), WithSkipBoot(true), WithLocale(domain.LocaleEnglish))
	a.Start()
	sched.Advance(at(1300))
	require.NotNil(t, a.Terminal())

	a.Dispose()
	assert.Equal(t, 0, sched.Pending(), "cursor blink stops")
}

func TestApp_MissingDefaultTableDisposes(t *testing.T) {
	full := content.MustLoad()
	// Same screens, no locale tables.
	bare := &content.Catalog{Boot: full.Boot, Language: full.Language, Banner: full.Banner}

	sched := scheduler.New(epoch)
	log := &phaseLog{}
	a := New(sched, bare, WithSkipBoot(true), WithLocale(domain.LocaleFrench), WithHooks(log.hooks()), WithSurface(surface{10, 5}))
	a.Start()
	sched.Advance(at(1300))

	assert.True(t, a.Disposed())
	assert.Equal(t, domain.PhaseSelectingLanguage, a.Phase())
	assert.Nil(t, a.Terminal())
	assert.False(t, a.Rain().Mounted())
	assert.Equal(t, 0, sched.Pending())
	assert.False(t, a.HandleKey(domain.RuneKey('1')))
	assert.Len(t, log.events, 1)
}
