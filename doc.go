/*
Package termfolio is a terminal-themed personal portfolio.

A session boots like an old workstation, asks for a display language and then drops the
visitor into a small command interpreter whose commands show portfolio sections. Digital
rain falls behind everything.

The same session core serves three frontends:

  - a full-screen terminal UI (internal/presentation/screen, built on tcell),
  - a line-mode shell for pipes and dumb terminals (pkg/runner),
  - an HTTP API with stored sessions (pkg/adapters/http).

# Packages

  - pkg/domain: phases, locales, views, actions and the terminal snapshot.
  - pkg/content: the embedded, validated, per-locale text.
  - pkg/scheduler: the virtual clock every timer runs on.
  - pkg/boot, pkg/language, pkg/terminal, pkg/matrix: the four state machines.
  - pkg/app: composes them into one session.

# Usage

	catalog := content.MustLoad()
	sched := scheduler.New(time.Now())
	a := app.New(sched, catalog, app.WithSkipBoot(true))
	a.Start()
	for a.Phase() != domain.PhaseInteractive {
		due, _ := sched.NextDue()
		sched.Advance(due)
	}
*/
package termfolio
