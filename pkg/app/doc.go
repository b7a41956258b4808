/*
Package app composes the portfolio session: the rain background and exactly one active
foreground component, advanced through the lifecycle phases.

An App starts in the booting phase with a boot.Sequencer. When boot completes it mounts a
language.Selector, and when a locale is chosen it mounts a terminal.Terminal for that locale.
Phases only move forward, and each transition happens only through the completion callback
of the component being left. Callbacks that arrive late, for a component already disposed,
are ignored.

Hosts (the tcell screen, the line-mode shell) own the scheduler clock and route key presses
through HandleKey.

# Key Entities

  - App: the root composer.
  - Option: functional configuration (logger, hooks, skip-boot, fixed locale, child options).
*/
package app
