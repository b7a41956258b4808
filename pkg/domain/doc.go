/*
Package domain contains the core models shared by every termfolio component.

It defines the closed enumerations the state machines move through (Phase, Locale, View),
the command Actions a locale table resolves tokens to, and the records the terminal keeps
(HistoryEntry, TerminalState). The package is pure and free of I/O so that the full-screen
UI, the line-mode shell and the HTTP server can all share it.

# Key Entities

  - Phase: top-level stage of a session (booting, language choice, interactive).
  - Locale: the display language, chosen once per session.
  - View: a named content section of the terminal.
  - Action: what a typed token resolves to (a View, clear, or a scroll).
  - HistoryEntry: one submitted command and its optional error message.
*/
package domain
