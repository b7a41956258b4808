/*
Package terminal implements the interactive command interpreter of the portfolio.

A Terminal resolves typed commands against a locale Table, keeps the command history, and
tracks which View is displayed along with the scroll offset of the content pane. It never
executes anything: every command either selects a View, clears the history, scrolls, or is
reported inline as not found. Unknown commands are data, never Go errors.

The same Terminal backs the full-screen UI, the line-mode shell and the HTTP sessions. The
latter snapshot it with State and rebuild it with Restore between requests.

# Key Entities

  - Terminal: the interpreter state machine.
  - Result: what a submitted command did.
  - Line: one rendered transcript row with its role, for styling.
*/
package terminal
