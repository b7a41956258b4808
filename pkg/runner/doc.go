/*
Package runner implements the line-mode shell: the portfolio driven over plain standard
input and output instead of a full-screen terminal.

It is the bridge between the app state machines and a line-oriented stream. The runner
drives the same app.App as the full-screen UI: it replays the boot sequence as printed
progress lines, asks for a language, then loops reading commands. How things are printed
is delegated to an IOHandler, so the same loop serves humans (TextHandler) and scripts
(JSONHandler).

# Key Components

  - Runner: the orchestration loop.
  - IOHandler: decouples presentation from the loop (text or JSON lines).
  - Response: the outcome of one command, shared with the HTTP adapter.
  - SanitizeInput: size, UTF-8 and control character checks on every line read.

# Usage

	r := runner.NewRunner(catalog,
		runner.WithSkipBoot(true),
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
