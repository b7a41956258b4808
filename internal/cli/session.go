package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/termfolio/internal/presentation/tui"
	"github.com/aretw0/termfolio/pkg/content"
	"github.com/aretw0/termfolio/pkg/observability"
	"github.com/aretw0/termfolio/pkg/runner"
)

// RunShell drives a line-mode session on the configured streams.
func RunShell(ctx context.Context, catalog *content.Catalog, opts RunOptions) error {
	in, out := opts.streams()

	logger, logCloser, err := NewLogger(opts.Config, opts.Debug, !opts.Debug)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	runnerOpts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithSkipBoot(opts.Config.SkipBoot),
		runner.WithHooks(observability.Hooks(logger, nil)),
	}
	if locale, ok := opts.Config.ParsedLocale(); ok {
		runnerOpts = append(runnerOpts, runner.WithLocale(locale))
	}

	if opts.JSON {
		runnerOpts = append(runnerOpts,
			runner.WithInputHandler(runner.NewJSONHandler(in, out)),
			runner.WithPacing(false),
		)
	} else {
		styler := tui.PlainStyler()
		if opts.Stdout == nil {
			styler = tui.NewStyler()
		}
		runnerOpts = append(runnerOpts, runner.WithInputHandler(runner.NewTextHandler(in, out, runner.WithTextHandlerStyler(styler))))
	}

	if opts.SessionID != "" {
		backend, err := OpenBackend(ctx, opts.Config, StoreFile, logger)
		if err != nil {
			return fmt.Errorf("failed to open session store: %w", err)
		}
		defer backend.Close()

		_, loadErr := backend.Store.Load(ctx, opts.SessionID)
		if !opts.JSON {
			if loadErr == nil {
				printSystemMessage(out, "Resuming session '%s'...", opts.SessionID)
			} else {
				printSystemMessage(out, "Session '%s' active.", opts.SessionID)
			}
		}
		runnerOpts = append(runnerOpts, runner.WithStore(backend.Store), runner.WithSessionID(opts.SessionID))
	}

	r := runner.NewRunner(catalog, runnerOpts...)
	if err := handleExecutionError(r.Run(ctx)); err != nil {
		return err
	}

	if opts.SessionID != "" && !opts.JSON {
		printSystemMessage(out, "Session '%s' saved.", opts.SessionID)
	}
	return nil
}
