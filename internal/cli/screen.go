package cli

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/aretw0/termfolio/internal/presentation/screen"
	"github.com/aretw0/termfolio/pkg/app"
	"github.com/aretw0/termfolio/pkg/content"
	"github.com/aretw0/termfolio/pkg/observability"
)

// RunScreen hosts the app on a full-screen terminal until Ctrl+C or ctx is done.
func RunScreen(ctx context.Context, catalog *content.Catalog, opts RunOptions) error {
	logger, logCloser, err := NewLogger(opts.Config, opts.Debug, true)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	s := opts.Screen
	if s == nil {
		if s, err = tcell.NewScreen(); err != nil {
			return fmt.Errorf("failed to open terminal screen: %w", err)
		}
	}

	appOpts := []app.Option{
		app.WithSkipBoot(opts.Config.SkipBoot),
		app.WithHooks(observability.Hooks(logger, nil)),
	}
	if locale, ok := opts.Config.ParsedLocale(); ok {
		appOpts = append(appOpts, app.WithLocale(locale))
	}

	host, err := screen.New(s, catalog,
		screen.WithLogger(logger),
		screen.WithFrameDelay(opts.Config.FrameDelay),
		screen.WithAppOptions(appOpts...),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer host.Close()

	logger.Info("Screen session started")
	return handleExecutionError(host.Run(ctx))
}
