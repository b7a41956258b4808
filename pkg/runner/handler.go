package runner

import (
	"context"

	"github.com/aretw0/termfolio/pkg/content"
	"github.com/aretw0/termfolio/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (humans) and JSON (scripts) modes.
type IOHandler interface {
	// BootStep presents one completed boot step and the overall progress.
	BootStep(ctx context.Context, step domain.BootStep, percent int) error

	// Languages presents the language menu.
	Languages(ctx context.Context, screen content.LanguageScreen) error

	// Output presents the outcome of a command.
	Output(ctx context.Context, resp *Response) error

	// SystemOutput presents a meta-message (rejected input, invalid choice).
	// This is distinct from content rendering.
	SystemOutput(ctx context.Context, msg string) error

	// Input reads one sanitized line. prompt may be ignored by structured handlers.
	Input(ctx context.Context, prompt string) (string, error)
}
