package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/termfolio/pkg/domain"
	"github.com/aretw0/termfolio/pkg/ports"
)

// Mask replaces every redacted match.
const Mask = "***"

// DefaultRedactPatterns catch e-mail addresses and phone-like digit runs that
// visitors sometimes type at the prompt.
var DefaultRedactPatterns = []string{
	`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`,
	`\+?\d[\d \-]{7,}\d`,
}

type redactMiddleware struct {
	next     ports.SessionStore
	patterns []*regexp.Regexp
}

// NewRedactMiddleware creates a middleware that masks matches of the patterns in
// unrecognized commands before they are persisted. Recognized commands are table
// tokens and are stored as typed.
func NewRedactMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		patterns[i] = re
	}
	return func(next ports.SessionStore) ports.SessionStore {
		return &redactMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactMiddleware) Save(ctx context.Context, sessionID string, state *domain.TerminalState) error {
	// Clone to avoid side effects on the state the caller keeps using.
	cloned := state.Clone()
	for i, entry := range cloned.History {
		if entry.Error == "" {
			continue
		}
		cloned.History[i].Command = m.mask(entry.Command)
		cloned.History[i].Error = m.mask(entry.Error)
	}
	return m.next.Save(ctx, sessionID, cloned)
}

func (m *redactMiddleware) mask(s string) string {
	for _, p := range m.patterns {
		s = p.ReplaceAllString(s, Mask)
	}
	return s
}

func (m *redactMiddleware) Load(ctx context.Context, sessionID string) (*domain.TerminalState, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *redactMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *redactMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
