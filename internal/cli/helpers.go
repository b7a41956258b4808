package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/termfolio/internal/config"
	"github.com/aretw0/termfolio/internal/logging"
	"github.com/aretw0/termfolio/pkg/adapters/file"
	"github.com/aretw0/termfolio/pkg/adapters/memory"
	"github.com/aretw0/termfolio/pkg/adapters/redis"
	"github.com/aretw0/termfolio/pkg/persistence/middleware"
	"github.com/aretw0/termfolio/pkg/ports"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger configures the application logger.
// A log file always wins. Quiet callers (the full-screen UI owns the terminal) get a no-op
// logger otherwise; everyone else logs to stderr.
func NewLogger(cfg config.Config, debug, quiet bool) (*slog.Logger, io.Closer, error) {
	level := cfg.Level()
	if debug {
		level = slog.LevelDebug
	}
	if cfg.LogFile != "" {
		return logging.NewFile(cfg.LogFile, level)
	}
	if quiet {
		return logging.NewNop(), nopCloser{}, nil
	}
	return logging.New(level), nopCloser{}, nil
}

// StoreKind selects the fallback backend when no Redis URL is configured.
type StoreKind int

const (
	// StoreMemory keeps sessions for the life of the process.
	StoreMemory StoreKind = iota
	// StoreFile writes sessions under Config.SessionDir.
	StoreFile
)

// Backend bundles the session store with its optional distributed locker.
type Backend struct {
	Store  ports.SessionStore
	Locker ports.DistributedLocker
	closer io.Closer
}

// Close releases the backend connection, if any.
func (b *Backend) Close() error {
	return b.closer.Close()
}

// OpenBackend builds the session store: Redis when a URL is configured, otherwise fallback.
// Redaction wraps the store when Config.Redact is set.
func OpenBackend(ctx context.Context, cfg config.Config, fallback StoreKind, logger *slog.Logger) (*Backend, error) {
	b := &Backend{closer: nopCloser{}}

	switch {
	case cfg.RedisURL != "":
		rs, err := redis.NewFromURL(cfg.RedisURL, redis.WithTTL(cfg.SessionTTL))
		if err != nil {
			return nil, err
		}
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, fmt.Errorf("redis unreachable: %w", err)
		}
		logger.Info("Session store ready", "backend", "redis", "ttl", cfg.SessionTTL)
		b.Store, b.closer = rs, rs
		b.Locker = redis.NewLocker(rs.Client(), rs.Prefix())
	case fallback == StoreFile:
		fstore := file.New(cfg.SessionDir)
		logger.Info("Session store ready", "backend", "file", "dir", fstore.BasePath)
		b.Store = fstore
	default:
		logger.Info("Session store ready", "backend", "memory")
		b.Store = memory.NewStore()
	}

	if cfg.Redact {
		redact, err := middleware.NewRedactMiddleware(middleware.DefaultRedactPatterns)
		if err != nil {
			_ = b.Close()
			return nil, err
		}
		b.Store = middleware.Chain(b.Store, redact)
	}
	return b, nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, io.EOF)
}

// handleExecutionError maps interruptions to a clean exit.
func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}
