package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
)

const readyAttempts = 3

// var so tests can shorten the wait.
var readyDelay = 2 * time.Second

// WaitReady probes the engine until it answers or attempts are exhausted.
// A backend that is down fails the run here, before any page is rendered,
// instead of producing one failure outcome per page.
func WaitReady(ctx context.Context, engine Engine, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	err := retry.Do(
		func() error {
			return engine.Ready(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(readyAttempts),
		retry.Delay(readyDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Debug("engine not ready, retrying", "engine", engine.Name(), "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("engine %s is not ready: %w", engine.Name(), err)
	}
	return nil
}
