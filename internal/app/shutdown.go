package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"internship-monitor/internal/observability"
)

// GracefulShutdown returns a context that is cancelled on SIGINT or SIGTERM.
func GracefulShutdown(logger *observability.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	return watchSignals(ctx, cancel, logger, syscall.SIGINT, syscall.SIGTERM)
}

func watchSignals(ctx context.Context, cancel context.CancelFunc, logger *observability.Logger, signals ...os.Signal) (context.Context, context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, signals...)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
