// Package main provides the Courseloom notification worker.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/courseloom/courseloom/pkg/eventbus"
	"github.com/courseloom/courseloom/pkg/notification"
)

// Worker consumes lifecycle events and delivers instructor notifications.
type Worker struct {
	id       string
	eventBus eventbus.EventBus
	notifier *notification.Notifier
	logger   *slog.Logger
}

// NewWorker creates a new Worker instance.
func NewWorker(id string, eventBus eventbus.EventBus, logger *slog.Logger) *Worker {
	return &Worker{
		id:       id,
		eventBus: eventBus,
		notifier: notification.NewNotifier(eventBus, notification.NewLogSender(logger), logger),
		logger:   logger.With("module", "notifier"),
	}
}

// Start begins consuming events and blocks until shutdown.
func (w *Worker) Start(ctx context.Context) error {
	wCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	w.logger.Info("Starting notifier")

	w.handleSignals(cancel)

	if err := w.notifier.Start(wCtx); err != nil {
		return err
	}

	<-wCtx.Done()

	w.logger.Info("Notifier stopped")

	return nil
}

// handleSignals sets up signal handling for graceful shutdown.
func (w *Worker) handleSignals(cancel context.CancelFunc) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-signals
		w.logger.Info("Received signal", "signal", sig)
		w.logger.Info("Shutting down gracefully...")
		cancel()
	}()
}
