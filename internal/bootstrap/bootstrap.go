// Package bootstrap provides application lifecycle helpers.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

const DefaultShutdownTimeout = 10 * time.Second

// App manages application lifecycle with graceful shutdown support.
type App struct {
	mu              sync.Mutex
	hooks           []namedHook
	shutdownTimeout time.Duration
	signals         []os.Signal
}

type namedHook struct {
	name string
	fn   func(ctx context.Context) error
}

type Option func(*App)

func WithShutdownTimeout(d time.Duration) Option {
	return func(a *App) {
		a.shutdownTimeout = d
	}
}

// WithSignals replaces the signals that trigger a shutdown.
func WithSignals(signals ...os.Signal) Option {
	return func(a *App) {
		a.signals = signals
	}
}

func New(opts ...Option) *App {
	a := &App{
		shutdownTimeout: DefaultShutdownTimeout,
		signals:         []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddShutdownHook registers a function to call during graceful shutdown.
// Hooks run in reverse order of registration. Safe for concurrent use.
func (a *App) AddShutdownHook(name string, fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, namedHook{name: name, fn: fn})
}

// Run executes run until it returns or a signal arrives. Either way the
// shutdown hooks are called, bounded by the shutdown timeout, and their
// errors are joined with the one from run.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, a.signals...)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		slog.Default().Info("Shutting down", "cause", context.Cause(ctx))
	case runErr = <-errCh:
		errCh = nil
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), a.shutdownTimeout)
	defer shutdownCancel()
	shutdownErr := a.shutdown(shutdownCtx)

	if errCh != nil {
		select {
		case runErr = <-errCh:
		case <-shutdownCtx.Done():
			runErr = fmt.Errorf("run did not return after shutdown: %w", shutdownCtx.Err())
		}
	}
	return errors.Join(runErr, shutdownErr)
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	hooks := a.hooks
	a.hooks = nil
	a.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i].fn(ctx); err != nil {
			slog.Default().Error("Shutdown hook failed", "hook", hooks[i].name, "error", err)
			errs = append(errs, fmt.Errorf("%s > %w", hooks[i].name, err))
		}
	}
	return errors.Join(errs...)
}
