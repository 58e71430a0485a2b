package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/yndnr/memkv-go/internal/telemetry/logger"
)

// Hook releases one resource before the process exits.
type Hook func(context.Context) error

type namedHook struct {
	name string
	fn   Hook
}

// Handler handles graceful shutdown.
type Handler struct {
	timeout time.Duration
	logger  logger.Logger

	mu    sync.Mutex
	hooks []namedHook

	trigger     chan struct{}
	triggerOnce sync.Once
	done        chan struct{}
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used to report hook progress.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		h.logger = l
	}
}

// NewHandler creates a shutdown handler whose hooks must finish within
// timeout.
func NewHandler(timeout time.Duration, opts ...Option) *Handler {
	h := &Handler{
		timeout: timeout,
		trigger: make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = logger.Default()
	}
	return h
}

// OnShutdown registers a shutdown hook.
// Hooks are called in reverse order of registration.
func (h *Handler) OnShutdown(name string, hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, namedHook{name: name, fn: hook})
}

// Trigger starts shutdown without a signal. Safe to call more than once.
func (h *Handler) Trigger() {
	h.triggerOnce.Do(func() { close(h.trigger) })
}

// Wait blocks until a termination signal, Trigger or ctx cancellation,
// then runs the hooks. Hook failures are joined and each is prefixed with
// the hook name.
func (h *Handler) Wait(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		h.logger.Info("shutdown signal received", "signal", sig.String())
	case <-h.trigger:
		h.logger.Info("shutdown triggered")
	case <-ctx.Done():
		h.logger.Info("shutdown on context done", "cause", context.Cause(ctx))
	}

	return h.run()
}

func (h *Handler) run() error {
	defer close(h.done)

	// Detached from the wait context, which may already be cancelled.
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	h.mu.Lock()
	hooks := make([]namedHook, len(h.hooks))
	copy(hooks, h.hooks)
	h.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		hook := hooks[i]
		start := time.Now()
		if err := hook.fn(ctx); err != nil {
			h.logger.Warn("shutdown hook failed", "hook", hook.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", hook.name, err))
			continue
		}
		h.logger.Debug("shutdown hook done", "hook", hook.name, "duration", time.Since(start))
	}

	return errors.Join(errs...)
}

// Done returns a channel that closes when shutdown is complete.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
