package lifecycle

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ShutdownFunc describes a graceful shutdown callback.
type ShutdownFunc func(ctx context.Context) error

type hook struct {
	name string
	fn   ShutdownFunc
}

// Manager runs a blocking component until a termination signal arrives,
// then unwinds the registered shutdown hooks.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger
	signals []os.Signal

	mu       sync.Mutex
	hooks    []hook
	shutdown bool
}

// New creates a lifecycle manager with the desired timeout.
func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		timeout: timeout,
		logger:  logger,
		signals: []os.Signal{syscall.SIGTERM, syscall.SIGINT},
	}
}

// Register adds a shutdown hook. Hooks are executed in reverse order.
func (m *Manager) Register(name string, fn ShutdownFunc) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, hook{name: name, fn: fn})
}

// Run calls serve with a context that is cancelled on SIGINT/SIGTERM or when
// parent ends, and always runs Shutdown afterwards. A serve error is returned
// joined with any hook failure.
func (m *Manager) Run(parent context.Context, serve func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(parent, m.signals...)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- serve(ctx) }()

	var (
		serveErr error
		returned bool
	)
	select {
	case serveErr = <-errCh:
		returned = true
	case <-ctx.Done():
		m.logger.Info("shutdown requested", zap.Error(context.Cause(ctx)))
	}

	shutdownErr := m.Shutdown(context.Background())
	if !returned {
		// serve returns once its listener is closed by a hook.
		select {
		case serveErr = <-errCh:
		case <-time.After(m.timeout):
			serveErr = errors.New("lifecycle: serve did not return after shutdown")
		}
	}
	return errors.Join(serveErr, shutdownErr)
}

// Shutdown executes all registered hooks once, respecting the configured timeout.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shutdown {
		return nil
	}
	m.shutdown = true

	var result error
	for i := len(m.hooks) - 1; i >= 0; i-- {
		h := m.hooks[i]
		if err := h.fn(ctx); err != nil {
			m.logger.Error("shutdown hook failed", zap.String("component", h.name), zap.Error(err))
			result = errors.Join(result, err)
			continue
		}
		m.logger.Info("component stopped", zap.String("component", h.name))
	}
	return result
}
