package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pinger is anything that can prove it is reachable. *pgxpool.Pool satisfies it directly.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type dependency struct {
	name   string
	pinger Pinger
}

// Monitor pings registered dependencies on demand; it keeps no background state.
type Monitor struct {
	timeout time.Duration
	logger  *zap.Logger

	mu   sync.RWMutex
	deps []dependency
}

func New(timeout time.Duration, logger *zap.Logger) *Monitor {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		timeout: timeout,
		logger:  logger,
	}
}

// Register adds a dependency. A nil pinger is recorded as permanently down.
func (m *Monitor) Register(name string, p Pinger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deps = append(m.deps, dependency{name: name, pinger: p})
}

// Check pings every dependency concurrently and waits for all answers.
func (m *Monitor) Check(ctx context.Context) Status {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	m.mu.RLock()
	deps := append([]dependency(nil), m.deps...)
	m.mu.RUnlock()

	results := make([]bool, len(deps))
	var wg sync.WaitGroup
	for i, dep := range deps {
		if dep.pinger == nil {
			continue
		}
		wg.Add(1)
		go func(i int, dep dependency) {
			defer wg.Done()
			if err := dep.pinger.Ping(ctx); err != nil {
				m.logger.Warn("dependency ping failed", zap.String("dependency", dep.name), zap.Error(err))
				return
			}
			results[i] = true
		}(i, dep)
	}
	wg.Wait()

	status := Status{
		Services:  make(map[string]bool, len(deps)),
		LastCheck: time.Now().UTC(),
	}
	for i, dep := range deps {
		status.Services[dep.name] = results[i]
	}
	return status
}
