package netstatus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultInterval = 3 * time.Second

// Prober checks whether the network is reachable. A nil error means online.
type Prober interface {
	Probe(ctx context.Context) error
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(ctx context.Context) error

// Probe calls f.
func (f ProberFunc) Probe(ctx context.Context) error { return f(ctx) }

// Monitor polls a Prober and reports online/offline transitions to a single
// change handler. The handler runs on the monitor goroutine: once for the
// first observed state and then once per transition.
type Monitor struct {
	prober   Prober
	interval time.Duration
	logger   *zap.Logger

	mu        sync.Mutex
	handler   func(online bool)
	connected bool
	known     bool
	running   bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewMonitor builds a stopped Monitor. A non-positive interval uses the
// package default; a nil logger disables logging.
func NewMonitor(prober Prober, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = defaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	done := make(chan struct{})
	close(done)
	return &Monitor{
		prober:   prober,
		interval: interval,
		logger:   logger,
		done:     done,
	}
}

// SetChangeHandler replaces the change handler. Passing nil removes it.
func (m *Monitor) SetChangeHandler(fn func(online bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = fn
}

// Connected returns the last observed state. It is false before the first
// probe completes.
func (m *Monitor) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// Start launches the probe loop. It returns immediately; calling Start on a
// running monitor does nothing.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	m.running = true
	m.known = false
	m.cancel = cancel
	m.done = make(chan struct{})
	go m.loop(ctx, m.done)
}

// Stop cancels the probe loop without waiting for it, so it is safe to call
// from inside the change handler. Use Done to wait for the loop to exit.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	m.running = false
	m.cancel()
}

// Done is closed once the current probe loop has exited.
func (m *Monitor) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

func (m *Monitor) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		err := m.prober.Probe(ctx)
		if ctx.Err() != nil {
			return
		}
		m.observe(err == nil, err)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (m *Monitor) observe(online bool, probeErr error) {
	m.mu.Lock()
	changed := !m.known || m.connected != online
	m.known = true
	m.connected = online
	handler := m.handler
	m.mu.Unlock()

	if !changed {
		return
	}
	if online {
		m.logger.Info("network reachable")
	} else {
		m.logger.Warn("network unreachable", zap.Error(probeErr))
	}
	if handler != nil {
		handler(online)
	}
}
