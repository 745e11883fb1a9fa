package connectivity

import (
	"context"
	"sync"
	"time"

	"flightpocket/pkg/logger"
)

const probeTimeout = 5 * time.Second

// Prober answers whether the remote side is reachable right now. The flight
// feed repository is the production prober.
type Prober interface {
	Ping(ctx context.Context) error
}

// Monitor tracks the binary online/offline state and notifies subscribers on
// transitions. State is driven by a ticker-based probe of the remote feed,
// or pushed in through SetOnline. Repeated identical signals never notify
// twice; there are no intermediate states and no debouncing.
type Monitor struct {
	prober   Prober
	interval time.Duration
	logger   logger.Logger

	mu       sync.Mutex
	online   bool
	nextID   int
	handlers map[int]func(online bool)

	done     chan struct{}
	stopOnce sync.Once
}

// NewMonitor creates a monitor with its initial state taken from an
// immediate probe. A nil prober starts the monitor offline and leaves state
// changes entirely to SetOnline.
func NewMonitor(prober Prober, interval time.Duration, logger logger.Logger) *Monitor {
	m := &Monitor{
		prober:   prober,
		interval: interval,
		logger:   logger,
		handlers: make(map[int]func(online bool)),
		done:     make(chan struct{}),
	}

	if prober != nil {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		m.online = prober.Ping(ctx) == nil
	}

	return m
}

// Start launches the background prober. No-op when the monitor has no prober.
func (m *Monitor) Start() {
	if m.prober == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-m.done:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
				err := m.prober.Ping(ctx)
				cancel()
				m.SetOnline(err == nil)
			}
		}
	}()
}

// Stop tears down the background prober.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.done)
	})
}

// IsOnline returns the last known connectivity state.
func (m *Monitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// SetOnline records a connectivity signal. Subscribers are notified
// synchronously, and only when the state actually flips.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online

	handlers := make([]func(online bool), 0, len(m.handlers))
	for _, h := range m.handlers {
		handlers = append(handlers, h)
	}
	m.mu.Unlock()

	m.logger.Info("Connectivity changed", "online", online)

	for _, h := range handlers {
		h(online)
	}
}

// Subscribe registers a transition handler and returns its handle.
func (m *Monitor) Subscribe(handler func(online bool)) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.handlers[m.nextID] = handler
	return m.nextID
}

// Unsubscribe detaches a handler so a torn-down owner is never called again.
func (m *Monitor) Unsubscribe(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.handlers, id)
}
