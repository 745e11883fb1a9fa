package usecase

import (
	"context"
	"sync"

	"flightpocket/pkg/logger"
)

// Drainer is the queue side of deferred delivery.
type Drainer interface {
	Drain(ctx context.Context) (int, error)
}

// ReconnectTrigger is the default SyncTrigger: once armed, it drains the
// request queue on the next offline-to-online transition. It stands in for
// the platform's background-sync facility.
type ReconnectTrigger struct {
	connectivity ConnectivitySource
	logger       logger.Logger

	mu      sync.Mutex
	armed   bool
	drainer Drainer
	subID   int
}

// NewReconnectTrigger creates an unarmed trigger.
func NewReconnectTrigger(connectivity ConnectivitySource, logger logger.Logger) *ReconnectTrigger {
	return &ReconnectTrigger{
		connectivity: connectivity,
		logger:       logger,
	}
}

// Start binds the trigger to its drainer and subscribes to connectivity
// transitions. Split from the constructor because the queue and the trigger
// reference each other.
func (t *ReconnectTrigger) Start(drainer Drainer) {
	t.mu.Lock()
	t.drainer = drainer
	t.mu.Unlock()

	id := t.connectivity.Subscribe(func(online bool) {
		if !online {
			return
		}

		t.mu.Lock()
		armed := t.armed
		t.armed = false
		drainer := t.drainer
		t.mu.Unlock()

		if !armed || drainer == nil {
			return
		}

		delivered, err := drainer.Drain(context.Background())
		if err != nil {
			t.logger.Error("Deferred delivery failed, queue keeps remaining requests",
				"delivered", delivered, "error", err)
			// Stay armed so the next reconnect retries what is left.
			t.mu.Lock()
			t.armed = true
			t.mu.Unlock()
		}
	})

	t.mu.Lock()
	t.subID = id
	t.mu.Unlock()
}

// Stop detaches the trigger from the connectivity monitor.
func (t *ReconnectTrigger) Stop() {
	t.mu.Lock()
	id := t.subID
	t.mu.Unlock()

	t.connectivity.Unsubscribe(id)
}

// Arm requests a drain on the next reconnect.
func (t *ReconnectTrigger) Arm(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.drainer == nil {
		return ErrSyncUnavailable
	}
	t.armed = true
	return nil
}
