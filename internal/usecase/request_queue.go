package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"flightpocket/internal/domain/entity"
	"flightpocket/internal/domain/repository"
	"flightpocket/pkg/logger"
	"flightpocket/pkg/metrics"
)

// ErrSyncUnavailable reports that a request was durably queued but no
// deferred-delivery trigger could be armed, so automatic resync cannot be
// promised. The record is not lost.
var ErrSyncUnavailable = errors.New("deferred delivery is not available")

// SyncTrigger is the deferred-delivery collaborator the queue arms after
// persisting a request while offline.
type SyncTrigger interface {
	Arm(ctx context.Context) error
}

// SubmitOutcome says which path a submission took.
type SubmitOutcome string

const (
	// SubmitDelivered means the inquiry reached the feed immediately.
	SubmitDelivered SubmitOutcome = "delivered"
	// SubmitQueued means the inquiry is persisted for later delivery.
	SubmitQueued SubmitOutcome = "queued"
)

// SubmitResult reports how a submission ended up.
type SubmitResult struct {
	Outcome SubmitOutcome
	Request entity.PendingRequest
}

// RequestQueue accepts flight-info requests. Online submissions go straight
// to the feed; failed or offline submissions are durably persisted and
// delivered later by the sync trigger through Drain.
type RequestQueue struct {
	feedRepo     repository.FlightFeedRepository
	requestRepo  repository.PendingRequestRepository
	connectivity ConnectivitySource
	trigger      SyncTrigger
	logger       logger.Logger
	metrics      *metrics.Metrics

	// drainMu keeps concurrent drains from delivering a record twice.
	drainMu sync.Mutex
}

// NewRequestQueue creates a request queue. The trigger may be nil when the
// platform offers no deferred delivery; queued submissions then report
// ErrSyncUnavailable. Metrics may be nil.
func NewRequestQueue(
	feedRepo repository.FlightFeedRepository,
	requestRepo repository.PendingRequestRepository,
	connectivity ConnectivitySource,
	trigger SyncTrigger,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *RequestQueue {
	return &RequestQueue{
		feedRepo:     feedRepo,
		requestRepo:  requestRepo,
		connectivity: connectivity,
		trigger:      trigger,
		logger:       logger,
		metrics:      metrics,
	}
}

// Submit builds a request stamped with the current time and tries to get it
// to the feed. A delivery failure while nominally online falls back to the
// queue instead of pretending success.
func (q *RequestQueue) Submit(ctx context.Context, name, flightNumber string) (SubmitResult, error) {
	if flightNumber == "" {
		return SubmitResult{}, ErrNoFlightNumber
	}

	request := entity.NewPendingRequest(name, flightNumber)

	if q.connectivity.IsOnline() {
		if err := q.feedRepo.SubmitInquiry(ctx, &request); err == nil {
			q.countSubmit(SubmitDelivered)
			return SubmitResult{Outcome: SubmitDelivered, Request: request}, nil
		} else {
			q.logger.Warn("Immediate delivery failed, queueing request",
				"flightNumber", flightNumber, "error", err)
		}
	}

	if err := q.requestRepo.Put(ctx, &request); err != nil {
		if q.metrics != nil {
			q.metrics.ErrorsCount.WithLabelValues("queue_request").Inc()
		}
		return SubmitResult{}, fmt.Errorf("queue request: %w", err)
	}
	q.countSubmit(SubmitQueued)
	q.updateDepth(ctx)

	result := SubmitResult{Outcome: SubmitQueued, Request: request}

	if q.trigger == nil {
		return result, ErrSyncUnavailable
	}
	if err := q.trigger.Arm(ctx); err != nil {
		q.logger.Warn("Could not arm sync trigger", "error", err)
		return result, ErrSyncUnavailable
	}

	q.logger.Info("Request queued for deferred delivery",
		"flightNumber", flightNumber, "requestId", request.ID)
	return result, nil
}

// ArmIfPending arms the sync trigger when the store still holds requests,
// typically leftovers from an earlier session. Without it, a process that
// starts offline would keep those records queued forever because nothing
// submits and arms in the new session.
func (q *RequestQueue) ArmIfPending(ctx context.Context) error {
	depth, err := q.Depth(ctx)
	if err != nil {
		return fmt.Errorf("inspect pending requests: %w", err)
	}
	if depth == 0 {
		return nil
	}
	q.updateDepth(ctx)

	if q.trigger == nil {
		return ErrSyncUnavailable
	}
	if err := q.trigger.Arm(ctx); err != nil {
		return err
	}
	q.logger.Info("Leftover requests scheduled for delivery on reconnect", "depth", depth)
	return nil
}

// Drain delivers queued requests oldest-first, deleting each on confirmed
// delivery and stopping at the first failure. A deleted record is never
// delivered again.
func (q *RequestQueue) Drain(ctx context.Context) (int, error) {
	q.drainMu.Lock()
	defer q.drainMu.Unlock()

	pending, err := q.requestRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list pending requests: %w", err)
	}

	delivered := 0
	for _, request := range pending {
		if err := q.feedRepo.SubmitInquiry(ctx, &request); err != nil {
			q.updateDepth(ctx)
			return delivered, fmt.Errorf("deliver request %s: %w", request.ID, err)
		}
		if err := q.requestRepo.Delete(ctx, request.ID); err != nil {
			// Stop rather than risk delivering the record again next drain.
			q.updateDepth(ctx)
			return delivered, fmt.Errorf("dequeue request %s: %w", request.ID, err)
		}
		delivered++
		if q.metrics != nil {
			q.metrics.RequestsDrained.Inc()
		}
	}

	if delivered > 0 {
		q.logger.Info("Request queue drained", "delivered", delivered)
	}
	q.updateDepth(ctx)
	return delivered, nil
}

// Depth returns the number of requests waiting for delivery.
func (q *RequestQueue) Depth(ctx context.Context) (int, error) {
	pending, err := q.requestRepo.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(pending), nil
}

func (q *RequestQueue) countSubmit(outcome SubmitOutcome) {
	if q.metrics != nil {
		q.metrics.SubmitsTotal.WithLabelValues(string(outcome)).Inc()
	}
}

func (q *RequestQueue) updateDepth(ctx context.Context) {
	if q.metrics == nil {
		return
	}
	if depth, err := q.Depth(ctx); err == nil {
		q.metrics.QueueDepth.Set(float64(depth))
	}
}
