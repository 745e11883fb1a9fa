package repository

import (
	"context"

	"flightpocket/internal/domain/entity"
)

// PendingRequestRepository defines the interface for the pending-requests
// collection. ListAll returns records ordered by timestamp ascending, which
// is the delivery order the drain relies on.
type PendingRequestRepository interface {
	Get(ctx context.Context, id string) (*entity.PendingRequest, error)
	Put(ctx context.Context, request *entity.PendingRequest) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]entity.PendingRequest, error)
}
