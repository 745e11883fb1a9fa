package repository

import (
	"context"

	"flightpocket/internal/domain/entity"
)

// FlightFeedRepository defines the interface to the remote flight feed.
// Ping doubles as the reachability probe for the connectivity monitor.
type FlightFeedRepository interface {
	FetchUpcoming(ctx context.Context) ([]entity.Flight, error)
	SubmitInquiry(ctx context.Context, request *entity.PendingRequest) error
	Ping(ctx context.Context) error
}
