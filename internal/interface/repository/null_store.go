package repository

import (
	"context"

	"flightpocket/internal/domain/entity"
	"flightpocket/internal/domain/repository"
)

// Null repositories back the degraded mode entered when the local store
// fails to open. Reads answer with empty results so the rest of the
// application keeps working; writes fail with ErrStoreUnavailable.

// NullFavoriteRepository is the degraded favorites collection
type NullFavoriteRepository struct{}

// NewNullFavoriteRepository creates a degraded favorites repository
func NewNullFavoriteRepository() repository.FavoriteRepository {
	return &NullFavoriteRepository{}
}

func (r *NullFavoriteRepository) Get(ctx context.Context, flightNumber string) (*entity.FavoriteRecord, error) {
	return nil, repository.ErrNotFound
}

func (r *NullFavoriteRepository) Put(ctx context.Context, record *entity.FavoriteRecord) error {
	return repository.ErrStoreUnavailable
}

func (r *NullFavoriteRepository) Delete(ctx context.Context, flightNumber string) error {
	return repository.ErrStoreUnavailable
}

func (r *NullFavoriteRepository) ListAll(ctx context.Context) ([]entity.FavoriteRecord, error) {
	return []entity.FavoriteRecord{}, nil
}

// NullPendingRequestRepository is the degraded pending-requests collection
type NullPendingRequestRepository struct{}

// NewNullPendingRequestRepository creates a degraded pending-requests
// repository
func NewNullPendingRequestRepository() repository.PendingRequestRepository {
	return &NullPendingRequestRepository{}
}

func (r *NullPendingRequestRepository) Get(ctx context.Context, id string) (*entity.PendingRequest, error) {
	return nil, repository.ErrNotFound
}

func (r *NullPendingRequestRepository) Put(ctx context.Context, request *entity.PendingRequest) error {
	return repository.ErrStoreUnavailable
}

func (r *NullPendingRequestRepository) Delete(ctx context.Context, id string) error {
	return repository.ErrStoreUnavailable
}

func (r *NullPendingRequestRepository) ListAll(ctx context.Context) ([]entity.PendingRequest, error) {
	return []entity.PendingRequest{}, nil
}
