package repository

import (
	"context"

	"flightpocket/internal/domain/entity"
)

// FavoriteRepository defines the interface for the favorites collection.
// Put upserts by flight number; ListAll returns records in insertion order.
type FavoriteRepository interface {
	Get(ctx context.Context, flightNumber string) (*entity.FavoriteRecord, error)
	Put(ctx context.Context, record *entity.FavoriteRecord) error
	Delete(ctx context.Context, flightNumber string) error
	ListAll(ctx context.Context) ([]entity.FavoriteRecord, error)
}
