package repository

import (
	"context"
	"errors"
	"fmt"

	"flightpocket/internal/domain/entity"
	"flightpocket/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFavoriteRepository implements FavoriteRepository on the gorm store
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new favorites repository
func NewGormFavoriteRepository(db *gorm.DB) repository.FavoriteRepository {
	return &GormFavoriteRepository{
		db: db,
	}
}

// Get finds a favorite by flight number
func (r *GormFavoriteRepository) Get(ctx context.Context, flightNumber string) (*entity.FavoriteRecord, error) {
	var record entity.FavoriteRecord
	result := r.db.WithContext(ctx).First(&record, "flight_number = ?", flightNumber)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, result.Error
	}
	return &record, nil
}

// Put upserts a favorite by flight number
func (r *GormFavoriteRepository) Put(ctx context.Context, record *entity.FavoriteRecord) error {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "flight_number"}},
		UpdateAll: true,
	}).Create(record)
	if result.Error != nil {
		return fmt.Errorf("put favorite %s: %w", record.FlightNumber, result.Error)
	}
	return nil
}

// Delete removes a favorite by flight number. Deleting an absent record is
// not an error.
func (r *GormFavoriteRepository) Delete(ctx context.Context, flightNumber string) error {
	result := r.db.WithContext(ctx).Delete(&entity.FavoriteRecord{}, "flight_number = ?", flightNumber)
	if result.Error != nil {
		return fmt.Errorf("delete favorite %s: %w", flightNumber, result.Error)
	}
	return nil
}

// ListAll returns every favorite in insertion order
func (r *GormFavoriteRepository) ListAll(ctx context.Context) ([]entity.FavoriteRecord, error) {
	var records []entity.FavoriteRecord
	result := r.db.WithContext(ctx).Order("created_at, flight_number").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}
