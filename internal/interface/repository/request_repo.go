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

// GormPendingRequestRepository implements PendingRequestRepository on the
// gorm store
type GormPendingRequestRepository struct {
	db *gorm.DB
}

// NewGormPendingRequestRepository creates a new pending-requests repository
func NewGormPendingRequestRepository(db *gorm.DB) repository.PendingRequestRepository {
	return &GormPendingRequestRepository{
		db: db,
	}
}

// Get finds a pending request by id
func (r *GormPendingRequestRepository) Get(ctx context.Context, id string) (*entity.PendingRequest, error) {
	var request entity.PendingRequest
	result := r.db.WithContext(ctx).First(&request, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, result.Error
	}
	return &request, nil
}

// Put upserts a pending request by id
func (r *GormPendingRequestRepository) Put(ctx context.Context, request *entity.PendingRequest) error {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(request)
	if result.Error != nil {
		return fmt.Errorf("put request %s: %w", request.ID, result.Error)
	}
	return nil
}

// Delete removes a pending request by id, marking it delivered
func (r *GormPendingRequestRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&entity.PendingRequest{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete request %s: %w", id, result.Error)
	}
	return nil
}

// ListAll returns every pending request in delivery order, oldest first
func (r *GormPendingRequestRepository) ListAll(ctx context.Context) ([]entity.PendingRequest, error) {
	var requests []entity.PendingRequest
	result := r.db.WithContext(ctx).Order("timestamp, id").Find(&requests)
	if result.Error != nil {
		return nil, result.Error
	}
	return requests, nil
}
