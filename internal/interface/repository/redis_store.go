package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"flightpocket/internal/domain/entity"
	"flightpocket/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// Redis store layout: one JSON value per record under <collection>:<key>,
// plus a ZSET per collection scored by insertion time so ListAll preserves
// insertion order.
const (
	favoritesKeyPrefix = "favorites:"
	favoritesIndexKey  = "favorites!index"
	requestsKeyPrefix  = "requests:"
	requestsIndexKey   = "requests!index"
)

// RedisFavoriteRepository implements FavoriteRepository on redis
type RedisFavoriteRepository struct {
	rdb *redis.Client
}

// NewRedisFavoriteRepository creates a redis-backed favorites repository
func NewRedisFavoriteRepository(rdb *redis.Client) repository.FavoriteRepository {
	return &RedisFavoriteRepository{rdb: rdb}
}

// Get finds a favorite by flight number
func (r *RedisFavoriteRepository) Get(ctx context.Context, flightNumber string) (*entity.FavoriteRecord, error) {
	data, err := r.rdb.Get(ctx, favoritesKeyPrefix+flightNumber).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var record entity.FavoriteRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode favorite %s: %w", flightNumber, err)
	}
	return &record, nil
}

// Put upserts a favorite by flight number
func (r *RedisFavoriteRepository) Put(ctx context.Context, record *entity.FavoriteRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode favorite %s: %w", record.FlightNumber, err)
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, favoritesKeyPrefix+record.FlightNumber, data, 0)
		// NX keeps the original insertion score on re-put
		pipe.ZAddNX(ctx, favoritesIndexKey, redis.Z{
			Member: record.FlightNumber,
			Score:  float64(record.CreatedAt.UnixNano()),
		})
		return nil
	})
	return err
}

// Delete removes a favorite by flight number
func (r *RedisFavoriteRepository) Delete(ctx context.Context, flightNumber string) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, favoritesKeyPrefix+flightNumber)
		pipe.ZRem(ctx, favoritesIndexKey, flightNumber)
		return nil
	})
	return err
}

// ListAll returns every favorite in insertion order
func (r *RedisFavoriteRepository) ListAll(ctx context.Context) ([]entity.FavoriteRecord, error) {
	keys, err := r.rdb.ZRange(ctx, favoritesIndexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []entity.FavoriteRecord{}, nil
	}

	for i, key := range keys {
		keys[i] = favoritesKeyPrefix + key
	}
	values, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]entity.FavoriteRecord, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		var record entity.FavoriteRecord
		if err := json.Unmarshal([]byte(value.(string)), &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// RedisPendingRequestRepository implements PendingRequestRepository on redis
type RedisPendingRequestRepository struct {
	rdb *redis.Client
}

// NewRedisPendingRequestRepository creates a redis-backed pending-requests
// repository
func NewRedisPendingRequestRepository(rdb *redis.Client) repository.PendingRequestRepository {
	return &RedisPendingRequestRepository{rdb: rdb}
}

// Get finds a pending request by id
func (r *RedisPendingRequestRepository) Get(ctx context.Context, id string) (*entity.PendingRequest, error) {
	data, err := r.rdb.Get(ctx, requestsKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var request entity.PendingRequest
	if err := json.Unmarshal(data, &request); err != nil {
		return nil, fmt.Errorf("decode request %s: %w", id, err)
	}
	return &request, nil
}

// Put upserts a pending request by id
func (r *RedisPendingRequestRepository) Put(ctx context.Context, request *entity.PendingRequest) error {
	data, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("encode request %s: %w", request.ID, err)
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, requestsKeyPrefix+request.ID, data, 0)
		pipe.ZAddNX(ctx, requestsIndexKey, redis.Z{
			Member: request.ID,
			Score:  float64(request.Timestamp.UnixNano()),
		})
		return nil
	})
	return err
}

// Delete removes a pending request by id
func (r *RedisPendingRequestRepository) Delete(ctx context.Context, id string) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, requestsKeyPrefix+id)
		pipe.ZRem(ctx, requestsIndexKey, id)
		return nil
	})
	return err
}

// ListAll returns every pending request in delivery order, oldest first
func (r *RedisPendingRequestRepository) ListAll(ctx context.Context) ([]entity.PendingRequest, error) {
	ids, err := r.rdb.ZRange(ctx, requestsIndexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []entity.PendingRequest{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = requestsKeyPrefix + id
	}
	values, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	requests := make([]entity.PendingRequest, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		var request entity.PendingRequest
		if err := json.Unmarshal([]byte(value.(string)), &request); err != nil {
			continue
		}
		requests = append(requests, request)
	}
	return requests, nil
}
