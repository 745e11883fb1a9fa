package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"flightpocket/internal/domain/entity"
	"flightpocket/internal/domain/repository"
	"flightpocket/pkg/logger"
)

// ErrNoFlightNumber is returned when a toggle is attempted on a flight
// without an identifier. Keying a record on the empty string would leave an
// orphan no toggle could ever remove.
var ErrNoFlightNumber = errors.New("flight has no flight number")

// FavoritesManager keeps the in-memory favorites cache consistent with the
// local store. Membership queries read the cache as of the last refresh;
// every mutation reloads the cache before returning. Mutation and reload run
// under one mutex, so concurrent toggles serialize and a stale reload can
// never clobber a newer one.
type FavoritesManager struct {
	favoriteRepo repository.FavoriteRepository
	logger       logger.Logger

	mu    sync.RWMutex
	cache map[string]entity.FavoriteRecord
	order []string
}

// NewFavoritesManager creates a favorites manager with an empty cache.
// Callers refresh once at startup.
func NewFavoritesManager(favoriteRepo repository.FavoriteRepository, logger logger.Logger) *FavoritesManager {
	return &FavoritesManager{
		favoriteRepo: favoriteRepo,
		logger:       logger,
		cache:        make(map[string]entity.FavoriteRecord),
	}
}

// IsFavorite reports membership against the currently loaded cache, not a
// fresh store read.
func (m *FavoritesManager) IsFavorite(flightNumber string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.cache[flightNumber]
	return ok
}

// Toggle flips the favorite state of a flight and reloads the cache from the
// store. Returns whether the flight is favorited after the call.
func (m *FavoritesManager) Toggle(ctx context.Context, flight entity.Flight) (bool, error) {
	if flight.Number == "" {
		return false, ErrNoFlightNumber
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, favorited := m.cache[flight.Number]
	if favorited {
		if err := m.favoriteRepo.Delete(ctx, flight.Number); err != nil {
			return true, fmt.Errorf("unfavorite %s: %w", flight.Number, err)
		}
	} else {
		record := entity.NewFavoriteRecord(flight)
		if err := m.favoriteRepo.Put(ctx, &record); err != nil {
			return false, fmt.Errorf("favorite %s: %w", flight.Number, err)
		}
	}

	if err := m.reloadLocked(ctx); err != nil {
		return !favorited, fmt.Errorf("reload favorites: %w", err)
	}

	m.logger.Debug("Favorite toggled", "flightNumber", flight.Number, "favorited", !favorited)
	return !favorited, nil
}

// Refresh reloads the cache from the local store.
func (m *FavoritesManager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reloadLocked(ctx)
}

// Favorites returns the cached records in insertion order.
func (m *FavoritesManager) Favorites() []entity.FavoriteRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]entity.FavoriteRecord, 0, len(m.order))
	for _, number := range m.order {
		records = append(records, m.cache[number])
	}
	return records
}

func (m *FavoritesManager) reloadLocked(ctx context.Context) error {
	records, err := m.favoriteRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	m.cache = make(map[string]entity.FavoriteRecord, len(records))
	m.order = m.order[:0]
	for _, record := range records {
		m.cache[record.FlightNumber] = record
		m.order = append(m.order, record.FlightNumber)
	}
	return nil
}
