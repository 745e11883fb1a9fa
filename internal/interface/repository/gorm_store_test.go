package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"flightpocket/internal/domain/entity"
	"flightpocket/internal/domain/repository"
	"flightpocket/internal/infrastructure/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := persistence.OpenDatabase("sqlite", ":memory:", "")
	require.NoError(t, err)
	t.Cleanup(func() { persistence.CloseDatabase(db) })
	return db
}

func TestFavoriteCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewGormFavoriteRepository(openTestDB(t))

	record := &entity.FavoriteRecord{
		FlightNumber:     "AY1472",
		Airline:          "Finnair",
		DepartureAirport: "Helsinki Vantaa",
		ArrivalAirport:   "Stockholm Arlanda",
		Status:           "scheduled",
	}
	require.NoError(t, repo.Put(ctx, record))

	got, err := repo.Get(ctx, "AY1472")
	require.NoError(t, err)
	assert.Equal(t, "Finnair", got.Airline)
	assert.Equal(t, "Helsinki Vantaa", got.DepartureAirport)

	// Put is an upsert: same key never duplicates
	require.NoError(t, repo.Put(ctx, record))
	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, "AY1472"))
	_, err = repo.Get(ctx, "AY1472")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFavoriteDeleteMissingIsNoError(t *testing.T) {
	repo := NewGormFavoriteRepository(openTestDB(t))
	assert.NoError(t, repo.Delete(context.Background(), "XX000"))
}

func TestPendingRequestsListInTimestampOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewGormPendingRequestRepository(openTestDB(t))

	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	// Inserted newest first on purpose
	for i := 2; i >= 0; i-- {
		request := entity.NewPendingRequest("Alice", []string{"AA100", "BA200", "CA300"}[i])
		request.Timestamp = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Put(ctx, &request))
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "AA100", all[0].FlightNumber)
	assert.Equal(t, "BA200", all[1].FlightNumber)
	assert.Equal(t, "CA300", all[2].FlightNumber)
}

func TestOpenIsIdempotentAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")

	db, err := persistence.OpenDatabase("sqlite", path, "")
	require.NoError(t, err)

	record := &entity.FavoriteRecord{FlightNumber: "AA100", Airline: "American"}
	require.NoError(t, NewGormFavoriteRepository(db).Put(ctx, record))
	require.NoError(t, persistence.CloseDatabase(db))

	// Re-opening an existing store must not recreate or clear collections
	db, err = persistence.OpenDatabase("sqlite", path, "")
	require.NoError(t, err)
	defer persistence.CloseDatabase(db)

	got, err := NewGormFavoriteRepository(db).Get(ctx, "AA100")
	require.NoError(t, err)
	assert.Equal(t, "American", got.Airline)
}

func TestUnknownDriverFailsToOpen(t *testing.T) {
	_, err := persistence.OpenDatabase("mongodb", "", "")
	assert.Error(t, err)
}

func TestNullStoreDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	favorites := NewNullFavoriteRepository()
	requests := NewNullPendingRequestRepository()

	all, err := favorites.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	record := entity.NewFavoriteRecord(entity.Flight{Number: "AA100"})
	assert.ErrorIs(t, favorites.Put(ctx, &record), repository.ErrStoreUnavailable)

	pending, err := requests.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
