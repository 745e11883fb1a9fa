package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"flightpocket/internal/domain/entity"
	"flightpocket/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlight(number string) entity.Flight {
	return entity.Flight{
		Airline: "Test Air",
		Number:  number,
		Departure: entity.Departure{
			Airport:   "HEL",
			Scheduled: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		},
		ArrivalAirport: "ARN",
		Status:         "scheduled",
	}
}

func TestToggleTwiceRestoresOriginalState(t *testing.T) {
	ctx := context.Background()
	repo := newFakeFavoriteRepo()
	manager := NewFavoritesManager(repo, logger.NewNop())
	require.NoError(t, manager.Refresh(ctx))

	flight := testFlight("AA100")
	require.False(t, manager.IsFavorite("AA100"))

	favorited, err := manager.Toggle(ctx, flight)
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.True(t, manager.IsFavorite("AA100"))
	assert.Equal(t, 1, repo.size())

	favorited, err = manager.Toggle(ctx, flight)
	require.NoError(t, err)
	assert.False(t, favorited)
	assert.False(t, manager.IsFavorite("AA100"))
	assert.Equal(t, 0, repo.size(), "no orphaned record may remain")
}

func TestToggleRequiresFlightNumber(t *testing.T) {
	manager := NewFavoritesManager(newFakeFavoriteRepo(), logger.NewNop())

	_, err := manager.Toggle(context.Background(), entity.Flight{Airline: "Ghost Air"})
	assert.ErrorIs(t, err, ErrNoFlightNumber)
}

func TestIsFavoriteTracksLastRefresh(t *testing.T) {
	ctx := context.Background()
	repo := newFakeFavoriteRepo()
	manager := NewFavoritesManager(repo, logger.NewNop())

	record := entity.NewFavoriteRecord(testFlight("BA200"))
	require.NoError(t, repo.Put(ctx, &record))

	// Not visible until a refresh loads it
	assert.False(t, manager.IsFavorite("BA200"))
	require.NoError(t, manager.Refresh(ctx))
	assert.True(t, manager.IsFavorite("BA200"))

	// A store change behind the manager's back stays invisible until the
	// next refresh
	require.NoError(t, repo.Delete(ctx, "BA200"))
	assert.True(t, manager.IsFavorite("BA200"))
	require.NoError(t, manager.Refresh(ctx))
	assert.False(t, manager.IsFavorite("BA200"))
}

func TestToggleReloadsCacheAfterMutation(t *testing.T) {
	ctx := context.Background()
	repo := newFakeFavoriteRepo()
	manager := NewFavoritesManager(repo, logger.NewNop())

	_, err := manager.Toggle(ctx, testFlight("AA100"))
	require.NoError(t, err)
	_, err = manager.Toggle(ctx, testFlight("BA200"))
	require.NoError(t, err)

	favorites := manager.Favorites()
	require.Len(t, favorites, 2)
	assert.Equal(t, "AA100", favorites[0].FlightNumber)
	assert.Equal(t, "BA200", favorites[1].FlightNumber)
}

func TestToggleSurfacesStoreFailure(t *testing.T) {
	ctx := context.Background()
	repo := newFakeFavoriteRepo()
	repo.putErr = errors.New("disk full")
	manager := NewFavoritesManager(repo, logger.NewNop())

	_, err := manager.Toggle(ctx, testFlight("CA300"))
	require.Error(t, err)
	assert.False(t, manager.IsFavorite("CA300"))
}

func TestFavoriteProjectionRoundTrip(t *testing.T) {
	flight := testFlight("AY1472")

	record := entity.NewFavoriteRecord(flight)
	projected := record.Project()

	assert.Equal(t, flight.Airline, projected.Airline)
	assert.Equal(t, flight.Number, projected.Number)
	assert.Equal(t, flight.Departure.Airport, projected.Departure.Airport)
	assert.Equal(t, flight.ArrivalAirport, projected.ArrivalAirport)
	assert.Equal(t, flight.Status, projected.Status)
	// The schedule is not a round-trip field
	assert.True(t, projected.Departure.Scheduled.IsZero())
}
