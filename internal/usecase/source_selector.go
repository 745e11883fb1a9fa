package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"flightpocket/internal/domain/entity"
	"flightpocket/internal/domain/repository"
	"flightpocket/pkg/logger"
	"flightpocket/pkg/metrics"
)

// displayLimit caps the online list. It is a display volume cap, not
// pagination; there is no way to reach entry 11.
const displayLimit = 10

// ErrFeedUnavailable is returned by Current when the last fetch failed while
// online. It replaces the whole list, not single entries.
var ErrFeedUnavailable = errors.New("flight feed unavailable")

// ConnectivitySource is the slice of the connectivity monitor the usecases
// depend on.
type ConnectivitySource interface {
	IsOnline() bool
	Subscribe(handler func(online bool)) int
	Unsubscribe(id int)
}

// SourceSelector produces the display list: the latest successful fetch when
// online, the favorites projection when offline. Connectivity transitions
// re-trigger the fetch and the recomputation; fetched data from before an
// offline transition is never shown while offline.
type SourceSelector struct {
	feedRepo     repository.FlightFeedRepository
	favorites    *FavoritesManager
	connectivity ConnectivitySource
	logger       logger.Logger
	metrics      *metrics.Metrics

	mu       sync.RWMutex
	fetched  []entity.Flight
	fetchErr error
	fetchSeq uint64

	listenerMu sync.Mutex
	listeners  []func()

	subID int
}

// NewSourceSelector creates a source selector. Metrics may be nil.
func NewSourceSelector(
	feedRepo repository.FlightFeedRepository,
	favorites *FavoritesManager,
	connectivity ConnectivitySource,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *SourceSelector {
	return &SourceSelector{
		feedRepo:     feedRepo,
		favorites:    favorites,
		connectivity: connectivity,
		logger:       logger,
		metrics:      metrics,
	}
}

// Start subscribes to connectivity transitions. Going online issues a fresh
// fetch; either direction announces that the display list changed.
func (s *SourceSelector) Start(ctx context.Context) {
	s.subID = s.connectivity.Subscribe(func(online bool) {
		if online {
			if err := s.Refetch(ctx); err != nil {
				s.logger.Error("Fetch after reconnect failed", "error", err)
			}
		}
		s.announce()
	})
}

// Stop detaches the selector from the connectivity monitor.
func (s *SourceSelector) Stop() {
	s.connectivity.Unsubscribe(s.subID)
}

// Refetch pulls the flight list from the feed and replaces the online-branch
// cache. A sequence counter discards completions of superseded fetches, so a
// slow response never overwrites a newer one.
func (s *SourceSelector) Refetch(ctx context.Context) error {
	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.mu.Unlock()

	start := time.Now()
	flights, err := s.feedRepo.FetchUpcoming(ctx)
	if s.metrics != nil {
		s.metrics.FetchesTotal.Inc()
		s.metrics.FetchDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			s.metrics.ErrorsCount.WithLabelValues("fetch").Inc()
		}
	}

	s.mu.Lock()
	if seq != s.fetchSeq {
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		s.fetched = nil
		s.fetchErr = err
	} else {
		if len(flights) > displayLimit {
			flights = flights[:displayLimit]
		}
		s.fetched = flights
		s.fetchErr = nil
	}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("fetch upcoming flights: %w", err)
	}
	return nil
}

// Current returns the list to display. Offline it is always the favorites
// projection, regardless of anything fetched earlier; online it is the last
// fetch result, or ErrFeedUnavailable when that fetch failed.
func (s *SourceSelector) Current(ctx context.Context) ([]entity.Flight, error) {
	if !s.connectivity.IsOnline() {
		records := s.favorites.Favorites()
		flights := make([]entity.Flight, 0, len(records))
		for _, record := range records {
			flights = append(flights, record.Project())
		}
		return flights, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.fetchErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, s.fetchErr)
	}

	flights := make([]entity.Flight, len(s.fetched))
	copy(flights, s.fetched)
	return flights, nil
}

// OnChange registers a listener called whenever the display list may have
// changed. Feeds the event stream.
func (s *SourceSelector) OnChange(listener func()) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Announce tells listeners the display list may have changed. Exposed so
// collaborators that mutate favorites can push an update too.
func (s *SourceSelector) Announce() {
	s.announce()
}

func (s *SourceSelector) announce() {
	s.listenerMu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.listenerMu.Unlock()

	for _, listener := range listeners {
		listener()
	}
}
