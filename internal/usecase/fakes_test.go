package usecase

import (
	"context"
	"sync"

	"flightpocket/internal/domain/entity"
	"flightpocket/internal/domain/repository"
)

// In-memory collaborators for usecase tests. They mirror the store contract:
// upsert by primary key, insertion-ordered listing.

type fakeFavoriteRepo struct {
	mu      sync.Mutex
	records map[string]entity.FavoriteRecord
	order   []string

	putErr    error
	deleteErr error
	listErr   error
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{records: make(map[string]entity.FavoriteRecord)}
}

func (f *fakeFavoriteRepo) Get(ctx context.Context, flightNumber string) (*entity.FavoriteRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[flightNumber]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &record, nil
}

func (f *fakeFavoriteRepo) Put(ctx context.Context, record *entity.FavoriteRecord) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[record.FlightNumber]; !ok {
		f.order = append(f.order, record.FlightNumber)
	}
	f.records[record.FlightNumber] = *record
	return nil
}

func (f *fakeFavoriteRepo) Delete(ctx context.Context, flightNumber string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, flightNumber)
	for i, number := range f.order {
		if number == flightNumber {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeFavoriteRepo) ListAll(ctx context.Context) ([]entity.FavoriteRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	records := make([]entity.FavoriteRecord, 0, len(f.order))
	for _, number := range f.order {
		records = append(records, f.records[number])
	}
	return records, nil
}

func (f *fakeFavoriteRepo) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakeRequestRepo struct {
	mu      sync.Mutex
	records map[string]entity.PendingRequest
	order   []string

	putErr error
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{records: make(map[string]entity.PendingRequest)}
}

func (f *fakeRequestRepo) Get(ctx context.Context, id string) (*entity.PendingRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &request, nil
}

func (f *fakeRequestRepo) Put(ctx context.Context, request *entity.PendingRequest) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[request.ID]; !ok {
		f.order = append(f.order, request.ID)
	}
	f.records[request.ID] = *request
	return nil
}

func (f *fakeRequestRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeRequestRepo) ListAll(ctx context.Context) ([]entity.PendingRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	requests := make([]entity.PendingRequest, 0, len(f.order))
	for _, id := range f.order {
		requests = append(requests, f.records[id])
	}
	return requests, nil
}

func (f *fakeRequestRepo) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakeFeed struct {
	mu         sync.Mutex
	flights    []entity.Flight
	fetchErr   error
	fetchCalls int

	submitted    []entity.PendingRequest
	submitErr    error
	failAfter    int // deliveries before submitErr kicks in; 0 means always fail when set
	submitErrHit bool
}

func (f *fakeFeed) FetchUpcoming(ctx context.Context) ([]entity.Flight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	flights := make([]entity.Flight, len(f.flights))
	copy(flights, f.flights)
	return flights, nil
}

func (f *fakeFeed) SubmitInquiry(ctx context.Context, request *entity.PendingRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil && len(f.submitted) >= f.failAfter {
		f.submitErrHit = true
		return f.submitErr
	}
	f.submitted = append(f.submitted, *request)
	return nil
}

func (f *fakeFeed) Ping(ctx context.Context) error {
	return nil
}

// fakeConnectivity mirrors the monitor's transition semantics: handlers fire
// synchronously and only on actual flips.
type fakeConnectivity struct {
	mu       sync.Mutex
	online   bool
	nextID   int
	handlers map[int]func(online bool)
}

func newFakeConnectivity(online bool) *fakeConnectivity {
	return &fakeConnectivity{online: online, handlers: make(map[int]func(online bool))}
}

func (f *fakeConnectivity) IsOnline() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.online
}

func (f *fakeConnectivity) Subscribe(handler func(online bool)) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.handlers[f.nextID] = handler
	return f.nextID
}

func (f *fakeConnectivity) Unsubscribe(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.handlers, id)
}

func (f *fakeConnectivity) setOnline(online bool) {
	f.mu.Lock()
	if f.online == online {
		f.mu.Unlock()
		return
	}
	f.online = online
	handlers := make([]func(online bool), 0, len(f.handlers))
	for _, h := range f.handlers {
		handlers = append(handlers, h)
	}
	f.mu.Unlock()

	for _, h := range handlers {
		h(online)
	}
}

type fakeTrigger struct {
	mu    sync.Mutex
	armed int
	err   error
}

func (f *fakeTrigger) Arm(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.armed++
	return nil
}
