package handler_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/tripmate/internal/domain"
	"github.com/pkordes/tripmate/internal/handler"
	"github.com/pkordes/tripmate/internal/service"
)

// Test doubles for the servicer interfaces. Set only the method fields your
// test needs; calling an unset one panics, which flags an unexpected call.

type mockTripServicer struct {
	create     func(ctx context.Context, caller uuid.UUID, trip domain.Trip) (domain.Trip, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged  func(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	update     func(ctx context.Context, caller uuid.UUID, trip domain.Trip) (domain.Trip, error)
	cancel     func(ctx context.Context, caller, id uuid.UUID) (domain.Trip, error)
	delete     func(ctx context.Context, caller, id uuid.UUID) error
	join       func(ctx context.Context, caller, id uuid.UUID) (domain.Trip, error)
	leave      func(ctx context.Context, caller, id uuid.UUID) (domain.Trip, error)
}

func (m *mockTripServicer) Create(ctx context.Context, caller uuid.UUID, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, caller, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripServicer) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockTripServicer) Update(ctx context.Context, caller uuid.UUID, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, caller, t)
}
func (m *mockTripServicer) Cancel(ctx context.Context, caller, id uuid.UUID) (domain.Trip, error) {
	return m.cancel(ctx, caller, id)
}
func (m *mockTripServicer) Delete(ctx context.Context, caller, id uuid.UUID) error {
	return m.delete(ctx, caller, id)
}
func (m *mockTripServicer) Join(ctx context.Context, caller, id uuid.UUID) (domain.Trip, error) {
	return m.join(ctx, caller, id)
}
func (m *mockTripServicer) Leave(ctx context.Context, caller, id uuid.UUID) (domain.Trip, error) {
	return m.leave(ctx, caller, id)
}

type mockPreferencesServicer struct {
	get             func(ctx context.Context, userID uuid.UUID) (domain.Preferences, error)
	upsert          func(ctx context.Context, userID uuid.UUID, p domain.Preferences) (domain.Preferences, error)
	setDiscoverable func(ctx context.Context, userID uuid.UUID, discoverable bool) error
}

func (m *mockPreferencesServicer) Get(ctx context.Context, userID uuid.UUID) (domain.Preferences, error) {
	return m.get(ctx, userID)
}
func (m *mockPreferencesServicer) Upsert(ctx context.Context, userID uuid.UUID, p domain.Preferences) (domain.Preferences, error) {
	return m.upsert(ctx, userID, p)
}
func (m *mockPreferencesServicer) SetDiscoverable(ctx context.Context, userID uuid.UUID, d bool) error {
	return m.setDiscoverable(ctx, userID, d)
}

type mockCatalogServicer struct {
	upsertInterest    func(ctx context.Context, name string) (domain.TravelInterest, error)
	listInterests     func(ctx context.Context, prefix string) ([]domain.TravelInterest, error)
	createDestination func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	getDestination    func(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	listDestinations  func(ctx context.Context) ([]domain.Destination, error)
}

func (m *mockCatalogServicer) UpsertInterest(ctx context.Context, name string) (domain.TravelInterest, error) {
	return m.upsertInterest(ctx, name)
}
func (m *mockCatalogServicer) ListInterests(ctx context.Context, prefix string) ([]domain.TravelInterest, error) {
	return m.listInterests(ctx, prefix)
}
func (m *mockCatalogServicer) CreateDestination(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.createDestination(ctx, d)
}
func (m *mockCatalogServicer) GetDestination(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	return m.getDestination(ctx, id)
}
func (m *mockCatalogServicer) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	return m.listDestinations(ctx)
}

type mockBuddyServicer struct {
	send         func(ctx context.Context, caller, to, tripID uuid.UUID, message string) (domain.BuddyRequest, error)
	respond      func(ctx context.Context, caller, id uuid.UUID, accept bool) (domain.BuddyRequest, error)
	listReceived func(ctx context.Context, caller uuid.UUID) ([]domain.BuddyRequest, error)
	listSent     func(ctx context.Context, caller uuid.UUID) ([]domain.BuddyRequest, error)
}

func (m *mockBuddyServicer) Send(ctx context.Context, caller, to, tripID uuid.UUID, message string) (domain.BuddyRequest, error) {
	return m.send(ctx, caller, to, tripID, message)
}
func (m *mockBuddyServicer) Respond(ctx context.Context, caller, id uuid.UUID, accept bool) (domain.BuddyRequest, error) {
	return m.respond(ctx, caller, id, accept)
}
func (m *mockBuddyServicer) ListReceived(ctx context.Context, caller uuid.UUID) ([]domain.BuddyRequest, error) {
	return m.listReceived(ctx, caller)
}
func (m *mockBuddyServicer) ListSent(ctx context.Context, caller uuid.UUID) ([]domain.BuddyRequest, error) {
	return m.listSent(ctx, caller)
}

type mockReviewServicer struct {
	create   func(ctx context.Context, caller, tripID uuid.UUID, rating int, comment string) (domain.TripReview, error)
	listMine func(ctx context.Context, caller uuid.UUID) ([]domain.TripReview, error)
	latest   func(ctx context.Context) ([]domain.TripReview, error)
}

func (m *mockReviewServicer) Create(ctx context.Context, caller, tripID uuid.UUID, rating int, comment string) (domain.TripReview, error) {
	return m.create(ctx, caller, tripID, rating, comment)
}
func (m *mockReviewServicer) ListMine(ctx context.Context, caller uuid.UUID) ([]domain.TripReview, error) {
	return m.listMine(ctx, caller)
}
func (m *mockReviewServicer) Latest(ctx context.Context) ([]domain.TripReview, error) {
	return m.latest(ctx)
}

type mockMatchServicer struct {
	compatibleTrips func(ctx context.Context, caller, tripID uuid.UUID) ([]domain.CompatibilityResult, error)
	findBuddies     func(ctx context.Context, caller, tripID uuid.UUID) ([]domain.CompatibilityResult, error)
	discover        func(ctx context.Context, caller uuid.UUID, q service.DiscoverQuery) ([]domain.CompatibilityResult, error)
	matrix          func(ctx context.Context, caller, tripID uuid.UUID) ([]service.MatrixEntry, error)
}

func (m *mockMatchServicer) CompatibleTrips(ctx context.Context, caller, tripID uuid.UUID) ([]domain.CompatibilityResult, error) {
	return m.compatibleTrips(ctx, caller, tripID)
}
func (m *mockMatchServicer) FindBuddies(ctx context.Context, caller, tripID uuid.UUID) ([]domain.CompatibilityResult, error) {
	return m.findBuddies(ctx, caller, tripID)
}
func (m *mockMatchServicer) Discover(ctx context.Context, caller uuid.UUID, q service.DiscoverQuery) ([]domain.CompatibilityResult, error) {
	return m.discover(ctx, caller, q)
}
func (m *mockMatchServicer) Matrix(ctx context.Context, caller, tripID uuid.UUID) ([]service.MatrixEntry, error) {
	return m.matrix(ctx, caller, tripID)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer        = (*mockTripServicer)(nil)
	_ handler.PreferencesServicer = (*mockPreferencesServicer)(nil)
	_ handler.CatalogServicer     = (*mockCatalogServicer)(nil)
	_ handler.BuddyServicer       = (*mockBuddyServicer)(nil)
	_ handler.ReviewServicer      = (*mockReviewServicer)(nil)
	_ handler.MatchServicer       = (*mockMatchServicer)(nil)
)
