package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/tripmate/internal/domain"
	"github.com/pkordes/tripmate/internal/repo"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs. Calling an unset one panics, which flags an unexpected
// repo call.

type mockTripRepo struct {
	create         func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged      func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	listByUser     func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	listCandidates func(ctx context.Context, f repo.CandidateFilter) ([]domain.Candidate, error)
	update         func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	setStatus      func(ctx context.Context, id uuid.UUID, status domain.TripStatus) error
	addMember      func(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, error)
	removeMember   func(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, error)
	isMember       func(ctx context.Context, tripID, userID uuid.UUID) (bool, error)
	delete         func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockTripRepo) ListCandidates(ctx context.Context, f repo.CandidateFilter) ([]domain.Candidate, error) {
	return m.listCandidates(ctx, f)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) error {
	return m.setStatus(ctx, id, status)
}
func (m *mockTripRepo) AddMember(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, error) {
	return m.addMember(ctx, tripID, userID)
}
func (m *mockTripRepo) RemoveMember(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, error) {
	return m.removeMember(ctx, tripID, userID)
}
func (m *mockTripRepo) IsMember(ctx context.Context, tripID, userID uuid.UUID) (bool, error) {
	return m.isMember(ctx, tripID, userID)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockUserRepo struct {
	create            func(ctx context.Context, username string) (uuid.UUID, error)
	getPreferences    func(ctx context.Context, userID uuid.UUID) (domain.Preferences, error)
	upsertPreferences func(ctx context.Context, p domain.Preferences) (domain.Preferences, error)
	setDiscoverable   func(ctx context.Context, userID uuid.UUID, discoverable bool) error
}

func (m *mockUserRepo) Create(ctx context.Context, username string) (uuid.UUID, error) {
	return m.create(ctx, username)
}
func (m *mockUserRepo) GetPreferences(ctx context.Context, userID uuid.UUID) (domain.Preferences, error) {
	return m.getPreferences(ctx, userID)
}
func (m *mockUserRepo) UpsertPreferences(ctx context.Context, p domain.Preferences) (domain.Preferences, error) {
	return m.upsertPreferences(ctx, p)
}
func (m *mockUserRepo) SetDiscoverable(ctx context.Context, userID uuid.UUID, discoverable bool) error {
	return m.setDiscoverable(ctx, userID, discoverable)
}

type mockInterestRepo struct {
	upsert        func(ctx context.Context, name, slug string) (domain.TravelInterest, error)
	list          func(ctx context.Context, prefix string) ([]domain.TravelInterest, error)
	countExisting func(ctx context.Context, ids []uuid.UUID) (int, error)
}

func (m *mockInterestRepo) Upsert(ctx context.Context, name, slug string) (domain.TravelInterest, error) {
	return m.upsert(ctx, name, slug)
}
func (m *mockInterestRepo) List(ctx context.Context, prefix string) ([]domain.TravelInterest, error) {
	return m.list(ctx, prefix)
}
func (m *mockInterestRepo) CountExisting(ctx context.Context, ids []uuid.UUID) (int, error) {
	return m.countExisting(ctx, ids)
}

type mockDestinationRepo struct {
	create  func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	list    func(ctx context.Context) ([]domain.Destination, error)
}

func (m *mockDestinationRepo) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.create(ctx, d)
}
func (m *mockDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	return m.getByID(ctx, id)
}
func (m *mockDestinationRepo) List(ctx context.Context) ([]domain.Destination, error) {
	return m.list(ctx)
}

type mockBuddyRepo struct {
	create       func(ctx context.Context, req domain.BuddyRequest) (domain.BuddyRequest, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.BuddyRequest, error)
	listReceived func(ctx context.Context, userID uuid.UUID) ([]domain.BuddyRequest, error)
	listSent     func(ctx context.Context, userID uuid.UUID) ([]domain.BuddyRequest, error)
	respond      func(ctx context.Context, id uuid.UUID, status domain.BuddyRequestStatus) (domain.BuddyRequest, error)
	listBuddyIDs func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

func (m *mockBuddyRepo) Create(ctx context.Context, req domain.BuddyRequest) (domain.BuddyRequest, error) {
	return m.create(ctx, req)
}
func (m *mockBuddyRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.BuddyRequest, error) {
	return m.getByID(ctx, id)
}
func (m *mockBuddyRepo) ListReceived(ctx context.Context, userID uuid.UUID) ([]domain.BuddyRequest, error) {
	return m.listReceived(ctx, userID)
}
func (m *mockBuddyRepo) ListSent(ctx context.Context, userID uuid.UUID) ([]domain.BuddyRequest, error) {
	return m.listSent(ctx, userID)
}
func (m *mockBuddyRepo) Respond(ctx context.Context, id uuid.UUID, status domain.BuddyRequestStatus) (domain.BuddyRequest, error) {
	return m.respond(ctx, id, status)
}
func (m *mockBuddyRepo) ListBuddyIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return m.listBuddyIDs(ctx, userID)
}

type mockReviewRepo struct {
	create      func(ctx context.Context, review domain.TripReview) (domain.TripReview, error)
	listForUser func(ctx context.Context, userID uuid.UUID) ([]domain.TripReview, error)
	listLatest  func(ctx context.Context, limit int) ([]domain.TripReview, error)
}

func (m *mockReviewRepo) Create(ctx context.Context, review domain.TripReview) (domain.TripReview, error) {
	return m.create(ctx, review)
}
func (m *mockReviewRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.TripReview, error) {
	return m.listForUser(ctx, userID)
}
func (m *mockReviewRepo) ListLatest(ctx context.Context, limit int) ([]domain.TripReview, error) {
	return m.listLatest(ctx, limit)
}

// compile-time checks
var (
	_ repo.TripRepo         = (*mockTripRepo)(nil)
	_ repo.UserRepo         = (*mockUserRepo)(nil)
	_ repo.InterestRepo     = (*mockInterestRepo)(nil)
	_ repo.DestinationRepo  = (*mockDestinationRepo)(nil)
	_ repo.BuddyRequestRepo = (*mockBuddyRepo)(nil)
	_ repo.ReviewRepo       = (*mockReviewRepo)(nil)
)
