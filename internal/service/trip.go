// Package service contains the business logic for the Trip Mate API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripmate/internal/domain"
	"github.com/pkordes/tripmate/internal/repo"
)

// leaveNotice is how long before departure a member may still leave a trip.
const leaveNotice = 3 * 24 * time.Hour

// TripService implements business logic for Trip operations.
type TripService struct {
	trips     repo.TripRepo
	interests repo.InterestRepo
	now       func() time.Time
}

// NewTripService constructs a TripService. The interest repo is used to check
// that every activity on a trip references a known travel interest.
func NewTripService(trips repo.TripRepo, interests repo.InterestRepo) *TripService {
	return &TripService{trips: trips, interests: interests, now: time.Now}
}

// Create validates and persists a new trip owned by caller.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, caller uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	trip.UserID = caller
	trip.ActivityIDs = dedupe(trip.ActivityIDs)
	if err := s.validate(ctx, trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of trips.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	trips, total, err := s.trips.ListPaged(ctx, p)
	if err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return domain.Page[domain.Trip]{Items: trips, Total: total}, nil
}

// ListByUser returns every trip owned by userID.
func (s *TripService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	trips, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByUser: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update validates and persists changes to a trip owned by caller.
// Returns domain.ErrForbidden if caller does not own the trip.
func (s *TripService) Update(ctx context.Context, caller uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	existing, err := s.owned(ctx, caller, trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	trip.UserID = existing.UserID
	trip.ActivityIDs = dedupe(trip.ActivityIDs)
	if trip.MaxMembers < existing.MemberCount {
		return domain.Trip{}, fmt.Errorf("%w: max_members cannot drop below the current %d members",
			domain.ErrValidation, existing.MemberCount)
	}
	if err := s.validate(ctx, trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Cancel marks a trip owned by caller as cancelled. Cancelled trips drop out
// of every candidate pool.
func (s *TripService) Cancel(ctx context.Context, caller, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.owned(ctx, caller, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Cancel: %w", err)
	}
	if trip.Status == domain.TripCompleted {
		return domain.Trip{}, fmt.Errorf("service.TripService.Cancel: %w: trip already completed", domain.ErrConflict)
	}
	if err := s.trips.SetStatus(ctx, id, domain.TripCancelled); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Cancel: %w", err)
	}
	trip.Status = domain.TripCancelled
	return trip, nil
}

// Delete removes a trip owned by caller.
func (s *TripService) Delete(ctx context.Context, caller, id uuid.UUID) error {
	if _, err := s.owned(ctx, caller, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// Join adds caller to a trip. When the join fills the last seat the trip
// status becomes full.
// Returns domain.ErrConflict if the trip is not joinable or caller is the
// owner or already a member.
func (s *TripService) Join(ctx context.Context, caller, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Join: %w", err)
	}
	if trip.UserID == caller {
		return domain.Trip{}, fmt.Errorf("service.TripService.Join: %w: owner is already on the trip", domain.ErrConflict)
	}
	if !trip.Joinable() {
		return domain.Trip{}, fmt.Errorf("service.TripService.Join: %w: trip is %s", domain.ErrConflict, joinBlocker(trip))
	}
	// The snapshot above may be stale; AddMember re-checks capacity under a
	// row lock.
	result, err := s.trips.AddMember(ctx, id, caller)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Join: %w", err)
	}
	return result, nil
}

// Leave removes caller from a trip they joined. Owners cannot leave; they
// cancel instead. Leaving a full trip reopens it.
// Returns domain.ErrConflict if the trip is cancelled, starts in less than
// leaveNotice, or caller is not a member.
func (s *TripService) Leave(ctx context.Context, caller, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Leave: %w", err)
	}
	switch {
	case trip.UserID == caller:
		return domain.Trip{}, fmt.Errorf("service.TripService.Leave: %w: the owner cannot leave a trip, cancel it instead", domain.ErrConflict)
	case trip.Status == domain.TripCancelled:
		return domain.Trip{}, fmt.Errorf("service.TripService.Leave: %w: trip is cancelled", domain.ErrConflict)
	case s.now().Add(leaveNotice).After(trip.StartDate):
		return domain.Trip{}, fmt.Errorf("service.TripService.Leave: %w: members can only leave at least 3 days before the start date", domain.ErrConflict)
	}

	member, err := s.trips.IsMember(ctx, id, caller)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Leave: %w", err)
	}
	if !member {
		return domain.Trip{}, fmt.Errorf("service.TripService.Leave: %w: not a member of this trip", domain.ErrConflict)
	}

	result, err := s.trips.RemoveMember(ctx, id, caller)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Leave: %w", err)
	}
	return result, nil
}

// owned fetches a trip and checks that caller owns it.
func (s *TripService) owned(ctx context.Context, caller, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, err
	}
	if trip.UserID != caller {
		return domain.Trip{}, fmt.Errorf("%w: trip belongs to another user", domain.ErrForbidden)
	}
	return trip, nil
}

// validate enforces business rules common to both Create and Update.
//   - DestinationID is required.
//   - MaxMembers is at least 1 (the owner).
//   - EndDate must not be before StartDate; a same-day trip is valid.
//   - Every activity references a known travel interest.
func (s *TripService) validate(ctx context.Context, trip domain.Trip) error {
	var problems []string
	if trip.DestinationID == uuid.Nil {
		problems = append(problems, "destination_id is required")
	}
	if trip.MaxMembers < 1 {
		problems = append(problems, "max_members must be at least 1")
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		problems = append(problems, "start_date and end_date are required")
	} else if trip.EndDate.Before(trip.StartDate) {
		problems = append(problems, "end_date must not be before start_date")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(problems, "; "))
	}

	if len(trip.ActivityIDs) == 0 {
		return nil
	}
	n, err := s.interests.CountExisting(ctx, trip.ActivityIDs)
	if err != nil {
		return fmt.Errorf("service.TripService.validate: %w", err)
	}
	if n != len(trip.ActivityIDs) {
		return fmt.Errorf("%w: activity_ids reference unknown travel interests", domain.ErrValidation)
	}
	return nil
}

func joinBlocker(t domain.Trip) string {
	if t.Status == domain.TripCompleted || t.Status == domain.TripCancelled {
		return string(t.Status)
	}
	return string(domain.TripFull)
}

// dedupe returns ids without repeats, preserving first-seen order.
func dedupe(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
