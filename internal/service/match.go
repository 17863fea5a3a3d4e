package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/tripmate/internal/domain"
	"github.com/pkordes/tripmate/internal/matching"
	"github.com/pkordes/tripmate/internal/repo"
)

// MatchService runs the compatibility flows: ranking other users' trips
// against one of the caller's, or against a draft trip that is never saved.
// Scoring itself lives in the matching package; this service only gathers
// the candidate pool and chooses the ranking options for each flow.
type MatchService struct {
	trips      repo.TripRepo
	users      repo.UserRepo
	buddies    repo.BuddyRequestRepo
	log        *slog.Logger
	windowDays int
}

// NewMatchService constructs a MatchService. windowDays bounds how far a
// candidate's dates may drift from a discovery query.
func NewMatchService(trips repo.TripRepo, users repo.UserRepo, buddies repo.BuddyRequestRepo, log *slog.Logger, windowDays int) *MatchService {
	return &MatchService{trips: trips, users: users, buddies: buddies, log: log, windowDays: windowDays}
}

// DiscoverQuery describes a draft trip used as the reference for Discover.
type DiscoverQuery struct {
	DestinationID uuid.UUID
	StartDate     time.Time
	EndDate       time.Time
	ActivityIDs   []uuid.UUID
	MinScore      float64 // results scoring below it are dropped
}

// MatrixEntry is one row of a compatibility matrix.
type MatrixEntry struct {
	Result    domain.CompatibilityResult
	Breakdown matching.Breakdown
}

// CompatibleTrips ranks open trips at the same destination as the caller's
// trip tripID.
func (s *MatchService) CompatibleTrips(ctx context.Context, caller, tripID uuid.UUID) ([]domain.CompatibilityResult, error) {
	ref, err := s.ownTrip(ctx, caller, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.MatchService.CompatibleTrips: %w", err)
	}
	refPrefs, err := s.lookupPreferences(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("service.MatchService.CompatibleTrips: %w", err)
	}
	pool, err := s.trips.ListCandidates(ctx, openAt(ref.DestinationID, caller))
	if err != nil {
		return nil, fmt.Errorf("service.MatchService.CompatibleTrips: %w", err)
	}

	results := matching.Rank(&ref, refPrefs, pool, caller, matching.Options{
		Eligible:            matching.NotFull,
		RequireDiscoverable: true,
	})
	s.logRanking(ctx, "compatible", len(pool), len(results))
	return results, nil
}

// FindBuddies ranks overlapping open trips at the same destination, skipping
// users the caller is already connected to. Each user appears at most once,
// with their best-scoring trip.
func (s *MatchService) FindBuddies(ctx context.Context, caller, tripID uuid.UUID) ([]domain.CompatibilityResult, error) {
	ref, err := s.ownTrip(ctx, caller, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.MatchService.FindBuddies: %w", err)
	}

	var (
		pool     []domain.Candidate
		refPrefs *domain.Preferences
		buddyIDs []uuid.UUID
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pool, err = s.trips.ListCandidates(gctx, openAt(ref.DestinationID, caller))
		return err
	})
	g.Go(func() error {
		var err error
		refPrefs, err = s.lookupPreferences(gctx, caller)
		return err
	})
	g.Go(func() error {
		var err error
		buddyIDs, err = s.buddies.ListBuddyIDs(gctx, caller)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("service.MatchService.FindBuddies: %w", err)
	}

	ranked := matching.Rank(&ref, refPrefs, pool, caller, matching.Options{
		Eligible: matching.All(
			matching.NotFull,
			matching.DateOverlap,
			matching.ExcludeUsers(buddyIDs...),
		),
		RequireDiscoverable: true,
	})

	// ranked is sorted, so the first trip seen per user is their best.
	seen := make(map[uuid.UUID]struct{}, len(ranked))
	results := make([]domain.CompatibilityResult, 0, len(ranked))
	for _, r := range ranked {
		owner := r.Candidate.Trip.UserID
		if _, dup := seen[owner]; dup {
			continue
		}
		seen[owner] = struct{}{}
		results = append(results, r)
	}
	s.logRanking(ctx, "buddies", len(pool), len(results))
	return results, nil
}

// Discover ranks open trips at q's destination against a draft trip built
// from q. Candidates must start and end within the configured window of the
// draft's dates and share at least one activity. Discoverability is not
// checked here: searching by destination and dates sees every open trip.
func (s *MatchService) Discover(ctx context.Context, caller uuid.UUID, q DiscoverQuery) ([]domain.CompatibilityResult, error) {
	if q.DestinationID == uuid.Nil {
		return nil, fmt.Errorf("%w: destination_id is required", domain.ErrValidation)
	}
	if q.StartDate.IsZero() || q.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if q.EndDate.Before(q.StartDate) {
		return nil, fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if q.MinScore < 0 || q.MinScore > 100 {
		return nil, fmt.Errorf("%w: min_score must be between 0 and 100", domain.ErrValidation)
	}

	draft := domain.Trip{
		UserID:        caller,
		DestinationID: q.DestinationID,
		StartDate:     q.StartDate,
		EndDate:       q.EndDate,
		ActivityIDs:   dedupe(q.ActivityIDs),
	}
	refPrefs, err := s.lookupPreferences(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("service.MatchService.Discover: %w", err)
	}
	pool, err := s.trips.ListCandidates(ctx, openAt(q.DestinationID, caller))
	if err != nil {
		return nil, fmt.Errorf("service.MatchService.Discover: %w", err)
	}

	window := s.windowDays
	results := matching.Rank(&draft, refPrefs, pool, caller, matching.Options{
		Eligible:       matching.All(matching.NotFull, matching.SharesActivity),
		MinScore:       q.MinScore,
		DateWindowDays: &window,
	})
	s.logRanking(ctx, "discover", len(pool), len(results))
	return results, nil
}

// Matrix scores every other discoverable trip, at any destination and in any
// status, against the caller's trip tripID. Zero scores are kept so the
// matrix shows why trips did not match.
func (s *MatchService) Matrix(ctx context.Context, caller, tripID uuid.UUID) ([]MatrixEntry, error) {
	ref, err := s.ownTrip(ctx, caller, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.MatchService.Matrix: %w", err)
	}
	refPrefs, err := s.lookupPreferences(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("service.MatchService.Matrix: %w", err)
	}
	pool, err := s.trips.ListCandidates(ctx, repo.CandidateFilter{ExcludeUserID: caller})
	if err != nil {
		return nil, fmt.Errorf("service.MatchService.Matrix: %w", err)
	}

	ranked := matching.Rank(&ref, refPrefs, pool, caller, matching.Options{
		RequireDiscoverable: true,
		IncludeZeroScores:   true,
	})
	entries := make([]MatrixEntry, len(ranked))
	for i, r := range ranked {
		entries[i] = MatrixEntry{
			Result:    r,
			Breakdown: matching.Explain(&ref, &r.Candidate.Trip, refPrefs, r.Candidate.Preferences),
		}
	}
	s.logRanking(ctx, "matrix", len(pool), len(entries))
	return entries, nil
}

// ownTrip fetches tripID and checks caller owns it.
func (s *MatchService) ownTrip(ctx context.Context, caller, tripID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if trip.UserID != caller {
		return domain.Trip{}, fmt.Errorf("%w: trip belongs to another user", domain.ErrForbidden)
	}
	return trip, nil
}

// lookupPreferences returns nil for a user who never set preferences.
func (s *MatchService) lookupPreferences(ctx context.Context, userID uuid.UUID) (*domain.Preferences, error) {
	p, err := s.users.GetPreferences(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MatchService) logRanking(ctx context.Context, flow string, pool, results int) {
	s.log.DebugContext(ctx, "ranked candidates",
		slog.String("flow", flow),
		slog.Int("pool", pool),
		slog.Int("results", results),
	)
}

// openAt filters the pool to open trips at destID owned by anyone but caller.
func openAt(destID, caller uuid.UUID) repo.CandidateFilter {
	return repo.CandidateFilter{
		DestinationID: &destID,
		ExcludeUserID: caller,
		Statuses:      []domain.TripStatus{domain.TripOpen},
	}
}
