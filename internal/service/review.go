package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pkordes/tripmate/internal/domain"
	"github.com/pkordes/tripmate/internal/repo"
)

// latestReviewsLimit is how many reviews Latest returns.
const latestReviewsLimit = 5

// ReviewService manages reviews of completed trips.
type ReviewService struct {
	reviews repo.ReviewRepo
	trips   repo.TripRepo
	now     func() time.Time
}

// NewReviewService constructs a ReviewService backed by the provided repos.
func NewReviewService(reviews repo.ReviewRepo, trips repo.TripRepo) *ReviewService {
	return &ReviewService{reviews: reviews, trips: trips, now: time.Now}
}

// Create stores caller's review of tripID. A trip whose end date has passed
// is marked completed first, unless it was cancelled.
// Returns domain.ErrValidation for a bad rating or comment,
// domain.ErrConflict if the trip is not completed or caller already reviewed
// it, and domain.ErrForbidden if caller neither owns nor joined the trip.
func (s *ReviewService) Create(ctx context.Context, caller, tripID uuid.UUID, rating int, comment string) (domain.TripReview, error) {
	comment = strings.TrimSpace(comment)
	if rating < domain.MinRating || rating > domain.MaxRating {
		return domain.TripReview{}, fmt.Errorf("%w: rating must be between %d and %d",
			domain.ErrValidation, domain.MinRating, domain.MaxRating)
	}
	if utf8.RuneCountInString(comment) > domain.MaxReviewComment {
		return domain.TripReview{}, fmt.Errorf("%w: comment exceeds %d characters",
			domain.ErrValidation, domain.MaxReviewComment)
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripReview{}, fmt.Errorf("service.ReviewService.Create: %w", err)
	}
	if trip, err = s.completeIfEnded(ctx, trip); err != nil {
		return domain.TripReview{}, fmt.Errorf("service.ReviewService.Create: %w", err)
	}
	if trip.Status != domain.TripCompleted {
		return domain.TripReview{}, fmt.Errorf("service.ReviewService.Create: %w: reviews can only be submitted for completed trips", domain.ErrConflict)
	}

	if trip.UserID != caller {
		member, err := s.trips.IsMember(ctx, tripID, caller)
		if err != nil {
			return domain.TripReview{}, fmt.Errorf("service.ReviewService.Create: %w", err)
		}
		if !member {
			return domain.TripReview{}, fmt.Errorf("service.ReviewService.Create: %w: only the owner or a member may review this trip", domain.ErrForbidden)
		}
	}

	result, err := s.reviews.Create(ctx, domain.TripReview{
		TripID:  tripID,
		UserID:  caller,
		Rating:  rating,
		Comment: comment,
	})
	if err != nil {
		return domain.TripReview{}, fmt.Errorf("service.ReviewService.Create: %w", err)
	}
	return result, nil
}

// ListMine returns reviews caller wrote or that concern caller's trips.
func (s *ReviewService) ListMine(ctx context.Context, caller uuid.UUID) ([]domain.TripReview, error) {
	out, err := s.reviews.ListForUser(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("service.ReviewService.ListMine: %w", err)
	}
	return nonNil(out), nil
}

// Latest returns the most recent reviews across every trip.
func (s *ReviewService) Latest(ctx context.Context) ([]domain.TripReview, error) {
	out, err := s.reviews.ListLatest(ctx, latestReviewsLimit)
	if err != nil {
		return nil, fmt.Errorf("service.ReviewService.Latest: %w", err)
	}
	return nonNil(out), nil
}

// completeIfEnded marks trip completed once its end date has passed.
func (s *ReviewService) completeIfEnded(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if trip.Status == domain.TripCompleted || trip.Status == domain.TripCancelled {
		return trip, nil
	}
	if !trip.EndDate.Before(s.now()) {
		return trip, nil
	}
	if err := s.trips.SetStatus(ctx, trip.ID, domain.TripCompleted); err != nil {
		return domain.Trip{}, err
	}
	trip.Status = domain.TripCompleted
	return trip, nil
}
