package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review limits.
const (
	MinRating        = 1
	MaxRating        = 5
	MaxReviewComment = 250
)

// TripReview is a traveller's rating of a completed trip. Each user reviews
// a trip at most once.
type TripReview struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	UserID    uuid.UUID
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
