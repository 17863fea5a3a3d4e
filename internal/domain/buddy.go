package domain

import (
	"time"

	"github.com/google/uuid"
)

// BuddyRequestStatus is the state of a buddy request.
type BuddyRequestStatus string

const (
	BuddyPending  BuddyRequestStatus = "pending"
	BuddyAccepted BuddyRequestStatus = "accepted"
	BuddyRejected BuddyRequestStatus = "rejected"
)

// BuddyRequest is an invitation from one user to another to travel together
// on a specific trip. At most one request exists per (from, to, trip).
// RespondedAt is nil while the request is pending.
type BuddyRequest struct {
	ID          uuid.UUID
	FromUserID  uuid.UUID
	ToUserID    uuid.UUID
	TripID      uuid.UUID
	Message     string
	Status      BuddyRequestStatus
	CreatedAt   time.Time
	RespondedAt *time.Time
}
