// Package domain contains the core data types for the Trip Mate application.
// This package has no I/O and is imported by every other internal package
// (matching, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of a trip.
type TripStatus string

const (
	TripOpen      TripStatus = "open"
	TripFull      TripStatus = "full"
	TripCompleted TripStatus = "completed"
	TripCancelled TripStatus = "cancelled"
)

// Valid reports whether s is one of the known lifecycle states.
func (s TripStatus) Valid() bool {
	switch s {
	case TripOpen, TripFull, TripCompleted, TripCancelled:
		return true
	}
	return false
}

// Trip is a plan by one user to visit a destination during a time window.
// MaxMembers counts every traveller including the owner.
type Trip struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	DestinationID uuid.UUID
	StartDate     time.Time
	EndDate       time.Time
	ActivityIDs   []uuid.UUID // travel interest IDs; treated as a set
	MemberCount   int
	MaxMembers    int
	Status        TripStatus
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsFull reports whether the trip has reached its capacity.
func (t Trip) IsFull() bool {
	return t.MemberCount >= t.MaxMembers
}

// Joinable reports whether new members may still join.
func (t Trip) Joinable() bool {
	return !t.IsFull() && t.Status != TripCompleted && t.Status != TripCancelled
}

// Candidate is the read-only projection of a trip evaluated for
// compatibility: the trip itself plus what the ranker needs to know about
// its owner.
type Candidate struct {
	Trip         Trip
	Preferences  *Preferences // nil when the owner has not set preferences
	Discoverable bool
}

// CompatibilityResult pairs a candidate with its score against a reference
// trip. It lives only for the duration of one ranking request.
type CompatibilityResult struct {
	Candidate Candidate
	Score     float64 // in [0, 100], rounded to 2 decimal places
}
