package matching

import (
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripmate/internal/domain"
)

// Predicate decides whether a candidate is eligible for scoring against ref.
// Predicates carry policy (capacity, discoverability, date proximity) that is
// not part of the score itself. A nil Predicate accepts every candidate.
type Predicate func(ref *domain.Trip, c domain.Candidate) bool

// All returns a predicate that accepts a candidate only when every non-nil
// predicate in preds accepts it. Evaluation stops at the first rejection.
func All(preds ...Predicate) Predicate {
	return func(ref *domain.Trip, c domain.Candidate) bool {
		for _, p := range preds {
			if p != nil && !p(ref, c) {
				return false
			}
		}
		return true
	}
}

// SameDestination accepts candidates headed to ref's destination.
func SameDestination(ref *domain.Trip, c domain.Candidate) bool {
	return c.Trip.DestinationID == ref.DestinationID
}

// NotFull accepts candidates with spare capacity.
func NotFull(_ *domain.Trip, c domain.Candidate) bool {
	return !c.Trip.IsFull()
}

// Discoverable accepts candidates whose owner allows being discovered.
func Discoverable(_ *domain.Trip, c domain.Candidate) bool {
	return c.Discoverable
}

// DateOverlap accepts candidates whose window intersects ref's window.
// Both windows are closed: sharing a single boundary instant counts.
func DateOverlap(ref *domain.Trip, c domain.Candidate) bool {
	return !ref.StartDate.After(c.Trip.EndDate) && !ref.EndDate.Before(c.Trip.StartDate)
}

// SharesActivity accepts candidates with at least one activity in common
// with ref.
func SharesActivity(ref *domain.Trip, c domain.Candidate) bool {
	refSet := toSet(ref.ActivityIDs)
	for _, id := range c.Trip.ActivityIDs {
		if _, ok := refSet[id]; ok {
			return true
		}
	}
	return false
}

// HasStatus accepts candidates in any of the given lifecycle states.
func HasStatus(statuses ...domain.TripStatus) Predicate {
	return func(_ *domain.Trip, c domain.Candidate) bool {
		for _, s := range statuses {
			if c.Trip.Status == s {
				return true
			}
		}
		return false
	}
}

// WithinDays accepts candidates whose start and end each fall within n days
// of ref's start and end. Used for proactive discovery, where exact dates
// rarely line up.
func WithinDays(n int) Predicate {
	window := time.Duration(n) * day
	return func(ref *domain.Trip, c domain.Candidate) bool {
		return absDuration(c.Trip.StartDate.Sub(ref.StartDate)) <= window &&
			absDuration(c.Trip.EndDate.Sub(ref.EndDate)) <= window
	}
}

// ExcludeUsers rejects candidates owned by any of ids.
func ExcludeUsers(ids ...uuid.UUID) Predicate {
	excluded := toSet(ids)
	return func(_ *domain.Trip, c domain.Candidate) bool {
		_, ok := excluded[c.Trip.UserID]
		return !ok
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
