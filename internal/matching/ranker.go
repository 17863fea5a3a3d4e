package matching

import (
	"sort"

	"github.com/google/uuid"

	"github.com/pkordes/tripmate/internal/domain"
)

// Options controls which candidates Rank keeps.
type Options struct {
	// Eligible is applied before scoring. Nil accepts every candidate.
	Eligible Predicate

	// MinScore drops results scoring below it. Zero keeps everything that
	// survives the zero-score rule below.
	MinScore float64

	// DateWindowDays, when set, requires the candidate's start and end to be
	// within that many days of the reference's.
	DateWindowDays *int

	// RequireDiscoverable drops candidates whose owner opted out of discovery.
	RequireDiscoverable bool

	// IncludeZeroScores keeps candidates that scored exactly 0. Off for
	// buddy-finding flows; on when building a full diagnostics matrix.
	IncludeZeroScores bool
}

// Rank scores every eligible candidate in pool against ref and returns the
// survivors ordered by score, highest first. Candidates with equal scores
// keep their relative order from pool.
//
// Candidates owned by excludeUser, and ref itself, are never returned.
// The result is never nil; an empty slice means no matches.
//
// Rank panics if ref is nil.
func Rank(ref *domain.Trip, refPrefs *domain.Preferences, pool []domain.Candidate, excludeUser uuid.UUID, opts Options) []domain.CompatibilityResult {
	if ref == nil {
		panic("matching: nil reference trip passed to Rank")
	}

	eligible := opts.predicate()
	results := make([]domain.CompatibilityResult, 0, len(pool))
	for _, c := range pool {
		if c.Trip.UserID == excludeUser {
			continue
		}
		if ref.ID != uuid.Nil && c.Trip.ID == ref.ID {
			continue
		}
		if !eligible(ref, c) {
			continue
		}

		score := Score(ref, &c.Trip, refPrefs, c.Preferences)
		if score == 0 && !opts.IncludeZeroScores {
			continue
		}
		if score < opts.MinScore {
			continue
		}
		results = append(results, domain.CompatibilityResult{Candidate: c, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// predicate folds the option flags and the caller's predicate into one.
func (o Options) predicate() Predicate {
	preds := make([]Predicate, 0, 3)
	if o.RequireDiscoverable {
		preds = append(preds, Discoverable)
	}
	if o.DateWindowDays != nil {
		preds = append(preds, WithinDays(*o.DateWindowDays))
	}
	preds = append(preds, o.Eligible)
	return All(preds...)
}
