// Package matching computes how compatible two trips are and ranks candidate
// trips against a reference trip.
//
// Everything here is pure: no I/O, no shared state. Callers fetch the
// candidate pool from the repo layer and pass it in, so concurrent ranking
// requests need no locking.
package matching

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripmate/internal/domain"
)

// Weights applied to each term. Each term is scaled to [0, 100] first.
const (
	DateWeight       = 0.30
	ActivityWeight   = 0.50
	PreferenceWeight = 0.20
)

// preferenceMatchPoints is what one matching preference field adds to the
// preference term. Two fields, so a full match is 100.
const preferenceMatchPoints = 50.0

const day = 24 * time.Hour

// Breakdown is the per-term view of a score. Terms are reported before
// weighting; Total is the weighted, clamped and rounded score.
type Breakdown struct {
	DestinationMatch bool
	Date             float64
	Activities       float64
	Preferences      float64
	Total            float64
}

// Score returns the compatibility of cand relative to ref in [0, 100],
// rounded to 2 decimal places. Trips at different destinations score 0.
//
// The score is directional: the activity term divides by the size of ref's
// activity set, so Score(a, b) and Score(b, a) differ when the sets differ
// in size.
//
// Score panics if ref or cand is nil.
func Score(ref, cand *domain.Trip, refPrefs, candPrefs *domain.Preferences) float64 {
	return Explain(ref, cand, refPrefs, candPrefs).Total
}

// Explain is Score with the individual terms exposed.
func Explain(ref, cand *domain.Trip, refPrefs, candPrefs *domain.Preferences) Breakdown {
	if ref == nil || cand == nil {
		panic("matching: nil trip passed to scorer")
	}
	if ref.DestinationID != cand.DestinationID {
		return Breakdown{}
	}

	b := Breakdown{
		DestinationMatch: true,
		Date:             DateOverlapScore(ref, cand),
		Activities:       ActivitiesScore(ref.ActivityIDs, cand.ActivityIDs),
		Preferences:      PreferencesScore(refPrefs, candPrefs),
	}
	total := DateWeight*b.Date + ActivityWeight*b.Activities + PreferenceWeight*b.Preferences
	b.Total = round2(clamp(total, 0, 100))
	return b
}

// DateOverlapScore is the share of the shorter trip spent overlapping the
// other, in [0, 100]. Both windows are closed intervals counted in whole days.
// Malformed windows (end before start) yield 0.
func DateOverlapScore(a, b *domain.Trip) float64 {
	start := later(a.StartDate, b.StartDate)
	end := earlier(a.EndDate, b.EndDate)
	if start.After(end) {
		return 0
	}

	overlap := wholeDays(end.Sub(start)) + 1
	total := min(durationDays(a), durationDays(b))
	if total <= 0 {
		return 0
	}
	return float64(overlap) / float64(total) * 100
}

// ActivitiesScore is the share of ref's activities that cand also has, in
// [0, 100]. Either set being empty yields 0. Duplicate IDs count once.
func ActivitiesScore(ref, cand []uuid.UUID) float64 {
	refSet := toSet(ref)
	candSet := toSet(cand)
	if len(refSet) == 0 || len(candSet) == 0 {
		return 0
	}

	shared := 0
	for id := range refSet {
		if _, ok := candSet[id]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(refSet)) * 100
}

// PreferencesScore awards half the term for a matching travel frequency and
// half for a matching budget. A missing record on either side scores 0.
// Fields are compared as stored, so two unset fields count as a match.
func PreferencesScore(a, b *domain.Preferences) float64 {
	if a == nil || b == nil {
		return 0
	}
	score := 0.0
	if a.TravelFrequency == b.TravelFrequency {
		score += preferenceMatchPoints
	}
	if a.TravelBudget == b.TravelBudget {
		score += preferenceMatchPoints
	}
	return score
}

// durationDays counts t's window inclusively: a trip that starts and ends on
// the same day lasts 1 day. Negative for malformed windows.
func durationDays(t *domain.Trip) int {
	return wholeDays(t.EndDate.Sub(t.StartDate)) + 1
}

// wholeDays truncates d towards negative infinity, matching how elapsed
// days are counted between two timestamps.
func wholeDays(d time.Duration) int {
	n := d / day
	if d < 0 && d%day != 0 {
		n--
	}
	return int(n)
}

func later(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlier(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// round2 rounds half away from zero to 2 decimal places. Exact ties at the
// third decimal therefore round up, not to even.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
