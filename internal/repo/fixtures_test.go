package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripmate/internal/domain"
	"github.com/pkordes/tripmate/internal/repo"
	"github.com/pkordes/tripmate/testutil"
)

// repos bundles every repository over one transaction so a test can build a
// full hierarchy (user, destination, interest, trip, request) and have it all
// rolled back when the test finishes.
type repos struct {
	trips        repo.TripRepo
	users        repo.UserRepo
	interests    repo.InterestRepo
	destinations repo.DestinationRepo
	buddies      repo.BuddyRequestRepo
	reviews      repo.ReviewRepo
}

func newTestRepos(t *testing.T) repos {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")
	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return repos{
		trips:        repo.NewTripRepo(tx),
		users:        repo.NewUserRepo(tx),
		interests:    repo.NewInterestRepo(tx),
		destinations: repo.NewDestinationRepo(tx),
		buddies:      repo.NewBuddyRequestRepo(tx),
		reviews:      repo.NewReviewRepo(tx),
	}
}

func seedUser(t *testing.T, r repos) uuid.UUID {
	t.Helper()
	id, err := r.users.Create(context.Background(), "user-"+uuid.NewString()[:8])
	require.NoError(t, err, "seed user")
	return id
}

func seedDestination(t *testing.T, r repos) domain.Destination {
	t.Helper()
	d, err := r.destinations.Create(context.Background(), domain.Destination{
		Name:     "Goa " + uuid.NewString()[:8],
		Location: "India",
	})
	require.NoError(t, err, "seed destination")
	return d
}

func seedInterest(t *testing.T, r repos, slug string) domain.TravelInterest {
	t.Helper()
	i, err := r.interests.Upsert(context.Background(), slug, slug)
	require.NoError(t, err, "seed interest")
	return i
}

// tripFixture returns a trip owned by userID at destID with sensible
// defaults. Callers override fields as needed.
func tripFixture(userID, destID uuid.UUID) domain.Trip {
	return domain.Trip{
		UserID:        userID,
		DestinationID: destID,
		StartDate:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
		MaxMembers:    4,
		Description:   "Beach week",
	}
}
