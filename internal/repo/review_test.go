package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripmate/internal/domain"
)

func seedTrip(t *testing.T, r repos, owner uuid.UUID) domain.Trip {
	t.Helper()
	trip, err := r.trips.Create(context.Background(), tripFixture(owner, seedDestination(t, r).ID))
	require.NoError(t, err, "seed trip")
	return trip
}

func TestReviewRepo_Create(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	user := seedUser(t, r)
	trip := seedTrip(t, r, user)

	got, err := r.reviews.Create(ctx, domain.TripReview{TripID: trip.ID, UserID: user, Rating: 4, Comment: "good food"})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, trip.ID, got.TripID)
	assert.Equal(t, user, got.UserID)
	assert.Equal(t, 4, got.Rating)
	assert.Equal(t, "good food", got.Comment)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestReviewRepo_Create_Twice(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	user := seedUser(t, r)
	trip := seedTrip(t, r, user)

	_, err := r.reviews.Create(ctx, domain.TripReview{TripID: trip.ID, UserID: user, Rating: 4})
	require.NoError(t, err)

	_, err = r.reviews.Create(ctx, domain.TripReview{TripID: trip.ID, UserID: user, Rating: 2})

	assert.ErrorIs(t, err, domain.ErrConflict, "one review per user and trip")
}

func TestReviewRepo_Create_UnknownTrip(t *testing.T) {
	r := newTestRepos(t)

	_, err := r.reviews.Create(context.Background(), domain.TripReview{TripID: uuid.New(), UserID: seedUser(t, r), Rating: 3})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReviewRepo_ListForUser(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	owner := seedUser(t, r)
	member := seedUser(t, r)
	outsider := seedUser(t, r)

	shared := seedTrip(t, r, owner)
	_, err := r.trips.AddMember(ctx, shared.ID, member)
	require.NoError(t, err)
	elsewhere := seedTrip(t, r, outsider)

	byMember, err := r.reviews.Create(ctx, domain.TripReview{TripID: shared.ID, UserID: member, Rating: 5})
	require.NoError(t, err)
	byOutsider, err := r.reviews.Create(ctx, domain.TripReview{TripID: elsewhere.ID, UserID: outsider, Rating: 1})
	require.NoError(t, err)

	ownerView, err := r.reviews.ListForUser(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{byMember.ID}, reviewIDs(ownerView), "owner sees reviews of their trip")

	memberView, err := r.reviews.ListForUser(ctx, member)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{byMember.ID}, reviewIDs(memberView))

	outsiderView, err := r.reviews.ListForUser(ctx, outsider)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{byOutsider.ID}, reviewIDs(outsiderView))

	empty, err := r.reviews.ListForUser(ctx, seedUser(t, r))
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestReviewRepo_ListLatest(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	owner := seedUser(t, r)

	for range 3 {
		trip := seedTrip(t, r, owner)
		_, err := r.reviews.Create(ctx, domain.TripReview{TripID: trip.ID, UserID: owner, Rating: 3})
		require.NoError(t, err)
	}

	got, err := r.reviews.ListLatest(ctx, 2)

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func reviewIDs(reviews []domain.TripReview) []uuid.UUID {
	out := make([]uuid.UUID, len(reviews))
	for i, rv := range reviews {
		out[i] = rv.ID
	}
	return out
}
