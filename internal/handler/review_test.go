package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripmate/internal/domain"
	"github.com/pkordes/tripmate/internal/handler"
)

func reviewHandler(svc *mockReviewServicer) http.Handler {
	return newHTTPHandler(handler.Services{Reviews: svc})
}

func reviewFixture() domain.TripReview {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.TripReview{
		ID:        uuid.New(),
		TripID:    uuid.New(),
		UserID:    callerID,
		Rating:    4,
		Comment:   "great hosts",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ---- POST /reviews ---------------------------------------------------------

func TestCreateReview_201(t *testing.T) {
	fixture := reviewFixture()
	svc := &mockReviewServicer{
		create: func(_ context.Context, caller, tripID uuid.UUID, rating int, comment string) (domain.TripReview, error) {
			assert.Equal(t, callerID, caller)
			assert.Equal(t, fixture.TripID, tripID)
			assert.Equal(t, 4, rating)
			assert.Equal(t, "great hosts", comment)
			return fixture, nil
		},
	}

	rec := do(t, reviewHandler(svc), http.MethodPost, "/reviews",
		map[string]any{"trip_id": fixture.TripID, "rating": 4, "comment": "great hosts"})

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[handler.Review](t, rec)
	assert.Equal(t, fixture.ID, resp.ID)
	assert.Equal(t, fixture.TripID, resp.TripID)
	assert.Equal(t, 4, resp.Rating)
}

func TestCreateReview_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"bad rating", fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation), http.StatusUnprocessableEntity, "validation_error"},
		{"trip not completed", fmt.Errorf("%w: reviews can only be submitted for completed trips", domain.ErrConflict), http.StatusConflict, "conflict"},
		{"not on the trip", fmt.Errorf("%w: only the owner or a member may review this trip", domain.ErrForbidden), http.StatusForbidden, "forbidden"},
		{"unknown trip", domain.ErrNotFound, http.StatusNotFound, "not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockReviewServicer{
				create: func(context.Context, uuid.UUID, uuid.UUID, int, string) (domain.TripReview, error) {
					return domain.TripReview{}, tc.err
				},
			}

			rec := do(t, reviewHandler(svc), http.MethodPost, "/reviews",
				map[string]any{"trip_id": uuid.New(), "rating": 9})

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, errorCode(t, rec))
		})
	}
}

func TestCreateReview_400_UnknownField(t *testing.T) {
	rec := do(t, reviewHandler(&mockReviewServicer{}), http.MethodPost, "/reviews",
		map[string]any{"trip_id": uuid.New(), "stars": 5})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- GET /reviews ----------------------------------------------------------

func TestListMyReviews_200(t *testing.T) {
	svc := &mockReviewServicer{
		listMine: func(_ context.Context, caller uuid.UUID) ([]domain.TripReview, error) {
			assert.Equal(t, callerID, caller)
			return []domain.TripReview{reviewFixture(), reviewFixture()}, nil
		},
	}

	rec := do(t, reviewHandler(svc), http.MethodGet, "/reviews", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]handler.Review](t, rec), 2)
}

func TestListMyReviews_401_WithoutUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/reviews", nil)
	rec := httptest.NewRecorder()

	reviewHandler(&mockReviewServicer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ---- GET /reviews/latest ---------------------------------------------------

func TestListLatestReviews_200_WithoutUser(t *testing.T) {
	svc := &mockReviewServicer{
		latest: func(context.Context) ([]domain.TripReview, error) {
			return []domain.TripReview{reviewFixture()}, nil
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/reviews/latest", nil)
	rec := httptest.NewRecorder()

	reviewHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]handler.Review](t, rec), 1)
}

func TestListLatestReviews_200_Empty(t *testing.T) {
	svc := &mockReviewServicer{
		latest: func(context.Context) ([]domain.TripReview, error) { return []domain.TripReview{}, nil },
	}

	rec := do(t, reviewHandler(svc), http.MethodGet, "/reviews/latest", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
