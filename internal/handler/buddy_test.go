package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripmate/internal/domain"
	"github.com/pkordes/tripmate/internal/handler"
)

func buddyHandler(svc *mockBuddyServicer) http.Handler {
	return newHTTPHandler(handler.Services{Buddies: svc})
}

func TestSendBuddyRequest_201(t *testing.T) {
	to, tripID := uuid.New(), uuid.New()
	svc := &mockBuddyServicer{
		send: func(_ context.Context, caller, gotTo, gotTrip uuid.UUID, msg string) (domain.BuddyRequest, error) {
			assert.Equal(t, callerID, caller)
			assert.Equal(t, to, gotTo)
			assert.Equal(t, tripID, gotTrip)
			return domain.BuddyRequest{ID: uuid.New(), FromUserID: caller, ToUserID: gotTo,
				TripID: gotTrip, Message: msg, Status: domain.BuddyPending}, nil
		},
	}

	rec := do(t, buddyHandler(svc), http.MethodPost, "/buddy-requests",
		map[string]any{"to_user_id": to, "trip_id": tripID, "message": "join us?"})

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[handler.BuddyRequest](t, rec)
	assert.Equal(t, "pending", resp.Status)
	assert.Nil(t, resp.RespondedAt)
}

func TestListBuddyRequests_box(t *testing.T) {
	var called string
	svc := &mockBuddyServicer{
		listReceived: func(context.Context, uuid.UUID) ([]domain.BuddyRequest, error) {
			called = "received"
			return []domain.BuddyRequest{}, nil
		},
		listSent: func(context.Context, uuid.UUID) ([]domain.BuddyRequest, error) {
			called = "sent"
			return []domain.BuddyRequest{}, nil
		},
	}
	h := buddyHandler(svc)

	for target, want := range map[string]string{
		"/buddy-requests":              "received",
		"/buddy-requests?box=received": "received",
		"/buddy-requests?box=sent":     "sent",
	} {
		called = ""
		rec := do(t, h, http.MethodGet, target, nil)
		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, want, called, target)
	}

	rec := do(t, h, http.MethodGet, "/buddy-requests?box=archive", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRespondBuddyRequest(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantAccept bool
		err        error
		wantStatus int
	}{
		{name: "accept", path: "accept", wantAccept: true, wantStatus: http.StatusOK},
		{name: "reject", path: "reject", wantAccept: false, wantStatus: http.StatusOK},
		{
			name: "not the recipient", path: "accept", wantAccept: true,
			err:        fmt.Errorf("%w: only the recipient can respond", domain.ErrForbidden),
			wantStatus: http.StatusForbidden,
		},
		{
			name: "already answered", path: "reject",
			err:        fmt.Errorf("%w: request already accepted", domain.ErrConflict),
			wantStatus: http.StatusConflict,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockBuddyServicer{
				respond: func(_ context.Context, _, _ uuid.UUID, accept bool) (domain.BuddyRequest, error) {
					assert.Equal(t, tc.wantAccept, accept)
					if tc.err != nil {
						return domain.BuddyRequest{}, tc.err
					}
					return domain.BuddyRequest{ID: uuid.New(), Status: domain.BuddyAccepted}, nil
				},
			}

			rec := do(t, buddyHandler(svc), http.MethodPost,
				"/buddy-requests/"+uuid.NewString()+"/"+tc.path, nil)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}
