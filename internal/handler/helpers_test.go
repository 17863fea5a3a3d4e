package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripmate/internal/domain"
	"github.com/pkordes/tripmate/internal/handler"
	"github.com/pkordes/tripmate/internal/middleware"
)

// userHeader stands in for a verified token in handler tests.
const userHeader = "X-Test-User"

var callerID = uuid.MustParse("0b6c6f1e-4a0b-4c47-9d0e-6f6c1f1d2a01")

// fakeAuth trusts userHeader so tests can pick the caller without minting
// JWTs. Requests without it are rejected the way Authenticate rejects them.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.Header.Get(userHeader))
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), id)))
	})
}

// newHTTPHandler wires a Server with the given mocks into the real router.
// This mirrors how main.go wires it in production, minus JWT checking.
func newHTTPHandler(svc handler.Services) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewServer(svc, log).Routes(handler.RouteOptions{Authenticate: fakeAuth})
}

// do sends a request as callerID and returns the recorded response.
func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rdr)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(userHeader, callerID.String())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[handler.ErrorResponse](t, rec).Error.Code
}

func tripFixture() domain.Trip {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Trip{
		ID:            uuid.New(),
		UserID:        callerID,
		DestinationID: uuid.New(),
		StartDate:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
		ActivityIDs:   []uuid.UUID{uuid.New()},
		MemberCount:   1,
		MaxMembers:    4,
		Status:        domain.TripOpen,
		Description:   "lakes and hikes",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
