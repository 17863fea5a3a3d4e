package handler

import (
	"net/http"

	"github.com/pkordes/tripmate/internal/domain"
)

// createReview handles POST /reviews.
func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var body ReviewRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	review, err := s.Reviews.Create(r.Context(), userID, body.TripID, body.Rating, body.Comment)
	if err != nil {
		s.respondError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, reviewToResponse(review))
}

// listMyReviews handles GET /reviews: reviews the caller wrote plus reviews
// of trips the caller owns or joined.
func (s *Server) listMyReviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	reviews, err := s.Reviews.ListMine(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, reviewsToResponse(reviews))
}

// listLatestReviews handles GET /reviews/latest. It needs no token.
func (s *Server) listLatestReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.Reviews.Latest(r.Context())
	if err != nil {
		s.respondError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, reviewsToResponse(reviews))
}

func reviewsToResponse(reviews []domain.TripReview) []Review {
	out := make([]Review, len(reviews))
	for i, rv := range reviews {
		out[i] = reviewToResponse(rv)
	}
	return out
}
