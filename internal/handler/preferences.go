package handler

import (
	"net/http"

	"github.com/pkordes/tripmate/internal/domain"
)

// getPreferences handles GET /preferences for the caller.
func (s *Server) getPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	p, err := s.Preferences.Get(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err, "preferences not set")
		return
	}
	writeJSON(w, http.StatusOK, preferencesToResponse(p))
}

// putPreferences handles PUT /preferences. Omitted fields are stored as unset.
func (s *Server) putPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var body Preferences
	if !decodeJSON(w, r, &body) {
		return
	}
	p, err := s.Preferences.Upsert(r.Context(), userID, domain.Preferences{
		TravelFrequency: domain.TravelFrequency(body.TravelFrequency),
		TravelBudget:    domain.TravelBudget(body.TravelBudget),
	})
	if err != nil {
		s.respondError(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, preferencesToResponse(p))
}

// putDiscoverable handles PUT /preferences/discoverable.
func (s *Server) putDiscoverable(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var body DiscoverableRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Discoverable == nil {
		badRequest(w, "discoverable is required")
		return
	}
	if err := s.Preferences.SetDiscoverable(r.Context(), userID, *body.Discoverable); err != nil {
		s.respondError(w, r, err, "user not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
