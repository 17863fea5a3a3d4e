package handler

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/tripmate/internal/domain"
)

const destinationNotFound = "destination not found"

// listDestinations handles GET /destinations.
func (s *Server) listDestinations(w http.ResponseWriter, r *http.Request) {
	dests, err := s.Catalog.ListDestinations(r.Context())
	if err != nil {
		s.respondError(w, r, err, destinationNotFound)
		return
	}
	out := make([]Destination, len(dests))
	for i, d := range dests {
		out[i] = destinationToResponse(d)
	}
	writeJSON(w, http.StatusOK, out)
}

// createDestination handles POST /destinations.
func (s *Server) createDestination(w http.ResponseWriter, r *http.Request) {
	var body DestinationRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	created, err := s.Catalog.CreateDestination(r.Context(), domain.Destination{
		Name:        body.Name,
		Location:    body.Location,
		Description: body.Description,
	})
	if err != nil {
		s.respondError(w, r, err, destinationNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, destinationToResponse(created))
}

// getDestination handles GET /destinations/{id}.
func (s *Server) getDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	d, err := s.Catalog.GetDestination(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err, destinationNotFound)
		return
	}
	writeJSON(w, http.StatusOK, destinationToResponse(d))
}

// listInterests handles GET /interests.
// The optional ?q= parameter filters by slug prefix, for autocomplete.
func (s *Server) listInterests(w http.ResponseWriter, r *http.Request) {
	var q *string
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &q); err != nil {
		badRequest(w, "invalid format for parameter q")
		return
	}
	prefix := ""
	if q != nil {
		prefix = *q
	}

	interests, err := s.Catalog.ListInterests(r.Context(), prefix)
	if err != nil {
		s.respondError(w, r, err, "interest not found")
		return
	}
	out := make([]Interest, len(interests))
	for i, in := range interests {
		out[i] = interestToResponse(in)
	}
	writeJSON(w, http.StatusOK, out)
}

// createInterest handles POST /interests. A name whose slug already exists
// returns the stored interest.
func (s *Server) createInterest(w http.ResponseWriter, r *http.Request) {
	var body InterestRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	in, err := s.Catalog.UpsertInterest(r.Context(), body.Name)
	if err != nil {
		s.respondError(w, r, err, "interest not found")
		return
	}
	writeJSON(w, http.StatusCreated, interestToResponse(in))
}
