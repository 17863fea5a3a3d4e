package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/pkordes/tripmate/internal/service"
)

const discoverSchema = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["destination_id", "start_date", "end_date"],
  "properties": {
    "destination_id": {"type": "string", "format": "uuid"},
    "start_date":     {"type": "string", "format": "date"},
    "end_date":       {"type": "string", "format": "date"},
    "activity_ids": {
      "type": "array",
      "maxItems": 50,
      "items": {"type": "string", "format": "uuid"}
    },
    "min_score": {"type": "number", "minimum": 0, "maximum": 100}
  }
}`

var discoverLoader = gojsonschema.NewStringLoader(discoverSchema)

// getCompatibleTrips handles GET /trips/{id}/compatible: open trips at the
// same destination, ranked against the caller's trip.
func (s *Server) getCompatibleTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	results, err := s.Matches.CompatibleTrips(r.Context(), userID, id)
	if err != nil {
		s.respondError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, matchesToResponse(results))
}

// getBuddyMatches handles GET /trips/{id}/buddies: one best trip per
// potential travel buddy.
func (s *Server) getBuddyMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	results, err := s.Matches.FindBuddies(r.Context(), userID, id)
	if err != nil {
		s.respondError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, matchesToResponse(results))
}

// getCompatibilityMatrix handles GET /trips/{id}/compatibility-matrix.
func (s *Server) getCompatibilityMatrix(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	entries, err := s.Matches.Matrix(r.Context(), userID, id)
	if err != nil {
		s.respondError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusOK, matrixToResponse(entries))
}

// discover handles POST /matches/discover: rank open trips against a draft
// trip that has not been saved.
func (s *Server) discover(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large")
			return
		}
		badRequest(w, "could not read request body")
		return
	}
	if err := validateJSONSchema(discoverLoader, raw); err != nil {
		badRequest(w, err.Error())
		return
	}
	var body DiscoverRequest
	if err := json.Unmarshal(raw, &body); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	q := service.DiscoverQuery{
		DestinationID: body.DestinationID,
		StartDate:     body.StartDate.Time,
		EndDate:       body.EndDate.Time,
		ActivityIDs:   body.ActivityIDs,
	}
	if body.MinScore != nil {
		q.MinScore = *body.MinScore
	}
	results, err := s.Matches.Discover(r.Context(), userID, q)
	if err != nil {
		s.respondError(w, r, err, destinationNotFound)
		return
	}
	writeJSON(w, http.StatusOK, matchesToResponse(results))
}

// validateJSONSchema checks body against schema and folds every violation
// into one message.
func validateJSONSchema(schema gojsonschema.JSONLoader, body []byte) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return errors.New("invalid request body: " + err.Error())
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.New("request does not match schema: " + strings.Join(msgs, "; "))
}
