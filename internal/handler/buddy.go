package handler

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/tripmate/internal/domain"
)

const buddyRequestNotFound = "buddy request not found"

// listBuddyRequests handles GET /buddy-requests.
// ?box=sent lists outgoing requests; anything else lists received ones.
func (s *Server) listBuddyRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var box *string
	if err := runtime.BindQueryParameter("form", true, false, "box", r.URL.Query(), &box); err != nil {
		badRequest(w, "invalid format for parameter box")
		return
	}

	var (
		reqs []domain.BuddyRequest
		err  error
	)
	switch {
	case box == nil || *box == "received":
		reqs, err = s.Buddies.ListReceived(r.Context(), userID)
	case *box == "sent":
		reqs, err = s.Buddies.ListSent(r.Context(), userID)
	default:
		badRequest(w, "box must be one of: received, sent")
		return
	}
	if err != nil {
		s.respondError(w, r, err, buddyRequestNotFound)
		return
	}

	out := make([]BuddyRequest, len(reqs))
	for i, b := range reqs {
		out[i] = buddyRequestToResponse(b)
	}
	writeJSON(w, http.StatusOK, out)
}

// sendBuddyRequest handles POST /buddy-requests.
func (s *Server) sendBuddyRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	var body SendBuddyRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	req, err := s.Buddies.Send(r.Context(), userID, body.ToUserID, body.TripID, body.Message)
	if err != nil {
		s.respondError(w, r, err, tripNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, buddyRequestToResponse(req))
}

// acceptBuddyRequest handles POST /buddy-requests/{id}/accept.
func (s *Server) acceptBuddyRequest(w http.ResponseWriter, r *http.Request) {
	s.respondBuddyRequest(w, r, true)
}

// rejectBuddyRequest handles POST /buddy-requests/{id}/reject.
func (s *Server) rejectBuddyRequest(w http.ResponseWriter, r *http.Request) {
	s.respondBuddyRequest(w, r, false)
}

func (s *Server) respondBuddyRequest(w http.ResponseWriter, r *http.Request, accept bool) {
	userID, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, err := s.Buddies.Respond(r.Context(), userID, id, accept)
	if err != nil {
		s.respondError(w, r, err, buddyRequestNotFound)
		return
	}
	writeJSON(w, http.StatusOK, buddyRequestToResponse(req))
}
