package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripmate/internal/domain"
	"github.com/pkordes/tripmate/internal/service"
)

// Wire types. Field names and formats follow spec/openapi.yaml; dates are
// calendar dates ("2025-07-01"), timestamps are RFC 3339.

// Trip is the JSON representation of domain.Trip.
type Trip struct {
	ID            openapi_types.UUID   `json:"id"`
	UserID        openapi_types.UUID   `json:"user_id"`
	DestinationID openapi_types.UUID   `json:"destination_id"`
	StartDate     openapi_types.Date   `json:"start_date"`
	EndDate       openapi_types.Date   `json:"end_date"`
	ActivityIDs   []openapi_types.UUID `json:"activity_ids"`
	MemberCount   int                  `json:"member_count"`
	MaxMembers    int                  `json:"max_members"`
	Status        string               `json:"status"`
	Description   *string              `json:"description,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// TripRequest is the body of POST /trips and PUT /trips/{id}.
type TripRequest struct {
	DestinationID openapi_types.UUID   `json:"destination_id"`
	StartDate     openapi_types.Date   `json:"start_date"`
	EndDate       openapi_types.Date   `json:"end_date"`
	ActivityIDs   []openapi_types.UUID `json:"activity_ids"`
	MaxMembers    int                  `json:"max_members"`
	Description   *string              `json:"description,omitempty"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Preferences is the body of GET and PUT /preferences.
type Preferences struct {
	TravelFrequency string `json:"travel_frequency,omitempty"`
	TravelBudget    string `json:"travel_budget,omitempty"`
}

// DiscoverableRequest is the body of PUT /preferences/discoverable.
type DiscoverableRequest struct {
	Discoverable *bool `json:"discoverable"`
}

// Interest is the JSON representation of domain.TravelInterest.
type Interest struct {
	ID        openapi_types.UUID `json:"id"`
	Name      string             `json:"name"`
	Slug      string             `json:"slug"`
	CreatedAt time.Time          `json:"created_at"`
}

// InterestRequest is the body of POST /interests.
type InterestRequest struct {
	Name string `json:"name"`
}

// Destination is the JSON representation of domain.Destination.
type Destination struct {
	ID          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
	Location    string             `json:"location"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"created_at"`
}

// DestinationRequest is the body of POST /destinations.
type DestinationRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// BuddyRequest is the JSON representation of domain.BuddyRequest.
type BuddyRequest struct {
	ID          openapi_types.UUID `json:"id"`
	FromUserID  openapi_types.UUID `json:"from_user_id"`
	ToUserID    openapi_types.UUID `json:"to_user_id"`
	TripID      openapi_types.UUID `json:"trip_id"`
	Message     string             `json:"message"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	RespondedAt *time.Time         `json:"responded_at,omitempty"`
}

// SendBuddyRequest is the body of POST /buddy-requests.
type SendBuddyRequest struct {
	ToUserID openapi_types.UUID `json:"to_user_id"`
	TripID   openapi_types.UUID `json:"trip_id"`
	Message  string             `json:"message"`
}

// Review is the JSON representation of domain.TripReview.
type Review struct {
	ID        openapi_types.UUID `json:"id"`
	TripID    openapi_types.UUID `json:"trip_id"`
	UserID    openapi_types.UUID `json:"user_id"`
	Rating    int                `json:"rating"`
	Comment   string             `json:"comment"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ReviewRequest is the body of POST /reviews.
type ReviewRequest struct {
	TripID  openapi_types.UUID `json:"trip_id"`
	Rating  int                `json:"rating"`
	Comment string             `json:"comment"`
}

// Match is one ranked candidate trip.
type Match struct {
	Trip  Trip    `json:"trip"`
	Score float64 `json:"score"`
}

// Breakdown exposes the weighted terms behind a score.
type Breakdown struct {
	DestinationMatch bool    `json:"destination_match"`
	Date             float64 `json:"date"`
	Activities       float64 `json:"activities"`
	Preferences      float64 `json:"preferences"`
}

// MatrixEntry is one row of GET /trips/{id}/compatibility-matrix.
type MatrixEntry struct {
	Match
	Breakdown Breakdown `json:"breakdown"`
}

// DiscoverRequest is the body of POST /matches/discover. Its shape is
// enforced by discoverSchema before decoding.
type DiscoverRequest struct {
	DestinationID openapi_types.UUID   `json:"destination_id"`
	StartDate     openapi_types.Date   `json:"start_date"`
	EndDate       openapi_types.Date   `json:"end_date"`
	ActivityIDs   []openapi_types.UUID `json:"activity_ids"`
	MinScore      *float64             `json:"min_score,omitempty"`
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a TripRequest body into a domain.Trip.
func requestToTrip(body TripRequest) domain.Trip {
	t := domain.Trip{
		DestinationID: body.DestinationID,
		StartDate:     body.StartDate.Time,
		EndDate:       body.EndDate.Time,
		ActivityIDs:   body.ActivityIDs,
		MaxMembers:    body.MaxMembers,
	}
	if body.Description != nil {
		t.Description = *body.Description
	}
	return t
}

func tripToResponse(t domain.Trip) Trip {
	resp := Trip{
		ID:            t.ID,
		UserID:        t.UserID,
		DestinationID: t.DestinationID,
		StartDate:     openapi_types.Date{Time: t.StartDate},
		EndDate:       openapi_types.Date{Time: t.EndDate},
		ActivityIDs:   t.ActivityIDs,
		MemberCount:   t.MemberCount,
		MaxMembers:    t.MaxMembers,
		Status:        string(t.Status),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if resp.ActivityIDs == nil {
		resp.ActivityIDs = []openapi_types.UUID{}
	}
	if t.Description != "" {
		resp.Description = &t.Description
	}
	return resp
}

func tripsToResponse(trips []domain.Trip) []Trip {
	out := make([]Trip, len(trips))
	for i, t := range trips {
		out[i] = tripToResponse(t)
	}
	return out
}

func preferencesToResponse(p domain.Preferences) Preferences {
	return Preferences{
		TravelFrequency: string(p.TravelFrequency),
		TravelBudget:    string(p.TravelBudget),
	}
}

func interestToResponse(i domain.TravelInterest) Interest {
	return Interest{ID: i.ID, Name: i.Name, Slug: i.Slug, CreatedAt: i.CreatedAt}
}

func destinationToResponse(d domain.Destination) Destination {
	return Destination{
		ID:          d.ID,
		Name:        d.Name,
		Location:    d.Location,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
	}
}

func buddyRequestToResponse(b domain.BuddyRequest) BuddyRequest {
	return BuddyRequest{
		ID:          b.ID,
		FromUserID:  b.FromUserID,
		ToUserID:    b.ToUserID,
		TripID:      b.TripID,
		Message:     b.Message,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		RespondedAt: b.RespondedAt,
	}
}

func reviewToResponse(r domain.TripReview) Review {
	return Review{
		ID:        r.ID,
		TripID:    r.TripID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func matchesToResponse(results []domain.CompatibilityResult) []Match {
	out := make([]Match, len(results))
	for i, r := range results {
		out[i] = Match{Trip: tripToResponse(r.Candidate.Trip), Score: r.Score}
	}
	return out
}

func matrixToResponse(entries []service.MatrixEntry) []MatrixEntry {
	out := make([]MatrixEntry, len(entries))
	for i, e := range entries {
		out[i] = MatrixEntry{
			Match: Match{Trip: tripToResponse(e.Result.Candidate.Trip), Score: e.Result.Score},
			Breakdown: Breakdown{
				DestinationMatch: e.Breakdown.DestinationMatch,
				Date:             e.Breakdown.Date,
				Activities:       e.Breakdown.Activities,
				Preferences:      e.Breakdown.Preferences,
			},
		}
	}
	return out
}
