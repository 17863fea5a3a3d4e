// Package handler implements the HTTP handlers for the Trip Mate API.
// All handlers are methods on Server. They are split into domain-specific
// files (health.go, trip.go, match.go, etc.) but share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/tripmate/internal/domain"
	"github.com/pkordes/tripmate/internal/service"
)

// The servicer interfaces below are defined here, in the consumer package,
// so handler tests can inject mocks without touching the database or service
// layer.

// TripServicer defines the trip operations the handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, caller uuid.UUID, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	Update(ctx context.Context, caller uuid.UUID, trip domain.Trip) (domain.Trip, error)
	Cancel(ctx context.Context, caller, id uuid.UUID) (domain.Trip, error)
	Delete(ctx context.Context, caller, id uuid.UUID) error
	Join(ctx context.Context, caller, id uuid.UUID) (domain.Trip, error)
	Leave(ctx context.Context, caller, id uuid.UUID) (domain.Trip, error)
}

// PreferencesServicer defines the preference operations the handlers depend on.
type PreferencesServicer interface {
	Get(ctx context.Context, userID uuid.UUID) (domain.Preferences, error)
	Upsert(ctx context.Context, userID uuid.UUID, p domain.Preferences) (domain.Preferences, error)
	SetDiscoverable(ctx context.Context, userID uuid.UUID, discoverable bool) error
}

// CatalogServicer defines the interest and destination operations.
type CatalogServicer interface {
	UpsertInterest(ctx context.Context, name string) (domain.TravelInterest, error)
	ListInterests(ctx context.Context, prefix string) ([]domain.TravelInterest, error)
	CreateDestination(ctx context.Context, d domain.Destination) (domain.Destination, error)
	GetDestination(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	ListDestinations(ctx context.Context) ([]domain.Destination, error)
}

// BuddyServicer defines the buddy request operations.
type BuddyServicer interface {
	Send(ctx context.Context, caller, toUserID, tripID uuid.UUID, message string) (domain.BuddyRequest, error)
	Respond(ctx context.Context, caller, id uuid.UUID, accept bool) (domain.BuddyRequest, error)
	ListReceived(ctx context.Context, caller uuid.UUID) ([]domain.BuddyRequest, error)
	ListSent(ctx context.Context, caller uuid.UUID) ([]domain.BuddyRequest, error)
}

// ReviewServicer defines the trip review operations.
type ReviewServicer interface {
	Create(ctx context.Context, caller, tripID uuid.UUID, rating int, comment string) (domain.TripReview, error)
	ListMine(ctx context.Context, caller uuid.UUID) ([]domain.TripReview, error)
	Latest(ctx context.Context) ([]domain.TripReview, error)
}

// MatchServicer defines the compatibility flows.
type MatchServicer interface {
	CompatibleTrips(ctx context.Context, caller, tripID uuid.UUID) ([]domain.CompatibilityResult, error)
	FindBuddies(ctx context.Context, caller, tripID uuid.UUID) ([]domain.CompatibilityResult, error)
	Discover(ctx context.Context, caller uuid.UUID, q service.DiscoverQuery) ([]domain.CompatibilityResult, error)
	Matrix(ctx context.Context, caller, tripID uuid.UUID) ([]service.MatrixEntry, error)
}

// Services bundles the Server's dependencies. Nil fields are allowed in
// tests that never hit the matching routes.
type Services struct {
	Trips       TripServicer
	Preferences PreferencesServicer
	Catalog     CatalogServicer
	Buddies     BuddyServicer
	Reviews     ReviewServicer
	Matches     MatchServicer
}

// Server holds the dependencies every handler shares.
type Server struct {
	Services
	log *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, log *slog.Logger) *Server {
	return &Server{Services: svc, log: log}
}

// Middleware is the shape of every chi-compatible middleware.
type Middleware = func(http.Handler) http.Handler

// RouteOptions carries the middleware Routes cannot build itself.
type RouteOptions struct {
	// Authenticate guards every route except /healthz, /openapi.yaml and
	// /reviews/latest.
	Authenticate Middleware
	// MatchLimiter throttles the matching routes. Nil disables it.
	MatchLimiter Middleware
}

// Routes returns the API's chi router.
func (s *Server) Routes(opts RouteOptions) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", s.getOpenAPI)
	r.Get("/reviews/latest", s.listLatestReviews)

	r.Group(func(r chi.Router) {
		r.Use(opts.Authenticate)

		r.Route("/destinations", func(r chi.Router) {
			r.Get("/", s.listDestinations)
			r.Post("/", s.createDestination)
			r.Get("/{id}", s.getDestination)
		})

		r.Route("/interests", func(r chi.Router) {
			r.Get("/", s.listInterests)
			r.Post("/", s.createInterest)
		})

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/", s.getPreferences)
			r.Put("/", s.putPreferences)
			r.Put("/discoverable", s.putDiscoverable)
		})

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.listTrips)
			r.Post("/", s.createTrip)
			r.Get("/mine", s.listMyTrips)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getTrip)
				r.Put("/", s.updateTrip)
				r.Delete("/", s.deleteTrip)
				r.Post("/cancel", s.cancelTrip)
				r.Post("/join", s.joinTrip)
				r.Post("/leave", s.leaveTrip)

				r.Group(func(r chi.Router) {
					if opts.MatchLimiter != nil {
						r.Use(opts.MatchLimiter)
					}
					r.Get("/compatible", s.getCompatibleTrips)
					r.Get("/buddies", s.getBuddyMatches)
					r.Get("/compatibility-matrix", s.getCompatibilityMatrix)
				})
			})
		})

		r.Group(func(r chi.Router) {
			if opts.MatchLimiter != nil {
				r.Use(opts.MatchLimiter)
			}
			r.Post("/matches/discover", s.discover)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", s.listMyReviews)
			r.Post("/", s.createReview)
		})

		r.Route("/buddy-requests", func(r chi.Router) {
			r.Get("/", s.listBuddyRequests)
			r.Post("/", s.sendBuddyRequest)
			r.Post("/{id}/accept", s.acceptBuddyRequest)
			r.Post("/{id}/reject", s.rejectBuddyRequest)
		})
	})

	return r
}
