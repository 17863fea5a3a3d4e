package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/pkordes/tripmate/internal/domain"
	"github.com/pkordes/tripmate/internal/repo"
)

// CatalogService manages the reference data trips are built from: travel
// interests and destinations.
// Interest identity is determined by slug, which is always lowercase and
// hyphenated.
type CatalogService struct {
	interests    repo.InterestRepo
	destinations repo.DestinationRepo
}

// NewCatalogService constructs a CatalogService backed by the provided repos.
func NewCatalogService(interests repo.InterestRepo, destinations repo.DestinationRepo) *CatalogService {
	return &CatalogService{interests: interests, destinations: destinations}
}

// UpsertInterest normalizes name to a slug and creates the interest, or
// returns the existing one with the same slug.
// Returns domain.ErrValidation if name is empty or normalizes to empty.
func (s *CatalogService) UpsertInterest(ctx context.Context, name string) (domain.TravelInterest, error) {
	name = strings.TrimSpace(name)
	slug := Slugify(name)
	if slug == "" {
		return domain.TravelInterest{}, fmt.Errorf("%w: interest name is required", domain.ErrValidation)
	}
	result, err := s.interests.Upsert(ctx, name, slug)
	if err != nil {
		return domain.TravelInterest{}, fmt.Errorf("service.CatalogService.UpsertInterest: %w", err)
	}
	return result, nil
}

// ListInterests returns interests whose slug starts with the normalized prefix.
func (s *CatalogService) ListInterests(ctx context.Context, prefix string) ([]domain.TravelInterest, error) {
	interests, err := s.interests.List(ctx, Slugify(prefix))
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.ListInterests: %w", err)
	}
	if interests == nil {
		return []domain.TravelInterest{}, nil
	}
	return interests, nil
}

// CreateDestination validates and persists a destination.
func (s *CatalogService) CreateDestination(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return domain.Destination{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	d.Location = strings.TrimSpace(d.Location)
	result, err := s.destinations.Create(ctx, d)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.CatalogService.CreateDestination: %w", err)
	}
	return result, nil
}

// GetDestination returns a single destination by ID.
func (s *CatalogService) GetDestination(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	result, err := s.destinations.GetByID(ctx, id)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.CatalogService.GetDestination: %w", err)
	}
	return result, nil
}

// ListDestinations returns every destination ordered by name.
func (s *CatalogService) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	out, err := s.destinations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.ListDestinations: %w", err)
	}
	if out == nil {
		return []domain.Destination{}, nil
	}
	return out, nil
}

// Slugify lowercases s and collapses every run of non-alphanumeric
// characters into a single hyphen, trimming hyphens at both ends.
// "Scuba  Diving!" becomes "scuba-diving".
func Slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
