package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/tripmate/internal/domain"
	"github.com/pkordes/tripmate/internal/repo"
)

// PreferencesService manages a user's travel preferences and
// discoverability.
type PreferencesService struct {
	users repo.UserRepo
}

// NewPreferencesService constructs a PreferencesService backed by the provided UserRepo.
func NewPreferencesService(users repo.UserRepo) *PreferencesService {
	return &PreferencesService{users: users}
}

// Get returns the user's preferences.
// Returns domain.ErrNotFound if the user never set any.
func (s *PreferencesService) Get(ctx context.Context, userID uuid.UUID) (domain.Preferences, error) {
	p, err := s.users.GetPreferences(ctx, userID)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("service.PreferencesService.Get: %w", err)
	}
	return p, nil
}

// Upsert validates and stores the caller's preferences. Empty fields mean
// "no preference"; during scoring two empty fields count as equal.
func (s *PreferencesService) Upsert(ctx context.Context, userID uuid.UUID, p domain.Preferences) (domain.Preferences, error) {
	if !p.TravelFrequency.Valid() {
		return domain.Preferences{}, fmt.Errorf("%w: unknown travel_frequency %q", domain.ErrValidation, p.TravelFrequency)
	}
	if !p.TravelBudget.Valid() {
		return domain.Preferences{}, fmt.Errorf("%w: unknown travel_budget %q", domain.ErrValidation, p.TravelBudget)
	}
	p.UserID = userID
	result, err := s.users.UpsertPreferences(ctx, p)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("service.PreferencesService.Upsert: %w", err)
	}
	return result, nil
}

// SetDiscoverable toggles whether the user's trips appear in other users'
// compatibility results.
func (s *PreferencesService) SetDiscoverable(ctx context.Context, userID uuid.UUID, discoverable bool) error {
	if err := s.users.SetDiscoverable(ctx, userID, discoverable); err != nil {
		return fmt.Errorf("service.PreferencesService.SetDiscoverable: %w", err)
	}
	return nil
}
