package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripmate/internal/domain"
)

// UserRepo covers the slice of user data this service owns: the
// discoverability flag and travel preferences. Accounts themselves are
// provisioned by the identity provider; Create exists for seeding and tests.
type UserRepo interface {
	// Create inserts a user row and returns its ID.
	Create(ctx context.Context, username string) (uuid.UUID, error)

	// GetPreferences returns the user's preferences.
	// Returns domain.ErrNotFound if the user never set any.
	GetPreferences(ctx context.Context, userID uuid.UUID) (domain.Preferences, error)

	// UpsertPreferences creates or replaces the user's preferences.
	UpsertPreferences(ctx context.Context, p domain.Preferences) (domain.Preferences, error)

	// SetDiscoverable toggles whether the user's trips appear to others.
	// Returns domain.ErrNotFound if the user does not exist.
	SetDiscoverable(ctx context.Context, userID uuid.UUID, discoverable bool) error
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

func (r *pgUserRepo) Create(ctx context.Context, username string) (uuid.UUID, error) {
	const q = `INSERT INTO users (username) VALUES (@username) RETURNING id`

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"username": username}).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("repo.UserRepo.Create: %w", translate(err))
	}
	return uuid.UUID(id.Bytes), nil
}

func (r *pgUserRepo) GetPreferences(ctx context.Context, userID uuid.UUID) (domain.Preferences, error) {
	const q = `
		SELECT user_id, travel_frequency, travel_budget
		FROM user_preferences
		WHERE user_id = @user_id`

	p, err := scanPreferences(r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID}))
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("repo.UserRepo.GetPreferences: %w", translate(err))
	}
	return p, nil
}

// UpsertPreferences stores empty fields as NULL so "unset" survives a round trip.
func (r *pgUserRepo) UpsertPreferences(ctx context.Context, p domain.Preferences) (domain.Preferences, error) {
	const q = `
		INSERT INTO user_preferences (user_id, travel_frequency, travel_budget)
		VALUES (@user_id, NULLIF(@frequency::text, ''), NULLIF(@budget::text, ''))
		ON CONFLICT (user_id) DO UPDATE
		SET travel_frequency = EXCLUDED.travel_frequency,
		    travel_budget    = EXCLUDED.travel_budget
		RETURNING user_id, travel_frequency, travel_budget`

	args := pgx.NamedArgs{
		"user_id":   p.UserID,
		"frequency": string(p.TravelFrequency),
		"budget":    string(p.TravelBudget),
	}
	result, err := scanPreferences(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("repo.UserRepo.UpsertPreferences: %w", translate(err))
	}
	return result, nil
}

func (r *pgUserRepo) SetDiscoverable(ctx context.Context, userID uuid.UUID, discoverable bool) error {
	const q = `UPDATE users SET is_discoverable = @discoverable WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": userID, "discoverable": discoverable})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.SetDiscoverable: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.SetDiscoverable: %w", domain.ErrNotFound)
	}
	return nil
}

func scanPreferences(s scanner) (domain.Preferences, error) {
	var (
		id        pgtype.UUID
		frequency pgtype.Text
		budget    pgtype.Text
	)
	if err := s.Scan(&id, &frequency, &budget); err != nil {
		return domain.Preferences{}, err
	}
	return domain.Preferences{
		UserID:          uuid.UUID(id.Bytes),
		TravelFrequency: domain.TravelFrequency(frequency.String),
		TravelBudget:    domain.TravelBudget(budget.String),
	}, nil
}
