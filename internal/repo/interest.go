package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripmate/internal/domain"
)

// InterestRepo defines the persistence operations for the travel interest
// catalogue.
type InterestRepo interface {
	// Upsert inserts an interest by slug, or returns the existing interest if
	// the slug already exists. The name of the first creator is preserved.
	Upsert(ctx context.Context, name, slug string) (domain.TravelInterest, error)

	// List returns all interests whose slug starts with prefix, ordered by slug.
	// If prefix is empty, all interests are returned.
	List(ctx context.Context, prefix string) ([]domain.TravelInterest, error)

	// CountExisting returns how many of ids exist in the catalogue.
	// Duplicates in ids are counted once.
	CountExisting(ctx context.Context, ids []uuid.UUID) (int, error)
}

// pgInterestRepo is the Postgres implementation of InterestRepo.
type pgInterestRepo struct {
	db db
}

// NewInterestRepo constructs an InterestRepo backed by the provided db connection.
func NewInterestRepo(db db) InterestRepo {
	return &pgInterestRepo{db: db}
}

// Upsert inserts an interest or returns the existing row on slug conflict.
// DO UPDATE SET slug = EXCLUDED.slug is a no-op write that makes RETURNING
// fire on conflict; DO NOTHING would return no row.
func (r *pgInterestRepo) Upsert(ctx context.Context, name, slug string) (domain.TravelInterest, error) {
	const q = `
		INSERT INTO travel_interests (name, slug)
		VALUES (@name, @slug)
		ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug
		RETURNING id, name, slug, created_at`

	result, err := scanInterest(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name, "slug": slug}))
	if err != nil {
		return domain.TravelInterest{}, fmt.Errorf("repo.InterestRepo.Upsert: %w", translate(err))
	}
	return result, nil
}

// List returns interests filtered by slug prefix, ordered by slug.
func (r *pgInterestRepo) List(ctx context.Context, prefix string) ([]domain.TravelInterest, error) {
	const q = `
		SELECT id, name, slug, created_at
		FROM travel_interests
		WHERE slug LIKE @prefix || '%'
		ORDER BY slug`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"prefix": prefix})
	if err != nil {
		return nil, fmt.Errorf("repo.InterestRepo.List: %w", err)
	}
	defer rows.Close()

	interests := []domain.TravelInterest{}
	for rows.Next() {
		i, err := scanInterest(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.InterestRepo.List: scan: %w", err)
		}
		interests = append(interests, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.InterestRepo.List: rows: %w", err)
	}
	return interests, nil
}

// CountExisting counts catalogue rows among ids.
func (r *pgInterestRepo) CountExisting(ctx context.Context, ids []uuid.UUID) (int, error) {
	const q = `SELECT count(*) FROM travel_interests WHERE id = ANY(@ids::uuid[])`

	var n int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"ids": toPgUUIDs(ids)}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.InterestRepo.CountExisting: %w", err)
	}
	return n, nil
}

// scanInterest maps a single database row into a domain.TravelInterest.
func scanInterest(s scanner) (domain.TravelInterest, error) {
	var (
		i  domain.TravelInterest
		id pgtype.UUID
	)
	if err := s.Scan(&id, &i.Name, &i.Slug, &i.CreatedAt); err != nil {
		return domain.TravelInterest{}, err
	}
	i.ID = uuid.UUID(id.Bytes)
	return i, nil
}
