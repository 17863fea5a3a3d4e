package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripmate/internal/domain"
)

// ReviewRepo defines the persistence operations for trip reviews.
type ReviewRepo interface {
	// Create inserts a review.
	// Returns domain.ErrConflict if the user already reviewed the trip.
	Create(ctx context.Context, review domain.TripReview) (domain.TripReview, error)

	// ListForUser returns reviews written by userID together with reviews
	// on trips userID owns or joined, newest first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.TripReview, error)

	// ListLatest returns the limit most recent reviews.
	ListLatest(ctx context.Context, limit int) ([]domain.TripReview, error)
}

type pgReviewRepo struct {
	db db
}

// NewReviewRepo constructs a ReviewRepo backed by the provided db connection.
func NewReviewRepo(db db) ReviewRepo {
	return &pgReviewRepo{db: db}
}

const reviewColumns = `r.id, r.trip_id, r.user_id, r.rating, r.comment, r.created_at, r.updated_at`

func (r *pgReviewRepo) Create(ctx context.Context, review domain.TripReview) (domain.TripReview, error) {
	const q = `
		INSERT INTO trip_reviews AS r (trip_id, user_id, rating, comment)
		VALUES (@trip_id, @user_id, @rating, @comment)
		RETURNING ` + reviewColumns

	args := pgx.NamedArgs{
		"trip_id": review.TripID,
		"user_id": review.UserID,
		"rating":  review.Rating,
		"comment": review.Comment,
	}
	result, err := scanReview(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripReview{}, fmt.Errorf("repo.ReviewRepo.Create: %w", translate(err))
	}
	return result, nil
}

func (r *pgReviewRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.TripReview, error) {
	const q = `SELECT ` + reviewColumns + `
		FROM trip_reviews r
		JOIN trips t ON t.id = r.trip_id
		WHERE r.user_id = @user_id
		   OR t.user_id = @user_id
		   OR EXISTS (SELECT 1 FROM trip_members tm WHERE tm.trip_id = r.trip_id AND tm.user_id = @user_id)
		ORDER BY r.created_at DESC, r.id`

	out, err := r.query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.ReviewRepo.ListForUser: %w", err)
	}
	return out, nil
}

func (r *pgReviewRepo) ListLatest(ctx context.Context, limit int) ([]domain.TripReview, error) {
	const q = `SELECT ` + reviewColumns + `
		FROM trip_reviews r
		ORDER BY r.created_at DESC, r.id
		LIMIT @limit`

	out, err := r.query(ctx, q, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.ReviewRepo.ListLatest: %w", err)
	}
	return out, nil
}

func (r *pgReviewRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.TripReview, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.TripReview{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func scanReview(s scanner) (domain.TripReview, error) {
	var (
		review             domain.TripReview
		id, tripID, userID pgtype.UUID
	)
	err := s.Scan(&id, &tripID, &userID, &review.Rating, &review.Comment, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		return domain.TripReview{}, err
	}
	review.ID = uuid.UUID(id.Bytes)
	review.TripID = uuid.UUID(tripID.Bytes)
	review.UserID = uuid.UUID(userID.Bytes)
	return review, nil
}
