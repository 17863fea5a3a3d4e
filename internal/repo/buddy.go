package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripmate/internal/domain"
)

// BuddyRequestRepo defines the persistence operations for buddy requests.
type BuddyRequestRepo interface {
	// Create inserts a pending request.
	// Returns domain.ErrConflict if one already exists for (from, to, trip).
	Create(ctx context.Context, req domain.BuddyRequest) (domain.BuddyRequest, error)

	// GetByID returns domain.ErrNotFound if no request has that ID.
	GetByID(ctx context.Context, id uuid.UUID) (domain.BuddyRequest, error)

	// ListReceived returns requests addressed to userID, newest first.
	ListReceived(ctx context.Context, userID uuid.UUID) ([]domain.BuddyRequest, error)

	// ListSent returns requests sent by userID, newest first.
	ListSent(ctx context.Context, userID uuid.UUID) ([]domain.BuddyRequest, error)

	// Respond moves a pending request to status and stamps responded_at.
	// Returns domain.ErrNotFound if no pending request has that ID.
	Respond(ctx context.Context, id uuid.UUID, status domain.BuddyRequestStatus) (domain.BuddyRequest, error)

	// ListBuddyIDs returns every user connected to userID through an
	// accepted request, in either direction.
	ListBuddyIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type pgBuddyRequestRepo struct {
	db db
}

// NewBuddyRequestRepo constructs a BuddyRequestRepo backed by the provided db connection.
func NewBuddyRequestRepo(db db) BuddyRequestRepo {
	return &pgBuddyRequestRepo{db: db}
}

const buddyColumns = `id, from_user_id, to_user_id, trip_id, message, status, created_at, responded_at`

func (r *pgBuddyRequestRepo) Create(ctx context.Context, req domain.BuddyRequest) (domain.BuddyRequest, error) {
	const q = `
		INSERT INTO buddy_requests (from_user_id, to_user_id, trip_id, message)
		VALUES (@from_user_id, @to_user_id, @trip_id, @message)
		RETURNING ` + buddyColumns

	args := pgx.NamedArgs{
		"from_user_id": req.FromUserID,
		"to_user_id":   req.ToUserID,
		"trip_id":      req.TripID,
		"message":      req.Message,
	}
	result, err := scanBuddyRequest(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.BuddyRequest{}, fmt.Errorf("repo.BuddyRequestRepo.Create: %w", translate(err))
	}
	return result, nil
}

func (r *pgBuddyRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.BuddyRequest, error) {
	const q = `SELECT ` + buddyColumns + ` FROM buddy_requests WHERE id = @id`

	result, err := scanBuddyRequest(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.BuddyRequest{}, fmt.Errorf("repo.BuddyRequestRepo.GetByID: %w", translate(err))
	}
	return result, nil
}

func (r *pgBuddyRequestRepo) ListReceived(ctx context.Context, userID uuid.UUID) ([]domain.BuddyRequest, error) {
	const q = `SELECT ` + buddyColumns + `
		FROM buddy_requests
		WHERE to_user_id = @user_id
		ORDER BY created_at DESC, id`

	out, err := r.query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("repo.BuddyRequestRepo.ListReceived: %w", err)
	}
	return out, nil
}

func (r *pgBuddyRequestRepo) ListSent(ctx context.Context, userID uuid.UUID) ([]domain.BuddyRequest, error) {
	const q = `SELECT ` + buddyColumns + `
		FROM buddy_requests
		WHERE from_user_id = @user_id
		ORDER BY created_at DESC, id`

	out, err := r.query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("repo.BuddyRequestRepo.ListSent: %w", err)
	}
	return out, nil
}

// Respond only touches pending rows, so a request cannot be answered twice.
func (r *pgBuddyRequestRepo) Respond(ctx context.Context, id uuid.UUID, status domain.BuddyRequestStatus) (domain.BuddyRequest, error) {
	const q = `
		UPDATE buddy_requests
		SET status = @status, responded_at = now()
		WHERE id = @id AND status = 'pending'
		RETURNING ` + buddyColumns

	result, err := scanBuddyRequest(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "status": string(status)}))
	if err != nil {
		return domain.BuddyRequest{}, fmt.Errorf("repo.BuddyRequestRepo.Respond: %w", translate(err))
	}
	return result, nil
}

func (r *pgBuddyRequestRepo) ListBuddyIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	const q = `
		SELECT DISTINCT CASE WHEN from_user_id = @user_id THEN to_user_id ELSE from_user_id END
		FROM buddy_requests
		WHERE status = 'accepted'
		  AND (from_user_id = @user_id OR to_user_id = @user_id)`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.BuddyRequestRepo.ListBuddyIDs: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("repo.BuddyRequestRepo.ListBuddyIDs: scan: %w", err)
		}
		ids = append(ids, uuid.UUID(id.Bytes))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BuddyRequestRepo.ListBuddyIDs: rows: %w", err)
	}
	return ids, nil
}

func (r *pgBuddyRequestRepo) query(ctx context.Context, q string, userID uuid.UUID) ([]domain.BuddyRequest, error) {
	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.BuddyRequest{}
	for rows.Next() {
		req, err := scanBuddyRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func scanBuddyRequest(s scanner) (domain.BuddyRequest, error) {
	var (
		req                  domain.BuddyRequest
		id, from, to, tripID pgtype.UUID
		status               string
		respondedAt          pgtype.Timestamptz
	)
	err := s.Scan(&id, &from, &to, &tripID, &req.Message, &status, &req.CreatedAt, &respondedAt)
	if err != nil {
		return domain.BuddyRequest{}, err
	}
	req.ID = uuid.UUID(id.Bytes)
	req.FromUserID = uuid.UUID(from.Bytes)
	req.ToUserID = uuid.UUID(to.Bytes)
	req.TripID = uuid.UUID(tripID.Bytes)
	req.Status = domain.BuddyRequestStatus(status)
	if respondedAt.Valid {
		t := respondedAt.Time.In(time.UTC)
		req.RespondedAt = &t
	}
	return req, nil
}
