package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripmate/internal/domain"
)

// TripRepo defines the persistence operations for Trips, their activity sets
// and their members. The service layer depends on this interface, not the
// concrete Postgres implementation, which allows the service to be
// unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip with its activities and returns the persisted
	// record (with DB-generated id, status, created_at and updated_at).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListPaged returns one page of trips ordered by start_date descending,
	// plus the total number of trips.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// ListByUser returns every trip owned by userID, most recent start first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)

	// ListCandidates returns trips matching f joined with their owner's
	// discoverability flag and preferences, newest trip first.
	ListCandidates(ctx context.Context, f CandidateFilter) ([]domain.Candidate, error)

	// Update overwrites the mutable fields and the activity set of a trip.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// SetStatus changes a trip's lifecycle status.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	SetStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) error

	// AddMember records userID as a member of tripID and marks the trip full
	// when that takes the last seat. The trip row stays locked until both
	// writes commit, so concurrent joins cannot push it past max_members.
	// Returns domain.ErrConflict if the trip is full, completed or cancelled,
	// or the user is already a member.
	AddMember(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, error)

	// RemoveMember deletes userID's membership and reopens the trip if it was
	// full. Returns domain.ErrNotFound if userID is not a member.
	RemoveMember(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, error)

	// IsMember reports whether userID has joined tripID. Owners are not
	// recorded as members.
	IsMember(ctx context.Context, tripID, userID uuid.UUID) (bool, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CandidateFilter narrows the candidate pool at the database.
// A nil DestinationID means every destination.
type CandidateFilter struct {
	DestinationID *uuid.UUID
	ExcludeUserID uuid.UUID
	Statuses      []domain.TripStatus
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// tripColumns selects a trip with its activity set and member count.
// The owner counts as a member, hence the 1 +.
const tripColumns = `
	t.id, t.user_id, t.destination_id, t.start_date, t.end_date,
	COALESCE((SELECT array_agg(ta.interest_id ORDER BY ta.interest_id)
	          FROM trip_activities ta WHERE ta.trip_id = t.id), '{}') AS activity_ids,
	1 + (SELECT count(*) FROM trip_members tm WHERE tm.trip_id = t.id) AS member_count,
	t.max_members, t.status, t.description, t.created_at, t.updated_at`

// Create inserts the trip row and its activity links in one transaction.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (user_id, destination_id, start_date, end_date, max_members, description)
		VALUES (@user_id, @destination_id, @start_date, @end_date, @max_members, @description)
		RETURNING id`

	var id uuid.UUID
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		args := pgx.NamedArgs{
			"user_id":        trip.UserID,
			"destination_id": trip.DestinationID,
			"start_date":     trip.StartDate,
			"end_date":       trip.EndDate,
			"max_members":    trip.MaxMembers,
			"description":    trip.Description,
		}
		var pgID pgtype.UUID
		if err := tx.QueryRow(ctx, q, args).Scan(&pgID); err != nil {
			return err
		}
		id = uuid.UUID(pgID.Bytes)
		return replaceActivities(ctx, tx, id, trip.ActivityIDs)
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", translate(err))
	}
	return r.GetByID(ctx, id)
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips t WHERE t.id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", translate(err))
	}
	return result, nil
}

// ListPaged returns one page of trips ordered by start_date descending.
func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	q := `SELECT ` + tripColumns + `
		FROM trips t
		ORDER BY t.start_date DESC, t.id
		LIMIT @limit OFFSET @offset`

	trips, err := r.queryTrips(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	return trips, total, nil
}

// ListByUser returns all trips owned by userID.
func (r *pgTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	q := `SELECT ` + tripColumns + `
		FROM trips t
		WHERE t.user_id = @user_id
		ORDER BY t.start_date DESC, t.id`

	trips, err := r.queryTrips(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}
	return trips, nil
}

// ListCandidates returns the candidate pool. Ordering by created_at DESC
// makes the newest trip win ties once the ranker's stable sort runs.
func (r *pgTripRepo) ListCandidates(ctx context.Context, f CandidateFilter) ([]domain.Candidate, error) {
	q := `SELECT ` + tripColumns + `,
		       u.is_discoverable,
		       up.user_id IS NOT NULL AS has_preferences,
		       COALESCE(up.travel_frequency, ''),
		       COALESCE(up.travel_budget, '')
		FROM trips t
		JOIN users u ON u.id = t.user_id
		LEFT JOIN user_preferences up ON up.user_id = t.user_id
		WHERE (@destination_id::uuid IS NULL OR t.destination_id = @destination_id::uuid)
		  AND t.user_id <> @exclude_user_id
		  AND (cardinality(@statuses::text[]) = 0 OR t.status = ANY(@statuses::text[]))
		ORDER BY t.created_at DESC, t.id`

	statuses := make([]string, len(f.Statuses))
	for i, s := range f.Statuses {
		statuses[i] = string(s)
	}
	args := pgx.NamedArgs{
		"destination_id":  nullableUUID(f.DestinationID),
		"exclude_user_id": f.ExcludeUserID,
		"statuses":        statuses,
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListCandidates: %w", err)
	}
	defer rows.Close()

	candidates := []domain.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListCandidates: scan: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListCandidates: rows: %w", err)
	}
	return candidates, nil
}

// Update overwrites the mutable fields and activity set of a trip.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET destination_id = @destination_id,
		    start_date     = @start_date,
		    end_date       = @end_date,
		    max_members    = @max_members,
		    description    = @description,
		    updated_at     = now()
		WHERE id = @id`

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		args := pgx.NamedArgs{
			"id":             trip.ID,
			"destination_id": trip.DestinationID,
			"start_date":     trip.StartDate,
			"end_date":       trip.EndDate,
			"max_members":    trip.MaxMembers,
			"description":    trip.Description,
		}
		tag, err := tx.Exec(ctx, q, args)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return replaceActivities(ctx, tx, trip.ID, trip.ActivityIDs)
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", translate(err))
	}
	return r.GetByID(ctx, trip.ID)
}

// SetStatus changes the lifecycle status of a trip.
func (r *pgTripRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) error {
	const q = `UPDATE trips SET status = @status, updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "status": string(status)})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.SetStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.SetStatus: %w", domain.ErrNotFound)
	}
	return nil
}

// AddMember locks the trip row, checks capacity against the current member
// rows and inserts the new member in one transaction.
func (r *pgTripRepo) AddMember(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, error) {
	const (
		lockTrip     = `SELECT max_members, status FROM trips WHERE id = @trip_id FOR UPDATE`
		countMembers = `SELECT count(*) FROM trip_members WHERE trip_id = @trip_id`
		insert       = `INSERT INTO trip_members (trip_id, user_id) VALUES (@trip_id, @user_id)`
		markFull     = `UPDATE trips SET status = 'full', updated_at = now() WHERE id = @trip_id`
	)
	args := pgx.NamedArgs{"trip_id": tripID, "user_id": userID}

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		var (
			maxMembers int
			status     string
			joined     int
		)
		if err := tx.QueryRow(ctx, lockTrip, args).Scan(&maxMembers, &status); err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, countMembers, args).Scan(&joined); err != nil {
			return err
		}
		members := joined + 1 // the owner

		switch domain.TripStatus(status) {
		case domain.TripCompleted, domain.TripCancelled:
			return fmt.Errorf("%w: trip is %s", domain.ErrConflict, status)
		}
		if members >= maxMembers {
			return fmt.Errorf("%w: trip is full", domain.ErrConflict)
		}

		if _, err := tx.Exec(ctx, insert, args); err != nil {
			return err
		}
		if members+1 >= maxMembers {
			if _, err := tx.Exec(ctx, markFull, args); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.AddMember: %w", translate(err))
	}
	return r.GetByID(ctx, tripID)
}

// RemoveMember deletes the membership and flips a full trip back to open in
// one transaction.
func (r *pgTripRepo) RemoveMember(ctx context.Context, tripID, userID uuid.UUID) (domain.Trip, error) {
	const (
		lockTrip = `SELECT id FROM trips WHERE id = @trip_id FOR UPDATE`
		remove   = `DELETE FROM trip_members WHERE trip_id = @trip_id AND user_id = @user_id`
		reopen   = `
			UPDATE trips t
			SET status = 'open', updated_at = now()
			WHERE t.id = @trip_id
			  AND t.status = 'full'
			  AND 1 + (SELECT count(*) FROM trip_members tm WHERE tm.trip_id = t.id) < t.max_members`
	)
	args := pgx.NamedArgs{"trip_id": tripID, "user_id": userID}

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		var locked pgtype.UUID
		if err := tx.QueryRow(ctx, lockTrip, args).Scan(&locked); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, remove, args)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: user is not a member of the trip", domain.ErrNotFound)
		}
		_, err = tx.Exec(ctx, reopen, args)
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.RemoveMember: %w", translate(err))
	}
	return r.GetByID(ctx, tripID)
}

func (r *pgTripRepo) IsMember(ctx context.Context, tripID, userID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM trip_members WHERE trip_id = @trip_id AND user_id = @user_id)`

	var ok bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID, "user_id": userID}).Scan(&ok); err != nil {
		return false, fmt.Errorf("repo.TripRepo.IsMember: %w", err)
	}
	return ok, nil
}

// Delete removes a trip by primary key. Activities and members cascade.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripRepo) queryTrips(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

// replaceActivities rewrites the activity set of a trip.
func replaceActivities(ctx context.Context, tx pgx.Tx, tripID uuid.UUID, ids []uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM trip_activities WHERE trip_id = @trip_id`,
		pgx.NamedArgs{"trip_id": tripID}); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	const q = `
		INSERT INTO trip_activities (trip_id, interest_id)
		SELECT @trip_id::uuid, unnest(@ids::uuid[])
		ON CONFLICT DO NOTHING`
	_, err := tx.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "ids": toPgUUIDs(ids)})
	return err
}

// tripDest returns the scan destinations for tripColumns, in order, and a
// finish func that copies the converted values into t.
func tripDest(t *domain.Trip) ([]any, func()) {
	var (
		id, userID, destID pgtype.UUID
		activities         []pgtype.UUID
		status             string
	)
	dest := []any{
		&id, &userID, &destID, &t.StartDate, &t.EndDate,
		&activities, &t.MemberCount,
		&t.MaxMembers, &status, &t.Description, &t.CreatedAt, &t.UpdatedAt,
	}
	finish := func() {
		t.ID = uuid.UUID(id.Bytes)
		t.UserID = uuid.UUID(userID.Bytes)
		t.DestinationID = uuid.UUID(destID.Bytes)
		t.ActivityIDs = fromPgUUIDs(activities)
		t.Status = domain.TripStatus(status)
	}
	return dest, finish
}

// scanTrip maps a single row of tripColumns into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var t domain.Trip
	dest, finish := tripDest(&t)
	if err := s.Scan(dest...); err != nil {
		return domain.Trip{}, err
	}
	finish()
	return t, nil
}

// scanCandidate maps a row of tripColumns plus owner columns.
func scanCandidate(s scanner) (domain.Candidate, error) {
	var (
		c         domain.Candidate
		hasPrefs  bool
		frequency string
		budget    string
	)
	dest, finish := tripDest(&c.Trip)
	dest = append(dest, &c.Discoverable, &hasPrefs, &frequency, &budget)
	if err := s.Scan(dest...); err != nil {
		return domain.Candidate{}, err
	}
	finish()
	if hasPrefs {
		c.Preferences = &domain.Preferences{
			UserID:          c.Trip.UserID,
			TravelFrequency: domain.TravelFrequency(frequency),
			TravelBudget:    domain.TravelBudget(budget),
		}
	}
	return c, nil
}
