package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/tripmate/internal/domain"
	"github.com/pkordes/tripmate/internal/repo"
)

// maxMessageLen bounds the free-text note on a buddy request.
const maxMessageLen = 500

// BuddyService manages requests between users to travel together.
type BuddyService struct {
	requests repo.BuddyRequestRepo
	trips    repo.TripRepo
}

// NewBuddyService constructs a BuddyService backed by the provided repos.
func NewBuddyService(requests repo.BuddyRequestRepo, trips repo.TripRepo) *BuddyService {
	return &BuddyService{requests: requests, trips: trips}
}

// Send creates a pending request from caller to toUserID about tripID.
// Returns domain.ErrValidation when addressed to self, domain.ErrNotFound if
// the trip does not exist and domain.ErrConflict on a duplicate request.
func (s *BuddyService) Send(ctx context.Context, caller, toUserID, tripID uuid.UUID, message string) (domain.BuddyRequest, error) {
	message = strings.TrimSpace(message)
	switch {
	case toUserID == uuid.Nil:
		return domain.BuddyRequest{}, fmt.Errorf("%w: to_user_id is required", domain.ErrValidation)
	case toUserID == caller:
		return domain.BuddyRequest{}, fmt.Errorf("%w: cannot send a buddy request to yourself", domain.ErrValidation)
	case len(message) > maxMessageLen:
		return domain.BuddyRequest{}, fmt.Errorf("%w: message exceeds %d characters", domain.ErrValidation, maxMessageLen)
	}
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return domain.BuddyRequest{}, fmt.Errorf("service.BuddyService.Send: %w", err)
	}

	result, err := s.requests.Create(ctx, domain.BuddyRequest{
		FromUserID: caller,
		ToUserID:   toUserID,
		TripID:     tripID,
		Message:    message,
	})
	if err != nil {
		return domain.BuddyRequest{}, fmt.Errorf("service.BuddyService.Send: %w", err)
	}
	return result, nil
}

// Respond accepts or rejects a pending request addressed to caller.
// Returns domain.ErrForbidden if caller is not the recipient and
// domain.ErrConflict if the request was already answered.
func (s *BuddyService) Respond(ctx context.Context, caller, id uuid.UUID, accept bool) (domain.BuddyRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return domain.BuddyRequest{}, fmt.Errorf("service.BuddyService.Respond: %w", err)
	}
	if req.ToUserID != caller {
		return domain.BuddyRequest{}, fmt.Errorf("service.BuddyService.Respond: %w: only the recipient may respond", domain.ErrForbidden)
	}
	if req.Status != domain.BuddyPending {
		return domain.BuddyRequest{}, fmt.Errorf("service.BuddyService.Respond: %w: request already %s", domain.ErrConflict, req.Status)
	}

	status := domain.BuddyRejected
	if accept {
		status = domain.BuddyAccepted
	}
	result, err := s.requests.Respond(ctx, id, status)
	if err != nil {
		return domain.BuddyRequest{}, fmt.Errorf("service.BuddyService.Respond: %w", err)
	}
	return result, nil
}

// ListReceived returns requests addressed to caller.
func (s *BuddyService) ListReceived(ctx context.Context, caller uuid.UUID) ([]domain.BuddyRequest, error) {
	out, err := s.requests.ListReceived(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("service.BuddyService.ListReceived: %w", err)
	}
	return nonNil(out), nil
}

// ListSent returns requests caller has sent.
func (s *BuddyService) ListSent(ctx context.Context, caller uuid.UUID) ([]domain.BuddyRequest, error) {
	out, err := s.requests.ListSent(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("service.BuddyService.ListSent: %w", err)
	}
	return nonNil(out), nil
}

// ListBuddyIDs returns the users connected to caller by an accepted request.
func (s *BuddyService) ListBuddyIDs(ctx context.Context, caller uuid.UUID) ([]uuid.UUID, error) {
	out, err := s.requests.ListBuddyIDs(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("service.BuddyService.ListBuddyIDs: %w", err)
	}
	return nonNil(out), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
