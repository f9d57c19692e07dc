package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/slotswap-backend/internal/domain"
)

// SwapRepo stores swap requests. Requests are never deleted.
type SwapRepo struct {
	s *Store
}

// Find returns requests matching filter, newest first.
func (r *SwapRepo) Find(ctx context.Context, filter domain.SwapRequestFilter) ([]*domain.SwapRequest, error) {
	var out []*domain.SwapRequest
	r.s.read(ctx, func() { out = r.find(filter) })
	return out, nil
}

// FindByParticipant returns the requests addressed to userID (incoming) and
// the ones userID sent (outgoing), both from the same snapshot.
func (r *SwapRepo) FindByParticipant(ctx context.Context, userID uuid.UUID) (*domain.SwapRequestList, error) {
	var list domain.SwapRequestList
	r.s.read(ctx, func() {
		list.Incoming = r.find(domain.SwapRequestFilter{TargetID: &userID})
		list.Outgoing = r.find(domain.SwapRequestFilter{RequesterID: &userID})
	})
	return &list, nil
}

// find must be called with the store lock held.
func (r *SwapRepo) find(filter domain.SwapRequestFilter) []*domain.SwapRequest {
	out := []*domain.SwapRequest{}
	for _, req := range r.s.swaps {
		if filter.RequesterID != nil && req.RequesterID != *filter.RequesterID {
			continue
		}
		if filter.TargetID != nil && req.TargetID != *filter.TargetID {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		out = append(out, &req)
	}

	slices.SortFunc(out, func(a, b *domain.SwapRequest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return out
}

// GetByID returns a request by id.
func (r *SwapRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error) {
	var (
		req domain.SwapRequest
		ok  bool
	)
	r.s.read(ctx, func() { req, ok = r.s.swaps[id] })
	if !ok {
		return nil, fmt.Errorf("swap_request %s: %w", id, domain.ErrNotFound)
	}
	return &req, nil
}

// GetByIDForUpdate returns a request. Inside RunInTx the whole store is
// already locked, so this is the same as GetByID.
func (r *SwapRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error) {
	return r.GetByID(ctx, id)
}

// Create stores a new request. Both slots must exist and neither may already
// be referenced by a pending request.
func (r *SwapRepo) Create(ctx context.Context, req *domain.SwapRequest) (*domain.SwapRequest, error) {
	created := *req
	err := r.s.write(ctx, func(j *journal) error {
		if _, exists := r.s.swaps[req.ID]; exists {
			return fmt.Errorf("swap_request %s: %w", req.ID, domain.ErrAlreadyExists)
		}
		for _, slotID := range req.SlotIDs() {
			if _, ok := r.s.events[slotID]; !ok {
				return fmt.Errorf("swap_request %s: event %s: %w", req.ID, slotID, domain.ErrNotFound)
			}
		}
		if req.Status == domain.SwapStatusPending {
			for _, other := range r.s.swaps {
				if other.Status == domain.SwapStatusPending &&
					(other.References(req.MySlotID) || other.References(req.TheirSlotID)) {
					return fmt.Errorf("swap_request %s: slot already pending: %w", req.ID, domain.ErrAlreadyExists)
				}
			}
		}

		r.s.swaps[req.ID] = created
		j.record(func() { delete(r.s.swaps, req.ID) })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// CompareAndSetStatus moves the request from one status to another and stamps
// RespondedAt when the new status is terminal. A status mismatch yields
// domain.ErrInvalidState.
func (r *SwapRepo) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to domain.SwapStatus) (*domain.SwapRequest, error) {
	var saved domain.SwapRequest
	err := r.s.write(ctx, func(j *journal) error {
		prev, ok := r.s.swaps[id]
		if !ok {
			return fmt.Errorf("swap_request %s: %w", id, domain.ErrNotFound)
		}
		if prev.Status != from {
			return fmt.Errorf("swap_request %s is %s, not %s: %w", id, prev.Status, from, domain.ErrInvalidState)
		}

		now := r.s.now()
		saved = prev
		saved.Status = to
		saved.UpdatedAt = now
		if to.IsTerminal() {
			saved.RespondedAt = &now
		}
		r.s.swaps[id] = saved
		j.record(func() { r.s.swaps[id] = prev })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
