package swap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/slotswap-backend/internal/domain"
	"github.com/heartmarshall/slotswap-backend/pkg/ctxutil"
)

// Respond lets the target of a pending request accept or reject it.
//
// Accept exchanges the owners of both slots and sets them BUSY; reject
// returns both slots to SWAPPABLE with owners unchanged. The request ends
// ACCEPTED or REJECTED and cannot be answered again.
func (s *Service) Respond(ctx context.Context, input RespondInput) (*domain.SwapRequest, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	outcome := domain.SwapOutcomeFor(input.Accept)
	var updated *domain.SwapRequest

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		req, err := s.swaps.GetByIDForUpdate(txCtx, input.RequestID)
		if err != nil {
			return err
		}

		if req.TargetID != userID {
			return fmt.Errorf("swap request %s: %w", req.ID, domain.ErrForbidden)
		}
		if req.Status.IsTerminal() {
			return fmt.Errorf("swap request %s is %s: %w", req.ID, req.Status, domain.ErrInvalidState)
		}

		mine, theirs, err := s.lockPair(txCtx, req.MySlotID, req.TheirSlotID)
		if err != nil {
			return err
		}
		for _, e := range []*domain.Event{mine, theirs} {
			if !e.IsPending() {
				return fmt.Errorf("slot %s is %s: %w", e.ID, e.Status, domain.ErrInvalidState)
			}
		}

		// At most one response wins: a concurrent responder fails this CAS.
		updated, err = s.swaps.CompareAndSetStatus(txCtx, req.ID, domain.SwapStatusPending, outcome.Request)
		if err != nil {
			return fmt.Errorf("resolve swap request: %w", err)
		}

		nextMine, nextTheirs := *mine, *theirs
		nextMine.Status, nextTheirs.Status = outcome.Slots, outcome.Slots
		if outcome.SwapOwners {
			nextMine.UserID, nextTheirs.UserID = theirs.UserID, mine.UserID
		}

		for _, e := range []*domain.Event{&nextMine, &nextTheirs} {
			if _, err := s.events.Save(txCtx, e); err != nil {
				return fmt.Errorf("save slot %s: %w", e.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, classify("respond to swap request", err)
	}

	s.log.InfoContext(ctx, "swap resolved",
		slog.String("request_id", updated.ID.String()),
		slog.String("status", updated.Status.String()),
		slog.String("requester_id", updated.RequesterID.String()),
		slog.String("target_id", updated.TargetID.String()),
	)

	return updated, nil
}
