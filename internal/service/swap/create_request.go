package swap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/slotswap-backend/internal/domain"
	"github.com/heartmarshall/slotswap-backend/pkg/ctxutil"
)

// CreateRequest proposes a swap of the caller's slot for another slot.
// On success the request is PENDING and both slots are SWAP_PENDING.
func (s *Service) CreateRequest(ctx context.Context, input CreateRequestInput) (*domain.SwapRequest, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.SwapRequest

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		mine, theirs, err := s.lockPair(txCtx, input.MySlotID, input.TheirSlotID)
		if err != nil {
			return err
		}

		if !mine.IsOwnedBy(userID) {
			return fmt.Errorf("slot %s: %w", mine.ID, domain.ErrNotOwned)
		}
		for _, e := range []*domain.Event{mine, theirs} {
			if e.Status != domain.EventStatusSwappable {
				return fmt.Errorf("slot %s is %s: %w", e.ID, e.Status, domain.ErrInvalidState)
			}
		}

		now := time.Now().UTC()
		created, err = s.swaps.Create(txCtx, &domain.SwapRequest{
			ID:          uuid.New(),
			RequesterID: userID,
			TargetID:    theirs.UserID,
			MySlotID:    mine.ID,
			TheirSlotID: theirs.ID,
			Status:      domain.SwapStatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("create swap request: %w", err)
		}

		// The CAS re-checks SWAPPABLE at write time; a mismatch aborts the unit.
		for _, id := range created.SlotIDs() {
			if _, err := s.events.CompareAndSetStatus(txCtx, id,
				domain.EventStatusSwappable, domain.EventStatusSwapPending); err != nil {
				return fmt.Errorf("mark slot %s pending: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, classify("create swap request", err)
	}

	s.log.InfoContext(ctx, "swap requested",
		slog.String("request_id", created.ID.String()),
		slog.String("requester_id", userID.String()),
		slog.String("target_id", created.TargetID.String()),
		slog.String("my_slot_id", created.MySlotID.String()),
		slog.String("their_slot_id", created.TheirSlotID.String()),
	)

	return created, nil
}
