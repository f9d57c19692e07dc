package swap

import (
	"context"
	"fmt"

	"github.com/heartmarshall/slotswap-backend/internal/domain"
	"github.com/heartmarshall/slotswap-backend/pkg/ctxutil"
)

// ListRequests returns the swap requests addressed to the caller (incoming)
// and sent by the caller (outgoing), in every status.
func (s *Service) ListRequests(ctx context.Context) (*domain.SwapRequestList, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	list, err := s.swaps.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find swap requests: %w", err)
	}
	return list, nil
}
