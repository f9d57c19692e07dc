package swap

import (
	"context"
	"fmt"

	"github.com/heartmarshall/slotswap-backend/internal/domain"
	"github.com/heartmarshall/slotswap-backend/pkg/ctxutil"
)

// ListSwappable returns SWAPPABLE events owned by anyone but the caller,
// ordered by start time.
func (s *Service) ListSwappable(ctx context.Context) ([]*domain.Event, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	status := domain.EventStatusSwappable
	events, err := s.events.Find(ctx, domain.EventFilter{
		ExcludeOwnerID: &userID,
		Status:         &status,
	})
	if err != nil {
		return nil, fmt.Errorf("find swappable events: %w", err)
	}
	return events, nil
}
