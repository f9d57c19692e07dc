package event

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/slotswap-backend/internal/domain"
	"github.com/heartmarshall/slotswap-backend/pkg/ctxutil"
)

// CreateEvent creates a slot owned by the caller. Status defaults to BUSY.
func (s *Service) CreateEvent(ctx context.Context, input CreateEventInput) (*domain.Event, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	status := domain.EventStatusBusy
	if input.Status != nil {
		status = *input.Status
	}

	now := time.Now().UTC()
	created, err := s.events.Create(ctx, &domain.Event{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     strings.TrimSpace(input.Title),
		StartTime: input.StartTime.UTC(),
		EndTime:   input.EndTime.UTC(),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.InfoContext(ctx, "event created",
		slog.String("user_id", userID.String()),
		slog.String("event_id", created.ID.String()),
		slog.String("status", created.Status.String()),
	)

	return created, nil
}

// ListEvents returns the caller's events ordered by start time.
func (s *Service) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	events, err := s.events.Find(ctx, domain.EventFilter{OwnerID: &userID})
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	return events, nil
}

// UpdateEvent applies a partial update to one of the caller's events.
// While a swap is pending the status is frozen; title and times may change.
func (s *Service) UpdateEvent(ctx context.Context, input UpdateEventInput) (*domain.Event, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Event

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.loadOwned(txCtx, userID, input.EventID)
		if err != nil {
			return err
		}

		if input.Status != nil && current.IsPending() {
			return fmt.Errorf("event %s has a pending swap: %w", current.ID, domain.ErrInvalidState)
		}

		next := input.params().Apply(*current)
		if !next.EndTime.After(next.StartTime) {
			return domain.NewValidationError("endTime", "must be after startTime")
		}

		updated, err = s.events.Save(txCtx, &next)
		if err != nil {
			return fmt.Errorf("save event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "event updated",
		slog.String("user_id", userID.String()),
		slog.String("event_id", updated.ID.String()),
		slog.String("status", updated.Status.String()),
	)

	return updated, nil
}

// DeleteEvent removes one of the caller's events. Events with a pending
// swap cannot be deleted.
func (s *Service) DeleteEvent(ctx context.Context, input DeleteEventInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.loadOwned(txCtx, userID, input.EventID)
		if err != nil {
			return err
		}
		if current.IsPending() {
			return fmt.Errorf("event %s has a pending swap: %w", current.ID, domain.ErrInvalidState)
		}
		return s.events.Delete(txCtx, current.ID)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "event deleted",
		slog.String("user_id", userID.String()),
		slog.String("event_id", input.EventID.String()),
	)

	return nil
}
